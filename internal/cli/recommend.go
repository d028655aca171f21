package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"learnrag/internal/recommend"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend [topic]",
	Short: "Recommend courses for a topic",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecommend,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Review a resume against the assembled market standards",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	recommendCmd.Flags().String("level", string(recommend.LevelBeginner), "skill level: beginner, intermediate, advanced")
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	level, _ := cmd.Flags().GetString("level")
	switch recommend.SkillLevel(level) {
	case recommend.LevelBeginner, recommend.LevelIntermediate, recommend.LevelAdvanced:
	default:
		return fmt.Errorf("invalid level %q", level)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	recs, err := a.recommender().Recommend(context.Background(), recommend.Request{
		Topic:      args[0],
		SkillLevel: recommend.SkillLevel(level),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, v := range recs.Videos {
		fmt.Fprintf(out, "[video] %s (%s)\n   %s\n", v.Title, v.ChannelTitle, v.URL)
	}
	for i, c := range recs.Courses {
		fmt.Fprintf(out, "%d. %s (%s)\n   %s\n   %s\n", i+1, c.Title, c.Level, c.Description, c.URL)
	}
	fmt.Fprintf(out, "\n%s\n", recs.Insights)
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	analysis, err := a.recommender().AnalyzeResume(context.Background(), text)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), analysis.Text)
	return nil
}
