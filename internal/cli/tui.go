package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"learnrag/internal/logging"
	"learnrag/internal/summarizer"
	"learnrag/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive search over the knowledge base",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	digest, err := summarizer.NewFrequencySummarizer().Summarize(a.base.Text(), 2)
	if err != nil {
		logging.Warn().Err(err).Msg("knowledge base digest failed")
	}
	header := fmt.Sprintf("%d items in %d categories. %s", a.base.Len(), len(a.base.Categories()), digest)

	m := tui.New(a.retriever, a.contexts, header)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
