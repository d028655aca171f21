package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"learnrag/internal/domain"
	"learnrag/internal/retriever"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Rank the knowledge base against a query",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringSlice("category", nil, "restrict to categories (repeatable)")
	searchCmd.Flags().Int("top-k", retriever.DefaultTopK, "maximum number of results (default retrieval.top_k)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	names, _ := cmd.Flags().GetStringSlice("category")
	topK, _ := cmd.Flags().GetInt("top-k")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("top-k") {
		topK = cfg.Retrieval.TopK
	}
	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	var results []domain.ScoredResult
	if len(names) == 0 {
		results, err = a.retriever.Search(args[0], topK)
	} else {
		cats := make([]domain.Category, 0, len(names))
		for _, n := range names {
			c, perr := domain.ParseCategory(n)
			if perr != nil {
				return perr
			}
			cats = append(cats, c)
		}
		results, err = a.retriever.SearchByCategory(args[0], cats, topK)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}
	for i, r := range results {
		fmt.Fprintf(out, "%d. [%s] score=%.4f\n   %s\n", i+1, r.Category, r.Score, r.Content)
	}
	return nil
}
