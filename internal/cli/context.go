package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var contextCmd = &cobra.Command{
	Use:   "context [file|-]",
	Short: "Assemble reference context for a document",
	Long:  `Reads a document (a file, or stdin when the argument is "-" or omitted) and prints the assembled reference context.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runContext,
}

func init() {
	rootCmd.AddCommand(contextCmd)
}

func runContext(cmd *cobra.Command, args []string) error {
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
	res := a.contexts.Build(text)
	if res.Fallback() {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: using fallback context: %v\n", res.Err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Text)
	return nil
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}
