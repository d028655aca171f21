package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	return runWithConfig(t, "", stdin, args...)
}

// runWithConfig executes the root command against a temporary config file.
// An empty yaml leaves the file absent so defaults apply.
func runWithConfig(t *testing.T, yaml, stdin string, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if yaml != "" {
		if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("YOUTUBE_API_KEY", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", cfgPath, "--log-level", "error"}, args...))
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		cfgFile, logLevel = "", ""
		resetFlags(rootCmd)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag in the tree so tests do not leak values.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestSearchCommand(t *testing.T) {
	out, err := run(t, "", "search", "ats keywords", "--top-k", "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "1. [") || !strings.Contains(out, "2. [") {
		t.Errorf("expected two ranked lines, got:\n%s", out)
	}
	if strings.Contains(out, "3. [") {
		t.Errorf("top-k not honored:\n%s", out)
	}
}

func TestSearchCommandUsesConfiguredTopK(t *testing.T) {
	out, err := runWithConfig(t, "retrieval:\n  top_k: 3\n", "", "search", "resume keywords")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "3. [") || strings.Contains(out, "4. [") {
		t.Errorf("expected exactly three ranked lines, got:\n%s", out)
	}
}

func TestSearchCommandUnknownCategory(t *testing.T) {
	if _, err := run(t, "", "search", "x", "--category", "cooking"); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestContextCommandReadsStdin(t *testing.T) {
	out, err := run(t, "Led a team of five engineers and cut build times.", "context", "-")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "## Retrieved Market Standards:") {
		t.Errorf("expected assembled context, got:\n%s", out)
	}
}

func TestContextCommandReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	if err := os.WriteFile(path, []byte("Python developer with AWS experience."), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "", "context", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "---") {
		t.Errorf("expected separated snippets, got:\n%s", out)
	}
}

func TestRecommendWithoutProviderDegrades(t *testing.T) {
	out, err := run(t, "", "recommend", "golang", "--level", "beginner")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Unable to generate AI recommendations") {
		t.Errorf("expected degraded insight, got:\n%s", out)
	}
}

func TestRecommendRejectsLevel(t *testing.T) {
	if _, err := run(t, "", "recommend", "golang", "--level", "guru"); err == nil {
		t.Fatal("expected error for invalid level")
	}
}
