package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/primagen/primagen/internal/llm"
	"github.com/primagen/primagen/internal/orchestrator"
	"github.com/primagen/primagen/internal/rng"
	"github.com/primagen/primagen/internal/scenario"
	"github.com/primagen/primagen/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "primagen",
	Short: "Curriculum-aligned maths question generator",
	Long:  "Primagen generates UK primary maths questions (years 1-6) with pedagogically grounded distractors and real-world scenarios.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PRIMAGEN_DB env var)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(bulkCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then PRIMAGEN_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// buildGenerator assembles the pipeline. A non-empty seed makes generation
// deterministic. With enrich set, scenario selection is decorated with an
// LLM provider resolved from the environment; eventRepo may be nil, which
// skips request logging.
func buildGenerator(ctx context.Context, seed string, enrich bool, eventRepo store.EventRepo) (*orchestrator.Generator, error) {
	var src rng.Source
	if seed != "" {
		src = rng.NewSeeded(seed)
	} else {
		src = rng.Default()
	}

	var scenarios scenario.Service = scenario.NewProcedural(src)
	if enrich {
		provider, err := llm.NewProviderFromEnv(ctx, eventRepo)
		if err != nil {
			return nil, err
		}
		scenarios = scenario.NewLLM(scenarios, provider)
	}

	return orchestrator.New(orchestrator.Options{
		Scenarios: scenarios,
		Src:       src,
	}), nil
}

// parseTheme validates a --theme flag value, "" meaning no preference.
func parseTheme(val string) (scenario.Theme, error) {
	if val == "" {
		return "", nil
	}
	t := scenario.Theme(strings.ToLower(val))
	if !t.IsValid() {
		names := make([]string, 0, len(scenario.AllThemes()))
		for _, known := range scenario.AllThemes() {
			names = append(names, string(known))
		}
		return "", fmt.Errorf("invalid theme %q: must be one of %s", val, strings.Join(names, ", "))
	}
	return t, nil
}
