package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/primagen/primagen/internal/format"
	"github.com/primagen/primagen/internal/orchestrator"
	"github.com/primagen/primagen/internal/screens/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Interactively answer generated questions (no database)",
	Long: `Generate and interactively answer questions in the terminal.

This is a stateless review tool — nothing is saved. Useful for judging
question quality at a given model and difficulty before a bulk run.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringP("model", "m", "ADDITION", "Math model id")
	previewCmd.Flags().StringP("difficulty", "d", "", "Difficulty level in Y.S form (e.g. 4.2)")
	previewCmd.Flags().StringP("format", "f", "", "Preferred question format")
	previewCmd.Flags().StringP("theme", "t", "", "Preferred scenario theme")
	previewCmd.Flags().IntP("count", "n", 5, "Number of questions in the session")
	previewCmd.Flags().String("seed", "", "Seed for deterministic generation")
	previewCmd.Flags().Bool("enrich", false, "Enrich scenarios with an LLM provider from the environment")
}

func runPreview(cmd *cobra.Command, args []string) error {
	modelID, _ := cmd.Flags().GetString("model")
	diffVal, _ := cmd.Flags().GetString("difficulty")
	formatVal, _ := cmd.Flags().GetString("format")
	themeVal, _ := cmd.Flags().GetString("theme")
	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetString("seed")
	enrich, _ := cmd.Flags().GetBool("enrich")

	theme, err := parseTheme(themeVal)
	if err != nil {
		return err
	}

	var pref format.Format
	if formatVal != "" {
		pref = format.Format(strings.ToUpper(formatVal))
		if !pref.IsValid() {
			return fmt.Errorf("invalid format %q", formatVal)
		}
	}

	// No EventRepo — preview never touches the database.
	gen, err := buildGenerator(context.Background(), seed, enrich, nil)
	if err != nil {
		return err
	}

	request := orchestrator.Request{
		ModelID:          strings.ToUpper(modelID),
		DifficultyLevel:  diffVal,
		FormatPreference: pref,
		ScenarioTheme:    theme,
	}
	return preview.Run(gen, request, count)
}
