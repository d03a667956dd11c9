package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/primagen/primagen/internal/format"
	"github.com/primagen/primagen/internal/orchestrator"
	"github.com/primagen/primagen/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a single question and print it",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringP("model", "m", "ADDITION", "Math model id (e.g. ADDITION, FRACTION_OF_AMOUNT)")
	generateCmd.Flags().StringP("difficulty", "d", "", "Difficulty level in Y.S form (e.g. 4.2)")
	generateCmd.Flags().IntP("year", "y", 0, "Year level 1-6 (ignored when --difficulty is set)")
	generateCmd.Flags().StringP("format", "f", "", "Preferred question format (e.g. MULTI_STEP)")
	generateCmd.Flags().StringP("theme", "t", "", "Preferred scenario theme (e.g. cooking)")
	generateCmd.Flags().String("focus", "", "Pedagogical focus: fluency, reasoning, problem_solving or number_sense")
	generateCmd.Flags().String("seed", "", "Seed for deterministic generation")
	generateCmd.Flags().Bool("enrich", false, "Enrich scenarios with an LLM provider from the environment")
	generateCmd.Flags().Bool("save", false, "Save the question to the local database")
	generateCmd.Flags().Bool("json", false, "Print the full question as JSON")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	modelID, _ := cmd.Flags().GetString("model")
	diffVal, _ := cmd.Flags().GetString("difficulty")
	year, _ := cmd.Flags().GetInt("year")
	formatVal, _ := cmd.Flags().GetString("format")
	themeVal, _ := cmd.Flags().GetString("theme")
	focus, _ := cmd.Flags().GetString("focus")
	seed, _ := cmd.Flags().GetString("seed")
	enrich, _ := cmd.Flags().GetBool("enrich")
	save, _ := cmd.Flags().GetBool("save")
	asJSON, _ := cmd.Flags().GetBool("json")

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

	ctx := context.Background()

	// The store is only opened when something needs it: saving the
	// question, or logging enrichment requests.
	var s *store.Store
	if save || enrich {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err = store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()
	}

	var eventRepo store.EventRepo
	if s != nil {
		eventRepo = s.EventRepo()
	}

	gen, err := buildGenerator(ctx, seed, enrich, eventRepo)
	if err != nil {
		return err
	}

	q, err := gen.Generate(ctx, orchestrator.Request{
		ModelID:          strings.ToUpper(modelID),
		DifficultyLevel:  diffVal,
		YearLevel:        year,
		FormatPreference: pref,
		ScenarioTheme:    theme,
		PedagogicalFocus: focus,
	})
	if err != nil {
		return err
	}

	if save {
		if err := saveQuestion(ctx, s, q); err != nil {
			return err
		}
	}

	if asJSON {
		out, err := json.MarshalIndent(q, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal question: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	printQuestion(q)
	return nil
}

// printQuestion writes the human-readable form of a question to stdout.
func printQuestion(q *orchestrator.EnhancedQuestion) {
	fmt.Println(q.Text)
	fmt.Println()

	labels := []string{"A", "B", "C", "D", "E", "F"}
	for i, opt := range q.Options {
		marker := " "
		if i == q.CorrectIndex {
			marker = "✓"
		}
		fmt.Printf("  %s) %-12s %s\n", labels[i], opt.Text, marker)
	}

	fmt.Println()
	fmt.Printf("format:      %s\n", q.Format)
	fmt.Printf("level:       %s (load %d)\n", q.Level.DisplayName(), q.CognitiveLoad)
	fmt.Printf("theme:       %s\n", q.Setup.ScenarioTheme)
	fmt.Printf("controller:  %s\n", q.Setup.ControllerUsed)
	fmt.Printf("enhancement: %s", q.Status.Level)
	if q.Status.Reason != "" {
		fmt.Printf(" (%s)", q.Status.Reason)
	}
	fmt.Println()
	if len(q.Setup.DistractorStrategies) > 0 {
		fmt.Printf("distractors: %s\n", strings.Join(q.Setup.DistractorStrategies, ", "))
	}
	fmt.Printf("generated in %s\n", q.GenerationTime.Round(time.Millisecond))
}

// saveQuestion converts an EnhancedQuestion to its stored form and persists it.
func saveQuestion(ctx context.Context, s *store.Store, q *orchestrator.EnhancedQuestion) error {
	optionsJSON, err := json.Marshal(q.Options)
	if err != nil {
		return fmt.Errorf("marshal options: %w", err)
	}

	modelID := ""
	if q.MathOutput != nil {
		modelID = q.MathOutput.Operation
	}

	return s.QuestionRepo().Save(ctx, &store.QuestionRecord{
		ID:            q.ID,
		ModelID:       modelID,
		Format:        string(q.Format),
		Level:         q.Level.DisplayName(),
		CognitiveLoad: q.CognitiveLoad,
		Text:          q.Text,
		OptionsJSON:   string(optionsJSON),
		CorrectIndex:  q.CorrectIndex,
		Theme:         string(q.Setup.ScenarioTheme),
		Status:        string(q.Status.Level),
		GenerationMs:  q.GenerationTime.Milliseconds(),
		CreatedAt:     q.CreatedAt,
	})
}
