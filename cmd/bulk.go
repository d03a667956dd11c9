package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/primagen/primagen/internal/store"
)

var bulkCmd = &cobra.Command{
	Use:   "bulk",
	Short: "Generate a batch of questions from a YAML manifest",
	Long: `Generate questions in bulk from a manifest file.

A manifest lists question specs with optional shared defaults:

  defaults:
    difficulty: "4.2"
    theme: shopping
  questions:
    - model: ADDITION
      count: 10
    - model: MULTIPLICATION
      format: MULTI_STEP
      count: 5

Generated questions and a run summary are saved to the local database.`,
	RunE: runBulk,
}

func init() {
	bulkCmd.Flags().StringP("manifest", "f", "", "Path to the manifest file (required)")
	bulkCmd.Flags().String("seed", "", "Seed for deterministic generation")
	bulkCmd.Flags().Bool("enrich", false, "Enrich scenarios with an LLM provider from the environment")
	bulkCmd.Flags().Bool("dry-run", false, "Generate without saving to the database")
	bulkCmd.Flags().String("note", "", "Note stored with the run summary")
	_ = bulkCmd.MarkFlagRequired("manifest")
}

func runBulk(cmd *cobra.Command, args []string) error {
	manifestPath, _ := cmd.Flags().GetString("manifest")
	seed, _ := cmd.Flags().GetString("seed")
	enrich, _ := cmd.Flags().GetBool("enrich")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	note, _ := cmd.Flags().GetString("note")

	manifest, err := LoadManifest(manifestPath)
	if err != nil {
		return err
	}
	requests, err := manifest.Requests()
	if err != nil {
		return err
	}

	ctx := context.Background()

	var s *store.Store
	if !dryRun || enrich {
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

	fmt.Printf("Generating %d questions...\n", len(requests))
	startedAt := time.Now()

	result, err := gen.GenerateBatch(ctx, requests)
	if err != nil {
		return fmt.Errorf("batch interrupted: %w", err)
	}

	for i, item := range result.Items {
		if item.Err != nil {
			fmt.Fprintf(os.Stderr, "question %d (%s): %v\n", i+1, item.Request.ModelID, item.Err)
			continue
		}
		if !dryRun {
			if err := saveQuestion(ctx, s, item.Question); err != nil {
				return err
			}
		}
	}

	if !dryRun {
		rec := store.RunRecord{
			StartedAt:  startedAt,
			FinishedAt: time.Now(),
			Requested:  len(requests),
			Succeeded:  result.Succeeded,
			Failed:     result.Failed,
			Note:       note,
		}
		if err := s.RunRepo().Record(ctx, &rec); err != nil {
			return fmt.Errorf("record run: %w", err)
		}
	}

	fmt.Printf("Done: %d succeeded, %d failed (%s)\n",
		result.Succeeded, result.Failed, time.Since(startedAt).Round(time.Millisecond))
	return nil
}
