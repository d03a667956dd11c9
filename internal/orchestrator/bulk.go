package orchestrator

import (
	"context"
	"time"
)

// batchPacing is the fixed delay between bulk items. Bulk generation is a
// sequential loop, not a concurrent fan-out; the delay keeps pressure off
// downstream collaborators.
const batchPacing = 25 * time.Millisecond

// BatchItem records the outcome for one request in a batch. Exactly one of
// Question and Err is set.
type BatchItem struct {
	Request  Request
	Question *EnhancedQuestion
	Err      error
}

// BatchResult is the outcome of a whole batch. Partial success is a normal
// outcome, not a batch failure.
type BatchResult struct {
	Items     []BatchItem
	Succeeded int
	Failed    int
}

// GenerateBatch runs each request in order, pacing between items. A failure
// on one item is recorded and the loop continues; only context cancellation
// stops the batch early.
func (g *Generator) GenerateBatch(ctx context.Context, requests []Request) (*BatchResult, error) {
	result := &BatchResult{Items: make([]BatchItem, 0, len(requests))}

	for i, req := range requests {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		q, err := g.Generate(ctx, req)
		item := BatchItem{Request: req, Question: q, Err: err}
		if err != nil {
			result.Failed++
		} else {
			result.Succeeded++
		}
		result.Items = append(result.Items, item)

		if i < len(requests)-1 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(batchPacing):
			}
		}
	}
	return result, nil
}
