package llm

import "context"

type purposeKey struct{}

// WithPurpose tags ctx with the pipeline stage issuing the request, e.g.
// "scenario-enrichment". The logging decorator reads the tag back when it
// records the request event, and the stats command groups spend by it.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the purpose tag, or "unknown" for an untagged context.
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok && p != "" {
		return p
	}
	return "unknown"
}
