package extract

import (
	"context"
	"fmt"
	"log/slog"
)

// FallbackExtractor tries each extractor in order and returns the first
// result. Used to put a LocalExtractor behind a ToolExtractor so a slow
// or unreachable model never blocks the conversation.
type FallbackExtractor struct {
	extractors []Extractor
}

func NewFallbackExtractor(extractors ...Extractor) *FallbackExtractor {
	return &FallbackExtractor{extractors: extractors}
}

func (e *FallbackExtractor) Extract(ctx context.Context, req *Request) (*Result, error) {
	var lastErr error
	for i, extractor := range e.extractors {
		result, err := extractor.Extract(ctx, req)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if i < len(e.extractors)-1 {
			slog.Warn("extractor failed, degrading to next", "field", req.Field.Key, "error", err)
		}
	}
	return nil, fmt.Errorf("all extractors failed: %w", lastErr)
}
