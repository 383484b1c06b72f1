package extract

import (
	"context"

	"github.com/sniftern/internguard/internal/model"
)

// Extractor pulls structured company info out of raw posting text.
type Extractor interface {
	Extract(ctx context.Context, text string) (model.CompanyInfo, error)
}

// HeuristicExtractor extracts fields with regex heuristics only. It
// never fails; unrecognized fields come back as "unknown".
type HeuristicExtractor struct{}

func NewHeuristicExtractor() *HeuristicExtractor {
	return &HeuristicExtractor{}
}

func (e *HeuristicExtractor) Extract(_ context.Context, text string) (model.CompanyInfo, error) {
	return model.CompanyInfo{
		CompanyName: CompanyName(text),
		Website:     Website(text),
		Location:    Location(text),
	}, nil
}
