package extract

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/sniftern/internguard/internal/model"
	"github.com/sniftern/internguard/internal/normalize"
	"github.com/sniftern/internguard/pkg/anthropic"
)

const extractSystemPrompt = `You extract structured fields from internship and job postings.
Given the raw posting text, respond with ONLY a JSON object, no prose and no code fences:
{"company_name": "...", "website": "...", "location": "..."}
Use "unknown" for any field not present in the text. For location, use
"Remote" for remote/virtual/work-from-home roles and "Hybrid" for hybrid roles.`

const defaultExtractModel = "claude-haiku-4-5-20251001"

// LLMExtractor asks an Anthropic model to extract fields and falls
// back to the regex heuristics when the call or its output is
// unusable.
type LLMExtractor struct {
	client   anthropic.Client
	model    string
	fallback *HeuristicExtractor
}

func NewLLMExtractor(client anthropic.Client, model string) *LLMExtractor {
	if model == "" {
		model = defaultExtractModel
	}
	return &LLMExtractor{
		client:   client,
		model:    model,
		fallback: NewHeuristicExtractor(),
	}
}

func (e *LLMExtractor) Extract(ctx context.Context, text string) (model.CompanyInfo, error) {
	if strings.TrimSpace(text) == "" {
		return model.CompanyInfo{
			CompanyName: normalize.Unknown,
			Website:     normalize.Unknown,
			Location:    normalize.Unknown,
		}, nil
	}

	resp, err := e.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     e.model,
		MaxTokens: 256,
		System:    extractSystemPrompt,
		Messages: []anthropic.Message{
			{Role: "user", Content: text},
		},
	})
	if err != nil {
		zap.L().Warn("llm extraction failed, falling back to heuristics",
			zap.Error(err))
		return e.fallback.Extract(ctx, text)
	}
	resp.Usage.LogUsage(e.model, "extract")

	info, ok := parseExtraction(resp.Text())
	if !ok {
		zap.L().Warn("llm extraction returned unparseable output, falling back to heuristics",
			zap.String("model", e.model))
		return e.fallback.Extract(ctx, text)
	}
	return info, nil
}

// parseExtraction decodes the model's JSON reply, tolerating stray
// code fences and surrounding prose.
func parseExtraction(raw string) (model.CompanyInfo, bool) {
	raw = strings.TrimSpace(raw)
	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			raw = raw[start : end+1]
		}
	}

	var info model.CompanyInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return model.CompanyInfo{}, false
	}
	if strings.TrimSpace(info.CompanyName) == "" {
		return model.CompanyInfo{}, false
	}
	if strings.TrimSpace(info.Website) == "" {
		info.Website = normalize.Unknown
	}
	if strings.TrimSpace(info.Location) == "" {
		info.Location = normalize.Unknown
	}
	return info, true
}
