// Package company holds the canonical per-company fraud statistics
// record and the resolve/merge logic that keeps it deduplicated.
package company

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sniftern/internguard/internal/normalize"
)

// CompanyRecord is one deduplicated company and its running verdict
// statistics. JSON field names follow the persisted document layout
// and are stable.
type CompanyRecord struct { //nolint:revive // stutters but widely used across codebase
	ID              string       `json:"id"`
	CompanyName     string       `json:"company_name"`
	CompanyWebsite  string       `json:"company_website"`
	TotalCount      int          `json:"total_analysis_count"`
	RealCount       int          `json:"real_count"`
	FakeCount       int          `json:"fake_count"`
	FraudPercentage float64      `json:"fraud_percentage"`
	Real            VerdictGroup `json:"real_internships"`
	Fake            VerdictGroup `json:"fake_internships"`
}

// VerdictGroup collects the entries and distinct fraud-pattern
// identifiers seen under one verdict.
type VerdictGroup struct {
	PatternMatches []string `json:"pattern_matches"`
	Entries        []Entry  `json:"entries"`
}

// Entry is one observation merged into a record. Entries are
// append-only and immutable once added.
type Entry struct {
	Website         string    `json:"website"`
	Location        string    `json:"location"`
	Timestamp       time.Time `json:"timestamp"`
	ConfidenceScore float64   `json:"confidence_score"`
}

// NewRecord creates an empty record for a standardized display name.
func NewRecord(displayName string) *CompanyRecord {
	return &CompanyRecord{
		ID:             uuid.New().String(),
		CompanyName:    displayName,
		CompanyWebsite: normalize.Unknown,
		Real:           VerdictGroup{PatternMatches: []string{}, Entries: []Entry{}},
		Fake:           VerdictGroup{PatternMatches: []string{}, Entries: []Entry{}},
	}
}

// AddPatterns merges pattern identifiers into the group, dropping
// duplicates while preserving first-seen order.
func (g *VerdictGroup) AddPatterns(patterns []string) {
	if len(patterns) == 0 {
		return
	}
	seen := make(map[string]struct{}, len(g.PatternMatches))
	for _, p := range g.PatternMatches {
		seen[p] = struct{}{}
	}
	for _, p := range patterns {
		if _, ok := seen[p]; ok {
			continue
		}
		g.PatternMatches = append(g.PatternMatches, p)
		seen[p] = struct{}{}
	}
}

// Recompute refreshes every derived field from the entry lists:
// total count, fraud percentage, and the canonical website.
func (r *CompanyRecord) Recompute() {
	r.TotalCount = r.RealCount + r.FakeCount
	r.CompanyWebsite = chooseWebsite(r.Real.Entries)
	if r.TotalCount > 0 {
		r.FraudPercentage = roundPct(float64(r.FakeCount) / float64(r.TotalCount) * 100)
	} else {
		r.FraudPercentage = 0.0
	}
}

// chooseWebsite picks the most frequent non-unknown website across
// REAL entries only; fake postings never influence the canonical
// website. Ties break toward the first website encountered.
func chooseWebsite(entries []Entry) string {
	counts := make(map[string]int, len(entries))
	var order []string
	for _, e := range entries {
		w := strings.TrimSpace(e.Website)
		if w == "" || strings.EqualFold(w, normalize.Unknown) {
			continue
		}
		if _, ok := counts[w]; !ok {
			order = append(order, w)
		}
		counts[w]++
	}

	best := normalize.Unknown
	bestCount := 0
	for _, w := range order {
		if counts[w] > bestCount {
			best = w
			bestCount = counts[w]
		}
	}
	return best
}

// Clone returns a deep copy. Stores hand out clones so a reader can
// never observe a record mid-merge.
func (r *CompanyRecord) Clone() *CompanyRecord {
	if r == nil {
		return nil
	}
	out := *r
	out.Real = r.Real.clone()
	out.Fake = r.Fake.clone()
	return &out
}

func (g VerdictGroup) clone() VerdictGroup {
	out := VerdictGroup{
		PatternMatches: make([]string, len(g.PatternMatches)),
		Entries:        make([]Entry, len(g.Entries)),
	}
	copy(out.PatternMatches, g.PatternMatches)
	copy(out.Entries, g.Entries)
	return out
}

func roundPct(v float64) float64 {
	return math.Round(v*100) / 100
}
