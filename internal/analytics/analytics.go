// Package analytics provides read-only rollups over the company
// record set for the dashboard surface.
package analytics

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sniftern/internguard/internal/company"
)

// DefaultTopN is the leaderboard size when the caller does not ask
// for a specific count.
const DefaultTopN = 3

// Service answers aggregation queries. All queries are safe to run
// concurrently with merges; they read whole-record snapshots and
// never fail on an empty record set.
type Service struct {
	store company.Store
}

// New creates an analytics service over the given store.
func New(store company.Store) *Service {
	return &Service{store: store}
}

// Totals are the global counters across every company.
type Totals struct {
	TotalAnalyses   int     `json:"total_analyses"`
	TotalReal       int     `json:"total_real"`
	TotalFake       int     `json:"total_fake"`
	FraudPercentage float64 `json:"fraud_percentage"`
}

// PieChart is the legit-vs-fake series for the dashboard pie.
type PieChart struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// FraudRanking is one leaderboard row.
type FraudRanking struct {
	CompanyName     string  `json:"company_name"`
	FraudPercentage float64 `json:"fraud_percentage"`
	TotalCount      int     `json:"total_analysis_count"`
}

// LocationStats tallies entries by workplace type.
type LocationStats struct {
	Remote int `json:"remote"`
	Onsite int `json:"onsite"`
}

// Dashboard is the full analytics payload served to the UI.
type Dashboard struct {
	Success           bool           `json:"success"`
	Totals            *Totals        `json:"totals"`
	PieChart          *PieChart      `json:"pie_chart"`
	TopFraudCompanies []FraudRanking `json:"top_fraud_companies"`
	LocationStats     *LocationStats `json:"location_stats"`
	Patterns          []string       `json:"patterns_placeholder"`
	Recommendations   []string       `json:"recommendations_placeholder"`
}

// Totals sums real/fake counts across all records.
func (s *Service) Totals(ctx context.Context) (*Totals, error) {
	records, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "analytics: totals")
	}

	t := &Totals{}
	for i := range records {
		t.TotalReal += records[i].RealCount
		t.TotalFake += records[i].FakeCount
	}
	t.TotalAnalyses = t.TotalReal + t.TotalFake
	if t.TotalAnalyses > 0 {
		t.FraudPercentage = roundPct(float64(t.TotalFake) / float64(t.TotalAnalyses) * 100)
	}
	return t, nil
}

// PieChart returns the two labeled legit/fake values.
func (s *Service) PieChart(ctx context.Context) (*PieChart, error) {
	t, err := s.Totals(ctx)
	if err != nil {
		return nil, err
	}
	return &PieChart{
		Labels: []string{"Legit", "Fake"},
		Values: []int{t.TotalReal, t.TotalFake},
	}, nil
}

// TopFraudCompanies ranks companies with any fraud, descending by
// fraud percentage. The sort is stable so ties keep their original
// relative order. n defaults to DefaultTopN when not positive.
func (s *Service) TopFraudCompanies(ctx context.Context, n int) ([]FraudRanking, error) {
	if n <= 0 {
		n = DefaultTopN
	}

	records, err := s.store.FindWhere(ctx, func(r *company.CompanyRecord) bool {
		return r.FraudPercentage > 0
	})
	if err != nil {
		return nil, eris.Wrap(err, "analytics: top fraud companies")
	}

	frauds := make([]FraudRanking, 0, len(records))
	for i := range records {
		frauds = append(frauds, FraudRanking{
			CompanyName:     records[i].CompanyName,
			FraudPercentage: records[i].FraudPercentage,
			TotalCount:      records[i].TotalCount,
		})
	}
	sort.SliceStable(frauds, func(i, j int) bool {
		return frauds[i].FraudPercentage > frauds[j].FraudPercentage
	})

	if len(frauds) > n {
		frauds = frauds[:n]
	}
	return frauds, nil
}

// RemoteVsOnsite counts every entry, real and fake, across all
// records. Only a location equal to "remote" after trimming and
// lowercasing counts as remote; Hybrid and literal locations both
// land in onsite.
func (s *Service) RemoteVsOnsite(ctx context.Context) (*LocationStats, error) {
	records, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "analytics: remote vs onsite")
	}

	stats := &LocationStats{}
	for i := range records {
		tallyEntries(stats, records[i].Real.Entries)
		tallyEntries(stats, records[i].Fake.Entries)
	}
	return stats, nil
}

// Dashboard assembles the complete analytics payload.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	totals, err := s.Totals(ctx)
	if err != nil {
		return nil, err
	}
	pie, err := s.PieChart(ctx)
	if err != nil {
		return nil, err
	}
	top, err := s.TopFraudCompanies(ctx, DefaultTopN)
	if err != nil {
		return nil, err
	}
	locations, err := s.RemoteVsOnsite(ctx)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Success:           true,
		Totals:            totals,
		PieChart:          pie,
		TopFraudCompanies: top,
		LocationStats:     locations,
		Patterns:          []string{},
		Recommendations:   []string{},
	}, nil
}

func tallyEntries(stats *LocationStats, entries []company.Entry) {
	for _, e := range entries {
		if strings.EqualFold(strings.TrimSpace(e.Location), "remote") {
			stats.Remote++
		} else {
			stats.Onsite++
		}
	}
}

func roundPct(v float64) float64 {
	return math.Round(v*100) / 100
}
