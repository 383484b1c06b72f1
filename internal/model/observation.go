// Package model defines the data contracts exchanged with the
// classification and extraction pipeline.
package model

import "strings"

// Observation is one classified posting submitted for aggregation.
// Fields are permissive: a missing confidence stays zero and missing
// patterns are treated as an empty set; only the verdict drives
// branching, and it is parsed tolerantly (see IsReal).
type Observation struct {
	CompanyName string   `json:"company_name"`
	Website     string   `json:"website,omitempty"`
	Location    string   `json:"location,omitempty"`
	Verdict     string   `json:"verdict"`
	Confidence  float64  `json:"confidence,omitempty"`
	Patterns    []string `json:"patterns,omitempty"`
}

// IsReal reports whether the verdict classifies the posting as real.
// Any verdict whose trimmed upper-case form starts with "REAL" counts
// as real; everything else, including an empty verdict, counts as
// fake.
func (o Observation) IsReal() bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(o.Verdict)), "REAL")
}

// CompanyInfo is the metadata an extractor pulls out of posting text.
// Fields default to "unknown" when the text gives no signal.
type CompanyInfo struct {
	CompanyName string `json:"company_name"`
	Website     string `json:"website"`
	Location    string `json:"location"`
}
