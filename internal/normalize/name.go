// Package normalize turns raw extracted company names and locations
// into canonical comparable forms.
package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Unknown is the sentinel for names and locations that carry no signal.
const Unknown = "unknown"

// genericNames lists placeholder strings the extraction pipeline
// produces when a posting never actually names its company.
var genericNames = map[string]struct{}{
	"company":          {},
	"the company":      {},
	"this company":     {},
	"our company":      {},
	"organization":     {},
	"the organization": {},
	"firm":             {},
	"the firm":         {},
	"employer":         {},
	"the employer":     {},
	"hiring company":   {},
	"a company":        {},
	"your company":     {},
	"unknown":          {},
	"n/a":              {},
	"na":               {},
}

// legalSuffixRes matches common legal entity suffixes at the end of a
// name. Order matters: compound suffixes come before their parts.
var legalSuffixRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s+pvt\.?\s*ltd\.?$`),
	regexp.MustCompile(`(?i)\s+private\s+limited$`),
	regexp.MustCompile(`(?i)\s+llc$`),
	regexp.MustCompile(`(?i)\s+inc\.?$`),
	regexp.MustCompile(`(?i)\s+ltd\.?$`),
	regexp.MustCompile(`(?i)\s+co\.?$`),
	regexp.MustCompile(`(?i)\s+corporation$`),
	regexp.MustCompile(`(?i)\s+corp\.?$`),
	regexp.MustCompile(`(?i)\s+limited$`),
}

var (
	trailingPunctRe = regexp.MustCompile(`[-|,:;.]+$`)
	nonAlnumRe      = regexp.MustCompile(`[^a-z0-9]`)
)

// maxNameTokens caps display names; anything longer is a sentence the
// extractor mistook for a name.
const maxNameTokens = 4

// Standardize converts a raw company name into its canonical display
// form:
//  1. Trim whitespace; reject generic placeholders ("the company", ...)
//  2. Strip legal suffixes (Pvt Ltd, LLC, Inc, Corp, ...)
//  3. Strip trailing punctuation
//  4. Keep at most the first 4 words
//  5. Title-case
//
// Returns Unknown for empty input, generic placeholders, and names
// that clean down to nothing.
func Standardize(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return Unknown
	}
	if isGeneric(name) {
		return Unknown
	}

	for _, re := range legalSuffixRes {
		name = strings.TrimSpace(re.ReplaceAllString(name, ""))
	}
	name = strings.TrimSpace(trailingPunctRe.ReplaceAllString(name, ""))

	if parts := strings.Fields(name); len(parts) > maxNameTokens {
		name = strings.Join(parts[:maxNameTokens], " ")
	}

	name = cases.Title(language.Und).String(name)

	if name == "" || isGeneric(name) {
		return Unknown
	}
	return name
}

// MatchKey reduces a name to its fuzzy comparison form: lowercase with
// every non-alphanumeric rune removed. "Google Inc." and "GOOGLE"
// share the key "google". An empty key means the name has no
// comparable content.
func MatchKey(name string) string {
	return nonAlnumRe.ReplaceAllString(strings.ToLower(name), "")
}

func isGeneric(name string) bool {
	_, ok := genericNames[strings.ToLower(name)]
	return ok
}
