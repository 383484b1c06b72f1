// Package extract pulls company metadata (name, website, location)
// out of raw posting text, either heuristically or via an LLM.
package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sniftern/internguard/internal/normalize"
)

// legalEndingRes strips legal entity markers anywhere they end a
// candidate name fragment.
var legalEndingRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bpvt\.?\s*ltd\.?\b`),
	regexp.MustCompile(`(?i)\bprivate\s+limited\b`),
	regexp.MustCompile(`(?i)\b(llc|inc|ltd|co\.?|corporation)\b`),
}

var (
	trailingSepRe  = regexp.MustCompile(`[-|,:;]+$`)
	multiSpaceRe   = regexp.MustCompile(`\s+`)
	companyLineRe  = regexp.MustCompile(`(?i)company\s*[:\-–]\s*(.+)`)
	aboutLineRe    = regexp.MustCompile(`(?i)^about\s+(.+)`)
	wordRe         = regexp.MustCompile(`^[A-Za-z0-9&\-']+$`)
	verbRe         = regexp.MustCompile(`(?i)\b(is|are|provides|offers|requires|includes)\b`)
	byLineRe       = regexp.MustCompile(`\bby\s+([A-Z][A-Za-z0-9&\-\s]{2,100})`)
	postedByRe     = regexp.MustCompile(`(?i)(posted\s+by|via)\s+([A-Z][A-Za-z0-9&\-\s]{2,60})`)
	titleSeqRe     = regexp.MustCompile(`([A-Z][A-Za-z0-9&\-']+(?:\s+[A-Z][A-Za-z0-9&\-']+){0,4})`)
	candidateCutRe = regexp.MustCompile(`[.,\-:(\n]`)
	nonAlnumSpRe   = regexp.MustCompile(`[^a-zA-Z0-9 ]+`)

	httpURLRe    = regexp.MustCompile(`(?i)(https?://[^\s,)\]]+)`)
	wwwURLRe     = regexp.MustCompile(`(?i)(www\.[A-Za-z0-9\-.]+\.[A-Za-z]{2,})`)
	bareDomainRe = regexp.MustCompile(`(?i)([A-Za-z0-9\-]+\.(?:com|in|io|co|net|org|edu|gov|tech|ai)\b)`)

	locationLineRe = regexp.MustCompile(`(?i)location\s*[:\-][ \t]*([A-Za-z0-9,()\- ]+)`)
	basedInRe      = regexp.MustCompile(`(?i)based in\s+([A-Za-z, ]+)`)
	bareRemoteRe   = regexp.MustCompile(`(?i)\b(remote|virtual|work from home|wfh)\b`)
)

// aboutGenericPrefixes are "About ..." headings that introduce the
// role rather than the company.
var aboutGenericPrefixes = []string{
	"about the job",
	"about job",
	"about this job",
	"about role",
	"about the role",
}

var standaloneBlacklist = map[string]struct{}{
	"about the job":    {},
	"job title":        {},
	"about":            {},
	"responsibilities": {},
	"role overview":    {},
}

// CompanyName heuristically extracts a company name from posting
// text. It tries, in order: an explicit "Company:" line, an
// "About <Company>" heading, a standalone title-cased line, a
// "by <Company>" phrase, a "posted by"/"via" phrase, and finally the
// first title-cased token sequence anywhere. Returns "unknown" when
// nothing plausible is found.
func CompanyName(text string) string {
	if strings.TrimSpace(text) == "" {
		return normalize.Unknown
	}

	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			lines = append(lines, ln)
		}
	}

	// 1) Explicit "Company:" style.
	for _, ln := range lines {
		if m := companyLineRe.FindStringSubmatch(ln); m != nil {
			if candidate := cleanCandidate(m[1]); candidate != "" {
				return candidate
			}
		}
	}

	// 2) "About <Company>" headings, skipping generic role intros.
	for _, ln := range lines {
		cleanLn := multiSpaceRe.ReplaceAllString(
			nonAlnumSpRe.ReplaceAllString(strings.ToLower(ln), " "), " ")
		cleanLn = strings.TrimSpace(cleanLn)
		if hasAnyPrefix(cleanLn, aboutGenericPrefixes) {
			continue
		}

		m := aboutLineRe.FindStringSubmatch(ln)
		if m == nil {
			continue
		}
		candidate := strings.TrimSpace(m[1])
		candNorm := strings.ToLower(nonAlnumSpRe.ReplaceAllString(candidate, ""))
		if strings.HasPrefix(candNorm, "thejob") ||
			strings.HasPrefix(candNorm, "thisjob") ||
			strings.HasPrefix(candNorm, "role") {
			continue
		}

		if idx := candidateCutRe.FindStringIndex(candidate); idx != nil {
			candidate = candidate[:idx[0]]
		}
		candidate = cleanCandidate(candidate)
		low := strings.ToLower(candidate)
		if candidate != "" && low != "the job" && low != "this role" {
			return candidate
		}
	}

	// 3) Standalone title-cased lines.
	for _, ln := range lines {
		words := strings.Fields(ln)
		if len(words) < 1 || len(words) > 6 {
			continue
		}
		allWords := true
		titleLike := 0
		for _, w := range words {
			if !wordRe.MatchString(w) {
				allWords = false
				break
			}
			if w[0] >= 'A' && w[0] <= 'Z' {
				titleLike++
			}
		}
		if !allWords || titleLike < 1 {
			continue
		}
		if verbRe.MatchString(ln) {
			continue
		}
		// Attribution lines are handled by the dedicated steps below,
		// which know to drop the "by"/"via" prefix.
		if byLineRe.MatchString(ln) || postedByRe.MatchString(ln) {
			continue
		}
		candidate := cleanCandidate(ln)
		if _, blocked := standaloneBlacklist[strings.ToLower(candidate)]; blocked {
			continue
		}
		if candidate != "" {
			return candidate
		}
	}

	// 4) "by <Company>".
	for _, ln := range lines {
		if m := byLineRe.FindStringSubmatch(ln); m != nil {
			return cleanCandidate(m[1])
		}
	}

	// 5) "posted by" / "via".
	for _, ln := range lines {
		if m := postedByRe.FindStringSubmatch(ln); m != nil {
			return cleanCandidate(m[2])
		}
	}

	// Fallback: first title-cased token sequence anywhere.
	if m := titleSeqRe.FindStringSubmatch(text); m != nil {
		return cleanCandidate(m[1])
	}

	return normalize.Unknown
}

// Website extracts the first URL-ish token from the text: a full
// http(s) URL, a www. host, or a bare domain with a known TLD.
func Website(text string) string {
	if text == "" {
		return normalize.Unknown
	}
	if m := httpURLRe.FindStringSubmatch(text); m != nil {
		return strings.ToLower(strings.TrimRight(strings.TrimSpace(m[1]), ".,)"))
	}
	if m := wwwURLRe.FindStringSubmatch(text); m != nil {
		return strings.ToLower(m[1])
	}
	if m := bareDomainRe.FindStringSubmatch(text); m != nil {
		return strings.ToLower(m[1])
	}
	return normalize.Unknown
}

// Location extracts a location from the text via "Location:" lines,
// "based in" phrases, or bare remote keywords. Hybrid mentions yield
// "unknown" here; classification into Hybrid happens downstream on
// already-labeled values.
func Location(text string) string {
	if text == "" {
		return normalize.Unknown
	}

	if m := locationLineRe.FindStringSubmatch(text); m != nil {
		loc := strings.TrimSpace(m[1])
		low := strings.ToLower(loc)
		if strings.Contains(low, "remote") || strings.Contains(low, "virtual") {
			return normalize.LocationRemote
		}
		if strings.Contains(low, "hybrid") {
			return normalize.Unknown
		}
		return loc
	}

	if m := basedInRe.FindStringSubmatch(text); m != nil {
		loc := strings.TrimSpace(m[1])
		low := strings.ToLower(loc)
		if strings.Contains(low, "hybrid") {
			return normalize.Unknown
		}
		if strings.Contains(low, "remote") || strings.Contains(low, "virtual") {
			return normalize.LocationRemote
		}
		return loc
	}

	if bareRemoteRe.MatchString(text) {
		return normalize.LocationRemote
	}

	return normalize.Unknown
}

// cleanCandidate strips legal suffixes and separators from a raw
// candidate and normalizes its casing, keeping short all-caps tokens
// (acronyms) intact.
func cleanCandidate(raw string) string {
	n := strings.TrimSpace(raw)
	for _, re := range legalEndingRes {
		n = strings.TrimSpace(re.ReplaceAllString(n, ""))
	}
	n = strings.TrimSpace(trailingSepRe.ReplaceAllString(n, ""))
	if n == "" {
		return ""
	}

	caser := cases.Title(language.Und)
	words := strings.Fields(n)
	for i, w := range words {
		if len(w) <= 5 && w == strings.ToUpper(w) && w != strings.ToLower(w) {
			continue // keep acronyms as-is
		}
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
