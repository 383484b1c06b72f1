package normalize

import "strings"

// Canonical location classes. Anything else is a literal on-site
// location as extracted.
const (
	LocationRemote = "Remote"
	LocationHybrid = "Hybrid"
)

// remoteKeywords are substrings that mark a posting as remote. The
// remote check runs before the hybrid check, so a location mentioning
// both classifies as Remote.
var remoteKeywords = []string{"remote", "virtual", "online", "work from home", "wfh"}

// ClassifyLocation maps a raw location string to Remote, Hybrid, the
// trimmed literal location, or Unknown for empty input.
func ClassifyLocation(raw string) string {
	loc := strings.TrimSpace(raw)
	if loc == "" {
		return Unknown
	}

	// Already classified upstream.
	if loc == LocationRemote || loc == LocationHybrid {
		return loc
	}

	lower := strings.ToLower(loc)
	for _, kw := range remoteKeywords {
		if strings.Contains(lower, kw) {
			return LocationRemote
		}
	}
	if strings.Contains(lower, "hybrid") {
		return LocationHybrid
	}

	return loc
}
