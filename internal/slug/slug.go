// Package slug derives URL-safe identifiers from human-readable names.
package slug

import (
	"fmt"
	"strings"
)

// Make lowercases name and collapses every run of non-alphanumeric characters
// into a single hyphen, trimming leading and trailing hyphens. An empty or
// fully non-alphanumeric name yields "untitled".
func Make(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen

	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "untitled"
	}
	return s
}

// WithSuffix returns base unchanged for attempt 0 and "base-N" for attempt
// N >= 1, starting at -2 so the first retry of "everest-trek" is
// "everest-trek-2".
func WithSuffix(base string, attempt int) string {
	if attempt == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, attempt+1)
}

// CopySuffix returns "base-copy" for attempt 0 and "base-copy-N" for later
// attempts, used when duplicating an entity.
func CopySuffix(base string, attempt int) string {
	if attempt == 0 {
		return base + "-copy"
	}
	return fmt.Sprintf("%s-copy-%d", base, attempt+1)
}
