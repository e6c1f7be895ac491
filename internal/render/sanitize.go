package render

import "regexp"

// MaxFilenameLen caps sanitized identifiers.
const MaxFilenameLen = 180

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename maps a saved-search name to a filesystem-safe
// identifier: every character outside [A-Za-z0-9_.-] becomes _, then
// the result is truncated to MaxFilenameLen. Total and deterministic;
// collisions are possible and accepted.
func SanitizeFilename(name string) string {
	s := unsafeChars.ReplaceAllString(name, "_")
	if len(s) > MaxFilenameLen {
		s = s[:MaxFilenameLen]
	}
	return s
}
