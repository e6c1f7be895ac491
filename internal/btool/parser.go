// Package btool runs `splunk btool` and parses its stanza output.
package btool

import (
	"strings"
)

// Records maps saved-search name to its attribute key/value pairs.
type Records map[string]map[string]string

// Parse converts btool's line-oriented output into Records.
//
// Each line carries a metadata prefix (the contributing conf file)
// followed by the payload. The line is split on the first run of
// whitespace; the prefix is discarded. A payload of the form [name]
// opens a new current record; key=value payloads are attributed to the
// current record until the next header. Lines before the first header
// are silently ignored, as are lines with no payload. A record stays
// open until the next header or end of input.
//
// Duplicate keys within a record keep the last occurrence. An empty
// header [] is legal and keys the record under the empty string. Only
// the first = of a payload delimits key from value; later = characters
// stay in the value verbatim.
func Parse(text string) Records {
	records := Records{}
	var current map[string]string

	for _, line := range strings.Split(text, "\n") {
		_, right, ok := splitPrefix(line)
		if !ok {
			continue
		}

		if strings.HasPrefix(right, "[") && strings.HasSuffix(right, "]") {
			name := strings.TrimSpace(right[1 : len(right)-1])
			if _, exists := records[name]; !exists {
				records[name] = map[string]string{}
			}
			current = records[name]
			continue
		}

		if current == nil {
			continue
		}
		if key, val, found := strings.Cut(right, "="); found {
			current[strings.TrimSpace(key)] = strings.TrimSpace(val)
		}
	}

	return records
}

// splitPrefix splits a trimmed line on its first run of whitespace into
// the metadata prefix and the payload. The payload keeps its internal
// whitespace. ok is false when the line has fewer than two fields.
func splitPrefix(line string) (prefix, payload string, ok bool) {
	trimmed := strings.TrimSpace(line)
	idx := strings.IndexAny(trimmed, " \t")
	if idx < 0 {
		return "", "", false
	}
	payload = strings.TrimSpace(trimmed[idx:])
	if payload == "" {
		return "", "", false
	}
	return trimmed[:idx], payload, true
}
