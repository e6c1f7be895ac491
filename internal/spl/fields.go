// Package spl extracts field names from Splunk SPL query strings.
package spl

import (
	"regexp"
	"sort"
	"strings"
)

// Best-effort heuristics over the query text, not an SPL parser. The
// patterns run against a progressively cleaned copy of the query:
// macros, denylisted calls, escapes, and string literals are stripped
// before any field is collected.
var (
	reMacro     = regexp.MustCompile("`[^`]*`")
	reDenyCall  = regexp.MustCompile(`(?i)\b(drop_dm_object_name|security_content_ctime|lookup|eval|tostring)\s*\(.*?\)`)
	reStringLit = regexp.MustCompile(`"[^"]*"`)
	reCompare   = regexp.MustCompile(`\b([a-zA-Z0-9_.]+)\s*(?:=|!=|>=|<=|IN|>|<)`)
	reByClause  = regexp.MustCompile(`(?i)\bby\s+([^|` + "\n" + `]+)`)
	reRexField  = regexp.MustCompile(`\brex\s+field=([a-zA-Z0-9_.]+)`)
	reAggCall   = regexp.MustCompile(`(?i)\b(?:min|max|count|avg|sum|dc|stdev)\s*\(\s*([a-zA-Z0-9_.]+)\s*\)`)
)

// Keywords that look like fields but are query structure.
var stopwords = map[string]bool{
	"field":     true,
	"datamodel": true,
	"from":      true,
}

// Fields referenced under this namespace belong to the data model, not
// the search result.
const namespacePrefix = "all_traffic"

// ExtractFields returns the sorted, deduplicated set of field names
// referenced by the query. Malformed input never fails: no match means
// an empty result.
func ExtractFields(query string) []string {
	cleaned := reMacro.ReplaceAllString(query, "")
	cleaned = reDenyCall.ReplaceAllString(cleaned, "")
	cleaned = strings.ReplaceAll(cleaned, `\`, "")
	cleaned = reStringLit.ReplaceAllString(cleaned, "")

	fields := map[string]bool{}

	for _, m := range reCompare.FindAllStringSubmatch(cleaned, -1) {
		fields[m[1]] = true
	}

	for _, m := range reByClause.FindAllStringSubmatch(cleaned, -1) {
		for _, f := range strings.Split(m[1], ",") {
			fields[strings.TrimSpace(f)] = true
		}
	}

	for _, m := range reRexField.FindAllStringSubmatch(cleaned, -1) {
		fields[m[1]] = true
	}

	for _, m := range reAggCall.FindAllStringSubmatch(cleaned, -1) {
		fields[m[1]] = true
	}

	filtered := map[string]bool{}
	for f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		lower := strings.ToLower(f)
		if stopwords[lower] || strings.HasPrefix(lower, namespacePrefix) {
			continue
		}
		filtered[f] = true
	}

	out := make([]string, 0, len(filtered))
	for f := range filtered {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
