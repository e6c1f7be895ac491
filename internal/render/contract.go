// Package render turns parsed saved-search records into Markdown
// documents through a template.
package render

import (
	"regexp"
	"sort"
)

// Template variables are referenced either as {{index . "some.key"}}
// (attribute keys contain dots) or as plain {{.name}}.
var (
	reIndexRef = regexp.MustCompile(`index\s+\.\s+"([^"]*)"`)
	rePlainRef = regexp.MustCompile(`\{\{-?\s*\.([A-Za-z0-9_]+)`)
)

// ExtractContractKeys returns the sorted set of variable names the
// template text references. Extracted once per template and cached for
// the run by the caller.
func ExtractContractKeys(text string) []string {
	set := map[string]bool{}
	for _, m := range reIndexRef.FindAllStringSubmatch(text, -1) {
		set[m[1]] = true
	}
	for _, m := range rePlainRef.FindAllStringSubmatch(text, -1) {
		set[m[1]] = true
	}

	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
