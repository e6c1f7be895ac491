package render

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RiskAttrKey is the record attribute that may carry a JSON-encoded
// list of risk-object descriptors (Splunk ES risk action parameter).
const RiskAttrKey = "action.risk.param._risk"

// RiskVarName is the reserved template variable the formatted risk
// table is bound under. Omitted when no valid descriptor exists;
// templates guard with {{if index . "risk_objects"}}.
const RiskVarName = "risk_objects"

type riskObject struct {
	Field string `json:"risk_object_field"`
	Type  string `json:"risk_object_type"`
	Score any    `json:"risk_score"`
}

// riskTable converts the JSON descriptor list into a Markdown table.
// Entries missing any of the three sub-keys are dropped. Returns
// ok=false when the JSON does not parse or no entry is fully valid.
func riskTable(raw string) (string, bool) {
	var objects []riskObject
	if err := json.Unmarshal([]byte(raw), &objects); err != nil {
		return "", false
	}

	var rows []string
	for _, o := range objects {
		if o.Field == "" || o.Type == "" || o.Score == nil {
			continue
		}
		rows = append(rows, fmt.Sprintf("| %s | %s | %v |", o.Field, o.Type, o.Score))
	}
	if len(rows) == 0 {
		return "", false
	}

	var sb strings.Builder
	sb.WriteString("| Risk Object | Type | Score |\n")
	sb.WriteString("| --- | --- | --- |\n")
	sb.WriteString(strings.Join(rows, "\n"))
	return sb.String(), true
}
