package render

import (
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/NielsdaWheelz/conf2wiki/internal/errors"
	"github.com/NielsdaWheelz/conf2wiki/internal/fs"
	"github.com/NielsdaWheelz/conf2wiki/internal/spl"
)

// Fallback is substituted for contract keys the record does not carry,
// so no template variable is ever left unresolved.
const Fallback = "(not available)"

// SearchFieldsVarName is the reserved variable carrying the field names
// extracted from the record's search string. Bound only when the record
// has a search attribute.
const SearchFieldsVarName = "search_fields"

// Document is a rendered artifact ready for export.
type Document struct {
	// Identifier is the sanitized, filesystem-safe name.
	Identifier string

	// Body is the rendered Markdown.
	Body string
}

// Builder renders records through one parsed template. The template
// and its contract are loaded once and reused for the whole run.
type Builder struct {
	tmpl     *template.Template
	contract []string
}

// NewBuilder loads and parses the template at path and extracts its
// contract. A missing or unparsable template is fatal for the run.
func NewBuilder(fsys fs.FS, path string) (*Builder, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewWithDetails(
				errors.ETemplateNotFound,
				fmt.Sprintf("template not found: %s", path),
				map[string]string{"template": path},
			)
		}
		return nil, errors.Wrap(errors.ETemplateNotFound, "failed to read template", err)
	}

	tmpl, err := template.New("document").Parse(string(data))
	if err != nil {
		return nil, errors.WrapWithDetails(
			errors.ETemplateInvalid,
			"failed to parse template",
			err,
			map[string]string{"template": path},
		)
	}

	return &Builder{
		tmpl:     tmpl,
		contract: ExtractContractKeys(string(data)),
	}, nil
}

// Contract returns the variable names the template references.
func (b *Builder) Contract() []string {
	return b.contract
}

// Render builds the document for one record. Every contract key is
// bound to the record attribute or to Fallback; the record name always
// wins the title binding. A render failure is a per-record error, not
// fatal to the run.
func (b *Builder) Render(name string, attrs map[string]string) (Document, error) {
	context := make(map[string]any, len(b.contract)+2)
	for _, key := range b.contract {
		// Enrichment variables are bound below only when valid, so
		// templates can test for their absence.
		if key == RiskVarName || key == SearchFieldsVarName {
			continue
		}
		if val, ok := attrs[key]; ok {
			context[key] = val
		} else {
			context[key] = Fallback
		}
	}
	context["title"] = name

	if raw, ok := attrs[RiskAttrKey]; ok {
		if table, valid := riskTable(raw); valid {
			context[RiskVarName] = table
		}
	}
	if search, ok := attrs["search"]; ok {
		if fields := spl.ExtractFields(search); len(fields) > 0 {
			context[SearchFieldsVarName] = strings.Join(fields, ", ")
		}
	}

	var sb strings.Builder
	if err := b.tmpl.Execute(&sb, context); err != nil {
		return Document{}, fmt.Errorf("failed to render %q: %w", name, err)
	}

	return Document{
		Identifier: SanitizeFilename(name),
		Body:       sb.String(),
	}, nil
}
