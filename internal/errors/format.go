// Package errors provides error formatting for conf2wiki CLI output.
package errors

import (
	"io"
	"sort"
	"strings"
)

// PrintOptions controls error output formatting.
type PrintOptions struct {
	// Verbose enables detailed error output with more context keys.
	Verbose bool
}

// Context key whitelist (default mode, in order).
var defaultContextKeys = []string{
	"op",
	"binary",
	"command",
	"template",
	"export_dir",
	"endpoint",
	"path",
	"exit_code",
	"timeout",
	"log",
}

// Additional context keys for verbose mode.
var verboseContextKeys = []string{
	"op",
	"binary",
	"command",
	"template",
	"export_dir",
	"endpoint",
	"path",
	"page_id",
	"exit_code",
	"timeout",
	"attempts",
	"duration_ms",
	"stderr",
	"log",
	"hint",
}

// Max chars for single-line context values.
const maxValueLen = 256

// Format formats an error for display without I/O.
// Pure function: never reads files or performs network I/O.
func Format(err error, opts PrintOptions) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	ce, isCoded := AsConf2WikiError(err)
	if !isCoded {
		sb.WriteString(err.Error())
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString("error_code: ")
	sb.WriteString(string(ce.Code))
	sb.WriteString("\n")
	sb.WriteString(ce.Msg)
	sb.WriteString("\n")

	contextKeys := defaultContextKeys
	if opts.Verbose {
		contextKeys = verboseContextKeys
	}

	printedKeys := make(map[string]bool)
	wroteContext := false

	for _, key := range contextKeys {
		if ce.Details == nil {
			continue
		}
		val, ok := ce.Details[key]
		if !ok || val == "" {
			continue
		}
		// hint is printed separately at the end
		if key == "hint" {
			continue
		}
		if !wroteContext {
			sb.WriteString("\n")
			wroteContext = true
		}
		printedKeys[key] = true
		sb.WriteString(key)
		sb.WriteString(": ")
		sb.WriteString(sanitizeValue(val, maxValueLen))
		sb.WriteString("\n")
	}

	// In verbose mode, print remaining keys under extra:
	if opts.Verbose && ce.Details != nil {
		var extraKeys []string
		for key := range ce.Details {
			if !printedKeys[key] && key != "hint" {
				extraKeys = append(extraKeys, key)
			}
		}
		if len(extraKeys) > 0 {
			sort.Strings(extraKeys)
			sb.WriteString("\nextra:\n")
			for _, key := range extraKeys {
				val := ce.Details[key]
				if val == "" {
					continue
				}
				sb.WriteString("  ")
				sb.WriteString(key)
				sb.WriteString(": ")
				sb.WriteString(sanitizeValue(val, maxValueLen))
				sb.WriteString("\n")
			}
		}
	}

	if ce.Details != nil {
		if hint, ok := ce.Details["hint"]; ok && hint != "" {
			sb.WriteString("\nhint: ")
			sb.WriteString(hint)
			sb.WriteString("\n")
		}
	}

	for _, try := range deriveTryLines(ce) {
		sb.WriteString("try: ")
		sb.WriteString(try)
		sb.WriteString("\n")
	}

	return sb.String()
}

// PrintWithOptions writes a formatted error to w with the given options.
func PrintWithOptions(w io.Writer, err error, opts PrintOptions) {
	if err == nil {
		return
	}
	_, _ = io.WriteString(w, Format(err, opts))
}

// sanitizeValue sanitizes a value for single-line context output:
// CRLF normalized, newlines escaped, truncated to maxLen.
func sanitizeValue(val string, maxLen int) string {
	val = strings.TrimRight(val, " \t\r\n")
	val = strings.ReplaceAll(val, "\r\n", "\n")
	val = strings.ReplaceAll(val, "\n", "\\n")
	if len(val) > maxLen {
		return val[:maxLen] + "…"
	}
	return val
}

// deriveTryLines returns actionable suggestions based on error code.
func deriveTryLines(ce *Conf2WikiError) []string {
	if ce == nil {
		return nil
	}

	var lines []string

	switch ce.Code {
	case ETokenMissing:
		lines = append(lines, "export CONF2MD_WIKIJS_API_TOKEN=<token>")
	case ESplunkBinNotFound:
		lines = append(lines, "set SPLUNK_BIN in config.txt to the directory containing the splunk binary")
	case EExportDirMissing:
		lines = append(lines, "conf2wiki export")
	}

	return lines
}
