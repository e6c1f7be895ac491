package commands

import (
	"fmt"
	"io"

	"github.com/NielsdaWheelz/conf2wiki/internal/spl"
)

// Fields extracts data-model field names from an SPL query and prints
// them one per line, sorted. The query comes from args when present,
// otherwise from stdin.
func Fields(args []string, stdin io.Reader, stdout io.Writer) error {
	var query string
	if len(args) > 0 {
		query = args[0]
	} else {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return err
		}
		query = string(raw)
	}

	for _, field := range spl.ExtractFields(query) {
		fmt.Fprintln(stdout, field)
	}
	return nil
}
