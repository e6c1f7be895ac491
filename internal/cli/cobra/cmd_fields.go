package cobra

import (
	"github.com/spf13/cobra"

	"github.com/NielsdaWheelz/conf2wiki/internal/commands"
)

func newFieldsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fields [query]",
		Short: "Extract data-model field names from an SPL query",
		Long: `Extract data-model field names from an SPL query.

Prints the field names referenced by the query, one per line, sorted.
The query is taken from the first argument, or from stdin when no
argument is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Fields(args, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	return cmd
}
