package cmd

import (
	"github.com/spf13/cobra"

	"stitch.dev/pkg/stitch/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [catalog]",
		Short: "List the accessible objects of a catalog",
		Long:  listLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.List(cmd.Context(), domain.ListArgs{
				CatalogPath: catalogPath(args),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
