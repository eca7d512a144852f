package root

import (
	"github.com/spf13/cobra"
)

// RootCmd is the top-level "expense" command.
var RootCmd = &cobra.Command{
	Use:           "expense",
	Short:         "Expense tracker CLI",
	Long:          "Command line interface for the expense tracker API. Set EXPENSE_API_URL to point at a non-local server.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// GetRoot returns the RootCmd.
func GetRoot() *cobra.Command {
	return RootCmd
}
