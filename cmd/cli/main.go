package main

import (
	"fmt"
	"os"

	"github.com/crucial707/expense-tracker/cmd/cli/expenses"
	"github.com/crucial707/expense-tracker/cmd/cli/root"
	"github.com/crucial707/expense-tracker/cmd/cli/users"
)

func main() {
	rootCmd := root.GetRoot()
	users.InitUsers(rootCmd)
	expenses.InitExpenses(rootCmd)

	// Execute the root Cobra command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
