package expenses

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/crucial707/expense-tracker/cmd/cli/auth"
	"github.com/crucial707/expense-tracker/cmd/cli/output"
	"github.com/crucial707/expense-tracker/internal/models"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// ==========================
// Init Expenses
// ==========================
func InitExpenses(rootCmd *cobra.Command) {
	expensesCmd := &cobra.Command{
		Use:     "expenses",
		Aliases: []string{"exp"},
		Short:   "Manage your expenses",
	}

	expensesCmd.AddCommand(
		addExpenseCmd(),
		listExpensesCmd(),
		editExpenseCmd(),
		deleteExpenseCmd(),
		auditCmd(),
	)

	rootCmd.AddCommand(expensesCmd)
}

type messageResponse struct {
	Message string `json:"message"`
	ID      int    `json:"id,omitempty"`
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

// ==========================
// ADD
// ==========================
func addExpenseCmd() *cobra.Command {
	var amount, category, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		RunE: func(cmd *cobra.Command, args []string) error {
			if amount == "" || category == "" {
				return errors.New("--amount and --category are required")
			}
			amt, err := parseAmount(amount)
			if err != nil {
				return err
			}

			payload := map[string]any{
				"amount":      amt,
				"category":    category,
				"description": description,
			}
			var resp messageResponse
			if err := auth.CallAuthenticated(http.MethodPost, "/add", payload, &resp); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (id %d)\n", resp.Message, resp.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "amount, e.g. 12.50 (negative for refunds)")
	cmd.Flags().StringVar(&category, "category", "", "category, e.g. Food")
	cmd.Flags().StringVar(&description, "description", "", "optional description")
	return cmd
}

// ==========================
// LIST
// ==========================
func listExpensesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your expenses",
		RunE: func(cmd *cobra.Command, args []string) error {
			var list []models.Expense
			if err := auth.CallAuthenticated(http.MethodGet, "/list", nil, &list); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return output.PrintJSON(out, list)
			}

			rows := make([][]interface{}, 0, len(list))
			total := decimal.Zero
			for _, e := range list {
				rows = append(rows, []interface{}{e.ID, e.Amount.StringFixed(2), e.Category, e.Description, e.CreatedAt.Local().Format("2006-01-02 15:04")})
				total = total.Add(e.Amount)
			}
			output.RenderTable(out, []string{"ID", "Amount", "Category", "Description", "Created"}, rows)
			if len(list) > 0 {
				fmt.Fprintf(out, "Total: %s\n", total.StringFixed(2))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

// ==========================
// EDIT
// ==========================
func editExpenseCmd() *cobra.Command {
	var id int
	var amount, category, description string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Change fields of an expense; omitted fields keep their value",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id <= 0 {
				return errors.New("--id is required")
			}

			payload := map[string]any{"id": id}
			if cmd.Flags().Changed("amount") {
				amt, err := parseAmount(amount)
				if err != nil {
					return err
				}
				payload["amount"] = amt
			}
			if cmd.Flags().Changed("category") {
				payload["category"] = category
			}
			if cmd.Flags().Changed("description") {
				payload["description"] = description
			}

			var resp messageResponse
			if err := auth.CallAuthenticated(http.MethodPost, "/edit", payload, &resp); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "expense id")
	cmd.Flags().StringVar(&amount, "amount", "", "new amount")
	cmd.Flags().StringVar(&category, "category", "", "new category")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteExpenseCmd() *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an expense permanently",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id <= 0 {
				return errors.New("--id is required")
			}

			var resp messageResponse
			if err := auth.CallAuthenticated(http.MethodPost, "/delete", map[string]int{"id": id}, &resp); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "expense id")
	return cmd
}

// ==========================
// AUDIT
// ==========================
func auditCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the history of your expense changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			var entries []models.AuditEntry
			if err := auth.CallAuthenticated(http.MethodGet, "/audit", nil, &entries); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return output.PrintJSON(out, entries)
			}

			rows := make([][]interface{}, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []interface{}{e.ID, string(e.Action), e.ExpenseID, e.Timestamp.Local().Format("2006-01-02 15:04:05")})
			}
			output.RenderTable(out, []string{"ID", "Action", "Expense", "When"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}
