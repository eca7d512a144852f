package expenses

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/crucial707/expense-tracker/cmd/cli/config"
	"github.com/crucial707/expense-tracker/internal/models"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// setup points the CLI at srv and stores a token when loggedIn.
func setup(t *testing.T, srv *httptest.Server, loggedIn bool) {
	t.Helper()
	t.Setenv("EXPENSE_API_URL", srv.URL)
	t.Setenv("EXPENSE_TOKEN_FILE", filepath.Join(t.TempDir(), "token"))
	if loggedIn {
		if err := config.SaveToken("tok-123"); err != nil {
			t.Fatalf("SaveToken: %v", err)
		}
	}
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestListExpenses_TableOutput(t *testing.T) {
	list := []models.Expense{
		{ID: 1, Amount: decimal.RequireFromString("51"), Category: "Food", Description: "Test description", CreatedAt: time.Now()},
		{ID: 2, Amount: decimal.RequireFromString("9.5"), Category: "Travel", CreatedAt: time.Now()},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/list" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization: got %q", got)
		}
		_ = json.NewEncoder(w).Encode(list)
	}))
	defer srv.Close()
	setup(t, srv, true)

	out, err := run(t, listExpensesCmd())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Food") || !strings.Contains(out, "Travel") {
		t.Fatalf("expected categories in output, got: %s", out)
	}
	if !strings.Contains(out, "Total: 60.50") {
		t.Errorf("expected total in output, got: %s", out)
	}
}

func TestListExpenses_JSONOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"amount":51,"category":"Food","description":"","created_at":"2026-01-02T03:04:05Z"}]`))
	}))
	defer srv.Close()
	setup(t, srv, true)

	out, err := run(t, listExpensesCmd(), "--json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("expected JSON, got %q: %v", out, err)
	}
	if len(decoded) != 1 || decoded[0]["category"] != "Food" {
		t.Errorf("unexpected JSON: %v", decoded)
	}
}

func TestListExpenses_NotLoggedIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))
	defer srv.Close()
	setup(t, srv, false)

	_, err := run(t, listExpensesCmd())
	if !errors.Is(err, config.ErrNoToken) {
		t.Errorf("expected ErrNoToken, got %v", err)
	}
}

func TestAddExpense_SendsPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/add" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["amount"] != 12.5 || body["category"] != "Food" {
			t.Errorf("unexpected payload: %v", body)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"Expense added successfully","id":4}`))
	}))
	defer srv.Close()
	setup(t, srv, true)

	out, err := run(t, addExpenseCmd(), "--amount", "12.50", "--category", "Food")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out, "Expense added successfully (id 4)") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestAddExpense_InvalidAmount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))
	defer srv.Close()
	setup(t, srv, true)

	if _, err := run(t, addExpenseCmd(), "--amount", "lots", "--category", "Food"); err == nil {
		t.Error("expected error for invalid amount")
	}
}

func TestEditExpense_OnlyChangedFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if _, ok := body["category"]; ok {
			t.Errorf("category must be omitted: %v", body)
		}
		if _, ok := body["description"]; ok {
			t.Errorf("description must be omitted: %v", body)
		}
		if body["id"] != float64(3) || body["amount"] != float64(60) {
			t.Errorf("unexpected payload: %v", body)
		}
		_, _ = w.Write([]byte(`{"message":"Expense updated successfully"}`))
	}))
	defer srv.Close()
	setup(t, srv, true)

	out, err := run(t, editExpenseCmd(), "--id", "3", "--amount", "60.0")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if !strings.Contains(out, "Expense updated successfully") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestDeleteExpense_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Expense not found"}`))
	}))
	defer srv.Close()
	setup(t, srv, true)

	_, err := run(t, deleteExpenseCmd(), "--id", "3")
	if err == nil || !strings.Contains(err.Error(), "Expense not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestAudit_TableOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":2,"user_id":1,"action":"delete","expense_id":3,"timestamp":"2026-01-02T03:04:05Z"}]`))
	}))
	defer srv.Close()
	setup(t, srv, true)

	out, err := run(t, auditCmd())
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if !strings.Contains(out, "delete") {
		t.Errorf("expected action in output, got: %s", out)
	}
}
