package users

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/crucial707/expense-tracker/cmd/cli/auth"
	"github.com/crucial707/expense-tracker/cmd/cli/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ==========================
// CLI Command Init
// ==========================
func InitUsers(rootCmd *cobra.Command) {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Register, log in and log out",
		Long: `Register or log in a user against the expense tracker API.
The session token is stored locally for later commands.`,
	}

	usersCmd.AddCommand(registerCmd(), loginCmd(), logoutCmd())
	rootCmd.AddCommand(usersCmd)
}

// credentials reads the username and password from flags, prompting for
// whatever is missing. The password prompt does not echo on a terminal.
func credentials(cmd *cobra.Command, username, password string) (string, string, error) {
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	if username == "" {
		fmt.Fprint(out, "Username: ")
		line, err := in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", "", err
		}
		username = strings.TrimSpace(line)
	}

	if password == "" {
		fmt.Fprint(out, "Password: ")
		if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			b, err := term.ReadPassword(int(f.Fd()))
			fmt.Fprintln(out)
			if err != nil {
				return "", "", err
			}
			password = string(b)
		} else {
			line, err := in.ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return "", "", err
			}
			password = strings.TrimRight(line, "\r\n")
		}
	}

	if username == "" || password == "" {
		return "", "", errors.New("username and password are required")
	}
	return username, password, nil
}

// ==========================
// Register User
// ==========================
func registerCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, p, err := credentials(cmd, username, password)
			if err != nil {
				return err
			}

			var resp struct {
				Message string `json:"message"`
			}
			if err := auth.Call(http.MethodPost, "/register", map[string]string{"username": u, "password": p}, &resp); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), resp.Message+". You can now log in.")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username to register")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	return cmd
}

// ==========================
// Login User
// ==========================
func loginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, p, err := credentials(cmd, username, password)
			if err != nil {
				return err
			}

			var resp struct {
				Message string `json:"message"`
				Token   string `json:"token"`
			}
			if err := auth.Call(http.MethodPost, "/login", map[string]string{"username": u, "password": p}, &resp); err != nil {
				return err
			}
			if resp.Token == "" {
				return errors.New("login succeeded but no token returned")
			}

			if err := config.SaveToken(resp.Token); err != nil {
				return fmt.Errorf("save token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), resp.Message+". Token saved to "+config.TokenPath())
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username to log in as")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	return cmd
}

// ==========================
// Logout User
// ==========================
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if _, err := config.LoadToken(); errors.Is(err, config.ErrNoToken) {
				fmt.Fprintln(out, "No user logged in.")
				return nil
			}

			// The local token goes regardless of whether the server could be reached.
			if err := auth.Call(http.MethodPost, "/logout", nil, nil); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: server logout failed:", err)
			}
			if _, err := config.ClearToken(); err != nil {
				return err
			}

			fmt.Fprintln(out, "Logged out successfully.")
			return nil
		},
	}
}
