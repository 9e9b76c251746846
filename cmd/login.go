// ABOUTME: Login and logout commands for the pickbazar CLI
// ABOUTME: Establishes the persisted session used by every other command

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/markalston/pickbazar/internal/client"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the storefront",
	Long: `Log in with email and password. The session is stored in the config
directory and used by later commands.

Missing credentials are prompted for interactively.

Exit codes:
  0 - Logged in
  2 - Error (invalid credentials, connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		c, err := newClient()
		if err != nil {
			printError(os.Stdout, err)
			os.Exit(2)
		}

		creds := client.Credentials{Email: loginEmail, Password: loginPassword}
		if creds.Email == "" || creds.Password == "" {
			if err := promptCredentials(&creds); err != nil {
				printError(os.Stdout, err)
				os.Exit(2)
			}
		}

		if exitCode := runLogin(ctx, c, os.Stdout, creds); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newClient()
		if err != nil {
			printError(os.Stdout, err)
			os.Exit(2)
		}
		runLogout(c, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")
}

// promptCredentials asks for whichever credentials were not given as flags
func promptCredentials(creds *client.Credentials) error {
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Email").
			Value(&creds.Email),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&creds.Password),
	))
	return form.Run()
}

// runLogin logs in and returns exit code
func runLogin(ctx context.Context, c *client.Client, w io.Writer, creds client.Credentials) int {
	result, err := c.Login(ctx, creds)
	if err != nil {
		printError(w, err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatLoginJSON(result))
	} else {
		fmt.Fprintln(w, formatLoginHuman(result))
	}
	return 0
}

// formatLoginHuman formats a login result, pointing admins and customers at
// their respective next steps
func formatLoginHuman(r *client.LoginResult) string {
	who := r.Name
	if who == "" {
		who = r.Email
	}
	if who == "" {
		who = "user"
	}

	out := fmt.Sprintf("Logged in as %s", who)
	if r.Role != "" {
		out += fmt.Sprintf(" (%s)", r.Role)
	}
	out += "\n"

	if r.CookieOnly {
		out += "Warning: no bearer token in the login response; protected actions may fail.\n"
	}

	if r.IsAdmin {
		out += "Next: run 'pickbazar browse' for the admin dashboard, or 'pickbazar products list'"
	} else {
		out += "Next: run 'pickbazar browse' to shop the storefront"
	}
	return out
}

// formatLoginJSON formats a login result as JSON
func formatLoginJSON(r *client.LoginResult) string {
	data, _ := json.MarshalIndent(r, "", "  ")
	return string(data)
}

// runLogout clears the local session
func runLogout(c *client.Client, w io.Writer) {
	c.Logout()
	if IsJSONOutput() {
		fmt.Fprintln(w, `{"logged_in": false}`)
		return
	}
	fmt.Fprintln(w, "Logged out.")
}
