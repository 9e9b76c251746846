// ABOUTME: Register command for the pickbazar CLI
// ABOUTME: Creates a customer account without logging in

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markalston/pickbazar/internal/client"
)

var registration client.Registration

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a customer account",
	Long: `Create a new customer account. Log in afterwards with 'pickbazar login'.

Example:
  pickbazar register --name "Kim Lee" --email kim@example.com --password s3cret!`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		c, err := newClient()
		if err != nil {
			printError(os.Stdout, err)
			os.Exit(2)
		}
		if exitCode := runRegister(ctx, c, os.Stdout, registration); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVar(&registration.Name, "name", "", "Full name")
	registerCmd.Flags().StringVar(&registration.Email, "email", "", "Email address")
	registerCmd.Flags().StringVar(&registration.Password, "password", "", "Password (at least 6 characters)")
}

// runRegister creates the account and returns exit code
func runRegister(ctx context.Context, c *client.Client, w io.Writer, in client.Registration) int {
	msg, err := c.Register(ctx, in)
	if err != nil {
		printError(w, err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]any{
			"registered": true,
			"email":      in.Email,
			"message":    msg,
		}, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "%s\nNext: pickbazar login --email %s\n", msg, in.Email)
	return 0
}
