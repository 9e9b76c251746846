// ABOUTME: Check command for the pickbazar CLI
// ABOUTME: Verifies session readiness for scripts with exit codes

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

var requireAdmin bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the session can make authenticated calls",
	Long: `Check that the API is reachable and that a logged-in session with a
bearer credential is stored. Useful before scripted catalog changes.

Exit codes:
  0 - All checks passed
  1 - One or more checks failed (anonymous, cookie-only, not admin)
  2 - Error (connectivity)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		c, err := newClient()
		if err != nil {
			printError(os.Stdout, err)
			os.Exit(2)
		}
		if exitCode := runCheck(ctx, c, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&requireAdmin, "admin", false, "Also require the admin role")
}

// checkResult represents the result of a single session check
type checkResult struct {
	name   string
	detail string
	passed bool
}

// runCheck executes the session checks and returns exit code
func runCheck(ctx context.Context, c *client.Client, w io.Writer) int {
	if _, err := c.Health(ctx); err != nil {
		printError(w, err)
		return 2
	}

	results := performChecks(newSessionStatus(c), requireAdmin)

	if IsJSONOutput() {
		fmt.Fprintln(w, formatCheckJSON(results))
	} else {
		fmt.Fprintln(w, formatCheckHuman(results))
	}

	_, failed := countResults(results)
	if failed > 0 {
		return 1
	}
	return 0
}

// performChecks evaluates the session against the readiness requirements
func performChecks(st sessionStatus, admin bool) []checkResult {
	results := []checkResult{
		{name: "Logged in", detail: st.State, passed: st.LoggedIn},
		{name: "Bearer credential", detail: credentialDetail(st), passed: st.HasCredential},
	}

	if admin {
		role := "none"
		if st.User != nil && st.User.Role != "" {
			role = st.User.Role
		}
		results = append(results, checkResult{name: "Admin role", detail: role, passed: st.Admin})
	}
	return results
}

func credentialDetail(st sessionStatus) string {
	switch {
	case st.HasCredential:
		return "stored"
	case st.LoggedIn:
		return "cookie-only session"
	default:
		return "missing"
	}
}

// countResults returns the count of passed and failed checks
func countResults(results []checkResult) (passed, failed int) {
	for _, r := range results {
		if r.passed {
			passed++
		} else {
			failed++
		}
	}
	return
}

// formatCheckHuman formats check results for human readability
func formatCheckHuman(results []checkResult) string {
	var output string

	for _, r := range results {
		symbol := "✓"
		if !r.passed {
			symbol = "✗"
		}
		output += fmt.Sprintf("%s %s: %s\n", symbol, r.name, r.detail)
	}

	passed, failed := countResults(results)
	if failed > 0 {
		output += fmt.Sprintf("\nFAILED: %d check(s) failed", failed)
	} else {
		output += fmt.Sprintf("\nPASSED: All %d check(s) passed", passed)
	}

	return output
}

// formatCheckJSON formats check results as JSON
func formatCheckJSON(results []checkResult) string {
	_, failed := countResults(results)

	checks := make([]map[string]interface{}, len(results))
	for i, r := range results {
		checks[i] = map[string]interface{}{
			"name":   r.name,
			"detail": r.detail,
			"passed": r.passed,
		}
	}

	status := "passed"
	if failed > 0 {
		status = "failed"
	}

	output := map[string]interface{}{
		"status": status,
		"checks": checks,
	}

	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
