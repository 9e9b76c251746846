// ABOUTME: Health command for the pickbazar CLI
// ABOUTME: Checks storefront API connectivity

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

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check storefront API connectivity",
	Long: `Check connectivity to the storefront API by listing categories.

Exit codes:
  0 - API reachable and answering
  2 - Error (unreachable, or the API returned an error status)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		c, err := newClient()
		if err != nil {
			printError(os.Stdout, err)
			os.Exit(2)
		}
		if exitCode := runHealth(ctx, c, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// runHealth executes the health check and returns exit code
func runHealth(ctx context.Context, c *client.Client, w io.Writer) int {
	resp, err := c.Health(ctx)
	if err != nil {
		printError(w, err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatHealthJSON(resp))
	} else {
		fmt.Fprintln(w, formatHealthHuman(resp))
	}

	if resp.Error != "" {
		return 2
	}
	return 0
}

// formatHealthHuman formats health response for human readability
func formatHealthHuman(resp *client.HealthStatus) string {
	status := "ok"
	if resp.Error != "" {
		status = fmt.Sprintf("error %d: %s", resp.StatusCode, resp.Error)
	}
	return fmt.Sprintf(`API:        %s
Status:     %s
Categories: %d
Latency:    %dms`, resp.URL, status, resp.Categories, resp.LatencyMS)
}

// formatHealthJSON formats health response as JSON
func formatHealthJSON(resp *client.HealthStatus) string {
	data, _ := json.MarshalIndent(resp, "", "  ")
	return string(data)
}
