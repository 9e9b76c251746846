// ABOUTME: Browse command launching the interactive storefront console
// ABOUTME: Logs to debug.log in the config directory so the terminal stays clean

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/markalston/pickbazar/internal/logger"
	"github.com/markalston/pickbazar/internal/tui"
	"github.com/markalston/pickbazar/internal/tui/recentimages"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the interactive storefront console",
	Long: `Open the interactive console: browse products by category, build a cart,
log in or register, and as an admin manage the catalog.

The session is shared with the other commands.`,
	Run: func(cmd *cobra.Command, args []string) {
		if exitCode := runBrowse(); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse() int {
	cfg, err := loadConfig()
	if err != nil {
		printError(os.Stdout, err)
		return 2
	}

	l, closer, err := logger.InitFile(cfg.ConfigDir, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		printError(os.Stdout, err)
		return 2
	}
	defer closer.Close()

	c := clientFor(cfg, l)
	l.Info("Starting console", "api_url", cfg.APIURL)

	if err := tui.Run(c, recentimages.New(cfg.ConfigDir), l); err != nil {
		l.Error("console exited with error", "error", err)
		printError(os.Stdout, err)
		return 2
	}
	return 0
}
