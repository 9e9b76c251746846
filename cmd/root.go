// ABOUTME: Root command for the pickbazar CLI
// ABOUTME: Handles global flags, configuration and the shared API client

package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/markalston/pickbazar/internal/client"
	"github.com/markalston/pickbazar/internal/config"
	"github.com/markalston/pickbazar/internal/logger"
	"github.com/markalston/pickbazar/internal/session"
)

var (
	apiURL     string
	configDir  string
	jsonOutput bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "pickbazar",
	Short: "CLI for the PickBazar grocery storefront",
	Long: `pickbazar is a command-line client for the PickBazar grocery storefront API.

Browse products and categories, manage your session, and administer the
catalog from the terminal or from scripts.

Environment Variables:
  PICKBAZAR_API_URL     Storefront API URL (default: http://localhost:8000)
  PICKBAZAR_CONFIG_DIR  Session and UI state directory (default: ~/.config/pickbazar)
  PICKBAZAR_TIMEOUT     HTTP timeout (default: 30s)
  LOG_LEVEL             debug, info, warn, error (default: info)
  LOG_FORMAT            text, json (default: text)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Storefront API URL (overrides PICKBAZAR_API_URL)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Directory for session state (overrides PICKBAZAR_CONFIG_DIR)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// loadConfig reads env configuration and applies flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = config.NormalizeURL(apiURL)
	}
	if configDir != "" {
		cfg.ConfigDir = configDir
	}
	return cfg, nil
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return config.NormalizeURL(apiURL)
	}
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultAPIURL
	}
	return cfg.APIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// newClient builds an API client whose session persists in the config directory.
// Commands log to stderr so stdout stays parseable.
func newClient() (*client.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	l := logger.Init(cfg.LogLevel, cfg.LogFormat)
	return clientFor(cfg, l), nil
}

func clientFor(cfg *config.Config, l *slog.Logger) *client.Client {
	store := session.NewFileStore(cfg.ConfigDir, session.WithLogger(l))
	return client.New(cfg.APIURL,
		client.WithSessionStore(store),
		client.WithTimeout(cfg.Timeout),
		client.WithLogger(l),
	)
}

// printError writes a command error in the CLI's standard form
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}
