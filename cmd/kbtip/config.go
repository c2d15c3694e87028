package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/oncokb/kbtip/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration.

Values come from built-in defaults, then the config file, then KBTIP_*
environment variables (a .env file in the working directory is read first).

Config file:
  $XDG_CONFIG_HOME/kbtip/config.yml (default ~/.config/kbtip/config.yml)`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

// ConfigResponse is the JSON output of the config command.
type ConfigResponse struct {
	Path   string         `json:"path"`
	Config *config.Config `json:"config"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	if !humanOutput {
		return outputJSON(ConfigResponse{Path: config.Path(), Config: cfg})
	}

	outputHuman("config file:  %s\n", config.Path())
	outputHuman("public api:   %s\n", cfg.PublicAPI)
	outputHuman("legacy api:   %s\n", cfg.LegacyAPI)
	outputHuman("studies api:  %s\n", cfg.StudiesAPI)
	outputHuman("eutils api:   %s\n", cfg.EUtilsAPI)
	outputHuman("http timeout: %s\n", cfg.HTTPTimeout)
	outputHuman("eutils rate:  %g/s\n", cfg.EUtilsRate)
	outputHuman("listen addr:  %s\n", cfg.ListenAddr)
	outputHuman("cors origins: %s\n", strings.Join(cfg.CORSOrigins, ", "))
	outputHuman("log level:    %s\n", cfg.LogLevel)
	if cfg.LevelsFile != "" {
		outputHuman("levels file:  %s\n", cfg.LevelsFile)
	}
	return nil
}
