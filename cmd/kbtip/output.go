package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/oncokb/kbtip/internal/api"
	"github.com/oncokb/kbtip/internal/config"
	"github.com/oncokb/kbtip/internal/levels"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// mustLoadConfig loads the effective configuration or exits.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustLoadLevels builds the level table from cfg or exits.
func mustLoadLevels(cfg *config.Config) levels.Descriptions {
	table, err := cfg.LevelDescriptions()
	if err != nil {
		exitWithError(ExitConfigError, "loading level descriptions: %v", err)
	}
	return table
}

// apiExitCode maps a reference-client error to an exit code.
func apiExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) || api.IsUnavailable(err) || errors.Is(err, api.ErrInvalidResponse) {
		return ExitAPIError
	}
	return ExitError
}
