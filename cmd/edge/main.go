package main

import (
	"fmt"
	"os"

	"edge-analysis/internal/cli"
	"edge-analysis/internal/config"
	"edge-analysis/internal/logging"
	"edge-analysis/internal/security"
)

func main() {
	configDir := ""
	for i, arg := range os.Args {
		if arg == "--config" && i+1 < len(os.Args) {
			configDir = os.Args[i+1]
		}
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger()

	rootCmd := cli.NewRootCmd(cfg, logger)
	if err := rootCmd.Execute(); err != nil {
		// Errors can carry request detail; never echo a token back
		fmt.Fprintf(os.Stderr, "error: %s\n", security.MaskInString(err.Error()))
		os.Exit(1)
	}
}
