package main

import (
	"fmt"
	"os"

	"cqv/internal/cli"
	"cqv/internal/cli/commands"
	"cqv/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "cqv",
		Short:   "CQL test results viewer",
		Long:    `A terminal viewer for CQL (Clinical Quality Language) test run reports. Load JSON result documents from files, URLs or index manifests, browse them in filterable tables, and compare runs across engines.`,
		Version: version,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
