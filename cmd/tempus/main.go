package main

import (
	"os"

	"github.com/spf13/cobra"

	"tempus/internal/interfaces/cli/migrate"
	"tempus/internal/interfaces/cli/server"
	"tempus/internal/interfaces/cli/token"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tempus",
		Short: "Tempus - session lifecycle and time-tracking engine",
		Long:  `Tempus manages time-limited sessions on shared public workstations: access codes, countdowns, extensions and real-time notifications.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
