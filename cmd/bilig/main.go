package main

import (
	"os"

	"github.com/spf13/cobra"

	"bilig/internal/interfaces/cli/migrate"
	"bilig/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bilig",
		Short: "Bilig - online course platform",
		Long:  `Bilig is the course marketplace backend: catalog, QPay checkout, course access and the admin back office.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
