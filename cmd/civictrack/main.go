package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/civictrack/civictrack/internal/interfaces/cli/migrate"
	"github.com/civictrack/civictrack/internal/interfaces/cli/seed"
	"github.com/civictrack/civictrack/internal/interfaces/cli/server"
)

//	@title						CivicTrack API
//	@version					1.0
//	@description				Municipal complaint tracking: citizens report civic issues, staff triage and resolve them.
//	@BasePath					/api
//	@securityDefinitions.apikey	Bearer
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the JWT.
func main() {
	rootCmd := &cobra.Command{
		Use:   "civictrack",
		Short: "CivicTrack - municipal complaint tracking",
		Long:  `CivicTrack lets citizens report civic issues and lets department officers and administrators triage and resolve them.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
