package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/repertorio/core/cmd/api/commands"
)

// @title Mi Repertorio API
// @version 1.0.0
// @description API para gestionar el repertorio de canciones

// @license.name MIT

// @host localhost:5000
// @BasePath /

func main() {
	rootCmd := &cobra.Command{
		Use:          "repertorio",
		Short:        "Mi Repertorio API Server",
		Long:         `Mi Repertorio keeps a personal list of songs (title, artist and key) and serves it over a small REST API.`,
		SilenceUsage: true,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewSongCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
