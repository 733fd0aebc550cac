// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the ARGE inventory admin. Without a
// subcommand it starts the HTTP server; migrate, seed and adduser cover
// the maintenance tasks.
package main

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"argeinventory/internal/config"
	"argeinventory/internal/database"
)

var rootCmd = &cobra.Command{
	Use:   "argeinventory",
	Short: "Product category admin for the ARGE inventory",
	Long: `Product category admin for the ARGE inventory. Run without a ` +
		`subcommand to start the web server.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadEnvFile,
	RunE:              runServe,
}

var envFile string

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env",
		"file with KEY=value lines loaded before the configuration; missing is fine")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, adduserCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadAndConnect loads the configuration and opens the database.
func loadAndConnect() (*config.Config, *sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

// loadEnvFile fills the environment from envFile. Variables already set in
// the environment win over the file.
func loadEnvFile(_ *cobra.Command, _ []string) error {
	if envFile == "" {
		return nil
	}
	err := godotenv.Load(envFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", envFile, err)
	}
	slog.Debug("environment file loaded", "path", envFile)
	return nil
}
