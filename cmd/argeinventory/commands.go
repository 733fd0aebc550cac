// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"argeinventory/internal/database"
	"argeinventory/internal/models"
	"argeinventory/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, db, err := loadAndConnect()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			return err
		}
		v, err := database.Version(db)
		if err != nil {
			return err
		}
		slog.Info("schema up to date", "version", v)
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the development admin and starter categories",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, db, err := loadAndConnect()
		if err != nil {
			return err
		}
		defer db.Close()

		if cfg.Env == "production" {
			return errors.New("refusing to seed a production database")
		}
		if err := database.Migrate(db); err != nil {
			return err
		}
		if err := database.Seed(db); err != nil {
			return err
		}
		n, err := store.NewCategoryStore(db).Count()
		if err != nil {
			return err
		}
		slog.Info("seed complete", "categories", n)
		return nil
	},
}

var adduserFlags struct {
	name  string
	role  string
	admin bool
}

var adduserCmd = &cobra.Command{
	Use:   "adduser EMAIL",
	Short: "Create a user account",
	Long: `Create a user account. The password is read from the ` +
		`ARGEINVENTORY_PASSWORD environment variable so it never shows up ` +
		`in the shell history.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := strings.TrimSpace(args[0])
		password := os.Getenv("ARGEINVENTORY_PASSWORD")
		if len(password) < 8 {
			return errors.New("ARGEINVENTORY_PASSWORD must hold at least 8 characters")
		}

		role := models.Role(adduserFlags.role)
		if adduserFlags.admin {
			role = models.RoleAdmin
		}
		if role != models.RoleAdmin && role != models.RoleStaff {
			return fmt.Errorf("unknown role %q (want admin or staff)", adduserFlags.role)
		}

		_, db, err := loadAndConnect()
		if err != nil {
			return err
		}
		defer db.Close()

		u, err := store.NewUserStore(db).Create(email, password, adduserFlags.name, role)
		if errors.Is(err, store.ErrDuplicateEmail) {
			return fmt.Errorf("a user with email %s already exists", email)
		}
		if err != nil {
			return err
		}

		slog.Info("user created", "id", u.ID, "email", u.Email, "role", u.Role)
		return nil
	},
}

func init() {
	f := adduserCmd.Flags()
	f.StringVar(&adduserFlags.name, "name", "", "display name")
	f.StringVar(&adduserFlags.role, "role", string(models.RoleStaff), "role: admin or staff")
	f.BoolVar(&adduserFlags.admin, "admin", false, "shorthand for --role admin")
}
