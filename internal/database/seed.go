package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdminEmail is the login of the development admin account.
const SeedAdminEmail = "admin@argeinventory.local"

// seedCategories are the starter categories for a fresh development database.
var seedCategories = []struct {
	name, description, color string
}{
	{"Electronics", "Devices, components and accessories.", "Blue"},
	{"Office Supplies", "Paper, pens and desk equipment.", "Yellow"},
	{"Furniture", "Chairs, desks and storage.", "Purple"},
	{"Cleaning", "Detergents and cleaning tools.", "Cyan"},
	{"Food & Beverage", "Pantry items and drinks.", "Green"},
	{"Safety", "Protective equipment and first aid.", "Red"},
}

// Seed populates the database with development data: an admin account and
// a set of starter categories. Each part is skipped when its table already
// has rows, so Seed can run on every start.
func Seed(db *sql.DB) error {
	if err := seedAdmin(db); err != nil {
		return err
	}
	return seedProductCategories(db)
}

func seedAdmin(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}
	if count > 0 {
		slog.Info("users already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	// 2FA is not enabled; the admin enrolls on first login.
	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
	`, SeedAdminEmail, string(hash), "Admin", "admin", false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"email", SeedAdminEmail,
		"password", "admin",
	)
	return nil
}

func seedProductCategories(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM product_categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}
	if count > 0 {
		slog.Info("product categories already seeded, skipping")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, c := range seedCategories {
		if _, err := tx.Exec(
			`INSERT INTO product_categories (name, description, color) VALUES ($1, $2, $3)`,
			c.name, c.description, c.color,
		); err != nil {
			return fmt.Errorf("seed insert category %q: %w", c.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with product categories", "count", len(seedCategories))
	return nil
}
