package database

import (
	"testing"
)

func TestSeedIdempotent(t *testing.T) {
	db, err := Connect(testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Other packages may run against the same database, so nothing is
	// cleared first; Seed only inserts into empty tables.
	if err := Seed(db); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	var users int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&users); err != nil {
		t.Fatalf("count users: %v", err)
	}
	if users < 1 {
		t.Errorf("expected at least 1 user, got %d", users)
	}

	var categories int
	if err := db.QueryRow("SELECT COUNT(*) FROM product_categories").Scan(&categories); err != nil {
		t.Fatalf("count categories: %v", err)
	}
	if categories < 1 {
		t.Errorf("expected at least 1 category, got %d", categories)
	}
}

func TestSeedCategoriesHaveValidColors(t *testing.T) {
	valid := map[string]bool{"Red": true, "Green": true, "Blue": true, "Yellow": true, "Purple": true, "Cyan": true}
	names := make(map[string]bool)
	for _, c := range seedCategories {
		if !valid[c.color] {
			t.Errorf("seed category %q: invalid color %q", c.name, c.color)
		}
		if names[c.name] {
			t.Errorf("duplicate seed category %q", c.name)
		}
		names[c.name] = true
	}
}
