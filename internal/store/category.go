// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"argeinventory/internal/models"
)

// ErrDuplicateName is returned when another category already uses the name
// (compared case-insensitively).
var ErrDuplicateName = errors.New("category name already exists")

// pgUniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// CategoryStore manages product categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// categorySelect reads categories together with their product count.
const categorySelect = `
	SELECT c.id, c.name, c.description, c.color, c.created_at, c.updated_at,
	       COUNT(p.id) AS product_count
	FROM product_categories c
	LEFT JOIN products p ON p.category_id = c.id`

func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Description, &c.Color,
		&c.CreatedAt, &c.UpdatedAt, &c.ProductCount,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories in creation order with their product counts.
// The order is the list view's unsorted order.
func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(categorySelect + `
		GROUP BY c.id
		ORDER BY c.created_at, c.name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// Count returns the number of categories.
func (s *CategoryStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM product_categories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return n, nil
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRow(categorySelect+`
		WHERE c.id = $1
		GROUP BY c.id`, id)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it.
func (s *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	var out models.Category
	err := s.db.QueryRow(`
		INSERT INTO product_categories (name, description, color)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, color, created_at, updated_at`,
		c.Name, c.Description, c.Color,
	).Scan(&out.ID, &out.Name, &out.Description, &out.Color, &out.CreatedAt, &out.UpdatedAt)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateName
	}
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &out, nil
}

// Update modifies an existing category.
func (s *CategoryStore) Update(c *models.Category) error {
	_, err := s.db.Exec(`
		UPDATE product_categories SET
			name = $1, description = $2, color = $3, updated_at = NOW()
		WHERE id = $4`,
		c.Name, c.Description, c.Color, c.ID,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateName
	}
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes a category. Its products stay, uncategorised
// (ON DELETE SET NULL).
func (s *CategoryStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM product_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
