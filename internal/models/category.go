// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Color is the tag a product category is displayed with.
type Color string

const (
	ColorRed    Color = "Red"
	ColorGreen  Color = "Green"
	ColorBlue   Color = "Blue"
	ColorYellow Color = "Yellow"
	ColorPurple Color = "Purple"
	ColorCyan   Color = "Cyan"
)

// Colors lists every selectable category color in form order.
var Colors = []Color{ColorRed, ColorGreen, ColorBlue, ColorYellow, ColorPurple, ColorCyan}

// Valid reports whether c is one of the known colors. Matching is exact.
func (c Color) Valid() bool {
	for _, known := range Colors {
		if c == known {
			return true
		}
	}
	return false
}

// Category is a product category. Records are read-only once loaded into a
// list view.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       Color     `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Virtual field populated by store queries.
	ProductCount int `json:"product_count"`
}
