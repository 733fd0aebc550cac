package handlers

import (
	"strings"
	"unicode/utf8"

	"argeinventory/internal/models"
)

// Validation limits for category fields.
const (
	maxCategoryNameLen = 100
	maxDescriptionLen  = 500
)

// validateCategory checks category form inputs and returns the first error found.
func validateCategory(name, description string, color models.Color) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Category name is required."
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLen {
		return "Category name is too long (max 100 characters)."
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return "Description is too long (max 500 characters)."
	}
	if !color.Valid() {
		return "Please choose a color."
	}
	return ""
}
