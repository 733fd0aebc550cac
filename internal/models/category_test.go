package models

import "testing"

func TestColorValid(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		want  bool
	}{
		{name: "red", color: ColorRed, want: true},
		{name: "cyan", color: ColorCyan, want: true},
		{name: "purple literal", color: Color("Purple"), want: true},
		{name: "lowercase red", color: Color("red"), want: false},
		{name: "empty", color: Color(""), want: false},
		{name: "unknown", color: Color("Magenta"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.color.Valid(); got != tt.want {
				t.Errorf("Color(%q).Valid() = %v, want %v", tt.color, got, tt.want)
			}
		})
	}
}

// TestColorsAreUnique guards the select list against duplicate entries.
func TestColorsAreUnique(t *testing.T) {
	seen := make(map[Color]bool)
	for _, c := range Colors {
		if seen[c] {
			t.Errorf("duplicate color %q", c)
		}
		seen[c] = true
	}
	if len(Colors) != 6 {
		t.Errorf("Colors: got %d entries, want 6", len(Colors))
	}
}
