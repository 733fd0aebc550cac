package models

import "testing"

func TestUserIsAdmin(t *testing.T) {
	tests := []struct {
		name string
		role Role
		want bool
	}{
		{name: "admin role", role: RoleAdmin, want: true},
		{name: "staff role", role: RoleStaff, want: false},
		{name: "empty role", role: Role(""), want: false},
		{name: "uppercase ADMIN", role: Role("ADMIN"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Role: tt.role}
			if got := u.IsAdmin(); got != tt.want {
				t.Errorf("User{Role: %q}.IsAdmin() = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestUserNeeds2FASetup(t *testing.T) {
	secret := "JBSWY3DPEHPK3PXP"

	tests := []struct {
		name        string
		totpSecret  *string
		totpEnabled bool
		want        bool
	}{
		{name: "fresh account", totpSecret: nil, totpEnabled: false, want: true},
		{name: "enrollment started", totpSecret: &secret, totpEnabled: false, want: true},
		{name: "enrolled", totpSecret: &secret, totpEnabled: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{TOTPSecret: tt.totpSecret, TOTPEnabled: tt.totpEnabled}
			if got := u.Needs2FASetup(); got != tt.want {
				t.Errorf("Needs2FASetup() = %v, want %v", got, tt.want)
			}
		})
	}
}
