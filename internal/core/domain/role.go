package domain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/SscSPs/hr_memo_app/internal/apperrors"
)

// Role is the organisational role of an employee.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleRH           Role = "rh"
	RoleGestionnaire Role = "gestionnaire"
	RoleAgent        Role = "agent"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleRH, RoleGestionnaire, RoleAgent:
		return true
	}
	return false
}

// ParseRole converts a raw string into a Role.
func ParseRole(raw string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	if !r.IsValid() {
		return "", fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, raw)
	}
	return r, nil
}

// Actor identifies the authenticated caller of an operation. It is supplied by the
// session layer on every call and doubles as the validator snapshot.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// LevelPermissions maps each validation level to the roles allowed to decide at it.
type LevelPermissions map[ValidationLevel][]Role

// DefaultLevelPermissions returns the standard role-to-level configuration.
func DefaultLevelPermissions() LevelPermissions {
	return LevelPermissions{
		Level1: {RoleRH, RoleGestionnaire, RoleAdmin},
		Level2: {RoleGestionnaire, RoleAdmin},
		Level3: {RoleAdmin},
	}
}

// Allows reports whether role may validate at level.
func (p LevelPermissions) Allows(level ValidationLevel, role Role) bool {
	return slices.Contains(p[level], role)
}

// LevelsFor lists the levels role may validate at, ascending.
func (p LevelPermissions) LevelsFor(role Role) []ValidationLevel {
	var levels []ValidationLevel
	for l := Level1; l <= FinalValidationLevel; l++ {
		if p.Allows(l, role) {
			levels = append(levels, l)
		}
	}
	return levels
}

// Validate checks that every level 1..3 is configured with known roles only.
func (p LevelPermissions) Validate() error {
	for level, roles := range p {
		if !level.IsValid() {
			return fmt.Errorf("%w: permission configured for unknown level %d", apperrors.ErrValidation, level)
		}
		for _, r := range roles {
			if !r.IsValid() {
				return fmt.Errorf("%w: unknown role %q for level %d", apperrors.ErrValidation, r, level)
			}
		}
	}
	for l := Level1; l <= FinalValidationLevel; l++ {
		if len(p[l]) == 0 {
			return fmt.Errorf("%w: no role may validate level %d", apperrors.ErrValidation, l)
		}
	}
	return nil
}
