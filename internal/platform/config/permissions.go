package config

import (
	"fmt"
	"os"

	"github.com/SscSPs/hr_memo_app/internal/core/domain"
	"gopkg.in/yaml.v3"
)

// permissionsFile is the on-disk form of the role-to-level mapping:
//
//	levels:
//	  1: [rh, gestionnaire, admin]
//	  2: [gestionnaire, admin]
//	  3: [admin]
type permissionsFile struct {
	Levels map[int][]string `yaml:"levels"`
}

// LoadLevelPermissions reads and validates a permissions file.
func LoadLevelPermissions(path string) (domain.LevelPermissions, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read permissions file %s: %w", path, err)
	}
	return ParseLevelPermissions(raw)
}

// ParseLevelPermissions decodes YAML into LevelPermissions. Every level 1..3 must be present.
func ParseLevelPermissions(raw []byte) (domain.LevelPermissions, error) {
	var file permissionsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse permissions file: %w", err)
	}

	perms := make(domain.LevelPermissions, len(file.Levels))
	for level, names := range file.Levels {
		roles := make([]domain.Role, 0, len(names))
		for _, name := range names {
			role, err := domain.ParseRole(name)
			if err != nil {
				return nil, fmt.Errorf("permissions for level %d: %w", level, err)
			}
			roles = append(roles, role)
		}
		perms[domain.ValidationLevel(level)] = roles
	}
	if err := perms.Validate(); err != nil {
		return nil, fmt.Errorf("permissions file: %w", err)
	}
	return perms, nil
}
