package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validate checks the configuration for structural and semantic errors.
//
// Struct tags drive the field-level checks; cross-field rules that tags
// cannot express are checked explicitly afterwards.
func Validate(cfg *Config) error {
	v := validator.New()

	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Database.Validate(); err != nil {
		return fmt.Errorf("invalid database configuration: %w", err)
	}

	if !cfg.DesktopMode {
		if cfg.Server.JWTSecret == "" {
			return fmt.Errorf("server jwt_secret is required when desktop_mode is off")
		}
		if len(cfg.Users) == 0 {
			return fmt.Errorf("at least one user is required when desktop_mode is off")
		}
	}

	seenRoots := make(map[string]bool, len(cfg.DocRoots))
	for _, root := range cfg.DocRoots {
		if seenRoots[root.Key] {
			return fmt.Errorf("duplicate doc root key: %s", root.Key)
		}
		seenRoots[root.Key] = true
	}

	seenUsers := make(map[string]bool, len(cfg.Users))
	seenOwners := make(map[int64]bool, len(cfg.Users))
	for _, u := range cfg.Users {
		if seenUsers[u.Username] {
			return fmt.Errorf("duplicate username: %s", u.Username)
		}
		seenUsers[u.Username] = true
		if seenOwners[u.OwnerID] {
			return fmt.Errorf("duplicate owner_id: %d", u.OwnerID)
		}
		seenOwners[u.OwnerID] = true
	}

	return nil
}
