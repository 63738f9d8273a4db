package config

import (
	"strings"
	"testing"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	err := Validate(cfg)
	if err != nil {
		t.Errorf("Expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Level = "INVALID"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for invalid log level")
	}
	if !strings.Contains(err.Error(), "oneof") {
		t.Errorf("Expected 'oneof' validation error, got: %v", err)
	}
}

func TestValidate_InvalidLogFormat(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Format = "xml"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for invalid log format")
	}
}

func TestValidate_InvalidServerPort(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Server.Port = 70000 // Out of range

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for port out of range")
	}
	if !strings.Contains(err.Error(), "max") {
		t.Errorf("Expected 'max' validation error, got: %v", err)
	}
}

func TestValidate_NegativePort(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Server.Port = -1

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for negative port")
	}
}

func TestValidate_MultiUserRequiresSecret(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.DesktopMode = false
	cfg.Users = []UserConfig{{Username: "admin", PasswordHash: "$2a$10$x", OwnerID: 0}}
	cfg.Server.JWTSecret = ""

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for missing jwt_secret")
	}
	if !strings.Contains(err.Error(), "jwt_secret") {
		t.Errorf("Expected error about jwt_secret, got: %v", err)
	}
}

func TestValidate_MultiUserRequiresUsers(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.DesktopMode = false
	cfg.Server.JWTSecret = "test-secret-key-for-testing-minimum-32-chars"
	cfg.Users = nil

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for missing users")
	}
	if !strings.Contains(err.Error(), "user") {
		t.Errorf("Expected error about users, got: %v", err)
	}
}

func TestValidate_DuplicateDocRoot(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.DocRoots = []DocRootConfig{{Key: "usr"}, {Key: "usr"}}

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for duplicate doc root")
	}
	if !strings.Contains(err.Error(), "duplicate doc root") {
		t.Errorf("Expected duplicate doc root error, got: %v", err)
	}
}

func TestValidate_DuplicateUserAndOwner(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Users = []UserConfig{
		{Username: "alice", PasswordHash: "$2a$10$x", OwnerID: 1},
		{Username: "alice", PasswordHash: "$2a$10$y", OwnerID: 2},
	}

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for duplicate username")
	}

	cfg.Users = []UserConfig{
		{Username: "alice", PasswordHash: "$2a$10$x", OwnerID: 1},
		{Username: "bob", PasswordHash: "$2a$10$y", OwnerID: 1},
	}

	err = Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for duplicate owner_id")
	}
}

func TestValidate_LogLevelNormalization(t *testing.T) {
	// Test that validation accepts both uppercase and lowercase log levels
	testCases := []string{"info", "INFO", "debug", "DEBUG", "warn", "WARN", "error", "ERROR"}

	for _, level := range testCases {
		cfg := GetDefaultConfig()
		cfg.Logging.Level = level

		err := Validate(cfg)
		if err != nil {
			t.Errorf("Validation failed for level %q: %v", level, err)
		}

		// Validation should NOT normalize - level should remain as-is
		if cfg.Logging.Level != level {
			t.Errorf("Expected level to remain %q after validation, got %q", level, cfg.Logging.Level)
		}
	}

	// Test that normalization happens in ApplyDefaults
	cfg := &Config{Logging: LoggingConfig{Level: "info"}}
	ApplyDefaults(cfg)
	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected ApplyDefaults to normalize 'info' to 'INFO', got %q", cfg.Logging.Level)
	}
}
