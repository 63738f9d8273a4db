package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// InitConfig writes a commented sample configuration to the default location.
// Returns the path of the created file. Fails if a config already exists
// unless force is set.
func InitConfig(force bool) (string, error) {
	path := GetDefaultConfigPath()
	if err := InitConfigToPath(path, force); err != nil {
		return "", err
	}
	return path, nil
}

// InitConfigToPath writes a commented sample configuration to path.
func InitConfigToPath(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	secret, err := generateSecret()
	if err != nil {
		return fmt.Errorf("failed to generate JWT secret: %w", err)
	}

	content := sampleConfig(secret)

	// 0600: the file contains the JWT secret.
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// generateSecret returns a 64-character hex string from a CSPRNG.
func generateSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// sampleConfig renders the commented sample configuration. The sample runs in
// desktop mode against a local SQLite database, which is the zero-setup path;
// multi-user deployments uncomment the users block and switch desktop_mode
// off.
func sampleConfig(jwtSecret string) string {
	return `# Quanta Docs Configuration File
#
# Configuration precedence: environment variables (QUANTA_*) override this
# file, which overrides built-in defaults.

logging:
  # Minimum log level: DEBUG, INFO, WARN, ERROR
  level: "INFO"
  # Output format: text, json
  format: "text"
  # Destination: stdout, stderr, or a file path
  output: "stdout"

# Maximum time to wait for in-flight requests during shutdown
shutdown_timeout: "30s"

database:
  # Backend: sqlite (single-node) or postgres (shared)
  type: "sqlite"
  sqlite:
    # Empty path defaults to $XDG_CONFIG_HOME/quanta-docs/nodes.db
    path: ""
  # postgres:
  #   host: "localhost"
  #   port: 5432
  #   database: "quanta"
  #   user: "quanta"
  #   password: ""
  #   sslmode: "disable"
  auto_migrate: true

server:
  # Listen address; empty host binds all interfaces
  host: ""
  port: 8080
  read_timeout: "10s"
  write_timeout: "30s"
  idle_timeout: "60s"
  request_timeout: "30s"
  # Signs bearer tokens; only used when desktop_mode is off
  jwt_secret: "` + jwtSecret + `"
  token_ttl: "24h"

metrics:
  enabled: false
  path: "/metrics"

# Desktop mode skips authentication and treats every request as admin.
# Turn off for multi-user deployments and configure users below.
desktop_mode: true

doc_roots:
  - key: "usr"
    name: "User Documents"

# users:
#   - username: "admin"
#     # bcrypt hash; generate with: htpasswd -nbB "" "password" | cut -d: -f2
#     password_hash: ""
#     owner_id: 0
#   - username: "alice"
#     password_hash: ""
#     owner_id: 1
`
}
