package config

import (
	"fmt"
	"os"
	"strings"
)

// postgresEnvVars must all be set when the postgres backend is selected.
var postgresEnvVars = []string{
	EnvDBUser,
	EnvDBPassword,
	EnvDBHost,
	EnvDBPort,
	EnvDBName,
}

// ValidateEnv checks that the selected storage backend has the environment
// it needs.
func ValidateEnv() error {
	if os.Getenv(EnvStorageBackend) != StoragePostgres {
		return nil
	}

	var missing []string
	for _, envVar := range postgresEnvVars {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables for postgres backend: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings checks environment variables and returns warnings
// for non-critical issues (like using default values)
func ValidateEnvWithWarnings() ([]string, error) {
	// First do the critical validation
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string

	// Check for potentially insecure default values
	if os.Getenv(EnvDBPassword) == "change_this_secure_password" {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}

	if os.Getenv(EnvAPIKey) == "" {
		warnings = append(warnings, "API_KEY is not set - mutating endpoints are unauthenticated")
	}

	return warnings, nil
}
