package config_test

import (
	"os"
	"testing"

	"github.com/ukp-platform/ukp-api/internal/config"
)

var recognizedVars = []string{
	config.EnvNodeEnv, config.EnvPort, config.EnvAPIPrefix, config.EnvCORSOrigins,
	config.EnvLogLevel, config.EnvLogFormat, config.EnvDBHost, config.EnvDBPort,
	config.EnvDBUsername, config.EnvDBPassword, config.EnvDBName, config.EnvDBURL,
	config.EnvRedisHost, config.EnvRedisPort, config.EnvRedisPassword,
	config.EnvJWTSecret, config.EnvSessionSecret, config.EnvAPIKey,
	config.EnvRevocationStore,
}

// clearEnv unsets every recognized variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range recognizedVars {
		// Setenv registers the restore; the unset follows it.
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}
}
