package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Load reads the .env chain from the working directory, validates the
// resulting environment and builds a Config.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom is Load with the .env files read from dir. The environment used to
// pick the files comes from NODE_ENV as set before any file is read.
//
// A *ValidationError is returned when any variable violates its constraints;
// no Config is built in that case.
func LoadFrom(dir string) (*Config, error) {
	env := ResolveEnvironment(os.Getenv(EnvNodeEnv))

	if err := LoadEnvFiles(dir, env); err != nil {
		return nil, err
	}

	if err := ValidateEnv(Environ()); err != nil {
		return nil, err
	}

	return Build(), nil
}

// LoadEnvFiles loads every existing file from EnvFilePaths(env) under dir into
// the process environment. Variables already set are never overwritten, so the
// real environment beats every file and earlier files beat later ones.
func LoadEnvFiles(dir string, env Environment) error {
	for _, name := range EnvFilePaths(env) {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to stat env file %s: %w", path, err)
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
	}
	return nil
}

// Environ returns the process environment as a map.
func Environ() map[string]string {
	vars := os.Environ()
	out := make(map[string]string, len(vars))
	for _, kv := range vars {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		out[key] = value
	}
	return out
}
