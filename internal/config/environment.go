package config

import "fmt"

// Environment is a named deployment context. The set of members is closed;
// anything else resolves to EnvDevelopment.
type Environment string

// Known deployment environments.
const (
	EnvDevelopment  Environment = "development"
	EnvDevContainer Environment = "dev-container"
	EnvTesting      Environment = "testing"
	EnvStaging      Environment = "staging"
	EnvProduction   Environment = "production"
)

// DefaultEnvironment is used whenever the raw selector is absent or unknown.
const DefaultEnvironment = EnvDevelopment

var environments = [...]Environment{
	EnvDevelopment,
	EnvDevContainer,
	EnvTesting,
	EnvStaging,
	EnvProduction,
}

// Environments returns every known environment in declaration order.
func Environments() []Environment {
	out := make([]Environment, len(environments))
	copy(out, environments[:])
	return out
}

// ResolveEnvironment maps a raw selector to a known Environment. Matching is
// case-sensitive and exact; empty or unknown input yields DefaultEnvironment.
func ResolveEnvironment(raw string) Environment {
	for _, env := range environments {
		if string(env) == raw {
			return env
		}
	}
	return DefaultEnvironment
}

// IsProduction reports whether e is the production environment.
func (e Environment) IsProduction() bool {
	return e == EnvProduction
}

// String implements fmt.Stringer.
func (e Environment) String() string {
	return string(e)
}

// EnvFilePaths lists the .env files consulted for env, highest priority first.
func EnvFilePaths(env Environment) []string {
	return []string{
		fmt.Sprintf(".env.%s.local", env),
		fmt.Sprintf(".env.%s", env),
		".env.local",
		".env",
	}
}
