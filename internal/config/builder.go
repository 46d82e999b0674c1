package config

import (
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Builder resolves a Config from a viper instance bound to the environment.
// Each field is taken from the first present source: environment variable,
// overlay for the resolved Environment, hardcoded fallback.
type Builder struct {
	v *viper.Viper
}

// NewBuilder returns a Builder reading from v. A nil v reads the process
// environment.
func NewBuilder(v *viper.Viper) *Builder {
	if v == nil {
		v = newEnvViper()
	}
	return &Builder{v: v}
}

// newEnvViper returns a viper instance that resolves keys straight from the
// process environment. Empty variables count as present.
func newEnvViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	return v
}

// Build resolves a Config from the current process environment.
func Build() *Config {
	return NewBuilder(nil).Build()
}

// Build resolves every field and returns a new snapshot. Calling it twice
// over the same environment yields equal snapshots.
func (b *Builder) Build() *Config {
	env := ResolveEnvironment(FirstOf("", b.str(EnvNodeEnv)))
	overrides := OverridesFor(env)

	return New(
		b.buildApp(env, overrides.App),
		b.buildDatabase(overrides.Database),
		b.buildCache(overrides.Cache),
		b.buildSecurity(overrides.Security),
	)
}

func (b *Builder) buildApp(env Environment, o AppOverrides) AppConfig {
	return AppConfig{
		Name:        DefaultAppName,
		Environment: env,
		Port:        FirstOf(DevelopmentAppPort, b.port(EnvPort), validPort(o.Port)),
		APIPrefix:   SanitizePrefix(FirstOf(DefaultAPIPrefix, b.str(EnvAPIPrefix), o.APIPrefix)),
		CORSOrigins: FirstOf([]string{}, b.origins(EnvCORSOrigins), o.CORSOrigins),
		LogLevel:    FirstOf(DefaultLogLevel, b.str(EnvLogLevel), o.LogLevel),
		LogFormat:   FirstOf(DefaultLogFormat, b.logFormat(EnvLogFormat), o.LogFormat),
	}
}

func (b *Builder) buildDatabase(o DatabaseOverrides) DatabaseConfig {
	return DatabaseConfig{
		Host:     FirstOf(DefaultDatabaseHost, b.str(EnvDBHost), o.Host),
		Port:     FirstOf(DatabaseDefaultPort, b.port(EnvDBPort), validPort(o.Port)),
		Username: FirstOf(DefaultDatabaseUsername, b.str(EnvDBUsername), o.Username),
		Password: FirstOf(DefaultDatabasePassword, b.str(EnvDBPassword), o.Password),
		Name:     FirstOf(DefaultDatabaseName, b.str(EnvDBName), o.Name),
		URL:      FirstOf("", b.str(EnvDBURL), o.URL),
	}
}

func (b *Builder) buildCache(o CacheOverrides) CacheConfig {
	return CacheConfig{
		Host:     FirstOf(DefaultCacheHost, b.str(EnvRedisHost), o.Host),
		Port:     FirstOf(RedisDefaultPort, b.port(EnvRedisPort), validPort(o.Port)),
		Password: FirstOf(DefaultCachePassword, b.str(EnvRedisPassword), o.Password),
	}
}

func (b *Builder) buildSecurity(o SecurityOverrides) SecurityConfig {
	store := FirstOf(DefaultRevocationStore, b.str(EnvRevocationStore))
	if store != RevocationStoreRedis {
		store = RevocationStoreMemory
	}
	return SecurityConfig{
		JWTSecret:       FirstOf(DefaultJWTSecret, b.str(EnvJWTSecret), o.JWTSecret),
		SessionSecret:   FirstOf(DefaultSessionSecret, b.str(EnvSessionSecret), o.SessionSecret),
		APIKey:          FirstOf("", b.str(EnvAPIKey), o.APIKey),
		RevocationStore: store,
	}
}

// str returns the raw variable when it is set, even to the empty string.
func (b *Builder) str(key string) Optional[string] {
	if !b.v.IsSet(key) {
		return None[string]()
	}
	return Some(b.v.GetString(key))
}

// port returns the variable as a port number. Non-numeric and out-of-range
// input is treated as absent.
func (b *Builder) port(key string) Optional[int] {
	raw, ok := b.str(key).Get()
	if !ok {
		return None[int]()
	}
	return ParsePort(raw)
}

// origins parses a comma-separated list. An empty variable yields an empty
// list, not the overlay's.
func (b *Builder) origins(key string) Optional[[]string] {
	raw, ok := b.str(key).Get()
	if !ok {
		return None[[]string]()
	}
	return Some(ParseOrigins(raw))
}

func (b *Builder) logFormat(key string) Optional[LogFormat] {
	raw, ok := b.str(key).Get()
	if !ok || !LogFormat(raw).Valid() {
		return None[LogFormat]()
	}
	return Some(LogFormat(raw))
}

// ParsePort parses raw as a port in [PortMin, PortMax].
func ParsePort(raw string) Optional[int] {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < PortMin || n > PortMax {
		return None[int]()
	}
	return Some(n)
}

func validPort(o Optional[int]) Optional[int] {
	n, ok := o.Get()
	if !ok || n < PortMin || n > PortMax {
		return None[int]()
	}
	return o
}

// ParseOrigins splits a comma-separated list, trimming whitespace and
// discarding empty segments. Order is preserved.
func ParseOrigins(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if origin := strings.TrimSpace(part); origin != "" {
			out = append(out, origin)
		}
	}
	return out
}

// SanitizePrefix strips every leading and trailing slash.
func SanitizePrefix(prefix string) string {
	return strings.Trim(prefix, "/")
}
