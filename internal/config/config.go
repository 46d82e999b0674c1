package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
)

// LogFormat selects the log handler: structured JSON or human-readable text.
type LogFormat string

// Supported log formats.
const (
	LogFormatJSON   LogFormat = "json"
	LogFormatPretty LogFormat = "pretty"
)

// Valid reports whether f is one of the supported formats.
func (f LogFormat) Valid() bool {
	return f == LogFormatJSON || f == LogFormatPretty
}

// AppConfig contains application and HTTP server settings.
type AppConfig struct {
	Name        string
	Environment Environment
	Port        int
	// APIPrefix never carries leading or trailing slashes.
	APIPrefix   string
	CORSOrigins []string
	LogLevel    string
	LogFormat   LogFormat
}

// DatabaseConfig contains PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Name     string
	// URL, when non-empty, takes precedence over the discrete fields.
	URL string
}

// CacheConfig contains Redis connection settings.
type CacheConfig struct {
	Host     string
	Port     int
	Password string
}

// SecurityConfig contains signing secrets and the optional API key.
type SecurityConfig struct {
	JWTSecret       string
	SessionSecret   string
	APIKey          string
	RevocationStore string
}

// Config is the resolved, read-only configuration snapshot. Sections are
// returned by value and slices are copied, so holders of a *Config cannot
// change what other components observe.
type Config struct {
	app      AppConfig
	database DatabaseConfig
	cache    CacheConfig
	security SecurityConfig
}

// New assembles a Config from its sections. Slices are copied.
func New(app AppConfig, database DatabaseConfig, cache CacheConfig, security SecurityConfig) *Config {
	app.CORSOrigins = cloneStrings(app.CORSOrigins)
	return &Config{
		app:      app,
		database: database,
		cache:    cache,
		security: security,
	}
}

// App returns the application section.
func (c *Config) App() AppConfig {
	app := c.app
	app.CORSOrigins = cloneStrings(c.app.CORSOrigins)
	return app
}

// Database returns the datastore section.
func (c *Config) Database() DatabaseConfig {
	return c.database
}

// Cache returns the cache section.
func (c *Config) Cache() CacheConfig {
	return c.cache
}

// Security returns the security section.
func (c *Config) Security() SecurityConfig {
	return c.security
}

// IsProduction reports whether the snapshot was built for production.
func (c *Config) IsProduction() bool {
	return c.app.Environment.IsProduction()
}

// DatabaseURL returns the connection string for the datastore. An explicit
// URL is returned verbatim; otherwise one is assembled from the discrete fields.
func (c *Config) DatabaseURL() string {
	db := c.database
	if db.URL != "" {
		return db.URL
	}
	u := url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword(db.Username, db.Password),
		Host:     net.JoinHostPort(db.Host, strconv.Itoa(db.Port)),
		Path:     "/" + db.Name,
		RawQuery: "schema=public",
	}
	return u.String()
}

// RedisAddr returns the host:port address of the cache.
func (c *Config) RedisAddr() string {
	return net.JoinHostPort(c.cache.Host, strconv.Itoa(c.cache.Port))
}

// String renders a secret-free summary suitable for logs.
func (c *Config) String() string {
	return fmt.Sprintf("env=%s port=%d prefix=%q db=%s cache=%s",
		c.app.Environment, c.app.Port, c.app.APIPrefix,
		net.JoinHostPort(c.database.Host, strconv.Itoa(c.database.Port)), c.RedisAddr())
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
