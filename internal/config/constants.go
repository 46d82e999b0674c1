package config

// Environment variable names recognized by Validate and the Builder.
const (
	EnvNodeEnv         = "NODE_ENV"
	EnvPort            = "PORT"
	EnvAPIPrefix       = "API_PREFIX"
	EnvCORSOrigins     = "CORS_ORIGINS"
	EnvLogLevel        = "LOG_LEVEL"
	EnvLogFormat       = "LOG_FORMAT"
	EnvDBHost          = "DB_HOST"
	EnvDBPort          = "DB_PORT"
	EnvDBUsername      = "DB_USERNAME"
	EnvDBPassword      = "DB_PASSWORD"
	EnvDBName          = "DB_NAME"
	EnvDBURL           = "DB_URL"
	EnvRedisHost       = "REDIS_HOST"
	EnvRedisPort       = "REDIS_PORT"
	EnvRedisPassword   = "REDIS_PASSWORD"
	EnvJWTSecret       = "JWT_SECRET"
	EnvSessionSecret   = "SESSION_SECRET"
	EnvAPIKey          = "API_KEY"
	EnvRevocationStore = "TOKEN_REVOCATION_STORE"
)

// Port bounds applied to every numeric port field.
const (
	PortMin = 1
	PortMax = 65535
)

// SecretMinLength is the minimum accepted length of the JWT and session secrets.
const SecretMinLength = 32

// Hardcoded fallbacks, consulted when neither the environment nor the
// overlay supplies a value.
const (
	DefaultAppName       = "ukp-api"
	DefaultAPIPrefix     = "api"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = LogFormatPretty
	DefaultJWTSecret     = "ukp-development-jwt-secret-do-not-use-in-prod"
	DefaultSessionSecret = "ukp-development-session-secret-do-not-use-in-prod"

	DefaultDatabaseHost     = "localhost"
	DefaultDatabaseUsername = "postgres"
	DefaultDatabasePassword = "postgres"
	DefaultDatabaseName     = "ukp"
	DefaultCacheHost        = "localhost"
	DefaultCachePassword    = ""

	DefaultRevocationStore = RevocationStoreMemory
)

// Default ports per deployment environment.
const (
	DevelopmentAppPort  = 3000
	DevContainerAppPort = 3000
	TestAppPort         = 3001
	StagingAppPort      = 8080
	ProductionAppPort   = 8080

	DatabaseDefaultPort = 5432
	RedisDefaultPort    = 6379
)

// Token revocation backends.
const (
	RevocationStoreMemory = "memory"
	RevocationStoreRedis  = "redis"
)
