package config

// AppOverrides holds optional per-environment application defaults.
type AppOverrides struct {
	Port        Optional[int]
	APIPrefix   Optional[string]
	CORSOrigins Optional[[]string]
	LogLevel    Optional[string]
	LogFormat   Optional[LogFormat]
}

// DatabaseOverrides holds optional per-environment datastore defaults.
type DatabaseOverrides struct {
	Host     Optional[string]
	Port     Optional[int]
	Username Optional[string]
	Password Optional[string]
	Name     Optional[string]
	URL      Optional[string]
}

// CacheOverrides holds optional per-environment cache defaults.
type CacheOverrides struct {
	Host     Optional[string]
	Port     Optional[int]
	Password Optional[string]
}

// SecurityOverrides holds optional per-environment security defaults.
type SecurityOverrides struct {
	JWTSecret     Optional[string]
	SessionSecret Optional[string]
	APIKey        Optional[string]
}

// Overrides is the overlay bundle for one Environment. An unset field means
// the overlay has no opinion and resolution falls through to the hardcoded default.
type Overrides struct {
	App      AppOverrides
	Database DatabaseOverrides
	Cache    CacheOverrides
	Security SecurityOverrides
}

var overlays = map[Environment]Overrides{
	EnvDevelopment: {
		App: AppOverrides{
			Port:        Some(DevelopmentAppPort),
			APIPrefix:   Some(DefaultAPIPrefix),
			CORSOrigins: Some([]string{"http://localhost:3000"}),
			LogLevel:    Some("debug"),
			LogFormat:   Some(DefaultLogFormat),
		},
		Database: DatabaseOverrides{
			Host:     Some("localhost"),
			Port:     Some(DatabaseDefaultPort),
			Username: Some("postgres"),
			Password: Some("postgres"),
			Name:     Some("ukp_development"),
		},
		Cache: CacheOverrides{
			Host:     Some("localhost"),
			Port:     Some(RedisDefaultPort),
			Password: Some(""),
		},
	},
	EnvDevContainer: {
		App: AppOverrides{
			Port:        Some(DevContainerAppPort),
			APIPrefix:   Some(DefaultAPIPrefix),
			CORSOrigins: Some([]string{"http://localhost:3000"}),
			LogLevel:    Some("debug"),
			LogFormat:   Some(DefaultLogFormat),
		},
		Database: DatabaseOverrides{
			Host:     Some("postgres"),
			Port:     Some(DatabaseDefaultPort),
			Username: Some("postgres"),
			Password: Some("postgres"),
			Name:     Some("ukp_dev_container"),
		},
		Cache: CacheOverrides{
			Host:     Some("redis"),
			Port:     Some(RedisDefaultPort),
			Password: Some(""),
		},
	},
	EnvTesting: {
		App: AppOverrides{
			Port:        Some(TestAppPort),
			APIPrefix:   Some(DefaultAPIPrefix),
			CORSOrigins: Some([]string{"http://localhost:3000"}),
			LogLevel:    Some("warn"),
			LogFormat:   Some(DefaultLogFormat),
		},
		Database: DatabaseOverrides{
			Host:     Some("localhost"),
			Port:     Some(DatabaseDefaultPort),
			Username: Some("postgres"),
			Password: Some("postgres"),
			Name:     Some("ukp_testing"),
		},
		Cache: CacheOverrides{
			Host:     Some("localhost"),
			Port:     Some(RedisDefaultPort),
			Password: Some(""),
		},
	},
	EnvStaging: {
		App: AppOverrides{
			Port:        Some(StagingAppPort),
			APIPrefix:   Some(DefaultAPIPrefix),
			CORSOrigins: Some([]string{"https://staging.example.com"}),
			LogLevel:    Some("info"),
			LogFormat:   Some(LogFormatJSON),
		},
		Database: DatabaseOverrides{
			Host:     Some("staging-db"),
			Port:     Some(DatabaseDefaultPort),
			Username: Some("ukp"),
			Password: Some("staging-password"),
			Name:     Some("ukp_staging"),
		},
		Cache: CacheOverrides{
			Host:     Some("staging-redis"),
			Port:     Some(RedisDefaultPort),
			Password: Some("staging-redis-password"),
		},
	},
	EnvProduction: {
		App: AppOverrides{
			Port:        Some(ProductionAppPort),
			APIPrefix:   Some(DefaultAPIPrefix),
			CORSOrigins: Some([]string{}),
			LogLevel:    Some("warn"),
			LogFormat:   Some(LogFormatJSON),
		},
		Database: DatabaseOverrides{
			Host:     Some("production-db"),
			Port:     Some(DatabaseDefaultPort),
			Username: Some("ukp"),
			Password: Some("production-password"),
			Name:     Some("ukp_production"),
		},
		Cache: CacheOverrides{
			Host:     Some("production-redis"),
			Port:     Some(RedisDefaultPort),
			Password: Some("production-redis-password"),
		},
	},
}

// OverridesFor returns a copy of the overlay for env. Unknown values get the
// default environment's overlay.
func OverridesFor(env Environment) Overrides {
	o, ok := overlays[env]
	if !ok {
		o = overlays[DefaultEnvironment]
	}
	// The table is shared; hand out an independent origins slice.
	if origins, ok := o.App.CORSOrigins.Get(); ok {
		o.App.CORSOrigins = Some(cloneStrings(origins))
	}
	return o
}
