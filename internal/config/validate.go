package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

// ErrInvalidConfig is wrapped by every ValidationError.
var ErrInvalidConfig = errors.New("invalid configuration")

// FieldError describes one violated constraint on one environment variable.
type FieldError struct {
	// Field is the environment variable name, e.g. "JWT_SECRET".
	Field string
	// Constraint is the violated rule, e.g. "min=32".
	Constraint string
	// Message is a human-readable description. It never contains the value.
	Message string
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError aggregates every violation found in one validation pass.
type ValidationError struct {
	Fields []FieldError
}

// Error lists every failing field and constraint.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("%s: %d violation(s): %s",
		ErrInvalidConfig, len(e.Fields), strings.Join(parts, "; "))
}

// Unwrap returns ErrInvalidConfig.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

// rawEnv mirrors the recognized environment variables. A nil field means the
// variable is absent; constraints apply only to present values.
type rawEnv struct {
	NodeEnv         *string `mapstructure:"NODE_ENV"               validate:"omitnil,oneof=development dev-container testing staging production"`
	Port            *string `mapstructure:"PORT"                   validate:"omitnil,tcpport"`
	APIPrefix       *string `mapstructure:"API_PREFIX"`
	CORSOrigins     *string `mapstructure:"CORS_ORIGINS"`
	LogLevel        *string `mapstructure:"LOG_LEVEL"              validate:"omitnil,min=1"`
	LogFormat       *string `mapstructure:"LOG_FORMAT"             validate:"omitnil,oneof=json pretty"`
	DBHost          *string `mapstructure:"DB_HOST"                validate:"omitnil,min=1"`
	DBPort          *string `mapstructure:"DB_PORT"                validate:"omitnil,tcpport"`
	DBUsername      *string `mapstructure:"DB_USERNAME"            validate:"omitnil,min=1"`
	DBPassword      *string `mapstructure:"DB_PASSWORD"`
	DBName          *string `mapstructure:"DB_NAME"                validate:"omitnil,min=1"`
	DBURL           *string `mapstructure:"DB_URL"                 validate:"omitnil,url"`
	RedisHost       *string `mapstructure:"REDIS_HOST"             validate:"omitnil,min=1"`
	RedisPort       *string `mapstructure:"REDIS_PORT"             validate:"omitnil,tcpport"`
	RedisPassword   *string `mapstructure:"REDIS_PASSWORD"`
	JWTSecret       *string `mapstructure:"JWT_SECRET"             validate:"omitnil,min=32"`
	SessionSecret   *string `mapstructure:"SESSION_SECRET"         validate:"omitnil,min=32"`
	APIKey          *string `mapstructure:"API_KEY"`
	RevocationStore *string `mapstructure:"TOKEN_REVOCATION_STORE" validate:"omitnil,oneof=memory redis"`
}

// defaults are merged into the sanitized output for absent variables.
var defaults = map[string]string{
	EnvNodeEnv:         string(DefaultEnvironment),
	EnvAPIPrefix:       DefaultAPIPrefix,
	EnvLogLevel:        DefaultLogLevel,
	EnvLogFormat:       string(DefaultLogFormat),
	EnvDBHost:          DefaultDatabaseHost,
	EnvDBPort:          fmt.Sprint(DatabaseDefaultPort),
	EnvDBUsername:      DefaultDatabaseUsername,
	EnvDBPassword:      DefaultDatabasePassword,
	EnvDBName:          DefaultDatabaseName,
	EnvRedisHost:       DefaultCacheHost,
	EnvRedisPort:       fmt.Sprint(RedisDefaultPort),
	EnvRedisPassword:   DefaultCachePassword,
	EnvJWTSecret:       DefaultJWTSecret,
	EnvSessionSecret:   DefaultSessionSecret,
	EnvRevocationStore: DefaultRevocationStore,
}

var (
	validateOnce sync.Once
	envValidator *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			return f.Tag.Get("mapstructure")
		})
		if err := v.RegisterValidation("tcpport", func(fl validator.FieldLevel) bool {
			return ParsePort(fl.Field().String()).IsSet()
		}); err != nil {
			panic(fmt.Sprintf("config: register tcpport validation: %v", err))
		}
		envValidator = v
	})
	return envValidator
}

// Validate checks every recognized variable in raw and reports all
// violations at once. Unrecognized variables are ignored and passed through.
// The second result is raw with defaults filled in for absent variables.
func Validate(raw map[string]string) ([]FieldError, map[string]string) {
	sanitized := make(map[string]string, len(raw)+len(defaults))
	for k, v := range raw {
		sanitized[k] = v
	}
	for k, v := range defaults {
		if _, ok := sanitized[k]; !ok {
			sanitized[k] = v
		}
	}

	var env rawEnv
	if err := mapstructure.Decode(raw, &env); err != nil {
		// Every target field is a string, so decoding a string map cannot fail.
		return []FieldError{{Field: "*", Constraint: "decode", Message: err.Error()}}, sanitized
	}

	err := getValidator().Struct(env)
	if err == nil {
		return nil, sanitized
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "*", Constraint: "validate", Message: err.Error()}}, sanitized
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, toFieldError(fe))
	}
	return fields, sanitized
}

// ValidateEnv runs Validate and folds violations into a *ValidationError.
func ValidateEnv(raw map[string]string) error {
	fields, _ := Validate(raw)
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func toFieldError(fe validator.FieldError) FieldError {
	constraint := fe.Tag()
	if fe.Param() != "" {
		constraint += "=" + fe.Param()
	}

	var msg string
	switch fe.Tag() {
	case "tcpport":
		msg = fmt.Sprintf("must be an integer between %d and %d", PortMin, PortMax)
	case "oneof":
		msg = "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "min":
		if fe.Param() == "1" {
			msg = "must not be empty"
		} else {
			msg = fmt.Sprintf("must be at least %s characters long", fe.Param())
		}
	case "url":
		msg = "must be a valid URL"
	default:
		msg = "failed on the '" + fe.Tag() + "' rule"
	}

	return FieldError{Field: fe.Field(), Constraint: constraint, Message: msg}
}
