package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix prefixes every environment override, e.g. LEDGER_DB_HOST
const EnvPrefix = "LEDGER"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
}

// LoadConfig loads configuration for the environment named by LEDGER_ENV.
// A missing config file is not an error: defaults and environment overrides apply.
func LoadConfig() (*Config, error) {
	// .env is optional
	_ = loadDotEnvFile()

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return decode(v, env)
}

// LoadConfigFromFile loads configuration from an explicit YAML file
func LoadConfigFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	return decode(v, getEnvironment())
}

func decode(v *viper.Viper, env string) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)

	if err := ValidateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// loadDotEnvFile loads the first .env file found on the search paths
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			lastError = err
			continue
		}
		return nil
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 15)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.username", "ledger")
	v.SetDefault("database.database", "ledger")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.isolationLevel", "read committed")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 10)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 5)     // seconds
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1)    // seconds
	v.SetDefault("database.slowQueryMs", 200) // milliseconds

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")

	v.SetDefault("transaction.maxRetries", 10)
	v.SetDefault("transaction.retryIntervalMs", 20)
	v.SetDefault("transaction.maxRetryIntervalMs", 1000)
	v.SetDefault("transaction.retryJitterPercent", 20)

	v.SetDefault("auth.pbkdf2Iterations", 120000)
	v.SetDefault("auth.minPasswordLength", 6)

	v.SetDefault("events.enabled", false)
	v.SetDefault("events.brokers", []string{"localhost:9092"})
	v.SetDefault("events.topic", "ledger-events")
	v.SetDefault("events.writeTimeout", 5) // seconds

	v.SetDefault("currency.code", "USD")
}

// getEnvironment determines the environment from LEDGER_ENV
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides applies the short-form variables that do not follow the
// key path naming, e.g. LEDGER_DB_PASSWORD for database.password
func processEnvOverrides(v *viper.Viper) {
	stringOverrides := map[string]string{
		"DB_DRIVER":          "database.driver",
		"DB_HOST":            "database.host",
		"DB_PORT":            "database.port",
		"DB_USERNAME":        "database.username",
		"DB_PASSWORD":        "database.password",
		"DB_NAME":            "database.database",
		"DB_SSL_MODE":        "database.sslMode",
		"DB_ISOLATION_LEVEL": "database.isolationLevel",
		"SERVER_HOST":        "server.host",
		"LOGGER_LEVEL":       "logger.level",
		"EVENTS_TOPIC":       "events.topic",
		"CURRENCY_CODE":      "currency.code",
	}
	for suffix, key := range stringOverrides {
		if value := os.Getenv(EnvPrefix + "_" + suffix); value != "" {
			v.Set(key, value)
		}
	}

	if brokers := os.Getenv(EnvPrefix + "_EVENTS_BROKERS"); brokers != "" {
		v.Set("events.brokers", strings.Split(brokers, ","))
	}
	if enabled := os.Getenv(EnvPrefix + "_EVENTS_ENABLED"); enabled != "" {
		if parsed, err := strconv.ParseBool(enabled); err == nil {
			v.Set("events.enabled", parsed)
		}
	}

	intOverrides := map[string]string{
		"SERVER_PORT":             "server.port",
		"DB_MAX_OPEN_CONNS":       "database.maxOpenConns",
		"DB_MAX_IDLE_CONNS":       "database.maxIdleConns",
		"TRANSACTION_MAX_RETRIES": "transaction.maxRetries",
		"AUTH_PBKDF2_ITERATIONS":  "auth.pbkdf2Iterations",
	}
	for suffix, key := range intOverrides {
		if value := getEnvInt(EnvPrefix+"_"+suffix, -1); value >= 0 {
			v.Set(key, value)
		}
	}
}

// getEnvInt reads an integer environment variable
func getEnvInt(name string, defaultVal int) int {
	valStr := os.Getenv(name)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}

// processDurations converts the raw numbers read into Duration fields into their units
func processDurations(config *Config) {
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second

	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute
	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second
	config.Database.RetryDelay = time.Duration(config.Database.RetryDelay) * time.Second
	config.Database.SlowQuery = time.Duration(config.Database.SlowQuery) * time.Millisecond

	config.Transaction.RetryInterval = time.Duration(config.Transaction.RetryInterval) * time.Millisecond
	config.Transaction.MaxRetryInterval = time.Duration(config.Transaction.MaxRetryInterval) * time.Millisecond

	config.Events.WriteTimeout = time.Duration(config.Events.WriteTimeout) * time.Second
}

// ValidateConfig reports settings the application cannot start without
func ValidateConfig(config *Config) error {
	var missing []string

	switch config.Database.Driver {
	case "memory":
	case "postgres":
		if config.Database.Host == "" {
			missing = append(missing, "database.host")
		}
		if config.Database.Database == "" {
			missing = append(missing, "database.database")
		}
		if config.Database.Username == "" {
			missing = append(missing, "database.username")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}

	if config.Server.Port <= 0 {
		missing = append(missing, "server.port")
	}
	if config.Events.Enabled && (len(config.Events.Brokers) == 0 || config.Events.Topic == "") {
		missing = append(missing, "events.brokers/events.topic")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
