package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type Config struct {
	Server    ServerConfig
	Mongo     MongoConfig
	Log       LogConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Store     StoreConfig
}

type ServerConfig struct {
	Port        string
	Environment string
}

type MongoConfig struct {
	ConnectionString string
	Database         string
	Timeout          time.Duration
}

type LogConfig struct {
	Level string
}

type CORSConfig struct {
	AllowedOrigin string
}

type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

type StoreConfig struct {
	Driver string
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// Load reads configuration from the environment (after loading an optional
// .env file) and, when configFile is set, from that file. Environment wins.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("mongo.connectionstring", "mongodb://mongodb:27017")
	v.SetDefault("mongo.database", "kuber_todo_db")
	v.SetDefault("mongo.timeout", "10s")
	v.SetDefault("log.level", "info")
	v.SetDefault("cors.allowedorigin", "*")
	v.SetDefault("ratelimit.enabled", false)
	v.SetDefault("ratelimit.rps", 20)
	v.SetDefault("ratelimit.burst", 40)
	v.SetDefault("store.driver", DriverMongo)

	// MONGO__X follows the nested-key env convention used by container
	// orchestrators; MONGO_URI and MONGO_DB are the short forms.
	bindings := map[string][]string{
		"server.port":            {"PORT", "SERVER_PORT"},
		"server.environment":     {"APP_ENV", "SERVER_ENVIRONMENT"},
		"mongo.connectionstring": {"MONGO_CONNECTIONSTRING", "MONGO__CONNECTIONSTRING", "MONGO_URI"},
		"mongo.database":         {"MONGO_DATABASE", "MONGO__DATABASE", "MONGO_DB"},
		"cors.allowedorigin":     {"CORS_ALLOWED_ORIGIN"},
		"ratelimit.enabled":      {"RATE_LIMIT_ENABLED"},
		"ratelimit.rps":          {"RATE_LIMIT_RPS"},
		"ratelimit.burst":        {"RATE_LIMIT_BURST"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        v.GetString("server.port"),
			Environment: v.GetString("server.environment"),
		},
		Mongo: MongoConfig{
			ConnectionString: v.GetString("mongo.connectionstring"),
			Database:         v.GetString("mongo.database"),
			Timeout:          v.GetDuration("mongo.timeout"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
		CORS: CORSConfig{
			AllowedOrigin: v.GetString("cors.allowedorigin"),
		},
		RateLimit: RateLimitConfig{
			Enabled: v.GetBool("ratelimit.enabled"),
			RPS:     v.GetFloat64("ratelimit.rps"),
			Burst:   v.GetInt("ratelimit.burst"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(v.GetString("store.driver")),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q (want %s or %s)", c.Store.Driver, DriverMongo, DriverMemory)
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server port must not be empty")
	}
	if c.Mongo.Timeout <= 0 {
		return fmt.Errorf("mongo timeout must be positive, got %s", c.Mongo.Timeout)
	}
	return nil
}
