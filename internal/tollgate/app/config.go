package app

import (
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/service"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/store/drivers/redis"
)

type Config struct {
	JWTSecret   string        // Required: HS256 signing secret
	Issuer      string        // Optional: issuer claim for tokens (default: tollgate)
	TokenTTL    time.Duration // Optional: access token lifetime (default: 3600s)
	ClockSkew   time.Duration // Optional: leeway applied to exp checks (default: 0)
	SeedClients string        // Optional: id:secret,id:secret inserted into an empty registry

	DatabaseFile string // Optional: path to SQLite database file (default: ./tollgate.db)
	PepperFile   string // Optional: path to file containing pepper for secret hashing (default: ./pepper)

	RedisAddr      string        // Optional: host:port of the token store (default: localhost:6379)
	RedisPassword  string        // Optional
	RedisDB        int           // Optional (default: 0)
	RedisKeyPrefix string        // Optional (default: jwt:)
	RedisOpTimeout time.Duration // Optional: per-operation deadline (default: 2s)

	CORSAllowedOrigins []string // Optional: comma separated (default: *)

	AppName             string        // Reported by /health (default: tollgate)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 3000)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads the configuration from the environment. A .env file in
// the working directory is loaded first when present; variables already set
// in the environment win.
func LoadConfig() Config {
	_ = godotenv.Load() // optional

	cfg := Config{
		JWTSecret:   os.Getenv("JWT_SECRET"),
		Issuer:      getEnvOrDefault("AUTH_ISSUER", "tollgate"),
		TokenTTL:    getEnvSecondsOrDefault("AUTH_TOKEN_TTL", time.Hour),
		ClockSkew:   getEnvSecondsOrDefault("AUTH_CLOCK_SKEW", 0),
		SeedClients: os.Getenv("AUTH_SEED_CLIENTS"),

		DatabaseFile: getEnvOrDefault("AUTH_DATABASE_FILE", "tollgate.db"),
		PepperFile:   getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),

		RedisAddr:      redisAddr(),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getEnvIntOrDefault("REDIS_DB", 0),
		RedisKeyPrefix: getEnvOrDefault("REDIS_KEY_PREFIX", redis.DefaultKeyPrefix),
		RedisOpTimeout: getEnvDurationOrDefault("REDIS_OP_TIMEOUT", redis.DefaultOpTimeout),

		CORSAllowedOrigins: getEnvListOrDefault("CORS_ALLOWED_ORIGINS", []string{"*"}),

		AppName:             getEnvOrDefault("APP_NAME", "tollgate"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 3000),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	return cfg
}

// Seeds returns the clients to insert into an empty registry. Outside of dev
// nothing is seeded unless AUTH_SEED_CLIENTS is set.
func (c Config) Seeds() ([]service.ClientSeed, error) {
	if c.SeedClients != "" {
		return service.ParseSeedClients(c.SeedClients)
	}
	if c.Env == "dev" {
		return append([]service.ClientSeed(nil), service.DevSeedClients...), nil
	}
	return nil, nil
}

// RedisOptions maps the config onto the token store driver.
func (c Config) RedisOptions() redis.Options {
	return redis.Options{
		Addr:      c.RedisAddr,
		Password:  c.RedisPassword,
		DB:        c.RedisDB,
		KeyPrefix: c.RedisKeyPrefix,
		OpTimeout: c.RedisOpTimeout,
	}
}

func redisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return net.JoinHostPort(
		getEnvOrDefault("REDIS_HOST", "localhost"),
		getEnvOrDefault("REDIS_PORT", "6379"),
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}

// getEnvSecondsOrDefault accepts either a Go duration ("90s", "1h") or a
// bare integer number of seconds.
func getEnvSecondsOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if seconds, err := strconv.Atoi(value); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}

	return getEnvDurationOrDefault(key, defaultValue)
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for item := range strings.SplitSeq(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
