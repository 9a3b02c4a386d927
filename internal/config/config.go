package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

type Config struct {
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	JWTSecret     string
	JWTTTL        time.Duration
	BcryptCost    int
	GinMode       string
	Port          string
	LogLevel      string
	LogFormat     string

	// problems collects parse failures so Validate can report them together.
	problems []string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; variables already set win.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "taskuser"),
		DBPassword:    getEnv("DB_PASSWORD", "taskpassword"),
		DBName:        getEnv("DB_NAME", "project_tracker"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		GinMode:       getEnv("GIN_MODE", "debug"),
		Port:          getEnv("PORT", "3000"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
	}
	cfg.RedisDB = cfg.getEnvInt("REDIS_DB", 0)
	cfg.BcryptCost = cfg.getEnvInt("BCRYPT_COST", 10)
	cfg.JWTTTL = cfg.getEnvDuration("JWT_TTL", 24*time.Hour)

	return cfg
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	problems := append([]string(nil), c.problems...)

	if c.JWTSecret == "" {
		problems = append(problems, ErrMissingJWTSecret.Error())
	}
	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		problems = append(problems, fmt.Sprintf("unsupported DB_DRIVER %q", c.DBDriver))
	}
	if c.JWTTTL < 0 {
		problems = append(problems, "JWT_TTL cannot be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// RevocationEnabled reports whether a redis instance is configured for token revocation.
func (c *Config) RevocationEnabled() bool {
	return c.RedisAddr != ""
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func (c *Config) getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		c.problems = append(c.problems, fmt.Sprintf("invalid %s: %q is not an integer", key, value))
		return defaultValue
	}
	return parsed
}

func (c *Config) getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		c.problems = append(c.problems, fmt.Sprintf("invalid %s: %q is not a duration", key, value))
		return defaultValue
	}
	return parsed
}
