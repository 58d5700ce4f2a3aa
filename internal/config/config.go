package config // package config loads application configuration from environment variables

import (
	"fmt"
	"log"
	"strings"
)

// Supported values for DB_DRIVER.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config holds the core runtime configuration.  Each field corresponds to
// an environment variable; a .env file in the working directory is read
// first when present.
type Config struct {
	Env  string `env:"APP_ENV" envDefault:"dev"`   // application environment (dev, test, prod)
	Port string `env:"APP_PORT" envDefault:"5000"` // HTTP port to listen on

	DBDriver  string `env:"DB_DRIVER" envDefault:"mysql"` // mysql or sqlite
	DBUser    string `env:"DB_USER"`
	DBPass    string `env:"DB_PASS"` // empty allowed
	DBHost    string `env:"DB_HOST" envDefault:"localhost"`
	DBPort    string `env:"DB_PORT" envDefault:"3306"`
	DBName    string `env:"DB_NAME" envDefault:"movienight"`
	DBPath    string `env:"DB_PATH" envDefault:"movienight.db"` // sqlite file
	DBMigrate bool   `env:"DB_MIGRATE" envDefault:"true"`       // apply embedded migrations on start

	JWTSecret    string `env:"JWT_SECRET,required,notEmpty"`
	AccessTTLMin int    `env:"ACCESS_TOKEN_TTL_MIN" envDefault:"60"`
	BcryptCost   int    `env:"BCRYPT_COST" envDefault:"10"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Parse reads and validates Config from the environment.
func Parse() (Config, error) {
	var cfg Config
	if err := parseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	switch cfg.DBDriver {
	case DriverMySQL:
		if cfg.DBUser == "" {
			return Config{}, fmt.Errorf("DB_USER is required when DB_DRIVER=%s", DriverMySQL)
		}
	case DriverSQLite:
		if strings.TrimSpace(cfg.DBPath) == "" {
			return Config{}, fmt.Errorf("DB_PATH is required when DB_DRIVER=%s", DriverSQLite)
		}
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.AccessTTLMin <= 0 {
		return Config{}, fmt.Errorf("ACCESS_TOKEN_TTL_MIN must be positive, got %d", cfg.AccessTTLMin)
	}
	// bcrypt accepts costs 4..31
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return Config{}, fmt.Errorf("BCRYPT_COST out of range: %d", cfg.BcryptCost)
	}
	return cfg, nil
}

// Load is Parse for process startup: any configuration error is fatal.
func Load() Config {
	cfg, err := Parse()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}
