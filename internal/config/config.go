package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env       string      `env:"APP_ENV" env-default:"development"`
	Server    HTTPServer  `env-prefix:"SERVER_"`
	DB        MySQLConfig `env-prefix:"DB_"`
	JWTSecret string      `env:"JWT_SECRET" env-required:"true"`
}

type HTTPServer struct {
	Port string `env:"PORT" env-default:"8080"`
}

type MySQLConfig struct {
	Host     string `env:"HOST" env-default:"localhost"`
	Port     string `env:"PORT" env-default:"3306"`
	User     string `env:"USER" env-default:"root"`
	Password string `env:"PASSWORD" env-default:""`
	Name     string `env:"NAME" env-default:"clubhub"`
}

// DSN builds the MySQL connection string. parseTime lets DATETIME columns
// scan into time.Time; multiStatements is required for the migration files,
// which hold several CREATE TABLE statements each.
func (c MySQLConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&multiStatements=true",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

// MustLoad reads configuration from the environment, loading .env first when
// present. Startup config failures are fatal.
func MustLoad() *Config {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic("failed to read config from environment: " + err.Error())
	}

	return &cfg
}
