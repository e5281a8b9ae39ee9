package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env           string     `yaml:"env" env:"ENV" env-default:"local"`
	StorageDriver string     `yaml:"storage_driver" env:"STORAGE_DRIVER" env-default:"postgres"`
	Database      Database   `yaml:"database"`
	HTTPServer    HTTPServer `yaml:"http_server"`
	Redis         Redis      `yaml:"redis"`
	Suggest       Suggest    `yaml:"suggest"`
	Finalize      Finalize   `yaml:"finalize"`
	Metrics       Metrics    `yaml:"metrics"`
}

type Database struct {
	Host       string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port       int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User       string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password   string `yaml:"password" env:"DB_PASSWORD"`
	DBName     string `yaml:"dbname" env:"DB_NAME" env-default:"study_planner"`
	SSLMode    string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
	Migrations bool   `yaml:"migrations" env:"DB_MIGRATIONS" env-default:"true"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Redis bridges vote deltas between instances. Disabled means deltas only
// reach websocket subscribers of the local process.
type Redis struct {
	Enabled       bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Address       string `yaml:"address" env:"REDIS_ADDRESS" env-default:"localhost:6379"`
	Password      string `yaml:"password" env:"REDIS_PASSWORD"`
	DB            int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
	ChannelPrefix string `yaml:"channel_prefix" env-default:"study-planner"`
}

type Suggest struct {
	MinDuration time.Duration `yaml:"min_duration" env:"SUGGEST_MIN_DURATION" env-default:"15m"`
}

type Finalize struct {
	// RequireVotes turns "time options exist but nobody voted" into an
	// expired outcome instead of picking the first proposed option.
	RequireVotes bool `yaml:"require_votes" env:"FINALIZE_REQUIRE_VOTES" env-default:"false"`
}

type Metrics struct {
	Enabled bool `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}
