package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type PsqlConfig struct {
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	Sslmode  string `mapstructure:"sslmode"`
}

type HTTPConfig struct {
	Env          string        `mapstructure:"env"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// BackendConfig points at the remote REST/OData API that owns orders,
// consignments, wallets and the rest of the business state.
type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type UploadConfig struct {
	URL     string        `mapstructure:"url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type RabbitMQConfig struct {
	URL string `mapstructure:"url"`
}

type CartConfig struct {
	ConflictRetries int           `mapstructure:"conflict_retries"`
	RetryBackoff    time.Duration `mapstructure:"retry_backoff"`
}

type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Psql     PsqlConfig     `mapstructure:"psql_conn"`
	Backend  BackendConfig  `mapstructure:"backend"`
	Upload   UploadConfig   `mapstructure:"upload"`
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
	Cart     CartConfig     `mapstructure:"cart"`
}

// Keys without a sensible default are still registered so that
// AutomaticEnv can fill them during Unmarshal.
var envOnlyKeys = []string{
	"psql_conn.user",
	"psql_conn.password",
	"psql_conn.host",
	"psql_conn.database",
	"backend.base_url",
	"upload.url",
	"upload.api_key",
	"rabbitmq.url",
}

func setDefaults(v *viper.Viper) {
	for _, key := range envOnlyKeys {
		v.SetDefault(key, "")
	}
	v.SetDefault("http.env", EnvLocal)
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 15*time.Second)
	v.SetDefault("psql_conn.sslmode", "disable")
	v.SetDefault("psql_conn.port", 5432)
	v.SetDefault("backend.timeout", 10*time.Second)
	v.SetDefault("upload.timeout", 30*time.Second)
	v.SetDefault("cart.conflict_retries", 3)
	v.SetDefault("cart.retry_backoff", 20*time.Millisecond)
}

// Load reads .env (if any), then config.yaml from the working directory.
// KOISTORE_* environment variables override file values, e.g.
// KOISTORE_BACKEND_BASE_URL.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %s\n", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("koistore")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Printf("Error reading config file, %s\n", err)
			return nil, err
		}
		log.Printf("Config file not found, using defaults and environment\n")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("Unable to decode into struct, %v\n", err)
		return nil, err
	}

	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("config: backend.base_url is required")
	}

	return &cfg, nil
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Psql.User, c.Psql.Password, c.Psql.Host, c.Psql.Port, c.Psql.Database, c.Psql.Sslmode)
}
