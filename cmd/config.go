package cmd

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config carries everything the service needs from the environment.
type Config struct {
	HTTPPort  string `envconfig:"HTTP_PORT" default:"8080"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`
	DBSslMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	UserCacheTTL  time.Duration `envconfig:"USER_CACHE_TTL" default:"10m"`

	UserDirectoryURL string `envconfig:"USER_DIRECTORY_URL" required:"true"`

	// Empty means notifications only go to the log.
	NotifyGatewayURL string `envconfig:"NOTIFY_GATEWAY_URL"`

	AttachmentDir     string `envconfig:"ATTACHMENT_DIR" default:"./attachments"`
	AttachmentBaseURL string `envconfig:"ATTACHMENT_BASE_URL" default:"/attachments"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return Config{}, fmt.Errorf("load configuration: %w", err)
	}
	return config, nil
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}
