package cmd

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by every process role. Values come
// from an optional YAML settings file named by TASKING_SETTINGS, with
// environment variables taking precedence over the file.
type Config struct {
	HTTPPort string `yaml:"httpPort"`

	DBHost     string `yaml:"dbHost"`
	DBPort     string `yaml:"dbPort"`
	DBUser     string `yaml:"dbUser"`
	DBPassword string `yaml:"dbPassword"`
	DBName     string `yaml:"dbName"`
	DBSslMode  string `yaml:"dbSslMode"`

	BrokerURL string `yaml:"brokerUrl"`
	RedisAddr string `yaml:"redisAddr"`

	// WorkerName identifies a worker replica. Must be unique across the
	// deployment; replicas reuse it to reclaim their queue after a restart.
	WorkerName string `yaml:"workerName"`

	// WorkerTimeoutSeconds is how long a worker may go without a heartbeat
	// before the reaper marks it offline.
	WorkerTimeoutSeconds int `yaml:"workerTimeoutSeconds"`

	// LeaseTTLSeconds is the exclusivity lease lifetime for the singleton
	// roles.
	LeaseTTLSeconds int `yaml:"leaseTtlSeconds"`
}

// WorkerTimeout returns the reaper timeout as a duration.
func (c Config) WorkerTimeout() time.Duration {
	return time.Duration(c.WorkerTimeoutSeconds) * time.Second
}

// LeaseTTL returns the lease lifetime as a duration.
func (c Config) LeaseTTL() time.Duration {
	return time.Duration(c.LeaseTTLSeconds) * time.Second
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig assembles the configuration from defaults, the settings file
// named by TASKING_SETTINGS if present, and environment variables.
func LoadConfig() (Config, error) {
	config := Config{
		HTTPPort:             "8080",
		DBPort:               "5432",
		DBSslMode:            "disable",
		RedisAddr:            "localhost:6379",
		WorkerTimeoutSeconds: 30,
		LeaseTTLSeconds:      15,
	}

	if path := os.Getenv("TASKING_SETTINGS"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read settings file %s: %w", path, err)
		}
		if err = yaml.Unmarshal(data, &config); err != nil {
			return Config{}, fmt.Errorf("parse settings file %s: %w", path, err)
		}
	}

	overrideFromEnv(&config.HTTPPort, "HTTP_PORT")
	overrideFromEnv(&config.DBHost, "DB_HOST")
	overrideFromEnv(&config.DBPort, "DB_PORT")
	overrideFromEnv(&config.DBUser, "DB_USER")
	overrideFromEnv(&config.DBPassword, "DB_PASSWORD")
	overrideFromEnv(&config.DBName, "DB_NAME")
	overrideFromEnv(&config.DBSslMode, "DB_SSLMODE")
	overrideFromEnv(&config.BrokerURL, "BROKER_URL")
	overrideFromEnv(&config.RedisAddr, "REDIS_ADDR")
	overrideFromEnv(&config.WorkerName, "WORKER_NAME")

	return config, nil
}

func overrideFromEnv(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}
