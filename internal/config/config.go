package config

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const EnvPrefix = "BANK"

type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Storage StorageConfig `yaml:"storage" envconfig:"STORAGE"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

type ServerConfig struct {
	Host       string `yaml:"host" envconfig:"LISTEN_HOST"`
	Port       int    `yaml:"port" envconfig:"LISTEN_PORT"`
	StatusPort int    `yaml:"status_port" envconfig:"STATUS_PORT"` // 0 disables the HTTP status endpoint
	// ReadBufferSize bounds a single inbound envelope.
	ReadBufferSize int `yaml:"read_buffer_size" envconfig:"READ_BUFFER_SIZE"`
	// RequestsPerSecond limits each connection; 0 means unlimited.
	RequestsPerSecond float64 `yaml:"requests_per_second" envconfig:"REQUESTS_PER_SECOND"`
	Burst             int     `yaml:"burst" envconfig:"BURST"`
}

type StorageConfig struct {
	Path    string `yaml:"path" envconfig:"DB_FILE"`
	Workers int    `yaml:"workers" envconfig:"WORKERS"`
}

type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LOG_LEVEL"` // debug, info, warn, error
	AuditDir string `yaml:"audit_dir" envconfig:"AUDIT_DIR"`
}

// ProcessEnvironmentVariables loads the configuration from the file named by
// BANK_CONFIG_FILE (if any) and the BANK_* environment variables.
func ProcessEnvironmentVariables() (*Config, error) {
	return Load(os.Getenv(EnvPrefix + "_CONFIG_FILE"))
}

// Load layers defaults, the optional YAML file and environment variables, in
// that order, then validates the result.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           4040,
			StatusPort:     9446,
			ReadBufferSize: 1 << 20,
			Burst:          1,
		},
		Storage: StorageConfig{
			Path:    "BankDataBase.json",
			Workers: 1,
		},
		Logging: LoggingConfig{
			Level:    "info",
			AuditDir: "Logs",
		},
	}
}

func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.StatusPort < 0 || c.Server.StatusPort > 65535 {
		return fmt.Errorf("invalid status port: %d", c.Server.StatusPort)
	}
	if c.Server.ReadBufferSize < 1 {
		return fmt.Errorf("read_buffer_size must be positive")
	}
	if c.Server.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must not be negative")
	}
	if c.Server.RequestsPerSecond > 0 && c.Server.Burst < 1 {
		return fmt.Errorf("burst must be at least 1 when rate limiting")
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage path is required")
	}
	if c.Storage.Workers < 1 {
		return fmt.Errorf("storage workers must be at least 1")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	return nil
}

// Address returns the TCP listen address.
func (c *ServerConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// StatusAddress returns the HTTP status listen address.
func (c *ServerConfig) StatusAddress() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.StatusPort))
}
