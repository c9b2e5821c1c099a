package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:4040", cfg.Server.Address())
	assert.Equal(t, "0.0.0.0:9446", cfg.Server.StatusAddress())
	assert.Equal(t, "BankDataBase.json", cfg.Storage.Path)
	assert.Equal(t, 1, cfg.Storage.Workers)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "Logs", cfg.Logging.AuditDir)
	assert.Zero(t, cfg.Server.RequestsPerSecond)
}

func TestLoad_File(t *testing.T) {
	path := writeConfigFile(t, `
server:
  host: 127.0.0.1
  port: 5050
  status_port: 0
  requests_per_second: 2.5
  burst: 3
storage:
  path: /tmp/bank.json
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:5050", cfg.Server.Address())
	assert.Zero(t, cfg.Server.StatusPort)
	assert.Equal(t, 2.5, cfg.Server.RequestsPerSecond)
	assert.Equal(t, 3, cfg.Server.Burst)
	assert.Equal(t, "/tmp/bank.json", cfg.Storage.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 1<<20, cfg.Server.ReadBufferSize)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 4040, cfg.Server.Port)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfigFile(t, "server: [unclosed"))
	assert.Error(t, err)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: 5050\n")
	t.Setenv("BANK_SERVER_LISTEN_PORT", "6060")
	t.Setenv("BANK_STORAGE_DB_FILE", "/data/bank.json")
	t.Setenv("BANK_LOGGING_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 6060, cfg.Server.Port)
	assert.Equal(t, "/data/bank.json", cfg.Storage.Path)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestProcessEnvironmentVariables_ConfigFile(t *testing.T) {
	t.Setenv("BANK_CONFIG_FILE", writeConfigFile(t, "storage:\n  workers: 3\n"))

	cfg, err := ProcessEnvironmentVariables()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Storage.Workers)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"negative status port", func(c *Config) { c.Server.StatusPort = -1 }},
		{"empty buffer", func(c *Config) { c.Server.ReadBufferSize = 0 }},
		{"negative rate", func(c *Config) { c.Server.RequestsPerSecond = -1 }},
		{"rate without burst", func(c *Config) { c.Server.RequestsPerSecond = 1; c.Server.Burst = 0 }},
		{"empty path", func(c *Config) { c.Storage.Path = "" }},
		{"no workers", func(c *Config) { c.Storage.Workers = 0 }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
