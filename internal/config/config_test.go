package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_Defaults(t *testing.T) {
	// given
	t.Chdir(t.TempDir())
	// when
	cfg, err := Load()
	// then
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTPServer.Port)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
	assert.Equal(t, "Marketplace", cfg.Database.Name)
	assert.Equal(t, "products", cfg.Database.Collection)
	assert.Equal(t, 10*time.Second, cfg.Database.Timeout)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.NATS.Enabled)
	assert.Equal(t, 15*time.Second, cfg.Shutdown.Timeout)
}

func Test_Load_EnvOverrides(t *testing.T) {
	// given
	t.Chdir(t.TempDir())
	t.Setenv("PRODUCT_SERVER_PORT", "9999")
	t.Setenv("PRODUCT_DATABASE_DRIVER", "memory")
	t.Setenv("PRODUCT_SERVER_MAXHEADERBYTES", "4096")
	t.Setenv("PRODUCT_CORS_ALLOWEDORIGINS", "http://a.example,http://b.example")
	// when
	cfg, err := Load()
	// then
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.HTTPServer.Port)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 4096, cfg.HTTPServer.MaxHeaderBytes)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORS.AllowedOrigins)
}

func Test_Config_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		mutate    func(c *Config)
		expectErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "postgres" }, expectErr: "Driver"},
		{name: "bad mongo uri", mutate: func(c *Config) { c.Database.URI = "http://localhost" }, expectErr: "mongodb://"},
		{name: "memory driver needs no uri", mutate: func(c *Config) {
			c.Database.Driver = DriverMemory
			c.Database.URI = ""
		}},
		{name: "port out of range", mutate: func(c *Config) { c.HTTPServer.Port = 70000 }, expectErr: "Port"},
		{name: "unknown log level", mutate: func(c *Config) { c.Log.Level = "trace" }, expectErr: "Level"},
		{name: "shutdown timeout missing", mutate: func(c *Config) { c.Shutdown.Timeout = 0 }, expectErr: "shutdown timeout"},
		{name: "nats enabled without url", mutate: func(c *Config) {
			c.NATS.Enabled = true
			c.NATS.Url = ""
		}, expectErr: "NATS URL"},
		{name: "grpc enabled without port", mutate: func(c *Config) {
			c.GRPC.Enabled = true
			c.GRPC.Port = ""
		}, expectErr: "gRPC port"},
		{name: "traces enabled without endpoint", mutate: func(c *Config) {
			c.Telemetry.Traces.Enabled = true
			c.Telemetry.Traces.OtlpHttp.Endpoint = ""
		}, expectErr: "OTel endpoint"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			t.Chdir(t.TempDir())
			cfg, err := Load()
			require.NoError(t, err)
			tc.mutate(cfg)
			// when
			err = cfg.Validate()
			// then
			if tc.expectErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expectErr)
		})
	}
}

func Test_maskURI(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"", "<not configured>"},
		{"mongodb://localhost:27017", "mongodb://localhost:27017"},
		{"mongodb://admin:secret@db:27017/?authSource=admin", "mongodb://admin:xxxxx@db:27017/?authSource=admin"},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, maskURI(tc.input))
		})
	}
}

func Test_Config_String_MasksCredentials(t *testing.T) {
	// given
	cfg := &Config{Database: DatabaseConfig{URI: "mongodb://admin:secret@db:27017"}}
	// when
	s := cfg.String()
	// then
	assert.NotContains(t, s, "secret")
	assert.Contains(t, s, "database.uri")
}
