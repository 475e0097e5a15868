// Package config defines the product service configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/chetanpal14/web-application-assignment/internal/platform/configloader"
	"github.com/go-playground/validator/v10"
)

// ServiceName selects the PRODUCT_ environment prefix.
const ServiceName = "product"

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer HTTPConfig       `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Log        LogConfig        `koanf:"log"`
	PProf      PProfConfig      `koanf:"pprof"`
	GRPC       GrpcServerConfig `koanf:"grpc"`
	CORS       CORSConfig       `koanf:"cors"`
	Telemetry  TelemetryConfig  `koanf:"telemetry"`
	NATS       NATSConfig       `koanf:"nats"`
	Shutdown   ShutdownConfig   `koanf:"shutdown"`
}

// Defaults returns the values used when neither config.yaml nor the environment sets a key.
func Defaults() map[string]any {
	return map[string]any{
		"server.port":                        8080,
		"server.maxheaderbytes":              1 << 20,
		"server.timeout.read":                "10s",
		"server.timeout.write":               "10s",
		"server.timeout.idle":                "60s",
		"server.timeout.readheader":          "5s",
		"database.driver":                    DriverMongo,
		"database.uri":                       "mongodb://localhost:27017",
		"database.name":                      "Marketplace",
		"database.collection":                "products",
		"database.timeout":                   "10s",
		"log.level":                          "info",
		"pprof.enabled":                      false,
		"pprof.addr":                         "localhost:6060",
		"grpc.enabled":                       false,
		"grpc.port":                          "9090",
		"grpc.reflection":                    false,
		"cors.allowedorigins":                []string{"*"},
		"cors.maxage":                        300,
		"telemetry.traces.enabled":           false,
		"telemetry.traces.otlphttp.endpoint": "localhost:4318",
		"telemetry.traces.otlphttp.insecure": true,
		"telemetry.traces.otlphttp.timeout":  "5s",
		"telemetry.metrics.enabled":          false,
		"nats.enabled":                       false,
		"nats.url":                           "nats://localhost:4222",
		"nats.timeout":                       "5s",
		"nats.stream":                        "PRODUCTS",
		"shutdown.timeout":                   "15s",
	}
}

// Load reads the configuration for the product service.
func Load() (*Config, error) {
	return configloader.Load[*Config](ServiceName, Defaults())
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.HTTPServer.String())
	b.WriteString(c.Database.String())
	b.WriteString(c.GRPC.String())
	b.WriteString(c.CORS.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.Telemetry.String())
	b.WriteString(c.NATS.String())
	b.WriteString(c.Shutdown.String())
	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	sections := []configloader.Validator{
		&c.HTTPServer,
		&c.Database,
		&c.PProf,
		&c.GRPC,
		&c.Telemetry,
		&c.NATS,
		&c.Shutdown,
	}
	for _, section := range sections {
		if err := section.Validate(); err != nil {
			return err
		}
	}
	return nil
}
