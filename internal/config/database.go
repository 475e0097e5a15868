package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Supported values of database.driver.
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type DatabaseConfig struct {
	Driver     string        `koanf:"driver" validate:"oneof=mongo memory"`
	URI        string        `koanf:"uri" validate:"required_if=Driver mongo"`
	Name       string        `koanf:"name" validate:"required_if=Driver mongo"`
	Collection string        `koanf:"collection" validate:"required"`
	Timeout    time.Duration `koanf:"timeout"`
}

// String returns a string representation of the database configuration with credentials masked.
func (c *DatabaseConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Database ---\n")
	b.WriteString(fmt.Sprintf("  database.driver: %s\n", c.Driver))
	b.WriteString(fmt.Sprintf("  database.uri: %s\n", maskURI(c.URI)))
	b.WriteString(fmt.Sprintf("  database.name: %s\n", c.Name))
	b.WriteString(fmt.Sprintf("  database.collection: %s\n", c.Collection))
	b.WriteString(fmt.Sprintf("  database.timeout: %s\n", c.Timeout))
	return b.String()
}

func (c *DatabaseConfig) Validate() error {
	if c.Driver != DriverMongo {
		return nil
	}
	if !isValidMongoURI(c.URI) {
		return fmt.Errorf("database URI must start with 'mongodb://' or 'mongodb+srv://': %s", maskURI(c.URI))
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("database connect timeout is not configured")
	}
	return nil
}

func isValidMongoURI(uri string) bool {
	return strings.HasPrefix(uri, "mongodb://") ||
		strings.HasPrefix(uri, "mongodb+srv://")
}

// maskURI hides the password of a connection string.
func maskURI(uri string) string {
	if uri == "" {
		return "<not configured>"
	}
	u, err := url.Parse(uri)
	if err != nil {
		return "****"
	}
	return u.Redacted()
}
