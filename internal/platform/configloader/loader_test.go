package configloader

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Server struct {
		Port    int           `koanf:"port"`
		Timeout time.Duration `koanf:"timeout"`
	} `koanf:"server"`
	Name string `koanf:"name"`
}

func (c *testConfig) Validate() error {
	if c.Server.Port == 0 {
		return errors.New("port is required")
	}
	return nil
}

func Test_Load_Precedence(t *testing.T) {
	// given
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(ConfigFile, []byte("server:\n  port: 9000\n  timeout: 3s\nname: from-yaml\n"), 0o600))
	require.NoError(t, os.WriteFile(".env", []byte("LOADERTEST_NAME=from-dotenv\nOTHER_NAME=ignored\n"), 0o600))
	t.Setenv("LOADERTEST_SERVER_PORT", "9100")
	defaults := map[string]any{"server.port": 8080, "server.timeout": "1s", "name": "default"}
	// when
	cfg, err := Load[*testConfig]("loadertest", defaults)
	// then
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "from-dotenv", cfg.Name)
}

func Test_Load_DefaultsOnly(t *testing.T) {
	// given
	t.Chdir(t.TempDir())
	// when
	cfg, err := Load[*testConfig]("loadertest", map[string]any{"server.port": 8080})
	// then
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func Test_Load_ValidationError(t *testing.T) {
	// given
	t.Chdir(t.TempDir())
	// when
	_, err := Load[*testConfig]("loadertest", nil)
	// then
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}
