package edgefl

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	pkgerrors "github.com/absmach/edgefl/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profileTOML = `
server_url = "edge.example.com:8080"
log_level = "debug"
request_timeout = "5s"
index = "xray"
nodes = ["http://node1:8000", "http://node2:8000"]

[gateway]
port = "9191"

[mqtt]
url = "tcp://broker:1883"
client_id = "edgefl-gw"
timeout = "2s"
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(ConfigEnv, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, "localhost:8080", cfg.ServerURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.DecodeTimeout)
	assert.Equal(t, ":9090", cfg.Gateway.Addr())
	assert.Equal(t, "edgefl/events", cfg.MQTT.Topic)
	assert.False(t, cfg.MQTTEnabled())
}

func TestLoadProfile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "edgefl.toml", profileTOML)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "edge.example.com:8080", cfg.ServerURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.DecodeTimeout)
	assert.Equal(t, "xray", cfg.Index)
	assert.Equal(t, []string{"http://node1:8000", "http://node2:8000"}, cfg.Nodes)
	assert.Equal(t, "9191", cfg.Gateway.Port)
	assert.True(t, cfg.MQTTEnabled())
	assert.Equal(t, "edgefl-gw", cfg.MQTT.ClientID)
	assert.Equal(t, 2*time.Second, cfg.MQTT.Timeout)
}

func TestLoadEnvOverridesProfile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "edgefl.toml", profileTOML)
	t.Setenv(ConfigEnv, path)
	t.Setenv("EDGEFL_SERVER_URL", "https://override:443")
	t.Setenv("EDGEFL_GATEWAY_PORT", "7070")
	t.Setenv("EDGEFL_NODES", "http://a:1,http://b:2")
	t.Setenv("EDGEFL_DECODE_TIMEOUT", "1s")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://override:443", cfg.ServerURL)
	assert.Equal(t, "7070", cfg.Gateway.Port)
	assert.Equal(t, []string{"http://a:1", "http://b:2"}, cfg.Nodes)
	assert.Equal(t, time.Second, cfg.DecodeTimeout)
	assert.Equal(t, "xray", cfg.Index)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, DotEnvFile, "EDGEFL_INDEX=from-dotenv\nEDGEFL_LOG_LEVEL=warn\n")
	t.Setenv("EDGEFL_LOG_LEVEL", "error")
	t.Cleanup(func() { os.Unsetenv("EDGEFL_INDEX") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Index)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorContains(t, err, "error reading config file")

	bad := writeFile(t, dir, "bad.toml", "server_url = [")
	_, err = Load(bad)
	assert.ErrorContains(t, err, "error parsing config file")

	badDuration := writeFile(t, dir, "duration.toml", `request_timeout = "soon"`)
	_, err = Load(badDuration)
	assert.ErrorContains(t, err, "request_timeout")

	t.Setenv("EDGEFL_LOG_LEVEL", "loud")
	_, err = Load("")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.ServerURL = " "
	assert.ErrorIs(t, cfg.Validate(), pkgerrors.ErrEmptyServerURL)

	cfg = DefaultConfig()
	cfg.RequestTimeout = 0
	assert.ErrorIs(t, cfg.Validate(), pkgerrors.ErrInvalidParams)
}
