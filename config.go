package edgefl

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	pkgerrors "github.com/absmach/edgefl/pkg/errors"
	"github.com/absmach/edgefl/pkg/fl"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"
)

const (
	EnvPrefix  = "EDGEFL_"
	ConfigEnv  = EnvPrefix + "CONFIG"
	DotEnvFile = ".env"

	defaultLogLevel       = "info"
	defaultRequestTimeout = 30 * time.Second
	defaultDecodeTimeout  = 10 * time.Second
	defaultGatewayPort    = "9090"
	defaultMQTTTopic      = "edgefl/events"
	defaultMQTTTimeout    = 10 * time.Second
)

type Config struct {
	ServerURL      string        `env:"SERVER_URL"`
	LogLevel       string        `env:"LOG_LEVEL"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	DecodeTimeout  time.Duration `env:"DECODE_TIMEOUT"`
	Index          string        `env:"INDEX"`
	Nodes          []string      `env:"NODES" envSeparator:","`
	Gateway        GatewayConfig `envPrefix:"GATEWAY_"`
	MQTT           MQTTConfig    `envPrefix:"MQTT_"`
}

type GatewayConfig struct {
	Host string `env:"HOST"`
	Port string `env:"PORT"`
}

type MQTTConfig struct {
	URL      string        `env:"URL"`
	Topic    string        `env:"TOPIC"`
	ClientID string        `env:"CLIENT_ID"`
	Username string        `env:"USERNAME"`
	Password string        `env:"PASSWORD"`
	Timeout  time.Duration `env:"TIMEOUT"`
	CAPath   string        `env:"CA_PATH"`
	CertPath string        `env:"CERT_PATH"`
	KeyPath  string        `env:"KEY_PATH"`
}

// Profile mirrors Config in the TOML file. Durations are written as
// strings such as "30s".
type Profile struct {
	ServerURL      string         `toml:"server_url"`
	LogLevel       string         `toml:"log_level"`
	RequestTimeout string         `toml:"request_timeout"`
	DecodeTimeout  string         `toml:"decode_timeout"`
	Index          string         `toml:"index"`
	Nodes          []string       `toml:"nodes"`
	Gateway        GatewayProfile `toml:"gateway"`
	MQTT           MQTTProfile    `toml:"mqtt"`
}

type GatewayProfile struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
}

type MQTTProfile struct {
	URL      string `toml:"url"`
	Topic    string `toml:"topic"`
	ClientID string `toml:"client_id"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	Timeout  string `toml:"timeout"`
	CAPath   string `toml:"ca_path"`
	CertPath string `toml:"cert_path"`
	KeyPath  string `toml:"key_path"`
}

func DefaultConfig() Config {
	return Config{
		ServerURL:      fl.DefaultServerURL,
		LogLevel:       defaultLogLevel,
		RequestTimeout: defaultRequestTimeout,
		DecodeTimeout:  defaultDecodeTimeout,
		Index:          fl.DefaultIndex,
		Gateway:        GatewayConfig{Port: defaultGatewayPort},
		MQTT: MQTTConfig{
			Topic:   defaultMQTTTopic,
			Timeout: defaultMQTTTimeout,
		},
	}
}

// Load builds the configuration in layers: defaults, then the TOML profile
// at path (or $EDGEFL_CONFIG), then EDGEFL_* environment variables. A .env
// file in the working directory is loaded into the environment first
// without overriding variables that are already set.
func Load(path string) (Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("error loading %s file: %w", DotEnvFile, err)
	}

	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	if path != "" {
		p, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		if err := p.Apply(&cfg); err != nil {
			return Config{}, err
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("error parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadConfig reads a TOML profile.
func LoadConfig(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	tree, err := toml.Load(string(data))
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	var p Profile
	if err := tree.Unmarshal(&p); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &p, nil
}

// Apply overlays every value set in the profile onto cfg.
func (p *Profile) Apply(cfg *Config) error {
	setString(&cfg.ServerURL, p.ServerURL)
	setString(&cfg.LogLevel, p.LogLevel)
	setString(&cfg.Index, p.Index)
	setString(&cfg.Gateway.Host, p.Gateway.Host)
	setString(&cfg.Gateway.Port, p.Gateway.Port)
	setString(&cfg.MQTT.URL, p.MQTT.URL)
	setString(&cfg.MQTT.Topic, p.MQTT.Topic)
	setString(&cfg.MQTT.ClientID, p.MQTT.ClientID)
	setString(&cfg.MQTT.Username, p.MQTT.Username)
	setString(&cfg.MQTT.Password, p.MQTT.Password)
	setString(&cfg.MQTT.CAPath, p.MQTT.CAPath)
	setString(&cfg.MQTT.CertPath, p.MQTT.CertPath)
	setString(&cfg.MQTT.KeyPath, p.MQTT.KeyPath)
	if len(p.Nodes) > 0 {
		cfg.Nodes = p.Nodes
	}

	durations := []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{name: "request_timeout", raw: p.RequestTimeout, dst: &cfg.RequestTimeout},
		{name: "decode_timeout", raw: p.DecodeTimeout, dst: &cfg.DecodeTimeout},
		{name: "mqtt.timeout", raw: p.MQTT.Timeout, dst: &cfg.MQTT.Timeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("error parsing %s: %w", d.name, err)
		}
		*d.dst = v
	}

	return nil
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServerURL) == "" {
		return pkgerrors.ErrEmptyServerURL
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}

	if c.RequestTimeout <= 0 || c.DecodeTimeout <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", pkgerrors.ErrInvalidParams)
	}

	return nil
}

// MQTTEnabled reports whether submission events should be published.
func (c Config) MQTTEnabled() bool {
	return c.MQTT.URL != ""
}

func (c GatewayConfig) Addr() string {
	return c.Host + ":" + c.Port
}
