package config

import (
	"crypto/x509"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/philippludwig/libsimplehttp/transport"
)

// Config holds the client configuration
type Config struct {
	Engine      string `yaml:"engine"`      // Socket I/O engine: net, iouring or uring
	UnixSocket  string `yaml:"unix_socket"` // Deliver every request to this Unix socket instead of dialling the host
	CAFile      string `yaml:"ca_file"`     // PEM bundle trusted in addition to the system roots
	Environment string `yaml:"environment"` // development or production
	LogJSON     *bool  `yaml:"log_json"`    // JSON logs; defaults to true outside development
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Engine:      string(transport.EngineNet),
		Environment: "production",
	}
}

// LoadFile reads a YAML configuration file on top of the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load loads configuration from the defaults, the YAML file named by
// HTTPC_CONFIG when set, and environment variables, in that order.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("HTTPC_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Engine = getEnv("HTTPC_ENGINE", cfg.Engine)
	cfg.UnixSocket = getEnv("HTTPC_UNIX_SOCKET", cfg.UnixSocket)
	cfg.CAFile = getEnv("HTTPC_CA_FILE", cfg.CAFile)
	cfg.Environment = getEnv("APP_ENV", cfg.Environment)
	if v := os.Getenv("LOG_JSON"); v != "" {
		logJSON := v == "true"
		cfg.LogJSON = &logJSON
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks the engine name.
func (c *Config) Validate() error {
	_, err := transport.ParseEngine(c.Engine)
	return err
}

// TransportEngine returns the validated engine.
func (c *Config) TransportEngine() transport.Engine {
	engine, err := transport.ParseEngine(c.Engine)
	if err != nil {
		return transport.EngineNet
	}
	return engine
}

// UseJSONLogs reports whether logs should be JSON: explicit setting first,
// otherwise JSON everywhere except development.
func (c *Config) UseJSONLogs() bool {
	if c.LogJSON != nil {
		return *c.LogJSON
	}
	return c.Environment != "development"
}

// RootCAs returns the system roots plus the certificates in CAFile, or nil
// when no CA file is configured so the system store is used unchanged.
func (c *Config) RootCAs() (*x509.CertPool, error) {
	if c.CAFile == "" {
		return nil, nil
	}

	pem, err := os.ReadFile(c.CAFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA file: %w", err)
	}

	pool, err := x509.SystemCertPool()
	if err != nil || pool == nil {
		pool = x509.NewCertPool()
	}
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no certificates found in %s", c.CAFile)
	}
	return pool, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
