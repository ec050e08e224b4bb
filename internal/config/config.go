// Package config loads rebuttal settings from defaults, an optional YAML
// file and REBUTTAL_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/sprite-ai/rebuttal/internal/model"
)

// DefaultFile is read when no --config flag is given and it exists.
const DefaultFile = "rebuttal.yaml"

// EnvPrefix namespaces environment overrides, e.g. REBUTTAL_SERVER_PORT.
const EnvPrefix = "REBUTTAL"

// Config is the resolved configuration.
type Config struct {
	MatrixEnabled bool              `mapstructure:"matrix_enabled"`
	Log           LogConfig         `mapstructure:"log"`
	Server        ServerConfig      `mapstructure:"server"`
	Account       model.AccountInfo `mapstructure:"account"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig is where `rebuttal serve` listens.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Port int    `mapstructure:"port"`
}

// Address returns host:port.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Addr, s.Port)
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:    LogConfig{Level: "info", Format: "text"},
		Server: ServerConfig{Addr: "127.0.0.1", Port: 6142},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("matrix_enabled", d.MatrixEnabled)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.port", d.Server.Port)

	// Registered so AutomaticEnv can see account overrides during Unmarshal.
	for _, key := range []string{
		"account.name", "account.support_email", "account.support_phone",
		"account.address.line1", "account.address.line2", "account.address.city",
		"account.address.state", "account.address.postal_code", "account.address.country",
	} {
		v.SetDefault(key, "")
	}
}

// Load resolves the configuration. An explicit path must exist; without one,
// DefaultFile in the working directory is used when present.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	file := path
	if file == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			file = DefaultFile
		}
	}
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || os.IsNotExist(err) {
				return Config{}, fmt.Errorf("config file %s: %w", file, os.ErrNotExist)
			}
			return Config{}, fmt.Errorf("reading config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}
