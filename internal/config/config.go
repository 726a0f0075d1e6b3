package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	CareerOneStop CareerOneStopConfig `yaml:"careeronestop" mapstructure:"careeronestop"`
	BLS           BLSConfig           `yaml:"bls" mapstructure:"bls"`
	Data          DataConfig          `yaml:"data" mapstructure:"data"`
	Cache         CacheConfig         `yaml:"cache" mapstructure:"cache"`
	Server        ServerConfig        `yaml:"server" mapstructure:"server"`
	Log           LogConfig           `yaml:"log" mapstructure:"log"`
}

// CareerOneStopConfig holds the wage API credentials. Both fields are
// required before any wage lookup can run.
type CareerOneStopConfig struct {
	UserID string `yaml:"user_id" mapstructure:"user_id"`
	Token  string `yaml:"token" mapstructure:"token"`
}

// Configured reports whether both credentials are present.
func (c CareerOneStopConfig) Configured() bool {
	return c.UserID != "" && c.Token != ""
}

// BLSConfig holds the optional BLS API key. LAUS requests work unkeyed at
// reduced daily quota.
type BLSConfig struct {
	Key string `yaml:"key" mapstructure:"key"`
}

// DataConfig locates the static data files the server reads.
type DataConfig struct {
	Dir              string `yaml:"dir" mapstructure:"dir"`
	BoundaryFile     string `yaml:"boundary_file" mapstructure:"boundary_file"`
	InstitutionsFile string `yaml:"institutions_file" mapstructure:"institutions_file"`
}

// CacheConfig configures the in-memory response caches.
type CacheConfig struct {
	TTLHours int `yaml:"ttl_hours" mapstructure:"ttl_hours"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("METROLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Secrets default to empty so the env-only keys are known
	// to viper at unmarshal time.
	v.SetDefault("careeronestop.user_id", "")
	v.SetDefault("careeronestop.token", "")
	v.SetDefault("bls.key", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("cache.ttl_hours", 24)
	v.SetDefault("data.dir", "data")
	v.SetDefault("data.boundary_file", "fl-msas.geojson")
	v.SetDefault("data.institutions_file", "institutions_fl.json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
