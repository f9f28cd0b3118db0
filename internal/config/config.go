// Package config provides configuration management for leafgen using Viper
// for loading from files, environment variables, and command-line flags.
//
// The configuration lives in .leafgen.yml, every key can be overridden with
// a LEAFGEN_ prefixed environment variable, and values are validated before
// use. It covers where emitted views go, how field paths are named, the
// preview server, the watcher, and logging.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	lerrors "github.com/conneroisu/leafgen/internal/errors"
	"github.com/conneroisu/leafgen/internal/logging"
	"github.com/conneroisu/leafgen/pkg/fieldpath"
)

// Naming strategies for untagged fields.
const (
	StrategyCodec      = "codec"
	StrategyLowerCamel = "lower-camel"
)

// Defaults applied after unmarshalling.
const (
	DefaultOutputDir   = "Resources/Views"
	DefaultExtension   = ".leaf"
	DefaultTagKey      = fieldpath.DefaultTagKey
	DefaultPreviewHost = "localhost"
	DefaultPreviewPort = 8090
	DefaultDebounce    = 200 * time.Millisecond
)

type Config struct {
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Naming  NamingConfig  `yaml:"naming" mapstructure:"naming"`
	Preview PreviewConfig `yaml:"preview" mapstructure:"preview"`
	Watch   WatchConfig   `yaml:"watch" mapstructure:"watch"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Views   []string      `yaml:"-" mapstructure:"-"` // CLI arguments, not from config file
}

type OutputConfig struct {
	Dir       string `yaml:"dir" mapstructure:"dir"`
	Extension string `yaml:"extension" mapstructure:"extension"`
	Manifest  bool   `yaml:"manifest" mapstructure:"manifest"`
}

type NamingConfig struct {
	Tag      string `yaml:"tag" mapstructure:"tag"`
	Strategy string `yaml:"strategy" mapstructure:"strategy"`
}

type PreviewConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg, viper.New())
	return cfg
}

// EnvPrefix prefixes environment overrides: LEAFGEN_OUTPUT_DIR sets
// output.dir.
const EnvPrefix = "LEAFGEN"

// SetDefaults registers every key with its default so that environment
// overrides are seen by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output.dir", DefaultOutputDir)
	v.SetDefault("output.extension", DefaultExtension)
	v.SetDefault("output.manifest", true)
	v.SetDefault("naming.tag", DefaultTagKey)
	v.SetDefault("naming.strategy", StrategyCodec)
	v.SetDefault("preview.host", DefaultPreviewHost)
	v.SetDefault("preview.port", DefaultPreviewPort)
	v.SetDefault("watch.debounce", DefaultDebounce)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// BindEnv makes v read LEAFGEN_ prefixed environment variables.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads the configuration from v, applies defaults and validates
// it.
func LoadFrom(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, lerrors.Wrap(err, lerrors.ErrorTypeConfig, lerrors.ErrCodeConfigInvalid, "cannot decode configuration")
	}

	applyDefaults(&config, v)

	if err := validateConfig(&config); err != nil {
		return nil, lerrors.Wrap(err, lerrors.ErrorTypeConfig, lerrors.ErrCodeConfigInvalid, "invalid configuration")
	}

	return &config, nil
}

func applyDefaults(config *Config, v *viper.Viper) {
	if config.Output.Dir == "" {
		config.Output.Dir = DefaultOutputDir
	}
	if config.Output.Extension == "" {
		config.Output.Extension = DefaultExtension
	}
	// An explicit false must survive.
	if !v.IsSet("output.manifest") {
		config.Output.Manifest = true
	}

	if config.Naming.Tag == "" {
		config.Naming.Tag = DefaultTagKey
	}
	if config.Naming.Strategy == "" {
		config.Naming.Strategy = StrategyCodec
	}

	if config.Preview.Host == "" {
		config.Preview.Host = DefaultPreviewHost
	}
	if !v.IsSet("preview.port") && config.Preview.Port == 0 {
		config.Preview.Port = DefaultPreviewPort
	}

	if config.Watch.Debounce == 0 {
		config.Watch.Debounce = DefaultDebounce
	}

	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.Format == "" {
		config.Log.Format = "text"
	}
}

// validateConfig returns the first validation error, if any.
func validateConfig(config *Config) error {
	result := ValidateConfigWithDetails(config)
	if result.HasErrors() {
		first := result.Errors[0]
		return &first
	}
	return nil
}

// Resolver builds the field path resolver the naming section describes.
func (n NamingConfig) Resolver() *fieldpath.Resolver {
	naming := fieldpath.CodecName
	if n.Strategy == StrategyLowerCamel {
		naming = fieldpath.LowerCamel
	}
	return fieldpath.New(fieldpath.WithTagKey(n.Tag), fieldpath.WithNaming(naming))
}

// Logger builds the logger the log section describes.
func (l LogConfig) Logger() (*logging.LeafLogger, error) {
	level, err := logging.ParseLevel(l.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	cfg := logging.DefaultConfig()
	cfg.Level = level
	cfg.Format = l.Format
	return logging.NewLogger(cfg), nil
}

// Address is the preview server's listen address.
func (p PreviewConfig) Address() string {
	return fmt.Sprintf("%s:%d", p.Host, p.Port)
}
