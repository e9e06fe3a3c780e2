// Package config loads the analysis engine configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding configuration keys
const EnvPrefix = "ENVDOC"

// Config holds the complete engine configuration.
type Config struct {
	Scan    ScanConfig    `mapstructure:"scan"`
	Extract ExtractConfig `mapstructure:"extract"`
	Log     LogConfig     `mapstructure:"log"`
}

// ScanConfig holds file discovery configuration.
type ScanConfig struct {
	ConfigExtensions     []string `mapstructure:"config_extensions"`      // Declarative configuration files
	SourceExtensions     []string `mapstructure:"source_extensions"`      // Parsed source files
	Exclude              []string `mapstructure:"exclude"`                // doublestar globs matched against root relative paths
	ModuleMarkers        []string `mapstructure:"module_markers"`         // Build descriptors identifying a module
	CacheSize            int      `mapstructure:"cache_size"`             // Parsed source file cache capacity
	TolerateSyntaxErrors bool     `mapstructure:"tolerate_syntax_errors"` // Keep partially parsed source files
}

// ExtractConfig holds the names recognized by definition extraction.
type ExtractConfig struct {
	ValueAnnotation      string   `mapstructure:"value_annotation"`
	PropertiesAnnotation string   `mapstructure:"properties_annotation"`
	EnvironmentReceivers []string `mapstructure:"environment_receivers"` // Receiver substrings of environment accessors
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Prefix string `mapstructure:"prefix"`
}

// SetDefaults registers every key default
func SetDefaults(v *viper.Viper) {
	// Scan defaults
	v.SetDefault("scan.config_extensions", []string{".yml", ".yaml", ".properties"})
	v.SetDefault("scan.source_extensions", []string{".java"})
	v.SetDefault("scan.exclude", []string{
		"**/test/**",
		"**/target/**",
		"**/build/**",
		"**/out/**",
		"**/.git/**",
		"**/node_modules/**",
	})
	v.SetDefault("scan.module_markers", []string{"pom.xml", "build.gradle", "build.gradle.kts"})
	v.SetDefault("scan.cache_size", 512)
	v.SetDefault("scan.tolerate_syntax_errors", false)

	// Extraction defaults
	v.SetDefault("extract.value_annotation", "Value")
	v.SetDefault("extract.properties_annotation", "ConfigurationProperties")
	v.SetDefault("extract.environment_receivers", []string{"environment", "Environment", "env"})

	// Logging defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.prefix", "envdoc")
}

// New creates a Config from viper
func New(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

// Default returns the built-in configuration
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	config, err := New(v)
	if err != nil {
		panic(fmt.Errorf("invalid default configuration: %w", err))
	}
	return config
}

// Load reads an optional configuration file; environment variables prefixed with ENVDOC_ override it
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("envdoc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config %v: %w", path, err)
		}
		// Config file not found; use defaults and environment
	}
	return New(v)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Scan.ConfigExtensions) == 0 {
		return errors.New("scan.config_extensions is required")
	}
	if len(c.Scan.SourceExtensions) == 0 {
		return errors.New("scan.source_extensions is required")
	}
	if c.Scan.CacheSize < 1 {
		return errors.New("scan.cache_size must be at least 1")
	}
	if c.Extract.ValueAnnotation == "" {
		return errors.New("extract.value_annotation is required")
	}
	if c.Extract.PropertiesAnnotation == "" {
		return errors.New("extract.properties_annotation is required")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Logger creates a logger writing to w with the configured level and prefix
func (c *LogConfig) Logger(w io.Writer) *log.Logger {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: c.Prefix,
		Level:  level,
	})
}
