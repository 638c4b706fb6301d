package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/dotcommander/essayscore/internal/types"
)

// EnvPrefix prefixes environment overrides, e.g. ESSAYSCORE_FORMAT.
const EnvPrefix = "ESSAYSCORE"

// DefaultConfigFiles are searched in order in the working directory.
var DefaultConfigFiles = []string{".essayscorerc.json", ".essayscorerc.yaml", ".essayscorerc.yml"}

// Config represents the essayscore configuration
type Config struct {
	Root                     string   `mapstructure:"root" json:"root,omitempty"`
	Include                  []string `mapstructure:"include" json:"include"`
	Exclude                  []string `mapstructure:"exclude" json:"exclude,omitempty"`
	FollowSymlinks           bool     `mapstructure:"followSymlinks" json:"followSymlinks"`
	Format                   string   `mapstructure:"format" json:"format"`
	Output                   string   `mapstructure:"output" json:"output,omitempty"`
	Quiet                    bool     `mapstructure:"quiet" json:"quiet"`
	Verbose                  bool     `mapstructure:"verbose" json:"verbose"`
	Concurrency              int      `mapstructure:"concurrency" json:"concurrency"`
	Topic                    string   `mapstructure:"topic" json:"topic,omitempty"`
	Debug                    bool     `mapstructure:"debug" json:"debug"`
	MinContentLength         int      `mapstructure:"minContentLength" json:"minContentLength"`
	DetailedMinContentLength int      `mapstructure:"detailedMinContentLength" json:"detailedMinContentLength"`
	Seed                     uint64   `mapstructure:"seed" json:"seed"`
	FailUnder                int      `mapstructure:"failUnder" json:"failUnder"`
}

// SetDefaults registers default values on the global viper instance.
func SetDefaults() {
	viper.SetDefault("root", ".")
	viper.SetDefault("include", []string{"**/*.md", "**/*.txt"})
	viper.SetDefault("exclude", []string{})
	viper.SetDefault("followSymlinks", false)
	viper.SetDefault("format", types.FormatConsole)
	viper.SetDefault("quiet", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("concurrency", 4)
	viper.SetDefault("debug", false)
	viper.SetDefault("minContentLength", types.MinContentLength)
	viper.SetDefault("detailedMinContentLength", types.MinDetailedContentLength)
	viper.SetDefault("seed", 0)
	viper.SetDefault("failUnder", 0)
}

// LoadConfig loads configuration from defaults, a config file, environment
// variables and any flags already bound to viper. An explicit configFile must
// exist; otherwise DefaultConfigFiles are tried in order.
func LoadConfig(rootPath, configFile string) (*Config, error) {
	SetDefaults()

	if err := readConfigFile(configFile); err != nil {
		return nil, err
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if rootPath != "" {
		config.Root = rootPath
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func readConfigFile(configFile string) error {
	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", configFile, err)
		}
		return nil
	}

	for _, path := range DefaultConfigFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", path, err)
		}
		return nil
	}
	return nil
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	switch config.Format {
	case types.FormatConsole, types.FormatJSON, types.FormatMarkdown:
	default:
		return fmt.Errorf("invalid format: %s. Must be 'console', 'json', or 'markdown'", config.Format)
	}

	if config.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1")
	}

	if config.MinContentLength < 1 {
		return fmt.Errorf("minContentLength must be at least 1")
	}
	if config.DetailedMinContentLength < 1 {
		return fmt.Errorf("detailedMinContentLength must be at least 1")
	}

	if config.FailUnder < 0 || config.FailUnder > 100 {
		return fmt.Errorf("failUnder must be between 0 and 100, got %d", config.FailUnder)
	}

	if config.Quiet && config.Verbose {
		return fmt.Errorf("quiet and verbose cannot both be set")
	}

	return nil
}

// SaveConfig saves the current configuration to a file
func SaveConfig(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	jsonData, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(path, append(jsonData, '\n'), 0o644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Root:                     ".",
		Include:                  []string{"**/*.md", "**/*.txt"},
		Format:                   types.FormatConsole,
		Concurrency:              4,
		MinContentLength:         types.MinContentLength,
		DetailedMinContentLength: types.MinDetailedContentLength,
	}
}
