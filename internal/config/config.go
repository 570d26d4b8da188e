package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// FileNames are the config files searched for, in order of preference
var FileNames = []string{"jvppgen.json", "jvppgen.yaml", "jvppgen.yml", "jvppgen.toml"}

// ErrNotFound is returned when no config file exists in a directory or its parents
var ErrNotFound = errors.New("no jvppgen config found")

// Config represents the jvppgen configuration file
type Config struct {
	Input         string      `json:"input" yaml:"input" toml:"input"`
	PluginPackage string      `json:"pluginPackage" yaml:"pluginPackage" toml:"pluginPackage"`
	TypesPackage  string      `json:"typesPackage" yaml:"typesPackage" toml:"typesPackage"`
	Output        string      `json:"output" yaml:"output" toml:"output"`
	Watch         WatchConfig `json:"watch" yaml:"watch" toml:"watch"`
}

// WatchConfig contains watch mode configuration
type WatchConfig struct {
	Exclude []string `json:"exclude" yaml:"exclude" toml:"exclude"`
}

// Default returns a config with every default applied
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Input == "" {
		c.Input = "./vpe.api.json"
	}
	if c.PluginPackage == "" {
		c.PluginPackage = "io.fd.vpp.jvpp"
	}
	if c.TypesPackage == "" {
		c.TypesPackage = "types"
	}
	if c.Output == "" {
		c.Output = "./"
	}
	if len(c.Watch.Exclude) == 0 {
		c.Watch.Exclude = []string{".git/", "*.java"}
	}
}

// Resolve makes relative paths absolute against dir, the directory holding
// the config file.
func (c *Config) Resolve(dir string) {
	if !filepath.IsAbs(c.Input) {
		c.Input = filepath.Join(dir, c.Input)
	}
	if !filepath.IsAbs(c.Output) {
		c.Output = filepath.Join(dir, c.Output)
	}
}

// LoadConfig loads the config from the current directory or a parent directory
func LoadConfig() (*Config, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get current directory: %w", err)
	}

	return loadConfigFromDir(dir)
}

// LoadConfigFromPath loads a config file, choosing the format by extension
func LoadConfigFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	switch format(path) {
	case "yaml":
		err = yaml.Unmarshal(data, &config)
	case "toml":
		err = toml.Unmarshal(data, &config)
	case "json":
		err = json.Unmarshal(data, &config)
	default:
		return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

// Save writes c to path in the format given by its extension
func Save(c *Config, path string) error {
	data, err := Encode(c, format(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Encode renders c as json, yaml or toml
func Encode(c *Config, format string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case "yaml", "yml":
		data, err = yaml.Marshal(c)
	case "toml":
		data, err = toml.Marshal(*c)
	case "json":
		data, err = json.MarshalIndent(c, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported config format: %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

func format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return ""
	}
}

// loadConfigFromDir searches for a config file in the given directory and its parents
func loadConfigFromDir(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		for _, name := range FileNames {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				config, err := LoadConfigFromPath(configPath)
				if err != nil {
					return nil, "", err
				}
				return config, dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return nil, "", fmt.Errorf("%w in %s or any parent directory", ErrNotFound, startDir)
}
