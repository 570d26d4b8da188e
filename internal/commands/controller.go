// Package commands contains the CLI commands for the application
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/okra-platform/jvppgen/internal/codegen"
	"github.com/okra-platform/jvppgen/internal/codegen/jni"
	"github.com/okra-platform/jvppgen/internal/codegen/types"
	"github.com/okra-platform/jvppgen/internal/config"
	"github.com/okra-platform/jvppgen/internal/output"
	"github.com/okra-platform/jvppgen/internal/schema"
)

// Flags are the command line overrides of the config file
type Flags struct {
	LogLevel      string
	Config        string
	Input         string
	PluginPackage string
	TypesPackage  string
	Output        string
}

// Controller runs the CLI commands
type Controller struct {
	Flags  *Flags
	Logger zerolog.Logger
	Out    io.Writer

	fs output.FileSystem
}

// NewController creates a controller writing generated files to disk
func NewController(flags *Flags, logger zerolog.Logger) *Controller {
	return &Controller{
		Flags:  flags,
		Logger: logger,
		Out:    os.Stdout,
		fs:     output.NewOSFileSystem(),
	}
}

// Generate generates the custom types of the configured input
func (c *Controller) Generate(ctx context.Context) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	_, err = c.generate(cfg)
	return err
}

// generate runs one generation with a fresh registry
func (c *Controller) generate(cfg *config.Config) ([]types.Result, error) {
	logger := c.Logger.With().Str("run", uuid.NewString()).Logger()

	defs, err := schema.Load(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", cfg.Input, err)
	}

	gen := types.NewGenerator(jni.NewRegistry(), c.fs, options(cfg), logger)
	results, err := gen.Generate(defs)
	if err != nil {
		return results, fmt.Errorf("custom types generation failed: %w", err)
	}
	return results, nil
}

// loadConfig loads the config file and applies the flag overrides. Without a
// config file the defaults are used relative to the working directory.
func (c *Controller) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		dir string
		err error
	)

	if c.Flags.Config != "" {
		cfg, err = config.LoadConfigFromPath(c.Flags.Config)
		dir = filepath.Dir(c.Flags.Config)
	} else {
		cfg, dir, err = config.LoadConfig()
		if errors.Is(err, config.ErrNotFound) {
			cfg = config.Default()
			dir, err = os.Getwd()
		}
	}
	if err != nil {
		return nil, err
	}

	// Config paths are relative to the config file, flag paths to the
	// working directory.
	cfg.Resolve(dir)

	if c.Flags.Input != "" {
		if cfg.Input, err = filepath.Abs(c.Flags.Input); err != nil {
			return nil, fmt.Errorf("failed to resolve input %s: %w", c.Flags.Input, err)
		}
	}
	if c.Flags.Output != "" {
		if cfg.Output, err = filepath.Abs(c.Flags.Output); err != nil {
			return nil, fmt.Errorf("failed to resolve output %s: %w", c.Flags.Output, err)
		}
	}
	if c.Flags.PluginPackage != "" {
		cfg.PluginPackage = c.Flags.PluginPackage
	}
	if c.Flags.TypesPackage != "" {
		cfg.TypesPackage = c.Flags.TypesPackage
	}

	c.Logger.Debug().
		Str("input", cfg.Input).
		Str("package", cfg.PluginPackage).
		Str("output", cfg.Output).
		Msg("configuration loaded")
	return cfg, nil
}

func options(cfg *config.Config) codegen.Options {
	return codegen.Options{
		PluginPackage: cfg.PluginPackage,
		TypesPackage:  cfg.TypesPackage,
		OutputDir:     cfg.Output,
		InputFile:     cfg.Input,
	}
}
