package commands

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/okra-platform/jvppgen/internal/config"
)

//go:embed templates/*
var templatesFS embed.FS

const exampleTemplate = "templates/example.api.json"

type InitOptions struct {
	Input         string
	PluginPackage string
	TypesPackage  string
	Output        string
	Format        string
	// Example writes a sample API file to Input when it does not exist
	Example bool
}

type FileSystem interface {
	Stat(name string) (os.FileInfo, error)
	MkdirAll(path string, perm os.FileMode) error
	WriteFile(name string, data []byte, perm os.FileMode) error
}

type osFileSystem struct{}

func (fs *osFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (fs *osFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (fs *osFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

type InitCommand struct {
	filesystem  FileSystem
	templatesFS fs.FS
	dir         string
	// For testing: if set, skip prompting
	testOptions *InitOptions
}

func NewInitCommand(dir string) *InitCommand {
	return &InitCommand{
		filesystem:  &osFileSystem{},
		templatesFS: templatesFS,
		dir:         dir,
	}
}

func (c *Controller) Init(ctx context.Context) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	path, err := NewInitCommand(dir).Run(ctx)
	if err != nil {
		return err
	}
	c.Logger.Info().Str("file", path).Msg("Configuration written")
	return nil
}

// Run prompts for the settings and writes the config file. It returns the
// path of the written file.
func (ic *InitCommand) Run(ctx context.Context) (string, error) {
	return ic.RunWithOptions(ctx)
}

func (ic *InitCommand) RunWithOptions(ctx context.Context, opts ...tea.ProgramOption) (string, error) {
	var options *InitOptions
	var err error

	// For testing: use provided options instead of prompting
	if ic.testOptions != nil {
		options = ic.testOptions
	} else {
		options, err = ic.promptInitOptions(opts...)
		if err != nil {
			return "", fmt.Errorf("failed to get init options: %w", err)
		}
	}

	if options.Example && !strings.HasSuffix(options.Input, ".json") {
		return "", fmt.Errorf("the example is only available for .api.json inputs, not %s", options.Input)
	}

	path := filepath.Join(ic.dir, "jvppgen."+options.Format)
	if _, err := ic.filesystem.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}

	cfg := &config.Config{
		Input:         options.Input,
		PluginPackage: options.PluginPackage,
		TypesPackage:  options.TypesPackage,
		Output:        options.Output,
	}
	data, err := config.Encode(cfg, options.Format)
	if err != nil {
		return "", err
	}
	if err := ic.filesystem.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}

	if options.Example {
		if err := ic.writeExample(options.Input); err != nil {
			return "", err
		}
	}

	return path, nil
}

func (ic *InitCommand) promptInitOptions(opts ...tea.ProgramOption) (*InitOptions, error) {
	defaults := config.Default()
	options := &InitOptions{
		Input:         defaults.Input,
		PluginPackage: defaults.PluginPackage,
		TypesPackage:  defaults.TypesPackage,
		Output:        defaults.Output,
		Format:        "json",
	}

	form := ic.createInitForm(options)

	if len(opts) > 0 {
		// For testing: run with provided options
		program := tea.NewProgram(form, opts...)
		if _, err := program.Run(); err != nil {
			return nil, err
		}
	} else {
		// Normal execution
		if err := form.Run(); err != nil {
			return nil, err
		}
	}

	return options, nil
}

func (ic *InitCommand) createInitForm(options *InitOptions) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("API file").
				Description("Preparsed .api.json, .api or .gql file declaring custom types").
				Value(&options.Input).
				Validate(validateInput),

			huh.NewInput().
				Title("Plugin package").
				Description("Java package of the jvpp plugin").
				Value(&options.PluginPackage).
				Validate(validatePackage),

			huh.NewInput().
				Title("Types package").
				Description("Sub-package for generated types").
				Value(&options.TypesPackage).
				Validate(validatePackage),

			huh.NewInput().
				Title("Output directory").
				Value(&options.Output),

			huh.NewSelect[string]().
				Title("Config format").
				Options(
					huh.NewOption("JSON", "json"),
					huh.NewOption("YAML", "yaml"),
					huh.NewOption("TOML", "toml"),
				).
				Value(&options.Format),

			huh.NewConfirm().
				Title("Create an example API file if it is missing?").
				Value(&options.Example),
		),
	)
}

func validateInput(s string) error {
	if s == "" {
		return fmt.Errorf("API file cannot be empty")
	}
	switch {
	case strings.HasSuffix(s, ".json"), strings.HasSuffix(s, ".api"),
		strings.HasSuffix(s, ".gql"), strings.HasSuffix(s, ".graphql"):
		return nil
	}
	return fmt.Errorf("unsupported API file %s", s)
}

func validatePackage(s string) error {
	if s == "" {
		return fmt.Errorf("package cannot be empty")
	}
	for _, part := range strings.Split(s, ".") {
		if part == "" {
			return fmt.Errorf("invalid package %s", s)
		}
	}
	return nil
}

// writeExample extracts the example API file to input unless it exists
func (ic *InitCommand) writeExample(input string) error {
	path := input
	if !filepath.IsAbs(path) {
		path = filepath.Join(ic.dir, path)
	}
	if _, err := ic.filesystem.Stat(path); err == nil {
		return nil
	}

	data, err := fs.ReadFile(ic.templatesFS, exampleTemplate)
	if err != nil {
		return fmt.Errorf("failed to read example: %w", err)
	}
	if err := ic.filesystem.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := ic.filesystem.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write example: %w", err)
	}
	return nil
}
