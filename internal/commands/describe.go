package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/okra-platform/jvppgen/internal/codegen/openapi"
	"github.com/okra-platform/jvppgen/internal/schema"
)

// Describe prints OpenAPI definitions of the DTOs the input would generate
func (c *Controller) Describe(ctx context.Context) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	defs, err := schema.Load(cfg.Input)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", cfg.Input, err)
	}
	for _, def := range defs {
		if err := schema.Validate(def); err != nil {
			return fmt.Errorf("type %s: %w", def.Name, err)
		}
	}

	doc, err := openapi.NewGenerator(filepath.Base(cfg.Input), "1.0").Generate(defs)
	if err != nil {
		return err
	}
	data, err := openapi.Marshal(doc)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(c.Out, string(data))
	return err
}
