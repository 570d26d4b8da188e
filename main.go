package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/okra-platform/jvppgen/internal/commands"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

// generationFlags are shared by the commands reading an API file
func generationFlags(flags *commands.Flags) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "path to jvppgen.{json,yaml,toml} (default: searched from the working directory)",
			Destination: &flags.Config,
		},
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "API file declaring the custom types (.api.json, .api, .gql)",
			Destination: &flags.Input,
		},
		&cli.StringFlag{
			Name:        "plugin-package",
			Usage:       "Java package of the jvpp plugin",
			Destination: &flags.PluginPackage,
		},
		&cli.StringFlag{
			Name:        "types-package",
			Usage:       "sub-package for generated types",
			Destination: &flags.TypesPackage,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "root directory of the Java sources",
			Destination: &flags.Output,
		},
	}
}

func main() {
	flags := &commands.Flags{}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	ctrl := commands.NewController(flags, log.Logger)

	app := &cli.Command{
		Name:    "jvppgen",
		Usage:   "Generate Java DTOs and JNI marshalling code for VPP custom types",
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("JVPPGEN_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(c.String("log-level"))
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}

			log.Logger = log.Level(level)
			ctrl.Logger = log.Logger

			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Generate the custom types of an API file",
				Flags: generationFlags(flags),
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Generate(ctx)
				},
			},
			{
				Name:  "watch",
				Usage: "Regenerate whenever the API file changes",
				Flags: generationFlags(flags),
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Watch(ctx)
				},
			},
			{
				Name:  "init",
				Usage: "Create a jvppgen config file",
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Init(ctx)
				},
			},
			{
				Name:  "describe",
				Usage: "Print OpenAPI definitions of the generated DTOs",
				Flags: generationFlags(flags),
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Describe(ctx)
				},
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run jvppgen")
	}
}
