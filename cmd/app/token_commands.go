package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/randtoken/cmd/app/commands"
	"github.com/allisson/randtoken/internal/app"
	"github.com/allisson/randtoken/internal/config"
)

func tokenShapeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "bits",
			Aliases: []string{"b"},
			Value:   0,
			Usage:   "Entropy in bits, a multiple of 128 (0 uses TOKEN_DEFAULT_BIT_SIZE)",
		},
		&cli.StringFlag{
			Name:    "alphabet",
			Aliases: []string{"a"},
			Usage:   "Literal alphabet of unique characters",
		},
		&cli.StringFlag{
			Name:    "preset",
			Aliases: []string{"p"},
			Usage:   "Named alphabet (base16, base36, base58, base62, base66, base71)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   "text",
			Usage:   "Output format: 'text' or 'json'",
		},
	}
}

func optionsFromFlags(cmd *cli.Command) commands.GenerateOptions {
	return commands.GenerateOptions{
		BitSize:  int(cmd.Int("bits")),
		Alphabet: cmd.String("alphabet"),
		Preset:   cmd.String("preset"),
		Count:    int(cmd.Int("count")),
		Hash:     cmd.Bool("hash"),
		Format:   cmd.String("format"),
	}
}

func getTokenCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "generate",
			Usage: "Generate random tokens",
			Flags: append(tokenShapeFlags(),
				&cli.IntFlag{
					Name:    "count",
					Aliases: []string{"n"},
					Value:   1,
					Usage:   "Number of tokens to generate",
				},
				&cli.BoolFlag{
					Name:  "hash",
					Value: false,
					Usage: "Print the Argon2id digest of each token",
				},
				&cli.StringFlag{
					Name:  "seed",
					Usage: "Hex-encoded seed for reproducible output (never use for secrets)",
				},
			),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				source, err := commands.ParseSeed(cmd.String("seed"))
				if err != nil {
					return err
				}

				cfg := config.Load()
				var opts []app.Option
				if source != nil {
					opts = append(opts, app.WithEntropySource(source))
				}
				container := app.NewContainer(cfg, opts...)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.TokenUseCase()
				if err != nil {
					return err
				}

				return commands.RunGenerate(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO(),
					optionsFromFlags(cmd),
				)
			},
		},
		{
			Name:  "describe",
			Usage: "Show the derived generator configuration",
			Flags: tokenShapeFlags(),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.TokenUseCase()
				if err != nil {
					return err
				}

				return commands.RunDescribe(ctx, useCase, commands.DefaultIO(), optionsFromFlags(cmd))
			},
		},
		{
			Name:  "presets",
			Usage: "List the built-in alphabets",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.TokenUseCase()
				if err != nil {
					return err
				}

				return commands.RunListPresets(ctx, useCase, commands.DefaultIO(), cmd.String("format"))
			},
		},
		{
			Name:  "verify",
			Usage: "Check a token against a digest printed by generate --hash",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "token",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Token to check",
				},
				&cli.StringFlag{
					Name:     "hash",
					Required: true,
					Usage:    "Argon2id digest",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.TokenUseCase()
				if err != nil {
					return err
				}

				return commands.RunVerify(
					ctx,
					useCase,
					commands.DefaultIO(),
					cmd.String("token"),
					cmd.String("hash"),
					cmd.String("format"),
				)
			},
		},
	}
}
