package cli

import (
	"context"

	"github.com/urfave/cli/v3"
	"github.com/vidtalk-lab/vidtalk/pkg/cli/config"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/model/lang"
	"github.com/vidtalk-lab/vidtalk/pkg/utils/logging"
)

func Run(ctx context.Context, args []string) error {
	var loggerCfg config.Logger
	var language lang.Lang
	var closer func()
	app := &cli.Command{
		Name:  "vidtalk",
		Usage: "Converse with YouTube videos through an LLM",
		Flags: append(loggerCfg.Flags(),
			&cli.StringFlag{
				Name:        "lang",
				Usage:       "Language for responses (e.g., English, Japanese, Spanish)",
				Value:       "English",
				Sources:     cli.EnvVars("VIDTALK_LANG"),
				Destination: (*string)(&language),
			},
		),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closer = f

			logging.Default().Debug("base options", "language", language, "logger", loggerCfg)

			if err := language.Validate(); err != nil {
				return ctx, err
			}

			return lang.With(ctx, language), nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if closer != nil {
				closer()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdChat(),
			cmdList(),
			cmdShow(),
			cmdForget(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}
