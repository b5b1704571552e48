package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/vidtalk-lab/vidtalk/pkg/service/youtube"
)

type YouTubeCfg struct {
	apiKey      string
	captionLang string
}

func (x *YouTubeCfg) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "youtube-api-key",
			Usage:       "YouTube Data API key",
			Sources:     cli.EnvVars("VIDTALK_YOUTUBE_API_KEY", "YOUTUBE_API_KEY"),
			Destination: &x.apiKey,
			Category:    "YouTube",
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "caption-lang",
			Usage:       "Caption track language code for transcripts",
			Sources:     cli.EnvVars("VIDTALK_CAPTION_LANG"),
			Value:       "en",
			Destination: &x.captionLang,
			Category:    "YouTube",
		},
	}
}

func (x YouTubeCfg) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("api_key_set", x.apiKey != ""),
		slog.String("caption_lang", x.captionLang),
	)
}

func (x *YouTubeCfg) Configure(ctx context.Context) (*youtube.Service, error) {
	svc, err := youtube.New(ctx, x.apiKey, youtube.WithCaptionLang(x.captionLang))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create YouTube service")
	}
	return svc, nil
}
