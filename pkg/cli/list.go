package cli

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/vidtalk-lab/vidtalk/pkg/cli/config"
	"github.com/vidtalk-lab/vidtalk/pkg/usecase"
)

func cmdList() *cli.Command {
	var storageCfg config.Storage

	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List stored video conversations",
		Flags:   storageCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := storageCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure memory store")
			}

			uc := usecase.New(usecase.WithRepository(repo))
			summaries, err := uc.Sessions(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to list conversations")
			}

			if len(summaries) == 0 {
				fmt.Println("No stored conversations.")
				return nil
			}

			blue := color.New(color.FgBlue, color.Bold)
			gray := color.New(color.FgHiBlack)

			blue.Printf("Stored conversations: %d\n\n", len(summaries))
			for _, s := range summaries {
				title := s.Title
				if title == "" {
					title = "(unknown title)"
				}
				blue.Printf("%s", s.VideoID)
				fmt.Printf("  %s\n", title)
				gray.Printf("  %d exchanges, started %s\n", s.ExchangeCount, humanize.Time(s.CreatedAt))
			}

			return nil
		},
	}
}
