package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/vidtalk-lab/vidtalk/pkg/cli/config"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/types"
	"github.com/vidtalk-lab/vidtalk/pkg/usecase"
)

func cmdForget() *cli.Command {
	var (
		videoID    string
		all        bool
		storageCfg config.Storage
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "video-id",
				Aliases:     []string{"v"},
				Usage:       "Video ID of the conversation to forget",
				Destination: &videoID,
			},
			&cli.BoolFlag{
				Name:        "all",
				Usage:       "Forget all stored conversations",
				Destination: &all,
			},
		},
		storageCfg.Flags(),
	)

	return &cli.Command{
		Name:  "forget",
		Usage: "Delete stored conversation memory",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if videoID == "" && !all {
				return goerr.New("either video-id or all is required")
			}
			if videoID != "" && all {
				return goerr.New("video-id and all are mutually exclusive")
			}

			repo, err := storageCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure memory store")
			}
			uc := usecase.New(usecase.WithRepository(repo))

			if all {
				count, err := uc.ForgetAll(ctx)
				if err != nil {
					return goerr.Wrap(err, "failed to forget conversations")
				}
				fmt.Printf("Forgot %d conversation(s).\n", count)
				return nil
			}

			id := types.VideoID(videoID)
			if err := id.Validate(); err != nil {
				return err
			}
			if err := uc.Forget(ctx, id); err != nil {
				return goerr.Wrap(err, "failed to forget conversation", goerr.V("video_id", id))
			}
			fmt.Printf("Forgot conversation for %s.\n", id)
			return nil
		},
	}
}
