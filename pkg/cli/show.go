package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/vidtalk-lab/vidtalk/pkg/cli/config"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/types"
	"github.com/vidtalk-lab/vidtalk/pkg/usecase"
)

func cmdShow() *cli.Command {
	var (
		videoID    string
		storageCfg config.Storage
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "video-id",
				Aliases:     []string{"v"},
				Usage:       "Video ID of the conversation to show",
				Destination: &videoID,
				Required:    true,
			},
		},
		storageCfg.Flags(),
	)

	return &cli.Command{
		Name:  "show",
		Usage: "Show the stored conversation for a video",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			id := types.VideoID(videoID)
			if err := id.Validate(); err != nil {
				return err
			}

			repo, err := storageCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure memory store")
			}

			uc := usecase.New(usecase.WithRepository(repo))
			sess, err := uc.Show(ctx, id)
			if err != nil {
				return goerr.Wrap(err, "failed to load conversation", goerr.V("video_id", id))
			}

			blue := color.New(color.FgBlue, color.Bold)
			green := color.New(color.FgGreen, color.Bold)
			gray := color.New(color.FgHiBlack)

			if sess.VideoMetadata != nil {
				blue.Printf("%s", sess.VideoMetadata.Title)
				gray.Printf(" (%s, %s)\n", sess.VideoMetadata.Channel, sess.VideoMetadata.Duration)
			} else {
				blue.Printf("%s\n", sess.VideoID)
			}
			gray.Printf("Started %s, %d exchanges\n\n", sess.CreatedAt.Format("2006-01-02 15:04:05 MST"), len(sess.Exchanges))

			for _, ex := range sess.Exchanges {
				gray.Printf("[%s]\n", ex.Timestamp.Format("2006-01-02 15:04:05"))
				green.Print("You: ")
				fmt.Println(ex.User)
				blue.Print("Assistant: ")
				fmt.Println(ex.Assistant)
				fmt.Println()
			}

			return nil
		},
	}
}
