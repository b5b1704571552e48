package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/vidtalk-lab/vidtalk/pkg/cli/config"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/types"
	"github.com/vidtalk-lab/vidtalk/pkg/service/youtube"
	"github.com/vidtalk-lab/vidtalk/pkg/usecase"
	"github.com/vidtalk-lab/vidtalk/pkg/utils/logging"
)

func cmdChat() *cli.Command {
	var (
		videoURL   string
		query      string
		window     int
		llmCfg     config.LLMCfg
		youtubeCfg config.YouTubeCfg
		storageCfg config.Storage
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "video-url",
				Aliases:     []string{"u"},
				Usage:       "YouTube video URL or 11-character video ID",
				Destination: &videoURL,
				Sources:     cli.EnvVars("VIDTALK_VIDEO_URL"),
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "query",
				Aliases:     []string{"q"},
				Usage:       "Query prompt (if not provided, interactive mode will start)",
				Destination: &query,
			},
			&cli.IntFlag{
				Name:        "context-window",
				Usage:       "Number of recent exchanges carried into each prompt",
				Sources:     cli.EnvVars("VIDTALK_CONTEXT_WINDOW"),
				Destination: &window,
			},
		},
		llmCfg.Flags(),
		youtubeCfg.Flags(),
		storageCfg.Flags(),
	)

	return &cli.Command{
		Name:    "chat",
		Aliases: []string{"c"},
		Usage:   "Chat about a YouTube video",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.From(ctx)

			videoID, err := youtube.ExtractVideoID(videoURL)
			if err != nil {
				return err
			}

			repo, err := storageCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure memory store")
			}

			llmClient, err := llmCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure LLM client")
			}
			logger.Debug("LLM client ready", "llm", llmCfg)

			videoSvc, err := youtubeCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure YouTube service")
			}

			content, err := videoSvc.Fetch(ctx, videoID)
			if err != nil {
				return goerr.Wrap(err, "failed to fetch video", goerr.V("video_id", videoID))
			}

			fmt.Printf("\n📺 Video Information:\n")
			fmt.Printf("  📝 Title: %s\n", content.Metadata.Title)
			fmt.Printf("  📡 Channel: %s\n", content.Metadata.Channel)
			fmt.Printf("  ⏱️ Duration: %s\n", content.Metadata.Duration)
			fmt.Printf("\n")

			uc := usecase.New(
				usecase.WithRepository(repo),
				usecase.WithLLMClient(llmClient),
				usecase.WithVideoProvider(videoSvc),
				usecase.WithContextWindow(window),
			)

			if query != "" {
				return runSingleQuery(ctx, uc, videoID, query)
			}

			return runInteractiveMode(ctx, uc, videoID)
		},
	}
}

func runSingleQuery(ctx context.Context, uc *usecase.UseCases, videoID types.VideoID, query string) error {
	response, err := uc.Chat(ctx, videoID, query)
	if err != nil {
		return goerr.Wrap(err, "failed to process query")
	}

	fmt.Println(response)
	return nil
}

func runInteractiveMode(ctx context.Context, uc *usecase.UseCases, videoID types.VideoID) error {
	logger := logging.From(ctx)
	logger.Debug("starting interactive chat mode", "video_id", videoID)

	fmt.Println("💬 Interactive chat mode started. Type 'exit' or 'quit' to end the session.")
	fmt.Println("📝 Ask anything about the video.")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("> ")

		input, _, err := reader.ReadLine()
		if err != nil {
			if err == io.EOF {
				fmt.Println("\n👋 Session ended.")
				break
			}
			return goerr.Wrap(err, "failed to read input")
		}

		message := strings.TrimSpace(string(input))
		if message == "" {
			continue
		}

		if message == "exit" || message == "quit" {
			fmt.Println("👋 Session ended.")
			break
		}

		response, err := uc.Chat(ctx, videoID, message)
		if err != nil {
			fmt.Printf("❌ Error: %s\n", err.Error())
			logger.Error("chat error", logging.ErrAttr(err))
			continue
		}

		fmt.Println(response)
		fmt.Println()
	}

	return nil
}
