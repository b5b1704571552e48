package usecase

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/model/errs"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/model/lang"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/model/memory"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/model/plan"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/model/prompt"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/model/video"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/types"
	"github.com/vidtalk-lab/vidtalk/pkg/utils/logging"
)

//go:embed prompt/conversation.md
var conversationPromptTemplate string

//go:embed prompt/continuation.md
var continuationPromptTemplate string

// Chat runs one conversational turn about the video and returns the
// assistant's response. The turn follows plan.Conversation: fetch
// content, recall memory, build the prompt, generate, persist.
func (x *UseCases) Chat(ctx context.Context, videoID types.VideoID, query string) (string, error) {
	logger := logging.From(ctx).With("turn_id", types.NewTurnID(), "video_id", videoID)
	ctx = logging.With(ctx, logger)

	// Turn state threaded through the plan steps
	var (
		content    *video.Content
		sess       *memory.Session
		window     []memory.Exchange
		promptText string
		response   string
	)

	handlers := map[string]func(context.Context) error{
		plan.StepFetchContent: func(ctx context.Context) error {
			c, err := x.videoProvider.Fetch(ctx, videoID)
			if err != nil {
				return goerr.Wrap(err, "failed to fetch video content")
			}
			content = c
			return nil
		},

		plan.StepRecallMemory: func(ctx context.Context) error {
			s, err := x.createOrRecoverSession(ctx, videoID, &content.Metadata)
			if err != nil {
				return err
			}
			sess = s
			window = sess.Recent(x.contextWindow)
			logger.Debug("recalled conversation memory",
				"stored_exchanges", len(sess.Exchanges),
				"window", len(window))
			return nil
		},

		plan.StepBuildPrompt: func(ctx context.Context) error {
			template := conversationPromptTemplate
			data := map[string]any{
				"title":      content.Metadata.Title,
				"channel":    content.Metadata.Channel,
				"transcript": content.Transcript,
				"query":      query,
				"lang":       lang.From(ctx).Name(),
			}
			if len(window) > 0 {
				template = continuationPromptTemplate
				data["history"] = exchangesToText(window)
			}

			p, err := prompt.Generate(ctx, template, data)
			if err != nil {
				return goerr.Wrap(err, "failed to build prompt")
			}
			promptText = p
			return nil
		},

		plan.StepGenerate: func(ctx context.Context) error {
			llmSession, err := x.llmClient.NewSession(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to create LLM session", goerr.T(errs.TagLLM))
			}

			resp, err := llmSession.GenerateContent(ctx, gollem.Text(promptText))
			if err != nil {
				return goerr.Wrap(err, "failed to generate response", goerr.T(errs.TagLLM))
			}
			if len(resp.Texts) == 0 {
				return goerr.New("no response generated", goerr.T(errs.TagLLM))
			}
			response = resp.Texts[0]
			return nil
		},

		plan.StepPersist: func(ctx context.Context) error {
			if err := x.repository.Append(ctx, sess, query, response); err != nil {
				return goerr.Wrap(err, "failed to persist exchange")
			}
			return nil
		},
	}

	for _, step := range plan.Conversation {
		handler, ok := handlers[step.Name]
		if !ok {
			return "", goerr.New("plan step has no handler", goerr.V("step", step.Name))
		}

		logger.Debug("executing plan step", "step", step.Name, "tool", step.Tool)
		if err := handler(ctx); err != nil {
			return "", goerr.Wrap(err, "plan step failed", goerr.V("step", step.Name))
		}
	}

	return response, nil
}

// createOrRecoverSession loads or creates the session for a video. A
// corrupt record is discarded and a fresh session is started: losing an
// unreadable history beats refusing to converse.
func (x *UseCases) createOrRecoverSession(ctx context.Context, videoID types.VideoID, meta *video.Metadata) (*memory.Session, error) {
	sess, err := x.repository.CreateOrLoad(ctx, videoID, meta)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, errs.ErrCorruptRecord) {
		return nil, goerr.Wrap(err, "failed to load session")
	}

	logging.From(ctx).Warn("discarding corrupt conversation record", logging.ErrAttr(err))
	if err := x.repository.Delete(ctx, videoID); err != nil {
		return nil, goerr.Wrap(err, "failed to discard corrupt record")
	}

	sess, err = x.repository.CreateOrLoad(ctx, videoID, meta)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to recreate session")
	}
	return sess, nil
}

func exchangesToText(exchanges []memory.Exchange) string {
	var sb strings.Builder
	for _, ex := range exchanges {
		fmt.Fprintf(&sb, "User: %s\nAssistant: %s\n", ex.User, ex.Assistant)
	}
	return strings.TrimRight(sb.String(), "\n")
}
