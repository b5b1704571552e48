package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/mock"
	"github.com/m-mizutani/gt"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/interfaces"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/model/errs"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/model/lang"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/model/video"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/types"
	"github.com/vidtalk-lab/vidtalk/pkg/repository"
	"github.com/vidtalk-lab/vidtalk/pkg/repository/filesystem"
	"github.com/vidtalk-lab/vidtalk/pkg/usecase"
	"github.com/vidtalk-lab/vidtalk/pkg/utils/clock"
)

type stubProvider struct {
	content *video.Content
	err     error
}

func (p *stubProvider) Fetch(ctx context.Context, videoID types.VideoID) (*video.Content, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.content, nil
}

var _ interfaces.VideoProvider = &stubProvider{}

func testContent() *video.Content {
	return &video.Content{
		VideoID: "dQw4w9WgXcQ",
		Metadata: video.Metadata{
			Title:    "How Things Work",
			Channel:  "Channel Y",
			Duration: "12:34",
		},
		Transcript: "today we explain how things work",
	}
}

// newMockLLMClient echoes a fixed response and records every prompt it
// receives.
func newMockLLMClient(response string, prompts *[]string) gollem.LLMClient {
	return &mock.LLMClientMock{
		NewSessionFunc: func(ctx context.Context, opts ...gollem.SessionOption) (gollem.Session, error) {
			return &mock.SessionMock{
				GenerateContentFunc: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					for _, in := range input {
						if text, ok := in.(gollem.Text); ok {
							*prompts = append(*prompts, string(text))
						}
					}
					return &gollem.Response{Texts: []string{response}}, nil
				},
			}, nil
		},
	}
}

func chatCtx(at time.Time) context.Context {
	return clock.With(context.Background(), func() time.Time { return at })
}

var chatBase = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestChatFreshConversation(t *testing.T) {
	var prompts []string
	repo := repository.NewMemory()
	uc := usecase.New(
		usecase.WithRepository(repo),
		usecase.WithLLMClient(newMockLLMClient("It's about X", &prompts)),
		usecase.WithVideoProvider(&stubProvider{content: testContent()}),
	)

	response, err := uc.Chat(chatCtx(chatBase), "dQw4w9WgXcQ", "What is this about?")
	gt.NoError(t, err)
	gt.Equal(t, response, "It's about X")

	gt.A(t, prompts).Length(1)
	gt.S(t, prompts[0]).
		Contains("How Things Work").
		Contains("today we explain how things work").
		Contains("What is this about?").
		Contains("English").
		NotContains("Previous conversation")

	sess, err := repo.Load(context.Background(), "dQw4w9WgXcQ")
	gt.NoError(t, err)
	gt.A(t, sess.Exchanges).Length(1)
	gt.Equal(t, sess.Exchanges[0].User, "What is this about?")
	gt.Equal(t, sess.Exchanges[0].Assistant, "It's about X")
	gt.Equal(t, sess.VideoMetadata.Title, "How Things Work")
}

func TestChatContinuation(t *testing.T) {
	var prompts []string
	repo := repository.NewMemory()
	uc := usecase.New(
		usecase.WithRepository(repo),
		usecase.WithLLMClient(newMockLLMClient("sure", &prompts)),
		usecase.WithVideoProvider(&stubProvider{content: testContent()}),
	)

	_, err := uc.Chat(chatCtx(chatBase), "dQw4w9WgXcQ", "What is this about?")
	gt.NoError(t, err)
	_, err = uc.Chat(chatCtx(chatBase.Add(time.Minute)), "dQw4w9WgXcQ", "Who made it?")
	gt.NoError(t, err)

	gt.A(t, prompts).Length(2)
	gt.S(t, prompts[1]).
		Contains("Previous conversation").
		Contains("User: What is this about?").
		Contains("Assistant: sure").
		Contains("Who made it?")

	sess, err := repo.Load(context.Background(), "dQw4w9WgXcQ")
	gt.NoError(t, err)
	gt.A(t, sess.Exchanges).Length(2)
}

func TestChatContextWindowBound(t *testing.T) {
	var prompts []string
	repo := repository.NewMemory()
	uc := usecase.New(
		usecase.WithRepository(repo),
		usecase.WithLLMClient(newMockLLMClient("ok", &prompts)),
		usecase.WithVideoProvider(&stubProvider{content: testContent()}),
		usecase.WithContextWindow(1),
	)

	queries := []string{"first question", "second question", "third question"}
	for i, q := range queries {
		_, err := uc.Chat(chatCtx(chatBase.Add(time.Duration(i)*time.Minute)), "dQw4w9WgXcQ", q)
		gt.NoError(t, err)
	}

	// Window of 1: the third prompt carries only the second exchange
	gt.S(t, prompts[2]).
		Contains("User: second question").
		NotContains("first question")
}

func TestChatResponseLanguage(t *testing.T) {
	var prompts []string
	uc := usecase.New(
		usecase.WithLLMClient(newMockLLMClient("ok", &prompts)),
		usecase.WithVideoProvider(&stubProvider{content: testContent()}),
	)

	ctx := lang.With(chatCtx(chatBase), "Japanese")
	_, err := uc.Chat(ctx, "dQw4w9WgXcQ", "こんにちは")
	gt.NoError(t, err)
	gt.S(t, prompts[0]).Contains("Respond in Japanese")
}

func TestChatGenerationFailure(t *testing.T) {
	repo := repository.NewMemory()
	llm := &mock.LLMClientMock{
		NewSessionFunc: func(ctx context.Context, opts ...gollem.SessionOption) (gollem.Session, error) {
			return &mock.SessionMock{
				GenerateContentFunc: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					return nil, errors.New("quota exceeded")
				},
			}, nil
		},
	}
	uc := usecase.New(
		usecase.WithRepository(repo),
		usecase.WithLLMClient(llm),
		usecase.WithVideoProvider(&stubProvider{content: testContent()}),
	)

	_, err := uc.Chat(chatCtx(chatBase), "dQw4w9WgXcQ", "What is this about?")
	gt.Error(t, err)

	// A failed generation never leaves a half-recorded exchange behind
	sess, err := repo.Load(context.Background(), "dQw4w9WgXcQ")
	gt.NoError(t, err)
	gt.A(t, sess.Exchanges).Length(0)
}

func TestChatVideoNotAvailable(t *testing.T) {
	uc := usecase.New(
		usecase.WithLLMClient(newMockLLMClient("ok", &[]string{})),
		usecase.WithVideoProvider(&stubProvider{err: errs.ErrVideoNotAvailable}),
	)

	_, err := uc.Chat(chatCtx(chatBase), "dQw4w9WgXcQ", "hello")
	gt.True(t, errors.Is(err, errs.ErrVideoNotAvailable))
}

func TestChatRecoversFromCorruptRecord(t *testing.T) {
	root := t.TempDir()
	repo, err := filesystem.New(root)
	gt.NoError(t, err)

	corruptName := "dQw4w9WgXcQ_20250101_000000.json"
	gt.NoError(t, os.WriteFile(filepath.Join(root, corruptName), []byte("{broken"), 0600))

	var prompts []string
	uc := usecase.New(
		usecase.WithRepository(repo),
		usecase.WithLLMClient(newMockLLMClient("fresh start", &prompts)),
		usecase.WithVideoProvider(&stubProvider{content: testContent()}),
	)

	response, err := uc.Chat(chatCtx(chatBase), "dQw4w9WgXcQ", "What is this about?")
	gt.NoError(t, err)
	gt.Equal(t, response, "fresh start")

	// The corrupt record was discarded and replaced by a fresh session
	sess, err := repo.Load(context.Background(), "dQw4w9WgXcQ")
	gt.NoError(t, err)
	gt.A(t, sess.Exchanges).Length(1)

	_, err = os.Stat(filepath.Join(root, corruptName))
	gt.True(t, os.IsNotExist(err))
}
