package usecase

import (
	"github.com/m-mizutani/gollem"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/interfaces"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/model/memory"
	"github.com/vidtalk-lab/vidtalk/pkg/repository"
)

type UseCases struct {
	repository    interfaces.Repository
	llmClient     gollem.LLMClient
	videoProvider interfaces.VideoProvider

	contextWindow int
}

type Option func(*UseCases)

func WithRepository(repo interfaces.Repository) Option {
	return func(u *UseCases) {
		u.repository = repo
	}
}

func WithLLMClient(llmClient gollem.LLMClient) Option {
	return func(u *UseCases) {
		u.llmClient = llmClient
	}
}

func WithVideoProvider(provider interfaces.VideoProvider) Option {
	return func(u *UseCases) {
		u.videoProvider = provider
	}
}

// WithContextWindow overrides the number of recent exchanges supplied to
// the response generator. Non-positive values keep the default.
func WithContextWindow(k int) Option {
	return func(u *UseCases) {
		if k > 0 {
			u.contextWindow = k
		}
	}
}

func New(opts ...Option) *UseCases {
	u := &UseCases{
		repository:    repository.NewMemory(),
		contextWindow: memory.DefaultContextWindow,
	}

	for _, opt := range opts {
		opt(u)
	}

	return u
}
