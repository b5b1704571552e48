package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/model/memory"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/types"
	"github.com/vidtalk-lab/vidtalk/pkg/utils/logging"
)

// Sessions returns summaries of all stored conversations, oldest first.
func (x *UseCases) Sessions(ctx context.Context) ([]*memory.Summary, error) {
	summaries, err := x.repository.List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list sessions")
	}
	return summaries, nil
}

// Show returns the stored conversation for a video.
func (x *UseCases) Show(ctx context.Context, videoID types.VideoID) (*memory.Session, error) {
	sess, err := x.repository.Load(ctx, videoID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load session", goerr.V("video_id", videoID))
	}
	return sess, nil
}

// Forget discards all stored conversations for a video. Forgetting a
// video with no record succeeds silently.
func (x *UseCases) Forget(ctx context.Context, videoID types.VideoID) error {
	if err := x.repository.Delete(ctx, videoID); err != nil {
		return goerr.Wrap(err, "failed to delete session", goerr.V("video_id", videoID))
	}
	logging.From(ctx).Info("conversation memory discarded", "video_id", videoID)
	return nil
}

// ForgetAll discards every stored conversation.
func (x *UseCases) ForgetAll(ctx context.Context) (int, error) {
	summaries, err := x.repository.List(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list sessions")
	}

	seen := map[types.VideoID]bool{}
	for _, sum := range summaries {
		if seen[sum.VideoID] {
			continue
		}
		seen[sum.VideoID] = true
		if err := x.repository.Delete(ctx, sum.VideoID); err != nil {
			return len(seen) - 1, goerr.Wrap(err, "failed to delete session", goerr.V("video_id", sum.VideoID))
		}
	}

	logging.From(ctx).Info("all conversation memory discarded", "videos", len(seen))
	return len(seen), nil
}
