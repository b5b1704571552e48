// Package memory provides an in-memory Repository used by tests and as
// the default wiring before a storage root is configured.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/model/errs"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/model/memory"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/model/video"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/types"
)

type Memory struct {
	mu sync.RWMutex
	// records per video, ordered by creation time ascending
	sessions map[types.VideoID][]*memory.Session
}

func New() *Memory {
	return &Memory{
		sessions: make(map[types.VideoID][]*memory.Session),
	}
}

func (r *Memory) CreateOrLoad(ctx context.Context, videoID types.VideoID, meta *video.Metadata) (*memory.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if records := r.sessions[videoID]; len(records) > 0 {
		return records[len(records)-1].Clone(), nil
	}

	sess := memory.NewSession(ctx, videoID, meta)
	r.sessions[videoID] = append(r.sessions[videoID], sess.Clone())
	return sess, nil
}

func (r *Memory) Append(ctx context.Context, sess *memory.Session, userText, assistantText string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := r.sessions[sess.VideoID]
	idx := -1
	for i, rec := range records {
		if rec.CreatedAt.Equal(sess.CreatedAt) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return goerr.New("session record not found, create it first",
			goerr.V("video_id", sess.VideoID), goerr.T(errs.TagStorage))
	}

	sess.Append(ctx, userText, assistantText)
	records[idx] = sess.Clone()
	return nil
}

func (r *Memory) Load(ctx context.Context, videoID types.VideoID) (*memory.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := r.sessions[videoID]
	if len(records) == 0 {
		return nil, goerr.Wrap(errs.ErrSessionNotFound, "no record for video",
			goerr.V("video_id", videoID))
	}
	return records[len(records)-1].Clone(), nil
}

func (r *Memory) List(ctx context.Context) ([]*memory.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var summaries []*memory.Summary
	for _, records := range r.sessions {
		for _, rec := range records {
			summaries = append(summaries, rec.Summarize())
		}
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].VideoID < summaries[j].VideoID
		}
		return summaries[i].CreatedAt.Before(summaries[j].CreatedAt)
	})

	return summaries, nil
}

func (r *Memory) Delete(ctx context.Context, videoID types.VideoID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, videoID)
	return nil
}
