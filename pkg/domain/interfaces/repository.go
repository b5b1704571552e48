package interfaces

import (
	"context"

	"github.com/vidtalk-lab/vidtalk/pkg/domain/model/memory"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/model/video"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/types"
)

// Repository is the durable session store keyed by video ID.
//
// The model is single-process, single-writer: operations are blocking,
// and a Session returned here is owned by the caller until passed back
// into Append. Concurrent writers to the same video from separate
// processes are unsupported.
type Repository interface {
	// CreateOrLoad returns the existing most recent session for the video
	// unchanged (the supplied metadata is ignored in that case), or
	// persists and returns a new empty session. It never overwrites
	// history on repeated calls.
	CreateOrLoad(ctx context.Context, videoID types.VideoID, meta *video.Metadata) (*memory.Session, error)

	// Append adds one exchange stamped with the context clock and
	// persists the full session. The write is atomic from the caller's
	// perspective: a subsequent Load sees either the prior record or the
	// fully updated one, never a truncated record. An exchange that
	// cannot be durably persisted fails loudly.
	Append(ctx context.Context, sess *memory.Session, userText, assistantText string) error

	// Load returns the most recent persisted session for the video, or
	// errs.ErrSessionNotFound. Unparseable data surfaces as
	// errs.ErrCorruptRecord, never as not-found.
	Load(ctx context.Context, videoID types.VideoID) (*memory.Session, error)

	// List enumerates all stored sessions as summaries, ordered by
	// creation time ascending (stable).
	List(ctx context.Context) ([]*memory.Summary, error)

	// Delete removes all records for the video. Deleting a video with no
	// records succeeds silently.
	Delete(ctx context.Context, videoID types.VideoID) error
}
