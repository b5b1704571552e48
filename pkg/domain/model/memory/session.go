// Package memory models the durable conversation log kept per video.
package memory

import (
	"context"
	"time"

	"github.com/vidtalk-lab/vidtalk/pkg/domain/model/video"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/types"
	"github.com/vidtalk-lab/vidtalk/pkg/utils/clock"
)

// DefaultContextWindow is the number of most recent exchanges supplied
// to the response generator when the caller does not override it.
const DefaultContextWindow = 5

// Exchange is one (user message, assistant response) pair. Exchanges are
// append-only and never reordered or deduplicated.
type Exchange struct {
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
	Assistant string    `json:"assistant"`
}

// Session is one persisted conversation history tied to a single video.
// VideoID and CreatedAt are immutable after creation; Exchanges grows by
// appending only. The in-memory Session returned by a repository is
// owned exclusively by its caller until passed back into Append.
type Session struct {
	VideoID       types.VideoID   `json:"video_id"`
	VideoMetadata *video.Metadata `json:"video_metadata"`
	CreatedAt     time.Time       `json:"created_at"`
	Exchanges     []Exchange      `json:"conversation"`
}

// NewSession creates an empty session for a video lacking a persisted
// record. The metadata snapshot is captured once and never re-validated.
func NewSession(ctx context.Context, videoID types.VideoID, meta *video.Metadata) *Session {
	return &Session{
		VideoID:       videoID,
		VideoMetadata: meta,
		CreatedAt:     clock.Now(ctx),
		Exchanges:     []Exchange{},
	}
}

// Append adds one exchange stamped with the context clock and returns
// it. Persistence is the repository's job.
func (s *Session) Append(ctx context.Context, userText, assistantText string) Exchange {
	ex := Exchange{
		Timestamp: clock.Now(ctx),
		User:      userText,
		Assistant: assistantText,
	}
	s.Exchanges = append(s.Exchanges, ex)
	return ex
}

// Recent returns the last k exchanges in original chronological order.
// It is pure: no I/O, no mutation, deterministic for identical inputs.
// k >= len yields all exchanges; k <= 0 yields an empty slice.
func (s *Session) Recent(k int) []Exchange {
	if k <= 0 {
		return []Exchange{}
	}
	if k > len(s.Exchanges) {
		k = len(s.Exchanges)
	}
	out := make([]Exchange, k)
	copy(out, s.Exchanges[len(s.Exchanges)-k:])
	return out
}

// Clone returns a deep copy, so repository-held state cannot be mutated
// through a caller-owned Session.
func (s *Session) Clone() *Session {
	copied := *s
	if s.VideoMetadata != nil {
		meta := *s.VideoMetadata
		copied.VideoMetadata = &meta
	}
	copied.Exchanges = make([]Exchange, len(s.Exchanges))
	copy(copied.Exchanges, s.Exchanges)
	return &copied
}

// Summary describes one stored session without its exchange bodies.
type Summary struct {
	VideoID       types.VideoID
	Title         string
	CreatedAt     time.Time
	ExchangeCount int
}

// Summarize builds the listing entry for a session.
func (s *Session) Summarize() *Summary {
	sum := &Summary{
		VideoID:       s.VideoID,
		CreatedAt:     s.CreatedAt,
		ExchangeCount: len(s.Exchanges),
	}
	if s.VideoMetadata != nil {
		sum.Title = s.VideoMetadata.Title
	}
	return sum
}
