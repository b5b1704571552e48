package memory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/model/memory"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/model/video"
	"github.com/vidtalk-lab/vidtalk/pkg/utils/clock"
)

func newTestSession(t *testing.T, n int) *memory.Session {
	t.Helper()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	ctx := clock.With(context.Background(), func() time.Time { return base })

	sess := memory.NewSession(ctx, "dQw4w9WgXcQ", &video.Metadata{
		Title:   "Test Video",
		Channel: "Test Channel",
	})

	for i := 0; i < n; i++ {
		at := base.Add(time.Duration(i+1) * time.Minute)
		ctx := clock.With(context.Background(), func() time.Time { return at })
		sess.Append(ctx, fmt.Sprintf("question %d", i), fmt.Sprintf("answer %d", i))
	}

	return sess
}

func TestSessionAppend(t *testing.T) {
	sess := newTestSession(t, 3)

	gt.A(t, sess.Exchanges).Length(3)
	for i, ex := range sess.Exchanges {
		gt.Equal(t, ex.User, fmt.Sprintf("question %d", i))
		gt.Equal(t, ex.Assistant, fmt.Sprintf("answer %d", i))
	}

	// Timestamps never go backwards under the single-writer model
	for i := 1; i < len(sess.Exchanges); i++ {
		gt.True(t, !sess.Exchanges[i].Timestamp.Before(sess.Exchanges[i-1].Timestamp))
	}
}

func TestSessionRecent(t *testing.T) {
	sess := newTestSession(t, 5)

	t.Run("k greater than length returns all", func(t *testing.T) {
		got := sess.Recent(10)
		gt.A(t, got).Length(5)
		gt.Equal(t, got, sess.Exchanges)
	})

	t.Run("k less than length returns last k in order", func(t *testing.T) {
		got := sess.Recent(2)
		gt.A(t, got).Length(2)
		gt.Equal(t, got[0].User, "question 3")
		gt.Equal(t, got[1].User, "question 4")
	})

	t.Run("k zero returns empty", func(t *testing.T) {
		gt.A(t, sess.Recent(0)).Length(0)
	})

	t.Run("negative k returns empty", func(t *testing.T) {
		gt.A(t, sess.Recent(-1)).Length(0)
	})

	t.Run("result is a copy", func(t *testing.T) {
		got := sess.Recent(1)
		got[0].User = "mutated"
		gt.Equal(t, sess.Exchanges[4].User, "question 4")
	})
}

func TestSessionClone(t *testing.T) {
	sess := newTestSession(t, 2)
	copied := sess.Clone()

	copied.Exchanges[0].User = "mutated"
	copied.VideoMetadata.Title = "mutated"

	gt.Equal(t, sess.Exchanges[0].User, "question 0")
	gt.Equal(t, sess.VideoMetadata.Title, "Test Video")
}

func TestSessionSummarize(t *testing.T) {
	sess := newTestSession(t, 4)
	sum := sess.Summarize()

	gt.Equal(t, sum.VideoID, sess.VideoID)
	gt.Equal(t, sum.Title, "Test Video")
	gt.Equal(t, sum.CreatedAt, sess.CreatedAt)
	gt.Equal(t, sum.ExchangeCount, 4)

	t.Run("nil metadata leaves title empty", func(t *testing.T) {
		bare := memory.NewSession(context.Background(), "abcdefghijk", nil)
		gt.Equal(t, bare.Summarize().Title, "")
	})
}
