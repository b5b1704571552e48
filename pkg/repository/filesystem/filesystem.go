// Package filesystem persists sessions as one JSON file per
// (video, conversation-start) pair under a storage root.
//
// Record naming: "<video_id>_<YYYYMMDD_HHMMSS>.json", the stamp taken in
// UTC from the session's creation time. When several records exist for
// one video, the lexicographically last matching filename is the most
// recent one: the stamp is zero-padded, so lexicographic order equals
// chronological order.
package filesystem

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/model/errs"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/model/memory"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/model/video"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/types"
	"github.com/vidtalk-lab/vidtalk/pkg/utils/logging"
	"github.com/vidtalk-lab/vidtalk/pkg/utils/safe"
)

const recordStampFormat = "20060102_150405"

// recordPattern matches finished record files. Temp files carry a
// leading dot and a .tmp suffix, so an interrupted write never matches.
var recordPattern = regexp.MustCompile(`^(.+)_(\d{8}_\d{6})\.json$`)

type Filesystem struct {
	root string
}

func New(root string) (*Filesystem, error) {
	if err := os.MkdirAll(root, 0700); err != nil {
		return nil, goerr.Wrap(err, "failed to create storage root",
			goerr.V("root", root), goerr.T(errs.TagStorage))
	}
	return &Filesystem{root: root}, nil
}

func recordName(videoID types.VideoID, createdAt time.Time) string {
	return videoID.String() + "_" + createdAt.UTC().Format(recordStampFormat) + ".json"
}

func (r *Filesystem) CreateOrLoad(ctx context.Context, videoID types.VideoID, meta *video.Metadata) (*memory.Session, error) {
	sess, err := r.Load(ctx, videoID)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, errs.ErrSessionNotFound) {
		return nil, err
	}

	sess = memory.NewSession(ctx, videoID, meta)
	if err := r.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (r *Filesystem) Append(ctx context.Context, sess *memory.Session, userText, assistantText string) error {
	sess.Append(ctx, userText, assistantText)

	if err := r.save(ctx, sess); err != nil {
		// Keep the caller's in-memory state consistent with storage: a
		// failed append must not look half-applied.
		sess.Exchanges = sess.Exchanges[:len(sess.Exchanges)-1]
		return err
	}
	return nil
}

func (r *Filesystem) Load(ctx context.Context, videoID types.VideoID) (*memory.Session, error) {
	names, err := r.recordNames(videoID)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, goerr.Wrap(errs.ErrSessionNotFound, "no record for video",
			goerr.V("video_id", videoID))
	}

	// Lexicographically last name is the most recent record.
	name := names[len(names)-1]
	path := filepath.Join(r.root, name)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read session record",
			goerr.V("path", path), goerr.T(errs.TagStorage))
	}

	var sess memory.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, goerr.Wrap(errs.ErrCorruptRecord, "unparseable session record",
			goerr.V("path", path), goerr.V("cause", err.Error()))
	}
	if sess.VideoID != videoID {
		return nil, goerr.Wrap(errs.ErrCorruptRecord, "record video ID does not match its key",
			goerr.V("path", path), goerr.V("video_id", sess.VideoID))
	}

	return &sess, nil
}

// List reads every record in full to build its summary; exchange bodies
// are decoded as raw JSON and dropped, so memory stays bounded per entry
// but I/O grows with conversation length.
func (r *Filesystem) List(ctx context.Context) ([]*memory.Summary, error) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read storage root",
			goerr.V("root", r.root), goerr.T(errs.TagStorage))
	}

	// Only the summary fields are retained; exchange bodies are decoded
	// as raw messages and dropped.
	type record struct {
		VideoID       types.VideoID     `json:"video_id"`
		VideoMetadata *video.Metadata   `json:"video_metadata"`
		CreatedAt     time.Time         `json:"created_at"`
		Conversation  []json.RawMessage `json:"conversation"`
	}

	var summaries []*memory.Summary
	for _, entry := range entries {
		if entry.IsDir() || !recordPattern.MatchString(entry.Name()) {
			continue
		}

		path := filepath.Join(r.root, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read session record",
				goerr.V("path", path), goerr.T(errs.TagStorage))
		}

		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			// A corrupt record must not hide the rest of the listing.
			logging.From(ctx).Warn("skipping unparseable session record",
				"path", path, logging.ErrAttr(err))
			continue
		}

		sum := &memory.Summary{
			VideoID:       rec.VideoID,
			CreatedAt:     rec.CreatedAt,
			ExchangeCount: len(rec.Conversation),
		}
		if rec.VideoMetadata != nil {
			sum.Title = rec.VideoMetadata.Title
		}
		summaries = append(summaries, sum)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].VideoID < summaries[j].VideoID
		}
		return summaries[i].CreatedAt.Before(summaries[j].CreatedAt)
	})

	return summaries, nil
}

func (r *Filesystem) Delete(ctx context.Context, videoID types.VideoID) error {
	names, err := r.recordNames(videoID)
	if err != nil {
		return err
	}

	for _, name := range names {
		path := filepath.Join(r.root, name)
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return goerr.Wrap(err, "failed to delete session record",
				goerr.V("path", path), goerr.T(errs.TagStorage))
		}
	}
	return nil
}

// save writes the full session with write-to-temp-then-rename so a
// reader sees either the prior record or the fully updated one.
func (r *Filesystem) save(ctx context.Context, sess *memory.Session) error {
	raw, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to encode session",
			goerr.V("video_id", sess.VideoID), goerr.T(errs.TagStorage))
	}

	tmp, err := os.CreateTemp(r.root, ".session-*.tmp")
	if err != nil {
		return goerr.Wrap(err, "failed to create temp record",
			goerr.V("root", r.root), goerr.T(errs.TagStorage))
	}

	cleanup := func() {
		_ = tmp.Close()
		safe.Remove(ctx, func() error { return os.Remove(tmp.Name()) })
	}

	if _, err := tmp.Write(raw); err != nil {
		cleanup()
		return goerr.Wrap(err, "failed to write session record",
			goerr.V("path", tmp.Name()), goerr.T(errs.TagStorage))
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return goerr.Wrap(err, "failed to sync session record",
			goerr.V("path", tmp.Name()), goerr.T(errs.TagStorage))
	}
	if err := tmp.Close(); err != nil {
		safe.Remove(ctx, func() error { return os.Remove(tmp.Name()) })
		return goerr.Wrap(err, "failed to close session record",
			goerr.V("path", tmp.Name()), goerr.T(errs.TagStorage))
	}

	path := filepath.Join(r.root, recordName(sess.VideoID, sess.CreatedAt))
	if err := os.Rename(tmp.Name(), path); err != nil {
		safe.Remove(ctx, func() error { return os.Remove(tmp.Name()) })
		return goerr.Wrap(err, "failed to finalize session record",
			goerr.V("path", path), goerr.T(errs.TagStorage))
	}

	return nil
}

// recordNames returns the finished record filenames for a video in
// lexicographic (= chronological) order.
func (r *Filesystem) recordNames(videoID types.VideoID) ([]string, error) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read storage root",
			goerr.V("root", r.root), goerr.T(errs.TagStorage))
	}

	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(videoID.String()) + `_\d{8}_\d{6}\.json$`)

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && pattern.MatchString(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
