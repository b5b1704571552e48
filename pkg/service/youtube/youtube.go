// Package youtube implements the video metadata and transcript provider
// on top of the YouTube Data API v3 and the public timedtext endpoint.
package youtube

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/model/errs"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/model/video"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/types"
	"github.com/vidtalk-lab/vidtalk/pkg/utils/logging"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

type Service struct {
	api         *yt.Service
	transcripts *TimedtextClient
	captionLang string
	apiEndpoint string

	// fetched content per video, so an interactive conversation does not
	// refetch the same transcript on every turn
	mu    sync.Mutex
	cache map[types.VideoID]*video.Content
}

type Option func(*Service)

// WithCaptionLang sets the caption track language requested from the
// timedtext endpoint. Defaults to "en".
func WithCaptionLang(lang string) Option {
	return func(s *Service) {
		if lang != "" {
			s.captionLang = lang
		}
	}
}

// WithTranscriptClient replaces the timedtext client, mainly for tests.
func WithTranscriptClient(tc *TimedtextClient) Option {
	return func(s *Service) {
		s.transcripts = tc
	}
}

// WithAPIEndpoint overrides the Data API base URL, mainly for tests.
func WithAPIEndpoint(endpoint string) Option {
	return func(s *Service) {
		s.apiEndpoint = endpoint
	}
}

func New(ctx context.Context, apiKey string, opts ...Option) (*Service, error) {
	if apiKey == "" {
		return nil, goerr.New("youtube api key is required")
	}

	svc := &Service{
		transcripts: NewTimedtextClient(),
		captionLang: "en",
		cache:       make(map[types.VideoID]*video.Content),
	}
	for _, opt := range opts {
		opt(svc)
	}

	apiOpts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if svc.apiEndpoint != "" {
		apiOpts = append(apiOpts, option.WithEndpoint(svc.apiEndpoint))
	}

	api, err := yt.NewService(ctx, apiOpts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create youtube service", goerr.T(errs.TagExternal))
	}
	svc.api = api

	return svc, nil
}

// Fetch returns the metadata snapshot and transcript for a video,
// cached for the lifetime of the service.
func (s *Service) Fetch(ctx context.Context, videoID types.VideoID) (*video.Content, error) {
	s.mu.Lock()
	if content, ok := s.cache[videoID]; ok {
		s.mu.Unlock()
		return content, nil
	}
	s.mu.Unlock()

	meta, err := s.fetchMetadata(ctx, videoID)
	if err != nil {
		return nil, err
	}

	transcript, err := s.transcripts.FetchTranscript(ctx, videoID, s.captionLang)
	if err != nil {
		return nil, err
	}

	logging.From(ctx).Debug("fetched video content",
		"video_id", videoID,
		"title", meta.Title,
		"transcript_len", len(transcript))

	content := &video.Content{
		VideoID:    videoID,
		Metadata:   *meta,
		Transcript: transcript,
	}

	s.mu.Lock()
	s.cache[videoID] = content
	s.mu.Unlock()

	return content, nil
}

func (s *Service) fetchMetadata(ctx context.Context, videoID types.VideoID) (*video.Metadata, error) {
	call := s.api.Videos.List([]string{"snippet", "contentDetails"}).
		Id(videoID.String()).
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return nil, goerr.Wrap(err, "videos.list failed",
			goerr.V("video_id", videoID), goerr.T(errs.TagExternal))
	}
	if len(resp.Items) == 0 {
		return nil, goerr.Wrap(errs.ErrVideoNotAvailable, "video not found",
			goerr.V("video_id", videoID))
	}

	item := resp.Items[0]
	meta := &video.Metadata{}
	if item.Snippet != nil {
		meta.Title = item.Snippet.Title
		meta.Channel = item.Snippet.ChannelTitle
	}
	if item.ContentDetails != nil {
		meta.Duration = FormatDuration(item.ContentDetails.Duration)
	}

	return meta, nil
}
