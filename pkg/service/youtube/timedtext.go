package youtube

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/model/errs"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/types"
	"github.com/vidtalk-lab/vidtalk/pkg/utils/safe"
)

const defaultTimedtextURL = "https://www.youtube.com/api/timedtext"

// TimedtextClient fetches caption tracks from YouTube's timedtext
// endpoint in the json3 format.
type TimedtextClient struct {
	httpClient *http.Client
	baseURL    string
}

type TimedtextOption func(*TimedtextClient)

// WithBaseURL overrides the endpoint, mainly for tests.
func WithBaseURL(baseURL string) TimedtextOption {
	return func(tc *TimedtextClient) {
		tc.baseURL = baseURL
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) TimedtextOption {
	return func(tc *TimedtextClient) {
		tc.httpClient = client
	}
}

func NewTimedtextClient(opts ...TimedtextOption) *TimedtextClient {
	tc := &TimedtextClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultTimedtextURL,
	}
	for _, opt := range opts {
		opt(tc)
	}
	return tc
}

type timedtextResponse struct {
	Events []timedtextEvent `json:"events"`
}

type timedtextEvent struct {
	Segs []timedtextSegment `json:"segs,omitempty"`
}

type timedtextSegment struct {
	UTF8 string `json:"utf8"`
}

// FetchTranscript returns the caption track as plain text, one caption
// event per line. Missing or disabled captions surface as
// errs.ErrVideoNotAvailable.
func (tc *TimedtextClient) FetchTranscript(ctx context.Context, videoID types.VideoID, langCode string) (string, error) {
	if langCode == "" {
		langCode = "en"
	}

	params := url.Values{}
	params.Set("v", videoID.String())
	params.Set("lang", langCode)
	params.Set("fmt", "json3")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tc.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", goerr.Wrap(err, "failed to build timedtext request")
	}

	resp, err := tc.httpClient.Do(req)
	if err != nil {
		return "", goerr.Wrap(err, "timedtext request failed",
			goerr.V("video_id", videoID), goerr.T(errs.TagExternal))
	}
	defer safe.Close(ctx, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusForbidden:
		return "", goerr.Wrap(errs.ErrVideoNotAvailable, "captions not available",
			goerr.V("video_id", videoID), goerr.V("lang", langCode), goerr.V("status", resp.StatusCode))
	default:
		return "", goerr.New("timedtext returned unexpected status",
			goerr.V("video_id", videoID), goerr.V("status", resp.StatusCode), goerr.T(errs.TagExternal))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read timedtext response", goerr.T(errs.TagExternal))
	}

	transcript, err := parseTimedtext(raw)
	if err != nil {
		return "", goerr.Wrap(err, "failed to parse timedtext response", goerr.V("video_id", videoID))
	}
	if transcript == "" {
		return "", goerr.Wrap(errs.ErrVideoNotAvailable, "caption track is empty",
			goerr.V("video_id", videoID), goerr.V("lang", langCode))
	}

	return transcript, nil
}

func parseTimedtext(raw []byte) (string, error) {
	var resp timedtextResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", goerr.Wrap(err, "unmarshal timedtext json")
	}

	var lines []string
	for _, event := range resp.Events {
		if len(event.Segs) == 0 {
			continue
		}

		var text strings.Builder
		for _, seg := range event.Segs {
			text.WriteString(seg.UTF8)
		}

		line := strings.TrimSpace(text.String())
		if line != "" {
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n"), nil
}
