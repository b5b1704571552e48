package youtube_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/model/errs"
	"github.com/vidtalk-lab/vidtalk/pkg/service/youtube"
)

func TestFetchTranscript(t *testing.T) {
	ctx := context.Background()

	t.Run("parses json3 events", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.Equal(t, r.URL.Query().Get("v"), "dQw4w9WgXcQ")
			gt.Equal(t, r.URL.Query().Get("lang"), "en")
			gt.Equal(t, r.URL.Query().Get("fmt"), "json3")

			_, _ = w.Write([]byte(`{
				"events": [
					{"tStartMs": 0},
					{"tStartMs": 100, "segs": [{"utf8": "never gonna "}, {"utf8": "give"}]},
					{"tStartMs": 900, "segs": [{"utf8": "\n"}]},
					{"tStartMs": 1200, "segs": [{"utf8": "you up"}]}
				]
			}`))
		}))
		defer srv.Close()

		tc := youtube.NewTimedtextClient(youtube.WithBaseURL(srv.URL))
		transcript, err := tc.FetchTranscript(ctx, "dQw4w9WgXcQ", "en")
		gt.NoError(t, err)
		gt.Equal(t, transcript, "never gonna give\nyou up")
	})

	t.Run("missing captions are not available", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		tc := youtube.NewTimedtextClient(youtube.WithBaseURL(srv.URL))
		_, err := tc.FetchTranscript(ctx, "dQw4w9WgXcQ", "en")
		gt.True(t, errors.Is(err, errs.ErrVideoNotAvailable))
	})

	t.Run("empty track is not available", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"events": []}`))
		}))
		defer srv.Close()

		tc := youtube.NewTimedtextClient(youtube.WithBaseURL(srv.URL))
		_, err := tc.FetchTranscript(ctx, "dQw4w9WgXcQ", "")
		gt.True(t, errors.Is(err, errs.ErrVideoNotAvailable))
	})

	t.Run("unexpected status is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		tc := youtube.NewTimedtextClient(youtube.WithBaseURL(srv.URL))
		_, err := tc.FetchTranscript(ctx, "dQw4w9WgXcQ", "en")
		gt.Error(t, err)
		gt.False(t, errors.Is(err, errs.ErrVideoNotAvailable))
	})

	t.Run("garbage payload is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<!doctype html>`))
		}))
		defer srv.Close()

		tc := youtube.NewTimedtextClient(youtube.WithBaseURL(srv.URL))
		_, err := tc.FetchTranscript(ctx, "dQw4w9WgXcQ", "en")
		gt.Error(t, err)
	})
}
