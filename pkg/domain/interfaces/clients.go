package interfaces

import (
	"context"

	"github.com/vidtalk-lab/vidtalk/pkg/domain/model/video"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/types"
)

// VideoProvider fetches video metadata and transcript. Returns
// errs.ErrVideoNotAvailable when the video or its captions cannot be
// retrieved. The content is treated as opaque text downstream.
type VideoProvider interface {
	Fetch(ctx context.Context, videoID types.VideoID) (*video.Content, error)
}
