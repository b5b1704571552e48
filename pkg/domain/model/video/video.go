// Package video holds the video content snapshot the agent converses about.
package video

import "github.com/vidtalk-lab/vidtalk/pkg/domain/types"

// Metadata is the denormalized snapshot captured when a conversation
// starts. It is stored with the session and never re-validated.
type Metadata struct {
	Title    string `json:"title"`
	Channel  string `json:"channel"`
	Duration string `json:"duration"`
}

// Content is everything the provider returns for a video: the metadata
// snapshot plus the full transcript text. The agent treats the
// transcript as opaque text.
type Content struct {
	VideoID    types.VideoID
	Metadata   Metadata
	Transcript string
}
