package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// VideoID is the stable external identifier of a YouTube video. It is
// treated as opaque by the storage layer; validation happens at the
// boundary where URLs are resolved.
type VideoID string

func (x VideoID) String() string {
	return string(x)
}

const EmptyVideoID VideoID = ""

// videoIDPattern accepts the canonical 11-character YouTube ID charset.
var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

func (x VideoID) Validate() error {
	if x == EmptyVideoID {
		return goerr.New("empty video ID")
	}
	if !videoIDPattern.MatchString(string(x)) {
		return goerr.New("invalid video ID format", goerr.V("id", x))
	}
	return nil
}
