package youtube

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/model/errs"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/types"
)

var videoURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?(?:.*&)?v=|youtu\.be/)([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/shorts/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/v/([A-Za-z0-9_-]{11})`),
}

// ExtractVideoID resolves a YouTube URL (watch, youtu.be, embed, shorts)
// or a bare 11-character ID to a validated VideoID.
func ExtractVideoID(input string) (types.VideoID, error) {
	input = strings.TrimSpace(input)

	for _, pattern := range videoURLPatterns {
		if m := pattern.FindStringSubmatch(input); m != nil {
			return types.VideoID(m[1]), nil
		}
	}

	// Accept a bare video ID as well
	id := types.VideoID(input)
	if err := id.Validate(); err == nil {
		return id, nil
	}

	return types.EmptyVideoID, goerr.New("not a valid YouTube URL or video ID",
		goerr.V("input", input), goerr.T(errs.TagValidation))
}

var isoDurationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// FormatDuration converts an ISO-8601 duration as returned by the Data
// API ("PT1H2M3S") into a human-readable clock form ("1:02:03"). Inputs
// it cannot parse are returned unchanged.
func FormatDuration(iso string) string {
	m := isoDurationPattern.FindStringSubmatch(iso)
	if m == nil {
		return iso
	}

	toInt := func(s string) int {
		n := 0
		for _, c := range s {
			n = n*10 + int(c-'0')
		}
		return n
	}

	hours, minutes, seconds := toInt(m[1]), toInt(m[2]), toInt(m[3])
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
