package errs

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrSessionNotFound indicates no stored conversation exists for the
	// video. Recoverable: the caller starts a fresh session.
	ErrSessionNotFound = goerr.New("session not found", goerr.T(TagNotFound))

	// ErrCorruptRecord indicates a stored record exists but cannot be
	// parsed. The caller decides whether to discard it or abort.
	ErrCorruptRecord = goerr.New("corrupt session record", goerr.T(TagCorrupt))

	// ErrVideoNotAvailable indicates the video or its captions cannot be
	// retrieved from the provider.
	ErrVideoNotAvailable = goerr.New("video not available", goerr.T(TagExternal))
)
