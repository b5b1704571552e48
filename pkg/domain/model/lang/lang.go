package lang

import "github.com/m-mizutani/goerr/v2"

// Lang is the language the assistant responds in. Any non-empty name or
// code is accepted and passed through to the prompt as-is.
type Lang string

const (
	English Lang = "English"

	Default Lang = English
)

func (l Lang) Name() string {
	return string(l)
}

func (l Lang) Validate() error {
	if string(l) == "" {
		return goerr.New("language cannot be empty")
	}
	return nil
}
