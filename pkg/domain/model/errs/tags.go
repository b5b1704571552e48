package errs

import "github.com/m-mizutani/goerr/v2"

var (
	TagNotFound   = goerr.NewTag("not_found")
	TagCorrupt    = goerr.NewTag("corrupt_record")
	TagValidation = goerr.NewTag("validation")
	TagStorage    = goerr.NewTag("storage")
	TagExternal   = goerr.NewTag("external")
	TagLLM        = goerr.NewTag("llm_error")
)
