package prompts

import "errors"

var (
	// ErrCompletionFailed covers transport, service and decode failures of a completion call.
	ErrCompletionFailed = errors.New("prompts: completion request failed")

	// ErrUnknownSection is returned when decoding a prompt set with a key outside start/middle/end.
	ErrUnknownSection = errors.New("prompts: unknown section")

	// ErrEmptyPrompt is returned when decoding a prompt set holding a blank or null prompt.
	ErrEmptyPrompt = errors.New("prompts: empty prompt")
)
