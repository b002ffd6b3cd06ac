package suggest

import "errors"

var (
	// ErrEmptyResponse is returned when the AI service replies with no text.
	ErrEmptyResponse = errors.New("the AI service returned an empty response")

	// ErrUnparsableResponse is returned when the reply holds no decodable JSON object.
	ErrUnparsableResponse = errors.New("could not parse the AI response")

	// ErrInvalidSuggestion is returned by strict validation.
	ErrInvalidSuggestion = errors.New("the AI suggestion failed validation")

	// ErrCompletionFailed wraps transport or provider errors from the chat model.
	ErrCompletionFailed = errors.New("the AI service request failed")
)
