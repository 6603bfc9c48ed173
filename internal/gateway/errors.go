package gateway

import (
	"errors"
	"fmt"
)

// ErrMalformed means the response was not a JSON object of strings.
var ErrMalformed = errors.New("malformed response")

// GenerationError is returned for any failure to produce usable content:
// unreachable backend, malformed output, missing keys, or unusable
// distractors.
type GenerationError struct {
	Contract string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %s: %v", e.Contract, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// MissingKeyError means a required key was absent from the response.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("missing key %q", e.Key)
}
