package mlmodel

import (
	"fmt"
	"strings"
)

// EncodingError is returned when a caller-provided category value is not
// part of a model's known vocabulary. It is a user-facing error: the
// message enumerates the accepted values.
type EncodingError struct {
	Vocabulary string
	Value      string
	Accepted   []string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf(
		"invalid %s value: %q, must be one of: [%s]",
		e.Vocabulary, e.Value, strings.Join(e.Accepted, ", "),
	)
}

// ModelStateError signals an encoder/model mismatch, e.g. a model emitted
// a class code that its own vocabulary cannot decode. It is a bug signal,
// never a user error.
type ModelStateError struct {
	Vocabulary string
	Code       int
}

func (e *ModelStateError) Error() string {
	return fmt.Sprintf(
		"model emitted unknown %s code %d, encoders and model artifacts are out of sync",
		e.Vocabulary, e.Code,
	)
}
