package ngxstr

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidUTF8 is wrapped by *EncodingError
	ErrInvalidUTF8 = errors.New("ngxstr: invalid utf-8")
	// ErrShortBuffer is returned when Data holds fewer than Len bytes or Len is negative
	ErrShortBuffer = errors.New("ngxstr: data shorter than declared length")
)

// EncodingError reports a string whose bytes are not valid UTF-8.
type EncodingError struct {
	// Offset of the first invalid byte
	Offset int
	// Len is the declared length of the string
	Len int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("ngxstr: invalid utf-8 at byte %d of %d", e.Offset, e.Len)
}

func (e *EncodingError) Unwrap() error {
	return ErrInvalidUTF8
}
