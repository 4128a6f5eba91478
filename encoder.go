package hxui

import (
	"errors"

	"github.com/pthm/hxui/lib/encoding"
)

// Encoder is an alias for encoding.Encoder for convenience.
type Encoder = encoding.Encoder

// Encodable is implemented by props that encode themselves without reflection.
type Encodable = encoding.Encodable

// Decodable is implemented by props that decode themselves without reflection.
type Decodable = encoding.Decodable

// NewEncoder creates a new encoder with the given key.
func NewEncoder(key []byte) (*Encoder, error) {
	return encoding.NewEncoder(key)
}

// WrapDecodeError maps encoding package errors onto hxui sentinel errors so
// OnError handlers only need to know about this package.
func WrapDecodeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, encoding.ErrInvalidFormat):
		return ErrInvalidFormat
	case errors.Is(err, encoding.ErrSignatureInvalid):
		return ErrSignatureInvalid
	case errors.Is(err, encoding.ErrDecryptFailed):
		return ErrDecryptFailed
	}
	return err
}

func modeFor(sensitive bool) encoding.Mode {
	if sensitive {
		return encoding.Encrypted
	}
	return encoding.Signed
}
