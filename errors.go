package hxui

import "errors"

// Sentinel errors for component operations.
var (
	ErrNotFound         = errors.New("hxui: resource not found")
	ErrDecryptFailed    = errors.New("hxui: parameter decryption failed")
	ErrSignatureInvalid = errors.New("hxui: signature verification failed")
	ErrInvalidFormat    = errors.New("hxui: invalid parameter format")
	ErrHydrationFailed  = errors.New("hxui: hydration failed")
	ErrUnknownAction    = errors.New("hxui: unknown action")
)

// IsNotFound checks if err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnknownAction)
}

// IsDecryptionError checks if err is a decryption, signature or format error
// raised while decoding props.
func IsDecryptionError(err error) bool {
	return errors.Is(err, ErrDecryptFailed) ||
		errors.Is(err, ErrSignatureInvalid) ||
		errors.Is(err, ErrInvalidFormat)
}
