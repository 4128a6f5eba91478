// Package encoding serializes component props for transport in URLs and
// form values.
//
// Props are packed with msgpack and then either signed (HMAC-SHA256,
// readable but tamper-proof) or sealed (AES-256-GCM, opaque). Both forms are
// base64url without padding, so they can be placed in a query string as-is.
package encoding

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Decoding failures. Callers map these onto HTTP 400 responses.
var (
	ErrInvalidFormat    = errors.New("encoding: invalid format")
	ErrSignatureInvalid = errors.New("encoding: signature verification failed")
	ErrDecryptFailed    = errors.New("encoding: decryption failed")
)

// Mode selects how packed props are protected.
type Mode uint8

const (
	// Signed leaves the payload readable and appends a truncated HMAC.
	Signed Mode = iota
	// Encrypted seals the payload with AES-256-GCM.
	Encrypted
)

// sigLen is the number of HMAC bytes kept in a signed payload (128 bits).
const sigLen = 16

// Encodable is implemented by props that flatten themselves into a map,
// skipping reflection-based msgpack encoding.
type Encodable interface {
	HXEncode() map[string]any
}

// Decodable is the inverse of Encodable.
type Decodable interface {
	HXDecode(map[string]any) error
}

// Encoder signs and seals props with a single key.
// It is safe for concurrent use.
type Encoder struct {
	key []byte
	gcm cipher.AEAD
}

// NewEncoder creates an encoder. Keys shorter than 32 bytes are stretched
// with SHA-256; longer keys are used as given, truncated to 32 bytes for AES.
func NewEncoder(key []byte) (*Encoder, error) {
	if len(key) < 32 {
		h := sha256.Sum256(key)
		key = h[:]
	}

	block, err := aes.NewCipher(key[:32])
	if err != nil {
		return nil, fmt.Errorf("encoding: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("encoding: %w", err)
	}

	return &Encoder{key: key, gcm: gcm}, nil
}

// Encode packs v and protects it according to mode.
func (e *Encoder) Encode(v any, mode Mode) (string, error) {
	var (
		packed []byte
		err    error
	)
	if enc, ok := v.(Encodable); ok {
		packed, err = msgpack.Marshal(enc.HXEncode())
	} else {
		packed, err = msgpack.Marshal(v)
	}
	if err != nil {
		return "", fmt.Errorf("encoding: marshal %T: %w", v, err)
	}

	if mode == Encrypted {
		return e.seal(packed)
	}
	return e.sign(packed), nil
}

// Decode reverses Encode into v, which must be a pointer.
func (e *Encoder) Decode(encoded string, mode Mode, v any) error {
	var (
		packed []byte
		err    error
	)
	if mode == Encrypted {
		packed, err = e.open(encoded)
	} else {
		packed, err = e.verify(encoded)
	}
	if err != nil {
		return err
	}

	if dec, ok := v.(Decodable); ok {
		var m map[string]any
		if err := msgpack.Unmarshal(packed, &m); err != nil {
			return ErrInvalidFormat
		}
		return dec.HXDecode(m)
	}
	if err := msgpack.Unmarshal(packed, v); err != nil {
		return ErrInvalidFormat
	}
	return nil
}

// sign produces "payload.signature".
func (e *Encoder) sign(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data) + "." +
		base64.RawURLEncoding.EncodeToString(e.mac(data))
}

func (e *Encoder) verify(encoded string) ([]byte, error) {
	payload, sig, ok := strings.Cut(encoded, ".")
	if !ok {
		return nil, ErrInvalidFormat
	}
	data, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	got, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return nil, ErrSignatureInvalid
	}
	if !hmac.Equal(got, e.mac(data)) {
		return nil, ErrSignatureInvalid
	}
	return data, nil
}

func (e *Encoder) mac(data []byte) []byte {
	h := hmac.New(sha256.New, e.key)
	h.Write(data)
	return h.Sum(nil)[:sigLen]
}

// seal produces base64(nonce || ciphertext).
func (e *Encoder) seal(data []byte) (string, error) {
	nonce := make([]byte, e.gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("encoding: nonce: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(e.gcm.Seal(nonce, nonce, data, nil)), nil
}

func (e *Encoder) open(encoded string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	n := e.gcm.NonceSize()
	if len(raw) < n {
		return nil, ErrDecryptFailed
	}
	data, err := e.gcm.Open(nil, raw[:n], raw[n:], nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return data, nil
}
