package p384

import (
	"github.com/pkg/errors"
)

// Error categories. Every error returned by this package matches exactly one
// of ErrMalformedInput, ErrRandomnessExhausted, ErrRandomSource or
// ErrDegenerateResult under errors.Is.
var (
	// ErrMalformedInput is the parent of all input validation failures
	ErrMalformedInput = errors.New("malformed input")

	// ErrRandomnessExhausted is returned when rejection sampling ran out of
	// attempts without finding an acceptable value
	ErrRandomnessExhausted = errors.New("random value rejection limit reached")

	// ErrRandomSource is returned when the random source itself failed
	ErrRandomSource = errors.New("random source failure")

	// ErrDegenerateResult is returned when a computation landed on the point
	// at infinity, which only happens for invalid input
	ErrDegenerateResult = errors.New("degenerate curve point result")
)

// Malformed input subcategories
var (
	ErrInvalidLength     = errors.WithMessage(ErrMalformedInput, "invalid length")
	ErrInvalidPublicKey  = errors.WithMessage(ErrMalformedInput, "invalid public key")
	ErrInvalidSecretKey  = errors.WithMessage(ErrMalformedInput, "invalid secret key")
	ErrInvalidSignature  = errors.WithMessage(ErrMalformedInput, "invalid signature encoding")
	ErrInvalidDerivation = errors.WithMessage(ErrMalformedInput, "invalid key derivation parameters")
)

// lengthError reports a buffer of the wrong size
func lengthError(what string, want, got int) error {
	return errors.Wrapf(ErrInvalidLength, "%s must be %d bytes, got %d", what, want, got)
}
