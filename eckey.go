package p384

import (
	"io"
	"unsafe"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// setB48Seckey sets r from a 48-byte big-endian secret key and returns true if
// it lies in [1, n-1]
func (r *vli) setB48Seckey(b []byte) bool {
	r.setB48(b)
	return !r.isZero() && r.cmp(&curveN) < 0
}

// ECSeckeyVerify verifies that a 48-byte array is a valid secret key
func ECSeckeyVerify(seckey []byte) bool {
	if len(seckey) != SecretKeySize {
		return false
	}

	var scalar vli
	defer scalar.clear()
	return scalar.setB48Seckey(seckey)
}

// ECSeckeyNegate replaces seckey with n - seckey, which flips the parity of
// the corresponding public key's y coordinate
func ECSeckeyNegate(seckey []byte) bool {
	if len(seckey) != SecretKeySize {
		return false
	}

	var scalar vli
	defer scalar.clear()
	if !scalar.setB48Seckey(seckey) {
		return false
	}

	scalar.sub(&curveN, &scalar)
	scalar.getB48(seckey)
	return true
}

// ECSeckeyGenerate draws a new random secret key from rng (crypto/rand when
// nil) whose public point is not the point at infinity
func ECSeckeyGenerate(rng io.Reader) ([]byte, error) {
	seckey, _, err := generateKey(randReader(rng))
	if err != nil {
		return nil, err
	}
	return seckey, nil
}

// ECKeyPairGenerate generates a new key pair (secret key and public key)
func ECKeyPairGenerate(rng io.Reader) (seckey []byte, pubkey *PublicKey, err error) {
	return generateKey(randReader(rng))
}

// generateKey rejection samples a scalar in [1, n-1] whose public point is
// finite. Both the range check and the infinity check share the same bounded
// attempt budget.
func generateKey(rng io.Reader) ([]byte, *PublicKey, error) {
	var scalar vli
	defer scalar.clear()

	var buf [SecretKeySize]byte
	defer memclear(unsafe.Pointer(&buf[0]), SecretKeySize)

	for attempt := 0; attempt < maxRandomAttempts; attempt++ {
		if _, err := io.ReadFull(rng, buf[:]); err != nil {
			return nil, nil, errors.Wrapf(ErrRandomSource, "reading secret key: %v", err)
		}
		if !scalar.setB48Seckey(buf[:]) {
			continue
		}

		var point affinePoint
		ecmultGen(&point, &scalar)
		if point.isInfinity() {
			continue
		}

		seckey := make([]byte, SecretKeySize)
		scalar.getB48(seckey)
		pubkey := &PublicKey{}
		pubkeySave(pubkey, &point)
		return seckey, pubkey, nil
	}

	logger().Error("key generation exhausted random attempts",
		zap.Int("attempts", maxRandomAttempts),
	)
	return nil, nil, errors.Wrapf(ErrRandomnessExhausted, "no valid secret key after %d attempts", maxRandomAttempts)
}
