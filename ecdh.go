package p384

import (
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ECDH computes the raw EC Diffie-Hellman shared secret between seckey and
// pubkey and writes the 48-byte x coordinate of seckey*pubkey to output. The
// ladder runs with a random initial Z drawn from rng (crypto/rand when nil).
//
// The output is unhashed keying material; see DeriveSharedKey.
func ECDH(rng io.Reader, output []byte, pubkey *PublicKey, seckey []byte) error {
	if len(output) != SharedSecretSize {
		return lengthError("output", SharedSecretSize, len(output))
	}
	if len(seckey) != SecretKeySize {
		return lengthError("secret key", SecretKeySize, len(seckey))
	}
	if pubkey == nil {
		return errors.Wrap(ErrInvalidPublicKey, "public key is nil")
	}

	var pt affinePoint
	pubkeyLoad(&pt, pubkey)
	if pt.isInfinity() {
		return errors.Wrap(ErrInvalidPublicKey, "public key is not initialized")
	}

	var s vli
	defer s.clear()
	if !s.setB48Seckey(seckey) {
		return errors.Wrap(ErrInvalidSecretKey, "scalar out of range")
	}

	// Random projective blinding factor in [1, p-1]
	var z vli
	defer z.clear()
	if err := randomBelow(&z, randReader(rng), &curveP, "blinding factor"); err != nil {
		return err
	}

	var res affinePoint
	defer res.clear()
	ecmult(&res, &pt, &s, &z)
	if res.isInfinity() {
		logger().Error("ECDH produced the point at infinity")
		return errors.Wrap(ErrDegenerateResult, "shared point is infinity")
	}

	res.x.getB48(output)
	return nil
}

// ECDHParse is ECDH with the peer public key given in encoded form
func ECDHParse(rng io.Reader, output []byte, pubkey []byte, seckey []byte) error {
	var pk PublicKey
	if err := ECPubkeyParse(&pk, pubkey); err != nil {
		return err
	}
	if err := ECDH(rng, output, &pk, seckey); err != nil {
		return err
	}
	logger().Debug("ECDH agreement complete", zap.Int("peerKeyLen", len(pubkey)))
	return nil
}
