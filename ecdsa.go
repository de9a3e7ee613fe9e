package p384

import (
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ECDSASignature represents an ECDSA signature
type ECDSASignature struct {
	r, s vli
}

// ECDSASignatureCompact represents a compact 96-byte signature (r || s)
type ECDSASignatureCompact [SignatureSize]byte

// ECDSASign hashes message with SHA-384 and signs the digest with seckey.
// Nonces are drawn from rng, or crypto/rand when rng is nil.
func ECDSASign(rng io.Reader, sig *ECDSASignature, message []byte, seckey []byte) error {
	digest := Hash384(message)
	return ECDSASignDigest(rng, sig, digest[:], seckey)
}

// ECDSASignDigest creates an ECDSA signature for a 48-byte message digest
// using a secret key
func ECDSASignDigest(rng io.Reader, sig *ECDSASignature, digest []byte, seckey []byte) error {
	if len(digest) != HashSize {
		return lengthError("message digest", HashSize, len(digest))
	}
	if len(seckey) != SecretKeySize {
		return lengthError("secret key", SecretKeySize, len(seckey))
	}
	rng = randReader(rng)

	// Parse secret key
	var sec vli
	defer sec.clear()
	if !sec.setB48Seckey(seckey) {
		return errors.Wrap(ErrInvalidSecretKey, "scalar out of range")
	}

	// Parse message digest, reduced once since 2^384 < 2n
	var e vli
	e.setB48(digest)
	if e.cmp(&curveN) >= 0 {
		e.sub(&e, &curveN)
	}

	var k, kInv vli
	var point affinePoint
	defer k.clear()
	defer kInv.clear()

	for attempt := 0; attempt < maxRandomAttempts; attempt++ {
		if err := randomBelow(&k, rng, &curveN, "signature nonce"); err != nil {
			return err
		}

		// r = x(k*G) mod n
		ecmultGen(&point, &k)
		sig.r.set(&point.x)
		if sig.r.cmp(&curveN) >= 0 {
			sig.r.sub(&sig.r, &curveN)
		}
		if sig.r.isZero() {
			continue
		}

		// s = (e + r*d) / k mod n
		sig.s.modMult(&sig.r, &sec, &curveN)
		sig.s.modAdd(&e, &sig.s, &curveN)
		kInv.modInv(&k, &curveN)
		sig.s.modMult(&sig.s, &kInv, &curveN)
		if sig.s.isZero() {
			continue
		}
		point.clear()
		return nil
	}

	sig.r.clear()
	sig.s.clear()
	logger().Error("signing exhausted nonce attempts", zap.Int("attempts", maxRandomAttempts))
	return errors.Wrapf(ErrRandomnessExhausted, "no usable nonce after %d attempts", maxRandomAttempts)
}

// ECDSAVerify hashes message with SHA-384 and verifies sig against pubkey
func ECDSAVerify(sig *ECDSASignature, message []byte, pubkey *PublicKey) bool {
	digest := Hash384(message)
	return ECDSAVerifyDigest(sig, digest[:], pubkey)
}

// ECDSAVerifyDigest verifies an ECDSA signature against a 48-byte message
// digest and public key. A false result means the signature does not match;
// it is never an error.
func ECDSAVerifyDigest(sig *ECDSASignature, digest []byte, pubkey *PublicKey) bool {
	if len(digest) != HashSize || sig == nil || pubkey == nil {
		return false
	}

	// r and s must both lie in [1, n-1]
	if sig.r.isZero() || sig.s.isZero() {
		return false
	}
	if sig.r.cmp(&curveN) >= 0 || sig.s.cmp(&curveN) >= 0 {
		return false
	}

	var q affinePoint
	pubkeyLoad(&q, pubkey)
	if q.isInfinity() {
		return false
	}

	// u1 = e/s, u2 = r/s
	var e, sInv, u1, u2 vli
	e.setB48(digest)
	sInv.modInv(&sig.s, &curveN)
	u1.modMult(&e, &sInv, &curveN)
	u2.modMult(&sig.r, &sInv, &curveN)

	var sum affinePoint
	ecmultShamir(&sum, &u1, &q, &u2)
	if sum.isInfinity() {
		return false
	}

	// v = x mod n
	if sum.x.cmp(&curveN) >= 0 {
		sum.x.sub(&sum.x, &curveN)
	}
	return sum.x.cmp(&sig.r) == 0
}

// ToCompact converts an ECDSA signature to compact format
func (sig *ECDSASignature) ToCompact() *ECDSASignatureCompact {
	var compact ECDSASignatureCompact
	sig.r.getB48(compact[:48])
	sig.s.getB48(compact[48:])
	return &compact
}

// FromCompact converts a compact signature to ECDSA signature format. It
// rejects encodings whose r or s lies outside [1, n-1].
func (sig *ECDSASignature) FromCompact(compact *ECDSASignatureCompact) error {
	sig.r.setB48(compact[:48])
	sig.s.setB48(compact[48:])

	if sig.r.isZero() || sig.s.isZero() {
		return errors.Wrap(ErrInvalidSignature, "r or s is zero")
	}
	if sig.r.cmp(&curveN) >= 0 || sig.s.cmp(&curveN) >= 0 {
		return errors.Wrap(ErrInvalidSignature, "r or s is not below the group order")
	}
	return nil
}

// ParseCompact converts a 96-byte slice to compact signature format
func ParseCompact(b []byte) (*ECDSASignatureCompact, error) {
	if len(b) != SignatureSize {
		return nil, lengthError("signature", SignatureSize, len(b))
	}
	var compact ECDSASignatureCompact
	copy(compact[:], b)
	return &compact, nil
}

// ECDSAVerifyCompact verifies a compact signature over message. Out of range
// r or s values verify as false.
func ECDSAVerifyCompact(compact *ECDSASignatureCompact, message []byte, pubkey *PublicKey) bool {
	var sig ECDSASignature
	if err := sig.FromCompact(compact); err != nil {
		return false
	}
	return ECDSAVerify(&sig, message, pubkey)
}

// ECDSASignCompact creates a compact signature over message
func ECDSASignCompact(rng io.Reader, compact *ECDSASignatureCompact, message []byte, seckey []byte) error {
	var sig ECDSASignature
	if err := ECDSASign(rng, &sig, message, seckey); err != nil {
		return err
	}
	*compact = *sig.ToCompact()
	return nil
}
