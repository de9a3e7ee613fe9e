package p384

import (
	"bytes"

	sha256simd "github.com/minio/sha256-simd"
	"github.com/pkg/errors"
)

// Encoded sizes
const (
	PublicKeySize             = 49
	UncompressedPublicKeySize = 97
	SecretKeySize             = 48
	SignatureSize             = 96
	SharedSecretSize          = 48
	HashSize                  = 48
	FingerprintSize           = 32
)

// Compression flags for public key serialization
const (
	ECCompressed   = 0x02
	ECUncompressed = 0x04
)

// PublicKey represents a P-384 public key
type PublicKey struct {
	data [96]byte // affine x || y, big-endian
}

// setXOVar sets r to the point with the given x coordinate and y parity. It
// returns false when x is not below p or x^3 - 3x + b has no square root.
func (r *affinePoint) setXOVar(x *vli, odd bool) bool {
	if x.cmp(&curveP) >= 0 {
		return false
	}

	var rhs, y, check vli
	rhs.curveRHS(x)
	y.fieldSqrt(&rhs)

	// The exponentiation returns garbage for non-residues
	check.fieldSqr(&y)
	if check.cmp(&rhs) != 0 {
		return false
	}

	if (y[0]&1 == 1) != odd {
		y.modSub(&vli{}, &y, &curveP)
	}
	r.x.set(x)
	r.y.set(&y)
	return true
}

// compress writes the 49-byte compressed encoding of r
func (r *affinePoint) compress(out []byte) {
	if len(out) != PublicKeySize {
		panic("compressed point buffer must be 49 bytes")
	}
	out[0] = ECCompressed | byte(r.y[0]&1)
	r.x.getB48(out[1:])
}

// decompress parses a 49-byte compressed point into r
func (r *affinePoint) decompress(in []byte) error {
	if len(in) != PublicKeySize {
		return lengthError("compressed public key", PublicKeySize, len(in))
	}
	if in[0] != 0x02 && in[0] != 0x03 {
		return errors.Wrapf(ErrInvalidPublicKey, "compressed prefix 0x%02x", in[0])
	}
	var x vli
	x.setB48(in[1:])
	if !r.setXOVar(&x, in[0] == 0x03) {
		return errors.Wrap(ErrInvalidPublicKey, "x coordinate is not on the curve")
	}
	return nil
}

// toBytes converts a point to its 96-byte x || y representation
func (r *affinePoint) toBytes(buf []byte) {
	if len(buf) < 96 {
		panic("buffer too small for group element")
	}
	r.x.getB48(buf[:48])
	r.y.getB48(buf[48:96])
}

// fromBytes converts a 96-byte x || y representation to a point
func (r *affinePoint) fromBytes(buf []byte) {
	if len(buf) < 96 {
		panic("buffer too small for group element")
	}
	r.x.setB48(buf[:48])
	r.y.setB48(buf[48:96])
}

// ECPubkeyParse parses a compressed (49 byte) or uncompressed (97 byte)
// public key and checks that it lies on the curve
func ECPubkeyParse(pubkey *PublicKey, input []byte) error {
	var point affinePoint

	switch len(input) {
	case PublicKeySize:
		if err := point.decompress(input); err != nil {
			return err
		}

	case UncompressedPublicKeySize:
		if input[0] != ECUncompressed {
			return errors.Wrapf(ErrInvalidPublicKey, "uncompressed prefix 0x%02x", input[0])
		}
		point.x.setB48(input[1:49])
		point.y.setB48(input[49:97])

	default:
		return lengthError("public key", PublicKeySize, len(input))
	}

	if !point.isValid() {
		return errors.Wrap(ErrInvalidPublicKey, "point not on curve")
	}

	pubkeySave(pubkey, &point)
	return nil
}

// ECPubkeySerialize serializes a public key into output and returns the
// number of bytes written, or 0 when the buffer is too small or the flags are
// unknown
func ECPubkeySerialize(output []byte, pubkey *PublicKey, flags uint) int {
	var point affinePoint
	pubkeyLoad(&point, pubkey)
	if point.isInfinity() {
		return 0
	}

	switch flags {
	case ECCompressed:
		if len(output) < PublicKeySize {
			return 0
		}
		point.compress(output[:PublicKeySize])
		return PublicKeySize

	case ECUncompressed:
		if len(output) < UncompressedPublicKeySize {
			return 0
		}
		output[0] = ECUncompressed
		point.x.getB48(output[1:49])
		point.y.getB48(output[49:97])
		return UncompressedPublicKeySize

	default:
		return 0
	}
}

// Bytes returns the 49-byte compressed encoding of the public key
func (pubkey *PublicKey) Bytes() []byte {
	out := make([]byte, PublicKeySize)
	ECPubkeySerialize(out, pubkey, ECCompressed)
	return out
}

// Fingerprint returns the SHA-256 digest of the compressed public key, used as
// a short identifier for display and lookup
func (pubkey *PublicKey) Fingerprint() [FingerprintSize]byte {
	return sha256simd.Sum256(pubkey.Bytes())
}

// ECPubkeyCmp compares two public keys by their compressed encodings
func ECPubkeyCmp(pubkey1, pubkey2 *PublicKey) int {
	var point1, point2 affinePoint
	pubkeyLoad(&point1, pubkey1)
	pubkeyLoad(&point2, pubkey2)
	if point1.equal(&point2) {
		return 0
	}
	return bytes.Compare(pubkey1.Bytes(), pubkey2.Bytes())
}

// ECPubkeyCreate derives the public key for a 48-byte secret key
func ECPubkeyCreate(pubkey *PublicKey, seckey []byte) error {
	if len(seckey) != SecretKeySize {
		return lengthError("secret key", SecretKeySize, len(seckey))
	}

	var scalar vli
	defer scalar.clear()
	if !scalar.setB48Seckey(seckey) {
		return errors.Wrap(ErrInvalidSecretKey, "scalar out of range")
	}

	var point affinePoint
	ecmultGen(&point, &scalar)
	if point.isInfinity() {
		return errors.Wrap(ErrDegenerateResult, "public key is infinity")
	}

	pubkeySave(pubkey, &point)
	return nil
}

// ECPubkeyNegate negates a public key in place
func ECPubkeyNegate(pubkey *PublicKey) error {
	var point affinePoint
	pubkeyLoad(&point, pubkey)
	if point.isInfinity() {
		return errors.Wrap(ErrInvalidPublicKey, "public key is not initialized")
	}
	point.negate(&point)
	pubkeySave(pubkey, &point)
	return nil
}

// pubkeyLoad loads a public key from internal format
func pubkeyLoad(point *affinePoint, pubkey *PublicKey) {
	point.fromBytes(pubkey.data[:])
}

// pubkeySave saves a public key to internal format
func pubkeySave(pubkey *PublicKey, point *affinePoint) {
	point.toBytes(pubkey.data[:])
}
