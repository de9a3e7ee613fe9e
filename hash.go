package p384

import (
	"crypto/sha512"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/crypto/hkdf"
)

// Hash384 returns the SHA-384 digest of message, the digest signed by
// ECDSASign and checked by ECDSAVerify
func Hash384(message []byte) [HashSize]byte {
	return sha512.Sum384(message)
}

// DeriveSharedKey expands a raw ECDH shared secret into len(output) bytes of
// keying material with HKDF-SHA-384 (RFC 5869). The raw secret is the bare x
// coordinate and should not be used as a key directly.
func DeriveSharedKey(output, secret, salt, info []byte) error {
	if len(secret) != SharedSecretSize {
		return lengthError("shared secret", SharedSecretSize, len(secret))
	}
	if len(output) == 0 || len(output) > 255*sha512.Size384 {
		return errors.Wrapf(ErrInvalidDerivation, "output length %d out of range", len(output))
	}

	kdf := hkdf.New(sha512.New384, secret, salt, info)
	if _, err := io.ReadFull(kdf, output); err != nil {
		return errors.Wrap(ErrInvalidDerivation, err.Error())
	}
	return nil
}
