package p384

import (
	"io"
	"unsafe"
)

// KeyPair holds a secret key together with its public key
type KeyPair struct {
	seckey [SecretKeySize]byte
	pubkey PublicKey
}

// KeyPairCreate creates a keypair from a 48-byte secret key
func KeyPairCreate(seckey []byte) (*KeyPair, error) {
	var pubkey PublicKey
	if err := ECPubkeyCreate(&pubkey, seckey); err != nil {
		return nil, err
	}

	kp := &KeyPair{}
	copy(kp.seckey[:], seckey)
	kp.pubkey = pubkey

	return kp, nil
}

// KeyPairGenerate generates a new random keypair using rng, or crypto/rand
// when rng is nil
func KeyPairGenerate(rng io.Reader) (*KeyPair, error) {
	seckey, pubkey, err := ECKeyPairGenerate(rng)
	if err != nil {
		return nil, err
	}
	defer memclear(unsafe.Pointer(&seckey[0]), SecretKeySize)

	kp := &KeyPair{}
	copy(kp.seckey[:], seckey)
	kp.pubkey = *pubkey

	return kp, nil
}

// Seckey returns a copy of the secret key
func (kp *KeyPair) Seckey() []byte {
	out := make([]byte, SecretKeySize)
	copy(out, kp.seckey[:])
	return out
}

// Pubkey returns the public key
func (kp *KeyPair) Pubkey() *PublicKey {
	return &kp.pubkey
}

// Clear clears the keypair to prevent leaking sensitive information
func (kp *KeyPair) Clear() {
	memclear(unsafe.Pointer(&kp.seckey[0]), SecretKeySize)
	kp.pubkey.data = [96]byte{}
}
