package signer

import (
	"github.com/pkg/errors"

	"p384.mleku.dev"
)

var (
	// ErrNoSecret is returned by operations that need the secret key when the
	// signer was initialised with a public key only
	ErrNoSecret = errors.New("no secret key available")

	// ErrNoPublic is returned by Verify on an uninitialised signer
	ErrNoPublic = errors.New("no public key available")
)

// P384Signer implements the I interface using the p384 package. Public keys
// are exchanged in 49-byte compressed form and signatures as 96-byte r || s.
type P384Signer struct {
	keypair   *p384.KeyPair
	pub       *p384.PublicKey
	hasSecret bool // Whether we have the secret key (if false, can only verify)
}

// NewP384Signer creates a new P384Signer instance
func NewP384Signer() *P384Signer {
	return &P384Signer{}
}

// Generate creates a fresh new key pair from system entropy
func (s *P384Signer) Generate() error {
	kp, err := p384.KeyPairGenerate(nil)
	if err != nil {
		return err
	}
	s.Zero()
	s.keypair = kp
	s.pub = kp.Pubkey()
	s.hasSecret = true
	return nil
}

// InitSec initialises the secret (signing) key from the raw bytes, and also
// derives the public key
func (s *P384Signer) InitSec(sec []byte) error {
	kp, err := p384.KeyPairCreate(sec)
	if err != nil {
		return err
	}
	s.Zero()
	s.keypair = kp
	s.pub = kp.Pubkey()
	s.hasSecret = true
	return nil
}

// InitPub initializes the public (verification) key from raw bytes, either
// the 49-byte compressed or the 97-byte uncompressed encoding
func (s *P384Signer) InitPub(pub []byte) error {
	var pk p384.PublicKey
	if err := p384.ECPubkeyParse(&pk, pub); err != nil {
		return err
	}
	s.Zero()
	s.pub = &pk
	return nil
}

// Sec returns the secret key bytes
func (s *P384Signer) Sec() []byte {
	if !s.hasSecret || s.keypair == nil {
		return nil
	}
	return s.keypair.Seckey()
}

// Pub returns the compressed public key bytes
func (s *P384Signer) Pub() []byte {
	if s.pub == nil {
		return nil
	}
	return s.pub.Bytes()
}

// Sign hashes msg with SHA-384 and returns the compact 96-byte signature
func (s *P384Signer) Sign(msg []byte) (sig []byte, err error) {
	if !s.hasSecret || s.keypair == nil {
		return nil, errors.Wrap(ErrNoSecret, "signing")
	}

	var compact p384.ECDSASignatureCompact
	seckey := s.keypair.Seckey()
	defer clearBytes(seckey)
	if err = p384.ECDSASignCompact(nil, &compact, msg, seckey); err != nil {
		return nil, err
	}
	return compact[:], nil
}

// Verify checks a message and signature match the stored public key. A
// well-formed signature that does not match returns false with a nil error.
func (s *P384Signer) Verify(msg, sig []byte) (valid bool, err error) {
	if s.pub == nil {
		return false, errors.Wrap(ErrNoPublic, "verifying")
	}

	compact, err := p384.ParseCompact(sig)
	if err != nil {
		return false, err
	}
	return p384.ECDSAVerifyCompact(compact, msg, s.pub), nil
}

// Zero wipes the secret key to prevent memory leaks
func (s *P384Signer) Zero() {
	if s.keypair != nil {
		s.keypair.Clear()
		s.keypair = nil
	}
	s.hasSecret = false
	s.pub = nil
}

// ECDH returns the raw 48-byte shared secret between the stored secret key
// and the given public key
func (s *P384Signer) ECDH(pub []byte) (secret []byte, err error) {
	if !s.hasSecret || s.keypair == nil {
		return nil, errors.Wrap(ErrNoSecret, "key agreement")
	}

	seckey := s.keypair.Seckey()
	defer clearBytes(seckey)

	secret = make([]byte, p384.SharedSecretSize)
	if err = p384.ECDHParse(nil, secret, pub, seckey); err != nil {
		return nil, err
	}
	return secret, nil
}

// DeriveKey runs ECDH against pub and expands the result into size bytes of
// keying material bound to salt and info
func (s *P384Signer) DeriveKey(pub, salt, info []byte, size int) (key []byte, err error) {
	secret, err := s.ECDH(pub)
	if err != nil {
		return nil, err
	}
	defer clearBytes(secret)

	key = make([]byte, size)
	if err = p384.DeriveSharedKey(key, secret, salt, info); err != nil {
		return nil, err
	}
	return key, nil
}

// P384Gen implements the Gen interface for P-384 key generation
type P384Gen struct {
	keypair       *p384.KeyPair
	compressedPub *p384.PublicKey
}

// NewP384Gen creates a new P384Gen instance
func NewP384Gen() *P384Gen {
	return &P384Gen{}
}

// Generate gathers entropy and derives pubkey bytes for matching, this returns
// the 49 byte compressed form
func (g *P384Gen) Generate() (pubBytes []byte, err error) {
	kp, err := p384.KeyPairGenerate(nil)
	if err != nil {
		return nil, err
	}
	if g.keypair != nil {
		g.keypair.Clear()
	}
	g.keypair = kp

	pubkey := *kp.Pubkey()
	g.compressedPub = &pubkey
	return pubkey.Bytes(), nil
}

// Negate flips the secret key so that the public key's y coordinate changes
// parity
func (g *P384Gen) Negate() {
	if g.keypair == nil {
		return
	}

	seckey := g.keypair.Seckey()
	defer clearBytes(seckey)
	if !p384.ECSeckeyNegate(seckey) {
		return
	}

	kp, err := p384.KeyPairCreate(seckey)
	if err != nil {
		return
	}
	g.keypair.Clear()
	g.keypair = kp

	pubkey := *kp.Pubkey()
	g.compressedPub = &pubkey
}

// KeyPairBytes returns the raw bytes of the secret and compressed public key
func (g *P384Gen) KeyPairBytes() (secBytes, cmprPubBytes []byte) {
	if g.keypair == nil {
		return nil, nil
	}
	return g.keypair.Seckey(), g.compressedPub.Bytes()
}

func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
