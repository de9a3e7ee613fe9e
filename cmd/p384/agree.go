package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"p384.mleku.dev"
)

const (
	keyDerive = "derive"
	keySalt   = "salt"
	keyInfo   = "info"
	keyLength = "length"
)

func agreeCmd(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agree",
		Short: "Compute the ECDH shared secret with a peer public key",
		Long: "Compute the ECDH shared secret with a peer public key. By default the raw\n" +
			"48-byte x coordinate is printed; --derive expands it with HKDF-SHA-384.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sec, err := cfg.secretKey()
			if err != nil {
				return err
			}
			pk, err := cfg.publicKey()
			if err != nil {
				return err
			}

			secret := make([]byte, p384.SharedSecretSize)
			if err := p384.ECDH(nil, secret, pk, sec); err != nil {
				return err
			}
			if !cfg.v.GetBool(keyDerive) {
				return cfg.println(cmd, secret)
			}

			n := cfg.v.GetInt(keyLength)
			if n <= 0 {
				return errors.Wrapf(p384.ErrInvalidDerivation, "--%s must be positive", keyLength)
			}
			key := make([]byte, n)
			err = p384.DeriveSharedKey(key, secret,
				[]byte(cfg.v.GetString(keySalt)), []byte(cfg.v.GetString(keyInfo)))
			if err != nil {
				return err
			}
			return cfg.println(cmd, key)
		},
	}
	flags := cmd.Flags()
	flags.String(keySecret, "", "Secret key (env P384_KEY)")
	flags.String(keyPublic, "", "Peer public key (env P384_PUB)")
	flags.Bool(keyDerive, false, "Expand the shared secret with HKDF-SHA-384")
	flags.String(keySalt, "", "HKDF salt")
	flags.String(keyInfo, "", "HKDF context info")
	flags.Int(keyLength, 32, "Derived key length in bytes")
	return cmd
}
