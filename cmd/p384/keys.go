package main

import (
	"github.com/spf13/cobra"

	"p384.mleku.dev"
)

const keyUncompressed = "uncompressed"

func keygenCmd(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a key pair and print the secret key then the public key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := p384.KeyPairGenerate(nil)
			if err != nil {
				return err
			}
			defer kp.Clear()

			if err := cfg.println(cmd, kp.Seckey()); err != nil {
				return err
			}
			return cfg.println(cmd, serializePubkey(kp.Pubkey(), cfg.v.GetBool(keyUncompressed)))
		},
	}
	cmd.Flags().Bool(keyUncompressed, false, "Print the 97-byte uncompressed public key")
	return cmd
}

func pubkeyCmd(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pubkey",
		Short: "Print the public key for a secret key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sec, err := cfg.secretKey()
			if err != nil {
				return err
			}

			var pk p384.PublicKey
			if err := p384.ECPubkeyCreate(&pk, sec); err != nil {
				return err
			}
			return cfg.println(cmd, serializePubkey(&pk, cfg.v.GetBool(keyUncompressed)))
		},
	}
	cmd.Flags().String(keySecret, "", "Secret key (env P384_KEY)")
	cmd.Flags().Bool(keyUncompressed, false, "Print the 97-byte uncompressed public key")
	return cmd
}

func fingerprintCmd(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the SHA-256 fingerprint of a public key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pk, err := cfg.publicKey()
			if err != nil {
				return err
			}
			fp := pk.Fingerprint()
			return cfg.println(cmd, fp[:])
		},
	}
	cmd.Flags().String(keyPublic, "", "Public key, compressed or uncompressed (env P384_PUB)")
	return cmd
}

func serializePubkey(pk *p384.PublicKey, uncompressed bool) []byte {
	if !uncompressed {
		return pk.Bytes()
	}
	out := make([]byte, p384.UncompressedPublicKeySize)
	p384.ECPubkeySerialize(out, pk, p384.ECUncompressed)
	return out
}
