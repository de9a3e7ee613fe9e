package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"p384.mleku.dev"
)

func signCmd(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a message with ECDSA over SHA-384",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sec, err := cfg.secretKey()
			if err != nil {
				return err
			}
			msg, err := cfg.message(cmd)
			if err != nil {
				return err
			}

			var sig p384.ECDSASignatureCompact
			if err := p384.ECDSASignCompact(nil, &sig, msg, sec); err != nil {
				return err
			}
			return cfg.println(cmd, sig[:])
		},
	}
	flags := cmd.Flags()
	flags.String(keySecret, "", "Secret key (env P384_KEY)")
	flags.String(keyMessage, "", "Message text")
	flags.String(keyFile, "", "Read the message from a file")
	return cmd
}

func verifyCmd(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify an ECDSA signature; exits 1 when it does not match and 2 on malformed input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pk, err := cfg.publicKey()
			if err != nil {
				return err
			}
			raw, err := cfg.decode(keySig)
			if err != nil {
				return err
			}
			sig, err := p384.ParseCompact(raw)
			if err != nil {
				return err
			}
			msg, err := cfg.message(cmd)
			if err != nil {
				return err
			}

			if !p384.ECDSAVerifyCompact(sig, msg, pk) {
				zap.L().Debug("signature rejected", zap.Int("messageLen", len(msg)))
				fmt.Fprintln(cmd.OutOrStdout(), "invalid")
				return errSignatureMismatch
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
	flags := cmd.Flags()
	flags.String(keyPublic, "", "Public key, compressed or uncompressed (env P384_PUB)")
	flags.String(keySig, "", "96-byte r || s signature")
	flags.String(keyMessage, "", "Message text")
	flags.String(keyFile, "", "Read the message from a file")
	return cmd
}
