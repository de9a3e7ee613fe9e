package main

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"p384.mleku.dev"
)

// CmdRoot is the prefix for environment variables, e.g. P384_KEY
const CmdRoot = "P384"

// Configuration keys shared by flags and environment variables
const (
	keyEncoding = "encoding"
	keyLogLevel = "log-level"
	keySecret   = "key"
	keyPublic   = "pub"
	keySig      = "sig"
	keyMessage  = "message"
	keyFile     = "file"
)

// config holds the viper instance the commands read their settings from
type config struct {
	v *viper.Viper
}

func newRootCmd() *cobra.Command {
	cfg := &config{v: viper.New()}
	cfg.v.SetEnvPrefix(CmdRoot)
	cfg.v.AutomaticEnv()
	cfg.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	root := &cobra.Command{
		Use:           "p384",
		Short:         "P-384 ECDSA and ECDH tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Bind the executing command's flags so env vars fill unset ones
			if err := cfg.v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			return setupLogging(cfg.v.GetString(keyLogLevel))
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = zap.L().Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.String(keyEncoding, "hex", "Encoding for keys and signatures: hex or base64")
	flags.String(keyLogLevel, "warn", "Log level: debug, info, warn or error")

	root.AddCommand(
		keygenCmd(cfg),
		pubkeyCmd(cfg),
		fingerprintCmd(cfg),
		signCmd(cfg),
		verifyCmd(cfg),
		agreeCmd(cfg),
	)
	return root
}

// setupLogging installs a stderr zap logger at the given level as the global
// logger, which the p384 package reports failures through
func setupLogging(level string) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return errors.Wrapf(p384.ErrMalformedInput, "log level %q", level)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return errors.Wrap(err, "building logger")
	}
	zap.ReplaceGlobals(logger)
	return nil
}

// encode renders b in the configured encoding
func (c *config) encode(b []byte) (string, error) {
	switch c.v.GetString(keyEncoding) {
	case "hex":
		return hex.EncodeToString(b), nil
	case "base64":
		return base64.StdEncoding.EncodeToString(b), nil
	default:
		return "", errors.Wrapf(p384.ErrMalformedInput, "unknown encoding %q", c.v.GetString(keyEncoding))
	}
}

// decode parses the named setting in the configured encoding
func (c *config) decode(key string) ([]byte, error) {
	s := strings.TrimSpace(c.v.GetString(key))
	if s == "" {
		return nil, errors.Wrapf(p384.ErrMalformedInput, "--%s is required", key)
	}

	var (
		b   []byte
		err error
	)
	switch c.v.GetString(keyEncoding) {
	case "hex":
		b, err = hex.DecodeString(s)
	case "base64":
		b, err = base64.StdEncoding.DecodeString(s)
	default:
		return nil, errors.Wrapf(p384.ErrMalformedInput, "unknown encoding %q", c.v.GetString(keyEncoding))
	}
	if err != nil {
		return nil, errors.Wrapf(p384.ErrMalformedInput, "decoding --%s: %v", key, err)
	}
	return b, nil
}

// message returns the message to sign or verify: --message if set, else the
// contents of --file, else standard input
func (c *config) message(cmd *cobra.Command) ([]byte, error) {
	if m := c.v.GetString(keyMessage); m != "" {
		return []byte(m), nil
	}
	if path := c.v.GetString(keyFile); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", path)
		}
		return b, nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, errors.Wrap(err, "reading standard input")
	}
	return b, nil
}

// secretKey decodes and validates the --key setting
func (c *config) secretKey() ([]byte, error) {
	sec, err := c.decode(keySecret)
	if err != nil {
		return nil, err
	}
	if !p384.ECSeckeyVerify(sec) {
		return nil, errors.Wrap(p384.ErrInvalidSecretKey, "--key")
	}
	return sec, nil
}

// publicKey decodes and parses the --pub setting
func (c *config) publicKey() (*p384.PublicKey, error) {
	raw, err := c.decode(keyPublic)
	if err != nil {
		return nil, err
	}
	var pk p384.PublicKey
	if err := p384.ECPubkeyParse(&pk, raw); err != nil {
		return nil, err
	}
	return &pk, nil
}

// println writes the encoded form of b as one line
func (c *config) println(cmd *cobra.Command, b []byte) error {
	s, err := c.encode(b)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
	return err
}
