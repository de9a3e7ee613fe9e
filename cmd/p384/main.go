// Command p384 generates P-384 keys, signs and verifies messages with ECDSA
// over SHA-384, and performs ECDH key agreement from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"p384.mleku.dev"
)

// Exit statuses
const (
	exitOK        = 0
	exitFailure   = 1
	exitMalformed = 2
)

// errSignatureMismatch is returned by verify for a well-formed signature that
// does not match
var errSignatureMismatch = errors.New("signature does not match")

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps a command error to the process exit status
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errSignatureMismatch):
		return exitFailure
	case errors.Is(err, p384.ErrMalformedInput):
		return exitMalformed
	default:
		return exitFailure
	}
}
