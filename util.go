package p384

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/binary"
	"io"
	"unsafe"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// maxRandomAttempts bounds every rejection sampling loop
const maxRandomAttempts = 1024

// logger returns the package logger. It follows the process-wide zap logger so
// hosts that call zap.ReplaceGlobals receive failure reports.
func logger() *zap.Logger {
	return zap.L().Named("p384")
}

// randReader returns rng, or the system CSPRNG when rng is nil
func randReader(rng io.Reader) io.Reader {
	if rng == nil {
		return rand.Reader
	}
	return rng
}

// setB48 sets r from a 48-byte big-endian buffer, most significant word first
func (r *vli) setB48(b []byte) {
	if len(b) != 48 {
		panic("vli byte array must be 48 bytes")
	}
	for i := 0; i < vliWords; i++ {
		r[i] = binary.BigEndian.Uint64(b[48-8*(i+1):])
	}
}

// getB48 writes r to a 48-byte big-endian buffer
func (r *vli) getB48(b []byte) {
	if len(b) != 48 {
		panic("vli byte array must be 48 bytes")
	}
	for i := 0; i < vliWords; i++ {
		binary.BigEndian.PutUint64(b[48-8*(i+1):], r[i])
	}
}

// randomBelow fills r with a uniformly random value in [1, limit-1] by
// rejection sampling 48-byte draws from rng. It gives up after
// maxRandomAttempts draws.
func randomBelow(r *vli, rng io.Reader, limit *vli, what string) error {
	var buf [48]byte
	defer memclear(unsafe.Pointer(&buf[0]), uintptr(len(buf)))

	for attempt := 0; attempt < maxRandomAttempts; attempt++ {
		if _, err := io.ReadFull(rng, buf[:]); err != nil {
			return errors.Wrapf(ErrRandomSource, "reading %s: %v", what, err)
		}
		r.setB48(buf[:])
		if !r.isZero() && r.cmp(limit) < 0 {
			return nil
		}
	}
	r.clear()
	logger().Error("rejection sampling exhausted",
		zap.String("value", what),
		zap.Int("attempts", maxRandomAttempts),
	)
	return errors.Wrapf(ErrRandomnessExhausted, "no valid %s after %d attempts", what, maxRandomAttempts)
}

// memclear overwrites n bytes at ptr with zeros
func memclear(ptr unsafe.Pointer, n uintptr) {
	// Use a volatile write to prevent the compiler from optimizing away the clear
	for i := uintptr(0); i < n; i++ {
		*(*byte)(unsafe.Pointer(uintptr(ptr) + i)) = 0
	}
}

// SecureCompare reports whether a and b are equal in constant time with
// respect to their contents
func SecureCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
