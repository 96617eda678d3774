// Package encode maps arbitrary resource names to filesystem- and
// protocol-safe tokens using percent-encoding over the name's UTF-8 bytes.
package encode

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEncodingUnsupported is returned by Verify when the runtime cannot
// reproduce the expected byte-level encoding for the reference character.
var ErrEncodingUnsupported = errors.New("host encoding does not produce expected UTF-8 byte sequence")

const upperhex = "0123456789ABCDEF"

// Encode converts a resource name into a token safe for filenames.
// Unreserved characters (a-z, A-Z, 0-9, '.', '~', '_', '-') pass through;
// every other byte becomes an uppercase %XX triplet. Multi-byte characters
// produce one triplet per byte, so "Café" encodes to "Caf%C3%A9".
func Encode(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '.' || c == '~' || c == '_' || c == '-':
		return true
	default:
		return false
	}
}

// Reference character used to verify byte-level encoding at startup.
// U+00E9 (é) must encode to the two UTF-8 bytes 0xC3 0xA9.
const (
	referenceName    = "é"
	referenceEncoded = "%C3%A9"
)

// Verify checks the startup precondition that names encode through their
// UTF-8 bytes. A mismatch means content filenames resolved from snapshot
// manifests would not line up with the files the capture step wrote, so the
// run must abort before any matching happens. Callers may bypass this with
// an explicit override flag.
func Verify() error {
	if got := Encode(referenceName); got != referenceEncoded {
		return fmt.Errorf("%w: %q encoded to %q, want %q",
			ErrEncodingUnsupported, referenceName, got, referenceEncoded)
	}
	return nil
}
