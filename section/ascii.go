package section

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/arloliu/tzpack/errs"
)

// ValidateASCII returns ErrNonASCIIInput if s contains a byte above MaxASCII.
// The label names the offending field in the error message.
func ValidateASCII(label, s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] > MaxASCII {
			return fmt.Errorf("%w: %s %q has byte 0x%02x at position %d", errs.ErrNonASCIIInput, label, s, s[i], i)
		}
	}

	return nil
}

// ValidateVersion checks that version fits the header version field.
func ValidateVersion(version string) error {
	if len(version) > VersionSize {
		return fmt.Errorf("%w: %q is %d bytes, max %d", errs.ErrVersionTooLong, version, len(version), VersionSize)
	}

	return ValidateASCII("version", version)
}

// ValidateZoneName checks that name can be stored in an index entry and read
// back unchanged: non-empty, at most MaxZoneNameLen bytes, ASCII, no NUL.
func ValidateZoneName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", errs.ErrInvalidZoneName)
	}

	if len(name) > MaxZoneNameLen {
		return fmt.Errorf("%w: %q is %d bytes, max %d", errs.ErrNameTooLong, name, len(name), MaxZoneNameLen)
	}

	if i := strings.IndexByte(name, 0); i >= 0 {
		return fmt.Errorf("%w: %q has NUL at position %d", errs.ErrInvalidZoneName, name, i)
	}

	return ValidateASCII("zone name", name)
}

// PutASCII copies s into dst left-justified and zero-fills the rest of dst.
// s must already be validated; PutASCII only guards against overflow.
func PutASCII(dst []byte, s string) error {
	if len(s) > len(dst) {
		return fmt.Errorf("%w: %q does not fit %d bytes", errs.ErrNameTooLong, s, len(dst))
	}

	n := copy(dst, s)
	clear(dst[n:])

	return nil
}

// ASCIIString returns the content of a zero-padded field up to the first NUL.
func ASCIIString(field []byte) string {
	if i := bytes.IndexByte(field, 0); i >= 0 {
		field = field[:i]
	}

	return string(field)
}
