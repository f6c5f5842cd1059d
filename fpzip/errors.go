package fpzip

import (
	"errors"
	"fmt"
)

// Phases reported by the typed errors.
const (
	PhaseHeader = "header"
	PhaseSize   = "size"
	PhaseDecode = "decode"
)

// Common errors
var (
	ErrTruncated    = errors.New("truncated header")
	ErrBadMagic     = errors.New("not an fpz stream")
	ErrVersion      = errors.New("unsupported format version")
	ErrChecksum     = errors.New("checksum mismatch")
	ErrElementType  = errors.New("unknown element type")
	ErrPrecision    = errors.New("precision mismatch")
	ErrFlags        = errors.New("unknown header flags")
	ErrOverflow     = errors.New("volume size overflows")
	ErrLength       = errors.New("payload length mismatch")
	ErrUnknownCodec = errors.New("unknown payload codec")
	ErrTooLarge     = errors.New("volume exceeds size limit")
)

// HeaderParseError reports a stream whose leading bytes are not a valid
// header.
type HeaderParseError struct {
	Reason string
	Err    error
}

func (e *HeaderParseError) Error() string {
	if e.Err == nil {
		return "fpzip: cannot read header: " + e.Reason
	}
	return fmt.Sprintf("fpzip: cannot read header: %s: %v", e.Reason, e.Err)
}

func (e *HeaderParseError) Unwrap() error { return e.Err }

func (e *HeaderParseError) Phase() string { return PhaseHeader }

// BufferTooSmallError reports a destination shorter than the decoded
// volume. Nothing has been written when it is returned.
type BufferTooSmallError struct {
	Required int
	Actual   int
}

func (e *BufferTooSmallError) Error() string {
	return fmt.Sprintf("fpzip: destination buffer (%d bytes) should be at least %d bytes long", e.Actual, e.Required)
}

func (e *BufferTooSmallError) Phase() string { return PhaseSize }

// DecodeError reports a payload that could not be decoded: corruption,
// precision mismatch, or a length that disagrees with the header.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return "fpzip: decompression failed: " + e.Reason
	}
	return fmt.Sprintf("fpzip: decompression failed: %s: %v", e.Reason, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Phase() string { return PhaseDecode }

// Phase returns the phase a decode error came from, or "" if err is not
// one of this package's typed errors.
func Phase(err error) string {
	var p interface{ Phase() string }
	if errors.As(err, &p) {
		return p.Phase()
	}
	return ""
}
