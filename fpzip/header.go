package fpzip

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"math/bits"

	"github.com/cespare/xxhash/v2"

	"fpzkit/common"
)

// HeaderSize is the fixed length of a stream header in bytes.
const HeaderSize = 48

// Format version written by compatible encoders. Streams with a different
// major version are rejected; minor versions only add optional fields.
const (
	VersionMajor = 1
	VersionMinor = 0
)

// FlagShuffle marks a payload whose element bytes were grouped by byte
// position before compression.
const FlagShuffle uint8 = 1 << 0

const knownFlags = FlagShuffle

// Magic opens every stream.
var Magic = [4]byte{'f', 'p', 'z', 0}

// ElementType is the stored floating-point width.
type ElementType uint8

const (
	Float32 ElementType = 0
	Float64 ElementType = 1
)

// Size returns the element size in bytes.
func (t ElementType) Size() int {
	if t == Float64 {
		return 8
	}
	return 4
}

// Bits returns the element size in bits.
func (t ElementType) Bits() int { return t.Size() * 8 }

func (t ElementType) String() string {
	switch t {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	}
	return fmt.Sprintf("ElementType(%d)", uint8(t))
}

// Header is the metadata at the start of a stream. It is produced by
// ReadHeader and never modified afterwards.
type Header struct {
	Type ElementType
	// Prec is the number of leading bits kept per element; 0 means the
	// stream is lossless.
	Prec  uint8
	Codec Codec
	Flags uint8

	Nx, Ny, Nz, Nf uint32

	PayloadLen uint64
	PayloadSum uint64 // xxhash64 of the payload
}

// NVoxels returns nx*ny*nz*nf.
func (h Header) NVoxels() int {
	return int(h.Nx) * int(h.Ny) * int(h.Nz) * int(h.Nf)
}

// NBytes returns the decoded size in bytes.
func (h Header) NBytes() int {
	return h.NVoxels() * h.Type.Size()
}

// Shuffled reports whether the payload is byte-shuffled.
func (h Header) Shuffled() bool { return h.Flags&FlagShuffle != 0 }

// Lossless reports whether every element bit was retained.
func (h Header) Lossless() bool {
	return h.Prec == 0 || int(h.Prec) == h.Type.Bits()
}

// ReadHeader parses the header at the start of stream. It never looks at
// the payload.
func ReadHeader(stream []byte) (Header, error) {
	var h Header
	if len(stream) < HeaderSize {
		return Header{}, &HeaderParseError{
			Reason: fmt.Sprintf("stream has %d bytes, header needs %d", len(stream), HeaderSize),
			Err:    ErrTruncated,
		}
	}
	raw := stream[:HeaderSize]
	r := common.NewReader(raw)

	magic, _ := r.ReadBytes(4)
	if !bytes.Equal(magic, Magic[:]) {
		return Header{}, &HeaderParseError{Reason: fmt.Sprintf("magic %q", magic), Err: ErrBadMagic}
	}
	// Checksum before fields: a damaged header must not surface as a bogus shape.
	if sum := headerChecksum(raw[:HeaderSize-4]); sum != binary.LittleEndian.Uint32(raw[HeaderSize-4:]) {
		return Header{}, &HeaderParseError{Reason: "header checksum", Err: ErrChecksum}
	}

	major, _ := r.ReadUint8()
	minor, _ := r.ReadUint8()
	if major != VersionMajor {
		return Header{}, &HeaderParseError{Reason: fmt.Sprintf("version %d.%d", major, minor), Err: ErrVersion}
	}
	typ, _ := r.ReadUint8()
	h.Type = ElementType(typ)
	if h.Type != Float32 && h.Type != Float64 {
		return Header{}, &HeaderParseError{Reason: fmt.Sprintf("type %d", typ), Err: ErrElementType}
	}
	h.Prec, _ = r.ReadUint8()
	if int(h.Prec) > h.Type.Bits() {
		return Header{}, &HeaderParseError{
			Reason: fmt.Sprintf("precision %d exceeds %d bits of %s", h.Prec, h.Type.Bits(), h.Type),
			Err:    ErrPrecision,
		}
	}
	codec, _ := r.ReadUint8()
	h.Codec = Codec(codec)
	h.Flags, _ = r.ReadUint8()
	reserved, _ := r.ReadUint16()
	if h.Flags&^knownFlags != 0 || reserved != 0 {
		return Header{}, &HeaderParseError{Reason: fmt.Sprintf("flags %#x reserved %#x", h.Flags, reserved), Err: ErrFlags}
	}
	h.Nx, _ = r.ReadUint32()
	h.Ny, _ = r.ReadUint32()
	h.Nz, _ = r.ReadUint32()
	h.Nf, _ = r.ReadUint32()
	h.PayloadLen, _ = r.ReadUint64()
	h.PayloadSum, _ = r.ReadUint64()

	if !fitsInt(h) {
		return Header{}, &HeaderParseError{
			Reason: fmt.Sprintf("%dx%dx%dx%d %s elements", h.Nx, h.Ny, h.Nz, h.Nf, h.Type),
			Err:    ErrOverflow,
		}
	}
	return h, nil
}

// fitsInt reports whether the decoded size in bytes is addressable.
func fitsInt(h Header) bool {
	n := uint64(h.Type.Size())
	for _, d := range []uint32{h.Nx, h.Ny, h.Nz, h.Nf} {
		hi, lo := bits.Mul64(n, uint64(d))
		if hi != 0 || lo > math.MaxInt {
			return false
		}
		n = lo
	}
	return true
}

func headerChecksum(b []byte) uint32 {
	return uint32(xxhash.Sum64(b))
}
