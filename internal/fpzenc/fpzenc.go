// Package fpzenc writes fpz streams. The fpzip package only decodes; this
// is used by the command-line tool and by test fixtures.
package fpzenc

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"fpzkit/algorithms/ans"
	"fpzkit/algorithms/brotli"
	"fpzkit/algorithms/chimp128"
	"fpzkit/algorithms/fpc"
	"fpzkit/algorithms/fpcstream"
	"fpzkit/algorithms/gorillaz"
	"fpzkit/algorithms/huffmanLib"
	"fpzkit/algorithms/lz4"
	"fpzkit/algorithms/rangeCoding"
	"fpzkit/algorithms/rle"
	"fpzkit/algorithms/simple8b"
	"fpzkit/algorithms/snappy"
	"fpzkit/algorithms/xz"
	"fpzkit/algorithms/zstd"
	"fpzkit/common"
	"fpzkit/fpzip"
)

// CompressFunc appends the encoding of src to dst.
type CompressFunc func(dst, src []byte, width int) ([]byte, error)

// Compressors holds the encoder for every built-in codec.
var Compressors = map[fpzip.Codec]CompressFunc{
	fpzip.CodecRaw:       compressRaw,
	fpzip.CodecFPC:       fpc.Compress,
	fpzip.CodecGorilla:   gorillaz.Compress,
	fpzip.CodecZstd:      zstd.Compress,
	fpzip.CodecSnappy:    snappy.Compress,
	fpzip.CodecLZ4:       lz4.Compress,
	fpzip.CodecXZ:        xz.Compress,
	fpzip.CodecBrotli:    brotli.Compress,
	fpzip.CodecFSE:       ans.Compress,
	fpzip.CodecHuffman:   huffmanLib.Compress,
	fpzip.CodecSimple8b:  simple8b.Compress,
	fpzip.CodecFPCStream: fpcstream.Compress,
	fpzip.CodecRange:     rangeCoding.Compress,
	fpzip.CodecChimp128:  chimp128.Compress,
	fpzip.CodecRLE:       rle.Compress,
}

func compressRaw(dst, src []byte, width int) ([]byte, error) {
	if err := common.CheckLength(src, width); err != nil {
		return dst, err
	}
	return append(dst, src...), nil
}

// Shape describes the stream to build.
type Shape struct {
	Type    fpzip.ElementType
	Prec    uint8
	Codec   fpzip.Codec
	Shuffle bool

	Nx, Ny, Nz, Nf uint32
}

// NVoxels returns the element count of the shape.
func (s Shape) NVoxels() int {
	return int(s.Nx) * int(s.Ny) * int(s.Nz) * int(s.Nf)
}

// Encode builds a stream whose decoded form is raw, the little-endian
// element bytes in XYZC order.
func Encode(s Shape, raw []byte) ([]byte, error) {
	width := s.Type.Size()
	if want := s.NVoxels() * width; len(raw) != want {
		return nil, fmt.Errorf("fpzenc: %d raw bytes for a %d-byte shape", len(raw), want)
	}
	compress, ok := Compressors[s.Codec]
	if !ok {
		return nil, fmt.Errorf("fpzenc: no compressor for %s", s.Codec)
	}
	src := raw
	flags := uint8(0)
	if s.Shuffle {
		src = make([]byte, len(raw))
		common.Shuffle(src, raw, width)
		flags |= fpzip.FlagShuffle
	}
	payload, err := compress(nil, src, width)
	if err != nil {
		return nil, fmt.Errorf("fpzenc: %s: %w", s.Codec, err)
	}
	stream := AppendHeader(nil, s, flags, payload)
	return append(stream, payload...), nil
}

// EncodeValues is Encode over float64 values narrowed to s.Type. Values
// are truncated to s.Prec leading bits when Prec is set.
func EncodeValues(s Shape, values []float64) ([]byte, error) {
	return Encode(s, Truncate(Pack(s.Type, values), s.Type, s.Prec))
}

// AppendHeader appends a valid header for s describing payload.
func AppendHeader(dst []byte, s Shape, flags uint8, payload []byte) []byte {
	start := len(dst)
	dst = append(dst, fpzip.Magic[:]...)
	dst = append(dst, fpzip.VersionMajor, fpzip.VersionMinor, uint8(s.Type), s.Prec, uint8(s.Codec), flags, 0, 0)
	for _, d := range []uint32{s.Nx, s.Ny, s.Nz, s.Nf} {
		dst = binary.LittleEndian.AppendUint32(dst, d)
	}
	dst = binary.LittleEndian.AppendUint64(dst, uint64(len(payload)))
	dst = binary.LittleEndian.AppendUint64(dst, xxhash.Sum64(payload))
	return binary.LittleEndian.AppendUint32(dst, uint32(xxhash.Sum64(dst[start:])))
}

// Pack stores values as little-endian elements of type t.
func Pack(t fpzip.ElementType, values []float64) []byte {
	out := make([]byte, 0, len(values)*t.Size())
	for _, v := range values {
		if t == fpzip.Float32 {
			out = binary.LittleEndian.AppendUint32(out, math.Float32bits(float32(v)))
		} else {
			out = binary.LittleEndian.AppendUint64(out, math.Float64bits(v))
		}
	}
	return out
}

// Truncate clears all but the prec leading bits of every element in raw.
// A prec of 0 or the full width leaves raw unchanged.
func Truncate(raw []byte, t fpzip.ElementType, prec uint8) []byte {
	if prec == 0 || int(prec) >= t.Bits() {
		return raw
	}
	width := t.Size()
	mask := ^uint64(0) << (t.Bits() - int(prec))
	for i := 0; i < len(raw)/width; i++ {
		common.PutWord(raw, i, width, common.Word(raw, i, width)&mask)
	}
	return raw
}
