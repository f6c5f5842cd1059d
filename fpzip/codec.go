package fpzip

import (
	"fmt"
	"sort"

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
)

// Codec identifies the payload coder recorded in a stream header.
type Codec uint8

const (
	CodecRaw Codec = iota
	CodecFPC
	CodecGorilla
	CodecZstd
	CodecSnappy
	CodecLZ4
	CodecXZ
	CodecBrotli
	CodecFSE
	CodecHuffman
	CodecSimple8b
	CodecFPCStream
	CodecRange
	CodecChimp128
	CodecRLE
)

// DecompressFunc decodes a payload into dst, which it must fill exactly.
// width is the element size in bytes.
type DecompressFunc func(dst, src []byte, width int) error

type codecEntry struct {
	name       string
	decompress DecompressFunc
}

// registry maps codec ids to payload decoders.
var registry = map[Codec]codecEntry{
	CodecRaw:       {"raw", decompressRaw},
	CodecFPC:       {"fpc", fpc.Decompress},
	CodecGorilla:   {"gorilla", gorillaz.Decompress},
	CodecZstd:      {"zstd", zstd.Decompress},
	CodecSnappy:    {"snappy", snappy.Decompress},
	CodecLZ4:       {"lz4", lz4.Decompress},
	CodecXZ:        {"xz", xz.Decompress},
	CodecBrotli:    {"brotli", brotli.Decompress},
	CodecFSE:       {"fse", ans.Decompress},
	CodecHuffman:   {"huffman", huffmanLib.Decompress},
	CodecSimple8b:  {"simple8b", simple8b.Decompress},
	CodecFPCStream: {"fpcstream", fpcstream.Decompress},
	CodecRange:     {"range", rangeCoding.Decompress},
	CodecChimp128:  {"chimp128", chimp128.Decompress},
	CodecRLE:       {"rle", rle.Decompress},
}

func (c Codec) String() string {
	if e, ok := registry[c]; ok {
		return e.name
	}
	return fmt.Sprintf("Codec(%d)", uint8(c))
}

// Codecs lists the built-in codec ids in ascending order.
func Codecs() []Codec {
	out := make([]Codec, 0, len(registry))
	for c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseCodec looks a codec up by name.
func ParseCodec(name string) (Codec, error) {
	for c, e := range registry {
		if e.name == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
}

// LookupCodec returns the built-in decoder for c.
func LookupCodec(c Codec) (DecompressFunc, bool) {
	e, ok := registry[c]
	return e.decompress, ok
}

func decompressRaw(dst, src []byte, width int) error {
	if err := common.CheckLength(dst, width); err != nil {
		return err
	}
	return common.CopyExact(dst, src)
}
