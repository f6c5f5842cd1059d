package fpzip

import (
	"fmt"
	"log"
	"maps"

	"github.com/cespare/xxhash/v2"

	"fpzkit/common"
)

// Decoder decodes streams into caller buffers. It holds configuration
// only and is safe for concurrent use.
type Decoder struct {
	codecs   map[Codec]codecEntry
	logger   *log.Logger
	maxBytes int
}

// NewDecoder returns a Decoder with the built-in codecs.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{codecs: maps.Clone(registry)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var defaultDecoder = NewDecoder()

// Decompress decodes stream into dst with the default Decoder.
func Decompress(stream, dst []byte) (Header, error) {
	return defaultDecoder.Decode(stream, dst)
}

// ReadHeader parses the stream header. It is the same as the package
// function and exists so a configured Decoder can trace it.
func (d *Decoder) ReadHeader(stream []byte) (Header, error) {
	h, err := ReadHeader(stream)
	if err != nil {
		d.logf("fpzip: %v", err)
		return h, err
	}
	d.logf("fpzip: header %s prec=%d %dx%dx%dx%d codec=%s", h.Type, h.Prec, h.Nx, h.Ny, h.Nz, h.Nf, h.Codec)
	return h, nil
}

// Decode reads the header of stream, checks that dst can hold the volume
// and decodes the payload into dst[:h.NBytes()] in XYZC order. Bytes past
// h.NBytes() are never touched. On error the contents of dst are
// unspecified, except that a *BufferTooSmallError guarantees nothing was
// written.
func (d *Decoder) Decode(stream, dst []byte) (Header, error) {
	h, err := d.ReadHeader(stream)
	if err != nil {
		return Header{}, err
	}
	n := h.NBytes()
	if len(dst) < n {
		err := &BufferTooSmallError{Required: n, Actual: len(dst)}
		d.logf("%v", err)
		return Header{}, err
	}
	if err := d.decodePayload(h, stream[HeaderSize:], dst[:n:n]); err != nil {
		d.logf("%v", err)
		return Header{}, err
	}
	return h, nil
}

// decodePayload is the decode primitive: it verifies the payload framing,
// runs the codec and checks the result against the header.
func (d *Decoder) decodePayload(h Header, payload, dst []byte) error {
	if uint64(len(payload)) != h.PayloadLen {
		return &DecodeError{
			Reason: fmt.Sprintf("header declares %d payload bytes, stream has %d", h.PayloadLen, len(payload)),
			Err:    ErrLength,
		}
	}
	if sum := xxhash.Sum64(payload); sum != h.PayloadSum {
		return &DecodeError{Reason: "payload checksum", Err: ErrChecksum}
	}
	if len(dst) == 0 {
		return nil
	}
	entry, ok := d.codecs[h.Codec]
	if !ok {
		return &DecodeError{Reason: fmt.Sprintf("codec id %d", uint8(h.Codec)), Err: ErrUnknownCodec}
	}

	width := h.Type.Size()
	out := dst
	if h.Shuffled() {
		out = make([]byte, len(dst))
	}
	if err := runCodec(entry.decompress, out, payload, width); err != nil {
		return &DecodeError{Reason: entry.name + " payload", Err: err}
	}
	if h.Shuffled() {
		common.Unshuffle(dst, out, width)
	}
	if i, ok := checkPrecision(dst, h); !ok {
		return &DecodeError{
			Reason: fmt.Sprintf("element %d has bits below precision %d", i, h.Prec),
			Err:    ErrPrecision,
		}
	}
	d.logf("fpzip: decoded %d %s elements (%s)", h.NVoxels(), h.Type, entry.name)
	return nil
}

// runCodec turns a panic inside a codec into an error.
func runCodec(fn DecompressFunc, dst, src []byte, width int) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("codec panicked: %v", p)
		}
	}()
	return fn(dst, src, width)
}

// checkPrecision verifies that a lossy stream only produced elements
// whose bits below the retained precision are zero. It returns the index
// of the first offending element.
func checkPrecision(buf []byte, h Header) (int, bool) {
	if h.Lossless() {
		return 0, true
	}
	width := h.Type.Size()
	low := uint64(1)<<uint(h.Type.Bits()-int(h.Prec)) - 1
	for i := 0; i < len(buf)/width; i++ {
		if common.Word(buf, i, width)&low != 0 {
			return i, false
		}
	}
	return 0, true
}

func (d *Decoder) logf(format string, args ...any) {
	if d.logger != nil {
		d.logger.Printf(format, args...)
	}
}
