// Package rangeCoding is a static order-0 arithmetic coder over payload
// bytes. The frequency table travels with the data:
//
//	[length u32][256 x frequency u32][coded bits...]
package rangeCoding

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	"fpzkit/common"
)

const (
	symbols    = 256
	headerSize = 4 + symbols*4

	codeValueBits = 32
	topValue      = (uint64(1) << codeValueBits) - 1
	firstQtr      = topValue/4 + 1
	half          = firstQtr * 2
	thirdQtr      = firstQtr * 3

	// maxTotal keeps the cumulative total well inside a quarter range.
	maxTotal = 1 << 24
)

var errCorrupt = errors.New("rangeCoding: corrupt stream")

// encoder is a bit-oriented arithmetic encoder with pending-bit carry.
type encoder struct {
	low        uint64
	high       uint64
	pending    uint32
	bitBuffer  byte
	bitsFilled uint8
	out        []byte
}

func newEncoder(dst []byte) *encoder {
	return &encoder{high: topValue, out: dst}
}

func (e *encoder) encode(cumLow, cumHigh, total uint32) {
	rangeVal := e.high - e.low + 1
	e.high = e.low + (rangeVal*uint64(cumHigh))/uint64(total) - 1
	e.low = e.low + (rangeVal*uint64(cumLow))/uint64(total)

	for {
		switch {
		case e.high < half:
			e.outputBit(0)
		case e.low >= half:
			e.outputBit(1)
			e.low -= half
			e.high -= half
		case e.low >= firstQtr && e.high < thirdQtr:
			e.pending++
			e.low -= firstQtr
			e.high -= firstQtr
		default:
			return
		}
		e.low <<= 1
		e.high = (e.high << 1) | 1
	}
}

func (e *encoder) outputBit(bit uint32) {
	e.writeBit(bit)
	for e.pending > 0 {
		e.writeBit(bit ^ 1)
		e.pending--
	}
}

func (e *encoder) writeBit(bit uint32) {
	e.bitBuffer = (e.bitBuffer << 1) | byte(bit&1)
	e.bitsFilled++
	if e.bitsFilled == 8 {
		e.out = append(e.out, e.bitBuffer)
		e.bitBuffer = 0
		e.bitsFilled = 0
	}
}

// finish writes enough bits to disambiguate the final interval.
func (e *encoder) finish() []byte {
	e.pending++
	if e.low < firstQtr {
		e.outputBit(0)
	} else {
		e.outputBit(1)
	}
	if e.bitsFilled > 0 {
		e.out = append(e.out, e.bitBuffer<<(8-e.bitsFilled))
	}
	return e.out
}

type decoder struct {
	low  uint64
	high uint64
	code uint64
	in   []byte
	bitN int
}

func newDecoder(data []byte) *decoder {
	d := &decoder{high: topValue, in: data}
	for i := 0; i < codeValueBits; i++ {
		d.code = (d.code << 1) | uint64(d.readBit())
	}
	return d
}

// readBit returns zeros past the end of input, as the encoder's final
// flush relies on.
func (d *decoder) readBit() uint32 {
	byteIndex := d.bitN / 8
	d.bitN++
	if byteIndex >= len(d.in) {
		return 0
	}
	return uint32(d.in[byteIndex]>>(7-uint((d.bitN-1)%8))) & 1
}

func (d *decoder) decode(cum []uint32, total uint32) (byte, error) {
	rangeVal := d.high - d.low + 1
	value := ((d.code-d.low+1)*uint64(total) - 1) / rangeVal
	if value >= uint64(total) {
		return 0, errCorrupt
	}
	symbol := sort.Search(symbols, func(i int) bool {
		return uint64(cum[i+1]) > value
	})
	d.high = d.low + (rangeVal*uint64(cum[symbol+1]))/uint64(total) - 1
	d.low = d.low + (rangeVal*uint64(cum[symbol]))/uint64(total)

	for {
		switch {
		case d.high < half:
		case d.low >= half:
			d.low -= half
			d.high -= half
			d.code -= half
		case d.low >= firstQtr && d.high < thirdQtr:
			d.low -= firstQtr
			d.high -= firstQtr
			d.code -= firstQtr
		default:
			return byte(symbol), nil
		}
		d.low <<= 1
		d.high = (d.high << 1) | 1
		d.code = (d.code << 1) | uint64(d.readBit())
	}
}

// frequencies counts byte occurrences with +1 smoothing, scaled so the
// total never exceeds maxTotal.
func frequencies(data []byte) []uint32 {
	counts := make([]uint64, symbols)
	var total uint64
	for _, b := range data {
		counts[b]++
	}
	for _, c := range counts {
		total += c
	}
	freq := make([]uint32, symbols)
	for i, c := range counts {
		if total > maxTotal {
			c = c * maxTotal / total
		}
		freq[i] = uint32(c) + 1
	}
	return freq
}

func cumulative(freq []uint32) ([]uint32, uint32) {
	cum := make([]uint32, symbols+1)
	for i := 0; i < symbols; i++ {
		cum[i+1] = cum[i] + freq[i]
	}
	return cum, cum[symbols]
}

// Compress appends the range-coded form of src to dst.
func Compress(dst []byte, src []byte, width int) ([]byte, error) {
	if err := common.CheckLength(src, width); err != nil {
		return dst, err
	}
	freq := frequencies(src)
	cum, total := cumulative(freq)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(src)))
	for _, f := range freq {
		dst = binary.LittleEndian.AppendUint32(dst, f)
	}
	enc := newEncoder(dst)
	for _, b := range src {
		enc.encode(cum[b], cum[int(b)+1], total)
	}
	return enc.finish(), nil
}

// Decompress decodes src into dst, which must match the stored length.
func Decompress(dst []byte, src []byte, width int) error {
	if err := common.CheckLength(dst, width); err != nil {
		return err
	}
	if len(src) < headerSize {
		return fmt.Errorf("rangeCoding: input too short (%d bytes)", len(src))
	}
	if n := binary.LittleEndian.Uint32(src); uint64(n) != uint64(len(dst)) {
		return fmt.Errorf("rangeCoding: stream holds %d bytes, want %d", n, len(dst))
	}
	freq := make([]uint32, symbols)
	var sum uint64
	for i := range freq {
		f := binary.LittleEndian.Uint32(src[4+i*4:])
		if f == 0 {
			return fmt.Errorf("rangeCoding: zero frequency for symbol %d", i)
		}
		freq[i] = f
		sum += uint64(f)
	}
	if sum > maxTotal+symbols {
		return fmt.Errorf("rangeCoding: frequency total %d exceeds %d", sum, maxTotal+symbols)
	}
	cum, total := cumulative(freq)
	d := newDecoder(src[headerSize:])
	for i := range dst {
		b, err := d.decode(cum, total)
		if err != nil {
			return err
		}
		dst[i] = b
	}
	return nil
}
