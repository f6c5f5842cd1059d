// Package fpcstream stores float64 payloads with the spenczar/fpc stream
// coder. float32 payloads are rejected: the coder only models 64-bit words.
//
// Layout: [value count u64][fpc stream]; an empty payload is the count
// alone. The fpc stream always holds an even number of values. An odd
// count is padded with one zero word, since the fpc reader cannot decode
// a block whose last pair is half empty.
package fpcstream

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/spenczar/fpc"

	"fpzkit/common"
)

// ErrWidth is returned for any element width other than 8.
var ErrWidth = errors.New("fpcstream: only float64 payloads are supported")

func Compress(dst []byte, src []byte, width int) ([]byte, error) {
	if err := common.CheckLength(src, width); err != nil {
		return dst, err
	}
	if width != 8 {
		return dst, ErrWidth
	}
	n := len(src) / 8
	dst = binary.LittleEndian.AppendUint64(dst, uint64(n))
	if n == 0 {
		return dst, nil
	}
	buf := bytes.NewBuffer(dst)
	w := fpc.NewWriter(buf)
	for i := 0; i < n; i++ {
		if err := w.WriteFloat(math.Float64frombits(common.Word(src, i, 8))); err != nil {
			return dst, fmt.Errorf("fpcstream: %w", err)
		}
	}
	if n%2 == 1 {
		if err := w.WriteFloat(0); err != nil {
			return dst, fmt.Errorf("fpcstream: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return dst, fmt.Errorf("fpcstream: %w", err)
	}
	return buf.Bytes(), nil
}

func Decompress(dst []byte, src []byte, width int) (err error) {
	if err := common.CheckLength(dst, width); err != nil {
		return err
	}
	if width != 8 {
		return ErrWidth
	}
	r := common.NewReader(src)
	count, err := r.ReadUint64()
	if err != nil {
		return fmt.Errorf("fpcstream: reading count: %w", err)
	}
	n := len(dst) / 8
	if count != uint64(n) {
		return fmt.Errorf("fpcstream: stream holds %d values, want %d", count, n)
	}
	if n == 0 {
		if r.Remaining() != 0 {
			return fmt.Errorf("fpcstream: %d trailing bytes after empty stream", r.Remaining())
		}
		return nil
	}
	rest, _ := r.ReadBytes(r.Remaining())
	if len(rest) == 0 || rest[0] < 1 || int(rest[0]) > fpc.MaxCompression {
		return fmt.Errorf("fpcstream: missing or bad compression level")
	}

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("fpcstream: corrupt stream: %v", p)
		}
	}()
	fr := fpc.NewReader(zeroReadSafe{bytes.NewReader(rest)})
	for i := 0; i < n+n%2; i++ {
		f, err := fr.ReadFloat()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("fpcstream: stream ended after %d of %d values", i, n)
			}
			return fmt.Errorf("fpcstream: %w", err)
		}
		if i == n {
			if f != 0 || math.Signbit(f) {
				return fmt.Errorf("fpcstream: non-zero padding word")
			}
			break
		}
		common.PutWord(dst, i, 8, math.Float64bits(f))
	}
	if _, err := fr.ReadFloat(); !errors.Is(err, io.EOF) {
		if err == nil {
			return fmt.Errorf("fpcstream: stream holds more than %d values", n)
		}
		return fmt.Errorf("fpcstream: %w", err)
	}
	return nil
}

// zeroReadSafe answers empty reads with (0, nil) even at end of input.
// The fpc reader issues an empty read for a record whose residual is zero
// and treats io.EOF there as missing data.
type zeroReadSafe struct {
	r io.Reader
}

func (z zeroReadSafe) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return z.r.Read(p)
}
