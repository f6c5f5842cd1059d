// Package ans stores payloads with finite state entropy (tANS) coding.
// Input is cut into blocks; each block is written as
//
//	[flag u8][raw length u32][encoded length u32][encoded bytes]
//
// where flag selects stored, FSE or run-length (single repeated byte).
package ans

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/fse"

	"fpzkit/common"
)

const (
	blockSize = 32 << 10

	flagStored = 0
	flagFSE    = 1
	flagRLE    = 2
)

func Compress(dst []byte, src []byte, width int) ([]byte, error) {
	if err := common.CheckLength(src, width); err != nil {
		return dst, err
	}
	var s fse.Scratch
	for len(src) > 0 {
		n := min(blockSize, len(src))
		block := src[:n]
		src = src[n:]

		flag := byte(flagFSE)
		enc, err := fse.Compress(block, &s)
		switch {
		case errors.Is(err, fse.ErrUseRLE):
			flag, enc = flagRLE, block[:1]
		case errors.Is(err, fse.ErrIncompressible), err == nil && len(enc) == 0:
			flag, enc = flagStored, block
		case err != nil:
			return dst, fmt.Errorf("fse: %w", err)
		}
		dst = append(dst, flag)
		dst = common.AppendWord(dst, uint64(n), 4)
		dst = common.AppendWord(dst, uint64(len(enc)), 4)
		dst = append(dst, enc...)
	}
	return dst, nil
}

func Decompress(dst []byte, src []byte, width int) error {
	if err := common.CheckLength(dst, width); err != nil {
		return err
	}
	var s fse.Scratch
	s.DecompressLimit = blockSize
	r := common.NewReader(src)
	out := dst
	for r.Remaining() > 0 {
		flag, err := r.ReadUint8()
		if err != nil {
			return fmt.Errorf("fse: block header: %w", err)
		}
		rawLen, err := r.ReadUint32()
		if err != nil {
			return fmt.Errorf("fse: block header: %w", err)
		}
		encLen, err := r.ReadUint32()
		if err != nil {
			return fmt.Errorf("fse: block header: %w", err)
		}
		enc, err := r.ReadBytes(int(encLen))
		if err != nil {
			return fmt.Errorf("fse: block body: %w", err)
		}
		if int(rawLen) > len(out) || rawLen > blockSize {
			return fmt.Errorf("fse: block of %d bytes overruns output", rawLen)
		}
		block := out[:rawLen]
		switch flag {
		case flagStored:
			err = common.CopyExact(block, enc)
		case flagRLE:
			if len(enc) != 1 {
				return errors.New("fse: run-length block must hold one byte")
			}
			for i := range block {
				block[i] = enc[0]
			}
		case flagFSE:
			var dec []byte
			dec, err = fse.Decompress(enc, &s)
			if err == nil {
				err = common.CopyExact(block, dec)
			}
		default:
			err = fmt.Errorf("unknown block flag %d", flag)
		}
		if err != nil {
			return fmt.Errorf("fse: %w", err)
		}
		out = out[rawLen:]
	}
	if len(out) != 0 {
		return fmt.Errorf("fse: stream ended %d bytes short", len(out))
	}
	return nil
}
