// Package chimp128 implements Chimp128 XOR compression. Each word is
// XORed either with its predecessor or with one of the previous 128 words
// that shares its low bits, whichever leaves more trailing zeros.
//
// Words are handled as 64-bit values; float32 elements are zero-extended.
// Layout: [value count, 64 bits][first word, 64 bits][coded words...].
// Each coded word starts with a 2-bit flag:
//
//	00 idx          same as stored word idx
//	01 idx lead sig XOR with stored word idx, sig meaningful bits
//	10              XOR with the previous word, previous leading zeros
//	11 lead         XOR with the previous word, new leading zeros
package chimp128

import (
	"fmt"
	"math"
	"math/bits"

	"fpzkit/common"
)

const (
	previousValues     = 128
	previousValuesLog2 = 7
	threshold          = 6 + previousValuesLog2
	setLsb             = 1<<(threshold+1) - 1

	flagZeroSize = previousValuesLog2 + 2
	flagOneSize  = previousValuesLog2 + 11
)

// leadingRepresentation maps a leading-zero count to its 3-bit code and
// leadingRound to the count that code stands for.
var leadingRepresentation = [64]uint8{
	0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 1, 1, 2, 2, 2, 2,
	3, 3, 4, 4, 5, 5, 6, 6,
	7, 7, 7, 7, 7, 7, 7, 7,
	7, 7, 7, 7, 7, 7, 7, 7,
	7, 7, 7, 7, 7, 7, 7, 7,
	7, 7, 7, 7, 7, 7, 7, 7,
	7, 7, 7, 7, 7, 7, 7, 7,
}

var leadingRound = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	8, 8, 8, 8, 12, 12, 12, 12,
	16, 16, 18, 18, 20, 20, 22, 22,
	24, 24, 24, 24, 24, 24, 24, 24,
	24, 24, 24, 24, 24, 24, 24, 24,
	24, 24, 24, 24, 24, 24, 24, 24,
	24, 24, 24, 24, 24, 24, 24, 24,
	24, 24, 24, 24, 24, 24, 24, 24,
}

var leadingDecode = [8]int{0, 8, 12, 16, 18, 20, 22, 24}

type encoder struct {
	out                *common.BitWriter
	stored             [previousValues]uint64
	indices            []int
	index              int
	storedLeadingZeros int
}

func newEncoder(dst []byte) *encoder {
	return &encoder{
		out:                common.NewBitWriter(dst),
		indices:            make([]int, setLsb+1),
		storedLeadingZeros: math.MaxInt32,
	}
}

func (e *encoder) writeFirst(v uint64) {
	e.stored[0] = v
	e.out.WriteBits(v, 64)
	e.indices[int(v&setLsb)] = 0
}

func (e *encoder) add(v uint64) {
	key := int(v & setLsb)
	var xor uint64
	var prevIndex int
	trailingZeros := 0
	currIndex := e.indices[key]

	if e.index-currIndex < previousValues {
		tempXor := v ^ e.stored[currIndex%previousValues]
		trailingZeros = bits.TrailingZeros64(tempXor)
		if trailingZeros > threshold {
			prevIndex = currIndex % previousValues
			xor = tempXor
		} else {
			prevIndex = e.index % previousValues
			xor = e.stored[prevIndex] ^ v
		}
	} else {
		prevIndex = e.index % previousValues
		xor = e.stored[prevIndex] ^ v
	}

	switch {
	case xor == 0:
		e.out.WriteBits(uint64(prevIndex), flagZeroSize)
	case trailingZeros > threshold:
		leadingZeros := leadingRound[bits.LeadingZeros64(xor)]
		sig := 64 - leadingZeros - trailingZeros
		flag := 512*(previousValues+prevIndex) + 64*int(leadingRepresentation[leadingZeros]) + sig
		e.out.WriteBits(uint64(flag), flagOneSize)
		e.out.WriteBits(xor>>uint(trailingZeros), sig)
		e.storedLeadingZeros = 65
	default:
		leadingZeros := leadingRound[bits.LeadingZeros64(xor)]
		if leadingZeros == e.storedLeadingZeros {
			e.out.WriteBits(0b10, 2)
		} else {
			e.storedLeadingZeros = leadingZeros
			e.out.WriteBits(24+uint64(leadingRepresentation[leadingZeros]), 5)
		}
		e.out.WriteBits(xor, 64-leadingZeros)
	}

	e.index++
	e.stored[e.index%previousValues] = v
	e.indices[key] = e.index
}

// Compress appends the Chimp128 encoding of the width-byte words in src.
func Compress(dst []byte, src []byte, width int) ([]byte, error) {
	if err := common.CheckLength(src, width); err != nil {
		return dst, err
	}
	n := len(src) / width
	e := newEncoder(dst)
	e.out.WriteBits(uint64(n), 64)
	for i := 0; i < n; i++ {
		v := common.Word(src, i, width)
		if i == 0 {
			e.writeFirst(v)
			continue
		}
		e.add(v)
	}
	return e.out.Bytes(), nil
}

// Decompress decodes src into dst, which must hold exactly the encoded
// number of words.
func Decompress(dst []byte, src []byte, width int) error {
	if err := common.CheckLength(dst, width); err != nil {
		return err
	}
	in := common.NewBitReader(src)
	size, err := in.ReadBits(64)
	if err != nil {
		return fmt.Errorf("chimp128: reading count: %w", err)
	}
	if size != uint64(len(dst)/width) {
		return fmt.Errorf("chimp128: stream holds %d values, want %d", size, len(dst)/width)
	}
	if size == 0 {
		return nil
	}

	var stored [previousValues]uint64
	current := 0
	storedLeadingZeros := 0
	val, err := in.ReadBits(64)
	if err != nil {
		return fmt.Errorf("chimp128: first value: %w", err)
	}
	stored[0] = val

	for i := 0; ; i++ {
		if width < 8 && val>>(uint(width)*8) != 0 {
			return fmt.Errorf("chimp128: value %d does not fit %d bytes", i, width)
		}
		common.PutWord(dst, i, width, val)
		if i+1 == int(size) {
			return nil
		}

		flag, err := in.ReadBits(2)
		if err != nil {
			return fmt.Errorf("chimp128: value %d: %w", i+1, err)
		}
		switch flag {
		case 0b11:
			lead, err := in.ReadBits(3)
			if err != nil {
				return fmt.Errorf("chimp128: value %d: %w", i+1, err)
			}
			storedLeadingZeros = leadingDecode[lead]
			fallthrough
		case 0b10:
			xor, err := in.ReadBits(64 - storedLeadingZeros)
			if err != nil {
				return fmt.Errorf("chimp128: value %d: %w", i+1, err)
			}
			val ^= xor
		case 0b01:
			temp, err := in.ReadBits(previousValuesLog2 + 9)
			if err != nil {
				return fmt.Errorf("chimp128: value %d: %w", i+1, err)
			}
			index := temp >> 9
			storedLeadingZeros = leadingDecode[(temp>>6)&0b111]
			sig := int(temp & 0b111111)
			if sig == 0 {
				sig = 64
			}
			trailing := 64 - sig - storedLeadingZeros
			if trailing < 0 {
				return fmt.Errorf("chimp128: value %d: %d meaningful bits after %d leading zeros", i+1, sig, storedLeadingZeros)
			}
			xor, err := in.ReadBits(sig)
			if err != nil {
				return fmt.Errorf("chimp128: value %d: %w", i+1, err)
			}
			val = stored[index] ^ xor<<uint(trailing)
		default:
			index, err := in.ReadBits(previousValuesLog2)
			if err != nil {
				return fmt.Errorf("chimp128: value %d: %w", i+1, err)
			}
			val = stored[index]
		}
		current = (current + 1) % previousValues
		stored[current] = val
	}
}
