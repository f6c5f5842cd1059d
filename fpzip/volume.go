package fpzip

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Volume is a decoded stream together with its header.
type Volume struct {
	Header Header
	Data   []byte // exactly Header.NBytes() bytes, XYZC order
}

// DecodeVolume allocates a buffer sized from the header and decodes
// stream into it, dekempressing when asked.
func DecodeVolume(stream []byte, dekempress bool) (*Volume, error) {
	return defaultDecoder.DecodeVolume(stream, dekempress)
}

func (d *Decoder) DecodeVolume(stream []byte, dekempress bool) (*Volume, error) {
	h, err := d.ReadHeader(stream)
	if err != nil {
		return nil, err
	}
	if d.maxBytes > 0 && h.NBytes() > d.maxBytes {
		return nil, fmt.Errorf("fpzip: %d-byte volume, limit %d: %w", h.NBytes(), d.maxBytes, ErrTooLarge)
	}
	buf := make([]byte, h.NBytes())
	if dekempress {
		h, err = d.Dekempress(stream, buf)
	} else {
		h, err = d.Decode(stream, buf)
	}
	if err != nil {
		return nil, err
	}
	return &Volume{Header: h, Data: buf}, nil
}

// Len returns the number of elements.
func (v *Volume) Len() int { return v.Header.NVoxels() }

// Float32s returns a copy of the elements, or nil for a float64 volume.
func (v *Volume) Float32s() []float32 {
	if v.Header.Type != Float32 {
		return nil
	}
	out := make([]float32, v.Len())
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(v.Data[i*4:]))
	}
	return out
}

// Float64s returns a copy of the elements, or nil for a float32 volume.
func (v *Volume) Float64s() []float64 {
	if v.Header.Type != Float64 {
		return nil
	}
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(v.Data[i*8:]))
	}
	return out
}

// At returns element (x, y, z, c) widened to float64. It panics if a
// coordinate lies outside the volume.
func (v *Volume) At(x, y, z, c int) float64 {
	h := v.Header
	if !inRange(x, h.Nx) || !inRange(y, h.Ny) || !inRange(z, h.Nz) || !inRange(c, h.Nf) {
		panic(fmt.Sprintf("fpzip: element (%d, %d, %d, %d) outside %dx%dx%dx%d volume", x, y, z, c, h.Nx, h.Ny, h.Nz, h.Nf))
	}
	i := CanonicalOffset(h, x, y, z, c)
	if v.Header.Type == Float32 {
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(v.Data[i*4:])))
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(v.Data[i*8:]))
}

func inRange(i int, n uint32) bool {
	return i >= 0 && uint64(i) < uint64(n)
}
