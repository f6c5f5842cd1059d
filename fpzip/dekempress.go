package fpzip

import (
	"encoding/binary"
	"math"
)

// Bias is the constant added to every element before kempression.
const Bias = 2.0

// Dekempress decodes stream into dst with the default Decoder and then
// undoes kempression in place.
func Dekempress(stream, dst []byte) (Header, error) {
	return defaultDecoder.Dekempress(stream, dst)
}

// Dekempress decodes stream into dst exactly like Decode and, only if that
// succeeds, subtracts Bias from every element and moves the volume from
// the kempressed layout to XYZC. It has no failure mode of its own.
func (d *Decoder) Dekempress(stream, dst []byte) (Header, error) {
	h, err := d.Decode(stream, dst)
	if err != nil {
		return Header{}, err
	}
	if missing := Unkempress(dst[:h.NBytes()], h); missing > 0 {
		d.logf("fpzip: %d stored planes lie outside the volume and were zero-filled", missing)
	}
	return h, nil
}

// KempressedOffset returns the element offset of the XY plane that holds
// channel c of slice z in a decoded kempressed volume.
func KempressedOffset(h Header, z, c int) int {
	plane := int(h.Nx) * int(h.Ny)
	return z * plane * (int(h.Nf) + c)
}

// CanonicalOffset returns the XYZC element offset of (x, y, z, c).
func CanonicalOffset(h Header, x, y, z, c int) int {
	nx, ny, nz := int(h.Nx), int(h.Ny), int(h.Nz)
	return x + nx*y + nx*ny*z + nx*ny*nz*c
}

// Unkempress debiases and reorders an already decoded volume held in
// buf[:h.NBytes()]. Stored planes that fall outside the volume, which
// happens when nf > 1 and nz > 2, are written as zeros. It returns the
// number of such planes.
func Unkempress(buf []byte, h Header) int {
	n := h.NBytes()
	Debias(buf[:n], h.Type)
	return permute(buf[:n], h)
}

// Debias subtracts Bias from every element of buf.
func Debias(buf []byte, t ElementType) {
	switch t {
	case Float32:
		for i := 0; i+4 <= len(buf); i += 4 {
			f := math.Float32frombits(binary.LittleEndian.Uint32(buf[i:]))
			binary.LittleEndian.PutUint32(buf[i:], math.Float32bits(f-Bias))
		}
	case Float64:
		for i := 0; i+8 <= len(buf); i += 8 {
			f := math.Float64frombits(binary.LittleEndian.Uint64(buf[i:]))
			binary.LittleEndian.PutUint64(buf[i:], math.Float64bits(f-Bias))
		}
	}
}

// permute copies every stored plane into a scratch volume at its
// canonical position and copies the result back over buf.
func permute(buf []byte, h Header) int {
	es := h.Type.Size()
	plane := int(h.Nx) * int(h.Ny)
	nvx := len(buf) / es
	if plane == 0 || nvx == 0 {
		return 0
	}
	scratch := make([]byte, len(buf))
	missing := 0
	for c := 0; c < int(h.Nf); c++ {
		for z := 0; z < int(h.Nz); z++ {
			src := KempressedOffset(h, z, c)
			dst := CanonicalOffset(h, 0, 0, z, c)
			if src+plane > nvx {
				missing++
				continue
			}
			copy(scratch[dst*es:(dst+plane)*es], buf[src*es:(src+plane)*es])
		}
	}
	copy(buf, scratch)
	return missing
}
