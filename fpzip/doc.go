// Package fpzip decodes framed floating-point volumes and reverses the
// "kempression" transform applied to some of them before encoding.
//
// A stream is a 48-byte header followed by a payload produced by one of
// the codecs in fpzkit/algorithms. The header records the element type
// (float32 or float64), the retained precision and the four dimensions
// nx, ny, nz and nf (channels). Decoding writes little-endian IEEE-754
// elements into a caller-owned buffer in XYZC order: element (x, y, z, c)
// lives at x + nx*y + nx*ny*z + nx*ny*nz*c.
//
// # Decoding
//
//	h, err := fpzip.ReadHeader(stream)
//	dst := make([]byte, h.NBytes())
//	_, err = fpzip.Decompress(stream, dst)
//
// The destination is checked before anything is written; a short buffer
// yields a *BufferTooSmallError carrying the required size.
//
// # Dekempression
//
// Kempressed volumes store values in [0, 1] shifted up by 2.0 with the
// channel axis folded into Z. [Dekempress] decodes and then subtracts 2.0
// from every element and moves each stored XY plane to its canonical
// position (see [KempressedOffset] and [CanonicalOffset]).
//
// # Errors
//
// Failures are reported as *HeaderParseError, *BufferTooSmallError or
// *DecodeError. Each carries a Phase and wraps one of the package's
// sentinel errors for use with errors.Is. A destination buffer is
// unspecified after a failed call.
//
// Nothing is cached between calls and no call blocks; distinct
// (stream, destination) pairs may be decoded concurrently.
package fpzip
