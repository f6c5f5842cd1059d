package fpzip

import "log"

// Option configures a Decoder.
type Option func(*Decoder)

// WithLogger traces each decode phase to l.
func WithLogger(l *log.Logger) Option {
	return func(d *Decoder) {
		d.logger = l
	}
}

// WithMaxBytes caps the allocation made by DecodeVolume. Zero means no cap.
func WithMaxBytes(n int) Option {
	return func(d *Decoder) {
		if n >= 0 {
			d.maxBytes = n
		}
	}
}

// WithCodec registers fn as the decoder for codec c, replacing any
// built-in entry for this Decoder only.
func WithCodec(c Codec, name string, fn DecompressFunc) Option {
	return func(d *Decoder) {
		d.codecs[c] = codecEntry{name: name, decompress: fn}
	}
}
