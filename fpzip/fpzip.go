package fpzip

// Fpzip binds a stream to its parsed header. Accessors never re-read the
// stream; Decompress and Dekempress decode it afresh on every call.
type Fpzip struct {
	stream []byte
	header Header
	dec    *Decoder
}

// New parses the header of stream. The stream is borrowed, not copied, and
// must not be modified while the Fpzip is in use.
func New(stream []byte, opts ...Option) (*Fpzip, error) {
	dec := defaultDecoder
	if len(opts) > 0 {
		dec = NewDecoder(opts...)
	}
	h, err := dec.ReadHeader(stream)
	if err != nil {
		return nil, err
	}
	return &Fpzip{stream: stream, header: h, dec: dec}, nil
}

func (f *Fpzip) Header() Header { return f.header }
func (f *Fpzip) Type() ElementType { return f.header.Type }
func (f *Fpzip) Prec() int { return int(f.header.Prec) }
func (f *Fpzip) Nx() int { return int(f.header.Nx) }
func (f *Fpzip) Ny() int { return int(f.header.Ny) }
func (f *Fpzip) Nz() int { return int(f.header.Nz) }
func (f *Fpzip) Nf() int { return int(f.header.Nf) }
func (f *Fpzip) NVoxels() int { return f.header.NVoxels() }
func (f *Fpzip) NBytes() int { return f.header.NBytes() }

// Decompress decodes the stream into dst.
func (f *Fpzip) Decompress(dst []byte) error {
	_, err := f.dec.Decode(f.stream, dst)
	return err
}

// Dekempress decodes the stream into dst and undoes kempression.
func (f *Fpzip) Dekempress(dst []byte) error {
	_, err := f.dec.Dekempress(f.stream, dst)
	return err
}
