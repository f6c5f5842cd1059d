// Command fpzkit inspects, decodes and writes fpz volume streams.
//
//	fpzkit [-dekempress] [-header] [-stats] [-n N] file.fpz
//	fpzkit -plot out.png [-z Z] [-c C] [-dekempress] file.fpz
//	fpzkit -encode -o out.fpz -dims NXxNYxNZxNF [-type float32] [-codec zstd]
//	       [-prec P] [-shuffle] [-skip S] [-column K] values.csv
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"fpzkit/common"
	"fpzkit/fpzip"
	"fpzkit/internal/fpzenc"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("fpzkit: ")
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}
}

type options struct {
	dekempress bool
	header     bool
	stats      bool
	limit      int
	verbose    bool
	maxBytes   int

	plot string
	z, c int

	encode  bool
	out     string
	dims    string
	typ     string
	codec   string
	prec    uint
	shuffle bool
	skip    int
	column  int
}

func parseFlags(args []string) (*options, []string, error) {
	o := &options{}
	fs := flag.NewFlagSet("fpzkit", flag.ContinueOnError)
	fs.BoolVar(&o.dekempress, "dekempress", false, "debias and reorder kempressed volumes")
	fs.BoolVar(&o.header, "header", false, "print the header as YAML and stop")
	fs.BoolVar(&o.stats, "stats", false, "print value statistics as YAML instead of the values")
	fs.IntVar(&o.limit, "n", 0, "print at most n values (0 = all)")
	fs.BoolVar(&o.verbose, "v", false, "trace decode phases")
	fs.IntVar(&o.maxBytes, "max", 1<<30, "refuse volumes larger than this many bytes (0 = no limit)")
	fs.StringVar(&o.plot, "plot", "", "render plane -z of channel -c as a PNG heat map")
	fs.IntVar(&o.z, "z", 0, "z slice for -plot")
	fs.IntVar(&o.c, "c", 0, "channel for -plot")
	fs.BoolVar(&o.encode, "encode", false, "encode a CSV column into an fpz stream")
	fs.StringVar(&o.out, "o", "", "output file for -encode")
	fs.StringVar(&o.dims, "dims", "", "volume shape for -encode, NXxNYxNZxNF")
	fs.StringVar(&o.typ, "type", "float32", "element type for -encode: float32 or float64")
	fs.StringVar(&o.codec, "codec", "zstd", "payload codec for -encode: "+codecNames())
	fs.UintVar(&o.prec, "prec", 0, "leading bits to keep for -encode (0 = lossless)")
	fs.BoolVar(&o.shuffle, "shuffle", false, "byte-shuffle the payload for -encode")
	fs.IntVar(&o.skip, "skip", 0, "CSV records to skip for -encode")
	fs.IntVar(&o.column, "column", 0, "CSV column to read for -encode")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if fs.NArg() != 1 {
		return nil, nil, errors.New("expected exactly one input file")
	}
	return o, fs.Args(), nil
}

func run(args []string, stdout io.Writer) error {
	o, rest, err := parseFlags(args)
	if err != nil {
		return err
	}
	if o.encode {
		return encodeFile(o, rest[0])
	}

	stream, err := os.ReadFile(rest[0])
	if err != nil {
		return err
	}
	var opts []fpzip.Option
	if o.verbose {
		opts = append(opts, fpzip.WithLogger(log.Default()))
	}
	if o.maxBytes > 0 {
		opts = append(opts, fpzip.WithMaxBytes(o.maxBytes))
	}
	dec := fpzip.NewDecoder(opts...)

	if o.header {
		h, err := dec.ReadHeader(stream)
		if err != nil {
			return err
		}
		return writeYAML(stdout, newHeaderDoc(h))
	}

	v, err := dec.DecodeVolume(stream, o.dekempress)
	if err != nil {
		return err
	}
	switch {
	case o.plot != "":
		return plotPlane(v, o.z, o.c, o.plot)
	case o.stats:
		return writeYAML(stdout, common.AnalyzeValues(volumeValues(v)))
	default:
		return printValues(stdout, volumeValues(v), o.limit)
	}
}

// headerDoc is the YAML form of a header.
type headerDoc struct {
	Type         string    `yaml:"type"`
	Prec         uint8     `yaml:"prec"`
	Codec        string    `yaml:"codec"`
	Shuffle      bool      `yaml:"shuffle"`
	Dims         [4]uint32 `yaml:"dims,flow"`
	Voxels       int       `yaml:"voxels"`
	Bytes        int       `yaml:"bytes"`
	PayloadBytes uint64    `yaml:"payload_bytes"`
	PayloadSum   string    `yaml:"payload_xxhash"`
}

func newHeaderDoc(h fpzip.Header) headerDoc {
	return headerDoc{
		Type:         h.Type.String(),
		Prec:         h.Prec,
		Codec:        h.Codec.String(),
		Shuffle:      h.Shuffled(),
		Dims:         [4]uint32{h.Nx, h.Ny, h.Nz, h.Nf},
		Voxels:       h.NVoxels(),
		Bytes:        h.NBytes(),
		PayloadBytes: h.PayloadLen,
		PayloadSum:   fmt.Sprintf("%016x", h.PayloadSum),
	}
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func volumeValues(v *fpzip.Volume) []float64 {
	if f := v.Float64s(); f != nil {
		return f
	}
	f32 := v.Float32s()
	out := make([]float64, len(f32))
	for i, f := range f32 {
		out[i] = float64(f)
	}
	return out
}

func printValues(w io.Writer, values []float64, limit int) error {
	if limit > 0 && limit < len(values) {
		values = values[:limit]
	}
	bw := bufio.NewWriter(w)
	for i, v := range values {
		if i > 0 {
			bw.WriteByte(' ')
		}
		bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	bw.WriteByte('\n')
	return bw.Flush()
}

func encodeFile(o *options, in string) error {
	if o.out == "" {
		return errors.New("-encode needs -o")
	}
	s, err := parseShape(o)
	if err != nil {
		return err
	}
	n := s.NVoxels()
	values, err := common.ReadDataFromFile(in, n, o.skip, o.column)
	if err != nil {
		return err
	}
	if len(values) != n {
		return fmt.Errorf("%s: read %d values, shape %s needs %d", in, len(values), o.dims, n)
	}
	stream, err := fpzenc.EncodeValues(s, values)
	if err != nil {
		return err
	}
	return os.WriteFile(o.out, stream, 0o644)
}

func parseShape(o *options) (fpzenc.Shape, error) {
	var s fpzenc.Shape
	switch o.typ {
	case "float32":
		s.Type = fpzip.Float32
	case "float64":
		s.Type = fpzip.Float64
	default:
		return s, fmt.Errorf("unknown element type %q", o.typ)
	}
	if o.prec > uint(s.Type.Bits()) {
		return s, fmt.Errorf("precision %d exceeds %d bits", o.prec, s.Type.Bits())
	}
	s.Prec = uint8(o.prec)
	codec, err := fpzip.ParseCodec(o.codec)
	if err != nil {
		return s, err
	}
	s.Codec = codec
	s.Shuffle = o.shuffle

	parts := strings.Split(o.dims, "x")
	if len(parts) != 4 {
		return s, fmt.Errorf("-dims %q: want NXxNYxNZxNF", o.dims)
	}
	var dims [4]uint32
	for i, p := range parts {
		d, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return s, fmt.Errorf("-dims %q: %w", o.dims, err)
		}
		dims[i] = uint32(d)
	}
	s.Nx, s.Ny, s.Nz, s.Nf = dims[0], dims[1], dims[2], dims[3]
	return s, nil
}

func codecNames() string {
	var names []string
	for _, c := range fpzip.Codecs() {
		names = append(names, c.String())
	}
	return strings.Join(names, ", ")
}
