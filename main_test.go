package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"fpzkit/common"
	"fpzkit/fpzip"
)

// writeCSV writes one value per row with a header line.
func writeCSV(t *testing.T, values []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "values.csv")
	data := "value\n" + strings.Join(values, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func encodeFixture(t *testing.T, extra ...string) string {
	t.Helper()
	in := writeCSV(t, []string{"2", "2.5", "3", "3.5", "4", "4.5", "5", "5.5"})
	out := filepath.Join(t.TempDir(), "vol.fpz")
	args := append([]string{"-encode", "-o", out, "-dims", "2x2x1x2", "-skip", "1"}, extra...)
	require.NoError(t, run(append(args, in), nil))
	return out
}

func TestEncodeThenPrint(t *testing.T) {
	for _, codec := range []string{"raw", "fpc", "brotli", "fse"} {
		path := encodeFixture(t, "-codec", codec, "-type", "float64")
		var out bytes.Buffer
		require.NoError(t, run([]string{path}, &out))
		require.Equal(t, "2 2.5 3 3.5 4 4.5 5 5.5\n", out.String(), codec)

		out.Reset()
		require.NoError(t, run([]string{"-n", "3", path}, &out))
		require.Equal(t, "2 2.5 3\n", out.String())
	}
}

func TestDekempressFlag(t *testing.T) {
	path := encodeFixture(t, "-shuffle")
	var out bytes.Buffer
	require.NoError(t, run([]string{"-dekempress", path}, &out))
	// nz=1: channel 1 starts at stored offset 0, so it repeats channel 0.
	require.Equal(t, "0 0.5 1 1.5 0 0.5 1 1.5\n", out.String())
}

func TestHeaderFlag(t *testing.T) {
	path := encodeFixture(t, "-codec", "xz", "-prec", "16")
	var out bytes.Buffer
	require.NoError(t, run([]string{"-header", path}, &out))

	var doc headerDoc
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &doc))
	require.Equal(t, "float32", doc.Type)
	require.Equal(t, uint8(16), doc.Prec)
	require.Equal(t, "xz", doc.Codec)
	require.Equal(t, [4]uint32{2, 2, 1, 2}, doc.Dims)
	require.Equal(t, 8, doc.Voxels)
	require.Equal(t, 32, doc.Bytes)
	require.Contains(t, out.String(), "dims: [2, 2, 1, 2]")
}

func TestStatsFlag(t *testing.T) {
	path := encodeFixture(t)
	var out bytes.Buffer
	require.NoError(t, run([]string{"-stats", path}, &out))

	var st common.ValueStats
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &st))
	require.Equal(t, 8, st.Count)
	require.Equal(t, 2.0, st.Min)
	require.Equal(t, 5.5, st.Max)
	require.Equal(t, 3.75, st.Mean)
}

func TestPlotFlag(t *testing.T) {
	path := encodeFixture(t)
	png := filepath.Join(t.TempDir(), "plane.png")
	require.NoError(t, run([]string{"-plot", png, "-c", "1", path}, nil))
	info, err := os.Stat(png)
	require.NoError(t, err)
	require.NotZero(t, info.Size())

	require.Error(t, run([]string{"-plot", png, "-z", "1", path}, nil))
}

func TestRunErrors(t *testing.T) {
	fixture := encodeFixture(t)
	csv := writeCSV(t, []string{"1", "2", "3"})
	out := filepath.Join(t.TempDir(), "x.fpz")

	tests := []struct {
		name string
		args []string
	}{
		{"no input", nil},
		{"two inputs", []string{fixture, fixture}},
		{"missing file", []string{filepath.Join(t.TempDir(), "nope.fpz")}},
		{"not a stream", []string{csv}},
		{"max bytes", []string{"-max", "16", fixture}},
		{"encode without -o", []string{"-encode", "-dims", "3x1x1x1", csv}},
		{"bad dims", []string{"-encode", "-o", out, "-dims", "3x1x1", csv}},
		{"bad type", []string{"-encode", "-o", out, "-dims", "3x1x1x1", "-type", "int8", csv}},
		{"bad codec", []string{"-encode", "-o", out, "-dims", "3x1x1x1", "-codec", "zip", csv}},
		{"bad prec", []string{"-encode", "-o", out, "-dims", "3x1x1x1", "-prec", "40", csv}},
		{"too few values", []string{"-encode", "-o", out, "-dims", "4x1x1x1", csv}},
		{"fpcstream float32", []string{"-encode", "-o", out, "-dims", "3x1x1x1", "-codec", "fpcstream", csv}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, run(tc.args, &bytes.Buffer{}))
		})
	}

	err := run([]string{"-max", "16", fixture}, &bytes.Buffer{})
	require.ErrorIs(t, err, fpzip.ErrTooLarge)
}
