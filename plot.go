package main

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"fpzkit/fpzip"
)

// planeGrid exposes one XY plane of a volume as a plotter.GridXYZ.
type planeGrid struct {
	v    *fpzip.Volume
	z, c int
}

func (g planeGrid) Dims() (c, r int)   { return int(g.v.Header.Nx), int(g.v.Header.Ny) }
func (g planeGrid) Z(c, r int) float64 { return g.v.At(c, r, g.z, g.c) }
func (g planeGrid) X(c int) float64    { return float64(c) }
func (g planeGrid) Y(r int) float64    { return float64(r) }

// bounds returns the finite value range of the plane.
func (g planeGrid) bounds() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	cols, rows := g.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := g.Z(c, r)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi, lo <= hi
}

func plotPlane(v *fpzip.Volume, z, c int, out string) error {
	h := v.Header
	if z < 0 || z >= int(h.Nz) || c < 0 || c >= int(h.Nf) {
		return fmt.Errorf("plane z=%d c=%d is outside %dx%dx%dx%d", z, c, h.Nx, h.Ny, h.Nz, h.Nf)
	}
	if h.Nx < 2 || h.Ny < 2 {
		return fmt.Errorf("a %dx%d plane is too small to plot", h.Nx, h.Ny)
	}
	g := planeGrid{v: v, z: z, c: c}
	lo, hi, ok := g.bounds()
	if !ok {
		return fmt.Errorf("plane z=%d c=%d has no finite values", z, c)
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("z=%d c=%d (%s)", z, c, h.Type)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	hm := plotter.NewHeatMap(g, palette.Heat(12, 1))
	hm.Min, hm.Max = lo, hi
	hm.NaN = palette.Heat(12, 1).Colors()[0]
	p.Add(hm)
	return p.Save(6*vg.Inch, 6*vg.Inch, out)
}
