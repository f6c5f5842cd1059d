package common

import (
	"math"
	"math/bits"
	"sort"
)

// ValueStats summarises a decoded volume or one channel of it.
type ValueStats struct {
	Count  int     `yaml:"count"`
	Finite int     `yaml:"finite"`
	NaN    int     `yaml:"nan"`
	Inf    int     `yaml:"inf"`
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
	Mean   float64 `yaml:"mean"`
	StdDev float64 `yaml:"std_dev"`
	Median float64 `yaml:"median"`
	Q1     float64 `yaml:"q1"`
	Q3     float64 `yaml:"q3"`

	ZeroCount   int     `yaml:"zero_count"`
	UniqueCount int     `yaml:"unique_count"`
	UniqueRatio float64 `yaml:"unique_ratio"`
	Entropy     float64 `yaml:"entropy"` // histogram entropy, bits

	AvgSetBits     float64 `yaml:"avg_set_bits"`
	ExponentRange  int     `yaml:"exponent_range"`
	CommonExponent int     `yaml:"common_exponent"`
}

// AnalyzeValues computes ValueStats over src. NaN and Inf are counted but
// excluded from the moments and quantiles.
func AnalyzeValues(src []float64) *ValueStats {
	st := &ValueStats{Count: len(src)}
	if len(src) == 0 {
		return st
	}

	finite := make([]float64, 0, len(src))
	unique := make(map[uint64]struct{})
	exponents := make(map[int]int)
	setBits := 0
	sum := 0.0
	for _, v := range src {
		b := math.Float64bits(v)
		unique[b] = struct{}{}
		switch {
		case math.IsNaN(v):
			st.NaN++
			continue
		case math.IsInf(v, 0):
			st.Inf++
			continue
		}
		if v == 0 {
			st.ZeroCount++
		}
		finite = append(finite, v)
		sum += v
		setBits += bits.OnesCount64(b)
		exponents[int((b>>52)&0x7FF)-1023]++
	}
	st.UniqueCount = len(unique)
	st.UniqueRatio = float64(st.UniqueCount) / float64(len(src))
	st.Finite = len(finite)
	if st.Finite == 0 {
		return st
	}

	st.Mean = sum / float64(st.Finite)
	sq := 0.0
	for _, v := range finite {
		d := v - st.Mean
		sq += d * d
	}
	st.StdDev = math.Sqrt(sq / float64(st.Finite))

	sort.Float64s(finite)
	st.Min = finite[0]
	st.Max = finite[len(finite)-1]
	st.Median = percentile(finite, 50)
	st.Q1 = percentile(finite, 25)
	st.Q3 = percentile(finite, 75)
	st.Entropy = histogramEntropy(finite, 100)

	st.AvgSetBits = float64(setBits) / float64(st.Finite)
	minExp, maxExp, best := math.MaxInt32, math.MinInt32, 0
	for e, n := range exponents {
		minExp = min(minExp, e)
		maxExp = max(maxExp, e)
		if n > best || (n == best && e < st.CommonExponent) {
			best = n
			st.CommonExponent = e
		}
	}
	st.ExponentRange = maxExp - minExp
	return st
}

// percentile interpolates linearly between the closest ranks of sorted.
func percentile(sorted []float64, p float64) float64 {
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	w := rank - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// histogramEntropy bins sorted finite values into equal-width buckets.
func histogramEntropy(sorted []float64, bins int) float64 {
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		return 0
	}
	hist := make([]int, bins)
	width := (hi - lo) / float64(bins)
	for _, v := range sorted {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		hist[i]++
	}
	entropy := 0.0
	for _, n := range hist {
		if n > 0 {
			p := float64(n) / float64(len(sorted))
			entropy -= p * math.Log2(p)
		}
	}
	return entropy
}
