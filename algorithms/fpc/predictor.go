package fpc

// fcmPredictor predicts the next word from a hash of recent words.
type fcmPredictor struct {
	table []uint64
	hash  uint64
	mask  uint64
	shift uint
}

func newFcmPredictor(tableBits, wbits int) *fcmPredictor {
	return &fcmPredictor{
		table: make([]uint64, 1<<tableBits),
		mask:  1<<uint(tableBits) - 1,
		shift: uint(wbits - 16),
	}
}

func (p *fcmPredictor) predict() uint64 {
	return p.table[p.hash]
}

func (p *fcmPredictor) update(v uint64) {
	p.table[p.hash] = v
	p.hash = ((p.hash << 6) ^ (v >> p.shift)) & p.mask
}

// dfcmPredictor predicts the next stride from a hash of recent strides.
type dfcmPredictor struct {
	table []uint64
	hash  uint64
	last  uint64
	mask  uint64
	wmask uint64
	shift uint
}

func newDfcmPredictor(tableBits, wbits int) *dfcmPredictor {
	return &dfcmPredictor{
		table: make([]uint64, 1<<tableBits),
		mask:  1<<uint(tableBits) - 1,
		wmask: mask(wbits),
		shift: uint(wbits - 24),
	}
}

func (p *dfcmPredictor) predict() uint64 {
	return (p.table[p.hash] + p.last) & p.wmask
}

func (p *dfcmPredictor) update(v uint64) {
	delta := (v - p.last) & p.wmask
	p.table[p.hash] = delta
	p.hash = ((p.hash << 2) ^ (delta >> p.shift)) & p.mask
	p.last = v
}
