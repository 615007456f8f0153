package audio

// blockAssembler regroups arbitrarily sized callback deliveries into
// fixed-size blocks. Each completed block is handed to emit as a fresh
// slice, so the callback's buffer is never retained.
type blockAssembler struct {
	size    int
	pending []float32
	emit    func([]float32)
}

func newBlockAssembler(size int, emit func([]float32)) *blockAssembler {
	return &blockAssembler{
		size:    size,
		pending: make([]float32, 0, size),
		emit:    emit,
	}
}

func (a *blockAssembler) push(in []float32) {
	for len(in) > 0 {
		need := a.size - len(a.pending)
		if need > len(in) {
			need = len(in)
		}
		a.pending = append(a.pending, in[:need]...)
		in = in[need:]

		if len(a.pending) == a.size {
			block := make([]float32, a.size)
			copy(block, a.pending)
			a.pending = a.pending[:0]
			a.emit(block)
		}
	}
}
