package calc

// fifo simulates one К145ИР2 serial shift-register chip: a 252-word,
// 4-bit delay line with an input and output latch and a cycle counter.
type fifo struct {
	data  [fifoNwords]uint8
	in    uint8
	out   uint8
	cycle int
}

// step latches out to the word at the current cycle slot, overwrites
// that slot with in, and advances the cycle counter, wrapping at
// fifoNwords. This is the chip's only operation; it never fails.
func (f *fifo) step() {
	f.out = f.data[f.cycle]
	f.data[f.cycle] = f.in
	f.cycle++
	if f.cycle >= fifoNwords {
		f.cycle = 0
	}
}
