package calc

// zeroROMSet builds a ROMSet of all-zero ChipROMs for the given variant.
// With every micro-instruction and macro-command zero, the ring only
// exercises its plumbing (fifo/port transfers); no micro-instruction
// writes R, M or ST, and M changes only through the port transfers.
// Useful for testing ring wiring without needing a real ROM
// dump.
func zeroROMSet(variant Variant) ROMSet {
	chips := make([]ChipROM, variant.NumPLMs())
	return ROMSet{Variant: variant, Chips: chips}
}

// fakeHost is a scriptable Host for tests: it replays a fixed keycode and
// records every Display call.
type fakeHost struct {
	keycode uint8
	rgd     int
	frames  [][3]int // [i, digit, dot]
	polls   int
}

func (h *fakeHost) Keypad() uint8 { return h.keycode }
func (h *fakeHost) RGD() int      { return h.rgd }
func (h *fakeHost) Display(i, digit, dot int) {
	h.frames = append(h.frames, [3]int{i, digit, dot})
}
func (h *fakeHost) Poll() { h.polls++ }
