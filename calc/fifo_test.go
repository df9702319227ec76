package calc

import "testing"

// TestFifo_Transparency verifies that a word written to a fifo reappears
// on out exactly fifoNwords steps later (the chip is a pure delay line).
func TestFifo_Transparency(t *testing.T) {
	var f fifo

	f.in = 0x7
	f.step()
	for i := 0; i < fifoNwords-1; i++ {
		f.in = 0
		f.step()
	}

	f.in = 0
	f.step()
	if f.out != 0x7 {
		t.Errorf("expected delayed word 0x7 after %d steps, got 0x%x", fifoNwords, f.out)
	}
}

// TestFifo_CycleWraps checks the internal cycle counter wraps at
// fifoNwords without skipping or repeating a slot.
func TestFifo_CycleWraps(t *testing.T) {
	var f fifo
	for i := 0; i < fifoNwords; i++ {
		f.step()
	}
	if f.cycle != 0 {
		t.Errorf("expected cycle to wrap to 0 after %d steps, got %d", fifoNwords, f.cycle)
	}
}

// TestFifo_NibbleSafety ensures the chip never produces a value outside
// the 4-bit nibble range regardless of what's fed in.
func TestFifo_NibbleSafety(t *testing.T) {
	var f fifo
	inputs := []uint8{0x0, 0x1, 0xf, 0xa, 0x5}
	for _, in := range inputs {
		f.in = in
		f.step()
		if f.out > 0xf {
			t.Errorf("fifo.out = 0x%x, want <= 0xf", f.out)
		}
	}
}
