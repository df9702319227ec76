package calc

import "testing"

// TestWriteCode_GetCode_RoundTrip checks that a freshly constructed
// calculator (phase 0, fifo1.cycle == 0) reads back exactly what was
// written to it.
func TestWriteCode_GetCode_RoundTrip(t *testing.T) {
	for _, v := range []Variant{MK54, MK61} {
		c, err := New(v, zeroROMSet(v), &fakeHost{})
		if err != nil {
			t.Fatalf("New(%s): %v", v, err)
		}

		code := make([]uint8, v.CodeBytes())
		for i := range code {
			code[i] = uint8(i*37 + 11)
		}

		c.WriteCode(code)
		got := c.GetCode()

		if len(got) != len(code) {
			t.Fatalf("%s: GetCode len = %d, want %d", v, len(got), len(code))
		}
		for i := range code {
			if got[i] != code[i] {
				t.Errorf("%s: code[%d] = 0x%02x, want 0x%02x", v, i, got[i], code[i])
			}
		}
	}
}

// TestPhaseCover checks that every phase value the ring can land in
// (0, 1, 2) yields a valid, distinct remap permutation covering every
// logical register slot exactly once.
func TestPhaseCover(t *testing.T) {
	for _, v := range []Variant{MK54, MK61} {
		c, _ := New(v, zeroROMSet(v), &fakeHost{})

		for phase := 0; phase < 3; phase++ {
			c.fifo1.cycle = phase * 2 * regNwords
			if got := c.phase(); got != phase {
				t.Fatalf("%s: phase() = %d, want %d", v, got, phase)
			}

			remap := c.remapMemory()
			seen := make(map[uint8]bool)
			for _, slot := range remap {
				if int(slot) >= len(memoryMap) {
					t.Errorf("%s phase %d: remap slot %d out of range", v, phase, slot)
				}
				if seen[slot] {
					t.Errorf("%s phase %d: duplicate remap slot %d", v, phase, slot)
				}
				seen[slot] = true
			}
			if len(remap) != v.NumRegs() {
				t.Errorf("%s phase %d: remap len = %d, want %d", v, phase, len(remap), v.NumRegs())
			}
		}
	}
}

// TestGetStack_NoPanicAcrossPhases checks readback never panics on a
// freshly constructed ring in any of the three phases it can land in.
func TestGetStack_NoPanicAcrossPhases(t *testing.T) {
	for _, v := range []Variant{MK54, MK61} {
		c, _ := New(v, zeroROMSet(v), &fakeHost{})
		for phase := 0; phase < 3; phase++ {
			c.fifo1.cycle = phase * 2 * regNwords
			_ = c.GetStack()
			_ = c.GetRegs()
			_ = c.GetCode()
		}
	}
}

// TestChipBase_MK54HasNoChip5 checks the MK-54 variant (two PLMs) has
// no chip 5 and reads back zeros for it via fetchValue's nil path.
func TestChipBase_MK54HasNoChip5(t *testing.T) {
	c, _ := New(MK54, zeroROMSet(MK54), &fakeHost{})
	if base := c.chipBase(5); base != nil {
		t.Errorf("MK-54 chipBase(5) = %v, want nil", base)
	}
	if v := fetchValue(c.chipBase(5), 41); v != ([6]uint8{}) {
		t.Errorf("fetchValue on absent chip = %v, want zero", v)
	}
}
