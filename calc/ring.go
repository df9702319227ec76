package calc

import "fmt"

// Host is the capability a caller supplies so the ring engine can reach
// the outside world. None of these may block or re-enter the core
// (spec.md §5): they are sampled/invoked from inside a single Step call.
type Host interface {
	// Keypad returns the current keycode (0xRC, row in 1..11, column in
	// 1..9; 0 means no key pressed).
	Keypad() uint8
	// RGD returns the angular mode switch position: ModeRadians,
	// ModeDegrees or ModeGrads.
	RGD() int
	// Display is called up to 560 times per Step. i == -1 means blank;
	// i in 0..11 selects the digit position (0 = most significant).
	// digit is 0..9 for a digit, or a dash/L/C/blank code in 10..15.
	// dot is 0 or 1.
	Display(i, digit, dot int)
	// Poll is invoked once per micro-cycle (42*560 times per Step), for
	// cooperative I/O servicing. It must not block.
	Poll()
}

// runModeChase is the macro-command value that gates the "blink the
// running digit" display pattern while a program runs. It is data
// derived from the MK-61 macro ROM, not a semantic invariant (spec.md
// §9 Open Question).
const runModeChase = 0x00117360

// Calculator is the ring of PLM and FIFO chips that make up one
// MK-54/MK-61 instance. Two calculators may coexist in the same process
// (spec.md §9 "Global state").
type Calculator struct {
	variant Variant
	plms    []plm
	fifo1   fifo
	fifo2   fifo
	host    Host
}

// New builds a Calculator for the given variant, installs the supplied
// per-chip ROMs, and zeroes all chip state. roms must carry exactly
// variant.NumPLMs() chip ROM triples.
func New(variant Variant, roms ROMSet, host Host) (*Calculator, error) {
	if len(roms.Chips) != variant.NumPLMs() {
		return nil, fmt.Errorf("calc: %s needs %d chip ROMs, got %d", variant, variant.NumPLMs(), len(roms.Chips))
	}
	c := &Calculator{variant: variant, host: host}
	c.Init(roms)
	return c, nil
}

// Init zeroes every PLM and FIFO and installs the per-variant ROMs.
func (c *Calculator) Init(roms ROMSet) {
	c.plms = make([]plm, len(roms.Chips))
	for i := range c.plms {
		roms.Chips[i].install()
		c.plms[i].init(&roms.Chips[i])
	}
	c.fifo1 = fifo{}
	c.fifo2 = fifo{}
}

// Variant reports which calculator model this instance simulates.
func (c *Calculator) Variant() Variant { return c.variant }

// Step runs one host step: 560 rounds of 42 micro-cycles each, sampling
// the keypad once per round and driving the display once per round.
// It returns 1 if a user program is running, 0 otherwise.
func (c *Calculator) Step() int {
	plm1 := &c.plms[0]
	plm2 := &c.plms[1]
	var plm3 *plm
	if len(c.plms) == 3 {
		plm3 = &c.plms[2]
	}

	for k := 0; k < roundsPerStep; k++ {
		keycode := c.host.Keypad()
		plm1.keybX = keycode >> 4
		plm1.keybY = keycode & 0xf
		plm2.keybX = uint8(c.host.RGD())
		plm2.keybY = 1

		for cycle := 0; cycle < roundCycles; cycle++ {
			c.host.Poll()

			plm1.in = c.fifo2.out
			plm1.step(cycle)

			plm2.in = plm1.out
			plm2.step(cycle)

			if plm3 != nil {
				plm3.in = plm2.out
				plm3.step(cycle)
				c.fifo1.in = plm3.out
			} else {
				c.fifo1.in = plm2.out
			}

			c.fifo1.step()
			c.fifo2.in = c.fifo1.out
			c.fifo2.step()
			plm1.M[cycle] = c.fifo2.out
		}

		c.driveDisplay(k, plm1)
	}

	if plm1.dot == 11 {
		return 1
	}
	return 0
}

// driveDisplay implements the per-round display policy of spec.md §4.3
// step 3.
func (c *Calculator) driveDisplay(k int, plm1 *plm) {
	i := k % 14
	if i >= 12 {
		c.host.Display(-1, 0, 0)
		return
	}

	var digit, dot int
	if i < 3 {
		digit = int(plm1.R[(i+9)*3])
		dot = int(plm1.showDot[i+10])
	} else {
		digit = int(plm1.R[(i-3)*3])
		dot = int(plm1.showDot[i-2])
	}

	switch {
	case plm1.dot == 11:
		if plm1.command != runModeChase {
			digit = 15
		}
		c.host.Display(i, digit, 1)
	case plm1.enableDisplay:
		c.host.Display(i, digit, dot)
		plm1.enableDisplay = false
	default:
		c.host.Display(i, 15, 0)
	}
}
