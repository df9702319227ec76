package cli

import "github.com/vakulenko/mk61sim/calc"

// termHost implements calc.Host for the terminal UI. Keypresses are
// single-shot: a key latched by the UI is consumed (and cleared) the
// first time the ring polls it, matching one momentary press rather
// than 560 repeats per Step.
type termHost struct {
	key  uint8
	mode int

	frame [12]int
	dot   [12]int
}

func newTermHost() *termHost {
	return &termHost{mode: calc.ModeRadians}
}

func (h *termHost) Keypad() uint8 {
	k := h.key
	h.key = 0
	return k
}

func (h *termHost) RGD() int { return h.mode }

func (h *termHost) Display(i, digit, dot int) {
	if i < 0 || i > 11 {
		return
	}
	h.frame[i] = digit
	h.dot[i] = dot
}

func (h *termHost) Poll() {}

// press latches a key for the next round the ring samples the keypad.
func (h *termHost) press(code uint8) { h.key = code }

// setMode changes the angular mode switch position.
func (h *termHost) setMode(mode int) { h.mode = mode }

// render turns the current display frame into the glyph string shown
// to the user, left to right as the real readout is wired (index 0 is
// the most significant digit).
func (h *termHost) render() string {
	runes := make([]rune, 0, 24)
	for i := 0; i < 12; i++ {
		runes = append(runes, digitGlyph(h.frame[i]))
		if h.dot[i] != 0 {
			runes = append(runes, '.')
		}
	}
	return string(runes)
}
