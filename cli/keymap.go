package cli

import "github.com/vakulenko/mk61sim/calc"

// keymap translates a terminal keystroke into the calculator's keycode.
// It covers the digits, the four arithmetic operators, and the control
// keys a session actually needs; unmapped keys are ignored.
var keymap = map[string]uint8{
	"0": calc.Key0, "1": calc.Key1, "2": calc.Key2, "3": calc.Key3, "4": calc.Key4,
	"5": calc.Key5, "6": calc.Key6, "7": calc.Key7, "8": calc.Key8, "9": calc.Key9,
	"+": calc.KeyAdd, "-": calc.KeySub, "*": calc.KeyMul, "/": calc.KeyDiv,
	".": calc.KeyDot, "_": calc.KeyNeg, "e": calc.KeyExp,
	"x": calc.KeyXY,
	"c": calc.KeyClear, "enter": calc.KeyEnter,
	" ": calc.KeyStopGo,
	"g": calc.KeyGoto, "r": calc.KeyRet, "z": calc.KeyCall,
	"s": calc.KeyStore, "n": calc.KeyNext, "l": calc.KeyLoad, "p": calc.KeyPrev,
	"k": calc.KeyK, "f": calc.KeyF,
}

// digitGlyph renders one readback nibble (0-15) as the character the
// real 7-segment display would show, per the original trace format
// "0123456789-LCRE ".
var digitGlyphs = [16]rune("0123456789-LCRE ")

func digitGlyph(v int) rune {
	if v < 0 || v > 15 {
		return ' '
	}
	return digitGlyphs[v]
}
