package calc

// plm simulates one К145ИК130x chip: a stateful bit-slice micro-engine
// with 42-word R/M/ST serial registers, S/S1 scratch registers, a carry
// flag, a keypad-event latch, and a display/keypad side channel.
type plm struct {
	R, M, ST [regNwords]uint8

	s, s1     uint8
	carry     uint8
	keypadEvt uint8

	opcode  uint32
	command uint32

	keybX, keybY uint8

	dot      int
	showDot  [14]uint8
	enableDisplay bool

	in, out uint8

	rom *ChipROM
}

// init zeroes the chip and attaches its ROM triple.
func (p *plm) init(rom *ChipROM) {
	*p = plm{rom: rom}
}

// progRemap folds the 14 digit stages (3 cycles each) into the 9
// program-ROM slots actually addressed per program index.
var progRemap = [regNwords]uint8{
	0, 1, 2, 3, 4, 5, 3, 4, 5, 3, 4, 5, 3, 4,
	5, 3, 4, 5, 3, 4, 5, 3, 4, 5, 6, 7, 8, 0,
	1, 2, 3, 4, 5, 6, 7, 8, 0, 1, 2, 3, 4, 5,
}

// step simulates one micro-cycle (0..41) of the PLM chip.
func (p *plm) step(cycle int) {
	d := cycle / 3

	// Step A: macro fetch, cycle 0 only.
	if cycle == 0 {
		pc := uint32(p.R[36]) + uint32(p.R[39])<<4
		p.command = p.rom.Macro[pc]
		if p.command&0xfc0000 == 0 {
			p.keypadEvt = 0
		}
	}

	// Step B: program index selection.
	var progIndex uint32
	switch {
	case cycle < 27:
		progIndex = p.command & 0xff
	case cycle < 36:
		progIndex = (p.command >> 8) & 0xff
	default:
		progIndex = (p.command >> 16) & 0xff
		if progIndex > 0x1f {
			if cycle == 36 {
				p.R[37] = uint8(progIndex & 0xf)
				p.R[40] = uint8(progIndex >> 4)
			}
			progIndex = 0x5f
		}
	}
	modifier := (p.command >> 24) & 0xff

	// Step C: micro-instruction fetch.
	instAddr := int(p.rom.Program[progIndex*9+uint32(progRemap[cycle])]) & 0x3f
	if instAddr >= 60 {
		instAddr = 2*instAddr - 60
		if p.carry == 0 {
			instAddr++
		}
	}
	p.opcode = p.rom.Micro[instAddr]
	o := &p.rom.decoded[instAddr]

	// Step D (partial) + Step E: keypad poll bit, evaluated before alpha/beta
	// assembly so s1 is up to date when beta reads it (matches the
	// original's early switch on the opcode's top 2 bits).
	if o.s1Field == 2 || o.s1Field == 3 {
		if d != int(p.keybX)-1 && p.keybY > 0 {
			p.s1 |= p.keybY
		}
	}

	var alpha, beta, gamma uint32

	if o.alphaR {
		alpha |= uint32(p.R[cycle])
	}
	if o.alphaM {
		alpha |= uint32(p.M[cycle])
	}
	if o.alphaST {
		alpha |= uint32(p.ST[cycle])
	}
	if o.alphaNR {
		alpha |= uint32(p.R[cycle] ^ 0xf)
	}
	if o.alphaC10 && p.carry == 0 {
		alpha |= 0xa
	}
	if o.alphaS {
		alpha |= uint32(p.s)
	}
	if o.alpha4 {
		alpha |= 4
	}

	if o.betaS {
		beta |= uint32(p.s)
	}
	if o.betaNS {
		beta |= uint32(p.s ^ 0xf)
	}
	if o.betaS1 {
		beta |= uint32(p.s1)
	}
	if o.beta6 {
		beta |= 6
	}
	if o.beta1 {
		beta |= 1
	}

	// Step E: keypad / display side-channel.
	if p.command&0xfc0000 != 0 {
		if p.keybY == 0 {
			p.keypadEvt = 0
		}
	} else {
		p.enableDisplay = true
		if d == int(p.keybX)-1 && p.keybY > 0 {
			p.s1 = p.keybY
			p.keypadEvt = 1
		}
		if p.carry != 0 && d < 12 {
			p.dot = d
		}
		p.showDot[d] = p.carry
	}

	if o.gammaCarry {
		gamma |= uint32(p.carry)
	}
	if o.gammaNCarry {
		gamma |= uint32(p.carry ^ 1)
	}
	if o.gammaNKey {
		gamma |= uint32(p.keypadEvt ^ 1)
	}

	// Step F: ALU.
	sum := alpha + beta + gamma
	sigma := uint8(sum & 0xf)
	if o.carryHold {
		p.carry = uint8((sum >> 4) & 1)
	}

	// Step G: register writes.
	if modifier == 0 || cycle >= 36 {
		cyclePlus3 := cycle + 3
		if cyclePlus3 >= regNwords {
			cyclePlus3 -= regNwords
		}
		cycleMinus1 := (cycle - 1 + regNwords) % regNwords
		cycleMinus2 := (cycle - 2 + regNwords) % regNwords

		switch o.rMode {
		case 1:
			p.R[cycle] = p.R[cyclePlus3]
		case 2:
			p.R[cycle] = sigma
		case 3:
			p.R[cycle] = p.s
		case 4:
			p.R[cycle] = p.R[cycle] | p.s | sigma
		case 5:
			p.R[cycle] = p.s | sigma
		case 6:
			p.R[cycle] = p.R[cycle] | p.s
		case 7:
			p.R[cycle] = p.R[cycle] | sigma
		}
		if o.rMinus1 {
			p.R[cycleMinus1] = sigma
		}
		if o.rMinus2 {
			p.R[cycleMinus2] = sigma
		}
	}

	if o.mWriteS {
		p.M[cycle] = p.s
	}

	switch o.sMode {
	case 1:
		p.s = p.s1
	case 2:
		p.s = sigma
	case 3:
		p.s = p.s1 | sigma
	}

	switch o.s1Field {
	case 1:
		p.s1 = sigma
	case 2:
		// No-op: never written by any shipped ROM (spec.md §9).
	case 3:
		p.s1 |= sigma
	}

	// Step H: ST update.
	cyclePlus1 := cycle + 1
	if cyclePlus1 >= regNwords {
		cyclePlus1 = 0
	}
	cyclePlus2 := cycle + 2
	if cyclePlus2 >= regNwords {
		cyclePlus2 -= regNwords
	}

	switch o.stMode {
	case 1:
		p.ST[cyclePlus2] = p.ST[cyclePlus1]
		p.ST[cyclePlus1] = p.ST[cycle]
		p.ST[cycle] = sigma
	case 2:
		x := p.ST[cycle]
		p.ST[cycle] = p.ST[cyclePlus1]
		p.ST[cyclePlus1] = p.ST[cyclePlus2]
		p.ST[cyclePlus2] = x
	case 3:
		x, y, z := p.ST[cycle], p.ST[cyclePlus1], p.ST[cyclePlus2]
		p.ST[cycle] = sigma | y
		p.ST[cyclePlus1] = x | z
		p.ST[cyclePlus2] = y | x
	}

	// Step I: port I/O.
	p.out = p.M[cycle] & 0xf
	p.M[cycle] = p.in
}
