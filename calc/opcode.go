package calc

// op is a decoded 28-bit PLM micro-instruction. The raw opcode packs a
// dozen independent bit fields; decoding it once per ROM entry (at
// install time, see rom.go) keeps the per-cycle hot path in plm.go free
// of bit-mask arithmetic.
type op struct {
	alphaR, alphaM, alphaST, alphaNR, alphaC10, alphaS, alpha4 bool
	betaS, betaNS, betaS1, beta6, beta1                        bool
	s1Field                                                    uint8 // bits 24-25; shared by the poll-keypad check and the S1-write mode
	gammaCarry, gammaNCarry, gammaNKey                         bool
	rMode                                                      uint8 // bits 15-17, 0..7
	rMinus1, rMinus2                                           bool
	mWriteS                                                    bool
	carryHold                                                  bool
	sMode                                                      uint8 // bits 22-23, 0..3
	stMode                                                     uint8 // bits 26-27, 0..3
}

// decodeOp translates a raw 28-bit micro-instruction word into an op.
// Bit positions follow the original К145ИК130x microcode encoding
// (UCMD_* constants in calc.h).
func decodeOp(raw uint32) op {
	return op{
		alphaR:      raw&0x0000001 != 0,
		alphaM:      raw&0x0000002 != 0,
		alphaST:     raw&0x0000004 != 0,
		alphaNR:     raw&0x0000008 != 0,
		alphaC10:    raw&0x0000010 != 0,
		alphaS:      raw&0x0000020 != 0,
		alpha4:      raw&0x0000040 != 0,
		betaS:       raw&0x0000080 != 0,
		betaNS:      raw&0x0000100 != 0,
		betaS1:      raw&0x0000200 != 0,
		beta6:       raw&0x0000400 != 0,
		beta1:       raw&0x0000800 != 0,
		s1Field:     uint8(raw>>24) & 3,
		gammaCarry:  raw&0x0001000 != 0,
		gammaNCarry: raw&0x0002000 != 0,
		gammaNKey:   raw&0x0004000 != 0,
		rMode:       uint8(raw>>15) & 7,
		rMinus1:     raw&0x0040000 != 0,
		rMinus2:     raw&0x0080000 != 0,
		mWriteS:     raw&0x0100000 != 0,
		carryHold:   raw&0x0200000 != 0,
		sMode:       uint8(raw>>22) & 3,
		stMode:      uint8(raw>>26) & 3,
	}
}

