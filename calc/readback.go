package calc

// location identifies a register's home chip and its byte address
// within that chip's serial memory.
type location struct {
	chip    uint8
	address uint8
}

// memoryMap and stackMap are the physical homes of the 15 possible
// register/stack slots, indexed before the per-phase remap is applied.
// Chip 1 and 2 are fifo1/fifo2; chips 3/4/5 are PLM1/PLM2/PLM3's M
// registers (chip 5 only exists on MK-61).
var memoryMap = [15]location{
	{1, 41}, {1, 83}, {1, 125}, {1, 167}, {1, 209}, {1, 251},
	{2, 41}, {2, 83}, {2, 125}, {2, 167}, {2, 209}, {2, 251},
	{3, 41}, {4, 41}, {5, 41},
}

var stackMap = [15]location{
	{1, 34}, {1, 76}, {1, 118}, {1, 160}, {1, 202}, {1, 244},
	{2, 34}, {2, 76}, {2, 118}, {2, 160}, {2, 202}, {2, 244},
	{3, 34}, {4, 34}, {5, 34},
}

// remapMemoryMK54/remapStackMK54 and the MK-61 equivalents below
// translate a logical register index into a memoryMap/stackMap slot
// for one of the three phases the ring's rotation can be caught in
// (fifo1.cycle / 84). A register's physical location rotates with the
// ring, so readback must track which phase it's in.
var remapMemoryMK54 = [3][14]uint8{
	{1, 2, 3, 4, 5, 13, 12, 6, 7, 8, 9, 10, 11, 0},
	{3, 4, 5, 0, 1, 13, 12, 8, 9, 10, 11, 6, 7, 2},
	{5, 0, 1, 2, 3, 13, 12, 10, 11, 6, 7, 8, 9, 4},
}

var remapStackMK54 = [3][5]uint8{
	{8, 9, 10, 11, 0},
	{10, 11, 6, 7, 2},
	{6, 7, 8, 9, 4},
}

var remapMemoryMK61 = [3][15]uint8{
	{1, 2, 3, 4, 5, 14, 13, 12, 6, 7, 8, 9, 10, 11, 0},
	{10, 11, 6, 7, 2, 3, 4, 5, 0, 1, 14, 13, 12, 8, 9},
	{14, 13, 12, 10, 11, 6, 7, 8, 9, 4, 5, 0, 1, 2, 3},
}

var remapStackMK61 = [3][5]uint8{
	{8, 9, 10, 11, 0},
	{14, 13, 12, 8, 9},
	{5, 0, 1, 2, 3},
}

// phase reports which of the three rotations of the ring fifo1 is
// currently in. Readback addresses are only meaningful relative to it.
func (c *Calculator) phase() int {
	return c.fifo1.cycle / (2 * regNwords)
}

// chipBase returns the backing byte slice for a readback chip number
// (1=fifo1, 2=fifo2, 3..5=PLM1..PLM3's M registers), or nil if that
// chip doesn't exist in this variant.
func (c *Calculator) chipBase(chip uint8) []uint8 {
	switch chip {
	case 1:
		return c.fifo1.data[:]
	case 2:
		return c.fifo2.data[:]
	case 3:
		return c.plms[0].M[:]
	case 4:
		return c.plms[1].M[:]
	case 5:
		if len(c.plms) == 3 {
			return c.plms[2].M[:]
		}
	}
	return nil
}

// fetchValue reads six packed BCD nibble-pairs starting at address and
// walking backwards by 6, the pattern every serial register readout
// uses. It returns six zero bytes if data is nil (MK-54 reading a
// chip-5 slot that doesn't exist).
func fetchValue(data []uint8, address int) [6]uint8 {
	var result [6]uint8
	if data == nil {
		return result
	}
	a := address
	for i := 0; i < 6; i++ {
		result[i] = data[a] | data[a-3]<<4
		a -= 6
	}
	return result
}

func (c *Calculator) remapMemory() []uint8 {
	p := c.phase()
	if c.variant == MK54 {
		return remapMemoryMK54[p][:]
	}
	return remapMemoryMK61[p][:]
}

func (c *Calculator) remapStack() []uint8 {
	p := c.phase()
	if c.variant == MK54 {
		return remapStackMK54[p][:]
	}
	return remapStackMK61[p][:]
}

// GetStack reads the five-level operand stack, each entry six packed
// BCD digit-pairs (12 decimal digits: sign, mantissa, exponent sign,
// exponent).
func (c *Calculator) GetStack() [5][6]uint8 {
	var stack [5][6]uint8
	remap := c.remapStack()
	for i := 0; i < 5; i++ {
		loc := stackMap[remap[i]]
		stack[i] = fetchValue(c.chipBase(loc.chip), int(loc.address))
	}
	return stack
}

// GetRegs reads the numeric memory registers (14 for MK-54, 15 for
// MK-61), each six packed BCD digit-pairs.
func (c *Calculator) GetRegs() [][6]uint8 {
	remap := c.remapMemory()
	regs := make([][6]uint8, c.variant.NumRegs())
	for i := range regs {
		loc := memoryMap[remap[i]]
		regs[i] = fetchValue(c.chipBase(loc.chip), int(loc.address)-8)
	}
	return regs
}

// codeLocation computes the chip+address of program byte i, given the
// current phase's remap table.
func codeLocation(remap []uint8, i int) location {
	loc := memoryMap[remap[i/7]]
	if rem := i % 7; rem != 0 {
		loc.address = uint8(int(loc.address) + rem*6 - 42)
	}
	return loc
}

// GetCode reads the stored program, one byte per instruction slot
// (98 bytes for MK-54, 105 for MK-61).
func (c *Calculator) GetCode() []uint8 {
	remap := c.remapMemory()
	code := make([]uint8, c.variant.CodeBytes())
	for i := range code {
		loc := codeLocation(remap, i)
		data := c.chipBase(loc.chip)
		if data == nil {
			continue
		}
		code[i] = data[loc.address]<<4 | data[loc.address-3]
	}
	return code
}

// WriteCode loads a program into the serial shift registers. code must
// be exactly c.variant.CodeBytes() long.
func (c *Calculator) WriteCode(code []uint8) {
	remap := c.remapMemory()
	for i, b := range code {
		loc := codeLocation(remap, i)
		data := c.chipBase(loc.chip)
		if data == nil {
			continue
		}
		data[loc.address] = b >> 4
		data[loc.address-3] = b & 0x0f
	}
}
