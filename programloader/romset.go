package programloader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/vakulenko/mk61sim/calc"
)

// LoadROMSet reads the per-chip micro-instruction/macro-command/program
// tables for variant from a JSON file: an array of objects each with
// "Micro", "Macro" and "Program" fields, one per chip in ring order
// (PLM1, PLM2, and PLM3 for MK-61). This is the caller-supplied chip
// data calc.ChipROM itself takes no position on (see calc/rom.go):
// the real silicon's mask-programmed tables, not reproduced here.
func LoadROMSet(path string, variant calc.Variant) (calc.ROMSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return calc.ROMSet{}, fmt.Errorf("read rom set %s: %w", path, err)
	}

	var chips []calc.ChipROM
	if err := json.Unmarshal(data, &chips); err != nil {
		return calc.ROMSet{}, fmt.Errorf("parse rom set %s: %w", path, err)
	}

	if len(chips) != variant.NumPLMs() {
		return calc.ROMSet{}, fmt.Errorf("rom set %s has %d chips, %s needs %d", path, len(chips), variant, variant.NumPLMs())
	}

	return calc.ROMSet{Variant: variant, Chips: chips}, nil
}
