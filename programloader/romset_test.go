package programloader

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/vakulenko/mk61sim/calc"
)

func writeROMSetFile(t *testing.T, chips []calc.ChipROM) string {
	t.Helper()
	data, err := json.Marshal(chips)
	if err != nil {
		t.Fatalf("marshal rom set: %v", err)
	}
	path := filepath.Join(t.TempDir(), "roms.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write rom set: %v", err)
	}
	return path
}

func TestLoadROMSet_MK54(t *testing.T) {
	chips := make([]calc.ChipROM, calc.MK54.NumPLMs())
	chips[0].Micro[0] = 0x12345678
	path := writeROMSetFile(t, chips)

	roms, err := LoadROMSet(path, calc.MK54)
	if err != nil {
		t.Fatalf("LoadROMSet: %v", err)
	}
	if roms.Variant != calc.MK54 {
		t.Errorf("Variant = %v, want MK54", roms.Variant)
	}
	if len(roms.Chips) != calc.MK54.NumPLMs() {
		t.Errorf("len(Chips) = %d, want %d", len(roms.Chips), calc.MK54.NumPLMs())
	}
	if roms.Chips[0].Micro[0] != 0x12345678 {
		t.Errorf("Chips[0].Micro[0] = 0x%x, want 0x12345678", roms.Chips[0].Micro[0])
	}
}

func TestLoadROMSet_WrongChipCount(t *testing.T) {
	chips := make([]calc.ChipROM, calc.MK54.NumPLMs())
	path := writeROMSetFile(t, chips)

	if _, err := LoadROMSet(path, calc.MK61); err == nil {
		t.Error("LoadROMSet with mismatched chip count: want error, got nil")
	}
}

func TestLoadROMSet_MissingFile(t *testing.T) {
	if _, err := LoadROMSet(filepath.Join(t.TempDir(), "missing.json"), calc.MK61); err == nil {
		t.Error("LoadROMSet on missing file: want error, got nil")
	}
}

func TestLoadROMSet_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatalf("write bad rom set: %v", err)
	}

	if _, err := LoadROMSet(path, calc.MK61); err == nil {
		t.Error("LoadROMSet on invalid JSON: want error, got nil")
	}
}
