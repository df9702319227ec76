package storage

import (
	"testing"

	"github.com/vakulenko/mk61sim/calc"
)

type stubHost struct{}

func (stubHost) Keypad() uint8             { return 0 }
func (stubHost) RGD() int                  { return calc.ModeRadians }
func (stubHost) Display(i, digit, dot int) {}
func (stubHost) Poll()                     {}

func TestFromCalculator_Restore_RoundTrip(t *testing.T) {
	for _, v := range []calc.Variant{calc.MK54, calc.MK61} {
		roms := calc.ROMSet{Variant: v, Chips: make([]calc.ChipROM, v.NumPLMs())}
		c, err := calc.New(v, roms, stubHost{})
		if err != nil {
			t.Fatalf("calc.New(%s): %v", v, err)
		}

		code := make([]uint8, v.CodeBytes())
		for i := range code {
			code[i] = uint8(i + 1)
		}
		c.WriteCode(code)

		s := FromCalculator(c, 1700000000)
		if s.Variant != v.String() {
			t.Errorf("Variant = %q, want %q", s.Variant, v.String())
		}
		if len(s.Code) != v.CodeBytes() {
			t.Errorf("len(Code) = %d, want %d", len(s.Code), v.CodeBytes())
		}

		c2, err := calc.New(v, calc.ROMSet{Variant: v, Chips: make([]calc.ChipROM, v.NumPLMs())}, stubHost{})
		if err != nil {
			t.Fatalf("calc.New(%s): %v", v, err)
		}
		if err := s.Restore(c2); err != nil {
			t.Fatalf("Restore: %v", err)
		}

		got := c2.GetCode()
		for i := range code {
			if got[i] != code[i] {
				t.Errorf("restored code[%d] = 0x%02x, want 0x%02x", i, got[i], code[i])
			}
		}
	}
}

func TestRestore_WrongCodeLength(t *testing.T) {
	roms := calc.ROMSet{Variant: calc.MK54, Chips: make([]calc.ChipROM, calc.MK54.NumPLMs())}
	c, err := calc.New(calc.MK54, roms, stubHost{})
	if err != nil {
		t.Fatalf("calc.New: %v", err)
	}

	s := &Session{Version: Version, Variant: "MK-54", Code: make([]uint8, 10)}
	if err := s.Restore(c); err == nil {
		t.Error("expected error restoring mismatched code length, got nil")
	}
}

func TestLoad_Save_Delete_RoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if s, err := Load(); err != nil || s != nil {
		t.Fatalf("Load() before any save = (%v, %v), want (nil, nil)", s, err)
	}

	roms := calc.ROMSet{Variant: calc.MK54, Chips: make([]calc.ChipROM, calc.MK54.NumPLMs())}
	c, err := calc.New(calc.MK54, roms, stubHost{})
	if err != nil {
		t.Fatalf("calc.New: %v", err)
	}
	want := FromCalculator(c, 42)

	if err := Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got == nil {
		t.Fatal("Load() returned nil after Save")
	}
	if got.Variant != want.Variant || got.SavedAt != want.SavedAt {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}

	if err := Delete(); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s, err := Load(); err != nil || s != nil {
		t.Fatalf("Load() after Delete = (%v, %v), want (nil, nil)", s, err)
	}
}
