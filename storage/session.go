// Package storage persists a calculator session (its loaded program
// and working state) to a JSON file, atomically, for later resumption.
// This is a local substitute for the calculator's original persistent
// storage path, which this project does not reimplement (see
// programloader's package doc).
package storage

import (
	"errors"
	"fmt"
	"os"

	"github.com/vakulenko/mk61sim/calc"
)

// Version is the current on-disk session schema version.
const Version = 1

// Session is a snapshot of one calculator instance: which variant it
// is, the program loaded into it, and its working registers/stack at
// the moment of the snapshot.
type Session struct {
	Version int         `json:"version"`
	Variant string      `json:"variant"`
	Code    []uint8     `json:"code"`
	Regs    [][6]uint8  `json:"regs"`
	Stack   [5][6]uint8 `json:"stack"`
	SavedAt int64       `json:"savedAt"`
}

// FromCalculator builds a Session snapshot from a running calculator.
func FromCalculator(c *calc.Calculator, savedAt int64) *Session {
	return &Session{
		Version: Version,
		Variant: c.Variant().String(),
		Code:    c.GetCode(),
		Regs:    c.GetRegs(),
		Stack:   c.GetStack(),
		SavedAt: savedAt,
	}
}

// Restore writes the session's program back into c via calc.WriteCode.
// It does not attempt to restore the volatile register/stack state:
// the ring's internal phase at load time won't generally match the
// phase the snapshot was taken in, so only the durable program is
// reloaded (spec.md §4.4's phase-relative addressing applies to
// WriteCode the same way it did when the snapshot was taken).
func (s *Session) Restore(c *calc.Calculator) error {
	if want := c.Variant().CodeBytes(); len(s.Code) != want {
		return fmt.Errorf("storage: session has %d code bytes, %s needs %d", len(s.Code), c.Variant(), want)
	}
	c.WriteCode(s.Code)
	return nil
}

// Load reads the session snapshot from the standard config path. A
// missing file is not an error; it returns nil, nil.
func Load() (*Session, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	var s Session
	if err := ReadJSON(path, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes the session snapshot to the standard config path,
// atomically.
func Save(s *Session) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return AtomicWriteJSON(path, s)
}

// Delete removes the session snapshot file, if any.
func Delete() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
