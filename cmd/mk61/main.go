// Command mk61 runs a terminal simulation of an MK-54 or MK-61
// calculator: flags select the model, the chip microcode to load, an
// optional keystroke program, and whether to resume a saved session.
package main

import (
	"flag"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vakulenko/mk61sim/calc"
	"github.com/vakulenko/mk61sim/cli"
	"github.com/vakulenko/mk61sim/programloader"
	"github.com/vakulenko/mk61sim/storage"
)

func main() {
	variantFlag := flag.String("variant", "mk61", "calculator model: mk54 or mk61")
	romPath := flag.String("rom", "", "path to a JSON chip ROM set (required)")
	programPath := flag.String("program", "", "path to a keystroke program file, optionally archived (.pgm, .zip, .7z, .gz, .rar)")
	resume := flag.Bool("resume", false, "restore the program code from the last saved session")
	flag.Parse()

	variant, err := parseVariant(*variantFlag)
	if err != nil {
		log.Fatal(err)
	}

	if *romPath == "" {
		log.Fatal("mk61: -rom is required (no chip microcode is built in)")
	}

	roms, err := programloader.LoadROMSet(*romPath, variant)
	if err != nil {
		log.Fatal(err)
	}

	runner, err := cli.New(variant, roms)
	if err != nil {
		log.Fatal(err)
	}

	if *resume {
		session, err := storage.Load()
		if err != nil {
			log.Fatal(err)
		}
		if session != nil {
			if err := session.Restore(runner.Calc()); err != nil {
				log.Fatal(err)
			}
		}
	} else if *programPath != "" {
		code, _, err := programloader.Load(*programPath, variant)
		if err != nil {
			log.Fatal(err)
		}
		runner.Calc().WriteCode(code)
	}

	if _, err := tea.NewProgram(runner).Run(); err != nil {
		log.Fatal(err)
	}

	session := storage.FromCalculator(runner.Calc(), time.Now().Unix())
	if err := storage.Save(session); err != nil {
		log.Fatal(err)
	}
}

func parseVariant(s string) (calc.Variant, error) {
	switch s {
	case "mk54":
		return calc.MK54, nil
	case "mk61":
		return calc.MK61, nil
	default:
		return 0, &unknownVariantError{s}
	}
}

type unknownVariantError struct{ value string }

func (e *unknownVariantError) Error() string {
	return "mk61: unknown variant " + e.value + " (want mk54 or mk61)"
}
