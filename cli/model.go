// Package cli provides a terminal runner for the calculator: it drives
// a calc.Calculator with keystrokes and renders its 12-digit display.
// It replaces the original Sega frontend's ebiten window (no
// framebuffer or audio device fits a pocket calculator's LED readout)
// with a bubbletea/lipgloss terminal UI, following the teacher's
// "thin runner wrapping the core, polling input itself" shape.
package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vakulenko/mk61sim/calc"
)

// stepInterval is how often the model advances the calculator by one
// host Step. It has no bearing on the ring's own cycle-accurate timing
// (spec.md §1 Non-goals: no wall-clock fidelity), only on how
// responsive the terminal UI feels.
const stepInterval = 30 * time.Millisecond

var (
	displayStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("178")).
			Background(lipgloss.Color("232")).
			Padding(0, 1)
	variantStyle = lipgloss.NewStyle().Faint(true)
	helpStyle    = lipgloss.NewStyle().Faint(true)
)

// Runner wraps a calc.Calculator as a bubbletea model.
type Runner struct {
	calc    *calc.Calculator
	host    *termHost
	variant calc.Variant
	quit    bool
}

// NewRunner builds a terminal Runner around an already-initialized
// calculator and the host it was constructed with.
func NewRunner(c *calc.Calculator, host *termHost) *Runner {
	return &Runner{calc: c, host: host, variant: c.Variant()}
}

// New builds a calculator of the given variant with its own terminal
// host wired in, ready to hand to tea.NewProgram.
func New(variant calc.Variant, roms calc.ROMSet) (*Runner, error) {
	host := newTermHost()
	c, err := calc.New(variant, roms, host)
	if err != nil {
		return nil, err
	}
	return NewRunner(c, host), nil
}

// Calc returns the calculator this runner drives, for callers that
// need to load a program or snapshot state before/after the bubbletea
// program runs.
func (r *Runner) Calc() *calc.Calculator { return r.calc }

type stepMsg struct{}

func tick() tea.Cmd {
	return tea.Tick(stepInterval, func(time.Time) tea.Msg { return stepMsg{} })
}

func (r *Runner) Init() tea.Cmd {
	return tick()
}

func (r *Runner) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			r.quit = true
			return r, tea.Quit
		case "tab":
			r.cycleMode()
			return r, nil
		}
		if code, ok := keymap[msg.String()]; ok {
			r.host.press(code)
		}
		return r, nil

	case stepMsg:
		r.calc.Step()
		if r.quit {
			return r, nil
		}
		return r, tick()
	}
	return r, nil
}

func (r *Runner) View() string {
	header := variantStyle.Render(r.variant.String())
	display := displayStyle.Render(r.host.render())
	help := helpStyle.Render("digits/+-*/ keys · tab: angular mode · space: stop/go · esc: quit")
	return header + "\n" + display + "\n" + help + "\n"
}

// cycleMode rotates the angular mode switch radians -> degrees -> grads.
func (r *Runner) cycleMode() {
	switch r.host.mode {
	case calc.ModeRadians:
		r.host.setMode(calc.ModeDegrees)
	case calc.ModeDegrees:
		r.host.setMode(calc.ModeGrads)
	default:
		r.host.setMode(calc.ModeRadians)
	}
}
