// Package ui is photon's terminal control surface: a bubbletea program
// showing playhead position and pad state, built in the teacher's own
// idiom (a lipgloss ViewStyles struct plus a Container.Render wrapper,
// the same shape as internal/views/views.go's getCommonStyles and
// renderViewWithCommonPattern) rather than ad hoc string building.
//
// Terminal keyboards have no key-up event the way the original
// implementation's egui-based GUI did, so the computer-keyboard pads
// here are press-to-toggle (press once to engage, press again to
// release) rather than press-to-hold. The MIDI and OSC input surfaces
// are unaffected — they carry true note-on/note-off and button-up/down
// states and keep the original hold semantics exactly.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/schollz/photon/internal/engine"
)

// pad describes one computer-keyboard pad: the key that drives it, the
// duration it requests, and whether it is currently toggled on.
type pad struct {
	key      string
	label    string
	duration float64
	on       bool
}

// styles mirrors the teacher's ViewStyles convention: one struct of
// named lipgloss.Style values built once and reused across renders.
type styles struct {
	title     lipgloss.Style
	label     lipgloss.Style
	active    lipgloss.Style
	inactive  lipgloss.Style
	container lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		label:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		active:    lipgloss.NewStyle().Background(lipgloss.Color("10")).Foreground(lipgloss.Color("0")),
		inactive:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		container: lipgloss.NewStyle().Padding(1, 2),
	}
}

// tickMsg drives the periodic playhead redraw.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the bubbletea program model for photon's pad UI.
type Model struct {
	engine      *engine.Engine
	commandsOut func(engine.Command) bool

	totalFrames int
	sampleRate  int

	retriggerPads  []pad
	tranceGatePads []pad

	progress progress.Model
	styles   styles
}

// New builds a Model wired to engine e, pushing commands through
// commandsOut (typically a *cmdqueue.Queue[engine.Command]'s Push).
// bpm sets the 4/8/16/32 duration ladder for every pad, and
// totalFrames/sampleRate size the playhead progress bar.
func New(e *engine.Engine, commandsOut func(engine.Command) bool, bpm float64, totalFrames, sampleRate int) Model {
	beat := 60.0 / bpm
	durations := []float64{beat, beat / 2, beat / 4, beat / 8}

	retrigger := make([]pad, 4)
	keys := []string{"q", "w", "e", "r"}
	for i, d := range durations {
		retrigger[i] = pad{key: keys[i], label: fmt.Sprintf("%s:retrig", keys[i]), duration: d}
	}

	tranceGate := make([]pad, 4)
	keys = []string{"a", "s", "d", "f"}
	for i, d := range durations {
		tranceGate[i] = pad{key: keys[i], label: fmt.Sprintf("%s:gate", keys[i]), duration: d}
	}

	return Model{
		engine:         e,
		commandsOut:    commandsOut,
		totalFrames:    totalFrames,
		sampleRate:     sampleRate,
		retriggerPads:  retrigger,
		tranceGatePads: tranceGate,
		progress:       progress.New(progress.WithDefaultGradient()),
		styles:         newStyles(),
	}
}

// Init starts the playhead redraw ticker.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles keyboard input and the periodic tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			if m.engine.Playing() {
				m.commandsOut(engine.Pause())
			} else {
				m.commandsOut(engine.Play())
			}
		default:
			m.togglePad(msg.String())
		}
	case tickMsg:
		return m, tick()
	}
	return m, nil
}

// togglePad flips the named pad's on/off state and emits the matching
// command. Turning a pad on turns the other pads of the same effect
// off, so only the pad whose On was sent last can emit that effect's
// Off.
func (m *Model) togglePad(key string) {
	for i := range m.retriggerPads {
		p := &m.retriggerPads[i]
		if p.key == key {
			p.on = !p.on
			if p.on {
				for j := range m.retriggerPads {
					m.retriggerPads[j].on = j == i
				}
				m.commandsOut(engine.RetriggerOn(p.duration, 0.9))
			} else {
				m.commandsOut(engine.RetriggerOff())
			}
			return
		}
	}
	for i := range m.tranceGatePads {
		p := &m.tranceGatePads[i]
		if p.key == key {
			p.on = !p.on
			if p.on {
				for j := range m.tranceGatePads {
					m.tranceGatePads[j].on = j == i
				}
				m.commandsOut(engine.TranceGateOn(p.duration, 0.9))
			} else {
				m.commandsOut(engine.TranceGateOff())
			}
			return
		}
	}
}

// View renders the playhead bar, play/pause state, and pad grid.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("photon"))
	b.WriteString("\n\n")

	state := "paused"
	if m.engine.Playing() {
		state = "playing"
	}
	b.WriteString(m.styles.label.Render(fmt.Sprintf("space: play/pause  [%s]", state)))
	b.WriteString("\n")

	ratio := 0.0
	if m.totalFrames > 0 {
		ratio = float64(m.engine.Playhead()) / float64(m.totalFrames)
		if ratio > 1 {
			ratio = 1
		}
	}
	b.WriteString(m.progress.ViewAs(ratio))
	b.WriteString("\n\n")

	b.WriteString(m.styles.label.Render("retrigger"))
	b.WriteString("  ")
	b.WriteString(m.renderPadRow(m.retriggerPads))
	b.WriteString("\n")

	b.WriteString(m.styles.label.Render("trancegate"))
	b.WriteString(" ")
	b.WriteString(m.renderPadRow(m.tranceGatePads))
	b.WriteString("\n")

	return m.styles.container.Render(b.String())
}

func (m Model) renderPadRow(pads []pad) string {
	cells := make([]string, len(pads))
	for i, p := range pads {
		style := m.styles.inactive
		if p.on {
			style = m.styles.active
		}
		cells[i] = style.Render(fmt.Sprintf(" %s ", p.label))
	}
	return strings.Join(cells, " ")
}
