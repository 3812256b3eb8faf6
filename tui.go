package main

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
)

const (
	minFrameRate = 10 * time.Millisecond
	maxFrameRate = 2 * time.Second
)

var (
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	endedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// tickMsg belongs to the tick chain numbered seq; ticks from older chains are dropped
type tickMsg struct {
	seq int
}

// tuiModel is the bubbletea model driving a game interactively
type tuiModel struct {
	game     *game
	renderer *model.TerminalRenderer
	current  frame
	delay    time.Duration
	paused   bool
	done     bool
	seq      int // current tick chain
}

func newTUIModel(g *game) tuiModel {
	return tuiModel{
		game:     g,
		renderer: &model.TerminalRenderer{},
		current:  g.observe(),
		delay:    clampDelay(g.config.FrameRate),
	}
}

func clampDelay(d time.Duration) time.Duration {
	return min(max(d, minFrameRate), maxFrameRate)
}

func (m tuiModel) tick() tea.Cmd {
	seq := m.seq
	return tea.Tick(m.delay, func(time.Time) tea.Msg { return tickMsg{seq: seq} })
}

// restartTicks starts a new tick chain, orphaning any tick still in flight
func (m tuiModel) restartTicks() (tuiModel, tea.Cmd) {
	m.seq++
	return m, m.tick()
}

func (m tuiModel) Init() tea.Cmd {
	return m.tick()
}

// step advances the game once and observes the new generation
func (m tuiModel) step() tuiModel {
	if m.game.advance() {
		m.done = true
		return m
	}
	m.current = m.game.observe()
	return m
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if msg.seq != m.seq || m.done || m.paused {
			return m, nil
		}
		m = m.step()
		if m.done {
			return m, nil
		}
		return m, m.tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if !m.done {
				m.game.endReason = reasonInterrupted
			}
			return m, tea.Quit
		case " ":
			if m.done {
				return m, nil
			}
			m.paused = !m.paused
			if !m.paused {
				return m.restartTicks()
			}
		case "n":
			if m.paused && !m.done {
				m = m.step()
			}
		case "+", "=":
			m.delay = clampDelay(m.delay / 2)
		case "-":
			m.delay = clampDelay(m.delay * 2)
		case "r":
			m.game.manualRestart()
			m.current = m.game.observe()
			if m.done {
				m.done = false
				if !m.paused {
					return m.restartTicks()
				}
			}
		}
	}
	return m, nil
}

func (m tuiModel) View() string {
	var b strings.Builder
	m.renderer.Status = m.current.status
	b.WriteString(m.renderer.Header(m.current.snap))
	b.WriteByte('\n')
	b.WriteString(m.renderer.Grid(m.current.snap))

	if m.done {
		b.WriteString(endedStyle.Render("Simulation ended: " + m.game.endReason))
		b.WriteByte('\n')
	}
	state := "running"
	if m.paused {
		state = "paused"
	}
	b.WriteString(helpStyle.Render(
		"space pause/resume · n step · +/- speed (" + m.delay.String() + ") · r restart · q quit · " + state))
	b.WriteByte('\n')
	return b.String()
}

// runTUI runs the interactive terminal UI until the user quits or ctx is cancelled
func runTUI(ctx context.Context, g *game) error {
	p := tea.NewProgram(newTUIModel(g), tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			g.endReason = reasonInterrupted
			return nil
		}
		return errors.Wrap(err, "[runTUI] bubbletea program")
	}
	return nil
}
