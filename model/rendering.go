package model

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "░░"

	plainAlive = "#"
	plainDead  = "."

	clearScreen = "\x1b[2J\x1b[1;1H"
)

// AgeBand groups cell ages into display tiers
type AgeBand int

const (
	BandNewborn AgeBand = iota // age 0
	BandYoung                  // 1-2
	BandAdult                  // 3-5
	BandOld                    // 6-10
	BandAncient                // 11+
)

// AgeBandOf maps an age onto its display tier
func AgeBandOf(age int) AgeBand {
	switch {
	case age <= 0:
		return BandNewborn
	case age <= 2:
		return BandYoung
	case age <= 5:
		return BandAdult
	case age <= 10:
		return BandOld
	default:
		return BandAncient
	}
}

var (
	bandStyles = [...]lipgloss.Style{
		BandNewborn: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		BandYoung:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		BandAdult:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		BandOld:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
		BandAncient: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	ageStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	hintStyle   = lipgloss.NewStyle().Faint(true)
)

// Renderer consumes one snapshot per tick
type Renderer interface {
	Render(s Snapshot) error
}

// TerminalRenderer draws the declared grid with age-coloured blocks
type TerminalRenderer struct {
	Out io.Writer
	// Status is printed under the header when set
	Status string
}

// Grid renders the cells inside the declared grid as coloured rows
func (r *TerminalRenderer) Grid(s Snapshot) string {
	var b strings.Builder
	for y := range s.Height {
		for x := range s.Width {
			age, alive := s.cells[Position{X: x, Y: y}]
			if !alive {
				b.WriteString(emptyStyle.Render(gridPosEmpty))
				continue
			}
			b.WriteString(bandStyles[AgeBandOf(age)].Render(gridPosBlock))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Header returns the title and summary lines shown above the grid
func (r *TerminalRenderer) Header(s Snapshot) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Conway's Game of Life"))
	b.WriteByte('\n')
	b.WriteString(headerStyle.Render(fmt.Sprintf("Grid: %dx%d | Generation: %d | Living cells: %d",
		s.Width, s.Height, s.Generation, s.Len())))
	b.WriteByte('\n')
	if s.HasAges && s.Len() > 0 {
		maxAge, mean := s.AgeStats()
		b.WriteString(ageStyle.Render(fmt.Sprintf("Max age: %d | Average age: %.1f", maxAge, mean)))
		b.WriteByte('\n')
	}
	if r.Status != "" {
		b.WriteString(r.Status)
		b.WriteByte('\n')
	}
	return b.String()
}

// Render clears the screen and draws the snapshot
func (r *TerminalRenderer) Render(s Snapshot) error {
	frame := clearScreen + r.Header(s) + "\n" + r.Grid(s) + hintStyle.Render("Press Ctrl+C to stop") + "\n"
	if _, err := io.WriteString(r.Out, frame); err != nil {
		return errors.Wrap(err, "[TerminalRenderer.Render] failed to write frame")
	}
	return nil
}

// PlainRenderer writes an uncoloured grid, one frame after another
type PlainRenderer struct {
	Out io.Writer
}

// Frame returns the grid as rows of '#' and '.'
func (r *PlainRenderer) Frame(s Snapshot) string {
	var b strings.Builder
	for y := range s.Height {
		for x := range s.Width {
			if s.Alive(Position{X: x, Y: y}) {
				b.WriteString(plainAlive)
			} else {
				b.WriteString(plainDead)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Render prints a generation line followed by the grid
func (r *PlainRenderer) Render(s Snapshot) error {
	if _, err := fmt.Fprintf(r.Out, "Gen: %d | Living: %d\n%s\n", s.Generation, s.Len(), r.Frame(s)); err != nil {
		return errors.Wrap(err, "[PlainRenderer.Render] failed to write frame")
	}
	return nil
}
