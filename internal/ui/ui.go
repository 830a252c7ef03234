// Package ui provides the terminal frame player using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skysim/internal/output"
	"github.com/litescript/ls-skysim/internal/render"
	"github.com/litescript/ls-skysim/internal/version"
)

const (
	minFPS = 0.5
	maxFPS = 60.0
)

// Msg types for Bubble Tea
type (
	// AnimTickMsg drives the footer spinner.
	AnimTickMsg time.Time

	// frameTickMsg advances playback. Ticks from an earlier play session
	// carry an old generation and are dropped.
	frameTickMsg struct {
		gen int
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	frames []render.Frame

	// Playback
	index   int
	playing bool
	fps     float64
	gen     int

	// UI state
	width    int
	height   int
	ready    bool
	animTick int

	skyView SkyViewModel
}

// New creates a player for frames at fps frames per second.
func New(frames []render.Frame, fps float64) Model {
	return Model{
		frames:  frames,
		fps:     clampFPS(fps),
		skyView: NewSkyViewModel(),
	}
}

// Index returns the frame on screen.
func (m Model) Index() int { return m.index }

// Playing reports whether playback is running.
func (m Model) Playing() bool { return m.playing }

// FPS returns the playback rate.
func (m Model) FPS() float64 { return m.fps }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return animTickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "p":
			if cmd := m.togglePlay(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		case "right", "l", "n":
			m.playing = false
			m.step(1)
		case "left", "h", "N":
			m.playing = false
			m.step(-1)
		case "home", "g":
			m.playing = false
			m.index = 0
		case "end", "G":
			m.playing = false
			m.index = max(0, len(m.frames)-1)
		case "+", "=":
			m.fps = clampFPS(m.fps * 2)
		case "-":
			m.fps = clampFPS(m.fps / 2)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		// Header takes 3 lines, footer 2
		m.skyView = m.skyView.SetSize(msg.Width, msg.Height-5)

	case frameTickMsg:
		if m.playing && msg.gen == m.gen {
			m.step(1)
			cmds = append(cmds, m.frameTickCmd())
		}

	case AnimTickMsg:
		m.animTick++
		cmds = append(cmds, animTickCmd())
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) togglePlay() tea.Cmd {
	if len(m.frames) < 2 {
		return nil
	}
	m.playing = !m.playing
	if !m.playing {
		return nil
	}
	m.gen++
	return m.frameTickCmd()
}

// step moves by delta frames, wrapping at both ends.
func (m *Model) step(delta int) {
	n := len(m.frames)
	if n == 0 {
		return
	}
	m.index = ((m.index+delta)%n + n) % n
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if len(m.frames) == 0 {
		return m.renderHeader() + "\n  No frames rendered.\n"
	}

	f := m.frames[m.index]
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.skyView.View(f))
	b.WriteString("\n")
	b.WriteString(m.renderFooter(f))
	return b.String()
}

func (m Model) renderHeader() string {
	title := " ls-skysim"
	var b strings.Builder
	runes := []rune(title)
	for col, r := range runes {
		color := gradientColor(col, 0, len(runes), 1)
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).Render(string(r)))
	}
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render(fmt.Sprintf("  v%s · sky frame player", version.Version)))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderFooter(f render.Frame) string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	state := dimStyle.Render("■ paused")
	if m.playing {
		state = accentStyle.Render(spinnerFrames[m.animTick%len(spinnerFrames)] + " playing")
	}

	pos := fmt.Sprintf("%d/%d", m.index+1, len(m.frames))
	status := "  " + state + "  " + dimStyle.Render(pos) + "  " + output.Caption(f) +
		dimStyle.Render(fmt.Sprintf("  %.1f fps", m.fps))
	help := dimStyle.Render("  space: play/pause | ←/→: step | g/G: first/last | +/-: speed | q: quit")
	return status + "\n" + help
}

// gradientColor returns a hex color for a position in the title gradient:
// blue -> purple -> magenta -> pink, fading toward the bottom.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	var r, g, b float64
	if xRatio < 0.33 {
		t := xRatio / 0.33
		r = 59 + t*(139-59)
		g = 130 + t*(92-130)
		b = 246
	} else if xRatio < 0.66 {
		t := (xRatio - 0.33) / 0.33
		r = 139 + t*(217-139)
		g = 92 + t*(70-92)
		b = 246 + t*(239-246)
	} else {
		t := (xRatio - 0.66) / 0.34
		r = 217 + t*(236-217)
		g = 70 + t*(72-70)
		b = 239 + t*(153-239)
	}

	f := 1.0 - (yRatio * 0.5)
	return fmt.Sprintf("#%02X%02X%02X", byteOf(r*f), byteOf(g*f), byteOf(b*f))
}

func byteOf(v float64) int {
	return min(255, max(0, int(v)))
}

func clampFPS(fps float64) float64 {
	if !(fps > 0) {
		return 10
	}
	return min(maxFPS, max(minFPS, fps))
}

func (m Model) frameTickCmd() tea.Cmd {
	gen := m.gen
	return tea.Tick(time.Duration(float64(time.Second)/m.fps), func(time.Time) tea.Msg {
		return frameTickMsg{gen: gen}
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}
