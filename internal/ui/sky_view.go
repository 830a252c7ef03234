package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skysim/internal/output"
	"github.com/litescript/ls-skysim/internal/render"
)

// SkyViewModel draws one frame scaled down to the viewport.
type SkyViewModel struct {
	width  int
	height int
}

// NewSkyViewModel creates a new sky view model.
func NewSkyViewModel() SkyViewModel {
	return SkyViewModel{}
}

// SetSize updates the viewport size.
func (m SkyViewModel) SetSize(width, height int) SkyViewModel {
	m.width = width
	m.height = height
	return m
}

// View renders f.
func (m SkyViewModel) View(f render.Frame) string {
	if m.width < 20 || m.height < 4 {
		return "Sky view requires larger terminal"
	}
	if f.Image == nil {
		return ""
	}
	cols := m.columns(f.Image.Width, f.Image.Height)
	return lipgloss.NewStyle().PaddingLeft(2).Render(output.Preview(f.Image, cols))
}

// columns picks the widest preview that fits the viewport. Each text row
// holds two pixel rows and the frame is never enlarged.
func (m SkyViewModel) columns(imgW, imgH int) int {
	byHeight := 2 * m.height * imgW / max(1, imgH)
	return max(1, min(m.width-2, byHeight, imgW))
}
