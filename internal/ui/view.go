package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/kmouse/internal/focus"
	"github.com/atomicstack/kmouse/internal/grid"
)

const markRune = '·'

// View implements tea.Model. A hidden overlay renders nothing.
func (m *Model) View() string {
	if m.quitting || !m.plan.Visible {
		return ""
	}
	w, h := m.termSize()
	rows := h - 1
	if rows < 1 {
		rows = 1
	}
	vp := m.viewport()
	c := newCanvas(w, rows)
	proj := newProjection(vp.Width, vp.Height, w, rows)

	labelPaint := paintLabel
	if m.plan.Focus.Phase() != focus.PhaseEmpty {
		labelPaint = paintPinned
	}
	locked := m.plan.Locked
	for _, cell := range m.plan.Cells {
		x0, y0, x1, _ := proj.box(cell.Rect)
		c.set(x0, y0, markRune, paintMark)
		// A locked cell shows its micro labels instead.
		if locked == nil {
			drawCentered(c, proj, cell.Rect, cell.Address.Label(), x1-x0, labelPaint)
		}
	}
	if locked != nil {
		x0, y0, x1, y1 := proj.box(locked.Rect)
		c.fill(x0, y0, x1, y1, paintLocked)
		for _, mc := range m.plan.Micro {
			mx0, _, mx1, _ := proj.box(mc.Rect)
			drawCentered(c, proj, mc.Rect, mc.Symbol.String(), mx1-mx0, paintMicro)
		}
	}

	lines := c.lines()
	lines = append(lines, m.statusLine(w))
	return strings.Join(lines, "\n")
}

func drawCentered(c *canvas, proj projection, r grid.Rect, label string, width int, p paint) {
	label = ansi.Truncate(label, width, "")
	cx, cy := proj.point(r.Center())
	x := cx - ansi.StringWidth(label)/2
	if x0, _ := proj.point(r.Min); x < x0 {
		x = x0
	}
	c.text(x, cy, label, p)
}

func (m *Model) statusLine(width int) string {
	text := m.plan.Focus.String()
	if m.status != "" && m.status != text {
		text += "  " + m.status
	}
	text = ansi.Truncate(text, width, "…")
	style := styles.Status
	if m.statusErr {
		style = styles.StatusError
	}
	if style == nil {
		return text
	}
	return style.Render(text)
}
