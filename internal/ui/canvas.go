package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/kmouse/internal/grid"
)

type paint int

const (
	paintNone paint = iota
	paintMark
	paintLabel
	paintPinned
	paintLocked
	paintMicro
)

func styleFor(p paint) *lipgloss.Style {
	switch p {
	case paintMark:
		return styles.GridMark
	case paintLabel:
		return styles.Label
	case paintPinned:
		return styles.PinnedLabel
	case paintLocked:
		return styles.LockedCell
	case paintMicro:
		return styles.MicroLabel
	default:
		return nil
	}
}

// canvas is a fixed grid of terminal cells. Writes outside the grid are
// dropped.
type canvas struct {
	w, h   int
	runes  [][]rune
	paints [][]paint
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, runes: make([][]rune, h), paints: make([][]paint, h)}
	for y := 0; y < h; y++ {
		c.runes[y] = []rune(strings.Repeat(" ", w))
		c.paints[y] = make([]paint, w)
	}
	return c
}

func (c *canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.w && y < c.h
}

func (c *canvas) set(x, y int, r rune, p paint) {
	if !c.inside(x, y) {
		return
	}
	c.runes[y][x] = r
	c.paints[y][x] = p
}

func (c *canvas) text(x, y int, s string, p paint) {
	for _, r := range s {
		c.set(x, y, r, p)
		x++
	}
}

// fill paints the half-open box [x0,x1)x[y0,y1) without changing its runes.
func (c *canvas) fill(x0, y0, x1, y1 int, p paint) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if c.inside(x, y) {
				c.paints[y][x] = p
			}
		}
	}
}

// lines renders each row, styling runs of equal paint together.
func (c *canvas) lines() []string {
	out := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		var b strings.Builder
		start := 0
		for x := 1; x <= c.w; x++ {
			if x < c.w && c.paints[y][x] == c.paints[y][start] {
				continue
			}
			run := string(c.runes[y][start:x])
			if style := styleFor(c.paints[y][start]); style != nil {
				run = style.Render(run)
			}
			b.WriteString(run)
			start = x
		}
		out[y] = strings.TrimRight(b.String(), " ")
	}
	return out
}

// projection maps logical overlay units onto terminal cells.
type projection struct {
	sx, sy float64
}

func newProjection(logicalW, logicalH float64, cols, rows int) projection {
	p := projection{}
	if logicalW > 0 {
		p.sx = float64(cols) / logicalW
	}
	if logicalH > 0 {
		p.sy = float64(rows) / logicalH
	}
	return p
}

func (p projection) point(pt grid.Point) (int, int) {
	return int(pt.X * p.sx), int(pt.Y * p.sy)
}

// box returns the terminal cells covered by r; it is never empty.
func (p projection) box(r grid.Rect) (x0, y0, x1, y1 int) {
	x0, y0 = p.point(r.Min)
	x1, y1 = p.point(grid.Point{X: r.Min.X + r.W, Y: r.Min.Y + r.H})
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return x0, y0, x1, y1
}
