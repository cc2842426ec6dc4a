package coords

import (
	"math"

	"github.com/atomicstack/kmouse/internal/grid"
)

// Resolve converts an overlay-local cell center to an absolute pixel. m is
// in logical units.
func Resolve(center grid.Point, m Margin, scale float64) (int, int) {
	x := math.Round((center.X + m.Left) * scale)
	y := math.Round((center.Y + m.Top) * scale)
	return int(x), int(y)
}

// Mapper binds the click margin and device scale used for every target.
type Mapper struct {
	Margins Margins
	Scale   float64
}

// Target resolves center using the click margin.
func (m Mapper) Target(center grid.Point) (int, int) {
	scale := m.Scale
	if scale <= 0 {
		scale = 1
	}
	return Resolve(center, m.Margins.Click(scale), scale)
}
