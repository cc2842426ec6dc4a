package grid

const (
	MicroCols = 4
	MicroRows = 4
)

// MicroCell is one sub-cell of a locked first-level cell.
type MicroCell struct {
	Symbol Symbol
	Rect   Rect
}

// MicroCellSize subdivides a parent cell evenly into the fixed 4x4 grid.
func MicroCellSize(parentW, parentH float64) (float64, float64) {
	return parentW / MicroCols, parentH / MicroRows
}

// MicroLayout places the micro symbols inside parent, row-major.
func MicroLayout(parent Rect) []MicroCell {
	w, h := MicroCellSize(parent.W, parent.H)
	out := make([]MicroCell, len(MicroSymbols))
	for i, sym := range MicroSymbols {
		row := i / MicroCols
		col := i % MicroCols
		out[i] = MicroCell{
			Symbol: sym,
			Rect: Rect{
				Min: Point{X: parent.Min.X + float64(col)*w, Y: parent.Min.Y + float64(row)*h},
				W:   w,
				H:   h,
			},
		}
	}
	return out
}
