package grid

import "math"

// Point is a position in overlay-local logical units.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle anchored at Min.
type Rect struct {
	Min Point
	W   float64
	H   float64
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.Min.X + r.W/2, Y: r.Min.Y + r.H/2}
}

// Layout is the first-level grid geometry for one frame.
type Layout struct {
	Cols   int
	Rows   int
	CellW  float64
	CellH  float64
	Origin Point
}

// ComputeLayout fits as many cells of the desired size as the available area
// allows (at least one per axis) and stretches them to fill it exactly.
func ComputeLayout(availW, availH, desired float64, origin Point) Layout {
	cols, rows := 1, 1
	if desired > 0 {
		cols = fitCount(availW, desired)
		rows = fitCount(availH, desired)
	}
	return Layout{
		Cols:   cols,
		Rows:   rows,
		CellW:  availW / float64(cols),
		CellH:  availH / float64(rows),
		Origin: origin,
	}
}

func fitCount(avail, desired float64) int {
	n := math.Floor(avail / desired)
	if math.IsNaN(n) || n < 1 {
		return 1
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}

// Capacity is the number of cells drawn this frame.
func (l Layout) Capacity() int {
	return l.Cols * l.Rows
}

// CellRect returns the rectangle of the cell at the row-major index.
func (l Layout) CellRect(index int) Rect {
	row := index / l.Cols
	col := index % l.Cols
	return Rect{
		Min: Point{
			X: l.Origin.X + float64(col)*l.CellW,
			Y: l.Origin.Y + float64(row)*l.CellH,
		},
		W: l.CellW,
		H: l.CellH,
	}
}

// Cell pairs an address with its on-screen placement.
type Cell struct {
	Address Address
	Index   int
	Row     int
	Col     int
	Rect    Rect
}

// Cells places addresses row-major. Addresses beyond the layout's capacity
// are not placed this frame.
func (l Layout) Cells(addrs []Address) []Cell {
	n := len(addrs)
	if c := l.Capacity(); c < n {
		n = c
	}
	out := make([]Cell, n)
	for i := 0; i < n; i++ {
		out[i] = Cell{
			Address: addrs[i],
			Index:   i,
			Row:     i / l.Cols,
			Col:     i % l.Cols,
			Rect:    l.CellRect(i),
		}
	}
	return out
}
