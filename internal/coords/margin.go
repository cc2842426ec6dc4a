package coords

// Margin is an inset. Values derived from the desktop are physical pixels;
// Logical converts them for the overlay's coordinate space.
type Margin struct {
	Top    float64
	Left   float64
	Right  float64
	Bottom float64
}

// Zero is the empty margin.
var Zero = Margin{}

// IsZero reports whether every side is zero.
func (m Margin) IsZero() bool {
	return m == Zero
}

// WorkArea is the usable screen region reported by the window manager.
type WorkArea struct {
	X      int
	Y      int
	Width  int
	Height int
}

// MarginFromWorkArea derives the physical insets that separate the work area
// from the full screen.
func MarginFromWorkArea(screenW, screenH int, wa WorkArea) Margin {
	return Margin{
		Top:    float64(wa.Y),
		Left:   float64(wa.X),
		Right:  float64(screenW - (wa.X + wa.Width)),
		Bottom: float64(screenH - (wa.Y + wa.Height)),
	}
}

// Logical divides a physical margin by the device scale.
func (m Margin) Logical(scale float64) Margin {
	if scale <= 0 {
		scale = 1
	}
	return Margin{
		Top:    m.Top / scale,
		Left:   m.Left / scale,
		Right:  m.Right / scale,
		Bottom: m.Bottom / scale,
	}
}

// Margins tracks the render and click margins separately. Both are set from
// the same physical offset at startup and only the render margin is ever
// zeroed. They are kept physical so a live scale change converts them again.
type Margins struct {
	render Margin
	click  Margin
}

// NewMargins seeds both margins from one physical offset.
func NewMargins(m Margin) Margins {
	return Margins{render: m, click: m}
}

// Collapse zeroes the render margin once the overlay owns the screen origin.
func (m *Margins) Collapse() {
	m.render = Zero
}

// Render is the logical inset applied to the drawable area.
func (m Margins) Render(scale float64) Margin {
	return m.render.Logical(scale)
}

// Click is the logical offset added back when converting to screen
// coordinates.
func (m Margins) Click(scale float64) Margin {
	return m.click.Logical(scale)
}
