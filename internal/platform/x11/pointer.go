package x11

import (
	"fmt"
	"math"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"
)

const buttonLeft = 1

// Pointer moves and clicks the pointer through the XTEST extension.
type Pointer struct {
	session *Session
}

// NewPointer initialises XTEST on the session's connection.
func NewPointer(s *Session) (*Pointer, error) {
	if err := xtest.Init(s.xu.Conn()); err != nil {
		return nil, fmt.Errorf("%w: XTEST extension: %v", ErrInputInjection, err)
	}
	return &Pointer{session: s}, nil
}

// MoveAndClick warps to (x, y) in root coordinates and clicks the left
// button. Each request is checked so a failure is reported synchronously.
func (p *Pointer) MoveAndClick(x, y int) error {
	rx, ry, err := rootCoords(x, y)
	if err != nil {
		return err
	}
	conn := p.session.xu.Conn()
	root := p.session.xu.RootWin()

	steps := []struct {
		name   string
		typ    byte
		detail byte
	}{
		{"motion", xproto.MotionNotify, 0},
		{"button press", xproto.ButtonPress, buttonLeft},
		{"button release", xproto.ButtonRelease, buttonLeft},
	}
	for _, step := range steps {
		err := xtest.FakeInputChecked(conn, step.typ, step.detail, xproto.TimeCurrentTime, root, rx, ry, 0).Check()
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInputInjection, step.name, err)
		}
	}
	return nil
}

func rootCoords(x, y int) (int16, int16, error) {
	if x < 0 || y < 0 || x > math.MaxInt16 || y > math.MaxInt16 {
		return 0, 0, fmt.Errorf("%w: %d,%d is outside the X coordinate range", ErrInputInjection, x, y)
	}
	return int16(x), int16(y), nil
}
