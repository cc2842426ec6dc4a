package x11

import (
	"fmt"

	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Listen grabs key on the root window of its own connection and calls
// onPress for every press. It blocks in the X event loop for the life of the
// process and only returns on failure.
func Listen(display, key string, onPress func()) error {
	xu, err := connect(display)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrListenerStart, err)
	}
	keybind.Initialize(xu)

	handler := keybind.KeyPressFun(func(_ *xgbutil.XUtil, _ xevent.KeyPressEvent) {
		onPress()
	})
	if err := handler.Connect(xu, xu.RootWin(), key, true); err != nil {
		xu.Conn().Close()
		return fmt.Errorf("%w: grab %q: %v", ErrListenerStart, key, err)
	}

	xevent.Main(xu)
	return ErrListenerStopped
}
