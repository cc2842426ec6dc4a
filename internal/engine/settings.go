package engine

import (
	"errors"
	"fmt"

	"github.com/atomicstack/kmouse/internal/grid"
)

// Validate checks the settings before they reach a frame.
func (s Settings) Validate() error {
	var errs []error
	if s.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("cell size must be > 0 (got %g)", s.CellSize))
	}
	if s.Scale <= 0 {
		errs = append(errs, fmt.Errorf("scale must be > 0 (got %g)", s.Scale))
	}
	if len(s.Primary) == 0 {
		errs = append(errs, errors.New("primary alphabet must not be empty"))
	}
	if len(s.Secondary) == 0 {
		errs = append(errs, errors.New("secondary alphabet must not be empty"))
	}
	if s.Primary.Contains(s.ResetKey) || s.Secondary.Contains(s.ResetKey) {
		errs = append(errs, fmt.Errorf("reset key %q collides with an alphabet symbol", s.ResetKey))
	}
	if grid.MicroSymbols.Contains(s.ResetKey) {
		errs = append(errs, fmt.Errorf("reset key %q collides with a micro grid symbol", s.ResetKey))
	}
	return errors.Join(errs...)
}
