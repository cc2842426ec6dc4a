package app

import (
	"fmt"
	"strconv"

	"github.com/atomicstack/kmouse/internal/engine"
	"github.com/atomicstack/kmouse/internal/format/table"
)

// GridTable lists every drawable address with its cell center and the screen
// pixel that center maps to.
func GridTable(eng *engine.Engine, vp engine.Viewport) []string {
	_, _, layout := eng.Layout(vp)
	mapper := eng.Mapper()
	cells := layout.Cells(eng.Addresses())

	rows := make([][]string, 0, len(cells)+1)
	rows = append(rows, []string{"ADDR", "ROW", "COL", "CENTER", "TARGET"})
	for _, c := range cells {
		center := c.Rect.Center()
		x, y := mapper.Target(center)
		rows = append(rows, []string{
			c.Address.Label(),
			strconv.Itoa(c.Row),
			strconv.Itoa(c.Col),
			fmt.Sprintf("%.1f,%.1f", center.X, center.Y),
			fmt.Sprintf("%d,%d", x, y),
		})
	}
	return table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight, table.AlignRight, table.AlignRight, table.AlignLeft})
}
