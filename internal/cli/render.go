package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/terraincognita07/slotpicker/internal/picker"
)

const weekdayHeader = "Su  Mo  Tu  We  Th  Fr  Sa"

// RenderCalendar prints the grid one week per line. Today is marked with "*",
// days that cannot be picked with ".".
func RenderCalendar(out io.Writer, cells []picker.CalendarCell) {
	for _, cell := range cells {
		if cell.InMonth {
			fmt.Fprintf(out, "%s %d\n", cell.Date.Month, cell.Date.Year)
			break
		}
	}
	fmt.Fprintln(out, weekdayHeader)

	for _, row := range picker.WeekRows(cells) {
		rendered := make([]string, 0, len(row))
		for _, cell := range row {
			rendered = append(rendered, renderCell(cell))
		}
		fmt.Fprintln(out, strings.TrimRight(strings.Join(rendered, " "), " "))
	}
	fmt.Fprintln(out, "* today  . unavailable")
}

func renderCell(cell picker.CalendarCell) string {
	if cell.Placeholder {
		return "   "
	}
	marker := " "
	switch {
	case cell.IsToday:
		marker = "*"
	case !cell.IsSelectable:
		marker = "."
	}
	return fmt.Sprintf("%2d%s", cell.Date.Day, marker)
}
