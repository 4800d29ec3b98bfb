package picker

const (
	GridCellLimit  = 42
	LeadInDayLimit = 14
)

// CalendarCell is one slot of the month grid. Placeholder cells pad the first
// week so that day 1 lands under its weekday column; they carry no date.
type CalendarCell struct {
	Date         Date
	Placeholder  bool
	InMonth      bool
	IsSelectable bool
	IsToday      bool
}

// Generate lays out today's month on a Sunday-first grid followed by up to
// LeadInDayLimit days of the next month, never exceeding GridCellLimit cells.
// Days strictly before today are not selectable.
func Generate(today Date) []CalendarCell {
	monthStart := NewDate(today.Year, today.Month, 1)
	daysInMonth := DaysIn(today.Year, today.Month)

	cells := make([]CalendarCell, 0, GridCellLimit)
	for index := 0; index < int(monthStart.Weekday()); index++ {
		cells = append(cells, CalendarCell{Placeholder: true})
	}

	for day := 1; day <= daysInMonth; day++ {
		date := NewDate(today.Year, today.Month, day)
		cells = append(cells, CalendarCell{
			Date:         date,
			InMonth:      true,
			IsSelectable: !date.Before(today),
			IsToday:      date == today,
		})
	}

	nextMonth := NewDate(today.Year, today.Month+1, 1)
	leadIn := min(LeadInDayLimit, DaysIn(nextMonth.Year, nextMonth.Month))
	for day := 1; day <= leadIn && len(cells) < GridCellLimit; day++ {
		cells = append(cells, CalendarCell{
			Date:         NewDate(nextMonth.Year, nextMonth.Month, day),
			IsSelectable: true,
		})
	}

	return cells
}

// WeekRows splits cells into rows of seven for rendering.
func WeekRows(cells []CalendarCell) [][]CalendarCell {
	rows := make([][]CalendarCell, 0, (len(cells)+6)/7)
	for start := 0; start < len(cells); start += 7 {
		end := min(start+7, len(cells))
		rows = append(rows, cells[start:end])
	}
	return rows
}

// FindCell returns the grid cell holding date, if the grid shows it.
func FindCell(cells []CalendarCell, date Date) (CalendarCell, bool) {
	for _, cell := range cells {
		if !cell.Placeholder && cell.Date == date {
			return cell, true
		}
	}
	return CalendarCell{}, false
}
