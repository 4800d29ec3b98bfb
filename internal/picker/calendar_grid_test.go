package picker

import (
	"testing"
	"time"
)

func mustParseDate(t *testing.T, raw string) Date {
	t.Helper()
	date, err := ParseDate(raw)
	if err != nil {
		t.Fatalf("parse date %q: %v", raw, err)
	}
	return date
}

func TestGenerateMidMonthSaturday(t *testing.T) {
	t.Parallel()

	today := mustParseDate(t, "2024-06-15")
	cells := Generate(today)

	if len(cells) != GridCellLimit {
		t.Fatalf("expected %d cells, got %d", GridCellLimit, len(cells))
	}
	for index := 0; index < 6; index++ {
		if !cells[index].Placeholder {
			t.Fatalf("expected placeholder at index %d, got %+v", index, cells[index])
		}
		if cells[index].IsSelectable {
			t.Fatalf("expected placeholder at index %d to be unselectable", index)
		}
	}
	if cells[6].Placeholder || cells[6].Date != mustParseDate(t, "2024-06-01") {
		t.Fatalf("expected 2024-06-01 under the Saturday column, got %+v", cells[6])
	}

	todayCell, ok := FindCell(cells, today)
	if !ok {
		t.Fatal("expected today in grid")
	}
	if !todayCell.IsToday || !todayCell.IsSelectable {
		t.Fatalf("expected today selectable and marked, got %+v", todayCell)
	}

	pastCell, ok := FindCell(cells, mustParseDate(t, "2024-06-10"))
	if !ok {
		t.Fatal("expected 2024-06-10 in grid")
	}
	if pastCell.IsSelectable {
		t.Fatal("expected past day to be unselectable")
	}

	lastCell := cells[len(cells)-1]
	if lastCell.Date != mustParseDate(t, "2024-07-06") || lastCell.InMonth {
		t.Fatalf("expected lead-in capped at 2024-07-06, got %+v", lastCell)
	}
}

func TestGenerateYearRollover(t *testing.T) {
	t.Parallel()

	today := mustParseDate(t, "2024-12-31")
	cells := Generate(today)

	if len(cells) != GridCellLimit {
		t.Fatalf("expected %d cells, got %d", GridCellLimit, len(cells))
	}
	if cells[0].Placeholder {
		t.Fatal("expected December 2024 to start on Sunday without padding")
	}

	leadIn := cells[31:]
	if len(leadIn) != 11 {
		t.Fatalf("expected 11 lead-in days, got %d", len(leadIn))
	}
	for index, cell := range leadIn {
		expected := NewDate(2025, time.January, index+1)
		if cell.Date != expected {
			t.Fatalf("expected lead-in %s, got %s", expected, cell.Date)
		}
		if !cell.IsSelectable || cell.IsToday || cell.InMonth {
			t.Fatalf("unexpected lead-in flags for %s: %+v", cell.Date, cell)
		}
	}

	lastDay, _ := FindCell(cells, today)
	if !lastDay.IsToday || !lastDay.IsSelectable {
		t.Fatalf("expected last day of month to be today and selectable, got %+v", lastDay)
	}
}

func TestGenerateShortMonthFillsExactly(t *testing.T) {
	t.Parallel()

	cells := Generate(mustParseDate(t, "2026-02-01"))
	if len(cells) != GridCellLimit {
		t.Fatalf("expected %d cells, got %d", GridCellLimit, len(cells))
	}
	if cells[0].Date != mustParseDate(t, "2026-02-01") {
		t.Fatalf("expected grid to start on 2026-02-01, got %+v", cells[0])
	}
	if cells[41].Date != mustParseDate(t, "2026-03-14") {
		t.Fatalf("expected full 14 day lead-in, got %s", cells[41].Date)
	}
}

func TestGenerateInvariantsAcrossTwoYears(t *testing.T) {
	t.Parallel()

	start := NewDate(2024, time.January, 1)
	for offset := 0; offset < 731; offset++ {
		today := start.AddDays(offset)
		cells := Generate(today)

		if len(cells) < 1 || len(cells) > GridCellLimit {
			t.Fatalf("%s: cell count %d out of range", today, len(cells))
		}

		padding := int(NewDate(today.Year, today.Month, 1).Weekday())
		daysInMonth := DaysIn(today.Year, today.Month)
		next := NewDate(today.Year, today.Month+1, 1)
		expectedDated := min(daysInMonth+min(LeadInDayLimit, DaysIn(next.Year, next.Month)), GridCellLimit-padding)

		dated := 0
		todayCount := 0
		for index, cell := range cells {
			if index < padding {
				if !cell.Placeholder {
					t.Fatalf("%s: expected placeholder at %d", today, index)
				}
				continue
			}
			if cell.Placeholder {
				t.Fatalf("%s: unexpected placeholder at %d", today, index)
			}
			dated++
			if cell.IsSelectable != !cell.Date.Before(today) {
				t.Fatalf("%s: selectable mismatch for %s", today, cell.Date)
			}
			if cell.IsToday {
				todayCount++
				if cell.Date != today {
					t.Fatalf("%s: %s marked as today", today, cell.Date)
				}
			}
		}
		if dated != expectedDated {
			t.Fatalf("%s: expected %d dated cells, got %d", today, expectedDated, dated)
		}
		if todayCount != 1 {
			t.Fatalf("%s: expected exactly one today cell, got %d", today, todayCount)
		}
	}
}

func TestWeekRows(t *testing.T) {
	t.Parallel()

	rows := WeekRows(Generate(mustParseDate(t, "2024-06-15")))
	if len(rows) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(rows))
	}
	for index, row := range rows {
		if len(row) != 7 {
			t.Fatalf("row %d: expected 7 cells, got %d", index, len(row))
		}
	}
}

func TestParseDateRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "2024-6-5", "2024-13-01", "2024-02-30", "15.06.2024"} {
		if _, err := ParseDate(raw); err == nil {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}

	date := mustParseDate(t, " 2024-02-29 ")
	if date.String() != "2024-02-29" {
		t.Fatalf("expected zero-padded round trip, got %q", date.String())
	}
}
