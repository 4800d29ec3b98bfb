package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrScheduleClockInvalid   = errors.New("schedule clock must be HH:MM")
	ErrScheduleRangeInvalid   = errors.New("schedule close must be after open")
	ErrScheduleStepInvalid    = errors.New("schedule slot length must be positive")
	ErrScheduleWeekdayInvalid = errors.New("schedule weekday is unknown")
)

var weekdaysByName = map[string]time.Weekday{}

func init() {
	for day := time.Sunday; day <= time.Saturday; day++ {
		weekdaysByName[strings.ToLower(day.String())] = day
		weekdaysByName[strings.ToLower(day.String()[:3])] = day
	}
}

// Schedule describes the bookable day: slots start at Open and every
// SlotMinutes after it, as long as the slot ends by Close.
type Schedule struct {
	OpenMinute     int
	CloseMinute    int
	SlotMinutes    int
	ClosedWeekdays map[time.Weekday]bool
}

func NewSchedule(open string, close string, slotMinutes int, closedWeekdays []string) (Schedule, error) {
	openMinute, err := ParseClock(open)
	if err != nil {
		return Schedule{}, err
	}
	closeMinute, err := ParseClock(close)
	if err != nil {
		return Schedule{}, err
	}
	if closeMinute <= openMinute {
		return Schedule{}, ErrScheduleRangeInvalid
	}
	if slotMinutes <= 0 {
		return Schedule{}, ErrScheduleStepInvalid
	}

	closed := make(map[time.Weekday]bool, len(closedWeekdays))
	for _, raw := range closedWeekdays {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		weekday, ok := weekdaysByName[name]
		if !ok {
			return Schedule{}, fmt.Errorf("%w: %q", ErrScheduleWeekdayInvalid, raw)
		}
		closed[weekday] = true
	}

	return Schedule{
		OpenMinute:     openMinute,
		CloseMinute:    closeMinute,
		SlotMinutes:    slotMinutes,
		ClosedWeekdays: closed,
	}, nil
}

// ParseClock converts "HH:MM" into minutes after midnight.
func ParseClock(raw string) (int, error) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrScheduleClockInvalid, raw)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func (schedule Schedule) IsClosed(weekday time.Weekday) bool {
	return schedule.ClosedWeekdays[weekday]
}

// SlotStarts lists slot start minutes in ascending order.
func (schedule Schedule) SlotStarts() []int {
	if schedule.SlotMinutes <= 0 {
		return []int{}
	}
	starts := make([]int, 0, (schedule.CloseMinute-schedule.OpenMinute)/schedule.SlotMinutes)
	for start := schedule.OpenMinute; start+schedule.SlotMinutes <= schedule.CloseMinute; start += schedule.SlotMinutes {
		starts = append(starts, start)
	}
	return starts
}
