package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/slotpicker/internal/picker"
)

var ErrAvailabilityLoadFailed = errors.New("load availability failed")

type BookedTimesRepository interface {
	ListTimesByDate(date string) ([]string, error)
}

type AvailabilityService struct {
	bookings BookedTimesRepository
	schedule Schedule
	location *time.Location
	now      func() time.Time
}

func NewAvailabilityService(bookings BookedTimesRepository, schedule Schedule, location *time.Location, now func() time.Time) *AvailabilityService {
	if location == nil {
		location = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &AvailabilityService{
		bookings: bookings,
		schedule: schedule,
		location: location,
		now:      now,
	}
}

func (service *AvailabilityService) Today() picker.Date {
	return picker.DateOf(service.now().In(service.location))
}

// AvailableTimes returns the free slot labels for date in ascending order.
// Past dates and closed weekdays have none; for today only slots that have not
// started yet are offered.
func (service *AvailabilityService) AvailableTimes(date picker.Date) ([]string, error) {
	now := service.now().In(service.location)
	today := picker.DateOf(now)
	if date.Before(today) || service.schedule.IsClosed(date.Weekday()) {
		return []string{}, nil
	}

	booked, err := service.bookings.ListTimesByDate(date.String())
	if err != nil {
		return nil, ErrAvailabilityLoadFailed
	}
	taken := make(map[string]bool, len(booked))
	for _, label := range booked {
		taken[label] = true
	}

	currentMinute := -1
	if date == today {
		currentMinute = now.Hour()*60 + now.Minute()
	}

	available := make([]string, 0)
	for _, start := range service.schedule.SlotStarts() {
		if start <= currentMinute {
			continue
		}
		label := FormatClock(start)
		if taken[label] {
			continue
		}
		available = append(available, label)
	}
	return available, nil
}

func (service *AvailabilityService) IsAvailable(date picker.Date, label string) (bool, error) {
	available, err := service.AvailableTimes(date)
	if err != nil {
		return false, err
	}
	for _, candidate := range available {
		if candidate == label {
			return true, nil
		}
	}
	return false, nil
}
