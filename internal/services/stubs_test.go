package services

import (
	"errors"
	"sort"
	"time"

	"github.com/terraincognita07/slotpicker/internal/db"
	"github.com/terraincognita07/slotpicker/internal/models"
)

type stubBookingRepo struct {
	bookings  []models.Booking
	listErr   error
	createErr error
	nextID    uint
}

func (stub *stubBookingRepo) ListTimesByDate(date string) ([]string, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	times := make([]string, 0)
	for _, booking := range stub.bookings {
		if booking.Date == date {
			times = append(times, booking.Time)
		}
	}
	return times, nil
}

func (stub *stubBookingRepo) ListByDate(date string) ([]models.Booking, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	result := make([]models.Booking, 0)
	for _, booking := range stub.bookings {
		if booking.Date == date {
			result = append(result, booking)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Time < result[j].Time })
	return result, nil
}

func (stub *stubBookingRepo) Create(booking *models.Booking) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	for _, existing := range stub.bookings {
		if existing.Date == booking.Date && existing.Time == booking.Time {
			return db.ErrDuplicateSlot
		}
	}
	stub.nextID++
	booking.ID = stub.nextID
	stub.bookings = append(stub.bookings, *booking)
	return nil
}

var errStubStorage = errors.New("storage offline")

func fixedClock(value time.Time) func() time.Time {
	return func() time.Time { return value }
}

func mustSchedule(open string, close string, slotMinutes int, closed ...string) Schedule {
	schedule, err := NewSchedule(open, close, slotMinutes, closed)
	if err != nil {
		panic(err)
	}
	return schedule
}
