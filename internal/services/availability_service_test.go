package services

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/terraincognita07/slotpicker/internal/models"
	"github.com/terraincognita07/slotpicker/internal/picker"
)

func TestAvailableTimesExcludesBookedSlots(t *testing.T) {
	repo := &stubBookingRepo{bookings: []models.Booking{
		{Date: "2024-06-20", Time: "10:00"},
		{Date: "2024-06-21", Time: "09:00"},
	}}
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	service := NewAvailabilityService(repo, mustSchedule("09:00", "12:00", 60), time.UTC, fixedClock(now))

	got, err := service.AvailableTimes(picker.NewDate(2024, time.June, 20))
	if err != nil {
		t.Fatalf("AvailableTimes unexpected error: %v", err)
	}
	if want := []string{"09:00", "11:00"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("AvailableTimes = %v, want %v", got, want)
	}
}

func TestAvailableTimesForTodaySkipsStartedSlots(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	// 10:00 local time.
	now := time.Date(2024, time.June, 15, 5, 0, 0, 0, time.UTC)
	service := NewAvailabilityService(&stubBookingRepo{}, mustSchedule("09:00", "13:00", 60), loc, fixedClock(now))

	got, err := service.AvailableTimes(picker.NewDate(2024, time.June, 15))
	if err != nil {
		t.Fatalf("AvailableTimes unexpected error: %v", err)
	}
	if want := []string{"11:00", "12:00"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("AvailableTimes = %v, want %v", got, want)
	}
}

func TestAvailableTimesEmptyForPastAndClosedDays(t *testing.T) {
	now := time.Date(2024, time.June, 15, 8, 0, 0, 0, time.UTC)
	service := NewAvailabilityService(&stubBookingRepo{}, mustSchedule("09:00", "12:00", 60, "sunday"), time.UTC, fixedClock(now))

	past, err := service.AvailableTimes(picker.NewDate(2024, time.June, 14))
	if err != nil || len(past) != 0 {
		t.Fatalf("expected no slots for past date, got %v (err %v)", past, err)
	}
	if past == nil {
		t.Fatalf("expected empty slice, got nil")
	}

	sunday, err := service.AvailableTimes(picker.NewDate(2024, time.June, 16))
	if err != nil || len(sunday) != 0 {
		t.Fatalf("expected no slots for closed weekday, got %v (err %v)", sunday, err)
	}
}

func TestAvailableTimesWrapsStorageFailure(t *testing.T) {
	now := time.Date(2024, time.June, 15, 8, 0, 0, 0, time.UTC)
	service := NewAvailabilityService(&stubBookingRepo{listErr: errStubStorage}, mustSchedule("09:00", "12:00", 60), time.UTC, fixedClock(now))

	if _, err := service.AvailableTimes(picker.NewDate(2024, time.June, 20)); !errors.Is(err, ErrAvailabilityLoadFailed) {
		t.Fatalf("expected ErrAvailabilityLoadFailed, got %v", err)
	}
}
