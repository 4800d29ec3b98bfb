package services

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/terraincognita07/slotpicker/internal/db"
	"github.com/terraincognita07/slotpicker/internal/models"
	"github.com/terraincognita07/slotpicker/internal/picker"
)

var (
	ErrBookingDateInvalid  = errors.New("invalid booking date")
	ErrBookingTimeInvalid  = errors.New("invalid booking time")
	ErrBookingNameInvalid  = errors.New("invalid booking name")
	ErrBookingPhoneInvalid = errors.New("invalid booking phone")
	ErrSlotUnavailable     = errors.New("slot unavailable")
	ErrBookingCreateFailed = errors.New("create booking failed")
	ErrBookingListFailed   = errors.New("list bookings failed")
)

var phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{4,30}$`)

const maxUserNameLength = 100

type BookingInput struct {
	Date           string
	Time           string
	UserName       string
	UserPhone      string
	TelegramUserID *int64
}

type BookingRepository interface {
	ListByDate(date string) ([]models.Booking, error)
	Create(booking *models.Booking) error
}

type BookingService struct {
	bookings     BookingRepository
	availability *AvailabilityService
}

func NewBookingService(bookings BookingRepository, availability *AvailabilityService) *BookingService {
	return &BookingService{
		bookings:     bookings,
		availability: availability,
	}
}

func (service *BookingService) Create(input BookingInput) (models.Booking, error) {
	date, err := picker.ParseDate(input.Date)
	if err != nil {
		return models.Booking{}, ErrBookingDateInvalid
	}
	label := strings.TrimSpace(input.Time)
	if _, err := ParseClock(label); err != nil {
		return models.Booking{}, ErrBookingTimeInvalid
	}

	userName := strings.TrimSpace(input.UserName)
	if utf8.RuneCountInString(userName) > maxUserNameLength {
		return models.Booking{}, ErrBookingNameInvalid
	}
	userPhone := strings.TrimSpace(input.UserPhone)
	if userPhone != "" && !phoneRegex.MatchString(userPhone) {
		return models.Booking{}, ErrBookingPhoneInvalid
	}

	available, err := service.availability.IsAvailable(date, label)
	if err != nil {
		return models.Booking{}, ErrBookingCreateFailed
	}
	if !available {
		return models.Booking{}, ErrSlotUnavailable
	}

	booking := models.Booking{
		Date:           date.String(),
		Time:           label,
		UserName:       userName,
		UserPhone:      userPhone,
		TelegramUserID: input.TelegramUserID,
	}
	if err := service.bookings.Create(&booking); err != nil {
		if errors.Is(err, db.ErrDuplicateSlot) {
			return models.Booking{}, ErrSlotUnavailable
		}
		return models.Booking{}, ErrBookingCreateFailed
	}
	return booking, nil
}

func (service *BookingService) ListByDate(date picker.Date) ([]picker.BookingRecord, error) {
	bookings, err := service.bookings.ListByDate(date.String())
	if err != nil {
		return nil, ErrBookingListFailed
	}

	records := make([]picker.BookingRecord, 0, len(bookings))
	for _, booking := range bookings {
		records = append(records, picker.BookingRecord{
			ID:        booking.ID,
			Time:      booking.Time,
			UserName:  booking.UserName,
			UserPhone: booking.UserPhone,
		})
	}
	return records, nil
}
