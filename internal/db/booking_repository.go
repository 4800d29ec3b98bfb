package db

import (
	"errors"
	"strings"

	"github.com/terraincognita07/slotpicker/internal/models"
	"gorm.io/gorm"
)

var ErrDuplicateSlot = errors.New("slot already booked")

type BookingRepository struct {
	database *gorm.DB
}

func NewBookingRepository(database *gorm.DB) *BookingRepository {
	return &BookingRepository{database: database}
}

func (repo *BookingRepository) ListByDate(date string) ([]models.Booking, error) {
	bookings := make([]models.Booking, 0)
	if err := repo.database.Where("date = ?", date).Order("time ASC, id ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (repo *BookingRepository) ListTimesByDate(date string) ([]string, error) {
	times := make([]string, 0)
	if err := repo.database.Model(&models.Booking{}).Where("date = ?", date).Order("time ASC").Pluck("time", &times).Error; err != nil {
		return nil, err
	}
	return times, nil
}

// Create inserts booking and reports ErrDuplicateSlot when the (date, time)
// pair is already taken.
func (repo *BookingRepository) Create(booking *models.Booking) error {
	err := repo.database.Create(booking).Error
	if isUniqueViolation(err) {
		return ErrDuplicateSlot
	}
	return err
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
