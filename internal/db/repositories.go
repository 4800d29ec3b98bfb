package db

import "gorm.io/gorm"

type Repositories struct {
	Bookings *BookingRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Bookings: NewBookingRepository(database),
	}
}
