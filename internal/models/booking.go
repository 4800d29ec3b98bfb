package models

import "time"

// Booking is a reserved slot. Date is stored as YYYY-MM-DD and Time as the
// slot label exactly as offered; (date, time) is unique.
type Booking struct {
	ID             uint   `gorm:"primaryKey"`
	Date           string `gorm:"type:text;not null;uniqueIndex:uidx_bookings_slot"`
	Time           string `gorm:"type:text;not null;uniqueIndex:uidx_bookings_slot"`
	UserName       string `gorm:"not null;default:''"`
	UserPhone      string `gorm:"not null;default:''"`
	TelegramUserID *int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
