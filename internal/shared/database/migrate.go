package database

import (
	"atelier/internal/bookings"
	"atelier/internal/payments"
	"atelier/internal/timeslots"
	"atelier/internal/users"
	"atelier/internal/workshops"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&workshops.Workshop{},
		&timeslots.TimeSlot{},
		&bookings.Booking{},
		&payments.Payment{},
	)
}
