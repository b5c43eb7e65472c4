package database

import (
	"log"

	"github.com/vehiql/testdrive-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Car{},
		&models.Dealership{},
		&models.WorkingHours{},
		&models.Booking{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Partial unique index: at most one active booking per car/date/start.
	// Concurrent inserts for the same slot fail fast with a unique violation
	// instead of silently double-booking.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_booking_active_slot
		ON bookings (car_id, booking_date, start_time)
		WHERE status IN ('PENDING', 'CONFIRMED')
	`)

	return db
}
