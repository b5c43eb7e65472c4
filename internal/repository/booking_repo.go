package repository

import (
	"context"
	"time"

	"github.com/vehiql/testdrive-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Booking, error)
	FindActiveBySlot(ctx context.Context, tx *gorm.DB, carID string, date time.Time, startTime string) (*models.Booking, error)
	FindActiveByCarAndDate(ctx context.Context, carID string, date time.Time) ([]models.Booking, error)
	FindActiveByCar(ctx context.Context, carID string) ([]models.Booking, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Booking, error)
	FindAll(ctx context.Context, status *models.BookingStatus, search string) ([]models.Booking, error)
	StatusSnapshots(ctx context.Context) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID string, status models.BookingStatus) error
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

// Transaction runs fn inside a database transaction.
func (r *bookingRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByIDForUpdate locks the booking row for the rest of the transaction.
func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Booking, error) {
	var booking models.Booking
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&booking, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindActiveBySlot is the conflict probe: an active booking holding the exact
// (car, date, start) slot. Runs inside the create transaction.
func (r *bookingRepository) FindActiveBySlot(ctx context.Context, tx *gorm.DB, carID string, date time.Time, startTime string) (*models.Booking, error) {
	var booking models.Booking
	err := tx.WithContext(ctx).
		Where("car_id = ? AND booking_date = ? AND start_time = ? AND status IN ?",
			carID, date.Format("2006-01-02"), startTime, models.ActiveStatuses).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindActiveByCarAndDate(ctx context.Context, carID string, date time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("car_id = ? AND booking_date = ? AND status IN ?",
			carID, date.Format("2006-01-02"), models.ActiveStatuses).
		Order("start_time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindActiveByCar(ctx context.Context, carID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("car_id = ? AND status IN ?", carID, models.ActiveStatuses).
		Order("booking_date ASC, start_time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Car").
		Where("user_id = ?", userID).
		Order("booking_date DESC, start_time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindAll lists bookings for the admin view, newest booking date first.
// search matches against the car snapshot's make and model.
func (r *bookingRepository) FindAll(ctx context.Context, status *models.BookingStatus, search string) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx).Preload("Car")
	if status != nil {
		q = q.Where("bookings.status = ?", *status)
	}
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Joins("JOIN cars ON cars.id = bookings.car_id").
			Where("cars.make ILIKE ? OR cars.model ILIKE ?", pattern, pattern)
	}
	if err := q.Order("booking_date DESC, start_time ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// StatusSnapshots loads only the fields the dashboard aggregates over.
func (r *bookingRepository) StatusSnapshots(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Select("id", "car_id", "status").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID string, status models.BookingStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update("status", status).Error
}
