package service

import (
	"context"
	"time"

	"github.com/vehiql/testdrive-service/internal/models"
	"gorm.io/gorm"
)

// --- Mock BookingRepository ---

type mockBookingRepo struct {
	createFn             func(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	findByIDFn           func(ctx context.Context, id string) (*models.Booking, error)
	findByIDForUpdateFn  func(ctx context.Context, tx *gorm.DB, id string) (*models.Booking, error)
	findActiveBySlotFn   func(ctx context.Context, tx *gorm.DB, carID string, date time.Time, startTime string) (*models.Booking, error)
	findActiveByDateFn   func(ctx context.Context, carID string, date time.Time) ([]models.Booking, error)
	findActiveByCarFn    func(ctx context.Context, carID string) ([]models.Booking, error)
	findByUserIDFn       func(ctx context.Context, userID string) ([]models.Booking, error)
	findAllFn            func(ctx context.Context, status *models.BookingStatus, search string) ([]models.Booking, error)
	statusSnapshotsFn    func(ctx context.Context) ([]models.Booking, error)
	updateStatusFn       func(ctx context.Context, tx *gorm.DB, bookingID string, status models.BookingStatus) error
}

func (m *mockBookingRepo) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, booking)
	}
	return nil
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBookingRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Booking, error) {
	if m.findByIDForUpdateFn != nil {
		return m.findByIDForUpdateFn(ctx, tx, id)
	}
	return m.FindByID(ctx, id)
}

func (m *mockBookingRepo) FindActiveBySlot(ctx context.Context, tx *gorm.DB, carID string, date time.Time, startTime string) (*models.Booking, error) {
	if m.findActiveBySlotFn != nil {
		return m.findActiveBySlotFn(ctx, tx, carID, date, startTime)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBookingRepo) FindActiveByCarAndDate(ctx context.Context, carID string, date time.Time) ([]models.Booking, error) {
	if m.findActiveByDateFn != nil {
		return m.findActiveByDateFn(ctx, carID, date)
	}
	return nil, nil
}

func (m *mockBookingRepo) FindActiveByCar(ctx context.Context, carID string) ([]models.Booking, error) {
	if m.findActiveByCarFn != nil {
		return m.findActiveByCarFn(ctx, carID)
	}
	return nil, nil
}

func (m *mockBookingRepo) FindByUserID(ctx context.Context, userID string) ([]models.Booking, error) {
	if m.findByUserIDFn != nil {
		return m.findByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockBookingRepo) FindAll(ctx context.Context, status *models.BookingStatus, search string) ([]models.Booking, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, status, search)
	}
	return nil, nil
}

func (m *mockBookingRepo) StatusSnapshots(ctx context.Context) ([]models.Booking, error) {
	if m.statusSnapshotsFn != nil {
		return m.statusSnapshotsFn(ctx)
	}
	return nil, nil
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID string, status models.BookingStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, tx, bookingID, status)
	}
	return nil
}

func (m *mockBookingRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (m *mockBookingRepo) GetDB() *gorm.DB { return nil }

// --- Mock CarRepository ---

type mockCarRepo struct {
	findByIDFn        func(ctx context.Context, id string) (*models.Car, error)
	statusSnapshotsFn func(ctx context.Context) ([]models.Car, error)
}

func (m *mockCarRepo) FindByID(ctx context.Context, id string) (*models.Car, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCarRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Car, error) {
	return m.FindByID(ctx, id)
}

func (m *mockCarRepo) StatusSnapshots(ctx context.Context) ([]models.Car, error) {
	if m.statusSnapshotsFn != nil {
		return m.statusSnapshotsFn(ctx)
	}
	return nil, nil
}

// --- Mock DealershipRepository ---

type mockDealershipRepo struct {
	findByIDFn    func(ctx context.Context, id string) (*models.Dealership, error)
	findDefaultFn func(ctx context.Context) (*models.Dealership, error)
	hoursForDayFn func(ctx context.Context, dealershipID string, day models.Weekday) (*models.WorkingHours, error)
	replaceFn     func(ctx context.Context, dealershipID string, hours []models.WorkingHours) error
}

func (m *mockDealershipRepo) FindByID(ctx context.Context, id string) (*models.Dealership, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDealershipRepo) FindDefault(ctx context.Context) (*models.Dealership, error) {
	if m.findDefaultFn != nil {
		return m.findDefaultFn(ctx)
	}
	return &models.Dealership{ID: "dealer-1", Name: "Vehiql Motors"}, nil
}

func (m *mockDealershipRepo) HoursForDay(ctx context.Context, dealershipID string, day models.Weekday) (*models.WorkingHours, error) {
	if m.hoursForDayFn != nil {
		return m.hoursForDayFn(ctx, dealershipID, day)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDealershipRepo) ReplaceWorkingHours(ctx context.Context, dealershipID string, hours []models.WorkingHours) error {
	if m.replaceFn != nil {
		return m.replaceFn(ctx, dealershipID, hours)
	}
	return nil
}
