package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vehiql/testdrive-service/internal/metrics"
	"github.com/vehiql/testdrive-service/internal/models"
	"github.com/vehiql/testdrive-service/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCarNotFound      = errors.New("car not found")
	ErrCarUnavailable   = errors.New("car is not available for test drives")
	ErrSlotTaken        = errors.New("this time slot is already booked")
	ErrInvalidTimeRange = errors.New("start time must be before end time")
	ErrOutsideHours     = errors.New("requested slot is outside working hours")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNotAllowed       = errors.New("not allowed to modify this booking")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrAlreadyCompleted = errors.New("cannot cancel a completed booking")
	ErrInvalidStatus    = errors.New("invalid booking status")
)

const uniqueViolation = "23505"

type CreateBookingInput struct {
	CarID        string
	UserID       string
	DealershipID string
	Date         time.Time
	StartTime    string
	EndTime      string
	Notes        string
}

type BookingService interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID, actorID string, actorRole models.Role) (*models.Booking, error)
	SetStatus(ctx context.Context, bookingID string, status models.BookingStatus, actorRole models.Role) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListForUser(ctx context.Context, userID string) ([]models.Booking, error)
	ListActiveForCar(ctx context.Context, carID string) ([]models.Booking, error)
	ListAll(ctx context.Context, status *models.BookingStatus, search string) ([]models.Booking, error)
}

type bookingService struct {
	bookingRepo  repository.BookingRepository
	carRepo      repository.CarRepository
	availability AvailabilityService
}

func NewBookingService(bookingRepo repository.BookingRepository, carRepo repository.CarRepository, availability AvailabilityService) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		carRepo:      carRepo,
		availability: availability,
	}
}

// CreateBooking validates and inserts a new test-drive booking as one atomic
// unit. The car row lock serializes concurrent attempts for the same car, and
// the partial unique index over active bookings backs the conflict check up
// at the storage layer, so two racing requests for the same slot resolve to
// exactly one success and one ErrSlotTaken.
func (s *bookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	var result *models.Booking

	err := s.bookingRepo.Transaction(ctx, func(tx *gorm.DB) error {
		// 1. Lock the car row and check its snapshot status
		car, err := s.carRepo.FindByIDForUpdate(ctx, tx, in.CarID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCarNotFound
			}
			return fmt.Errorf("load car: %w", err)
		}
		if car.Status != models.CarAvailable {
			return ErrCarUnavailable
		}

		// 2. Conflict probe: an active booking already holding the slot
		_, err = s.bookingRepo.FindActiveBySlot(ctx, tx, in.CarID, in.Date, in.StartTime)
		if err == nil {
			return ErrSlotTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("conflict check: %w", err)
		}

		// 3. Validate the requested window against working hours
		if err := s.validateWindow(ctx, in); err != nil {
			return err
		}

		booking := &models.Booking{
			ID:          uuid.NewString(),
			CarID:       in.CarID,
			UserID:      in.UserID,
			BookingDate: in.Date,
			StartTime:   in.StartTime,
			EndTime:     in.EndTime,
			Status:      models.StatusPending,
			Notes:       in.Notes,
		}
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return ErrSlotTaken
			}
			return fmt.Errorf("insert booking: %w", err)
		}

		result = booking
		return nil
	})

	switch {
	case err == nil:
		metrics.IncBookingCreated()
	case errors.Is(err, ErrSlotTaken):
		metrics.IncBookingConflict()
	}

	return result, err
}

func (s *bookingService) validateWindow(ctx context.Context, in CreateBookingInput) error {
	start, err := parseClock(in.StartTime)
	if err != nil {
		return fmt.Errorf("%w: bad start time %q", ErrInvalidTimeRange, in.StartTime)
	}
	end, err := parseClock(in.EndTime)
	if err != nil {
		return fmt.Errorf("%w: bad end time %q", ErrInvalidTimeRange, in.EndTime)
	}
	if start >= end {
		return ErrInvalidTimeRange
	}

	hours, err := s.availability.HoursFor(ctx, in.DealershipID, in.Date)
	if err != nil {
		if errors.Is(err, ErrHoursNotConfigured) {
			hours = defaultHours(models.WeekdayOf(in.Date))
		} else {
			return err
		}
	}
	if !hours.IsOpen {
		return ErrOutsideHours
	}
	openMin, err := parseClock(hours.OpenTime)
	if err != nil {
		return fmt.Errorf("malformed open time %q: %w", hours.OpenTime, err)
	}
	closeMin, err := parseClock(hours.CloseTime)
	if err != nil {
		return fmt.Errorf("malformed close time %q: %w", hours.CloseTime, err)
	}
	if start < openMin || end > closeMin {
		return ErrOutsideHours
	}
	return nil
}

// CancelBooking sets the booking to CANCELLED. Only the booking's owner or an
// admin may cancel, and CANCELLED/COMPLETED are terminal for this path.
func (s *bookingService) CancelBooking(ctx context.Context, bookingID, actorID string, actorRole models.Role) (*models.Booking, error) {
	var result *models.Booking

	err := s.bookingRepo.Transaction(ctx, func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("load booking: %w", err)
		}

		if booking.UserID != actorID && !actorRole.IsAdmin() {
			return ErrNotAllowed
		}
		switch booking.Status {
		case models.StatusCancelled:
			return ErrAlreadyCancelled
		case models.StatusCompleted:
			return ErrAlreadyCompleted
		}

		if err := s.bookingRepo.UpdateStatus(ctx, tx, bookingID, models.StatusCancelled); err != nil {
			return fmt.Errorf("update status: %w", err)
		}

		booking.Status = models.StatusCancelled
		result = booking
		return nil
	})

	if err == nil {
		metrics.IncBookingCancelled()
	}
	return result, err
}

// SetStatus is the administrative overwrite: any value in the status enum is
// accepted from any current state, with no transition table.
func (s *bookingService) SetStatus(ctx context.Context, bookingID string, status models.BookingStatus, actorRole models.Role) (*models.Booking, error) {
	if !actorRole.IsAdmin() {
		return nil, ErrNotAllowed
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("load booking: %w", err)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, s.bookingRepo.GetDB(), bookingID, status); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	metrics.IncStatusOverride(string(status))
	booking.Status = status
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) ListForUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.bookingRepo.FindByUserID(ctx, userID)
}

func (s *bookingService) ListActiveForCar(ctx context.Context, carID string) ([]models.Booking, error) {
	return s.bookingRepo.FindActiveByCar(ctx, carID)
}

func (s *bookingService) ListAll(ctx context.Context, status *models.BookingStatus, search string) ([]models.Booking, error) {
	return s.bookingRepo.FindAll(ctx, status, search)
}
