package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vehiql/testdrive-service/internal/models"
	"github.com/vehiql/testdrive-service/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrDealershipNotFound = errors.New("dealership not found")
	ErrHoursNotConfigured = errors.New("working hours not configured for this day")
)

// Slot is one bookable window within a day's open hours.
type Slot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type AvailabilityService interface {
	// HoursFor resolves the dealership's working hours for the date's weekday.
	// An empty dealershipID resolves to the default (first) dealership.
	HoursFor(ctx context.Context, dealershipID string, date time.Time) (*models.WorkingHours, error)
	// AvailableSlots returns the free windows for a car on a date, ascending
	// by start time. Closed days yield an empty slice.
	AvailableSlots(ctx context.Context, carID, dealershipID string, date time.Time) ([]Slot, error)
}

type availabilityService struct {
	dealershipRepo repository.DealershipRepository
	bookingRepo    repository.BookingRepository
	slotDuration   time.Duration
}

func NewAvailabilityService(dealershipRepo repository.DealershipRepository, bookingRepo repository.BookingRepository, slotDurationMin int) AvailabilityService {
	return &availabilityService{
		dealershipRepo: dealershipRepo,
		bookingRepo:    bookingRepo,
		slotDuration:   time.Duration(slotDurationMin) * time.Minute,
	}
}

func (s *availabilityService) HoursFor(ctx context.Context, dealershipID string, date time.Time) (*models.WorkingHours, error) {
	if dealershipID == "" {
		dealership, err := s.dealershipRepo.FindDefault(ctx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDealershipNotFound
			}
			return nil, fmt.Errorf("resolve default dealership: %w", err)
		}
		dealershipID = dealership.ID
	}

	hours, err := s.dealershipRepo.HoursForDay(ctx, dealershipID, models.WeekdayOf(date))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHoursNotConfigured
		}
		return nil, fmt.Errorf("load working hours: %w", err)
	}
	return hours, nil
}

func (s *availabilityService) AvailableSlots(ctx context.Context, carID, dealershipID string, date time.Time) ([]Slot, error) {
	hours, err := s.HoursFor(ctx, dealershipID, date)
	if err != nil {
		if errors.Is(err, ErrHoursNotConfigured) {
			hours = defaultHours(models.WeekdayOf(date))
		} else {
			return nil, err
		}
	}
	if !hours.IsOpen {
		return []Slot{}, nil
	}

	openMin, err := parseClock(hours.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("malformed open time %q: %w", hours.OpenTime, err)
	}
	closeMin, err := parseClock(hours.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("malformed close time %q: %w", hours.CloseTime, err)
	}

	bookings, err := s.bookingRepo.FindActiveByCarAndDate(ctx, carID, date)
	if err != nil {
		return nil, fmt.Errorf("load active bookings: %w", err)
	}

	width := int(s.slotDuration.Minutes())
	slots := []Slot{}
	for start := openMin; start+width <= closeMin; start += width {
		end := start + width
		if slotBlocked(start, end, bookings) {
			continue
		}
		slots = append(slots, Slot{
			StartTime: formatClock(start),
			EndTime:   formatClock(end),
		})
	}
	return slots, nil
}

// slotBlocked reports whether any active booking overlaps [start, end).
// Full interval overlap, so non-uniform booking widths still block correctly.
func slotBlocked(start, end int, bookings []models.Booking) bool {
	for _, b := range bookings {
		bStart, err := parseClock(b.StartTime)
		if err != nil {
			continue
		}
		bEnd, err := parseClock(b.EndTime)
		if err != nil {
			continue
		}
		if bStart < end && start < bEnd {
			return true
		}
	}
	return false
}

// defaultHours is the fallback schedule applied when no working-hours row
// exists for the weekday: 09:00-18:00, Sundays closed.
func defaultHours(day models.Weekday) *models.WorkingHours {
	return &models.WorkingHours{
		DayOfWeek: day,
		OpenTime:  "09:00",
		CloseTime: "18:00",
		IsOpen:    day != models.Sunday,
	}
}

// parseClock converts an "HH:MM" string to minutes since midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
