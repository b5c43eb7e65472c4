package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vehiql/testdrive-service/internal/models"
	"gorm.io/gorm"
)

func mondayHours(open, close string) *models.WorkingHours {
	return &models.WorkingHours{
		DealershipID: "dealer-1",
		DayOfWeek:    models.Monday,
		OpenTime:     open,
		CloseTime:    close,
		IsOpen:       true,
	}
}

// 2025-07-28 is a Monday.
var monday = time.Date(2025, 7, 28, 0, 0, 0, 0, time.UTC)

func TestAvailableSlots_ClosedDay(t *testing.T) {
	dealerRepo := &mockDealershipRepo{
		hoursForDayFn: func(ctx context.Context, dealershipID string, day models.Weekday) (*models.WorkingHours, error) {
			return &models.WorkingHours{DayOfWeek: day, OpenTime: "09:00", CloseTime: "18:00", IsOpen: false}, nil
		},
	}

	svc := NewAvailabilityService(dealerRepo, &mockBookingRepo{}, 60)
	slots, err := svc.AvailableSlots(context.Background(), "car-1", "dealer-1", monday)

	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlots_FullDay(t *testing.T) {
	dealerRepo := &mockDealershipRepo{
		hoursForDayFn: func(ctx context.Context, dealershipID string, day models.Weekday) (*models.WorkingHours, error) {
			return mondayHours("09:00", "18:00"), nil
		},
	}

	svc := NewAvailabilityService(dealerRepo, &mockBookingRepo{}, 60)
	slots, err := svc.AvailableSlots(context.Background(), "car-1", "dealer-1", monday)

	require.NoError(t, err)
	require.Len(t, slots, 9)
	assert.Equal(t, Slot{StartTime: "09:00", EndTime: "10:00"}, slots[0])
	assert.Equal(t, Slot{StartTime: "17:00", EndTime: "18:00"}, slots[8])

	// Slots are disjoint, ordered and stay within the open window
	for i, slot := range slots {
		assert.GreaterOrEqual(t, slot.StartTime, "09:00")
		assert.LessOrEqual(t, slot.EndTime, "18:00")
		assert.Less(t, slot.StartTime, slot.EndTime)
		if i > 0 {
			assert.Equal(t, slots[i-1].EndTime, slot.StartTime)
		}
	}
}

func TestAvailableSlots_BookedSlotExcluded(t *testing.T) {
	dealerRepo := &mockDealershipRepo{
		hoursForDayFn: func(ctx context.Context, dealershipID string, day models.Weekday) (*models.WorkingHours, error) {
			return mondayHours("09:00", "18:00"), nil
		},
	}
	bookingRepo := &mockBookingRepo{
		findActiveByDateFn: func(ctx context.Context, carID string, date time.Time) ([]models.Booking, error) {
			return []models.Booking{
				{CarID: carID, BookingDate: date, StartTime: "10:00", EndTime: "11:00", Status: models.StatusPending},
			}, nil
		},
	}

	svc := NewAvailabilityService(dealerRepo, bookingRepo, 60)
	slots, err := svc.AvailableSlots(context.Background(), "car-X", "dealer-1", monday)

	require.NoError(t, err)
	require.Len(t, slots, 8)
	for _, slot := range slots {
		assert.NotEqual(t, "10:00", slot.StartTime)
	}
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "11:00", slots[1].StartTime)
}

func TestAvailableSlots_PartialOverlapBlocks(t *testing.T) {
	dealerRepo := &mockDealershipRepo{
		hoursForDayFn: func(ctx context.Context, dealershipID string, day models.Weekday) (*models.WorkingHours, error) {
			return mondayHours("09:00", "12:00"), nil
		},
	}
	// A 90-minute booking straddling two hourly windows blocks both
	bookingRepo := &mockBookingRepo{
		findActiveByDateFn: func(ctx context.Context, carID string, date time.Time) ([]models.Booking, error) {
			return []models.Booking{
				{CarID: carID, StartTime: "09:30", EndTime: "11:00", Status: models.StatusConfirmed},
			}, nil
		},
	}

	svc := NewAvailabilityService(dealerRepo, bookingRepo, 60)
	slots, err := svc.AvailableSlots(context.Background(), "car-1", "dealer-1", monday)

	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "11:00", slots[0].StartTime)
}

func TestAvailableSlots_TerminalBookingsDoNotBlock(t *testing.T) {
	dealerRepo := &mockDealershipRepo{
		hoursForDayFn: func(ctx context.Context, dealershipID string, day models.Weekday) (*models.WorkingHours, error) {
			return mondayHours("09:00", "11:00"), nil
		},
	}
	// Repository already filters to active statuses; an empty result means
	// cancelled/completed bookings never block a slot.
	bookingRepo := &mockBookingRepo{
		findActiveByDateFn: func(ctx context.Context, carID string, date time.Time) ([]models.Booking, error) {
			return []models.Booking{}, nil
		},
	}

	svc := NewAvailabilityService(dealerRepo, bookingRepo, 60)
	slots, err := svc.AvailableSlots(context.Background(), "car-1", "dealer-1", monday)

	require.NoError(t, err)
	assert.Len(t, slots, 2)
}

func TestAvailableSlots_FallbackHoursWhenNotConfigured(t *testing.T) {
	svc := NewAvailabilityService(&mockDealershipRepo{}, &mockBookingRepo{}, 60)

	slots, err := svc.AvailableSlots(context.Background(), "car-1", "dealer-1", monday)
	require.NoError(t, err)
	assert.Len(t, slots, 9, "fallback is 09:00-18:00 on weekdays")

	sunday := time.Date(2025, 7, 27, 0, 0, 0, 0, time.UTC)
	slots, err = svc.AvailableSlots(context.Background(), "car-1", "dealer-1", sunday)
	require.NoError(t, err)
	assert.Empty(t, slots, "fallback closes Sundays")
}

func TestAvailableSlots_CustomSlotWidth(t *testing.T) {
	dealerRepo := &mockDealershipRepo{
		hoursForDayFn: func(ctx context.Context, dealershipID string, day models.Weekday) (*models.WorkingHours, error) {
			return mondayHours("09:00", "10:30"), nil
		},
	}

	svc := NewAvailabilityService(dealerRepo, &mockBookingRepo{}, 30)
	slots, err := svc.AvailableSlots(context.Background(), "car-1", "dealer-1", monday)

	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, Slot{StartTime: "10:00", EndTime: "10:30"}, slots[2])
}

func TestHoursFor_ResolvesWeekday(t *testing.T) {
	var requestedDay models.Weekday
	dealerRepo := &mockDealershipRepo{
		hoursForDayFn: func(ctx context.Context, dealershipID string, day models.Weekday) (*models.WorkingHours, error) {
			requestedDay = day
			return mondayHours("09:00", "18:00"), nil
		},
	}

	svc := NewAvailabilityService(dealerRepo, &mockBookingRepo{}, 60)
	_, err := svc.HoursFor(context.Background(), "dealer-1", monday)

	require.NoError(t, err)
	assert.Equal(t, models.Monday, requestedDay)
}

func TestHoursFor_NotConfigured(t *testing.T) {
	svc := NewAvailabilityService(&mockDealershipRepo{}, &mockBookingRepo{}, 60)

	_, err := svc.HoursFor(context.Background(), "dealer-1", monday)
	assert.ErrorIs(t, err, ErrHoursNotConfigured)
}

func TestHoursFor_DefaultDealership(t *testing.T) {
	dealerRepo := &mockDealershipRepo{
		findDefaultFn: func(ctx context.Context) (*models.Dealership, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewAvailabilityService(dealerRepo, &mockBookingRepo{}, 60)
	_, err := svc.HoursFor(context.Background(), "", monday)
	assert.ErrorIs(t, err, ErrDealershipNotFound)
}
