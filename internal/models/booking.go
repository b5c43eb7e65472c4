package models

import "time"

type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusNoShow    BookingStatus = "NO_SHOW"
)

// ActiveStatuses are the statuses that occupy a slot for conflict purposes.
var ActiveStatuses = []BookingStatus{StatusPending, StatusConfirmed}

// AllStatuses is the full lifecycle enum, used to validate admin overwrites.
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

func (s BookingStatus) Valid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s BookingStatus) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Booking is a test-drive reservation for a car on a calendar date.
// StartTime/EndTime are wall-clock "HH:MM" strings within the dealership's
// working hours; BookingDate carries no time component.
type Booking struct {
	ID          string        `gorm:"type:uuid;primaryKey" json:"id"`
	CarID       string        `gorm:"type:uuid;not null;index" json:"car_id"`
	UserID      string        `gorm:"not null;index" json:"user_id"`
	BookingDate time.Time     `gorm:"type:date;not null" json:"booking_date"`
	StartTime   string        `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime     string        `gorm:"type:varchar(5);not null" json:"end_time"`
	Status      BookingStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	Notes       string        `json:"notes,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	Car *Car `gorm:"foreignKey:CarID" json:"car,omitempty"`
}
