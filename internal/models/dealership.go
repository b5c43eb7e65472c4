package models

import (
	"strings"
	"time"
)

type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
	Sunday    Weekday = "SUNDAY"
)

var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// WeekdayOf maps a calendar date to the weekday tag used by WorkingHours.
func WeekdayOf(date time.Time) Weekday {
	return Weekday(strings.ToUpper(date.Weekday().String()))
}

func (w Weekday) Valid() bool {
	for _, d := range Weekdays {
		if w == d {
			return true
		}
	}
	return false
}

type Dealership struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	WorkingHours []WorkingHours `gorm:"foreignKey:DealershipID" json:"working_hours,omitempty"`
}

// WorkingHours is a dealership's open window for one weekday. At most one row
// per (dealership, weekday), enforced by a unique index.
type WorkingHours struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	DealershipID string    `gorm:"type:uuid;not null;uniqueIndex:idx_dealership_day,priority:1" json:"dealership_id"`
	DayOfWeek    Weekday   `gorm:"type:varchar(10);not null;uniqueIndex:idx_dealership_day,priority:2" json:"day_of_week"`
	OpenTime     string    `gorm:"type:varchar(5);not null" json:"open_time"`
	CloseTime    string    `gorm:"type:varchar(5);not null" json:"close_time"`
	IsOpen       bool      `gorm:"not null;default:true" json:"is_open"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
