package dto

import "github.com/vehiql/testdrive-service/internal/models"

type CreateBookingRequest struct {
	BookingDate  string `json:"booking_date"` // YYYY-MM-DD
	StartTime    string `json:"start_time"`   // HH:MM
	EndTime      string `json:"end_time"`     // HH:MM
	Notes        string `json:"notes"`
	DealershipID string `json:"dealership_id,omitempty"`
}

type UpdateStatusRequest struct {
	Status models.BookingStatus `json:"status"`
}

type WorkingHoursEntry struct {
	DayOfWeek models.Weekday `json:"day_of_week"`
	OpenTime  string         `json:"open_time"`
	CloseTime string         `json:"close_time"`
	IsOpen    bool           `json:"is_open"`
}

type SaveWorkingHoursRequest struct {
	DealershipID string              `json:"dealership_id,omitempty"`
	WorkingHours []WorkingHoursEntry `json:"working_hours"`
}
