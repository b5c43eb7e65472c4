package dto

import (
	"time"

	"github.com/vehiql/testdrive-service/internal/models"
)

type CarResponse struct {
	ID       string           `json:"id"`
	Make     string           `json:"make,omitempty"`
	Model    string           `json:"model,omitempty"`
	Year     int              `json:"year,omitempty"`
	Status   models.CarStatus `json:"status"`
	Featured bool             `json:"featured"`
}

type BookingResponse struct {
	ID          string               `json:"id"`
	CarID       string               `json:"car_id"`
	UserID      string               `json:"user_id"`
	BookingDate string               `json:"booking_date"`
	StartTime   string               `json:"start_time"`
	EndTime     string               `json:"end_time"`
	Status      models.BookingStatus `json:"status"`
	Notes       string               `json:"notes,omitempty"`
	Car         *CarResponse         `json:"car,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

type WorkingHoursResponse struct {
	DealershipID string              `json:"dealership_id"`
	WorkingHours []WorkingHoursEntry `json:"working_hours"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	resp := BookingResponse{
		ID:          b.ID,
		CarID:       b.CarID,
		UserID:      b.UserID,
		BookingDate: b.BookingDate.Format("2006-01-02"),
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Status:      b.Status,
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if b.Car != nil {
		resp.Car = &CarResponse{
			ID:       b.Car.ID,
			Make:     b.Car.Make,
			Model:    b.Car.Model,
			Year:     b.Car.Year,
			Status:   b.Car.Status,
			Featured: b.Car.Featured,
		}
	}
	return resp
}

func ToBookingResponses(bookings []models.Booking) []BookingResponse {
	resp := make([]BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = ToBookingResponse(&bookings[i])
	}
	return resp
}
