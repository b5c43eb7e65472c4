package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/vehiql/testdrive-service/internal/dto"
	"github.com/vehiql/testdrive-service/internal/middleware"
	"github.com/vehiql/testdrive-service/internal/service"
)

type BookingHandler struct {
	svc                 service.BookingService
	availability        service.AvailabilityService
	defaultDealershipID string
}

func NewBookingHandler(svc service.BookingService, availability service.AvailabilityService, defaultDealershipID string) *BookingHandler {
	return &BookingHandler{svc: svc, availability: availability, defaultDealershipID: defaultDealershipID}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	cars := e.Group("/api/v1/cars")
	cars.GET("/:id/slots", h.GetAvailableSlots)
	cars.GET("/:id/bookings", h.ListCarBookings, middleware.Actor)
	cars.POST("/:id/bookings", h.CreateBooking, middleware.Actor)

	bookings := e.Group("/api/v1/bookings", middleware.Actor)
	bookings.GET("", h.ListMyBookings)
	bookings.GET("/:id", h.GetBooking)
	bookings.DELETE("/:id", h.CancelBooking)
}

func (h *BookingHandler) GetAvailableSlots(c echo.Context) error {
	carID := c.Param("id")
	date, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	dealershipID := c.QueryParam("dealership_id")
	if dealershipID == "" {
		dealershipID = h.defaultDealershipID
	}

	slots, err := h.availability.AvailableSlots(c.Request().Context(), carID, dealershipID, date)
	if err != nil {
		if errors.Is(err, service.ErrDealershipNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, slots)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	carID := c.Param("id")

	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	date, err := time.Parse("2006-01-02", req.BookingDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "booking_date must be YYYY-MM-DD")
	}
	if req.DealershipID == "" {
		req.DealershipID = h.defaultDealershipID
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), service.CreateBookingInput{
		CarID:        carID,
		UserID:       middleware.ActorID(c),
		DealershipID: req.DealershipID,
		Date:         date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Notes:        req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCarNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrCarUnavailable):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrSlotTaken):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrInvalidTimeRange), errors.Is(err, service.ErrOutsideHours):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListMyBookings(c echo.Context) error {
	bookings, err := h.svc.ListForUser(c.Request().Context(), middleware.ActorID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponses(bookings))
}

func (h *BookingHandler) ListCarBookings(c echo.Context) error {
	bookings, err := h.svc.ListActiveForCar(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponses(bookings))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	booking, err := h.svc.GetBooking(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	booking, err := h.svc.CancelBooking(
		c.Request().Context(),
		c.Param("id"),
		middleware.ActorID(c),
		middleware.ActorRole(c),
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotAllowed):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrAlreadyCancelled), errors.Is(err, service.ErrAlreadyCompleted):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}
