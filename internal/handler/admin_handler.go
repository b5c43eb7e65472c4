package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/vehiql/testdrive-service/internal/dto"
	"github.com/vehiql/testdrive-service/internal/middleware"
	"github.com/vehiql/testdrive-service/internal/models"
	"github.com/vehiql/testdrive-service/internal/repository"
	"github.com/vehiql/testdrive-service/internal/service"
	"gorm.io/gorm"
)

type AdminHandler struct {
	bookingSvc          service.BookingService
	dashboardSvc        service.DashboardService
	dealershipRepo      repository.DealershipRepository
	defaultDealershipID string
}

func NewAdminHandler(bookingSvc service.BookingService, dashboardSvc service.DashboardService, dealershipRepo repository.DealershipRepository, defaultDealershipID string) *AdminHandler {
	return &AdminHandler{
		bookingSvc:          bookingSvc,
		dashboardSvc:        dashboardSvc,
		dealershipRepo:      dealershipRepo,
		defaultDealershipID: defaultDealershipID,
	}
}

func (h *AdminHandler) RegisterRoutes(e *echo.Echo) {
	admin := e.Group("/api/v1/admin", middleware.Actor, middleware.RequireAdmin)
	admin.GET("/bookings", h.ListBookings)
	admin.PATCH("/bookings/:id/status", h.UpdateStatus)
	admin.GET("/dashboard", h.Dashboard)
	admin.GET("/settings/hours", h.GetWorkingHours)
	admin.PUT("/settings/hours", h.SaveWorkingHours)
}

func (h *AdminHandler) ListBookings(c echo.Context) error {
	var status *models.BookingStatus
	if s := c.QueryParam("status"); s != "" {
		bs := models.BookingStatus(s)
		if !bs.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status filter")
		}
		status = &bs
	}

	bookings, err := h.bookingSvc.ListAll(c.Request().Context(), status, c.QueryParam("search"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponses(bookings))
}

func (h *AdminHandler) UpdateStatus(c echo.Context) error {
	var req dto.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.bookingSvc.SetStatus(c.Request().Context(), c.Param("id"), req.Status, middleware.ActorRole(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotAllowed):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrInvalidStatus):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *AdminHandler) Dashboard(c echo.Context) error {
	metrics, err := h.dashboardSvc.Metrics(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, metrics)
}

func (h *AdminHandler) GetWorkingHours(c echo.Context) error {
	dealership, err := h.findDealership(c, "")
	if err != nil {
		return err
	}

	entries := make([]dto.WorkingHoursEntry, len(dealership.WorkingHours))
	for i, wh := range dealership.WorkingHours {
		entries[i] = dto.WorkingHoursEntry{
			DayOfWeek: wh.DayOfWeek,
			OpenTime:  wh.OpenTime,
			CloseTime: wh.CloseTime,
			IsOpen:    wh.IsOpen,
		}
	}
	return c.JSON(http.StatusOK, dto.WorkingHoursResponse{
		DealershipID: dealership.ID,
		WorkingHours: entries,
	})
}

func (h *AdminHandler) SaveWorkingHours(c echo.Context) error {
	var req dto.SaveWorkingHoursRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	seen := make(map[models.Weekday]bool)
	hours := make([]models.WorkingHours, len(req.WorkingHours))
	for i, entry := range req.WorkingHours {
		if !entry.DayOfWeek.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid day of week: "+string(entry.DayOfWeek))
		}
		if seen[entry.DayOfWeek] {
			return echo.NewHTTPError(http.StatusBadRequest, "duplicate day of week: "+string(entry.DayOfWeek))
		}
		seen[entry.DayOfWeek] = true

		if entry.IsOpen {
			open, err := time.Parse("15:04", entry.OpenTime)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "open_time must be HH:MM")
			}
			closeAt, err := time.Parse("15:04", entry.CloseTime)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "close_time must be HH:MM")
			}
			if !open.Before(closeAt) {
				return echo.NewHTTPError(http.StatusBadRequest, "open_time must be before close_time")
			}
		}

		hours[i] = models.WorkingHours{
			DayOfWeek: entry.DayOfWeek,
			OpenTime:  entry.OpenTime,
			CloseTime: entry.CloseTime,
			IsOpen:    entry.IsOpen,
		}
	}

	dealership, err := h.findDealership(c, req.DealershipID)
	if err != nil {
		return err
	}

	if err := h.dealershipRepo.ReplaceWorkingHours(c.Request().Context(), dealership.ID, hours); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.WorkingHoursResponse{
		DealershipID: dealership.ID,
		WorkingHours: req.WorkingHours,
	})
}

// findDealership resolves the target dealership: the query parameter wins,
// then the request body, then the configured default, then the oldest row.
func (h *AdminHandler) findDealership(c echo.Context, bodyID string) (*models.Dealership, error) {
	ctx := c.Request().Context()

	id := c.QueryParam("dealership_id")
	if id == "" {
		id = bodyID
	}
	if id == "" {
		id = h.defaultDealershipID
	}
	if id == "" {
		// fall back to the single-dealership default
		dealership, err := h.dealershipRepo.FindDefault(ctx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, echo.NewHTTPError(http.StatusNotFound, "dealership not found")
			}
			return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return dealership, nil
	}

	dealership, err := h.dealershipRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "dealership not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return dealership, nil
}
