package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/vehiql/testdrive-service/internal/models"
	"github.com/vehiql/testdrive-service/internal/repository"
)

const (
	metricsCacheKey = "dashboard:metrics"
	metricsCacheTTL = 30 * time.Second
)

type CarMetrics struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Sold        int `json:"sold"`
	Unavailable int `json:"unavailable"`
	Featured    int `json:"featured"`
}

type TestDriveMetrics struct {
	Total          int     `json:"total"`
	Pending        int     `json:"pending"`
	Confirmed      int     `json:"confirmed"`
	Completed      int     `json:"completed"`
	Cancelled      int     `json:"cancelled"`
	NoShow         int     `json:"no_show"`
	ConversionRate float64 `json:"conversion_rate"`
}

type DashboardMetrics struct {
	Cars       CarMetrics       `json:"cars"`
	TestDrives TestDriveMetrics `json:"test_drives"`
}

type DashboardService interface {
	// Metrics aggregates car and booking snapshots. Reads are not linearized
	// with concurrent writes; a slightly stale snapshot is acceptable.
	Metrics(ctx context.Context) (*DashboardMetrics, error)
}

type dashboardService struct {
	carRepo     repository.CarRepository
	bookingRepo repository.BookingRepository
	cache       *redis.Client // nil disables caching
}

func NewDashboardService(carRepo repository.CarRepository, bookingRepo repository.BookingRepository, cache *redis.Client) DashboardService {
	return &dashboardService{
		carRepo:     carRepo,
		bookingRepo: bookingRepo,
		cache:       cache,
	}
}

func (s *dashboardService) Metrics(ctx context.Context) (*DashboardMetrics, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, metricsCacheKey).Bytes(); err == nil {
			var m DashboardMetrics
			if err := json.Unmarshal(cached, &m); err == nil {
				return &m, nil
			}
		}
	}

	m, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(m); err == nil {
			if err := s.cache.Set(ctx, metricsCacheKey, payload, metricsCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("failed to cache dashboard metrics")
			}
		}
	}
	return m, nil
}

func (s *dashboardService) compute(ctx context.Context) (*DashboardMetrics, error) {
	cars, err := s.carRepo.StatusSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("load car snapshots: %w", err)
	}
	bookings, err := s.bookingRepo.StatusSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("load booking snapshots: %w", err)
	}

	var m DashboardMetrics
	m.Cars.Total = len(cars)
	soldCarIDs := make(map[string]bool)
	for _, car := range cars {
		switch car.Status {
		case models.CarAvailable:
			m.Cars.Available++
		case models.CarSold:
			m.Cars.Sold++
			soldCarIDs[car.ID] = true
		case models.CarUnavailable:
			m.Cars.Unavailable++
		}
		if car.Featured {
			m.Cars.Featured++
		}
	}

	m.TestDrives.Total = len(bookings)
	completedCarIDs := make(map[string]bool)
	for _, b := range bookings {
		switch b.Status {
		case models.StatusPending:
			m.TestDrives.Pending++
		case models.StatusConfirmed:
			m.TestDrives.Confirmed++
		case models.StatusCompleted:
			m.TestDrives.Completed++
			completedCarIDs[b.CarID] = true
		case models.StatusCancelled:
			m.TestDrives.Cancelled++
		case models.StatusNoShow:
			m.TestDrives.NoShow++
		}
	}

	// Conversion rate: share of completed test drives whose car went on to SOLD
	if m.TestDrives.Completed > 0 {
		soldAfterTestDrive := 0
		for carID := range completedCarIDs {
			if soldCarIDs[carID] {
				soldAfterTestDrive++
			}
		}
		rate := float64(soldAfterTestDrive) / float64(m.TestDrives.Completed) * 100
		m.TestDrives.ConversionRate = round2(rate)
	}

	return &m, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
