package main

import (
	"os"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/vehiql/testdrive-service/config"
	"github.com/vehiql/testdrive-service/internal/consumer"
	"github.com/vehiql/testdrive-service/internal/handler"
	"github.com/vehiql/testdrive-service/internal/metrics"
	"github.com/vehiql/testdrive-service/internal/middleware"
	"github.com/vehiql/testdrive-service/internal/repository"
	"github.com/vehiql/testdrive-service/internal/service"
	"github.com/vehiql/testdrive-service/pkg/database"
	"github.com/vehiql/testdrive-service/pkg/rabbitmq"
)

func main() {
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg := config.Load()
	metrics.Register()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ consumer: sync car snapshots from the inventory service
	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start consuming")
	}
	consumer.NewCarConsumer(db).Start(msgs)

	// Optional Redis cache for dashboard aggregation
	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	// Repositories
	bookingRepo := repository.NewBookingRepository(db)
	carRepo := repository.NewCarRepository(db)
	dealershipRepo := repository.NewDealershipRepository(db)

	// Services
	availabilitySvc := service.NewAvailabilityService(dealershipRepo, bookingRepo, cfg.SlotDurationMin)
	bookingSvc := service.NewBookingService(bookingRepo, carRepo, availabilitySvc)
	dashboardSvc := service.NewDashboardService(carRepo, bookingRepo, cache)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Msg("request")
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "testdrive-service"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	handler.NewBookingHandler(bookingSvc, availabilitySvc, cfg.DealershipID).RegisterRoutes(e)
	handler.NewAdminHandler(bookingSvc, dashboardSvc, dealershipRepo, cfg.DealershipID).RegisterRoutes(e)

	log.Info().Str("port", cfg.ServerPort).Msg("test-drive service starting")
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
