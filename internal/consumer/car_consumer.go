package consumer

import (
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
	"github.com/vehiql/testdrive-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CarConsumer mirrors the inventory service's car records into the local
// snapshot table so availability checks and dashboard counts stay local.
type CarConsumer struct {
	db *gorm.DB
}

func NewCarConsumer(db *gorm.DB) *CarConsumer {
	return &CarConsumer{db: db}
}

func (cc *CarConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			cc.handleMessage(msg)
		}
		log.Info().Msg("inventory channel closed, stopping consumer")
	}()
}

func (cc *CarConsumer) handleMessage(msg amqp.Delivery) {
	var car models.Car
	if err := json.Unmarshal(msg.Body, &car); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal car event")
		msg.Nack(false, false)
		return
	}

	// Upsert: insert or update on conflict (same ID from the inventory service)
	result := cc.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"make", "model", "year", "status", "featured", "updated_at"}),
	}).Create(&car)

	if result.Error != nil {
		log.Error().Err(result.Error).Str("car_id", car.ID).Msg("failed to upsert car snapshot")
		msg.Nack(false, true) // requeue
		return
	}

	log.Debug().Str("car_id", car.ID).Str("status", string(car.Status)).Msg("synced car snapshot")
	msg.Ack(false)
}
