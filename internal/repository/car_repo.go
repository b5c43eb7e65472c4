package repository

import (
	"context"

	"github.com/vehiql/testdrive-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CarRepository interface {
	FindByID(ctx context.Context, id string) (*models.Car, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Car, error)
	StatusSnapshots(ctx context.Context) ([]models.Car, error)
}

type carRepository struct {
	db *gorm.DB
}

func NewCarRepository(db *gorm.DB) CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) FindByID(ctx context.Context, id string) (*models.Car, error) {
	var car models.Car
	if err := r.db.WithContext(ctx).First(&car, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

// FindByIDForUpdate acquires a row-level lock on the car within the given
// transaction, serializing concurrent booking attempts for the same car.
func (r *carRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Car, error) {
	var car models.Car
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&car, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

// StatusSnapshots loads only the fields the dashboard aggregates over.
func (r *carRepository) StatusSnapshots(ctx context.Context) ([]models.Car, error) {
	var cars []models.Car
	err := r.db.WithContext(ctx).
		Select("id", "status", "featured").
		Find(&cars).Error
	if err != nil {
		return nil, err
	}
	return cars, nil
}
