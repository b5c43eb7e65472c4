package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vehiql/testdrive-service/internal/models"
	"gorm.io/gorm"
)

type DealershipRepository interface {
	FindByID(ctx context.Context, id string) (*models.Dealership, error)
	FindDefault(ctx context.Context) (*models.Dealership, error)
	HoursForDay(ctx context.Context, dealershipID string, day models.Weekday) (*models.WorkingHours, error)
	ReplaceWorkingHours(ctx context.Context, dealershipID string, hours []models.WorkingHours) error
}

type dealershipRepository struct {
	db *gorm.DB
}

func NewDealershipRepository(db *gorm.DB) DealershipRepository {
	return &dealershipRepository{db: db}
}

func (r *dealershipRepository) FindByID(ctx context.Context, id string) (*models.Dealership, error) {
	var dealership models.Dealership
	err := r.db.WithContext(ctx).
		Preload("WorkingHours").
		First(&dealership, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &dealership, nil
}

// FindDefault returns the first dealership record. Single-dealership
// deployments omit DEALERSHIP_ID and resolve through this.
func (r *dealershipRepository) FindDefault(ctx context.Context) (*models.Dealership, error) {
	var dealership models.Dealership
	err := r.db.WithContext(ctx).
		Preload("WorkingHours").
		Order("created_at ASC").
		First(&dealership).Error
	if err != nil {
		return nil, err
	}
	return &dealership, nil
}

func (r *dealershipRepository) HoursForDay(ctx context.Context, dealershipID string, day models.Weekday) (*models.WorkingHours, error) {
	var hours models.WorkingHours
	err := r.db.WithContext(ctx).
		Where("dealership_id = ? AND day_of_week = ?", dealershipID, day).
		First(&hours).Error
	if err != nil {
		return nil, err
	}
	return &hours, nil
}

// ReplaceWorkingHours swaps the dealership's whole weekly schedule in one
// transaction, keeping the one-row-per-weekday invariant.
func (r *dealershipRepository) ReplaceWorkingHours(ctx context.Context, dealershipID string, hours []models.WorkingHours) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dealership_id = ?", dealershipID).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		for i := range hours {
			hours[i].ID = uuid.NewString()
			hours[i].DealershipID = dealershipID
		}
		if len(hours) == 0 {
			return nil
		}
		return tx.Create(&hours).Error
	})
}
