package models

import "time"

type CarStatus string

const (
	CarAvailable   CarStatus = "AVAILABLE"
	CarUnavailable CarStatus = "UNAVAILABLE"
	CarSold        CarStatus = "SOLD"
)

// Car is a local snapshot of the inventory service's car record. This service
// reads it for availability checks and dashboard counts but never mutates it;
// snapshots are kept in sync by the inventory event consumer.
type Car struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Make      string    `json:"make"`
	Model     string    `json:"model"`
	Year      int       `json:"year"`
	Status    CarStatus `gorm:"type:varchar(20);not null;default:'AVAILABLE'" json:"status"`
	Featured  bool      `gorm:"not null;default:false" json:"featured"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
