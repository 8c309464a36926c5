package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating holds one user's score for one store. The composite primary key is
// the upsert anchor: resubmission overwrites Value and UpdatedAt in place.
type Rating struct {
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	StoreID   uuid.UUID `gorm:"column:store_id;type:uuid;primaryKey"`
	Value     int       `gorm:"column:value;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
