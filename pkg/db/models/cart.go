package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart is a user's staging area for checkout. A user may accumulate
// several carts under races; the most recently created one is
// authoritative for reads.
type Cart struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
