package models

import (
	"time"

	"github.com/google/uuid"
)

// CartLine queues one unit of one part for checkout. Repeated part numbers
// are separate lines, each redeemed as its own withdrawal unit.
type CartLine struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CartID    uuid.UUID `gorm:"column:cart_id;type:uuid;not null;index"`
	PartNo    string    `gorm:"column:part_no;not null"`
	Qty       int       `gorm:"column:qty;not null;default:1"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
