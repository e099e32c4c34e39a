package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom-backend/pkg/enums"
)

// Transaction is an immutable record of one stock movement. Rows are never
// updated or deleted.
type Transaction struct {
	ID            uuid.UUID     `gorm:"column:id;type:uuid;primaryKey"`
	Type          enums.TxnType `gorm:"column:type;not null"`
	PartNo        string        `gorm:"column:part_no;not null;index"`
	Qty           int           `gorm:"column:qty;not null;default:1"`
	WorkOrderNo   string        `gorm:"column:work_order_no;not null"`
	VendorClaimNo *string       `gorm:"column:vendor_claim_no"`
	UserID        uuid.UUID     `gorm:"column:user_id;type:uuid;not null"`
	CreatedAt     time.Time     `gorm:"column:created_at;autoCreateTime"`
}
