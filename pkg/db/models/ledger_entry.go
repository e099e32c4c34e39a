package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom-backend/pkg/enums"
)

// LedgerEntry is the append-only audit record for a stock mutation. It is
// written in the same unit of work as the mutation it describes and carries
// the prev/new quantity snapshot plus request provenance.
type LedgerEntry struct {
	ID            uuid.UUID     `gorm:"column:id;type:uuid;primaryKey"`
	EventTime     time.Time     `gorm:"column:event_time;autoCreateTime;index"`
	UserID        uuid.UUID     `gorm:"column:user_id;type:uuid;not null"`
	Action        enums.TxnType `gorm:"column:action;not null;index"`
	PartNo        string        `gorm:"column:part_no;not null;index"`
	Qty           int           `gorm:"column:qty;not null;default:1"`
	WorkOrderNo   string        `gorm:"column:work_order_no;not null"`
	VendorClaimNo *string       `gorm:"column:vendor_claim_no"`
	IP            string        `gorm:"column:ip;not null;default:''"`
	UserAgent     string        `gorm:"column:user_agent;not null;default:''"`
	PrevQty       int           `gorm:"column:prev_qty;not null"`
	NewQty        int           `gorm:"column:new_qty;not null"`
}
