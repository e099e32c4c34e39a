package models

import "time"

// WorkOrder groups part consumption for a maintenance job. Created
// idempotently whenever referenced; never deleted.
type WorkOrder struct {
	WorkOrderNo string    `gorm:"column:work_order_no;primaryKey"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
