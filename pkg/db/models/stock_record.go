package models

import "time"

// StockRecord holds the authoritative on-hand quantity per part. Rows are
// created lazily at first check-in and mutated only by the commit engine
// under a row lock; qty_on_hand never goes negative.
type StockRecord struct {
	PartNo    string    `gorm:"column:part_no;primaryKey"`
	QtyOnHand int       `gorm:"column:qty_on_hand;not null;default:0"`
	Location  string    `gorm:"column:location;not null;default:''"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
