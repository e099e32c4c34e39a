package models

import "time"

// Part is a catalog row. Parts are never physically deleted, only
// deactivated; auto-created parts carry the "Uncatalogued" description.
type Part struct {
	PartNo      string    `gorm:"column:part_no;primaryKey"`
	Description string    `gorm:"column:description;not null"`
	Active      bool      `gorm:"column:active;not null;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
