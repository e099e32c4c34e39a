package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the principal on whose behalf stock moves. Rows are created
// idempotently on first interaction; the UPN comes from the upstream
// identity collaborator.
type User struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UPN       string    `gorm:"column:upn;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
