package stock

import (
	"context"
	stdErrors "errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stockroomhq/stockroom-backend/internal/repo"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
)

// Repository serializes stock mutations. All methods expect to run inside
// the caller's transaction; LockForUpdate pins the row for the remainder of
// that transaction so concurrent commits on the same part queue up.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	LockForUpdate(ctx context.Context, partNo string) (*models.StockRecord, error)
	CreateIfMissing(ctx context.Context, partNo string) error
	Increment(ctx context.Context, partNo string) error
	Decrement(ctx context.Context, partNo string) error
}

type repository struct {
	base repo.Base
}

// NewRepository returns a stock repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{base: repo.NewBase(tx)}
}

// LockForUpdate fetches the stock row under FOR UPDATE. A missing row is
// reported as (nil, nil), not an error. SQLite has no row locks; its single
// writer serializes transactions on its own.
func (r *repository) LockForUpdate(ctx context.Context, partNo string) (*models.StockRecord, error) {
	q := r.base.DB(ctx)
	if q.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var record models.StockRecord
	err := q.Where("part_no = ?", partNo).First(&record).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// CreateIfMissing inserts a zero-quantity stock row, tolerating a concurrent
// insert of the same part.
func (r *repository) CreateIfMissing(ctx context.Context, partNo string) error {
	record := models.StockRecord{PartNo: partNo, QtyOnHand: 0}
	return r.base.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&record).Error
}

func (r *repository) Increment(ctx context.Context, partNo string) error {
	return r.base.DB(ctx).
		Model(&models.StockRecord{}).
		Where("part_no = ?", partNo).
		Update("qty_on_hand", gorm.Expr("qty_on_hand + 1")).Error
}

func (r *repository) Decrement(ctx context.Context, partNo string) error {
	return r.base.DB(ctx).
		Model(&models.StockRecord{}).
		Where("part_no = ?", partNo).
		Update("qty_on_hand", gorm.Expr("qty_on_hand - 1")).Error
}
