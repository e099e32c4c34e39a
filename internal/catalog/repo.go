package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stockroomhq/stockroom-backend/internal/repo"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
)

// Repository manages idempotent catalog, work-order and user rows. The
// Ensure* operations are first-write-wins inserts: an existing row is never
// overwritten, and duplicates are the expected common case.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	EnsurePart(ctx context.Context, partNo, defaultDescription string, defaultActive bool) error
	EnsureWorkOrder(ctx context.Context, workOrderNo string) error
	EnsureUser(ctx context.Context, upn string) (*models.User, error)
	FindPart(ctx context.Context, partNo string) (*models.Part, error)
	ListAvailability(ctx context.Context, search string) ([]PartAvailability, error)
}

// PartAvailability is the read-only listing projection: catalog row joined
// with its stock record, absent stock reported as zero.
type PartAvailability struct {
	PartNo      string `json:"part_no"`
	Description string `json:"description"`
	Available   int    `json:"available"`
	Location    string `json:"location"`
}

type repository struct {
	base repo.Base
}

// NewRepository returns a catalog repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{base: repo.NewBase(tx)}
}

func (r *repository) EnsurePart(ctx context.Context, partNo, defaultDescription string, defaultActive bool) error {
	part := models.Part{
		PartNo:      partNo,
		Description: defaultDescription,
		Active:      defaultActive,
	}
	return r.base.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&part).Error
}

func (r *repository) EnsureWorkOrder(ctx context.Context, workOrderNo string) error {
	wo := models.WorkOrder{WorkOrderNo: workOrderNo}
	return r.base.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&wo).Error
}

func (r *repository) EnsureUser(ctx context.Context, upn string) (*models.User, error) {
	candidate := models.User{ID: uuid.New(), UPN: upn}
	if err := r.base.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&candidate).Error; err != nil {
		return nil, err
	}
	var user models.User
	if err := r.base.DB(ctx).
		Where("upn = ?", upn).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) FindPart(ctx context.Context, partNo string) (*models.Part, error) {
	var part models.Part
	err := r.base.DB(ctx).
		Where("part_no = ?", partNo).
		First(&part).Error
	if err != nil {
		return nil, err
	}
	return &part, nil
}

func (r *repository) ListAvailability(ctx context.Context, search string) ([]PartAvailability, error) {
	q := r.base.DB(ctx).
		Table("parts").
		Select("parts.part_no, parts.description, COALESCE(stock_records.qty_on_hand, 0) AS available, COALESCE(stock_records.location, '') AS location").
		Joins("LEFT JOIN stock_records ON stock_records.part_no = parts.part_no").
		Where("parts.active = ?", true)
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("LOWER(parts.part_no) LIKE LOWER(?) OR LOWER(parts.description) LIKE LOWER(?)", like, like)
	}

	var rows []PartAvailability
	if err := q.Order("parts.part_no ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
