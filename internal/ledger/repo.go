package ledger

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/internal/repo"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"github.com/stockroomhq/stockroom-backend/pkg/pagination"
)

// Filter narrows the ledger listing. Zero values mean "no constraint".
type Filter struct {
	Action      string
	PartNo      string
	WorkOrderNo string
	Since       *time.Time
	Until       *time.Time
}

// Entry is the read projection of one ledger row joined with the actor's UPN.
type Entry struct {
	ID            string    `json:"id"`
	EventTime     time.Time `json:"event_time"`
	UserUPN       string    `json:"user_upn"`
	Action        string    `json:"action"`
	PartNo        string    `json:"part_no"`
	Qty           int       `json:"qty"`
	WorkOrderNo   string    `json:"work_order_no"`
	VendorClaimNo *string   `json:"vendor_claim_no"`
	IP            string    `json:"ip"`
	UserAgent     string    `json:"user_agent"`
	PrevQty       int       `json:"prev_qty"`
	NewQty        int       `json:"new_qty"`
}

// Repository writes immutable transaction and ledger rows and reads pages of
// the ledger newest-first.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateTransaction(ctx context.Context, txn *models.Transaction) error
	CreateEntry(ctx context.Context, entry *models.LedgerEntry) error
	List(ctx context.Context, filter Filter, page pagination.Params) ([]Entry, error)
}

type repository struct {
	base repo.Base
}

// NewRepository returns a ledger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{base: repo.NewBase(tx)}
}

func (r *repository) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	return r.base.DB(ctx).Create(txn).Error
}

func (r *repository) CreateEntry(ctx context.Context, entry *models.LedgerEntry) error {
	return r.base.DB(ctx).Create(entry).Error
}

func (r *repository) List(ctx context.Context, filter Filter, page pagination.Params) ([]Entry, error) {
	q := r.base.DB(ctx).
		Table("ledger_entries").
		Select("ledger_entries.id, ledger_entries.event_time, users.upn AS user_upn, ledger_entries.action, ledger_entries.part_no, ledger_entries.qty, ledger_entries.work_order_no, ledger_entries.vendor_claim_no, ledger_entries.ip, ledger_entries.user_agent, ledger_entries.prev_qty, ledger_entries.new_qty").
		Joins("JOIN users ON users.id = ledger_entries.user_id")

	if filter.Action != "" {
		q = q.Where("ledger_entries.action = ?", filter.Action)
	}
	// case-insensitive; callers may pass their own % wildcards
	if filter.PartNo != "" {
		q = q.Where("LOWER(ledger_entries.part_no) LIKE LOWER(?)", filter.PartNo)
	}
	if filter.WorkOrderNo != "" {
		q = q.Where("LOWER(ledger_entries.work_order_no) LIKE LOWER(?)", filter.WorkOrderNo)
	}
	if filter.Since != nil {
		q = q.Where("ledger_entries.event_time >= ?", *filter.Since)
	}
	if filter.Until != nil {
		q = q.Where("ledger_entries.event_time <= ?", *filter.Until)
	}

	var rows []Entry
	err := q.Order("ledger_entries.event_time DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
