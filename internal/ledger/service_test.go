package ledger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"github.com/stockroomhq/stockroom-backend/pkg/enums"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/pagination"
)

func newTestService(t *testing.T) (Service, *gorm.DB, uuid.UUID) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}, &models.LedgerEntry{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	user := models.User{ID: uuid.New(), UPN: "tech@example.com"}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	svc, err := NewService(NewRepository(conn))
	if err != nil {
		t.Fatalf("failed to create ledger service: %v", err)
	}
	return svc, conn, user.ID
}

func seedEntry(t *testing.T, conn *gorm.DB, userID uuid.UUID, action enums.TxnType, partNo, workOrderNo string, eventTime time.Time) {
	t.Helper()
	entry := models.LedgerEntry{
		ID:          uuid.New(),
		UserID:      userID,
		Action:      action,
		PartNo:      partNo,
		Qty:         1,
		WorkOrderNo: workOrderNo,
		PrevQty:     1,
		NewQty:      0,
	}
	if err := conn.Create(&entry).Error; err != nil {
		t.Fatalf("seed entry: %v", err)
	}
	// autoCreateTime stamps inserts with now; pin the time explicitly
	if err := conn.Model(&models.LedgerEntry{}).Where("id = ?", entry.ID).Update("event_time", eventTime).Error; err != nil {
		t.Fatalf("pin event time: %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	svc, conn, userID := newTestService(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedEntry(t, conn, userID, enums.TxnCheckout, "A1", "WO-1", base)
	seedEntry(t, conn, userID, enums.TxnCheckin, "B2", "WO-2", base.Add(time.Hour))

	rows, err := svc.List(ctx, Filter{}, pagination.Params{Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].PartNo != "B2" || rows[1].PartNo != "A1" {
		t.Fatalf("expected newest first, got %+v", rows)
	}
	if rows[0].UserUPN != "tech@example.com" {
		t.Fatalf("expected joined upn, got %q", rows[0].UserUPN)
	}
}

func TestListFilters(t *testing.T) {
	svc, conn, userID := newTestService(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedEntry(t, conn, userID, enums.TxnCheckout, "A1", "WO-1", base)
	seedEntry(t, conn, userID, enums.TxnCheckin, "B2", "WO-2", base.Add(time.Hour))
	seedEntry(t, conn, userID, enums.TxnCheckout, "AX7", "WO-1", base.Add(2*time.Hour))

	rows, err := svc.List(ctx, Filter{Action: "checkout"}, pagination.Params{Limit: 10})
	if err != nil {
		t.Fatalf("action filter: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 checkout rows, got %d", len(rows))
	}

	rows, err = svc.List(ctx, Filter{PartNo: "a1"}, pagination.Params{Limit: 10})
	if err != nil {
		t.Fatalf("part filter: %v", err)
	}
	if len(rows) != 1 || rows[0].PartNo != "A1" {
		t.Fatalf("part match must be case-insensitive and exact without wildcards, got %+v", rows)
	}

	rows, err = svc.List(ctx, Filter{PartNo: "a%"}, pagination.Params{Limit: 10})
	if err != nil {
		t.Fatalf("part wildcard filter: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("caller wildcards must pass through, got %d rows", len(rows))
	}

	rows, err = svc.List(ctx, Filter{WorkOrderNo: "WO-2"}, pagination.Params{Limit: 10})
	if err != nil {
		t.Fatalf("work order filter: %v", err)
	}
	if len(rows) != 1 || rows[0].PartNo != "B2" {
		t.Fatalf("unexpected work order rows: %+v", rows)
	}

	since := base.Add(30 * time.Minute)
	rows, err = svc.List(ctx, Filter{Since: &since}, pagination.Params{Limit: 10})
	if err != nil {
		t.Fatalf("since filter: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows after since, got %d", len(rows))
	}
}

func TestListClampsPagination(t *testing.T) {
	svc, conn, userID := newTestService(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		seedEntry(t, conn, userID, enums.TxnCheckout, fmt.Sprintf("P%d", i), "WO-1", base.Add(time.Duration(i)*time.Minute))
	}

	// non-positive limits clamp to the smallest page, negative offsets to zero
	rows, err := svc.List(ctx, Filter{}, pagination.Params{Limit: -5, Offset: -10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected limit clamped to 1, got %d rows", len(rows))
	}
	if rows[0].PartNo != "P2" {
		t.Fatalf("expected newest row, got %+v", rows)
	}

	rows, err = svc.List(ctx, Filter{}, pagination.Params{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("paged list: %v", err)
	}
	if len(rows) != 2 || rows[0].PartNo != "P1" {
		t.Fatalf("unexpected page: %+v", rows)
	}
}

func TestListRejectsUnknownAction(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.List(context.Background(), Filter{Action: "restock"}, pagination.Params{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}
