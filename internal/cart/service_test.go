package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/internal/catalog"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}, &models.Cart{}, &models.CartLine{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	svc, err := NewService(NewRepository(conn), catalog.NewRepository(conn))
	if err != nil {
		t.Fatalf("failed to create cart service: %v", err)
	}
	return svc, conn
}

func TestGetOrCreateReturnsSameCart(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.GetOrCreate(ctx, "tech@example.com")
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := svc.GetOrCreate(ctx, "tech@example.com")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected the same cart, got %s and %s", first.ID, second.ID)
	}
}

func TestAddLineWithoutCart(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddLine(context.Background(), "tech@example.com", "A1")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeCartNotFound {
		t.Fatalf("expected CART_NOT_FOUND, got %v", err)
	}
}

func TestAddLineRequiresPartNo(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddLine(context.Background(), "tech@example.com", "   ")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestSummarySpansAllCarts(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	first, err := svc.GetOrCreate(ctx, "tech@example.com")
	if err != nil {
		t.Fatalf("create cart: %v", err)
	}
	if _, err := svc.AddLine(ctx, "tech@example.com", "B2"); err != nil {
		t.Fatalf("add line: %v", err)
	}

	// simulate a shadow cart created under a race holding its own line
	shadow := models.Cart{ID: uuid.New(), UserID: first.UserID}
	if err := conn.Create(&shadow).Error; err != nil {
		t.Fatalf("create shadow cart: %v", err)
	}
	line := models.CartLine{ID: uuid.New(), CartID: shadow.ID, PartNo: "A1", Qty: 1}
	if err := conn.Create(&line).Error; err != nil {
		t.Fatalf("create shadow line: %v", err)
	}

	summary, err := svc.Summary(ctx, "tech@example.com")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Total != 2 || len(summary.Lines) != 2 {
		t.Fatalf("expected both carts' lines, got %+v", summary)
	}
	if summary.Lines[0].PartNo != "A1" || summary.Lines[1].PartNo != "B2" {
		t.Fatalf("expected part-number ordering, got %+v", summary.Lines)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.GetOrCreate(ctx, "tech@example.com"); err != nil {
		t.Fatalf("create cart: %v", err)
	}
	if _, err := svc.AddLine(ctx, "tech@example.com", "A1"); err != nil {
		t.Fatalf("add line: %v", err)
	}

	removed, err := svc.Clear(ctx, "tech@example.com")
	if err != nil {
		t.Fatalf("first clear: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed line, got %d", removed)
	}

	removed, err = svc.Clear(ctx, "tech@example.com")
	if err != nil {
		t.Fatalf("second clear: %v", err)
	}
	if removed != 0 {
		t.Fatalf("expected no-op on empty cart, got %d", removed)
	}
}
