package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
)

func newTestRepo(t *testing.T) (Repository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Part{}, &models.StockRecord{}, &models.WorkOrder{}, &models.User{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return NewRepository(conn), conn
}

func TestEnsurePartFirstWriteWins(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	if err := repo.EnsurePart(ctx, "A1", "original", true); err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	if err := repo.EnsurePart(ctx, "A1", "overwrite attempt", false); err != nil {
		t.Fatalf("second ensure: %v", err)
	}

	part, err := repo.FindPart(ctx, "A1")
	if err != nil {
		t.Fatalf("find part: %v", err)
	}
	if part.Description != "original" || !part.Active {
		t.Fatalf("first write must win, got %+v", part)
	}
}

func TestEnsureUserIdempotent(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.EnsureUser(ctx, "tech@example.com")
	if err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	second, err := repo.EnsureUser(ctx, "tech@example.com")
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected stable user id, got %s and %s", first.ID, second.ID)
	}
}

func TestListAvailability(t *testing.T) {
	repo, conn := newTestRepo(t)
	ctx := context.Background()

	seed := []models.Part{
		{PartNo: "A1", Description: "bearing", Active: true},
		{PartNo: "B2", Description: "gasket", Active: true},
		{PartNo: "Z9", Description: "retired", Active: false},
	}
	for i := range seed {
		if err := conn.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed part: %v", err)
		}
	}
	if err := conn.Create(&models.StockRecord{PartNo: "A1", QtyOnHand: 4, Location: "bin-7"}).Error; err != nil {
		t.Fatalf("seed stock: %v", err)
	}

	rows, err := repo.ListAvailability(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("inactive parts must be hidden, got %d rows", len(rows))
	}
	if rows[0].PartNo != "A1" || rows[0].Available != 4 || rows[0].Location != "bin-7" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].PartNo != "B2" || rows[1].Available != 0 {
		t.Fatalf("missing stock must report zero, got %+v", rows[1])
	}
}

func TestListAvailabilitySearchIsCaseInsensitive(t *testing.T) {
	repo, conn := newTestRepo(t)
	ctx := context.Background()

	parts := []models.Part{
		{PartNo: "A1", Description: "Main Bearing", Active: true},
		{PartNo: "B2", Description: "gasket", Active: true},
	}
	for i := range parts {
		if err := conn.Create(&parts[i]).Error; err != nil {
			t.Fatalf("seed part: %v", err)
		}
	}

	rows, err := repo.ListAvailability(ctx, "bearing")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].PartNo != "A1" {
		t.Fatalf("expected the bearing only, got %+v", rows)
	}
}
