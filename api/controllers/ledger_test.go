package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	ledgersvc "github.com/stockroomhq/stockroom-backend/internal/ledger"
	"github.com/stockroomhq/stockroom-backend/pkg/config"
	"github.com/stockroomhq/stockroom-backend/pkg/pagination"
)

type fakeLedgerService struct {
	lastFilter ledgersvc.Filter
	lastPage   pagination.Params
}

func (f *fakeLedgerService) List(_ context.Context, filter ledgersvc.Filter, page pagination.Params) ([]ledgersvc.Entry, error) {
	f.lastFilter = filter
	f.lastPage = page
	return nil, nil
}

func TestLedgerListUsesConfiguredPageSize(t *testing.T) {
	fake := &fakeLedgerService{}
	handler := LedgerList(fake, config.LedgerConfig{DefaultPageSize: 25}, nil)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/ledger", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if fake.lastPage.Limit != 25 {
		t.Fatalf("expected configured page size 25, got %d", fake.lastPage.Limit)
	}
}

func TestLedgerListFallsBackToDefaultPageSize(t *testing.T) {
	fake := &fakeLedgerService{}
	handler := LedgerList(fake, config.LedgerConfig{}, nil)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/ledger", nil))

	if fake.lastPage.Limit != pagination.DefaultLimit {
		t.Fatalf("expected fallback page size %d, got %d", pagination.DefaultLimit, fake.lastPage.Limit)
	}
}

func TestLedgerListExplicitLimitOverridesPageSize(t *testing.T) {
	fake := &fakeLedgerService{}
	handler := LedgerList(fake, config.LedgerConfig{DefaultPageSize: 25}, nil)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/ledger?limit=7&offset=3", nil))

	if fake.lastPage.Limit != 7 || fake.lastPage.Offset != 3 {
		t.Fatalf("unexpected page params: %+v", fake.lastPage)
	}
}
