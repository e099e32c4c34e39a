package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stockroomhq/stockroom-backend/api/middleware"
	checkoutsvc "github.com/stockroomhq/stockroom-backend/internal/checkout"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/types"
)

type fakeCheckoutService struct {
	lastCheckout checkoutsvc.CheckoutInput
	lastCheckin  checkoutsvc.CheckinInput
	err          error
}

func (f *fakeCheckoutService) CheckoutCommit(_ context.Context, input checkoutsvc.CheckoutInput) (*checkoutsvc.CheckoutReceipt, error) {
	f.lastCheckout = input
	if f.err != nil {
		return nil, f.err
	}
	return &checkoutsvc.CheckoutReceipt{WorkOrderNo: input.WorkOrderNo}, nil
}

func (f *fakeCheckoutService) Checkin(_ context.Context, input checkoutsvc.CheckinInput) (*checkoutsvc.CheckinReceipt, error) {
	f.lastCheckin = input
	if f.err != nil {
		return nil, f.err
	}
	return &checkoutsvc.CheckinReceipt{PartNo: input.PartNo, WorkOrderNo: input.WorkOrderNo, NewQty: 1}, nil
}

func authedRequest(method, target string, body *strings.Reader) *http.Request {
	var r *http.Request
	if body == nil {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, body)
	}
	return r.WithContext(middleware.WithUserUPN(r.Context(), "tech@example.com"))
}

func TestCheckoutCommitTakesWorkOrderFromQuery(t *testing.T) {
	fake := &fakeCheckoutService{}
	handler := CheckoutCommit(fake, nil)

	r := authedRequest("POST", "/api/v1/checkout/commit?work_order_no=WO-7", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if fake.lastCheckout.WorkOrderNo != "WO-7" {
		t.Fatalf("expected WO-7, got %q", fake.lastCheckout.WorkOrderNo)
	}
	if fake.lastCheckout.UserUPN != "tech@example.com" {
		t.Fatalf("expected upn from context, got %q", fake.lastCheckout.UserUPN)
	}
}

func TestCheckoutCommitTakesWorkOrderFromForm(t *testing.T) {
	fake := &fakeCheckoutService{}
	handler := CheckoutCommit(fake, nil)

	body := strings.NewReader("work_order_no=WO-8")
	r := authedRequest("POST", "/api/v1/checkout/commit", body)
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if fake.lastCheckout.WorkOrderNo != "WO-8" {
		t.Fatalf("expected WO-8, got %q", fake.lastCheckout.WorkOrderNo)
	}
}

func TestCheckoutCommitSurfacesServiceError(t *testing.T) {
	fake := &fakeCheckoutService{err: pkgerrors.New(pkgerrors.CodeEmptyCart, "cart has no lines to commit")}
	handler := CheckoutCommit(fake, nil)

	r := authedRequest("POST", "/api/v1/checkout/commit?work_order_no=WO-9", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error.Code != string(pkgerrors.CodeEmptyCart) {
		t.Fatalf("unexpected code %s", body.Error.Code)
	}
}

func TestCheckinPassesAllFields(t *testing.T) {
	fake := &fakeCheckoutService{}
	handler := Checkin(fake, nil)

	r := authedRequest("POST", "/api/v1/checkin?part_no=A1&work_order_no=WO-1&vendor_claim_no=VC-2", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	r.Header.Set("User-Agent", "scanner/2.1")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	in := fake.lastCheckin
	if in.PartNo != "A1" || in.WorkOrderNo != "WO-1" || in.VendorClaimNo != "VC-2" {
		t.Fatalf("fields not extracted: %+v", in)
	}
	if in.ClientIP != "203.0.113.9" {
		t.Fatalf("expected first forwarded hop, got %q", in.ClientIP)
	}
	if in.UserAgent != "scanner/2.1" {
		t.Fatalf("user agent not captured: %q", in.UserAgent)
	}
}
