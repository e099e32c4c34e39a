package controllers

import (
	"net/http"

	"github.com/stockroomhq/stockroom-backend/api/middleware"
	"github.com/stockroomhq/stockroom-backend/api/responses"
	"github.com/stockroomhq/stockroom-backend/api/validators"
	cartsvc "github.com/stockroomhq/stockroom-backend/internal/cart"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
)

// CartCreate returns the caller's active cart, creating one when none
// exists. Calling it repeatedly is harmless.
func CartCreate(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		upn := middleware.UserUPNFromContext(r.Context())
		record, err := svc.GetOrCreate(r.Context(), upn)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"cart_id":    record.ID,
			"created_at": record.CreatedAt,
		})
	}
}

type addLineRequest struct {
	PartNo string `json:"part_no" validate:"required"`
}

// CartAddLine stages one unit of a part in the caller's cart.
func CartAddLine(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload addLineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		upn := middleware.UserUPNFromContext(r.Context())
		line, err := svc.AddLine(r.Context(), upn, payload.PartNo)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"line_id": line.ID,
			"part_no": line.PartNo,
			"qty":     line.Qty,
		})
	}
}

// CartSummary lists every pending line across the caller's carts.
func CartSummary(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		upn := middleware.UserUPNFromContext(r.Context())
		summary, err := svc.Summary(r.Context(), upn)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}

// CartClear drops every pending line across the caller's carts.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		upn := middleware.UserUPNFromContext(r.Context())
		removed, err := svc.Clear(r.Context(), upn)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"removed": removed})
	}
}
