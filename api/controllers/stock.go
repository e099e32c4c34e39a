package controllers

import (
	"net/http"

	"github.com/stockroomhq/stockroom-backend/api/responses"
	catalogsvc "github.com/stockroomhq/stockroom-backend/internal/catalog"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
)

// StockList is the authenticated stock view. Same projection as the public
// parts listing but gated to admin roles alongside the other stock routes.
func StockList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		rows, err := svc.ListAvailability(r.Context(), r.URL.Query().Get("search"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"stock": rows, "count": len(rows)})
	}
}
