package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/stockroomhq/stockroom-backend/api/responses"
	"github.com/stockroomhq/stockroom-backend/api/validators"
	ledgersvc "github.com/stockroomhq/stockroom-backend/internal/ledger"
	"github.com/stockroomhq/stockroom-backend/pkg/config"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
	"github.com/stockroomhq/stockroom-backend/pkg/pagination"
)

// LedgerList serves the paged audit trail, newest first.
func LedgerList(svc ledgersvc.Service, cfg config.LedgerConfig, logg *logger.Logger) http.HandlerFunc {
	defaultLimit := cfg.DefaultPageSize
	if defaultLimit < 1 {
		defaultLimit = pagination.DefaultLimit
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", defaultLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := ledgersvc.Filter{
			Action:      r.URL.Query().Get("action"),
			PartNo:      r.URL.Query().Get("part_no"),
			WorkOrderNo: r.URL.Query().Get("work_order_no"),
		}
		if filter.Since, err = parseTimeParam(r.URL.Query().Get("since"), false); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.Until, err = parseTimeParam(r.URL.Query().Get("until"), true); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.List(r.Context(), filter, pagination.Params{Limit: limit, Offset: offset})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"entries": rows, "count": len(rows)})
	}
}

// parseTimeParam accepts RFC3339 timestamps or bare dates. A bare date used
// as an upper bound covers the whole day.
func parseTimeParam(raw string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "time filter must be RFC3339 or YYYY-MM-DD").
			WithDetails(map[string]string{"value": raw})
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
