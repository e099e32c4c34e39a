package controllers

import (
	"net/http"

	"github.com/stockroomhq/stockroom-backend/api/middleware"
	"github.com/stockroomhq/stockroom-backend/api/responses"
	"github.com/stockroomhq/stockroom-backend/api/validators"
	checkoutsvc "github.com/stockroomhq/stockroom-backend/internal/checkout"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
)

// Checkin returns one unit of a part to stock. Fields arrive in the query
// string or a form body, same as checkout.
func Checkin(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		receipt, err := svc.Checkin(r.Context(), checkoutsvc.CheckinInput{
			UserUPN:       middleware.UserUPNFromContext(r.Context()),
			PartNo:        validators.FormOrQueryValue(r, "part_no"),
			WorkOrderNo:   validators.FormOrQueryValue(r, "work_order_no"),
			VendorClaimNo: validators.FormOrQueryValue(r, "vendor_claim_no"),
			ClientIP:      clientIP(r),
			UserAgent:     r.UserAgent(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, receipt)
	}
}
