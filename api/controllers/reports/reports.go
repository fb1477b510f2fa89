package reports

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/shopbalance-backend/api/responses"
	"github.com/angelmondragon/shopbalance-backend/api/validators"
	"github.com/angelmondragon/shopbalance-backend/internal/reconcile"
	pkgerrors "github.com/angelmondragon/shopbalance-backend/pkg/errors"
	"github.com/angelmondragon/shopbalance-backend/pkg/logger"
	"github.com/angelmondragon/shopbalance-backend/pkg/types"
)

const (
	dateParam   = "date"
	shopIDParam = "shopId"
)

type reportService interface {
	RecalculateDailyReport(ctx context.Context, date time.Time) (reconcile.RecalculateResult, error)
	FindReportsByDate(ctx context.Context, date time.Time) ([]reconcile.ShopReport, error)
	FindDetailedReport(ctx context.Context, date time.Time, shopID uuid.UUID) (*reconcile.DetailedReport, error)
}

type recalculateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

// ListDaily returns every shop balance stored for ?date=.
func ListDaily(svc reportService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}

		date, err := validators.ParseQueryDate(r, dateParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.FindReportsByDate(r.Context(), date)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ShopDetail returns one shop's balance for ?date= together with its settled orders.
func ShopDetail(svc reportService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}

		shopID, err := validators.ParseUUIDParam(chi.URLParam(r, shopIDParam), shopIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		date, err := validators.ParseQueryDate(r, dateParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithShopID(ctx, shopID.String())
		}

		report, err := svc.FindDetailedReport(ctx, date, shopID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

// Recalculate rebuilds the balances and debts for the posted date.
func Recalculate(svc reportService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}

		var body recalculateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		date, err := types.ParseDate(body.Date)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date"))
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithReportDate(ctx, date)
		}

		result, err := svc.RecalculateDailyReport(ctx, date)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
