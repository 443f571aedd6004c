package www

import (
	"log/slog"
	"net/http"

	"github.com/angas/loadshift-go/advisor"
	"github.com/angas/loadshift-go/config"
	"github.com/angas/loadshift-go/database"
	"github.com/angas/loadshift-go/hours"
	"github.com/angas/loadshift-go/ingest"
	"github.com/angas/loadshift-go/optimize"
)

type adviseRequest struct {
	UserID      string  `json:"user_id"`
	Zone        string  `json:"zone_eic"`
	Date        string  `json:"date_utc"`
	Context     string  `json:"context"`
	FlexibleKWh float64 `json:"kwh_flexible"`
}

func NewAdviseHandler(
	logger *slog.Logger,
	db *database.Database,
	in *ingest.Ingestor,
	adv advisor.Advisor,
	cnfg config.AppConfigOptimizer,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req adviseRequest
		if err := decodeJsonBody(r, &req); err != nil {
			writeJsonError(w, http.StatusBadRequest, err)
			return
		}
		if req.UserID == "" {
			writeJsonError(w, http.StatusBadRequest, errMissingUserId)
			return
		}
		if req.Zone == "" {
			req.Zone = "10YNL----------L"
		}
		if req.FlexibleKWh == 0 {
			req.FlexibleKWh = cnfg.GetDefaultFlexibleKWh()
		}
		if _, err := hours.ParseDate(req.Date); err != nil {
			writeJsonError(w, http.StatusBadRequest, err)
			return
		}

		curve, err := in.PricesCached(r.Context(), req.Zone, req.Date)
		if err != nil {
			logger.Error("price lookup failed", slog.Any("error", err))
			writeJsonError(w, http.StatusBadGateway, err)
			return
		}

		result, err := optimize.Optimize(curve, req.FlexibleKWh, cnfg.GetDefaultMaxShiftHours(), optimize.ObjectiveMinCost)
		if err != nil {
			writeJsonError(w, optimizeErrorStatus(err), err)
			return
		}

		prefs, err := db.GetUserPreferences(r.Context(), req.UserID, 0)
		if err != nil {
			logger.Warn("error loading user preferences", slog.Any("error", err))
		}

		advice, err := adv.Advise(r.Context(), advisor.Request{
			UserID:      req.UserID,
			Zone:        req.Zone,
			Date:        req.Date,
			Context:     req.Context,
			Preferences: prefs,
			Result:      result,
		})
		if err != nil {
			logger.Error("advisor error", slog.Any("error", err))
			writeJsonError(w, http.StatusInternalServerError, err)
			return
		}

		// Free-text context doubles as a preference for later advice.
		if req.Context != "" {
			if err := db.SaveUserPreference(r.Context(), req.UserID, req.Context); err != nil {
				logger.Warn("error saving user preference", slog.Any("error", err))
			}
		}

		if err := db.SaveOptimizationRun(r.Context(), database.OptimizationRunRow{
			UserID:         req.UserID,
			Zone:           req.Zone,
			Date:           req.Date,
			FlexibleKWh:    req.FlexibleKWh,
			MaxShiftHours:  cnfg.GetDefaultMaxShiftHours(),
			BaselineCost:   result.BaselineCost,
			OptimizedCost:  result.OptimizedCost,
			Savings:        result.Savings,
			SavingsPercent: result.SavingsPercent,
		}); err != nil {
			logger.Error("error saving optimization run", slog.Any("error", err))
		}

		writeJson(w, http.StatusOK, advice)
	}
}
