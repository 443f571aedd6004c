package www

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/angas/loadshift-go/config"
	"github.com/angas/loadshift-go/database"
	"github.com/angas/loadshift-go/hours"
	"github.com/angas/loadshift-go/ingest"
	"github.com/angas/loadshift-go/optimize"
	"github.com/angas/loadshift-go/publisher"
)

type optimizeRequest struct {
	FlexibleKWh   float64 `json:"kwh_flexible"`
	MaxShiftHours int     `json:"max_shift_hours"`
	Objective     string  `json:"objective"`
	Zone          string  `json:"zone_eic"`
	Date          string  `json:"date_utc"`
}

func NewOptimizeHandler(
	logger *slog.Logger,
	db *database.Database,
	in *ingest.Ingestor,
	pub *publisher.Publisher,
	hub *Hub,
	cnfg config.AppConfigOptimizer,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req optimizeRequest
		if err := decodeJsonBody(r, &req); err != nil {
			writeJsonError(w, http.StatusBadRequest, err)
			return
		}
		if req.Zone == "" {
			req.Zone = "10YNL----------L"
		}
		if req.MaxShiftHours == 0 {
			req.MaxShiftHours = cnfg.GetDefaultMaxShiftHours()
		}
		if req.Objective == "" {
			req.Objective = optimize.ObjectiveMinCost.String()
		}
		if _, err := hours.ParseDate(req.Date); err != nil {
			writeJsonError(w, http.StatusBadRequest, err)
			return
		}

		objective, err := optimize.ParseObjective(req.Objective)
		if err != nil {
			writeJsonError(w, http.StatusBadRequest, err)
			return
		}

		curve, err := in.PricesCached(r.Context(), req.Zone, req.Date)
		if err != nil {
			logger.Error("price lookup failed", slog.Any("error", err))
			writeJsonError(w, http.StatusBadGateway, err)
			return
		}

		result, err := optimize.Optimize(curve, req.FlexibleKWh, req.MaxShiftHours, objective)
		if err != nil {
			writeJsonError(w, optimizeErrorStatus(err), err)
			return
		}

		// A failed run record must not fail the optimization response.
		if err := db.SaveOptimizationRun(r.Context(), database.OptimizationRunRow{
			Zone:           req.Zone,
			Date:           req.Date,
			FlexibleKWh:    req.FlexibleKWh,
			MaxShiftHours:  req.MaxShiftHours,
			BaselineCost:   result.BaselineCost,
			OptimizedCost:  result.OptimizedCost,
			Savings:        result.Savings,
			SavingsPercent: result.SavingsPercent,
		}); err != nil {
			logger.Error("error saving optimization run", slog.Any("error", err))
		}

		if pub != nil {
			pub.PublishSchedule(req.Zone, req.Date, result)
		}

		hub.BroadcastEvent("optimization", map[string]any{
			"zone_eic":    req.Zone,
			"date_utc":    req.Date,
			"savings_eur": result.Savings,
		})

		writeJson(w, http.StatusOK, result)
	}
}

func optimizeErrorStatus(err error) int {
	switch {
	case errors.Is(err, optimize.ErrNoPriceData):
		return http.StatusNotFound
	case errors.Is(err, optimize.ErrInvalidArgument), errors.Is(err, optimize.ErrUnsupportedObjective):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
