package www

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/angas/loadshift-go/hours"
	"github.com/angas/loadshift-go/ingest"
	"github.com/angas/loadshift-go/types"
)

type ingestRequest struct {
	Zone  string   `json:"zone_eic"`
	Date  string   `json:"date_utc"`
	Fetch []string `json:"fetch"`
}

type ingestResponse struct {
	Zone      string         `json:"zone_eic"`
	Hours     int            `json:"hours"`
	HasPrices bool           `json:"has_prices"`
	HasLoad   bool           `json:"has_load"`
	Data      ingestDataSets `json:"data"`
}

type ingestDataSets struct {
	Prices []types.PricePoint `json:"prices,omitempty"`
	Loads  []types.LoadPoint  `json:"loads,omitempty"`
}

func NewIngestHandler(logger *slog.Logger, in *ingest.Ingestor, hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req ingestRequest
		if err := decodeJsonBody(r, &req); err != nil {
			writeJsonError(w, http.StatusBadRequest, err)
			return
		}
		if req.Zone == "" {
			req.Zone = "10YNL----------L"
		}
		if len(req.Fetch) == 0 {
			req.Fetch = []string{"day_ahead_prices", "actual_load"}
		}
		if _, err := hours.ParseDate(req.Date); err != nil {
			writeJsonError(w, http.StatusBadRequest, err)
			return
		}

		resp := ingestResponse{Zone: req.Zone}

		if slices.Contains(req.Fetch, "day_ahead_prices") {
			prices, err := in.Prices(r.Context(), req.Zone, req.Date)
			if err != nil {
				logger.Error("price ingest failed", slog.Any("error", err))
				writeJsonError(w, http.StatusBadGateway, err)
				return
			}
			if len(prices) > 0 {
				resp.HasPrices = true
				resp.Hours = len(prices)
				resp.Data.Prices = prices
			}
		}

		if slices.Contains(req.Fetch, "actual_load") {
			loads, err := in.Loads(r.Context(), req.Zone, req.Date)
			if err != nil {
				logger.Error("load ingest failed", slog.Any("error", err))
				writeJsonError(w, http.StatusBadGateway, err)
				return
			}
			if len(loads) > 0 {
				resp.HasLoad = true
				resp.Data.Loads = loads
			}
		}

		hub.BroadcastEvent("ingest", map[string]any{
			"zone_eic":   req.Zone,
			"date_utc":   req.Date,
			"has_prices": resp.HasPrices,
			"has_load":   resp.HasLoad,
		})

		writeJson(w, http.StatusOK, resp)
	}
}
