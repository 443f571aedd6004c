package www

import (
	"log/slog"
	"net/http"

	"github.com/angas/loadshift-go/database"
)

func NewRunsHandler(logger *slog.Logger, db *database.Database) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		limit := intOrDefault(r.URL, "limit", 20)
		runs, err := db.GetRecentOptimizationRuns(r.Context(), limit)
		if err != nil {
			logger.Error("error loading optimization runs", slog.Any("error", err))
			writeJsonError(w, http.StatusInternalServerError, err)
			return
		}

		writeJson(w, http.StatusOK, map[string]any{
			"count": len(runs),
			"runs":  runs,
		})
	}
}
