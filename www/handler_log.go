package www

import (
	"log/slog"
	"net/http"

	"github.com/angas/loadshift-go/database"
)

func NewLogHandler(logger *slog.Logger, db *database.Database) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		page := intOrDefault(r.URL, "page", 1)
		pageSize := intOrDefault(r.URL, "pageSize", 25)

		entries, err := db.GetLogEntries(r.Context(), slog.LevelDebug, page, pageSize)
		if err != nil {
			logger.Error("error loading log entries", slog.Any("error", err))
			writeJsonError(w, http.StatusInternalServerError, err)
			return
		}

		writeJson(w, http.StatusOK, map[string]any{
			"page":     page,
			"pageSize": pageSize,
			"entries":  entries,
		})
	}
}
