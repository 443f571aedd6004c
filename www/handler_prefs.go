package www

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/angas/loadshift-go/database"
)

var errMissingUserId = errors.New("user_id is required")

type prefsRequest struct {
	UserID      string            `json:"user_id"`
	Preferences map[string]string `json:"preferences"`
}

func NewPrefsHandler(logger *slog.Logger, db *database.Database) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req prefsRequest
		if err := decodeJsonBody(r, &req); err != nil {
			writeJsonError(w, http.StatusBadRequest, err)
			return
		}
		if req.UserID == "" {
			writeJsonError(w, http.StatusBadRequest, errMissingUserId)
			return
		}

		saved := 0
		for key, value := range req.Preferences {
			if err := db.SaveUserPreference(r.Context(), req.UserID, fmt.Sprintf("%s: %s", key, value)); err != nil {
				logger.Error("error saving user preference", slog.Any("error", err))
				writeJsonError(w, http.StatusInternalServerError, err)
				return
			}
			saved++
		}

		writeJson(w, http.StatusOK, map[string]any{
			"status": "success",
			"saved":  saved,
		})
	}
}
