package www

import (
	"net/http"

	"github.com/angas/loadshift-go/config"
)

func NewRootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		writeJson(w, http.StatusOK, map[string]string{
			"name":    "Load Shift Optimizer API",
			"version": "1.0.0",
			"status":  "operational",
		})
	}
}

func NewHealthHandler(cnfg *config.AppConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJson(w, http.StatusOK, map[string]any{
			"status":            "healthy",
			"entsoe_configured": cnfg.Entsoe.Token != "",
			"ai_configured":     cnfg.Advisor.ApiKey != "",
			"mock_mode":         cnfg.MockData.Force,
		})
	}
}
