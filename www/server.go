package www

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/angas/loadshift-go/advisor"
	"github.com/angas/loadshift-go/config"
	"github.com/angas/loadshift-go/database"
	"github.com/angas/loadshift-go/ingest"
	"github.com/angas/loadshift-go/publisher"
)

type Server struct {
	logger *slog.Logger
	config *config.AppConfig
	db     *database.Database
	hub    *Hub
}

// StartServer wires all HTTP handlers. The publisher may be nil when no
// MQTT broker is configured.
func StartServer(
	db *database.Database,
	in *ingest.Ingestor,
	adv advisor.Advisor,
	pub *publisher.Publisher,
	cnfg *config.AppConfig,
) *Server {
	logger := slog.Default().With("module", "www")

	s := &Server{
		logger: logger,
		config: cnfg,
		db:     db,
		hub:    NewHub(logger),
	}

	go s.hub.Run()

	logReqMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.logger.Debug("http request",
				slog.String("method", r.Method),
				slog.String("url", r.URL.String()),
				slog.String("remoteAddr", r.RemoteAddr))
			next.ServeHTTP(w, r)
		})
	}

	http.Handle("/", logReqMW(NewRootHandler()))

	http.Handle("/health", logReqMW(NewHealthHandler(cnfg)))

	http.Handle("/ingest/entsoe", logReqMW(NewIngestHandler(
		logger.With(slog.String("handler", "ingest")),
		in,
		s.hub)))

	http.Handle("/optimize/load-shift", logReqMW(NewOptimizeHandler(
		logger.With(slog.String("handler", "optimize")),
		s.db,
		in,
		pub,
		s.hub,
		cnfg.Optimizer)))

	http.Handle("/agent/advise", logReqMW(NewAdviseHandler(
		logger.With(slog.String("handler", "advise")),
		s.db,
		in,
		adv,
		cnfg.Optimizer)))

	http.Handle("/prefs", logReqMW(NewPrefsHandler(
		logger.With(slog.String("handler", "prefs")),
		s.db)))

	http.Handle("/runs", logReqMW(NewRunsHandler(
		logger.With(slog.String("handler", "runs")),
		s.db)))

	http.Handle("/log", logReqMW(NewLogHandler(
		logger.With(slog.String("handler", "log")),
		s.db)))

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		name := r.Header.Get("User-Agent")
		client, err := NewClient(s.hub, w, r, name)
		if err != nil {
			s.logger.Error("new websocket client failed", slog.Any("error", err))
			return
		}
		s.hub.Register <- client
		go client.WritePump()
	})

	return s
}

func (s *Server) Run(ctx context.Context) {
	s.logger.Info("starting server...", "port", s.config.Api.Port)
	srv := &http.Server{
		Addr: fmt.Sprintf("%s:%d", s.config.Api.Address, s.config.Api.Port),
	}

	srvErrors := make(chan error, 1)

	go func() {
		srvErrors <- srv.ListenAndServe()
	}()

	for {
		select {
		case err := <-srvErrors:
			if err != nil {
				s.logger.Error("server error", slog.Any("error", err))
			}

		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("server shutdown failed", slog.Any("error", err))
			}
			return
		}
	}
}
