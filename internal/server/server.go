package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/cimtrainer/trainlog/internal/config"
	"github.com/cimtrainer/trainlog/internal/metrics"
	"github.com/cimtrainer/trainlog/internal/middleware"
	"github.com/cimtrainer/trainlog/internal/storage"
	"github.com/cimtrainer/trainlog/internal/trainstats"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config   *config.Config
	facade   *storage.Facade
	analyzer *trainstats.Analyzer

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
}

type NewServerParams struct {
	Config      *config.Config
	VersionInfo string
}

func NewServer(ctx context.Context, params NewServerParams) (*Server, error) {
	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("trainlog", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	fileStore, err := storage.NewFileStore(params.Config.DataDir)
	if err != nil {
		return nil, fmt.Errorf("new file store: %w", err)
	}

	// the badger store is best-effort: when it cannot be opened the
	// facade runs the whole session on the file store alone
	var durableStore storage.Store
	if badgerStore, err := storage.NewBadgerStore(params.Config.DataDir); err != nil {
		log.Warnf("failed to open badger store, continuing with file store only: %s", err)
	} else {
		durableStore = badgerStore
	}

	facade := storage.NewFacade(fileStore, durableStore, metricsManager)
	if err := facade.Load(ctx); err != nil {
		return nil, fmt.Errorf("load user data: %w", err)
	}

	return &Server{
		config:         params.Config,
		versionInfo:    params.VersionInfo,
		facade:         facade,
		analyzer:       trainstats.NewAnalyzer(facade),
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()

	dayHandler := NewDayHandler(s.facade)
	r.HandleFunc("/api/day/{date}", dayHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-day")
	r.HandleFunc("/api/day/{date}/log", dayHandler.HandleSaveLog).Methods("PUT", "OPTIONS").Name("save-day-log")
	r.HandleFunc("/api/day/{date}/complete", dayHandler.HandleComplete).Methods("POST", "OPTIONS").Name("complete-day")
	r.HandleFunc("/api/day/{date}/skip", dayHandler.HandleSkip).Methods("POST", "OPTIONS").Name("skip-day")
	r.HandleFunc("/api/day/{date}/unskip", dayHandler.HandleUnskip).Methods("POST", "OPTIONS").Name("unskip-day")
	r.HandleFunc("/api/day/{date}/incomplete", dayHandler.HandleIncomplete).Methods("POST", "OPTIONS").Name("incomplete-day")
	r.HandleFunc("/api/day/{date}/exercises/{id}/sets/{idx}", dayHandler.HandleRecordSet).Methods("PUT", "OPTIONS").Name("record-set")
	r.HandleFunc("/api/day/{date}/exercises/{id}/sets/{idx}", dayHandler.HandleRemoveSet).Methods("DELETE", "OPTIONS").Name("remove-set")
	r.HandleFunc("/api/day/{date}/exercises/{id}/weight", dayHandler.HandleSetWeight).Methods("PUT", "OPTIONS").Name("set-weight")
	r.HandleFunc("/api/day/{date}/routines", dayHandler.HandleSaveRoutines).Methods("PUT", "OPTIONS").Name("save-routines")

	weekHandler := NewWeekHandler(s.facade)
	r.HandleFunc("/api/week/{date}", weekHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-week")
	r.HandleFunc("/api/week/{date}/reordering", weekHandler.HandleSaveReordering).Methods("PUT", "OPTIONS").Name("save-reordering")
	r.HandleFunc("/api/week/{date}/reordering", weekHandler.HandleResetReordering).Methods("DELETE", "OPTIONS").Name("reset-reordering")

	settingsHandler := NewSettingsHandler(s.facade, s.versionInfo)
	r.HandleFunc("/api/overrides/{exerciseId}/{phase}", settingsHandler.HandleSetOverride).Methods("PUT", "OPTIONS").Name("set-override")
	r.HandleFunc("/api/overrides/{exerciseId}/{phase}", settingsHandler.HandleClearOverride).Methods("DELETE", "OPTIONS").Name("clear-override")
	r.HandleFunc("/api/settings/start-date", settingsHandler.HandleSetStartDate).Methods("PUT", "OPTIONS").Name("set-start-date")
	r.HandleFunc("/api/settings/reset", settingsHandler.HandleReset).Methods("POST", "OPTIONS").Name("reset")
	r.HandleFunc("/api/export", settingsHandler.HandleExport).Methods("GET", "OPTIONS").Name("export")
	r.HandleFunc("/api/import", settingsHandler.HandleImport).Methods("POST", "OPTIONS").Name("import")
	r.HandleFunc("/api/version", settingsHandler.HandleVersion).Methods("GET", "OPTIONS").Name("version")

	programHandler := NewProgramHandler()
	r.HandleFunc("/api/program", programHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-program")
	r.HandleFunc("/api/program/exercises", programHandler.HandleExercises).Methods("GET", "OPTIONS").Name("get-exercises")
	r.HandleFunc("/api/routines", programHandler.HandleRoutines).Methods("GET", "OPTIONS").Name("get-routines")

	statsHandler := NewStatsHandler(s.analyzer)
	r.HandleFunc("/api/stats/exercises/{id}/history", statsHandler.HandleExerciseHistory).Methods("GET", "OPTIONS").Name("exercise-history")
	r.HandleFunc("/api/stats/exercises/{id}/progress", statsHandler.HandleExerciseProgress).Methods("GET", "OPTIONS").Name("exercise-progress")
	r.HandleFunc("/api/stats/runs/weekly", statsHandler.HandleWeeklyRuns).Methods("GET", "OPTIONS").Name("weekly-runs")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
	}
	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
	}

	// drains pending badger writes, then closes both stores
	if err := s.facade.Close(); err != nil {
		log.Errorf("failed to close storage: %s", err)
	}

	log.Warnln("server shut down")
}
