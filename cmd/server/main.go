package main

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/polystrat/geosim/internal/api"
	"github.com/polystrat/geosim/internal/cache"
	"github.com/polystrat/geosim/internal/experiments"
	"github.com/polystrat/geosim/internal/metrics"
	"github.com/polystrat/geosim/internal/pipeline"
	"github.com/polystrat/geosim/internal/store"
	"github.com/polystrat/geosim/internal/wal"
	"github.com/polystrat/geosim/pkg/otel"
)

type Server struct {
	pipeline *pipeline.Pipeline
	store    store.Store
	inboxWAL *wal.InboxWAL
	limiter  *rate.Limiter

	// inFlight tracks scenarios currently being analyzed; the store only
	// ever sees finished envelopes.
	inFlight sync.Map // scenario id -> *api.ComprehensiveResult

	metricsAuth struct {
		enabled  bool
		user     string
		password string
	}
}

func main() {
	ctx := context.Background()

	// Tracing
	if getEnv("OTEL_ENABLED", "") == "true" {
		otelCfg := otel.DefaultConfig("geosim")
		otelCfg.CollectorEndpoint = getEnv("OTEL_ENDPOINT", otelCfg.CollectorEndpoint)
		tp, err := otel.InitTracer(ctx, otelCfg)
		if err != nil {
			log.Fatalf("Failed to init tracer: %v", err)
		}
		defer otel.Shutdown(ctx, tp)
	}

	// Scenario store
	backend := getEnv("STORE_BACKEND", "memory")
	var scenarioStore store.Store
	var err error

	switch backend {
	case "memory":
		snapshotPath := getEnv("STORE_SNAPSHOT", "data/scenarios.json")
		scenarioStore = store.NewMemoryStore(snapshotPath)
	case "redis":
		redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
		redisPass := getEnv("REDIS_PASSWORD", "")
		redisDB := getEnvInt("REDIS_DB", 0)
		scenarioStore, err = store.NewRedisStore(redisAddr, redisPass, redisDB)
		if err != nil {
			log.Fatalf("Failed to create Redis store: %v", err)
		}
	case "postgres":
		connStr := getEnv("POSTGRES_CONN", "")
		scenarioStore, err = store.NewPostgresStore(connStr)
		if err != nil {
			log.Fatalf("Failed to create Postgres store: %v", err)
		}
	default:
		log.Fatalf("Unknown STORE_BACKEND: %s", backend)
	}

	// Inbox WAL
	walDir := getEnv("WAL_DIR", "data/wal")
	inboxWAL, err := wal.NewInboxWAL(walDir)
	if err != nil {
		log.Fatalf("Failed to create inbox WAL: %v", err)
	}

	// Transient result cache
	cacheSize := getEnvInt("CACHE_SIZE", 1024)
	cacheTTL := time.Duration(getEnvInt("CACHE_TTL_MINUTES", 60)) * time.Minute
	resultCache, err := cache.NewLRUWithTTL[string, *api.ComprehensiveResult](cacheSize, cacheTTL)
	if err != nil {
		log.Fatalf("Failed to create result cache: %v", err)
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	p := pipeline.New(pipeline.Options{
		Store:     scenarioStore,
		Cache:     resultCache,
		Metrics:   m,
		ResultTTL: time.Duration(getEnvInt("RESULT_TTL_HOURS", 24)) * time.Hour,
	})

	// Rate limiter
	tokenRate := getEnvInt("TOKEN_RATE", 100)
	limiter := rate.NewLimiter(rate.Limit(tokenRate), tokenRate*2)

	srv := &Server{
		pipeline: p,
		store:    scenarioStore,
		inboxWAL: inboxWAL,
		limiter:  limiter,
	}

	srv.metricsAuth.enabled = getEnv("METRICS_USER", "") != ""
	srv.metricsAuth.user = getEnv("METRICS_USER", "")
	srv.metricsAuth.password = getEnv("METRICS_PASS", "")

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/scenarios", srv.handleSubmit)
	mux.HandleFunc("/v1/scenarios/", srv.handleGetScenario)
	mux.HandleFunc("/v1/experiments", srv.handleListExperiments)
	mux.HandleFunc("/v1/experiments/", srv.handleRunExperiment)
	mux.Handle("/metrics", srv.metricsHandler())
	mux.HandleFunc("/health", handleHealth)

	port := getEnv("PORT", "8080")
	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-shutdown
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	if err := inboxWAL.Close(); err != nil {
		log.Printf("Error closing WAL: %v", err)
	}
	if err := scenarioStore.Close(); err != nil {
		log.Printf("Error closing scenario store: %v", err)
	}

	log.Println("Server stopped")
}

// handleSubmit accepts a scenario config, journals it, and launches one
// background worker for the analysis. Responds 202 with the scenario id;
// a scenario already stored or in flight is reported instead of rerun.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !s.limiter.Allow() {
		w.Header().Set("Retry-After", "10")
		http.Error(w, "Too many requests", http.StatusTooManyRequests)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20)) // 1MB limit
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}

	// Journal BEFORE parsing so a crash loses no accepted submission.
	if err := s.inboxWAL.Append(body); err != nil {
		log.Printf("WAL append error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var cfg api.ScenarioConfig
	if err := json.Unmarshal(body, &cfg); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	scenarioID, err := api.ComputeScenarioID(&cfg)
	if err != nil {
		log.Printf("Scenario id error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// Identical config already analyzed: point at the stored run.
	stored, err := s.store.Get(r.Context(), scenarioID)
	if err != nil {
		log.Printf("Store error for %s: %v", scenarioID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if stored != nil {
		respondStatus(w, http.StatusOK, scenarioID, stored.Status)
		return
	}

	placeholder := &api.ComprehensiveResult{
		ScenarioID:        scenarioID,
		ScenarioConfig:    cfg.Clone(),
		AnalysisStartTime: time.Now().UTC(),
		Status:            api.StatusInitialized,
	}
	if _, running := s.inFlight.LoadOrStore(scenarioID, placeholder); running {
		respondStatus(w, http.StatusAccepted, scenarioID, api.StatusRunning)
		return
	}

	// One worker per scenario; the request context dies with this handler,
	// so the worker runs on its own.
	go func() {
		defer s.inFlight.Delete(scenarioID)
		if _, err := s.pipeline.Run(context.Background(), &cfg); err != nil {
			log.Printf("Scenario %s failed: %v", scenarioID, err)
		}
	}()

	respondStatus(w, http.StatusAccepted, scenarioID, api.StatusInitialized)
}

func (s *Server) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	scenarioID := strings.TrimPrefix(r.URL.Path, "/v1/scenarios/")
	if scenarioID == "" || strings.Contains(scenarioID, "/") {
		http.Error(w, "Invalid scenario id", http.StatusBadRequest)
		return
	}

	result, err := s.store.Get(r.Context(), scenarioID)
	if err != nil {
		log.Printf("Store error for %s: %v", scenarioID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if result == nil {
		if pending, ok := s.inFlight.Load(scenarioID); ok {
			respondJSON(w, http.StatusOK, pending)
			return
		}
		http.Error(w, "Scenario not found", http.StatusNotFound)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleListExperiments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	respondJSON(w, http.StatusOK, map[string][]string{"experiments": experiments.Names()})
}

// handleRunExperiment runs a built-in scenario synchronously:
// POST /v1/experiments/{name}
func (s *Server) handleRunExperiment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !s.limiter.Allow() {
		w.Header().Set("Retry-After", "10")
		http.Error(w, "Too many requests", http.StatusTooManyRequests)
		return
	}

	name := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/experiments/"), "/run")
	cfg, err := experiments.Get(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	result, err := s.pipeline.Run(r.Context(), cfg)
	if err != nil {
		log.Printf("Experiment %s error: %v", name, err)
		http.Error(w, "Analysis failed", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) metricsHandler() http.Handler {
	handler := promhttp.Handler()

	if !s.metricsAuth.enabled {
		return handler
	}

	// Wrap with Basic Auth
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != s.metricsAuth.user || pass != s.metricsAuth.password {
			w.Header().Set("WWW-Authenticate", `Basic realm="Metrics"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		handler.ServeHTTP(w, r)
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func respondStatus(w http.ResponseWriter, httpStatus int, scenarioID, status string) {
	respondJSON(w, httpStatus, map[string]string{
		"scenario_id": scenarioID,
		"status":      status,
	})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
