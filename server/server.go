// Package server exposes the asset bank and CBR exchange rates over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/finwatch/asset/cbr"
	"github.com/finwatch/asset/logger"
	"github.com/finwatch/asset/models"
	"github.com/finwatch/asset/store"
)

const (
	unavailableMessage = "CBR service is unavailable"
	notFoundMessage    = "This route is not found"

	rubCharCode = "RUB"
)

// Config holds HTTP server configuration.
type Config struct {
	ListenAddr     string        `yaml:"listen_addr"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// Server routes asset bank and CBR requests.
type Server struct {
	router chi.Router
	server *http.Server
	store  store.Store
	cbr    cbr.Client
	logger logger.Logger
}

type Params struct {
	Config Config
	Store  store.Store
	CBR    cbr.Client
	Logger logger.Logger
}

// New creates a new Server from the given params.
func New(p Params) *Server {
	log := p.Logger
	if log == nil {
		log = logger.NewNop()
	}

	timeout := p.Config.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	s := &Server{
		router: chi.NewRouter(),
		store:  p.Store,
		cbr:    p.CBR,
		logger: log,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(timeout))
	s.router.Use(s.logRequests)

	s.router.Get("/cbr/daily", s.handleDaily)
	s.router.Get("/cbr/key_indicators", s.handleKeyIndicators)
	s.router.Get("/api/asset/add/{char_code}/{name}/{capital}/{interest}", s.handleAddAsset)
	s.router.Get("/api/asset/list", s.handleListAssets)
	s.router.Get("/api/asset/get", s.handleGetAssets)
	s.router.Get("/api/asset/calculate_revenue", s.handleCalculateRevenue)
	s.router.Get("/api/asset/cleanup", s.handleCleanup)
	s.router.NotFound(s.handleNotFound)

	s.server = &http.Server{
		Addr:    p.Config.ListenAddr,
		Handler: s.router,
	}

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.InfoW("http server listening", "addr", s.server.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.DebugW("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).String(),
		)
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.logger.ErrorW("route not found", "method", r.Method, "path", r.URL.Path)
	writeText(w, http.StatusNotFound, notFoundMessage)
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	rates, err := s.cbr.Daily(r.Context())
	if err != nil {
		s.respondCBRError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rates)
}

func (s *Server) handleKeyIndicators(w http.ResponseWriter, r *http.Request) {
	rates, err := s.cbr.KeyIndicators(r.Context())
	if err != nil {
		s.respondCBRError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rates)
}

func (s *Server) handleAddAsset(w http.ResponseWriter, r *http.Request) {
	charCode := chi.URLParam(r, "char_code")
	name := chi.URLParam(r, "name")

	capital, err := strconv.ParseFloat(chi.URLParam(r, "capital"), 64)
	if err != nil {
		writeText(w, http.StatusBadRequest, fmt.Sprintf("invalid capital: %v", err))
		return
	}
	interest, err := strconv.ParseFloat(chi.URLParam(r, "interest"), 64)
	if err != nil {
		writeText(w, http.StatusBadRequest, fmt.Sprintf("invalid interest: %v", err))
		return
	}

	profile := models.Profile{
		CharCode: charCode,
		Asset:    models.Asset{Name: name, Capital: capital, Interest: interest},
	}
	if err := s.store.AddProfile(r.Context(), profile); err != nil {
		if errors.Is(err, store.ErrAssetExists) {
			writeText(w, http.StatusForbidden, fmt.Sprintf("Asset %s already exists", name))
			return
		}
		s.respondStoreError(w, err)
		return
	}

	writeText(w, http.StatusOK, fmt.Sprintf("Asset %s was successfully added", name))
}

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.store.ListProfiles(r.Context())
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileRows(profiles))
}

func (s *Server) handleGetAssets(w http.ResponseWriter, r *http.Request) {
	names := r.URL.Query()["name"]
	profiles, err := s.store.GetProfiles(r.Context(), names)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileRows(profiles))
}

func (s *Server) handleCalculateRevenue(w http.ResponseWriter, r *http.Request) {
	periods := r.URL.Query()["period"]

	daily, err := s.cbr.Daily(r.Context())
	if err != nil {
		s.respondCBRError(w, err)
		return
	}
	indicators, err := s.cbr.KeyIndicators(r.Context())
	if err != nil {
		s.respondCBRError(w, err)
		return
	}

	profiles, err := s.store.ListProfiles(r.Context())
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	revenue := make(map[string]float64, len(periods))
	for _, rawPeriod := range periods {
		years, err := strconv.ParseFloat(rawPeriod, 64)
		if err != nil {
			writeText(w, http.StatusBadRequest, fmt.Sprintf("invalid period: %v", err))
			return
		}

		var total float64
		for _, profile := range profiles {
			asset := profile.Asset
			if profile.CharCode != rubCharCode {
				rate, ok := indicators[profile.CharCode]
				if !ok {
					rate, ok = daily[profile.CharCode]
				}
				if !ok {
					s.logger.WarnW("no exchange rate for asset, skipping",
						"name", asset.Name,
						"char_code", profile.CharCode,
					)
					continue
				}
				asset.Capital *= rate
			}
			total += asset.Revenue(years)
		}
		revenue[rawPeriod] += total
	}

	writeJSON(w, http.StatusOK, revenue)
}

func (s *Server) handleCleanup(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Cleanup(r.Context()); err != nil {
		s.respondStoreError(w, err)
		return
	}
	writeText(w, http.StatusOK, "there are no more assets")
}

func (s *Server) respondCBRError(w http.ResponseWriter, err error) {
	s.logger.ErrorW("cbr request failed", "error", err)
	if errors.Is(err, cbr.ErrUnavailable) {
		writeText(w, http.StatusServiceUnavailable, unavailableMessage)
		return
	}
	writeText(w, http.StatusBadGateway, "CBR page could not be parsed")
}

func (s *Server) respondStoreError(w http.ResponseWriter, err error) {
	s.logger.ErrorW("store request failed", "error", err)
	writeText(w, http.StatusInternalServerError, "asset bank is unavailable")
}

// profileRows keeps the response shape of the asset listing API:
// a sorted array of [char_code, name, capital, interest] rows.
func profileRows(profiles []models.Profile) [][]any {
	rows := make([][]any, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, p.Row())
	}
	return rows
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
