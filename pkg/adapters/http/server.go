// Package http serves the robot dashboard: scheduler status, the binding
// table, mode selection and simulated operator input over a chi router.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/aretw0/cmdbot/pkg/domain"
	"github.com/aretw0/cmdbot/pkg/ports"
	"github.com/aretw0/cmdbot/pkg/trigger"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Catalog exposes the binding table.
type Catalog interface {
	Bindings() []trigger.BindingInfo
	Hazards() []trigger.Hazard
}

// ModeSelector is the writable side of a driver station.
type ModeSelector interface {
	Mode() domain.Mode
	SetMode(domain.Mode)
}

// Operator is an input device whose controls can be driven remotely.
type Operator interface {
	ports.InputDevice
	SetButton(index int, pressed bool) error
	SetAxis(index int, value float64) error
}

// Server is the dashboard. It implements ports.TelemetrySink so the robot
// loop can push a snapshot after every tick.
type Server struct {
	logger   *slog.Logger
	catalog  Catalog
	station  ModeSelector
	devices  map[int]Operator
	gatherer prometheus.Gatherer
	verifier *Verifier
	Streams  *StreamManager

	mu     sync.RWMutex
	latest domain.Snapshot
	seen   bool
}

var _ ports.TelemetrySink = (*Server)(nil)

type Option func(*Server)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithOperators registers devices reachable under /hid/{port}.
func WithOperators(devices ...Operator) Option {
	return func(s *Server) {
		for _, d := range devices {
			s.devices[d.Port()] = d
		}
	}
}

// WithMetrics mounts /metrics for the given gatherer.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithVerifier protects write endpoints with bearer tokens.
func WithVerifier(v *Verifier) Option {
	return func(s *Server) {
		s.verifier = v
	}
}

func NewServer(catalog Catalog, station ModeSelector, opts ...Option) *Server {
	s := &Server{
		logger:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
		catalog: catalog,
		station: station,
		devices: make(map[int]Operator),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)
	return s
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)
	r.Get("/status", s.GetStatus)
	r.Get("/bindings", s.GetBindings)
	r.Get("/hazards", s.GetHazards)
	r.Get("/events", s.SubscribeEvents)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(s.requireToken)
		r.Put("/mode", s.PutMode)
		r.Put("/hid/{port}/buttons/{index}", s.PutButton)
		r.Put("/hid/{port}/axes/{index}", s.PutAxis)
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Publish records the snapshot and forwards it to SSE subscribers.
func (s *Server) Publish(ctx context.Context, snap domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	s.mu.Lock()
	s.latest = snap
	s.seen = true
	s.mu.Unlock()
	s.Streams.Broadcast(data)
	return nil
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetStatus handles GET /status.
func (s *Server) GetStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	snap, seen := s.latest, s.seen
	s.mu.RUnlock()
	if !seen {
		writeError(w, http.StatusServiceUnavailable, errors.New("robot has not ticked yet"))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// GetBindings handles GET /bindings.
func (s *Server) GetBindings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Bindings())
}

// GetHazards handles GET /hazards.
func (s *Server) GetHazards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Hazards())
}

type modeRequest struct {
	Mode string `json:"mode"`
}

// PutMode handles PUT /mode.
func (s *Server) PutMode(w http.ResponseWriter, r *http.Request) {
	var body modeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	m, err := domain.ParseMode(body.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%q: %w", body.Mode, err))
		return
	}
	from := s.station.Mode()
	s.station.SetMode(m)
	s.logger.Info("Mode selected", "from", from, "to", m)
	writeJSON(w, http.StatusOK, modeRequest{Mode: string(m)})
}

type buttonRequest struct {
	Pressed bool `json:"pressed"`
}

// PutButton handles PUT /hid/{port}/buttons/{index}.
func (s *Server) PutButton(w http.ResponseWriter, r *http.Request) {
	dev, index, ok := s.control(w, r)
	if !ok {
		return
	}
	var body buttonRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := dev.SetButton(index, body.Pressed); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.logger.Debug("Button set", "port", dev.Port(), "button", index, "pressed", body.Pressed)
	writeJSON(w, http.StatusOK, body)
}

type axisRequest struct {
	Value float64 `json:"value"`
}

// PutAxis handles PUT /hid/{port}/axes/{index}.
func (s *Server) PutAxis(w http.ResponseWriter, r *http.Request) {
	dev, index, ok := s.control(w, r)
	if !ok {
		return
	}
	var body axisRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := dev.SetAxis(index, body.Value); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, axisRequest{Value: dev.Axis(index)})
}

func (s *Server) control(w http.ResponseWriter, r *http.Request) (Operator, int, bool) {
	port, err := strconv.Atoi(chi.URLParam(r, "port"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("port: %w", domain.ErrInvalidPort))
		return nil, 0, false
	}
	dev, ok := s.devices[port]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("port %d: %w", port, domain.ErrDeviceNotFound))
		return nil, 0, false
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("index %q is not a number", chi.URLParam(r, "index")))
		return nil, 0, false
	}
	return dev, index, true
}

// SubscribeEvents handles GET /events (SSE). Every published snapshot is sent
// as a data frame.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, errors.New("streaming not supported"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// -- Helpers --

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
