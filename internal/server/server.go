// Package server exposes payload generation and verification over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mkadit/ethqr"
	"github.com/mkadit/ethqr/internal/config"
	"github.com/mkadit/ethqr/internal/metrics"
)

const (
	maxBodyBytes = 64 << 10
	maxBatchSize = 256
)

// Config captures the dependencies required to construct the server.
type Config struct {
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	Concurrency int
}

// Server encapsulates dependencies for the HTTP API.
type Server struct {
	logger    *zap.Logger
	metrics   *metrics.Metrics
	processor *ethqr.Processor
	router    http.Handler
}

// New constructs the HTTP router.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New()
	}
	srv := &Server{
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
		processor: ethqr.NewProcessor(
			ethqr.WithConcurrency(cfg.Concurrency),
			ethqr.WithProcessorLogger(cfg.Logger),
		),
	}
	srv.router = srv.buildRouter()
	return srv
}

// Handler exposes the configured HTTP router.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Post("/payloads", s.CreatePayload)
		api.Post("/payloads/batch", s.CreateBatch)
		api.Post("/verify", s.Verify)
	})
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", chimw.GetReqID(r.Context())),
		)
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully within shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type payloadResponse struct {
	Payload string `json:"payload,omitempty"`
	Mode    string `json:"mode,omitempty"`
	Length  int    `json:"length,omitempty"`
	*errorResponse
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type batchRequest struct {
	Payloads []config.Payload `json:"payloads"`
}

type batchResponse struct {
	Results []payloadResponse `json:"results"`
}

type verifyRequest struct {
	Payload string `json:"payload"`
}

type verifyResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// CreatePayload assembles one payload from a JSON config.Payload.
func (s *Server) CreatePayload(w http.ResponseWriter, r *http.Request) {
	var req config.Payload
	if !decodeJSON(w, r, &req) {
		return
	}
	cfg, err := req.Config()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	payload, err := s.processor.Process(cfg)
	s.metrics.ObserveBuild(cfg.Mode(), payload, err)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, payloadResponse{Payload: payload, Mode: cfg.Mode().String(), Length: len(payload)})
}

// CreateBatch assembles up to maxBatchSize payloads. Per-item failures are
// reported in place; the response status is 200 as long as the request
// itself is well formed.
func (s *Server) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Payloads) == 0 || len(req.Payloads) > maxBatchSize {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "batch must contain between 1 and 256 payloads"})
		return
	}

	resp := batchResponse{Results: make([]payloadResponse, len(req.Payloads))}
	cfgs := make([]ethqr.Config, 0, len(req.Payloads))
	index := make([]int, 0, len(req.Payloads))
	for i, p := range req.Payloads {
		cfg, err := p.Config()
		if err != nil {
			resp.Results[i] = payloadResponse{errorResponse: toErrorResponse(err)}
			continue
		}
		cfgs = append(cfgs, cfg)
		index = append(index, i)
	}

	results, err := s.processor.ProcessBatch(r.Context(), cfgs)
	if err != nil && r.Context().Err() != nil {
		return
	}
	for j, res := range results {
		s.metrics.ObserveBuild(cfgs[j].Mode(), res.Payload, res.Err)
		if res.Err != nil {
			resp.Results[index[j]] = payloadResponse{errorResponse: toErrorResponse(res.Err)}
			continue
		}
		resp.Results[index[j]] = payloadResponse{
			Payload: res.Payload,
			Mode:    cfgs[j].Mode().String(),
			Length:  len(res.Payload),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Verify checks the CRC trailer of a payload.
func (s *Server) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	err := ethqr.ValidatePayload(req.Payload)
	s.metrics.ObserveVerify(err)
	resp := verifyResponse{Valid: err == nil}
	if err != nil {
		resp.Reason = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error()})
		return false
	}
	return true
}

func statusFor(err error) int {
	if errors.Is(err, ethqr.ErrUnsupportedScheme) {
		return http.StatusBadRequest
	}
	return http.StatusUnprocessableEntity
}

func toErrorResponse(err error) *errorResponse {
	resp := &errorResponse{Error: err.Error()}
	var fe *ethqr.FieldError
	if errors.As(err, &fe) {
		resp.Field = fe.Field
	}
	return resp
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, toErrorResponse(err))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
