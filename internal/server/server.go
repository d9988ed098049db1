package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/raysh454/phishlens/internal/app"
	"github.com/raysh454/phishlens/internal/history"
	"github.com/raysh454/phishlens/internal/interfaces"
	"github.com/raysh454/phishlens/internal/logging"

	_ "github.com/raysh454/phishlens/internal/server/docs/swagger" // registers the API doc
)

// maxBodyBytes bounds POST bodies and websocket messages.
const maxBodyBytes = 64 << 10

// Server is the HTTP + WebSocket surface for PhishLens.
type Server struct {
	cfg      Config
	checker  interfaces.Checker
	router   chi.Router
	upgrader websocket.Upgrader
	logger   logging.Logger
}

// NewServer wires the routes around checker.
func NewServer(cfg Config, checker interfaces.Checker) (*Server, error) {
	if checker == nil {
		return nil, errors.New("server: checker is nil")
	}
	if cfg.AllowedOrigin == "" {
		cfg.AllowedOrigin = "*"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewStdoutLogger("server")
	}

	r := chi.NewRouter()
	s := &Server{
		cfg:     cfg,
		checker: checker,
		router:  r,
		logger:  logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return cfg.AllowedOrigin == "*" || r.Header.Get("Origin") == cfg.AllowedOrigin
			},
		},
	}

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.corsMiddleware)

	// CORS preflight
	r.Options("/api/check", s.optionsHandler("POST"))
	r.Options("/api/importances", s.optionsHandler("GET"))
	r.Options("/api/history", s.optionsHandler("GET"))
	r.Options("/api/history/{id}", s.optionsHandler("GET"))

	// Page
	r.Get("/", s.handlePage)

	// JSON API
	r.Post("/api/check", s.handleCheck)
	r.Get("/api/importances", s.handleImportances)
	r.Get("/api/history", s.handleListHistory)
	r.Get("/api/history/{id}", s.handleGetHistory)
	r.Get("/healthz", s.handleHealth)

	// WebSocket: one result per submitted URL
	r.Get("/ws/check", s.handleCheckWS)

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.AllowedOrigin)
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) optionsHandler(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields := []logging.Field{
		{Key: "method", Value: r.Method},
		{Key: "path", Value: r.URL.Path},
	}

	if q := r.URL.Query(); len(q) > 0 {
		fields = append(fields, logging.Field{Key: "query", Value: q})
	}

	if r.Body != nil && r.Method == http.MethodPost {
		if bodyBytes, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes)); err == nil {
			fields = append(fields, logging.Field{Key: "body", Value: string(bodyBytes)})
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}
	}

	s.logger.Info("http_request", fields...)

	s.router.ServeHTTP(w, r)
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      0, // websocket connections stay open
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// --- HTTP handlers ---

// handleCheck godoc
// @Summary Check a URL
// @Description Runs the allowlist, feature extraction, classification and explanation for one URL.
// @Tags checks
// @Accept json
// @Produce json
// @Param request body CheckRequest true "URL to check"
// @Success 200 {object} model.CheckResult
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/check [post]
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var body CheckRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	res, err := s.checker.Check(r.Context(), body.URL)
	if err != nil {
		if errors.Is(err, app.ErrEmptyURL) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Warn("checking url", logging.Field{Key: "url", Value: body.URL}, logging.Err(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleImportances godoc
// @Summary Global feature importances
// @Description Top features of the loaded model, most important first.
// @Tags model
// @Produce json
// @Success 200 {array} model.FeatureImportance
// @Router /api/importances [get]
func (s *Server) handleImportances(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.checker.TopImportances())
}

// handleListHistory godoc
// @Summary Recent checks
// @Tags history
// @Produce json
// @Param limit query int false "maximum entries" default(50)
// @Success 200 {array} history.Entry
// @Failure 500 {object} ErrorResponse
// @Router /api/history [get]
func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	limit := history.DefaultLimit
	if ls := r.URL.Query().Get("limit"); ls != "" {
		if v, err := strconv.Atoi(ls); err == nil && v > 0 {
			limit = v
		}
	}

	entries, err := s.checker.History(r.Context(), limit)
	if err != nil {
		s.logger.Warn("listing history", logging.Err(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleGetHistory godoc
// @Summary One recorded check
// @Tags history
// @Produce json
// @Param id path string true "check id"
// @Success 200 {object} history.Entry
// @Failure 404 {object} ErrorResponse
// @Router /api/history/{id} [get]
func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, err := s.checker.HistoryEntry(r.Context(), id)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			writeError(w, http.StatusNotFound, "check not found")
			return
		}
		s.logger.Warn("getting history entry", logging.Field{Key: "id", Value: id}, logging.Err(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// handleHealth godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// WebSockets

func (s *Server) handleCheckWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Err(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxBodyBytes)

	ctx := r.Context()
	for {
		var req CheckRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("websocket closed", logging.Err(err))
			}
			return
		}

		res, err := s.checker.Check(ctx, req.URL)
		if err != nil {
			if werr := conn.WriteJSON(ErrorResponse{Error: err.Error()}); werr != nil {
				return
			}
			continue
		}
		if err := conn.WriteJSON(res); err != nil {
			return
		}
	}
}
