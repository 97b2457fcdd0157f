package chi

import (
	"fmt"
	"net/http"
	"strconv"

	gochi "github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/recdex/internal/domain/algorithm"
	"github.com/kailas-cloud/recdex/internal/logger"
	healthuc "github.com/kailas-cloud/recdex/internal/usecase/health"
	usersuc "github.com/kailas-cloud/recdex/internal/usecase/users"
	"github.com/kailas-cloud/recdex/internal/version"
)

const maxBodyBytes = 1 << 20

// Limits bounds the query parameters clients may pass.
type Limits struct {
	DefaultK     int
	MaxK         int
	DefaultLimit int
	MaxLimit     int
}

// Server serves the recommendation HTTP API.
type Server struct {
	users         *usersuc.Service
	health        *healthuc.Service
	limits        Limits
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(users *usersuc.Service, health *healthuc.Service, limits Limits, logger *zap.Logger) *Server {
	return &Server{
		users:         users,
		health:        health,
		limits:        limits,
		logger:        logger,
		errorHandlers: defaultErrorHandlers(),
	}
}

// Register mounts the API routes on r.
func (s *Server) Register(r gochi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/items", func(r gochi.Router) {
		r.Post("/", s.AddItem)
		r.Get("/", s.ListItems)
		r.Get("/lookup", s.LookupItem)
		r.Post("/batch", s.BatchAddItems)
	})
	r.Get("/catalog/dump", s.DumpCatalog)

	r.Route("/users", func(r gochi.Router) {
		r.Post("/", s.CreateUser)
		r.Get("/", s.ListUsers)
		r.Route("/{name}", func(r gochi.Router) {
			r.Get("/", s.GetUser)
			r.Post("/ratings", s.Rate)
			r.Get("/recommendation", s.Recommend)
			r.Get("/recommendations", s.Rank)
			r.Get("/prediction", s.Predict)
		})
	})
}

// AddItem handles POST /items.
func (s *Server) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if !s.decode(w, r, &req) {
		return
	}

	key, err := s.users.AddItem(r.Context(), req.Title, req.Year, req.Features)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, keyToDTO(key))
}

// BatchAddItems handles POST /items/batch. Items are applied in order; one
// rejected item does not stop the rest.
func (s *Server) BatchAddItems(w http.ResponseWriter, r *http.Request) {
	var req BatchAddItemsRequest
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.Items) > usersuc.MaxBatchSize {
		writeError(w, http.StatusBadRequest, CodeValidationFailed,
			fmt.Sprintf("items must contain at most %d entries", usersuc.MaxBatchSize))
		return
	}

	resp := batchToDTO(s.users.AddItems(r.Context(), itemsFromDTO(req.Items)))
	status := http.StatusOK
	if resp.Failed > 0 {
		status = http.StatusMultiStatus
	}
	writeJSON(w, status, resp)
}

// ListItems handles GET /items.
func (s *Server) ListItems(w http.ResponseWriter, r *http.Request) {
	entries := s.users.Items(r.Context())
	out := make([]ItemResponse, len(entries))
	for i, e := range entries {
		out[i] = ItemResponse{ItemKey: keyToDTO(e.Key), Features: e.Features}
	}
	writeJSON(w, http.StatusOK, out)
}

// LookupItem handles GET /items/lookup?title=&year=.
func (s *Server) LookupItem(w http.ResponseWriter, r *http.Request) {
	title, year, ok := itemQuery(w, r)
	if !ok {
		return
	}

	key, err := s.users.Lookup(r.Context(), title, year)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, keyToDTO(key))
}

// DumpCatalog handles GET /catalog/dump.
func (s *Server) DumpCatalog(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := s.users.Dump(r.Context(), w); err != nil {
		logger.FromContext(r.Context()).Error("dump failed", zap.Error(err))
	}
}

// CreateUser handles POST /users.
func (s *Server) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !s.decode(w, r, &req) {
		return
	}

	view, err := s.users.Create(r.Context(), req.Name, ratingsFromDTO(req.Ratings))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, userToDTO(view))
}

// ListUsers handles GET /users.
func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"users": s.users.List(r.Context())})
}

// GetUser handles GET /users/{name}.
func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	view, err := s.users.Get(r.Context(), gochi.URLParam(r, "name"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userToDTO(view))
}

// Rate handles POST /users/{name}/ratings: adds the item to the shared catalog, then rates it.
func (s *Server) Rate(w http.ResponseWriter, r *http.Request) {
	var req RateRequest
	if !s.decode(w, r, &req) {
		return
	}

	view, err := s.users.AddAndRate(r.Context(), gochi.URLParam(r, "name"), req.Title, req.Year, req.Features, req.Rating)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userToDTO(view))
}

// Recommend handles GET /users/{name}/recommendation?algorithm=&k=.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	algo, ok := algorithmQuery(w, r)
	if !ok {
		return
	}
	k, ok := s.intQuery(w, r, "k", s.limits.DefaultK, s.limits.MaxK)
	if !ok {
		return
	}

	key, found, err := s.users.Recommend(r.Context(), gochi.URLParam(r, "name"), algo, k)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, CodeNoRecommendation, "no unrated item to recommend")
		return
	}
	writeJSON(w, http.StatusOK, RecommendationResponse{Algorithm: string(algo), Item: keyToDTO(key)})
}

// Rank handles GET /users/{name}/recommendations?algorithm=&k=&limit=.
func (s *Server) Rank(w http.ResponseWriter, r *http.Request) {
	algo, ok := algorithmQuery(w, r)
	if !ok {
		return
	}
	k, ok := s.intQuery(w, r, "k", s.limits.DefaultK, s.limits.MaxK)
	if !ok {
		return
	}
	limit, ok := s.intQuery(w, r, "limit", s.limits.DefaultLimit, s.limits.MaxLimit)
	if !ok {
		return
	}

	scored, err := s.users.Rank(r.Context(), gochi.URLParam(r, "name"), algo, k, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RankingResponse{Algorithm: string(algo), Items: scoredToDTO(scored)})
}

// Predict handles GET /users/{name}/prediction?title=&year=&k=.
func (s *Server) Predict(w http.ResponseWriter, r *http.Request) {
	title, year, ok := itemQuery(w, r)
	if !ok {
		return
	}
	k, ok := s.intQuery(w, r, "k", s.limits.DefaultK, s.limits.MaxK)
	if !ok {
		return
	}

	exp, err := s.users.Predict(r.Context(), gochi.URLParam(r, "name"), title, year, k)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, explanationToDTO(exp))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:     string(report.Status),
		Version:    version.String(),
		Items:      report.Items,
		Dimensions: report.Dimensions,
		Users:      report.Users,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// decode reads and validates a JSON body. On failure it writes the 400 response.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := validateStruct(v); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return false
	}
	return true
}

// intQuery parses an optional integer query parameter in [0, maxVal].
func (s *Server) intQuery(w http.ResponseWriter, r *http.Request, name string, def, maxVal int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 || v > maxVal {
		writeError(w, http.StatusBadRequest, CodeValidationFailed,
			fmt.Sprintf("%s must be an integer between 0 and %d", name, maxVal))
		return 0, false
	}
	return v, true
}

func algorithmQuery(w http.ResponseWriter, r *http.Request) (algorithm.Algorithm, bool) {
	algo := algorithm.Algorithm(r.URL.Query().Get("algorithm"))
	if algo == "" {
		algo = algorithm.Content
	}
	if !algo.IsValid() {
		writeError(w, http.StatusBadRequest, CodeValidationFailed,
			fmt.Sprintf("algorithm must be one of %v", algorithm.All))
		return "", false
	}
	return algo, true
}

func itemQuery(w http.ResponseWriter, r *http.Request) (string, int, bool) {
	q := r.URL.Query()
	title := q.Get("title")
	if title == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "title is required")
		return "", 0, false
	}
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "year must be an integer")
		return "", 0, false
	}
	return title, year, true
}
