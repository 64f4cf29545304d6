package server

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/tarekm/adsift/docs" // generated swagger spec
	"github.com/tarekm/adsift/internal/audit"
	"github.com/tarekm/adsift/internal/logging"
	"github.com/tarekm/adsift/internal/metrics"
	"github.com/tarekm/adsift/internal/moderation"
	"github.com/tarekm/adsift/internal/similarity"

	_ "modernc.org/sqlite" // SQLite driver
)

// Server is the HTTP + WebSocket API surface for adsift.
type Server struct {
	cfg       Config
	engine    *moderation.Engine
	store     *audit.Store
	checker   *similarity.Checker
	collector *metrics.Collector
	router    chi.Router
	upgrader  websocket.Upgrader
	logger    logging.Logger
	db        *sql.DB

	subMu       sync.Mutex
	subscribers map[*websocket.Conn]struct{}

	// writeMu serializes feed broadcasts; gorilla connections allow one
	// concurrent writer.
	writeMu sync.Mutex
}

// NewServer loads the ruleset, opens the decision log and wires the
// moderation pipeline. A ruleset that does not validate is fatal here: the
// service must not come up approving everything on broken rules.
func NewServer(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewStdoutLogger("Server")
	}

	rules := moderation.DefaultRuleSet()
	if cfg.RulesPath != "" {
		var err error
		rules, err = moderation.LoadRuleSet(cfg.RulesPath)
		if err != nil {
			return nil, fmt.Errorf("loading ruleset: %w", err)
		}
	}

	classifier := cfg.Classifier
	if classifier == nil {
		seed := cfg.ClassifierSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
			logger.Info("classifier seed not configured, using time-based seed",
				logging.Field{Key: "seed", Value: seed})
		}
		classifier = moderation.NewStockSampler(moderation.DefaultFlagProbability, seed)
	}

	engine, err := moderation.NewEngine(rules, classifier, logger)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = DefaultConfig().DBPath
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening decision database: %w", err)
	}
	store, err := audit.NewStore(db, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating decision store: %w", err)
	}

	if cfg.RejectedLookback <= 0 {
		cfg.RejectedLookback = DefaultConfig().RejectedLookback
	}

	r := chi.NewRouter()
	s := &Server{
		cfg:       cfg,
		engine:    engine,
		store:     store,
		checker:   similarity.NewChecker(cfg.SimilarityThreshold),
		collector: metrics.NewCollector(logger),
		router:    r,
		logger:    logger,
		db:        db,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// TODO: tighten for production
				return true
			},
		},
		subscribers: make(map[*websocket.Conn]struct{}),
	}

	s.routes()
	return s, nil
}

// Engine returns the underlying engine for advanced use (tests, etc.).
func (s *Server) Engine() *moderation.Engine {
	return s.engine
}

// Store returns the decision log for advanced use (tests, etc.).
func (s *Server) Store() *audit.Store {
	return s.store
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.corsMiddleware)

	// CORS preflight
	r.Options("/moderate", s.optionsHandler("POST"))
	r.Options("/decisions", s.optionsHandler("GET"))
	r.Options("/decisions/stats", s.optionsHandler("GET"))
	r.Options("/decisions/{decisionID}", s.optionsHandler("GET"))
	r.Options("/rules", s.optionsHandler("GET"))
	r.Options("/ws/decisions", s.optionsHandler("GET"))

	// Moderation pipeline
	r.Post("/moderate", s.handleModerate)

	// Decision log
	r.Get("/decisions", s.handleListDecisions)
	r.Get("/decisions/stats", s.handleDecisionStats)
	r.Get("/decisions/{decisionID}", s.handleGetDecision)

	// Ruleset summary
	r.Get("/rules", s.handleRulesSummary)

	// WebSocket live feed of decisions
	r.Get("/ws/decisions", s.handleDecisionsWS)

	// Operational endpoints
	r.Get("/healthz", s.handleHealthz)
	r.Get("/metrics", s.collector.Handler().ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler())
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
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
		if bodyBytes, err := io.ReadAll(r.Body); err == nil {
			fields = append(fields, logging.Field{Key: "body", Value: string(bodyBytes)})
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}
	}

	s.logger.Info("http_request", fields...)

	s.router.ServeHTTP(w, r)
}

// Close shuts down the decision log and drops websocket subscribers.
func (s *Server) Close() {
	s.subMu.Lock()
	for conn := range s.subscribers {
		conn.Close()
	}
	s.subscribers = make(map[*websocket.Conn]struct{})
	s.subMu.Unlock()

	if s.db != nil {
		s.db.Close()
	}
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // allow streaming
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

func (s *Server) handleModerate(w http.ResponseWriter, r *http.Request) {
	var body ModerateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	sub := body.submission()
	ctx := r.Context()

	started := time.Now()
	res := s.engine.Moderate(ctx, sub)
	took := time.Since(started)

	// Resubmission check runs outside the engine so scoring stays pure. A
	// non-rejected ad that closely matches a recent rejection in the same
	// category goes to manual review instead.
	escalated := false
	resubmissionOf := ""
	if res.Decision != moderation.DecisionRejected {
		priors, err := s.store.RecentRejected(ctx, sub.Category, s.cfg.RejectedLookback)
		if err != nil {
			s.logger.Warn("loading recent rejections", logging.Field{Key: "error", Value: err.Error()})
		} else if len(priors) > 0 {
			text := moderation.CombinedText(sub.Title, sub.Description)
			comparisons := make([]similarity.Prior, len(priors))
			for i, p := range priors {
				comparisons[i] = similarity.Prior{ID: p.ID, Text: p.Text}
			}
			if match, ok := s.checker.BestMatch(text, comparisons); ok {
				escalated = true
				resubmissionOf = match.ID
				res.Decision = moderation.DecisionManualReview
				res.RequiresReview = true
				res.Monitored = false
				s.collector.RecordEscalation()
				s.logger.Info("escalated near-duplicate of rejected ad",
					logging.Field{Key: "prior_id", Value: match.ID},
					logging.Field{Key: "ratio", Value: match.Ratio})
			}
		}
	}

	entry, err := s.store.Record(ctx, sub, res, resubmissionOf)
	if err != nil {
		s.logger.Warn("recording decision", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.collector.RecordModeration(res, took)
	s.broadcast(DecisionEvent{
		DecisionID: entry.ID,
		Category:   string(sub.Category),
		Score:      res.Score,
		Decision:   string(res.Decision),
		Escalated:  escalated,
		Timestamp:  res.Timestamp,
	})

	s.logger.Info("moderated submission",
		logging.Field{Key: "decision_id", Value: entry.ID},
		logging.Field{Key: "decision", Value: string(res.Decision)},
		logging.Field{Key: "score", Value: res.Score})
	writeJSON(w, http.StatusOK, ModerateResponse{
		DecisionID:     entry.ID,
		Result:         *res,
		Escalated:      escalated,
		ResubmissionOf: resubmissionOf,
	})
}

func (s *Server) handleListDecisions(w http.ResponseWriter, r *http.Request) {
	decision := r.URL.Query().Get("decision")
	category := r.URL.Query().Get("category")
	limitStr := r.URL.Query().Get("limit")

	limit := 0
	if limitStr != "" {
		if v, err := strconv.Atoi(limitStr); err == nil && v > 0 {
			limit = v
		}
	}

	entries, err := s.store.List(r.Context(), decision, category, limit)
	if err != nil {
		s.logger.Warn("listing decisions", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Info("listed decisions", logging.Field{Key: "count", Value: len(entries)})
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleDecisionStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		s.logger.Warn("decision stats", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleGetDecision(w http.ResponseWriter, r *http.Request) {
	decisionID := chi.URLParam(r, "decisionID")
	entry, err := s.store.Get(r.Context(), decisionID)
	if err == audit.ErrDecisionNotFound {
		s.logger.Warn("getting decision: not found", logging.Field{Key: "decision_id", Value: decisionID})
		writeError(w, http.StatusNotFound, "decision not found")
		return
	}
	if err != nil {
		s.logger.Warn("getting decision", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleRulesSummary(w http.ResponseWriter, r *http.Request) {
	rules := s.engine.Rules()
	categoryRules := 0
	for _, rs := range rules.CategoryRules {
		categoryRules += len(rs)
	}
	writeJSON(w, http.StatusOK, RulesSummaryResponse{
		Version:            rules.Version,
		ProhibitedTerms:    len(rules.ProhibitedTerms),
		SuspiciousPatterns: len(rules.SuspiciousPatterns),
		PriceBands:         len(rules.CategoryPriceBands),
		CategoryRules:      categoryRules,
		ImageKeywords:      len(rules.ImageKeywords),
		StockProviders:     len(rules.StockProviders),
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- WebSocket live feed ---

func (s *Server) handleDecisionsWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}

	s.subMu.Lock()
	s.subscribers[conn] = struct{}{}
	n := len(s.subscribers)
	s.subMu.Unlock()
	s.logger.Info("decision feed subscriber connected", logging.Field{Key: "subscribers", Value: n})

	// Drain the connection; we only push. Exiting the read loop means the
	// client went away.
	go func() {
		defer s.dropSubscriber(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) dropSubscriber(conn *websocket.Conn) {
	s.subMu.Lock()
	delete(s.subscribers, conn)
	s.subMu.Unlock()
	conn.Close()
}

func (s *Server) broadcast(ev DecisionEvent) {
	s.subMu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.subscribers))
	for conn := range s.subscribers {
		conns = append(conns, conn)
	}
	s.subMu.Unlock()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	for _, conn := range conns {
		if err := conn.WriteJSON(ev); err != nil {
			// Assume client disconnected
			s.dropSubscriber(conn)
		}
	}
}
