package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

// Options tunes the HTTP surface.
type Options struct {
	Logger *slog.Logger

	// CrossvalMaxTrials caps the trials parameter of /v1/crossval.
	CrossvalMaxTrials int
	// CrossvalRate and CrossvalBurst bound /v1/crossval requests per second.
	CrossvalRate  float64
	CrossvalBurst int

	RequestTimeout time.Duration
}

func (o *Options) defaults() {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.CrossvalMaxTrials <= 0 {
		o.CrossvalMaxTrials = 20000
	}
	if o.CrossvalRate <= 0 {
		o.CrossvalRate = 2
	}
	if o.CrossvalBurst <= 0 {
		o.CrossvalBurst = 4
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 60 * time.Second
	}
}

// Server is the HTTP front of a Service.
type Server struct {
	router *chi.Mux
	svc    *Service
	opts   Options
	log    *slog.Logger
}

// NewServer builds the router with its middleware stack and routes.
func NewServer(svc *Service, opts Options) *Server {
	opts.defaults()
	s := &Server{
		router: chi.NewRouter(),
		svc:    svc,
		opts:   opts,
		log:    opts.Logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.opts.RequestTimeout))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealthz)

	s.router.Route("/v1", func(r chi.Router) {
		r.Get("/draft", s.handleDraft)
		r.Get("/odds", s.handleOdds)
		r.With(rateLimit(rate.NewLimiter(rate.Limit(s.opts.CrossvalRate), s.opts.CrossvalBurst))).
			Get("/crossval", s.handleCrossval)
	})
}

// requestLogger logs each request with structured fields.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	})
}
