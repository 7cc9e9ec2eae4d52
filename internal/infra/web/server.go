package web

import (
	"net/http"
	"time"

	"job-tracker/internal/infra/api"
	red "job-tracker/internal/infra/redis"
	"job-tracker/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Options carries the HTTP concerns that sit around the job routes.
type Options struct {
	CORSOrigin     string
	RequestTimeout time.Duration
	// Limiter may be nil, which disables rate limiting.
	Limiter api.Limiter
	Dev     bool
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	TrustProxy bool
}

type Server struct {
	jobUC   usecase.JobUseCase
	statsUC usecase.StatsUseCase
	opts    Options
	log     *zerolog.Logger
	now     func() time.Time
}

func NewServer(jobUC usecase.JobUseCase, statsUC usecase.StatsUseCase, opts Options, logger *zerolog.Logger) *Server {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Server{
		jobUC:   jobUC,
		statsUC: statsUC,
		opts:    opts,
		log:     logger,
		now:     time.Now,
	}
}

// Routes builds the full handler: job API, health and metrics.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	if s.opts.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(
		api.RequestLog(s.log),
		api.Recover(s.log),
		api.Timeout(s.opts.RequestTimeout),
	)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, envelope{Success: false, Message: "Route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, envelope{Success: false, Message: "Method not allowed"})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/jobs", func(r chi.Router) {
		if s.opts.Limiter != nil {
			r.Use(api.RateLimit(s.opts.Limiter, rateLimitKey, s.log))
		}
		r.Post("/add", s.createJob)
		r.Get("/all", s.listJobs)
		// must precede /{id}
		r.Get("/status", s.jobStats)
		r.Get("/{id}", s.getJob)
		r.Put("/{id}", s.updateJob)
		r.Patch("/{id}", s.updateJobStatus)
		r.Delete("/{id}", s.deleteJob)
	})

	return api.Chain(r, api.TraceID(), api.CORS(s.opts.CORSOrigin))
}

func rateLimitKey(r *http.Request) string { return red.ClientKey(api.ClientIP(r)) }
