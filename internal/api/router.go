package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/yashxcode/aurelia-studio/internal/api/handlers"
	"github.com/yashxcode/aurelia-studio/internal/api/middleware"
	"github.com/yashxcode/aurelia-studio/internal/config"
	"github.com/yashxcode/aurelia-studio/internal/stt"
)

type Router struct {
	mux      *chi.Mux
	cfg      *config.Config
	provider stt.Transcriber
	limiter  *middleware.RateLimiter
}

func NewRouter(cfg *config.Config, provider stt.Transcriber) *Router {
	return &Router{
		mux:      chi.NewRouter(),
		cfg:      cfg,
		provider: provider,
	}
}

// NewProvider builds the configured speech-to-text backend.
func NewProvider(cfg config.STTConfig) stt.Transcriber {
	switch cfg.Backend {
	case "openai":
		return stt.NewOpenAISTT(stt.OpenAISTTConfig{
			APIKey:  cfg.OpenAIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
		})
	default:
		return stt.NewFasterWhisper(stt.FasterWhisperConfig{
			BinPath:     cfg.WhisperBin,
			Model:       cfg.WhisperModel,
			Device:      cfg.WhisperDevice,
			ComputeType: cfg.WhisperComputeType,
			BeamSize:    cfg.WhisperBeamSize,
		})
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware. CORS sits before routing so preflight OPTIONS gets
	// a 200 on any path, and unroutable paths still carry the CORS headers.
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS)

	rt.limiter = middleware.NewRateLimiter(rt.cfg.RateLimit.RPS, rt.cfg.RateLimit.Burst)
	r.Use(rt.limiter.Limit)

	// Unroutable paths get a bare 404 with an empty body, not a JSON error.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	health := handlers.NewHealthHandler(rt.provider)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	svc := stt.NewService(rt.provider)
	transcribe := handlers.NewTranscribeHandler(svc, rt.cfg.Server.MaxUploadBytes)
	r.Post("/api/transcribe", transcribe.Transcribe)

	return r
}

// Close stops background work started by Setup.
func (rt *Router) Close() {
	if rt.limiter != nil {
		rt.limiter.Stop()
	}
}
