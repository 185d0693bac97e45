package http

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/MKhiriev/user-directory/internal/config"
	"github.com/MKhiriev/user-directory/internal/logger"
	"github.com/MKhiriev/user-directory/internal/service"
)

type Handler struct {
	services *service.Services

	// authLimiter throttles sign-in and sign-up submissions.
	authLimiter *rate.Limiter

	requestTimeout time.Duration

	logger *logger.Logger
}

// NewHandler creates the HTTP handler. A non-positive AuthRateLimit disables
// throttling.
func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	limit := rate.Inf
	if cfg.AuthRateLimit > 0 {
		limit = rate.Limit(cfg.AuthRateLimit)
	}

	burst := cfg.AuthRateBurst
	if burst < 1 {
		burst = 1
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		authLimiter:    rate.NewLimiter(limit, burst),
		requestTimeout: cfg.RequestTimeout,
		logger:         logger,
	}
}
