// Package handler builds the transport handlers of the user directory.
package handler

import (
	"github.com/MKhiriev/user-directory/internal/config"
	"github.com/MKhiriev/user-directory/internal/handler/http"
	"github.com/MKhiriev/user-directory/internal/logger"
	"github.com/MKhiriev/user-directory/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, cfg, logger),
	}, nil
}
