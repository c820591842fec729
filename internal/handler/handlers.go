package handler

import (
	"github.com/savelyev-an/accountd/internal/config"
	"github.com/savelyev-an/accountd/internal/handler/http"
	"github.com/savelyev-an/accountd/internal/logger"
	"github.com/savelyev-an/accountd/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
