package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sharetube/player-api/internal/player"
	"github.com/sharetube/player-api/pkg/validator"
)

type iPlayerHost interface {
	NewPlayer(context.Context, player.Element, *player.Options) (*player.Player, error)
	Player(id string) (*player.Player, error)
}

type iFrameHub interface {
	ServeFrame(w http.ResponseWriter, r *http.Request, window string) error
}

type Controller struct {
	host     iPlayerHost
	hub      iFrameHub
	validate *validator.Validator
	logger   *slog.Logger
}

func NewController(host iPlayerHost, hub iFrameHub, logger *slog.Logger) *Controller {
	return &Controller{
		host:     host,
		hub:      hub,
		validate: validator.NewValidator(),
		logger:   logger,
	}
}
