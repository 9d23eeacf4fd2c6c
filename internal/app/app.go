package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sharetube/player-api/internal/controller"
	"github.com/sharetube/player-api/internal/player"
	"github.com/sharetube/player-api/internal/repository/instance/inmemory"
	"github.com/sharetube/player-api/internal/repository/state/redis"
	"github.com/sharetube/player-api/internal/transport/ws"
	"github.com/sharetube/player-api/pkg/ctxlogger"
	"github.com/sharetube/player-api/pkg/redisclient"
)

type AppConfig struct {
	Host          string        `json:"host"`
	Port          int           `json:"port"`
	LogLevel      string        `json:"log_level"`
	Domain        string        `json:"domain"`
	PageURL       string        `json:"page_url"`
	APIKey        string        `json:"-"`
	MirrorState   bool          `json:"mirror_state"`
	StateTTL      time.Duration `json:"state_ttl"`
	RedisPort     int           `json:"redis_port"`
	RedisHost     string        `json:"redis_host"`
	RedisPassword string        `json:"-"`
}

func (cfg *AppConfig) Validate() error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	if cfg.Domain == "" {
		return fmt.Errorf("domain must not be empty")
	}
	if cfg.PageURL != "" {
		if _, err := url.Parse(cfg.PageURL); err != nil {
			return fmt.Errorf("invalid page url: %w", err)
		}
	}
	if cfg.MirrorState && cfg.StateTTL <= 0 {
		return fmt.Errorf("state ttl must be greater than 0")
	}
	return nil
}

func NewLogger(level string) (*slog.Logger, error) {
	logLevel := slog.LevelInfo
	if err := logLevel.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, err
	}

	h := ctxlogger.ContextHandler{
		Handler: slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}),
	}

	return slog.New(&h), nil
}

// Server is the wired host: the player host, its websocket hub and the HTTP
// handler exposing both.
type Server struct {
	Host    *player.Host
	Hub     *ws.Hub
	Handler http.Handler
}

func NewServer(cfg *AppConfig, stateMirror player.StateMirror, logger *slog.Logger) (*Server, error) {
	hub := ws.NewHub(logger)
	registry := inmemory.NewRepo[*player.Player](logger)

	host, err := player.NewHost(hub, registry, stateMirror, &player.Config{
		Domain:  cfg.Domain,
		PageURL: cfg.PageURL,
		APIKey:  cfg.APIKey,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create player host: %w", err)
	}

	return &Server{
		Host:    host,
		Hub:     hub,
		Handler: controller.NewController(host, hub, logger).Mux(),
	}, nil
}

func Run(ctx context.Context, cfg *AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	var stateMirror player.StateMirror
	if cfg.MirrorState {
		rc, err := redisclient.NewRedisClient(ctx, &redisclient.Config{
			Port:     cfg.RedisPort,
			Host:     cfg.RedisHost,
			Password: cfg.RedisPassword,
		})
		if err != nil {
			return fmt.Errorf("failed to create redis client: %w", err)
		}
		defer rc.Close()

		stateMirror = redis.NewRepo(rc, cfg.StateTTL)
	}

	srv, err := NewServer(cfg, stateMirror, logger)
	if err != nil {
		return err
	}
	defer srv.Hub.Close()

	server := &http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), Handler: srv.Handler}

	// graceful shutdown
	serverCtx, serverStopCtx := context.WithCancel(ctx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig

		shutdownCtx, c := context.WithTimeout(serverCtx, 30*time.Second)
		defer c()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				log.Fatal("graceful shutdown timed out.. forcing exit.")
			}
		}()

		srv.Hub.Close()
		err := server.Shutdown(shutdownCtx)
		if err != nil {
			log.Fatal(err)
		}
		serverStopCtx()
	}()

	logger.InfoContext(serverCtx, "starting server", "address", server.Addr, "origin", srv.Host.Origin())
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	<-serverCtx.Done()

	return nil
}
