package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/sharetube/player-api/internal/frame"
	"github.com/sharetube/player-api/pkg/ctxlogger"
)

func main() {
	hostURL := pflag.String("host-url", "ws://localhost:8080", "Websocket base URL of the player host")
	origin := pflag.String("origin", "http://www.dailymotion.com", "Origin the frame claims to be served from")
	playerID := pflag.String("player-id", "", "Id of the player to attach to")
	duration := pflag.Float64("duration", 120, "Duration of the simulated video in seconds")
	qualities := pflag.StringSlice("qualities", []string{"240", "380", "480", "720"}, "Available qualities")
	subtitles := pflag.StringSlice("subtitles", nil, "Available subtitles")
	pflag.Parse()

	logger := slog.New(&ctxlogger.ContextHandler{Handler: slog.NewTextHandler(os.Stderr, nil)})
	if *playerID == "" {
		logger.Error("player-id is required")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sim := frame.New(frame.Config{
		HostURL:   *hostURL,
		Origin:    *origin,
		PlayerID:  *playerID,
		Duration:  *duration,
		Qualities: *qualities,
		Subtitles: *subtitles,
	}, logger)

	if err := sim.Run(ctx); err != nil {
		logger.Error("simulator stopped", "err", err)
		os.Exit(1)
	}
}
