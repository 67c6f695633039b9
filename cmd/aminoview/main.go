// Command aminoview shows the amino demo scene, either in a desktop window or
// served to browsers over HTTP and WebSocket.
//
// Settings come from the environment; see internal/config.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phanxgames/amino"
	"github.com/phanxgames/amino/ebitenhost"
	"github.com/phanxgames/amino/internal/config"
	"github.com/phanxgames/amino/remote"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	amino.SetLogger(logger)

	sched := amino.NewManualScheduler()
	engine := amino.NewEngine(amino.Options{Scheduler: sched, AutoPaint: cfg.AutoPaint})
	engine.SetDebugMode(cfg.Debug)

	surface := engine.AddSurface("main", cfg.Width, cfg.Height)
	surface.SetPixelRatio(cfg.PixelRatio)
	surface.ScreenshotDir = cfg.ScreenshotDir
	buildDemo(engine, surface)

	if cfg.TestScript != "" {
		if err := loadTestScript(surface, cfg.TestScript); err != nil {
			slog.Error("load test script", "path", cfg.TestScript, "error", err)
			os.Exit(1)
		}
	}

	switch cfg.Host {
	case "window":
		err = ebitenhost.Run(engine, sched, surface, ebitenhost.RunConfig{
			Title:     "amino",
			TPS:       cfg.FPS,
			Resizable: true,
		})
	case "remote":
		err = serve(cfg, engine, sched)
	}
	if err != nil {
		slog.Error("host exited", "host", cfg.Host, "error", err)
		os.Exit(1)
	}
}

func loadTestScript(surface *amino.Surface, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	runner, err := amino.LoadTestScript(data)
	if err != nil {
		return err
	}
	surface.SetTestRunner(runner)
	return nil
}

// serve runs the remote host until SIGINT or SIGTERM.
func serve(cfg *config.Config, engine *amino.Engine, sched *amino.ManualScheduler) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rs := remote.NewServer(engine, sched, remote.Options{FPS: cfg.FPS})
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		rs.Run(ctx)
	}()
	// Engine calls must come from the loop goroutine.
	if err := rs.Do(ctx, engine.Start); err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:        addr,
		Handler:     rs.Router(),
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
		// No WriteTimeout: frame streams stay open.
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-loopDone
	return nil
}
