package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"student-repetition-dashboard/app/metrics"
	"student-repetition-dashboard/app/repository"
	"student-repetition-dashboard/app/service"
	"student-repetition-dashboard/config"
	FiberApp "student-repetition-dashboard/fiber"
	"student-repetition-dashboard/route"
)

func serveCmd(rt *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), rt.cfg)
		},
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	// 1. Dataset dibuat sekali di sini
	repo := repository.NewRepetitionRepository()
	reg := metrics.NewRegistry()
	opts := service.Options{
		Title:             cfg.Title,
		AssetsHost:        cfg.AssetsHost,
		EnableInteractive: cfg.EnableInteractive,
		EnableStatic:      cfg.EnableStatic,
	}
	svc := service.NewDashboardService(repo, reg, opts)

	// 2. Export PDF statis, sekali saat start
	if cfg.EnableStatic {
		path, err := svc.PrepareStaticExport(cfg.ExportDir, time.Now())
		if err != nil {
			return err
		}
		log.Info().Str("path", path).Msg("static chart exported")
	}

	// 3. Setup Fiber App + route
	app := FiberApp.SetupFiber(cfg.Title, log.Logger)
	route.SetupDashboardRoutes(app, svc, reg, opts)

	// 4. Start server
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("server running")
		errCh <- app.Listen(":" + cfg.Port)
	}()

	// 5. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
