package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"machine-reminder/internal/delivery/http"
	"machine-reminder/pkg/logger"
	httpNet "net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the reminder scheduler and the HTTP API",
	Run:   Start,
}

func Start(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}

	services, err := appDep.NewServices()
	if err != nil {
		log.Fatalf("Failed to create services: %v", err)
	}

	httpHandler := http.NewHttpAPIHandler(appDep.cfg, appDep.log, appDep.echo, appDep.validator, services)
	apiServer := NewHTTPServer(ctx, appDep, httpHandler)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := apiServer.Start(); err != nil && !errors.Is(err, httpNet.ErrServerClosed) {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	if appDep.cfg.Scheduler.Enabled {
		g.Go(func() error {
			return services.ReminderScheduler.Run(gctx)
		})
	} else {
		appDep.log.InfoContext(ctx, "Reminder scheduler disabled, serving API only")
	}

	g.Go(func() error {
		<-gctx.Done()
		appDep.log.Info("Shutting down gracefully...")
		return apiServer.Stop()
	})

	runErr := g.Wait()
	if runErr != nil {
		appDep.log.Error("Application stopped with error", logger.ErrorField(runErr))
	}

	if err := appDep.Close(); err != nil {
		log.Fatalf("Failed to close app dependency: %v", err)
	}
	if runErr != nil {
		os.Exit(1)
	}
}
