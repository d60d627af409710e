package cmd

import (
	"context"
	"log"
	"machine-reminder/internal/service"
	"machine-reminder/pkg/logger"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var dryRun bool

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run one reminder generation cycle and exit",
	Run:   Generate,
}

func init() {
	generateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "plan reminders and log them without writing")
}

func Generate(cmd *cobra.Command, args []string) {
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

	summary, runErr := services.ReminderScheduler.Trigger(ctx, service.CycleOptions{DryRun: dryRun})
	if runErr == nil {
		appDep.log.InfoContext(ctx, "Reminder generation finished",
			logger.StringField("cycle_id", summary.CycleID),
			logger.IntField("pair_count", summary.PairCount),
			logger.IntField("planned_count", summary.Planned),
			logger.IntField("persisted_count", summary.Persisted),
			logger.BoolField("dry_run", summary.DryRun),
		)
	}

	if err := appDep.Close(); err != nil {
		log.Fatalf("Failed to close app dependency: %v", err)
	}
	if runErr != nil {
		os.Exit(1)
	}
}
