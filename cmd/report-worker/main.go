// Command report-worker keeps the static HTML report in sync with the
// expense store. It consumes expense change events from AMQP and rebuilds
// the report on every change; -once rebuilds once and exits.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"expenses/internal/amqp"
	"expenses/internal/cli"
	"expenses/internal/worker"
)

func main() {
	once := flag.Bool("once", false, "generate the report once and exit")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting report-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	b := cli.InitBackend(logger, cfg)
	defer b.Close()

	w := worker.NewReportWorker(b.Store, cfg.ReportOutput)

	// Generate from current store contents before consuming anything, so a
	// fresh deployment has a report even with an idle queue.
	if err := w.Regenerate(context.Background()); err != nil {
		logger.Error("Initial report generation failed", "error", err, "output", cfg.ReportOutput)
		if *once {
			os.Exit(1)
		}
	}

	if *once {
		return
	}

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required unless running with -once")
		os.Exit(1)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumeDone := make(chan struct{})
	go func() {
		defer close(consumeDone)
		err := amqpClient.ConsumeExpenseEvents(ctx, func(msg *amqp.ExpenseEventMessage) error {
			return w.HandleEvent(ctx, msg)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Event consumption failed", "error", err)
		}
		cancel()
	}()

	_, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		cancel()
	})

	select {
	case <-done:
	case <-consumeDone:
		logger.Info("Consumer stopped")
	}
	logger.Info("Report worker stopped")
}
