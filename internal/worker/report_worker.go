// Package worker regenerates the static HTML report when expenses change.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"expenses/internal/amqp"
	"expenses/internal/report"
	"expenses/internal/store"
)

// ReportWorker rebuilds the HTML report from the store whenever an expense
// event arrives. The event payload only signals that something changed; the
// store is the source of truth.
type ReportWorker struct {
	reader     store.ExpenseReader
	outputPath string
}

func NewReportWorker(reader store.ExpenseReader, outputPath string) *ReportWorker {
	return &ReportWorker{
		reader:     reader,
		outputPath: outputPath,
	}
}

// HandleEvent processes a single expense event message.
func (w *ReportWorker) HandleEvent(ctx context.Context, msg *amqp.ExpenseEventMessage) error {
	slog.InfoContext(ctx, "Processing expense event",
		"id", msg.ID,
		"action", msg.Action)

	if err := w.Regenerate(ctx); err != nil {
		return fmt.Errorf("regenerate report for event %s/%s: %w", msg.Action, msg.ID, err)
	}
	return nil
}

// Regenerate rebuilds the report from current store contents.
func (w *ReportWorker) Regenerate(ctx context.Context) error {
	expenses, err := w.reader.All(ctx)
	if err != nil {
		return fmt.Errorf("load expenses: %w", err)
	}

	if err := report.GenerateFile(w.outputPath, expenses); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	slog.InfoContext(ctx, "Report regenerated",
		"path", w.outputPath,
		"expenses", len(expenses))
	return nil
}
