// Package backend assembles a configured expense service from the
// application config: storage backend selection plus optional AMQP eventing.
package backend

import (
	"fmt"
	"log/slog"

	"expenses/internal/amqp"
	"expenses/internal/config"
	"expenses/internal/jsonstore"
	"expenses/internal/services"
	"expenses/internal/storage"
	"expenses/internal/store"
)

// BackendType represents the storage backend in use.
type BackendType string

const (
	JSONBackend   BackendType = "json"
	SQLiteBackend BackendType = "sqlite"
)

// String implements fmt.Stringer.
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid.
func (bt BackendType) IsValid() bool {
	switch bt {
	case JSONBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// Result bundles the assembled service with its cleanup function.
type Result struct {
	Service *services.ExpenseService
	Store   store.Store
}

// Close releases the backend's resources.
func (r *Result) Close() error {
	return r.Service.Close()
}

// New opens the configured store, attaches the optional AMQP publisher and
// returns the assembled expense service.
func New(cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	backendType := BackendType(cfg.DataBackend)
	if !backendType.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}

	var (
		st  store.Store
		err error
	)
	switch backendType {
	case SQLiteBackend:
		st, err = storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite store: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
	default:
		st, err = jsonstore.Open(cfg.JSONFilePath)
		if err != nil {
			return nil, fmt.Errorf("initialize JSON store: %w", err)
		}
		logger.Info("Initialized JSON backend", "file_path", cfg.JSONFilePath)
	}

	// AMQP is optional: without it the tracker still works, only the
	// report worker stops receiving change events.
	var events services.EventPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
		} else {
			logger.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
			events = client
		}
	}

	svc := services.NewExpenseService(st, events)
	return &Result{Service: svc, Store: st}, nil
}
