package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"finledger/internal/amqp"
)

// AlertWorker consumes budget and balance alert events and records them in a
// plain-text journal, one line per alert, so notifications survive restarts
// of the interactive client.
type AlertWorker struct {
	mu          sync.Mutex
	journalPath string
}

func NewAlertWorker(journalPath string) (*AlertWorker, error) {
	if journalPath == "" {
		return nil, fmt.Errorf("journal path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(journalPath), 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}
	return &AlertWorker{journalPath: journalPath}, nil
}

// HandleAlert processes a single alert message from AMQP
func (w *AlertWorker) HandleAlert(ctx context.Context, msg *amqp.AlertMessage) error {
	slog.InfoContext(ctx, "Processing alert message",
		"login", msg.Login,
		"message", msg.Message)

	if err := w.appendJournal(msg); err != nil {
		return fmt.Errorf("append alert journal: %w", err)
	}

	return nil
}

func (w *AlertWorker) appendJournal(msg *amqp.AlertMessage) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(w.journalPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	line := fmt.Sprintf("%s\t%s\t%s\n",
		msg.Timestamp.Format(time.RFC3339), msg.Login, msg.Message)
	_, err = f.WriteString(line)
	return err
}

// Run consumes alert messages until the context is cancelled.
func (w *AlertWorker) Run(ctx context.Context, client *amqp.Client) error {
	slog.InfoContext(ctx, "Alert worker started", "journal", w.journalPath)

	err := client.ConsumeAlerts(ctx, func(msg *amqp.AlertMessage) error {
		return w.HandleAlert(ctx, msg)
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("consume alerts: %w", err)
	}

	slog.InfoContext(ctx, "Alert worker stopped")
	return nil
}
