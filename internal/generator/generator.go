package generator

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// TimestampFormat is ISO 8601 in UTC with millisecond precision.
const TimestampFormat = "2006-01-02T15:04:05.000Z"

type Generator struct {
	path     string
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}

func New(path string, interval time.Duration, logger *slog.Logger) *Generator {
	return &Generator{
		path:     path,
		interval: interval,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Line formats one status line without the trailing newline.
func Line(at time.Time, id string) string {
	return fmt.Sprintf("%s: %s", at.UTC().Format(TimestampFormat), id)
}

// Run writes a line immediately and then once per interval until ctx is
// done. Write failures are logged and retried on the next tick.
func (g *Generator) Run(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(g.path), 0o755); err != nil {
		return fmt.Errorf("create status directory: %w", err)
	}

	g.tick()

	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			g.logger.Info("Log generator stopped",
				slog.String("file", g.path))
			return nil

		case <-ticker.C:
			g.tick()
		}
	}
}

func (g *Generator) tick() {
	line := Line(g.now(), g.newID())

	if err := g.append(line); err != nil {
		g.logger.Warn("Failed to write status line",
			slog.String("file", g.path),
			slog.Any("err", err))
		return
	}

	g.logger.Info(line)
}

func (g *Generator) append(line string) error {
	f, err := os.OpenFile(g.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	if _, err := f.WriteString(line + "\n"); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
