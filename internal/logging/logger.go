package logging

import (
	"context"
	"errors"
	"log/slog"
	"os"
)

// Setup installs the process logger: JSON records on stdout at INFO.
// Startup calls it before the database exists so even connection failures
// come out structured.
func Setup() {
	slog.SetDefault(slog.New(stdoutHandler()))
}

// SetupWithDatabase swaps the process logger for one that keeps the stdout
// stream and additionally persists ERROR+ records through dbHandler.
func SetupWithDatabase(dbHandler *DBHandler) {
	slog.SetDefault(slog.New(tee{out: stdoutHandler(), db: dbHandler}))
}

func stdoutHandler() slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
}

// tee sends each record to the stdout handler and the database sink. The
// sink's ERROR floor must not gate stdout, so Enabled asks either one and
// Handle re-checks per handler.
type tee struct {
	out slog.Handler
	db  slog.Handler
}

func (t tee) Enabled(ctx context.Context, level slog.Level) bool {
	return t.out.Enabled(ctx, level) || t.db.Enabled(ctx, level)
}

func (t tee) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	if t.out.Enabled(ctx, record.Level) {
		errs = append(errs, t.out.Handle(ctx, record))
	}
	if t.db.Enabled(ctx, record.Level) {
		errs = append(errs, t.db.Handle(ctx, record.Clone()))
	}
	return errors.Join(errs...)
}

func (t tee) WithAttrs(attrs []slog.Attr) slog.Handler {
	return tee{out: t.out.WithAttrs(attrs), db: t.db.WithAttrs(attrs)}
}

func (t tee) WithGroup(name string) slog.Handler {
	return tee{out: t.out.WithGroup(name), db: t.db.WithGroup(name)}
}
