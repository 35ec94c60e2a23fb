package postgresdb

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// MultiQueryTracer fans query events out to every registered tracer.
type MultiQueryTracer struct {
	Tracers []pgx.QueryTracer
}

func NewMultiQueryTracer(tracers ...pgx.QueryTracer) *MultiQueryTracer {
	return &MultiQueryTracer{Tracers: tracers}
}

func (m *MultiQueryTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, t := range m.Tracers {
		ctx = t.TraceQueryStart(ctx, conn, data)
	}
	return ctx
}

func (m *MultiQueryTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, t := range m.Tracers {
		t.TraceQueryEnd(ctx, conn, data)
	}
}

// LoggingQueryTracer writes one debug line per finished query with its
// duration. Failed queries are logged at error level.
type LoggingQueryTracer struct {
	logger *slog.Logger
}

func NewLoggingQueryTracer(logger *slog.Logger) *LoggingQueryTracer {
	return &LoggingQueryTracer{logger: logger}
}

type queryStartKey struct{}

type queryStart struct {
	sql  string
	args []any
	at   time.Time
}

var whitespace = regexp.MustCompile(`\s+`)

// compactSQL folds a multi line statement onto one line.
func compactSQL(sql string) string {
	s := whitespace.ReplaceAllString(sql, " ")
	s = strings.ReplaceAll(s, "( ", "(")
	s = strings.ReplaceAll(s, " )", ")")
	return strings.TrimSpace(s)
}

func (l *LoggingQueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{
		sql:  compactSQL(data.SQL),
		args: data.Args,
		at:   time.Now(),
	})
}

func (l *LoggingQueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, _ := ctx.Value(queryStartKey{}).(queryStart)

	attrs := []any{
		slog.String("sql", start.sql),
		slog.Int("args", len(start.args)),
		slog.String("command_tag", data.CommandTag.String()),
	}
	if !start.at.IsZero() {
		attrs = append(attrs, slog.Duration("took", time.Since(start.at)))
	}

	if data.Err != nil {
		l.logger.ErrorContext(ctx, "query failed", append(attrs, slog.String("error", data.Err.Error()))...)
		return
	}

	l.logger.DebugContext(ctx, "query", attrs...)
}
