package logs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Span identifies one unit of work, such as a single program run, across log records and errors.
type Span string

type spanKey struct{}

var SpanKey = spanKey{}

func SpanOf(ctx context.Context) Span {
	span, _ := ctx.Value(SpanKey).(Span)
	return span
}

// WrapSpan joins the span carried by ctx to err.
func WrapSpan(ctx context.Context, err error) error {
	span := SpanOf(ctx)
	if span == "" || err == nil {
		return err
	}
	return errors.Join(err, fmt.Errorf("span: %s", span))
}

// Handler adds the span carried by the context to each record.
type Handler struct {
	slog.Handler
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if span := SpanOf(ctx); span != "" {
		record.Add("logs.span", span)
	}
	return h.Handler.Handle(ctx, record)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{
		Handler: h.Handler.WithAttrs(attrs),
	}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{
		Handler: h.Handler.WithGroup(name),
	}
}
