// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package eventlog

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zapcore"
)

// NewCore decorates a zap core so that each entry it writes is additionally
// forwarded to the span in ctx as a span event.  As with New, the span is
// bound at construction.  Level filtering is inherited from the decorated
// core.
func NewCore(ctx context.Context, next zapcore.Core) zapcore.Core {
	if ctx == nil {
		ctx = context.Background()
	}

	return &core{
		Core: next,
		span: trace.SpanFromContext(ctx),
	}
}

type core struct {
	zapcore.Core
	span trace.Span
}

func (c *core) With(fields []zapcore.Field) zapcore.Core {
	return &core{
		Core: c.Core.With(fields),
		span: c.span,
	}
}

func (c *core) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}

	return checked
}

func (c *core) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	if c.span.IsRecording() {
		message := strings.TrimSpace(entry.Message)
		if len(message) > 0 || len(fields) > 0 {
			encoder := zapcore.NewMapObjectEncoder()
			for _, f := range fields {
				f.AddTo(encoder)
			}

			attrs := make([]attribute.KeyValue, 0, len(encoder.Fields)+1)
			attrs = append(attrs, attribute.String(SeverityKey, entry.Level.String()))
			for key, value := range encoder.Fields {
				attrs = append(attrs, toAttribute(key, value))
			}

			name := message
			if len(name) == 0 {
				name = DefaultEventName
			}

			c.span.AddEvent(name, trace.WithAttributes(attrs...), trace.WithTimestamp(entry.Time))
		}
	}

	return c.Core.Write(entry, fields)
}
