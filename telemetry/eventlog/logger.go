// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package eventlog

import (
	"context"
	"strings"

	"github.com/go-kit/kit/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// messageKey is the go-kit logging key whose value becomes the span event name.
const messageKey = "msg"

// New decorates a go-kit Logger so that each record is additionally forwarded
// to the span in ctx as a span event.  The span is bound at construction, so
// a logger created per request or per operation forwards to that operation's
// span.  The value logged under the "msg" key becomes the event name; all
// other key/value pairs become event attributes.
//
// Records whose message is empty or pure whitespace and which carry no other
// key/value pairs are not forwarded.  The next logger always receives every
// record regardless.
func New(ctx context.Context, next log.Logger) log.Logger {
	if ctx == nil {
		ctx = context.Background()
	}

	return &logger{
		next: next,
		span: trace.SpanFromContext(ctx),
	}
}

type logger struct {
	next log.Logger
	span trace.Span
}

func (l *logger) Log(keyvals ...interface{}) error {
	err := l.next.Log(keyvals...)
	if !l.span.IsRecording() {
		return err
	}

	var (
		message string
		attrs   []attribute.KeyValue
	)

	for i := 0; i+1 < len(keyvals); i += 2 {
		key := keyString(keyvals[i])
		if key == messageKey {
			message = valueString(keyvals[i+1])
			continue
		}

		attrs = append(attrs, toAttribute(key, keyvals[i+1]))
	}

	message = strings.TrimSpace(message)
	if len(message) == 0 && len(attrs) == 0 {
		return err
	}

	name := message
	if len(name) == 0 {
		name = DefaultEventName
	}

	l.span.AddEvent(name, trace.WithAttributes(attrs...))
	return err
}

func keyString(key interface{}) string {
	if s, ok := key.(string); ok {
		return s
	}

	return valueString(key)
}

func valueString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return toAttribute("", v).Value.Emit()
	}
}
