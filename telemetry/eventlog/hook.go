// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package eventlog

import (
	"strings"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Hook is a logrus hook that forwards entries to the span in each entry's
// context as span events.  Entries logged without a context, or whose span is
// not recording, are ignored.  The entry message becomes the event name and
// the entry's fields become event attributes.
type Hook struct {
	levels []logrus.Level
}

var _ logrus.Hook = (*Hook)(nil)

// NewHook constructs a Hook firing on the given levels.  With no levels, the
// hook fires on every level.
func NewHook(levels ...logrus.Level) *Hook {
	if len(levels) == 0 {
		levels = logrus.AllLevels
	}

	return &Hook{levels: levels}
}

func (h *Hook) Levels() []logrus.Level {
	return h.levels
}

func (h *Hook) Fire(entry *logrus.Entry) error {
	if entry.Context == nil {
		return nil
	}

	span := trace.SpanFromContext(entry.Context)
	if !span.IsRecording() {
		return nil
	}

	message := strings.TrimSpace(entry.Message)
	if len(message) == 0 && len(entry.Data) == 0 {
		return nil
	}

	attrs := make([]attribute.KeyValue, 0, len(entry.Data)+1)
	attrs = append(attrs, attribute.String(SeverityKey, entry.Level.String()))
	for key, value := range entry.Data {
		attrs = append(attrs, toAttribute(key, value))
	}

	name := message
	if len(name) == 0 {
		name = DefaultEventName
	}

	span.AddEvent(name, trace.WithAttributes(attrs...), trace.WithTimestamp(entry.Time))
	return nil
}
