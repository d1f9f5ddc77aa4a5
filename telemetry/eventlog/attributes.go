// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package eventlog

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
)

// SeverityKey is the span event attribute holding the log record's level.
const SeverityKey = "log.severity"

// DefaultEventName is the span event name used when a log record has no message.
const DefaultEventName = "log"

// toAttribute converts an arbitrary logged value into a span event attribute.
func toAttribute(key string, value interface{}) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case bool:
		return attribute.Bool(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case error:
		return attribute.String(key, v.Error())
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprint(v))
	}
}
