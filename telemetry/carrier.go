// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	traceparentKey = "traceparent"
	tracestateKey  = "tracestate"
)

// envPropagator is the wire format used for carriers.  The W3C trace context
// format is used unconditionally, independent of the globally installed
// propagator, so that carriers interoperate with any process honoring
// TRACEPARENT.
var envPropagator = propagation.TraceContext{}

// Carrier is a serialized trace context.  It can be captured from a Go
// context, written to and read from the TRACEPARENT environment variable, and
// reattached to a Go context on the other side of a process boundary.
type Carrier propagation.MapCarrier

// NewCarrier constructs a Carrier directly from a W3C traceparent header
// value.  An empty traceparent yields an empty Carrier.
func NewCarrier(traceparent string) Carrier {
	c := make(Carrier)
	if len(traceparent) > 0 {
		c[traceparentKey] = traceparent
	}

	return c
}

// FromContext captures the span context of ctx as a Carrier.  If ctx has no
// valid span context, the returned Carrier is empty.
func FromContext(ctx context.Context) Carrier {
	c := make(Carrier)
	envPropagator.Inject(ctx, propagation.MapCarrier(c))
	return c
}

// FromEnv builds a Carrier from the TRACEPARENT environment variable.  The
// returned Carrier is empty if the variable is unset.
func FromEnv() Carrier {
	return NewCarrier(os.Getenv(TraceparentEnv))
}

// Context returns a context descended from parent that carries this Carrier's
// span context as a remote parent.  An empty Carrier returns parent unchanged.
func (c Carrier) Context(parent context.Context) context.Context {
	return envPropagator.Extract(parent, propagation.MapCarrier(c))
}

// Traceparent returns the W3C traceparent header value held by this Carrier,
// or the empty string.
func (c Carrier) Traceparent() string {
	return c[traceparentKey]
}

// Empty tests whether this Carrier holds any trace context.
func (c Carrier) Empty() bool {
	return len(c[traceparentKey]) == 0
}

// Equal tests whether two Carriers hold the same trace context.
func (c Carrier) Equal(other Carrier) bool {
	return c[traceparentKey] == other[traceparentKey] &&
		c[tracestateKey] == other[tracestateKey]
}

// SetEnv exports this Carrier to the TRACEPARENT environment variable and
// returns a function that restores the variable's previous state.  An empty
// Carrier leaves the environment untouched.
//
// The environment is process-global.  Callers coordinating concurrent child
// process launches must serialize around SetEnv themselves.
func (c Carrier) SetEnv() (restore func()) {
	restore = func() {}
	if c.Empty() {
		return
	}

	previous, existed := os.LookupEnv(TraceparentEnv)
	os.Setenv(TraceparentEnv, c.Traceparent())

	return func() {
		if existed {
			os.Setenv(TraceparentEnv, previous)
		} else {
			os.Unsetenv(TraceparentEnv)
		}
	}
}

// ContextFromEnv attaches any trace context in the TRACEPARENT environment
// variable to ctx.  Unlike Carrier.Context, an unset variable clears any span
// context already present, so the returned context always reflects exactly
// what the environment describes.
func ContextFromEnv(ctx context.Context) context.Context {
	c := FromEnv()
	if c.Empty() {
		return trace.ContextWithSpanContext(ctx, trace.SpanContext{})
	}

	return c.Context(ctx)
}

// InjectContextToEnv runs fn with the span context of ctx exported to the
// TRACEPARENT environment variable, so that child processes spawned by fn
// join the current trace.  The previous variable state is restored before
// returning, even when fn fails.
func InjectContextToEnv(ctx context.Context, fn func() error) error {
	restore := FromContext(ctx).SetEnv()
	defer restore()
	return fn()
}
