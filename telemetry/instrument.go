// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"context"
	"reflect"
	"runtime"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SpanOption configures span creation for StartSpan, WithSpan, and Instrument.
type SpanOption func(*spanConfig)

type spanConfig struct {
	tracer       trace.Tracer
	tracerName   string
	startOptions []trace.SpanStartOption
}

// WithTracer supplies the tracer used to start the span.  If unset, the
// package default provider's tracer is used.
func WithTracer(tracer trace.Tracer) SpanOption {
	return func(sc *spanConfig) {
		if tracer != nil {
			sc.tracer = tracer
		}
	}
}

// WithTracerName sets the instrumentation scope name used when no tracer is
// supplied.  If unset, TracerName is used.
func WithTracerName(name string) SpanOption {
	return func(sc *spanConfig) {
		sc.tracerName = name
	}
}

// WithSpanKind sets the kind of the created span.
func WithSpanKind(kind trace.SpanKind) SpanOption {
	return func(sc *spanConfig) {
		sc.startOptions = append(sc.startOptions, trace.WithSpanKind(kind))
	}
}

// WithAttributes sets initial attributes on the created span.
func WithAttributes(attrs ...attribute.KeyValue) SpanOption {
	return func(sc *spanConfig) {
		sc.startOptions = append(sc.startOptions, trace.WithAttributes(attrs...))
	}
}

func newSpanConfig(opts []SpanOption) *spanConfig {
	sc := new(spanConfig)
	for _, f := range opts {
		f(sc)
	}

	if sc.tracer == nil {
		sc.tracer = Tracer(sc.tracerName)
	}

	return sc
}

// StartSpan starts a span as a child of any span in ctx.  The caller is
// responsible for ending the returned span.  Most code should prefer WithSpan
// or Instrument, which manage the span lifecycle.
func StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, trace.Span) {
	sc := newSpanConfig(opts)
	return sc.tracer.Start(ctx, name, sc.startOptions...)
}

// EndSpan ends a span, recording err and marking the span's status when err is
// not nil.  A nil err leaves the status unset.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.End()
}

// WithSpan invokes fn inside a span with the given name.  The span is active
// in the context passed to fn, any error returned by fn is recorded on the
// span and sets its status, and the span is ended even if fn panics.  The
// error from fn is returned unchanged.
func WithSpan(ctx context.Context, name string, fn func(context.Context) error, opts ...SpanOption) (err error) {
	ctx, span := StartSpan(ctx, name, opts...)
	defer func() {
		EndSpan(span, err)
	}()

	err = fn(ctx)
	return
}

// Instrument is the decorator form of WithSpan:  it returns a function that
// creates a child span around every invocation of fn.  If name is empty, a
// name is derived from fn itself.
func Instrument(name string, fn func(context.Context) error, opts ...SpanOption) func(context.Context) error {
	if len(name) == 0 {
		name = functionName(fn)
	}

	return func(ctx context.Context) error {
		return WithSpan(ctx, name, fn, opts...)
	}
}

// functionName derives a span name from a function value, stripping the
// package path so that only the qualified function name remains.
func functionName(fn interface{}) string {
	pc := reflect.ValueOf(fn).Pointer()
	f := runtime.FuncForPC(pc)
	if f == nil {
		return "unknown"
	}

	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	return name
}
