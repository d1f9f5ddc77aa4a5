// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// newRecorder produces a span recorder and a tracer feeding it.
func newRecorder(t *testing.T) (*tracetest.SpanRecorder, trace.Tracer) {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
	})

	return sr, tp.Tracer("test")
}

func TestWithSpan(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		sr, tracer = newRecorder(t)
	)

	err := WithSpan(context.Background(), "operation", func(ctx context.Context) error {
		span := trace.SpanFromContext(ctx)
		assert.True(span.SpanContext().IsValid())
		assert.True(span.IsRecording())
		return nil
	}, WithTracer(tracer))

	assert.NoError(err)

	ended := sr.Ended()
	require.Len(ended, 1)
	assert.Equal("operation", ended[0].Name())
	assert.Equal(codes.Unset, ended[0].Status().Code)
}

func TestWithSpanError(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		sr, tracer  = newRecorder(t)
		expectedErr = errors.New("expected")
	)

	err := WithSpan(context.Background(), "failing", func(context.Context) error {
		return expectedErr
	}, WithTracer(tracer))

	assert.Equal(expectedErr, err)

	ended := sr.Ended()
	require.Len(ended, 1)
	assert.Equal(codes.Error, ended[0].Status().Code)
	assert.Equal("expected", ended[0].Status().Description)

	// the error is also recorded as an exception event
	require.NotEmpty(ended[0].Events())
	assert.Equal("exception", ended[0].Events()[0].Name)
}

func TestWithSpanEndsOnPanic(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		sr, tracer = newRecorder(t)
	)

	assert.Panics(func() {
		_ = WithSpan(context.Background(), "panicking", func(context.Context) error {
			panic("boom")
		}, WithTracer(tracer))
	})

	require.Len(sr.Ended(), 1)
}

func TestWithSpanOptions(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		sr, tracer = newRecorder(t)
	)

	err := WithSpan(
		context.Background(),
		"decorated",
		func(context.Context) error { return nil },
		WithTracer(tracer),
		WithSpanKind(trace.SpanKindServer),
		WithAttributes(attribute.String("some key", "some value")),
	)

	assert.NoError(err)

	ended := sr.Ended()
	require.Len(ended, 1)
	assert.Equal(trace.SpanKindServer, ended[0].SpanKind())
	assert.Contains(ended[0].Attributes(), attribute.String("some key", "some value"))
}

func TestInstrument(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		sr, tracer = newRecorder(t)
	)

	decorated := Instrument("custom name", func(ctx context.Context) error {
		assert.True(trace.SpanFromContext(ctx).SpanContext().IsValid())
		return nil
	}, WithTracer(tracer))

	assert.NoError(decorated(context.Background()))
	assert.NoError(decorated(context.Background()))

	ended := sr.Ended()
	require.Len(ended, 2)
	assert.Equal("custom name", ended[0].Name())
	assert.Equal("custom name", ended[1].Name())
}

func TestInstrumentDerivedName(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		sr, tracer = newRecorder(t)
	)

	decorated := Instrument("", func(context.Context) error { return nil }, WithTracer(tracer))
	assert.NoError(decorated(context.Background()))

	ended := sr.Ended()
	require.Len(ended, 1)

	// the derived name is the qualified function name without the package path
	assert.Contains(ended[0].Name(), "telemetry.TestInstrumentDerivedName")
}

func TestStartSpan(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		sr, tracer = newRecorder(t)
	)

	ctx, span := StartSpan(context.Background(), "manual", WithTracer(tracer))
	assert.True(trace.SpanFromContext(ctx).SpanContext().IsValid())

	EndSpan(span, nil)

	require.Len(sr.Ended(), 1)
	assert.Equal(codes.Unset, sr.Ended()[0].Status().Code)
}
