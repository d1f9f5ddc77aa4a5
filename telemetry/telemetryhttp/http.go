// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package telemetryhttp

import (
	"net/http"

	"github.com/justinas/alice"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Option configures the HTTP decorations in this package.
type Option func(*options)

type options struct {
	otelOptions []otelhttp.Option
	propagator  propagation.TextMapPropagator
}

// WithTracerProvider sets the tracer provider used for spans created around
// HTTP traffic.  If unset, the global provider applies.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		if tp != nil {
			o.otelOptions = append(o.otelOptions, otelhttp.WithTracerProvider(tp))
		}
	}
}

// WithPropagators sets the propagators used to read and write trace context
// headers.  If unset, the global propagator applies.
func WithPropagators(p propagation.TextMapPropagator) Option {
	return func(o *options) {
		if p != nil {
			o.otelOptions = append(o.otelOptions, otelhttp.WithPropagators(p))
			o.propagator = p
		}
	}
}

// WithSpanNameFormatter overrides how span names are derived from requests.
func WithSpanNameFormatter(f func(operation string, r *http.Request) string) Option {
	return func(o *options) {
		if f != nil {
			o.otelOptions = append(o.otelOptions, otelhttp.WithSpanNameFormatter(f))
		}
	}
}

func newOptions(opts []Option) *options {
	o := new(options)
	for _, f := range opts {
		f(o)
	}

	return o
}

func (o *options) propagators() propagation.TextMapPropagator {
	if o.propagator != nil {
		return o.propagator
	}

	return otel.GetTextMapPropagator()
}

// Decorate produces an alice constructor that wraps handlers in a server span
// named for the given operation.  Incoming trace context headers become the
// span's remote parent.
func Decorate(operation string, opts ...Option) alice.Constructor {
	o := newOptions(opts)
	return func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, operation, o.otelOptions...)
	}
}

// RoundTripper decorates next so that outgoing requests create client spans
// and carry trace context headers.  A nil next uses http.DefaultTransport.
func RoundTripper(next http.RoundTripper, opts ...Option) http.RoundTripper {
	o := newOptions(opts)
	return otelhttp.NewTransport(next, o.otelOptions...)
}

// DecorateClient returns a shallow copy of client whose transport is decorated
// via RoundTripper.  A nil client decorates a copy of http.DefaultClient.
func DecorateClient(client *http.Client, opts ...Option) *http.Client {
	if client == nil {
		client = http.DefaultClient
	}

	copyOf := *client
	copyOf.Transport = RoundTripper(client.Transport, opts...)
	return &copyOf
}
