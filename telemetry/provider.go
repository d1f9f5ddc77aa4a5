// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"context"
	"errors"
	"sync"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/ksuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope used when no other tracer name is supplied.
const TracerName = "github.com/xmidt-org/candela/telemetry"

// Provider owns the tracer providers constructed from a single Options.  The
// first provider is built for the configured service name.  Additional
// providers are created lazily, one per distinct service name requested via
// Tracer, all sharing the same exporter configuration.
//
// Construction installs the primary provider as the process-wide OpenTelemetry
// default, along with a composite TraceContext and Baggage propagator.
type Provider struct {
	options    *Options
	logger     log.Logger
	metrics    *processorMetrics
	registerer prometheus.Registerer
	parent     Carrier

	lock      sync.Mutex
	providers map[string]*sdktrace.TracerProvider
}

// InitOption configures optional Provider behavior.
type InitOption func(*Provider)

// WithLogger supplies a go-kit logger for initialization events.  If unset,
// logging is suppressed.
func WithLogger(logger log.Logger) InitOption {
	return func(p *Provider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithRegisterer enables span activity metrics on the given prometheus
// registerer.  If unset, no metrics are collected.
func WithRegisterer(r prometheus.Registerer) InitOption {
	return func(p *Provider) {
		p.registerer = r
	}
}

// New validates the given options, builds the primary tracer provider, and
// installs it as the global OpenTelemetry provider together with a
// TraceContext and Baggage propagator.  Any TRACEPARENT from the options or
// the environment is captured as the ambient parent context, available via
// ParentContext.
//
// The supplied context bounds exporter construction only.
func New(ctx context.Context, o *Options, opts ...InitOption) (*Provider, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	p := &Provider{
		options:   o,
		logger:    log.NewNopLogger(),
		providers: make(map[string]*sdktrace.TracerProvider),
	}

	for _, f := range opts {
		f(p)
	}

	if p.registerer != nil {
		metrics, err := newProcessorMetrics(p.registerer)
		if err != nil {
			return nil, err
		}

		p.metrics = metrics
	}

	primary, err := p.newTracerProvider(ctx, o.serviceName())
	if err != nil {
		if p.metrics != nil {
			p.metrics.unregister(p.registerer)
		}

		return nil, err
	}

	p.providers[o.serviceName()] = primary
	p.parent = NewCarrier(o.traceparent())

	otel.SetTracerProvider(primary)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}),
	)

	level.Info(p.logger).Log(
		"msg", "telemetry provider installed",
		"service", o.serviceName(),
		"protocol", o.protocol(),
		"processorType", o.processorType(),
	)

	return p, nil
}

func (p *Provider) newTracerProvider(ctx context.Context, service string) (*sdktrace.TracerProvider, error) {
	exporter, err := newExporter(ctx, p.options)
	if err != nil {
		return nil, err
	}

	var processor sdktrace.SpanProcessor
	switch p.options.processorType() {
	case ProcessorSimple:
		processor = sdktrace.NewSimpleSpanProcessor(exporter)
	default:
		processor = sdktrace.NewBatchSpanProcessor(exporter)
	}

	if p.metrics != nil {
		processor = p.metrics.instrument(processor, service)
	}

	ratio, err := p.options.samplingRatio()
	if err != nil {
		return nil, err
	}

	sampler := sdktrace.AlwaysSample()
	if ratio < 1.0 {
		sampler = sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
	}

	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
			semconv.ServiceInstanceID(ksuid.New().String()),
		),
	)

	if err != nil {
		return nil, err
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithResource(r),
		sdktrace.WithSpanProcessor(processor),
		sdktrace.WithSampler(sampler),
	), nil
}

// TracerOption configures a Tracer lookup.
type TracerOption func(*tracerConfig)

type tracerConfig struct {
	serviceName string
}

// WithServiceName requests a tracer whose spans carry the given service.name
// resource attribute instead of the one the Provider was configured with.
// The first lookup for a distinct service name constructs a new tracer
// provider sharing the Provider's exporter configuration.
func WithServiceName(serviceName string) TracerOption {
	return func(tc *tracerConfig) {
		tc.serviceName = serviceName
	}
}

// Tracer returns a tracer with the given instrumentation scope name.  If name
// is empty, TracerName is used.
//
// When WithServiceName triggers lazy construction of a new tracer provider
// and that construction fails, for example due to an unreadable certificate,
// the error is logged and a tracer from the global OpenTelemetry provider is
// returned instead.  The failed service name is not cached, so a later lookup
// retries construction.
func (p *Provider) Tracer(name string, opts ...TracerOption) trace.Tracer {
	if len(name) == 0 {
		name = TracerName
	}

	tc := tracerConfig{serviceName: p.options.serviceName()}
	for _, f := range opts {
		f(&tc)
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	tp, ok := p.providers[tc.serviceName]
	if !ok {
		var err error
		tp, err = p.newTracerProvider(context.Background(), tc.serviceName)
		if err != nil {
			level.Error(p.logger).Log(
				"msg", "unable to create tracer provider",
				"service", tc.serviceName,
				"error", err,
			)

			return otel.Tracer(name)
		}

		p.providers[tc.serviceName] = tp
	}

	return tp.Tracer(name)
}

// ParentContext returns a context descended from ctx that carries the remote
// span context captured from TRACEPARENT at initialization.  If no traceparent
// was configured, ctx is returned unchanged.
func (p *Provider) ParentContext(ctx context.Context) context.Context {
	if p.parent.Empty() {
		return ctx
	}

	return p.parent.Context(ctx)
}

// Flush forces every constructed tracer provider to export any spans it is
// holding.  Errors are aggregated.
func (p *Provider) Flush(ctx context.Context) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	var errs []error
	for _, tp := range p.providers {
		errs = append(errs, tp.ForceFlush(ctx))
	}

	return errors.Join(errs...)
}

// Shutdown flushes and stops every constructed tracer provider.  The Provider
// should not be used afterward.
func (p *Provider) Shutdown(ctx context.Context) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	var errs []error
	for _, tp := range p.providers {
		errs = append(errs, tp.Shutdown(ctx))
	}

	return errors.Join(errs...)
}

var defaultProvider struct {
	sync.RWMutex
	value *Provider
}

// Init is the process-wide, one-time initialization entry point.  It behaves
// as New and additionally records the result as the package default used by
// Tracer and Flush.
func Init(ctx context.Context, o *Options, opts ...InitOption) (*Provider, error) {
	p, err := New(ctx, o, opts...)
	if err != nil {
		return nil, err
	}

	defaultProvider.Lock()
	defaultProvider.value = p
	defaultProvider.Unlock()

	return p, nil
}

// Default returns the Provider most recently recorded by Init, or nil if Init
// has not succeeded.
func Default() *Provider {
	defaultProvider.RLock()
	defer defaultProvider.RUnlock()
	return defaultProvider.value
}

// Tracer returns a tracer from the default Provider.  Before Init has
// succeeded, it falls back to the global OpenTelemetry tracer, so spans
// created early are no-ops rather than errors.
func Tracer(name string, opts ...TracerOption) trace.Tracer {
	if p := Default(); p != nil {
		return p.Tracer(name, opts...)
	}

	if len(name) == 0 {
		name = TracerName
	}

	return otel.Tracer(name)
}

// Flush flushes the default Provider, if any.
func Flush(ctx context.Context) error {
	if p := Default(); p != nil {
		return p.Flush(ctx)
	}

	return nil
}
