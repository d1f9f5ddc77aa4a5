// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	MetricNamespace = "candela"
	MetricSubsystem = "telemetry"

	SpansStartedCounter = "spans_started_total"
	SpansEndedCounter   = "spans_ended_total"

	ServiceLabel = "service"
)

type processorMetrics struct {
	started *prometheus.CounterVec
	ended   *prometheus.CounterVec

	// owned holds the collectors this instance registered itself, as opposed
	// to collectors reused from an earlier registration.  Only owned
	// collectors are removed by unregister.
	owned []prometheus.Collector
}

// newProcessorMetrics registers (or reuses) the span activity counters on the
// given registerer.  Multiple providers sharing a registerer reuse the same
// collectors, distinguished by the service label.
func newProcessorMetrics(r prometheus.Registerer) (*processorMetrics, error) {
	pm := &processorMetrics{
		started: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricNamespace,
				Subsystem: MetricSubsystem,
				Name:      SpansStartedCounter,
				Help:      "the total count of spans started",
			},
			[]string{ServiceLabel},
		),
		ended: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricNamespace,
				Subsystem: MetricSubsystem,
				Name:      SpansEndedCounter,
				Help:      "the total count of spans ended",
			},
			[]string{ServiceLabel},
		),
	}

	if existing, err := register(r, pm.started); err != nil {
		return nil, err
	} else if existing != nil {
		pm.started = existing
	} else {
		pm.owned = append(pm.owned, pm.started)
	}

	if existing, err := register(r, pm.ended); err != nil {
		return nil, err
	} else if existing != nil {
		pm.ended = existing
	} else {
		pm.owned = append(pm.owned, pm.ended)
	}

	return pm, nil
}

// unregister removes any collectors this instance registered from r.  Reused
// collectors belonging to an earlier registration are left in place.
func (pm *processorMetrics) unregister(r prometheus.Registerer) {
	for _, c := range pm.owned {
		r.Unregister(c)
	}
}

func register(r prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	err := r.Register(c)
	if err == nil {
		return nil, nil
	}

	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
			return existing, nil
		}
	}

	return nil, err
}

// instrumentedProcessor decorates a span processor with span activity counters.
type instrumentedProcessor struct {
	next    sdktrace.SpanProcessor
	started prometheus.Counter
	ended   prometheus.Counter
}

func (pm *processorMetrics) instrument(next sdktrace.SpanProcessor, service string) sdktrace.SpanProcessor {
	return &instrumentedProcessor{
		next:    next,
		started: pm.started.WithLabelValues(service),
		ended:   pm.ended.WithLabelValues(service),
	}
}

func (ip *instrumentedProcessor) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	ip.started.Inc()
	ip.next.OnStart(parent, s)
}

func (ip *instrumentedProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	ip.ended.Inc()
	ip.next.OnEnd(s)
}

func (ip *instrumentedProcessor) Shutdown(ctx context.Context) error {
	return ip.next.Shutdown(ctx)
}

func (ip *instrumentedProcessor) ForceFlush(ctx context.Context) error {
	return ip.next.ForceFlush(ctx)
}
