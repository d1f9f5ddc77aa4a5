// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cast"
)

// Environment variables consulted when the corresponding Options field is unset.
// These follow the OTEL and OTLP standard names where one exists.
// See https://opentelemetry.io/docs/specs/otel/configuration/sdk-environment-variables/
const (
	EndpointEnv       = "OTEL_EXPORTER_OTLP_ENDPOINT"
	CertificateEnv    = "OTEL_EXPORTER_OTLP_CERTIFICATE"
	ProtocolEnv       = "OTEL_EXPORTER_OTLP_PROTOCOL"
	CustomExporterEnv = "OTEL_EXPORTER_CUSTOM_SPAN_EXPORTER_TYPE"
	ServiceNameEnv    = "OTEL_SERVICE_NAME"
	ProcessorTypeEnv  = "OTEL_PROCESSOR_TYPE"
	SamplingRatioEnv  = "OTEL_TRACES_SAMPLER_ARG"

	// TraceparentEnv carries a W3C traceparent header value across process
	// boundaries.  See the Carrier type in this package.
	TraceparentEnv = "TRACEPARENT"
)

// Protocol selects the span exporter installed by a Provider.
type Protocol string

const (
	ProtocolGRPC    Protocol = "grpc"
	ProtocolHTTP    Protocol = "http/protobuf"
	ProtocolConsole Protocol = "console"
	ProtocolCustom  Protocol = "custom"

	DefaultProtocol = ProtocolHTTP
)

// ProcessorType selects the span processor wrapping the exporter.
type ProcessorType string

const (
	ProcessorSimple ProcessorType = "simple"
	ProcessorBatch  ProcessorType = "batch"

	DefaultProcessorType = ProcessorBatch
)

const DefaultSamplingRatio float64 = 1.0

var (
	ErrInvalidProtocol      = errors.New("protocol must be one of grpc, http/protobuf, console, or custom")
	ErrInvalidProcessorType = errors.New("processor type must be simple or batch")
	ErrInvalidSamplingRatio = errors.New("sampling ratio must be between 0.0 and 1.0")
)

// Options is the externally supplied configuration for a Provider.  Every field
// is optional.  A field that is unset falls back to the environment variable of
// the corresponding name, then to the package default.  An explicitly set field
// always wins over the environment.
//
// A nil *Options is valid and behaves as if every field were unset.
type Options struct {
	// Endpoint is the OTLP collector endpoint, e.g. "http://localhost:4318"
	// or "collector:4317".  If no scheme is present the value is used verbatim
	// as a host and port.  When unset both here and in the environment, the
	// exporter's own environment handling applies.
	Endpoint string `json:"endpoint,omitempty"`

	// Certificate is a file system path to a PEM certificate bundle used to
	// verify the collector's TLS certificate.  Only consulted for the grpc
	// and http/protobuf protocols.
	Certificate string `json:"certificate,omitempty"`

	// Protocol selects the exporter:  grpc, http/protobuf, console, or custom.
	// If unset, DefaultProtocol is used.
	Protocol Protocol `json:"protocol,omitempty"`

	// CustomExporter is the registered name of an ExporterFactory, consulted
	// only when Protocol is custom.  See RegisterExporter.
	CustomExporter string `json:"customExporter,omitempty"`

	// ServiceName is the value of the service.name resource attribute.
	ServiceName string `json:"serviceName,omitempty"`

	// ProcessorType selects the span processor:  simple or batch.  If unset,
	// DefaultProcessorType is used.
	ProcessorType ProcessorType `json:"processorType,omitempty"`

	// SamplingRatio is the fraction of traces to sample, in [0.0, 1.0].
	// If unset, DefaultSamplingRatio is used.  The ratio applies to root
	// spans; children follow their parent's decision.
	SamplingRatio *float64 `json:"samplingRatio,omitempty"`

	// Traceparent is a W3C traceparent header value to use as the ambient
	// parent of all root spans.  This is how a child process participates in
	// the trace of its parent.
	Traceparent string `json:"traceparent,omitempty"`
}

func (o *Options) endpoint() string {
	if o != nil && len(o.Endpoint) > 0 {
		return o.Endpoint
	}

	return os.Getenv(EndpointEnv)
}

func (o *Options) certificate() string {
	if o != nil && len(o.Certificate) > 0 {
		return o.Certificate
	}

	return os.Getenv(CertificateEnv)
}

func (o *Options) protocol() Protocol {
	if o != nil && len(o.Protocol) > 0 {
		return o.Protocol
	}

	if v := os.Getenv(ProtocolEnv); len(v) > 0 {
		return Protocol(v)
	}

	return DefaultProtocol
}

func (o *Options) customExporter() string {
	if o != nil && len(o.CustomExporter) > 0 {
		return o.CustomExporter
	}

	return os.Getenv(CustomExporterEnv)
}

func (o *Options) serviceName() string {
	if o != nil && len(o.ServiceName) > 0 {
		return o.ServiceName
	}

	return os.Getenv(ServiceNameEnv)
}

func (o *Options) processorType() ProcessorType {
	if o != nil && len(o.ProcessorType) > 0 {
		return o.ProcessorType
	}

	if v := os.Getenv(ProcessorTypeEnv); len(v) > 0 {
		return ProcessorType(v)
	}

	return DefaultProcessorType
}

func (o *Options) samplingRatio() (float64, error) {
	if o != nil && o.SamplingRatio != nil {
		return *o.SamplingRatio, nil
	}

	if v := os.Getenv(SamplingRatioEnv); len(v) > 0 {
		ratio, err := cast.ToFloat64E(v)
		if err != nil {
			return 0.0, fmt.Errorf("invalid value for %s: %w", SamplingRatioEnv, err)
		}

		return ratio, nil
	}

	return DefaultSamplingRatio, nil
}

func (o *Options) traceparent() string {
	if o != nil && len(o.Traceparent) > 0 {
		return o.Traceparent
	}

	return os.Getenv(TraceparentEnv)
}

// Validate checks the enumerated fields of this Options, after applying
// environment fallbacks and defaults.
func (o *Options) Validate() error {
	switch o.protocol() {
	case ProtocolGRPC, ProtocolHTTP, ProtocolConsole, ProtocolCustom:
		// valid
	default:
		return fmt.Errorf("%w: %q", ErrInvalidProtocol, o.protocol())
	}

	switch o.processorType() {
	case ProcessorSimple, ProcessorBatch:
		// valid
	default:
		return fmt.Errorf("%w: %q", ErrInvalidProcessorType, o.processorType())
	}

	ratio, err := o.samplingRatio()
	if err != nil {
		return err
	}

	if ratio < 0.0 || ratio > 1.0 {
		return fmt.Errorf("%w: %v", ErrInvalidSamplingRatio, ratio)
	}

	return nil
}
