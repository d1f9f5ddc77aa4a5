// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/url"
	"os"
	"sync"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc/credentials"
)

var (
	ErrNoCustomExporter      = errors.New("the custom protocol requires a custom exporter name")
	ErrUnknownCustomExporter = errors.New("no exporter factory is registered under that name")
)

// ExporterFactory creates a span exporter from telemetry options.  Factories
// are registered under a name via RegisterExporter and selected by setting the
// protocol to custom and the custom exporter field (or its environment
// variable) to the registered name.
type ExporterFactory func(ctx context.Context, o *Options) (sdktrace.SpanExporter, error)

var exporterRegistry = struct {
	sync.RWMutex
	factories map[string]ExporterFactory
}{
	factories: make(map[string]ExporterFactory),
}

// RegisterExporter associates an ExporterFactory with a name.  Registering a
// name twice silently replaces the earlier factory, which allows tests to
// substitute exporters.
func RegisterExporter(name string, factory ExporterFactory) {
	exporterRegistry.Lock()
	defer exporterRegistry.Unlock()
	exporterRegistry.factories[name] = factory
}

func lookupExporter(name string) (ExporterFactory, bool) {
	exporterRegistry.RLock()
	defer exporterRegistry.RUnlock()
	factory, ok := exporterRegistry.factories[name]
	return factory, ok
}

// endpointInfo is the result of parsing an Options endpoint.
type endpointInfo struct {
	// explicit indicates that an endpoint was configured at all.  When false,
	// no endpoint options are passed and the exporter's own environment
	// handling applies.
	explicit bool

	// hostPort is the endpoint stripped of any scheme and path
	hostPort string

	// urlPath is a nonstandard path on which the collector listens, only
	// meaningful for the http/protobuf protocol
	urlPath string

	// insecure is true when the endpoint carried an explicit http scheme
	insecure bool
}

func parseEndpoint(endpoint string) (info endpointInfo, err error) {
	if len(endpoint) == 0 {
		return
	}

	info.explicit = true

	// without a scheme, the value is already a host and port
	u, parseErr := url.Parse(endpoint)
	if parseErr != nil || len(u.Scheme) == 0 || len(u.Host) == 0 {
		info.hostPort = endpoint
		return
	}

	switch u.Scheme {
	case "http":
		info.insecure = true
	case "https":
		// secure is the zero value
	default:
		return endpointInfo{}, fmt.Errorf("unsupported endpoint scheme %q", u.Scheme)
	}

	info.hostPort = u.Host
	if len(u.Path) > 0 && u.Path != "/" {
		info.urlPath = u.Path
	}

	return
}

func newGRPCExporter(ctx context.Context, o *Options) (sdktrace.SpanExporter, error) {
	info, err := parseEndpoint(o.endpoint())
	if err != nil {
		return nil, err
	}

	var options []otlptracegrpc.Option
	if info.explicit {
		options = append(options, otlptracegrpc.WithEndpoint(info.hostPort))
	}

	if certificate := o.certificate(); len(certificate) > 0 {
		creds, err := credentials.NewClientTLSFromFile(certificate, "")
		if err != nil {
			return nil, fmt.Errorf("unable to load collector certificate: %w", err)
		}

		options = append(options, otlptracegrpc.WithTLSCredentials(creds))
	} else if info.insecure {
		options = append(options, otlptracegrpc.WithInsecure())
	}

	return otlptracegrpc.New(ctx, options...)
}

func newHTTPExporter(ctx context.Context, o *Options) (sdktrace.SpanExporter, error) {
	info, err := parseEndpoint(o.endpoint())
	if err != nil {
		return nil, err
	}

	var options []otlptracehttp.Option
	if info.explicit {
		options = append(options, otlptracehttp.WithEndpoint(info.hostPort))
	}

	if len(info.urlPath) > 0 {
		options = append(options, otlptracehttp.WithURLPath(info.urlPath))
	}

	if certificate := o.certificate(); len(certificate) > 0 {
		pem, err := os.ReadFile(certificate)
		if err != nil {
			return nil, fmt.Errorf("unable to load collector certificate: %w", err)
		}

		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in %s", certificate)
		}

		options = append(options, otlptracehttp.WithTLSClientConfig(&tls.Config{RootCAs: pool}))
	} else if info.insecure {
		options = append(options, otlptracehttp.WithInsecure())
	}

	return otlptracehttp.New(ctx, options...)
}

func newCustomExporter(ctx context.Context, o *Options) (sdktrace.SpanExporter, error) {
	name := o.customExporter()
	if len(name) == 0 {
		return nil, ErrNoCustomExporter
	}

	factory, ok := lookupExporter(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCustomExporter, name)
	}

	return factory(ctx, o)
}

// newExporter creates the span exporter selected by the Options protocol.
func newExporter(ctx context.Context, o *Options) (sdktrace.SpanExporter, error) {
	switch o.protocol() {
	case ProtocolGRPC:
		return newGRPCExporter(ctx, o)

	case ProtocolHTTP:
		return newHTTPExporter(ctx, o)

	case ProtocolConsole:
		return stdouttrace.New(stdouttrace.WithPrettyPrint())

	case ProtocolCustom:
		return newCustomExporter(ctx, o)

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidProtocol, o.protocol())
	}
}
