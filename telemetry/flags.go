// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"github.com/spf13/pflag"
)

// Command line flag names registered by AddFlags.
const (
	EndpointFlag      = "otlp-endpoint"
	CertificateFlag   = "otlp-certificate"
	ProtocolFlag      = "otlp-protocol"
	ServiceNameFlag   = "service-name"
	ProcessorTypeFlag = "processor-type"
	SamplingRatioFlag = "sampling-ratio"
)

// AddFlags registers the telemetry command line flags on the given flag set.
// Every flag defaults to unset, preserving the environment fallbacks applied
// by Options.
func AddFlags(fs *pflag.FlagSet) {
	fs.String(EndpointFlag, "", "OTLP collector endpoint")
	fs.String(CertificateFlag, "", "path to a PEM certificate bundle for the collector")
	fs.String(ProtocolFlag, "", "span exporter protocol: grpc, http/protobuf, console, or custom")
	fs.String(ServiceNameFlag, "", "value of the service.name resource attribute")
	fs.String(ProcessorTypeFlag, "", "span processor type: simple or batch")
	fs.Float64(SamplingRatioFlag, DefaultSamplingRatio, "fraction of traces to sample, in [0.0, 1.0]")
}

// FromFlags produces an Options from a flag set previously configured via
// AddFlags.  Flags left at their defaults leave the corresponding Options
// fields unset.
func FromFlags(fs *pflag.FlagSet) (*Options, error) {
	o := new(Options)

	if f := fs.Lookup(EndpointFlag); f != nil {
		o.Endpoint = f.Value.String()
	}

	if f := fs.Lookup(CertificateFlag); f != nil {
		o.Certificate = f.Value.String()
	}

	if f := fs.Lookup(ProtocolFlag); f != nil {
		o.Protocol = Protocol(f.Value.String())
	}

	if f := fs.Lookup(ServiceNameFlag); f != nil {
		o.ServiceName = f.Value.String()
	}

	if f := fs.Lookup(ProcessorTypeFlag); f != nil {
		o.ProcessorType = ProcessorType(f.Value.String())
	}

	if f := fs.Lookup(SamplingRatioFlag); f != nil && f.Changed {
		ratio, err := fs.GetFloat64(SamplingRatioFlag)
		if err != nil {
			return nil, err
		}

		o.SamplingRatio = &ratio
	}

	if err := o.Validate(); err != nil {
		return nil, err
	}

	return o, nil
}
