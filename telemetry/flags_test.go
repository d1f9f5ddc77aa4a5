// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFlags(t *testing.T) {
	clearTelemetryEnv(t)

	var (
		assert  = assert.New(t)
		require = require.New(t)

		fs = pflag.NewFlagSet("test", pflag.ContinueOnError)
	)

	AddFlags(fs)
	require.NoError(fs.Parse([]string{
		"--otlp-endpoint", "collector:4317",
		"--otlp-protocol", "grpc",
		"--service-name", "flag-service",
		"--processor-type", "batch",
		"--sampling-ratio", "0.1",
	}))

	o, err := FromFlags(fs)
	require.NoError(err)
	require.NotNil(o)

	assert.Equal("collector:4317", o.Endpoint)
	assert.Equal(ProtocolGRPC, o.Protocol)
	assert.Equal("flag-service", o.ServiceName)
	assert.Equal(ProcessorBatch, o.ProcessorType)

	require.NotNil(o.SamplingRatio)
	assert.Equal(0.1, *o.SamplingRatio)
}

func TestFromFlagsDefaults(t *testing.T) {
	clearTelemetryEnv(t)

	var (
		assert  = assert.New(t)
		require = require.New(t)

		fs = pflag.NewFlagSet("test", pflag.ContinueOnError)
	)

	AddFlags(fs)
	require.NoError(fs.Parse(nil))

	o, err := FromFlags(fs)
	require.NoError(err)
	require.NotNil(o)

	// unset flags leave the fields unset, preserving environment fallbacks
	assert.Equal("", o.Endpoint)
	assert.Equal(Protocol(""), o.Protocol)
	assert.Nil(o.SamplingRatio)
	assert.Equal(DefaultProtocol, o.protocol())
}

func TestFromFlagsInvalid(t *testing.T) {
	clearTelemetryEnv(t)
	require := require.New(t)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddFlags(fs)
	require.NoError(fs.Parse([]string{"--otlp-protocol", "bogus"}))

	o, err := FromFlags(fs)
	require.Nil(o)
	require.ErrorIs(err, ErrInvalidProtocol)
}
