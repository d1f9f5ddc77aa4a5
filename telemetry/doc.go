// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package telemetry provides ergonomic helpers layered on the OpenTelemetry API and SDK.
It does not implement tracing itself:  span lifecycle, exporters, batching and the
propagation wire format are all owned by go.opentelemetry.io/otel.  This package only
supplies the convenience surface around them:  an Options object with environment
variable fallbacks, process-wide provider initialization, a function decorator that
opens a span around a call, and a carrier for moving trace context across process
boundaries via the TRACEPARENT environment variable.
*/
package telemetry
