// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package telemetryhttp supplies HTTP server and client decorations that propagate
trace context across HTTP boundaries.  Server handlers are wrapped as alice
constructors, clients as http.RoundTripper decorations, and go-kit transports
via RequestFuncs.  The actual instrumentation is delegated to the OpenTelemetry
otelhttp contrib package.
*/
package telemetryhttp
