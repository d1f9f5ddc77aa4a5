// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package eventlog forwards log output to the current span as span events, so that
log records emitted during a traced operation travel with the trace.  Bridges are
provided for go-kit loggers, logrus hooks, and zap cores.  Each bridge is purely
additive:  records continue to flow to the decorated logger unchanged, and
nothing is forwarded unless the bound span is actually recording.
*/
package eventlog
