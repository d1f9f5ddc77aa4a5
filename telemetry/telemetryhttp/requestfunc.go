// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package telemetryhttp

import (
	"context"
	"net/http"

	gokithttp "github.com/go-kit/kit/transport/http"
	"go.opentelemetry.io/otel/propagation"
)

// InjectContext produces a go-kit RequestFunc for use with ClientBefore that
// writes the trace context of ctx into the outgoing request's headers.
func InjectContext(opts ...Option) gokithttp.RequestFunc {
	o := newOptions(opts)
	return func(ctx context.Context, request *http.Request) context.Context {
		o.propagators().Inject(ctx, propagation.HeaderCarrier(request.Header))
		return ctx
	}
}

// ExtractContext produces a go-kit RequestFunc for use with ServerBefore that
// reads trace context from the incoming request's headers into the returned
// context, making the remote span the parent of any spans started from it.
func ExtractContext(opts ...Option) gokithttp.RequestFunc {
	o := newOptions(opts)
	return func(ctx context.Context, request *http.Request) context.Context {
		return o.propagators().Extract(ctx, propagation.HeaderCarrier(request.Header))
	}
}
