// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"context"

	"github.com/stretchr/testify/mock"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type mockExporter struct {
	mock.Mock
}

var _ sdktrace.SpanExporter = (*mockExporter)(nil)

func (m *mockExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	return m.Called(ctx, spans).Error(0)
}

func (m *mockExporter) Shutdown(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
