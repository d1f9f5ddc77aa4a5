// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package eventlog

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func newHookedLogger(h *Hook) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.AddHook(h)
	return logger
}

func TestHook(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		ctx, span, sr = startSpan(t)
		logger        = newHookedLogger(NewHook())
	)

	logger.WithContext(ctx).WithField("attempt", 3).Warn("retrying")
	span.End()

	ended := sr.Ended()
	require.Len(ended, 1)
	require.Len(ended[0].Events(), 1)

	event := ended[0].Events()[0]
	assert.Equal("retrying", event.Name)
	assert.Contains(event.Attributes, attribute.String(SeverityKey, "warning"))
	assert.Contains(event.Attributes, attribute.Int("attempt", 3))
}

func TestHookNoContext(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		_, span, sr = startSpan(t)
		logger      = newHookedLogger(NewHook())
	)

	logger.Info("no context attached")
	span.End()

	ended := sr.Ended()
	require.Len(ended, 1)
	assert.Empty(ended[0].Events())
}

func TestHookEmptyMessage(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		ctx, span, sr = startSpan(t)
		logger        = newHookedLogger(NewHook())
	)

	logger.WithContext(ctx).Info("")
	logger.WithContext(ctx).Info("\n")
	span.End()

	ended := sr.Ended()
	require.Len(ended, 1)
	assert.Empty(ended[0].Events())
}

func TestHookLevels(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		ctx, span, sr = startSpan(t)
		logger        = newHookedLogger(NewHook(logrus.ErrorLevel))
	)

	logger.WithContext(ctx).Info("below the configured level")
	logger.WithContext(ctx).Error("this one fires")
	span.End()

	ended := sr.Ended()
	require.Len(ended, 1)
	require.Len(ended[0].Events(), 1)
	assert.Equal("this one fires", ended[0].Events()[0].Name)
}
