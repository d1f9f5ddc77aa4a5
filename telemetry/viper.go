// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// TelemetryKey is the default configuration key under which Options are expected.
const TelemetryKey = "telemetry"

// FromViper produces an Options from the given viper environment, reading the
// subtree rooted at key.  If key is empty, TelemetryKey is used.  A missing
// subtree is not an error and yields an Options with everything unset, which
// still honors environment fallbacks.
//
// Decoding is weakly typed, so sampling ratios given as strings in YAML or
// JSON configuration unmarshal correctly.
func FromViper(v *viper.Viper, key string) (*Options, error) {
	if len(key) == 0 {
		key = TelemetryKey
	}

	o := new(Options)
	raw := v.Get(key)
	if raw == nil {
		return o, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           o,
		TagName:          "json",
		WeaklyTypedInput: true,
	})

	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("unable to decode telemetry options: %w", err)
	}

	if err := o.Validate(); err != nil {
		return nil, err
	}

	return o, nil
}
