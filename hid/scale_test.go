// SPDX-License-Identifier: Unlicense OR MIT

package hid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadmiumgl/cadmium/hid"
)

func TestNormalize(t *testing.T) {
	vc := hid.ValueCaps{LogicalMin: 0, LogicalMax: 255}
	for raw, want := range map[uint32]float32{
		0:   0,
		255: 1,
		51:  0.2,
	} {
		got, err := hid.Normalize(raw, vc)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-6)
	}
}

func TestNormalizeClampsOverrange(t *testing.T) {
	vc := hid.ValueCaps{LogicalMin: 0, LogicalMax: 100}
	got, err := hid.Normalize(130, vc)
	require.NoError(t, err)
	assert.Equal(t, float32(1), got)
}

func TestNormalizeNonZeroLogicalMin(t *testing.T) {
	vc := hid.ValueCaps{LogicalMin: -127, LogicalMax: 127}
	_, err := hid.Normalize(64, vc)
	require.ErrorIs(t, err, hid.ErrNonZeroLogicalMin)
}

func TestNormalizeDegenerateRange(t *testing.T) {
	_, err := hid.Normalize(1, hid.ValueCaps{LogicalMin: 0, LogicalMax: 0})
	require.Error(t, err)
}

func TestCentered(t *testing.T) {
	vc := hid.ValueCaps{LogicalMin: 0, LogicalMax: 255}
	mid, err := hid.Centered(128, vc)
	require.NoError(t, err)
	assert.InDelta(t, 0, mid, 0.01)

	lo, err := hid.Centered(0, vc)
	require.NoError(t, err)
	assert.Equal(t, float32(-1), lo)

	hi, err := hid.Centered(255, vc)
	require.NoError(t, err)
	assert.Equal(t, float32(1), hi)
}
