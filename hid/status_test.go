// SPDX-License-Identifier: Unlicense OR MIT

package hid_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadmiumgl/cadmium/hid"
)

func TestStatusErr(t *testing.T) {
	require.NoError(t, hid.StatusSuccess.Err())
	require.True(t, hid.StatusSuccess.Ok())

	err := hid.StatusUsageNotFound.Err()
	require.Error(t, err)
	var status hid.Status
	require.True(t, errors.As(err, &status))
	assert.Equal(t, hid.StatusUsageNotFound, status)
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "hid: usage not found (0xC0110004)", hid.StatusUsageNotFound.Error())
	assert.Equal(t, "hid: incompatible report ID (0xC011000A)", hid.StatusIncompatibleReportID.Error())
}

func TestStatusUnknownFallback(t *testing.T) {
	s := hid.Status(0xC011DEAD)
	assert.Equal(t, "hid: unknown parser status 0xC011DEAD", s.Error())
}

func TestStatusWrapped(t *testing.T) {
	err := fmt.Errorf("HidP_GetUsages: %w", hid.StatusInvalidReportLength)
	var status hid.Status
	require.True(t, errors.As(err, &status))
	assert.Equal(t, hid.StatusInvalidReportLength, status)
}
