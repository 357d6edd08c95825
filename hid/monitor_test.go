// SPDX-License-Identifier: Unlicense OR MIT

package hid_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cadmiumgl/cadmium/hid"
)

// fakeSource is a scriptable Source. It counts capability queries so
// tests can assert the caching behavior of the Monitor.
type fakeSource struct {
	caps      map[hid.Device]*hid.DeviceCaps
	capsErr   map[hid.Device]error
	capsCalls int

	pressed    map[hid.UsagePage][]hid.Usage
	pressedErr error
	values     map[hid.Usage]uint32
	valueErr   map[hid.Usage]error

	forgotten []hid.Device
}

func (f *fakeSource) DeviceCaps(d hid.Device) (*hid.DeviceCaps, error) {
	f.capsCalls++
	if err := f.capsErr[d]; err != nil {
		return nil, err
	}
	caps, ok := f.caps[d]
	if !ok {
		return nil, fmt.Errorf("no such device %#x", uintptr(d))
	}
	return caps, nil
}

func (f *fakeSource) Pressed(d hid.Device, page hid.UsagePage, report []byte) ([]hid.Usage, error) {
	if f.pressedErr != nil {
		return nil, f.pressedErr
	}
	return f.pressed[page], nil
}

func (f *fakeSource) Value(d hid.Device, page hid.UsagePage, u hid.Usage, report []byte) (uint32, error) {
	if err := f.valueErr[u]; err != nil {
		return 0, err
	}
	v, ok := f.values[u]
	if !ok {
		return 0, hid.StatusUsageNotFound.Err()
	}
	return v, nil
}

func (f *fakeSource) ScaledValue(d hid.Device, page hid.UsagePage, u hid.Usage, report []byte) (int32, error) {
	return int32(f.values[u]), nil
}

func (f *fakeSource) ValueArray(d hid.Device, page hid.UsagePage, u hid.Usage, byteLen int, report []byte) ([]byte, error) {
	return make([]byte, byteLen), nil
}

func (f *fakeSource) Forget(d hid.Device) {
	f.forgotten = append(f.forgotten, d)
}

func gamepadCaps() *hid.DeviceCaps {
	return &hid.DeviceCaps{
		Usage:          hid.UsageGamepad,
		UsagePage:      hid.PageGenericDesktop,
		InputReportLen: 8,
		Buttons: []hid.ButtonCaps{
			{UsagePage: hid.PageButton, Usages: hid.UsageRange{Min: 1, Max: 12}},
		},
		Values: []hid.ValueCaps{
			{
				UsagePage:   hid.PageGenericDesktop,
				ReportCount: 1,
				LogicalMax:  255,
				Usages:      hid.SingleUsage{Usage: hid.UsageX},
			},
			{
				UsagePage:   hid.PageGenericDesktop,
				ReportCount: 1,
				LogicalMax:  255,
				Usages:      hid.SingleUsage{Usage: hid.UsageY},
			},
		},
	}
}

func TestMonitorAttachDetach(t *testing.T) {
	const dev = hid.Device(0xbeef)
	src := &fakeSource{caps: map[hid.Device]*hid.DeviceCaps{dev: gamepadCaps()}}
	m := hid.NewMonitor(src, zaptest.NewLogger(t))

	caps, err := m.Attach(dev)
	require.NoError(t, err)
	require.NotNil(t, caps)
	assert.Equal(t, hid.UsageGamepad, caps.Usage)
	assert.Equal(t, 1, src.capsCalls)

	got, ok := m.Caps(dev)
	require.True(t, ok)
	assert.Same(t, caps, got)
	assert.Equal(t, []hid.Device{dev}, m.Devices())

	m.Detach(dev)
	_, ok = m.Caps(dev)
	assert.False(t, ok)
	assert.Equal(t, []hid.Device{dev}, src.forgotten)

	// A reattached device is queried again, not served from a stale
	// cache entry.
	_, err = m.Attach(dev)
	require.NoError(t, err)
	assert.Equal(t, 2, src.capsCalls)
}

func TestMonitorDetachUnknown(t *testing.T) {
	src := &fakeSource{}
	m := hid.NewMonitor(src, zaptest.NewLogger(t))
	m.Detach(hid.Device(1))
	assert.Empty(t, src.forgotten)
}

func TestMonitorFailedAttachNotTracked(t *testing.T) {
	const dev = hid.Device(7)
	src := &fakeSource{
		capsErr: map[hid.Device]error{dev: hid.StatusInvalidPreparsedData.Err()},
	}
	m := hid.NewMonitor(src, zaptest.NewLogger(t))

	_, err := m.Attach(dev)
	require.Error(t, err)
	require.ErrorIs(t, err, hid.StatusInvalidPreparsedData)

	_, ok := m.Caps(dev)
	assert.False(t, ok)
	assert.Empty(t, m.Devices())
}

func TestMonitorDecodeReport(t *testing.T) {
	const dev = hid.Device(3)
	src := &fakeSource{
		caps: map[hid.Device]*hid.DeviceCaps{dev: gamepadCaps()},
		pressed: map[hid.UsagePage][]hid.Usage{
			hid.PageButton: {2, 5},
		},
		values: map[hid.Usage]uint32{
			hid.UsageX: 128,
			hid.UsageY: 255,
		},
	}
	m := hid.NewMonitor(src, zaptest.NewLogger(t))
	_, err := m.Attach(dev)
	require.NoError(t, err)

	report, err := m.DecodeReport(dev, make([]byte, 8))
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, dev, report.Device)
	assert.Equal(t, []hid.Usage{2, 5}, report.Pressed)
	assert.Equal(t, []hid.ReportValue{
		{UsagePage: hid.PageGenericDesktop, Usage: hid.UsageX, Raw: 128},
		{UsagePage: hid.PageGenericDesktop, Usage: hid.UsageY, Raw: 255},
	}, report.Values)
}

func TestMonitorDecodeReportLengthMismatch(t *testing.T) {
	const dev = hid.Device(3)
	src := &fakeSource{caps: map[hid.Device]*hid.DeviceCaps{dev: gamepadCaps()}}
	m := hid.NewMonitor(src, zaptest.NewLogger(t))
	_, err := m.Attach(dev)
	require.NoError(t, err)

	_, err = m.DecodeReport(dev, make([]byte, 5))
	require.Error(t, err)
}

func TestMonitorDecodeReportUntracked(t *testing.T) {
	m := hid.NewMonitor(&fakeSource{}, zaptest.NewLogger(t))
	report, err := m.DecodeReport(hid.Device(9), make([]byte, 8))
	require.NoError(t, err)
	assert.Nil(t, report)
}

func TestMonitorDecodeSkipsForeignReportIDs(t *testing.T) {
	const dev = hid.Device(3)
	src := &fakeSource{
		caps: map[hid.Device]*hid.DeviceCaps{dev: gamepadCaps()},
		values: map[hid.Usage]uint32{
			hid.UsageY: 10,
		},
		valueErr: map[hid.Usage]error{
			hid.UsageX: fmt.Errorf("HidP_GetUsageValue: %w", hid.StatusIncompatibleReportID),
		},
	}
	m := hid.NewMonitor(src, zaptest.NewLogger(t))
	_, err := m.Attach(dev)
	require.NoError(t, err)

	report, err := m.DecodeReport(dev, make([]byte, 8))
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, []hid.ReportValue{
		{UsagePage: hid.PageGenericDesktop, Usage: hid.UsageY, Raw: 10},
	}, report.Values)
}

func TestMonitorDecodeFailsOnMalformedParse(t *testing.T) {
	const dev = hid.Device(3)
	src := &fakeSource{
		caps:       map[hid.Device]*hid.DeviceCaps{dev: gamepadCaps()},
		pressedErr: errors.New("parser exploded"),
	}
	m := hid.NewMonitor(src, zaptest.NewLogger(t))
	_, err := m.Attach(dev)
	require.NoError(t, err)

	_, err = m.DecodeReport(dev, make([]byte, 8))
	require.Error(t, err)
}

func TestMonitorClose(t *testing.T) {
	src := &fakeSource{caps: map[hid.Device]*hid.DeviceCaps{
		1: gamepadCaps(),
		2: gamepadCaps(),
	}}
	m := hid.NewMonitor(src, zaptest.NewLogger(t))
	_, err := m.Attach(1)
	require.NoError(t, err)
	_, err = m.Attach(2)
	require.NoError(t, err)

	m.Close()
	assert.Empty(t, m.Devices())
	assert.Len(t, src.forgotten, 2)
}
