// SPDX-License-Identifier: Unlicense OR MIT

package hid

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Device identifies an attached device. On Windows it is the raw
// input device handle.
type Device uintptr

// Source performs the platform-specific capability queries and report
// parsing. Implementations own the per-device parser state; Forget
// releases it.
type Source interface {
	// DeviceCaps queries and parses the capabilities of d.
	DeviceCaps(d Device) (*DeviceCaps, error)
	// Pressed lists the usages on page currently asserted in report.
	Pressed(d Device, page UsagePage, report []byte) ([]Usage, error)
	// Value extracts the raw value of a scalar control from report.
	Value(d Device, page UsagePage, u Usage, report []byte) (uint32, error)
	// ScaledValue extracts a control value mapped to its physical
	// range.
	ScaledValue(d Device, page UsagePage, u Usage, report []byte) (int32, error)
	// ValueArray extracts the packed bytes of a control with a
	// report count above one.
	ValueArray(d Device, page UsagePage, u Usage, byteLen int, report []byte) ([]byte, error)
	// Forget releases any parser state held for d.
	Forget(d Device)
}

// A ReportValue is one scalar control sampled from a report.
type ReportValue struct {
	UsagePage UsagePage
	Usage     Usage
	Raw       uint32
}

// Report is a decoded input report.
type Report struct {
	Device  Device
	Pressed []Usage
	Values  []ReportValue
}

// Monitor tracks the capabilities of attached devices and decodes
// their input reports. Capabilities are queried once per attachment;
// a detach drops them, and a reattach queries them again.
//
// All methods are safe for concurrent use.
type Monitor struct {
	src Source
	log *zap.Logger

	mu      sync.Mutex
	devices map[Device]*DeviceCaps
}

// NewMonitor returns a Monitor that resolves devices through src.
// A nil logger disables logging.
func NewMonitor(src Source, log *zap.Logger) *Monitor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Monitor{
		src:     src,
		log:     log,
		devices: make(map[Device]*DeviceCaps),
	}
}

// Attach queries and caches the capabilities of d. A device that fails
// the query is not tracked; its reports will be ignored until it is
// attached again.
func (m *Monitor) Attach(d Device) (*DeviceCaps, error) {
	caps, err := m.src.DeviceCaps(d)
	if err != nil {
		m.log.Warn("ignoring device with unreadable capabilities",
			zap.Uintptr("device", uintptr(d)),
			zap.Error(err))
		return nil, fmt.Errorf("hid: attach device %#x: %w", uintptr(d), err)
	}
	m.mu.Lock()
	m.devices[d] = caps
	m.mu.Unlock()
	m.log.Info("device attached",
		zap.Uintptr("device", uintptr(d)),
		zap.Uint16("usagePage", uint16(caps.UsagePage)),
		zap.Uint16("usage", uint16(caps.Usage)),
		zap.String("product", caps.Strings.Product))
	return caps, nil
}

// Detach drops the cached capabilities of d and releases the source's
// parser state. Detaching an unknown device is a no-op.
func (m *Monitor) Detach(d Device) {
	m.mu.Lock()
	_, known := m.devices[d]
	delete(m.devices, d)
	m.mu.Unlock()
	if known {
		m.src.Forget(d)
		m.log.Info("device detached", zap.Uintptr("device", uintptr(d)))
	}
}

// Caps reports the cached capabilities of d.
func (m *Monitor) Caps(d Device) (*DeviceCaps, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	caps, ok := m.devices[d]
	return caps, ok
}

// Devices lists the tracked devices in unspecified order.
func (m *Monitor) Devices() []Device {
	m.mu.Lock()
	defer m.mu.Unlock()
	ds := make([]Device, 0, len(m.devices))
	for d := range m.devices {
		ds = append(ds, d)
	}
	return ds
}

// Close drops all tracked devices.
func (m *Monitor) Close() {
	m.mu.Lock()
	ds := make([]Device, 0, len(m.devices))
	for d := range m.devices {
		ds = append(ds, d)
	}
	m.devices = make(map[Device]*DeviceCaps)
	m.mu.Unlock()
	for _, d := range ds {
		m.src.Forget(d)
	}
}

// DecodeReport parses an input report from d into pressed buttons and
// sampled values. Reports from untracked devices are dropped with a
// nil Report. Controls the report does not carry are skipped; a report
// for a different report ID than a control's yields no sample for it.
func (m *Monitor) DecodeReport(d Device, report []byte) (*Report, error) {
	caps, ok := m.Caps(d)
	if !ok {
		m.log.Debug("dropping report from untracked device",
			zap.Uintptr("device", uintptr(d)))
		return nil, nil
	}
	if len(report) != caps.InputReportLen {
		return nil, fmt.Errorf("hid: device %#x: report is %d bytes, expected %d",
			uintptr(d), len(report), caps.InputReportLen)
	}
	out := &Report{Device: d}
	for _, page := range caps.ButtonPages() {
		pressed, err := m.src.Pressed(d, page, report)
		if err != nil {
			if skippable(err) {
				m.log.Debug("skipping button page",
					zap.Uintptr("device", uintptr(d)),
					zap.Uint16("usagePage", uint16(page)),
					zap.Error(err))
				continue
			}
			return nil, err
		}
		out.Pressed = append(out.Pressed, pressed...)
	}
	for _, vc := range caps.Values {
		// Value arrays and usage ranges need per-index extraction;
		// only plain single-usage scalars are sampled here.
		su, ok := vc.Usages.(SingleUsage)
		if !ok || vc.ReportCount != 1 {
			continue
		}
		raw, err := m.src.Value(d, vc.UsagePage, su.Usage, report)
		if err != nil {
			if skippable(err) {
				m.log.Debug("skipping value",
					zap.Uintptr("device", uintptr(d)),
					zap.Uint16("usagePage", uint16(vc.UsagePage)),
					zap.Uint16("usage", uint16(su.Usage)),
					zap.Error(err))
				continue
			}
			return nil, err
		}
		out.Values = append(out.Values, ReportValue{
			UsagePage: vc.UsagePage,
			Usage:     su.Usage,
			Raw:       raw,
		})
	}
	return out, nil
}

// skippable reports whether a parse failure concerns a control absent
// from this particular report rather than a malformed report.
func skippable(err error) bool {
	var status Status
	if !errors.As(err, &status) {
		return false
	}
	switch status {
	case StatusIncompatibleReportID, StatusUsageNotFound:
		return true
	}
	return false
}
