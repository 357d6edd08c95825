// SPDX-License-Identifier: Unlicense OR MIT

//go:build windows

package hid

import (
	"encoding/binary"
	"fmt"
	"sync"

	syscall "golang.org/x/sys/windows"

	ihid "github.com/cadmiumgl/cadmium/internal/hid"
	win "github.com/cadmiumgl/cadmium/internal/windows"
)

// nativeSource parses reports through the system HID parser. It holds
// the preparsed data blob of each device it has seen; the blob is the
// parser's working state and must outlive every parse call for the
// device.
type nativeSource struct {
	mu        sync.Mutex
	preparsed map[Device][]byte
}

// NewNativeSource returns a Source backed by the system HID parser.
func NewNativeSource() Source {
	return &nativeSource{preparsed: make(map[Device][]byte)}
}

func (s *nativeSource) preparsedFor(d Device) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if blob, ok := s.preparsed[d]; ok {
		return blob, nil
	}
	blob, err := win.GetRawInputPreparsedData(syscall.Handle(d))
	if err != nil {
		return nil, err
	}
	if len(blob) == 0 {
		return nil, fmt.Errorf("hid: device %#x has no preparsed data", uintptr(d))
	}
	s.preparsed[d] = blob
	return blob, nil
}

func (s *nativeSource) Forget(d Device) {
	s.mu.Lock()
	delete(s.preparsed, d)
	s.mu.Unlock()
}

func (s *nativeSource) DeviceCaps(d Device) (*DeviceCaps, error) {
	blob, err := s.preparsedFor(d)
	if err != nil {
		return nil, err
	}
	raw, status := ihid.GetCaps(blob)
	if err := Status(status).Err(); err != nil {
		return nil, fmt.Errorf("HidP_GetCaps: %w", err)
	}
	caps := &DeviceCaps{
		Usage:            Usage(raw.Usage),
		UsagePage:        UsagePage(raw.UsagePage),
		InputReportLen:   int(raw.InputReportByteLength),
		OutputReportLen:  int(raw.OutputReportByteLength),
		FeatureReportLen: int(raw.FeatureReportByteLength),
	}
	if n := int(raw.NumberInputButtonCaps); n > 0 {
		bcs := make([]ihid.ButtonCaps, n)
		filled, status := ihid.GetButtonCaps(ihid.ReportInput, bcs, blob)
		if err := Status(status).Err(); err != nil {
			return nil, fmt.Errorf("HidP_GetButtonCaps: %w", err)
		}
		for _, bc := range bcs[:filled] {
			caps.Buttons = append(caps.Buttons, ButtonCaps{
				UsagePage:  UsagePage(bc.UsagePage),
				ReportID:   bc.ReportID,
				IsAbsolute: bc.IsAbsolute != 0,
				Usages:     decodeUsageSet(bc.IsRange != 0, bc.Union),
			})
		}
	}
	if n := int(raw.NumberInputValueCaps); n > 0 {
		vcs := make([]ihid.ValueCaps, n)
		filled, status := ihid.GetValueCaps(ihid.ReportInput, vcs, blob)
		if err := Status(status).Err(); err != nil {
			return nil, fmt.Errorf("HidP_GetValueCaps: %w", err)
		}
		for _, vc := range vcs[:filled] {
			caps.Values = append(caps.Values, ValueCaps{
				UsagePage:   UsagePage(vc.UsagePage),
				ReportID:    vc.ReportID,
				IsAbsolute:  vc.IsAbsolute != 0,
				HasNull:     vc.HasNull != 0,
				BitSize:     int(vc.BitSize),
				ReportCount: int(vc.ReportCount),
				Units:       vc.Units,
				UnitsExp:    int32(vc.UnitsExp),
				LogicalMin:  vc.LogicalMin,
				LogicalMax:  vc.LogicalMax,
				PhysicalMin: vc.PhysicalMin,
				PhysicalMax: vc.PhysicalMax,
				Usages:      decodeUsageSet(vc.IsRange != 0, vc.Union),
			})
		}
	}
	if name, err := win.GetRawInputDeviceName(syscall.Handle(d)); err == nil {
		caps.Name = name
		caps.Strings = deviceStrings(name)
	}
	return caps, nil
}

// decodeUsageSet interprets the capability union. The native record
// overlays a range and a single-usage struct; IsRange selects which.
func decodeUsageSet(isRange bool, union [16]byte) UsageSet {
	if isRange {
		return UsageRange{
			Min:          Usage(binary.LittleEndian.Uint16(union[0:])),
			Max:          Usage(binary.LittleEndian.Uint16(union[2:])),
			DataIndexMin: binary.LittleEndian.Uint16(union[12:]),
			DataIndexMax: binary.LittleEndian.Uint16(union[14:]),
		}
	}
	return SingleUsage{
		Usage:     Usage(binary.LittleEndian.Uint16(union[0:])),
		DataIndex: binary.LittleEndian.Uint16(union[12:]),
	}
}

// deviceStrings opens the device interface to read its string
// descriptors. Missing descriptors are left empty; many devices
// provide none.
func deviceStrings(path string) DeviceStrings {
	var strs DeviceStrings
	h, err := ihid.OpenDevice(path)
	if err != nil {
		return strs
	}
	defer syscall.CloseHandle(h)
	strs.Manufacturer, _ = ihid.ManufacturerString(h)
	strs.Product, _ = ihid.ProductString(h)
	strs.SerialNumber, _ = ihid.SerialNumberString(h)
	return strs
}

// DeviceIndexedString reads the string descriptor at index from the
// device interface at path.
func DeviceIndexedString(path string, index int) (string, bool) {
	h, err := ihid.OpenDevice(path)
	if err != nil {
		return "", false
	}
	defer syscall.CloseHandle(h)
	return ihid.IndexedString(h, uint32(index))
}

func (s *nativeSource) Pressed(d Device, page UsagePage, report []byte) ([]Usage, error) {
	blob, err := s.preparsedFor(d)
	if err != nil {
		return nil, err
	}
	maxUsages := ihid.MaxUsageListLength(ihid.ReportInput, uint16(page), blob)
	if maxUsages == 0 {
		return nil, nil
	}
	list := make([]uint16, maxUsages)
	n, status := ihid.GetUsages(ihid.ReportInput, uint16(page), list, blob, report)
	if err := Status(status).Err(); err != nil {
		return nil, fmt.Errorf("HidP_GetUsages: %w", err)
	}
	pressed := make([]Usage, n)
	for i, u := range list[:n] {
		pressed[i] = Usage(u)
	}
	return pressed, nil
}

func (s *nativeSource) Value(d Device, page UsagePage, u Usage, report []byte) (uint32, error) {
	blob, err := s.preparsedFor(d)
	if err != nil {
		return 0, err
	}
	v, status := ihid.GetUsageValue(ihid.ReportInput, uint16(page), uint16(u), blob, report)
	if err := Status(status).Err(); err != nil {
		return 0, fmt.Errorf("HidP_GetUsageValue: %w", err)
	}
	return v, nil
}

func (s *nativeSource) ValueArray(d Device, page UsagePage, u Usage, byteLen int, report []byte) ([]byte, error) {
	blob, err := s.preparsedFor(d)
	if err != nil {
		return nil, err
	}
	dst := make([]byte, byteLen)
	status := ihid.GetUsageValueArray(ihid.ReportInput, uint16(page), uint16(u), dst, blob, report)
	if err := Status(status).Err(); err != nil {
		return nil, fmt.Errorf("HidP_GetUsageValueArray: %w", err)
	}
	return dst, nil
}

func (s *nativeSource) ScaledValue(d Device, page UsagePage, u Usage, report []byte) (int32, error) {
	blob, err := s.preparsedFor(d)
	if err != nil {
		return 0, err
	}
	v, status := ihid.GetScaledUsageValue(ihid.ReportInput, uint16(page), uint16(u), blob, report)
	if err := Status(status).Err(); err != nil {
		return 0, fmt.Errorf("HidP_GetScaledUsageValue: %w", err)
	}
	return v, nil
}
