// SPDX-License-Identifier: Unlicense OR MIT

//go:build windows

// Package hid binds the hid.dll report parsing routines. The structure
// mirrors match the native layouts byte for byte; parsing status codes
// are returned as raw NTSTATUS values for the portable layer to map.
package hid

import (
	"unsafe"

	syscall "golang.org/x/sys/windows"
)

// Report type selector, matching the native HIDP_REPORT_TYPE values.
const (
	ReportInput   = 0
	ReportOutput  = 1
	ReportFeature = 2
)

// Caps mirrors HIDP_CAPS.
type Caps struct {
	Usage                     uint16
	UsagePage                 uint16
	InputReportByteLength     uint16
	OutputReportByteLength    uint16
	FeatureReportByteLength   uint16
	Reserved                  [17]uint16
	NumberLinkCollectionNodes uint16
	NumberInputButtonCaps     uint16
	NumberInputValueCaps      uint16
	NumberInputDataIndices    uint16
	NumberOutputButtonCaps    uint16
	NumberOutputValueCaps     uint16
	NumberOutputDataIndices   uint16
	NumberFeatureButtonCaps   uint16
	NumberFeatureValueCaps    uint16
	NumberFeatureDataIndices  uint16
}

// ButtonCaps mirrors HIDP_BUTTON_CAPS. The trailing union is kept as
// raw bytes; IsRange selects its interpretation.
type ButtonCaps struct {
	UsagePage         uint16
	ReportID          byte
	IsAlias           byte
	BitField          uint16
	LinkCollection    uint16
	LinkUsage         uint16
	LinkUsagePage     uint16
	IsRange           byte
	IsStringRange     byte
	IsDesignatorRange byte
	IsAbsolute        byte
	ReportCount       uint16
	Reserved2         uint16
	Reserved          [9]uint32
	Union             [16]byte
}

// ValueCaps mirrors HIDP_VALUE_CAPS.
type ValueCaps struct {
	UsagePage         uint16
	ReportID          byte
	IsAlias           byte
	BitField          uint16
	LinkCollection    uint16
	LinkUsage         uint16
	LinkUsagePage     uint16
	IsRange           byte
	IsStringRange     byte
	IsDesignatorRange byte
	IsAbsolute        byte
	HasNull           byte
	Reserved          byte
	BitSize           uint16
	ReportCount       uint16
	Reserved2         [5]uint16
	UnitsExp          uint32
	Units             uint32
	LogicalMin        int32
	LogicalMax        int32
	PhysicalMin       int32
	PhysicalMax       int32
	Union             [16]byte
}

var (
	hidDLL                      = syscall.NewLazySystemDLL("hid.dll")
	_HidP_GetCaps               = hidDLL.NewProc("HidP_GetCaps")
	_HidP_GetButtonCaps         = hidDLL.NewProc("HidP_GetButtonCaps")
	_HidP_GetValueCaps          = hidDLL.NewProc("HidP_GetValueCaps")
	_HidP_MaxUsageListLength    = hidDLL.NewProc("HidP_MaxUsageListLength")
	_HidP_GetUsages             = hidDLL.NewProc("HidP_GetUsages")
	_HidP_GetUsageValue         = hidDLL.NewProc("HidP_GetUsageValue")
	_HidP_GetScaledUsageValue   = hidDLL.NewProc("HidP_GetScaledUsageValue")
	_HidP_GetUsageValueArray    = hidDLL.NewProc("HidP_GetUsageValueArray")
	_HidD_GetManufacturerString = hidDLL.NewProc("HidD_GetManufacturerString")
	_HidD_GetProductString      = hidDLL.NewProc("HidD_GetProductString")
	_HidD_GetSerialNumberString = hidDLL.NewProc("HidD_GetSerialNumberString")
	_HidD_GetIndexedString      = hidDLL.NewProc("HidD_GetIndexedString")
	_HidD_GetHidGuid            = hidDLL.NewProc("HidD_GetHidGuid")
)

// GetCaps parses the top-level collection capabilities out of a
// preparsed data blob.
func GetCaps(preparsed []byte) (Caps, uint32) {
	var caps Caps
	status, _, _ := _HidP_GetCaps.Call(
		uintptr(unsafe.Pointer(&preparsed[0])),
		uintptr(unsafe.Pointer(&caps)))
	return caps, uint32(status)
}

// GetButtonCaps fills buttonCaps with the button capability records of
// the given report type and reports how many records were written.
func GetButtonCaps(reportType int, buttonCaps []ButtonCaps, preparsed []byte) (int, uint32) {
	n := uint16(len(buttonCaps))
	var capsPtr *ButtonCaps
	if n > 0 {
		capsPtr = &buttonCaps[0]
	}
	status, _, _ := _HidP_GetButtonCaps.Call(
		uintptr(reportType),
		uintptr(unsafe.Pointer(capsPtr)),
		uintptr(unsafe.Pointer(&n)),
		uintptr(unsafe.Pointer(&preparsed[0])))
	return int(n), uint32(status)
}

// GetValueCaps is the value capability analogue of GetButtonCaps.
func GetValueCaps(reportType int, valueCaps []ValueCaps, preparsed []byte) (int, uint32) {
	n := uint16(len(valueCaps))
	var capsPtr *ValueCaps
	if n > 0 {
		capsPtr = &valueCaps[0]
	}
	status, _, _ := _HidP_GetValueCaps.Call(
		uintptr(reportType),
		uintptr(unsafe.Pointer(capsPtr)),
		uintptr(unsafe.Pointer(&n)),
		uintptr(unsafe.Pointer(&preparsed[0])))
	return int(n), uint32(status)
}

// MaxUsageListLength reports the worst-case number of usages a single
// report of the given type can assert on a usage page. Zero means the
// preparsed data is invalid.
func MaxUsageListLength(reportType int, usagePage uint16, preparsed []byte) int {
	n, _, _ := _HidP_MaxUsageListLength.Call(
		uintptr(reportType),
		uintptr(usagePage),
		uintptr(unsafe.Pointer(&preparsed[0])))
	return int(n)
}

// GetUsages fills usageList with the usages currently asserted in
// report and reports how many were written.
func GetUsages(reportType int, usagePage uint16, usageList []uint16, preparsed, report []byte) (int, uint32) {
	n := uint32(len(usageList))
	status, _, _ := _HidP_GetUsages.Call(
		uintptr(reportType),
		uintptr(usagePage),
		0,
		uintptr(unsafe.Pointer(&usageList[0])),
		uintptr(unsafe.Pointer(&n)),
		uintptr(unsafe.Pointer(&preparsed[0])),
		uintptr(unsafe.Pointer(&report[0])),
		uintptr(len(report)))
	return int(n), uint32(status)
}

// GetUsageValue extracts the raw control value for a usage from report.
func GetUsageValue(reportType int, usagePage, usage uint16, preparsed, report []byte) (uint32, uint32) {
	var value uint32
	status, _, _ := _HidP_GetUsageValue.Call(
		uintptr(reportType),
		uintptr(usagePage),
		0,
		uintptr(usage),
		uintptr(unsafe.Pointer(&value)),
		uintptr(unsafe.Pointer(&preparsed[0])),
		uintptr(unsafe.Pointer(&report[0])),
		uintptr(len(report)))
	return value, uint32(status)
}

// GetScaledUsageValue extracts a control value mapped to its physical
// range by the driver.
func GetScaledUsageValue(reportType int, usagePage, usage uint16, preparsed, report []byte) (int32, uint32) {
	var value int32
	status, _, _ := _HidP_GetScaledUsageValue.Call(
		uintptr(reportType),
		uintptr(usagePage),
		0,
		uintptr(usage),
		uintptr(unsafe.Pointer(&value)),
		uintptr(unsafe.Pointer(&preparsed[0])),
		uintptr(unsafe.Pointer(&report[0])),
		uintptr(len(report)))
	return value, uint32(status)
}

// GetUsageValueArray extracts the packed values of a multi-count usage
// into dst.
func GetUsageValueArray(reportType int, usagePage, usage uint16, dst, preparsed, report []byte) uint32 {
	status, _, _ := _HidP_GetUsageValueArray.Call(
		uintptr(reportType),
		uintptr(usagePage),
		0,
		uintptr(usage),
		uintptr(unsafe.Pointer(&dst[0])),
		uintptr(len(dst)),
		uintptr(unsafe.Pointer(&preparsed[0])),
		uintptr(unsafe.Pointer(&report[0])),
		uintptr(len(report)))
	return uint32(status)
}

// OpenDevice opens a device interface path for the HidD_ query
// routines. No read or write access is requested, so the device stays
// usable by its owning driver.
func OpenDevice(path string) (syscall.Handle, error) {
	p, err := syscall.UTF16PtrFromString(path)
	if err != nil {
		return 0, err
	}
	return syscall.CreateFile(p, 0,
		syscall.FILE_SHARE_READ|syscall.FILE_SHARE_WRITE,
		nil, syscall.OPEN_EXISTING, 0, 0)
}

// The HidD_ string routines are capped at 4093 bytes by the stack;
// 256 characters covers every string descriptor in practice.
const deviceStringChars = 256

func deviceString(proc *syscall.LazyProc, device syscall.Handle) (string, bool) {
	buf := make([]uint16, deviceStringChars)
	ok, _, _ := proc.Call(
		uintptr(device),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)*2))
	if ok == 0 {
		return "", false
	}
	return syscall.UTF16ToString(buf), true
}

// ManufacturerString reports the manufacturer string descriptor, if
// the device provides one.
func ManufacturerString(device syscall.Handle) (string, bool) {
	return deviceString(_HidD_GetManufacturerString, device)
}

// ProductString reports the product string descriptor.
func ProductString(device syscall.Handle) (string, bool) {
	return deviceString(_HidD_GetProductString, device)
}

// SerialNumberString reports the serial number string descriptor.
func SerialNumberString(device syscall.Handle) (string, bool) {
	return deviceString(_HidD_GetSerialNumberString, device)
}

// IndexedString reports the string descriptor at index.
func IndexedString(device syscall.Handle, index uint32) (string, bool) {
	buf := make([]uint16, deviceStringChars)
	ok, _, _ := _HidD_GetIndexedString.Call(
		uintptr(device),
		uintptr(index),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)*2))
	if ok == 0 {
		return "", false
	}
	return syscall.UTF16ToString(buf), true
}

// HidGuid reports the device interface class GUID for HID devices.
func HidGuid() syscall.GUID {
	var guid syscall.GUID
	_HidD_GetHidGuid.Call(uintptr(unsafe.Pointer(&guid)))
	return guid
}
