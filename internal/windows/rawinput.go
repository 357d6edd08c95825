// SPDX-License-Identifier: Unlicense OR MIT

//go:build windows

package windows

import (
	"fmt"
	"unsafe"

	syscall "golang.org/x/sys/windows"

	"github.com/cadmiumgl/cadmium/internal/sysbuf"
)

type RawInputDevice struct {
	UsagePage uint16
	Usage     uint16
	Flags     uint32
	Target    syscall.Handle
}

type RawInputDeviceListEntry struct {
	Device syscall.Handle
	Type   uint32
}

type RawInputHeader struct {
	Type   uint32
	Size   uint32
	Device syscall.Handle
	WParam uintptr
}

const (
	RIM_TYPEMOUSE    = 0
	RIM_TYPEKEYBOARD = 1
	RIM_TYPEHID      = 2

	RIDEV_REMOVE    = 0x00000001
	RIDEV_PAGEONLY  = 0x00000020
	RIDEV_NOLEGACY  = 0x00000030
	RIDEV_INPUTSINK = 0x00000100
	RIDEV_DEVNOTIFY = 0x00002000

	RID_HEADER = 0x10000005
	RID_INPUT  = 0x10000003

	RIDI_PREPARSEDDATA = 0x20000005
	RIDI_DEVICENAME    = 0x20000007
	RIDI_DEVICEINFO    = 0x2000000B

	GIDC_ARRIVAL = 1
	GIDC_REMOVAL = 2
)

var rawInputHeaderSize = uint32(unsafe.Sizeof(RawInputHeader{}))

func RegisterRawInputDevices(devices []RawInputDevice) error {
	r, _, err := _RegisterRawInputDevices.Call(
		uintptr(unsafe.Pointer(&devices[0])),
		uintptr(len(devices)),
		unsafe.Sizeof(devices[0]))
	if r == 0 {
		return callErr("RegisterRawInputDevices", err)
	}
	return nil
}

// GetRawInputData copies the raw input packet referred to by the
// WM_INPUT lParam. The returned slice starts with a RawInputHeader
// followed by the type-specific payload.
func GetRawInputData(hRawInput uintptr) ([]byte, error) {
	buf, err := sysbuf.CollectExact[byte](
		func() (int, error) {
			var size uint32
			r, _, callE := _GetRawInputData.Call(
				hRawInput,
				RID_INPUT,
				0,
				uintptr(unsafe.Pointer(&size)),
				uintptr(rawInputHeaderSize))
			if int32(r) < 0 {
				return 0, callErr("GetRawInputData", callE)
			}
			return int(size), nil
		},
		func(buf []byte) (int, error) {
			size := uint32(len(buf))
			r, _, callE := _GetRawInputData.Call(
				hRawInput,
				RID_INPUT,
				uintptr(unsafe.Pointer(&buf[0])),
				uintptr(unsafe.Pointer(&size)),
				uintptr(rawInputHeaderSize))
			if int32(r) < 0 {
				return 0, callErr("GetRawInputData", callE)
			}
			return int(r), nil
		})
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// GetRawInputDeviceList enumerates the raw input devices attached to
// the system.
func GetRawInputDeviceList() ([]RawInputDeviceListEntry, error) {
	entrySize := unsafe.Sizeof(RawInputDeviceListEntry{})
	return sysbuf.Collect[RawInputDeviceListEntry](
		func() (int, error) {
			var n uint32
			r, _, callE := _GetRawInputDeviceList.Call(
				0,
				uintptr(unsafe.Pointer(&n)),
				entrySize)
			if int32(r) < 0 {
				return 0, callErr("GetRawInputDeviceList", callE)
			}
			return int(n), nil
		},
		func(buf []RawInputDeviceListEntry) (int, error) {
			n := uint32(len(buf))
			r, _, callE := _GetRawInputDeviceList.Call(
				uintptr(unsafe.Pointer(&buf[0])),
				uintptr(unsafe.Pointer(&n)),
				entrySize)
			if int32(r) < 0 {
				return 0, callErr("GetRawInputDeviceList", callE)
			}
			return int(r), nil
		})
}

// GetRawInputDeviceName reports the device interface name of a raw
// input device.
func GetRawInputDeviceName(device syscall.Handle) (string, error) {
	chars, err := sysbuf.Collect[uint16](
		deviceInfoSize(device, RIDI_DEVICENAME),
		deviceInfoFill16(device, RIDI_DEVICENAME))
	if err != nil {
		return "", err
	}
	return syscall.UTF16ToString(chars), nil
}

// GetRawInputPreparsedData copies the driver's preparsed data blob for
// a raw input device. The blob is opaque; it is only meaningful to the
// hid.dll parsing routines.
func GetRawInputPreparsedData(device syscall.Handle) ([]byte, error) {
	return sysbuf.Collect[byte](
		deviceInfoSize(device, RIDI_PREPARSEDDATA),
		func(buf []byte) (int, error) {
			size := uint32(len(buf))
			r, _, callE := _GetRawInputDeviceInfoW.Call(
				uintptr(device),
				RIDI_PREPARSEDDATA,
				uintptr(unsafe.Pointer(&buf[0])),
				uintptr(unsafe.Pointer(&size)))
			if int32(r) < 0 {
				return 0, callErr("GetRawInputDeviceInfoW", callE)
			}
			return int(r), nil
		})
}

func deviceInfoSize(device syscall.Handle, command uint32) func() (int, error) {
	return func() (int, error) {
		var size uint32
		r, _, callE := _GetRawInputDeviceInfoW.Call(
			uintptr(device),
			uintptr(command),
			0,
			uintptr(unsafe.Pointer(&size)))
		if int32(r) < 0 {
			return 0, callErr("GetRawInputDeviceInfoW", callE)
		}
		return int(size), nil
	}
}

func deviceInfoFill16(device syscall.Handle, command uint32) func([]uint16) (int, error) {
	return func(buf []uint16) (int, error) {
		size := uint32(len(buf))
		r, _, callE := _GetRawInputDeviceInfoW.Call(
			uintptr(device),
			uintptr(command),
			uintptr(unsafe.Pointer(&buf[0])),
			uintptr(unsafe.Pointer(&size)))
		if int32(r) < 0 {
			return 0, callErr("GetRawInputDeviceInfoW", callE)
		}
		return int(r), nil
	}
}

// RawInputHeaderFromPacket reads the header from a packet returned by
// GetRawInputData.
func RawInputHeaderFromPacket(packet []byte) (RawInputHeader, error) {
	if uint32(len(packet)) < rawInputHeaderSize {
		return RawInputHeader{}, fmt.Errorf("raw input packet too short: %d bytes", len(packet))
	}
	return *(*RawInputHeader)(unsafe.Pointer(&packet[0])), nil
}

// RawHIDPayload extracts the HID report bytes from a RIM_TYPEHID
// packet. Packets carrying more than one report are rejected; the
// parsing layer expects exactly one report per packet.
func RawHIDPayload(packet []byte) ([]byte, error) {
	hdr, err := RawInputHeaderFromPacket(packet)
	if err != nil {
		return nil, err
	}
	if hdr.Type != RIM_TYPEHID {
		return nil, fmt.Errorf("raw input packet is not a HID packet (type %d)", hdr.Type)
	}
	// RAWHID follows the header: DWORD dwSizeHid, DWORD dwCount,
	// then dwCount reports of dwSizeHid bytes each.
	off := int(rawInputHeaderSize)
	if len(packet) < off+8 {
		return nil, fmt.Errorf("raw HID packet too short: %d bytes", len(packet))
	}
	sizeHid := *(*uint32)(unsafe.Pointer(&packet[off]))
	count := *(*uint32)(unsafe.Pointer(&packet[off+4]))
	if count != 1 {
		// TODO: iterate dwCount reports once a device that batches
		// reports is available to test against.
		return nil, fmt.Errorf("raw HID packet carries %d reports; only single-report packets are supported", count)
	}
	data := packet[off+8:]
	if uint32(len(data)) < sizeHid {
		return nil, fmt.Errorf("raw HID packet truncated: have %d bytes, report is %d", len(data), sizeHid)
	}
	return data[:sizeHid], nil
}
