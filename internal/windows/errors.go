// SPDX-License-Identifier: Unlicense OR MIT

//go:build windows

package windows

import (
	"fmt"
	"unsafe"

	syscall "golang.org/x/sys/windows"
)

const (
	_FORMAT_MESSAGE_ALLOCATE_BUFFER = 0x00000100
	_FORMAT_MESSAGE_FROM_SYSTEM     = 0x00001000
	_FORMAT_MESSAGE_IGNORE_INSERTS  = 0x00000200
)

// ErrorText renders a system error code as the localized message text.
// The empty string is returned when the system has no message for the
// code; callers supply their own fallback.
func ErrorText(code uint32) string {
	var buf *uint16
	n, _, _ := _FormatMessageW.Call(
		_FORMAT_MESSAGE_ALLOCATE_BUFFER|_FORMAT_MESSAGE_FROM_SYSTEM|_FORMAT_MESSAGE_IGNORE_INSERTS,
		0,
		uintptr(code),
		0,
		uintptr(unsafe.Pointer(&buf)),
		0,
		0)
	if n == 0 || buf == nil {
		return ""
	}
	defer _LocalFree.Call(uintptr(unsafe.Pointer(buf)))
	s := syscall.UTF16ToString(unsafe.Slice(buf, n))
	// The system terminates messages with "\r\n".
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

// LastErrorText formats the calling thread's last error code. Codes
// the system has no text for render as "unknown error".
func LastErrorText() string {
	var code uint32
	if errno, ok := syscall.GetLastError().(syscall.Errno); ok {
		code = uint32(errno)
	}
	if s := ErrorText(code); s != "" {
		return s
	}
	return fmt.Sprintf("unknown error (0x%08X)", code)
}
