// SPDX-License-Identifier: Unlicense OR MIT

//go:build windows

// Package windows implements the Win32 bindings used by the rest of
// the module. Wrappers keep the native calling conventions, structure
// layouts and sentinel values exactly as documented; failures carry
// the native error code as a wrapped windows.Errno.
package windows

import (
	"fmt"
	"unsafe"

	syscall "golang.org/x/sys/windows"
)

type WndClassEx struct {
	CbSize        uint32
	Style         uint32
	LpfnWndProc   uintptr
	CbClsExtra    int32
	CbWndExtra    int32
	HInstance     syscall.Handle
	HIcon         syscall.Handle
	HCursor       syscall.Handle
	HbrBackground syscall.Handle
	LpszMenuName  *uint16
	LpszClassName *uint16
	HIconSm       syscall.Handle
}

type Msg struct {
	Hwnd     syscall.Handle
	Message  uint32
	WParam   uintptr
	LParam   uintptr
	Time     uint32
	Pt       Point
	LPrivate uint32
}

type Point struct {
	X, Y int32
}

type Rect struct {
	Left, Top, Right, Bottom int32
}

const (
	CS_HREDRAW = 0x0002
	CS_VREDRAW = 0x0001
	CS_OWNDC   = 0x0020

	CW_USEDEFAULT = -2147483648

	COLOR_WINDOW = 5

	IDC_APPSTARTING = 32650
	IDC_ARROW       = 32512
	IDC_CROSS       = 32515
	IDC_HAND        = 32649
	IDC_HELP        = 32651
	IDC_IBEAM       = 32513
	IDC_NO          = 32648
	IDC_SIZEALL     = 32646
	IDC_SIZENESW    = 32643
	IDC_SIZENS      = 32645
	IDC_SIZENWSE    = 32642
	IDC_SIZEWE      = 32644
	IDC_UPARROW     = 32516
	IDC_WAIT        = 32514

	SW_HIDE        = 0
	SW_SHOWNORMAL  = 1
	SW_SHOW        = 5
	SW_SHOWDEFAULT = 10

	SIZE_RESTORED  = 0
	SIZE_MINIMIZED = 1
	SIZE_MAXIMIZED = 2

	WM_CREATE              = 0x0001
	WM_DESTROY             = 0x0002
	WM_SIZE                = 0x0005
	WM_PAINT               = 0x000F
	WM_CLOSE               = 0x0010
	WM_QUIT                = 0x0012
	WM_INPUT_DEVICE_CHANGE = 0x00FE
	WM_INPUT               = 0x00FF
	WM_USER                = 0x0400

	WS_BORDER           = 0x00800000
	WS_CAPTION          = 0x00C00000
	WS_CHILD            = 0x40000000
	WS_CLIPCHILDREN     = 0x02000000
	WS_CLIPSIBLINGS     = 0x04000000
	WS_DISABLED         = 0x08000000
	WS_DLGFRAME         = 0x00400000
	WS_MAXIMIZE         = 0x01000000
	WS_MAXIMIZEBOX      = 0x00010000
	WS_MINIMIZE         = 0x20000000
	WS_MINIMIZEBOX      = 0x00020000
	WS_OVERLAPPED       = 0x00000000
	WS_POPUP            = 0x80000000
	WS_SYSMENU          = 0x00080000
	WS_THICKFRAME       = 0x00040000
	WS_VISIBLE          = 0x10000000
	WS_OVERLAPPEDWINDOW = WS_OVERLAPPED | WS_CAPTION | WS_SYSMENU | WS_THICKFRAME |
		WS_MINIMIZEBOX | WS_MAXIMIZEBOX

	WS_EX_APPWINDOW        = 0x00040000
	WS_EX_CLIENTEDGE       = 0x00000200
	WS_EX_TOPMOST          = 0x00000008
	WS_EX_WINDOWEDGE       = 0x00000100
	WS_EX_OVERLAPPEDWINDOW = WS_EX_WINDOWEDGE | WS_EX_CLIENTEDGE

	TRANSPARENT = 1
	OPAQUE      = 2

	TRUE = 1
)

var (
	kernel32          = syscall.NewLazySystemDLL("kernel32.dll")
	_GetModuleHandleW = kernel32.NewProc("GetModuleHandleW")
	_FormatMessageW   = kernel32.NewProc("FormatMessageW")
	_LocalFree        = kernel32.NewProc("LocalFree")
	_SetLastError     = kernel32.NewProc("SetLastError")

	user32                   = syscall.NewLazySystemDLL("user32.dll")
	_CreateWindowExW         = user32.NewProc("CreateWindowExW")
	_DefWindowProcW          = user32.NewProc("DefWindowProcW")
	_DestroyWindow           = user32.NewProc("DestroyWindow")
	_DispatchMessageW        = user32.NewProc("DispatchMessageW")
	_GetDC                   = user32.NewProc("GetDC")
	_GetMessageW             = user32.NewProc("GetMessageW")
	_LoadCursorW             = user32.NewProc("LoadCursorW")
	_PostMessageW            = user32.NewProc("PostMessageW")
	_PostQuitMessage         = user32.NewProc("PostQuitMessage")
	_RegisterClassExW        = user32.NewProc("RegisterClassExW")
	_ReleaseDC               = user32.NewProc("ReleaseDC")
	_SetFocus                = user32.NewProc("SetFocus")
	_SetForegroundWindow     = user32.NewProc("SetForegroundWindow")
	_ShowWindow              = user32.NewProc("ShowWindow")
	_TranslateMessage        = user32.NewProc("TranslateMessage")
	_UnregisterClassW        = user32.NewProc("UnregisterClassW")
	_RegisterRawInputDevices = user32.NewProc("RegisterRawInputDevices")
	_GetRawInputData         = user32.NewProc("GetRawInputData")
	_GetRawInputDeviceList   = user32.NewProc("GetRawInputDeviceList")
	_GetRawInputDeviceInfoW  = user32.NewProc("GetRawInputDeviceInfoW")

	gdi32      = syscall.NewLazySystemDLL("gdi32.dll")
	_SetBkMode = gdi32.NewProc("SetBkMode")
)

func GetModuleHandle() (syscall.Handle, error) {
	h, _, err := _GetModuleHandleW.Call(uintptr(0))
	if h == 0 {
		return 0, callErr("GetModuleHandleW", err)
	}
	return syscall.Handle(h), nil
}

func RegisterClassEx(cls *WndClassEx) (uint16, error) {
	a, _, err := _RegisterClassExW.Call(uintptr(unsafe.Pointer(cls)))
	if a == 0 {
		return 0, callErr("RegisterClassExW", err)
	}
	return uint16(a), nil
}

func UnregisterClass(cls uint16, hInst syscall.Handle) error {
	r, _, err := _UnregisterClassW.Call(uintptr(cls), uintptr(hInst))
	if r == 0 {
		return callErr("UnregisterClassW", err)
	}
	return nil
}

func CreateWindowEx(exStyle uint32, lpClassName uint16, lpWindowName string, style uint32, x, y, w, h int32, parent, menu, hInst syscall.Handle, lpParam uintptr) (syscall.Handle, error) {
	wname, err := syscall.UTF16PtrFromString(lpWindowName)
	if err != nil {
		return 0, fmt.Errorf("CreateWindowExW: invalid window name: %w", err)
	}
	hwnd, _, callE := _CreateWindowExW.Call(
		uintptr(exStyle),
		uintptr(lpClassName),
		uintptr(unsafe.Pointer(wname)),
		uintptr(style),
		uintptr(x), uintptr(y),
		uintptr(w), uintptr(h),
		uintptr(parent),
		uintptr(menu),
		uintptr(hInst),
		lpParam)
	if hwnd == 0 {
		return 0, callErr("CreateWindowExW", callE)
	}
	return syscall.Handle(hwnd), nil
}

func DestroyWindow(hwnd syscall.Handle) error {
	r, _, err := _DestroyWindow.Call(uintptr(hwnd))
	if r == 0 {
		return callErr("DestroyWindow", err)
	}
	return nil
}

func DefWindowProc(hwnd syscall.Handle, msg uint32, wParam, lParam uintptr) uintptr {
	r, _, _ := _DefWindowProcW.Call(uintptr(hwnd), uintptr(msg), wParam, lParam)
	return r
}

func ShowWindow(hwnd syscall.Handle, nCmdShow int32) {
	_ShowWindow.Call(uintptr(hwnd), uintptr(nCmdShow))
}

func SetForegroundWindow(hwnd syscall.Handle) {
	_SetForegroundWindow.Call(uintptr(hwnd))
}

func SetFocus(hwnd syscall.Handle) {
	_SetFocus.Call(uintptr(hwnd))
}

func GetDC(hwnd syscall.Handle) (syscall.Handle, error) {
	hdc, _, err := _GetDC.Call(uintptr(hwnd))
	if hdc == 0 {
		return 0, callErr("GetDC", err)
	}
	return syscall.Handle(hdc), nil
}

func ReleaseDC(hwnd, hdc syscall.Handle) {
	_ReleaseDC.Call(uintptr(hwnd), uintptr(hdc))
}

func LoadCursor(curID uint16) (syscall.Handle, error) {
	h, _, err := _LoadCursorW.Call(0, uintptr(curID))
	if h == 0 {
		return 0, callErr("LoadCursorW", err)
	}
	return syscall.Handle(h), nil
}

// GetMessage blocks until a message arrives for the calling thread. The
// returned value is -1 on failure, 0 for WM_QUIT and positive otherwise,
// matching the native convention.
func GetMessage(m *Msg, hwnd syscall.Handle, msgFilterMin, msgFilterMax uint32) int32 {
	r, _, _ := _GetMessageW.Call(
		uintptr(unsafe.Pointer(m)),
		uintptr(hwnd),
		uintptr(msgFilterMin),
		uintptr(msgFilterMax))
	return int32(r)
}

func TranslateMessage(m *Msg) {
	_TranslateMessage.Call(uintptr(unsafe.Pointer(m)))
}

func DispatchMessage(m *Msg) {
	_DispatchMessageW.Call(uintptr(unsafe.Pointer(m)))
}

func PostQuitMessage(exitCode uintptr) {
	_PostQuitMessage.Call(exitCode)
}

func PostMessage(hwnd syscall.Handle, msg uint32, wParam, lParam uintptr) error {
	r, _, err := _PostMessageW.Call(uintptr(hwnd), uintptr(msg), wParam, lParam)
	if r == 0 {
		return callErr("PostMessageW", err)
	}
	return nil
}

func SetLastError(code uint32) {
	_SetLastError.Call(uintptr(code))
}

// SetBkMode sets the background mix mode of a device context, returning
// the previous mode.
func SetBkMode(hdc syscall.Handle, mode int32) (int32, error) {
	r, _, err := _SetBkMode.Call(uintptr(hdc), uintptr(mode))
	if r == 0 {
		return 0, callErr("SetBkMode", err)
	}
	return int32(r), nil
}

// RGB packs a red/green/blue triple into a native COLORREF.
func RGB(r, g, b byte) uint32 {
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16
}

// callErr wraps a native failure so that callers can still recover the
// windows.Errno with errors.As.
func callErr(name string, err error) error {
	return fmt.Errorf("%s failed: %w", name, err)
}
