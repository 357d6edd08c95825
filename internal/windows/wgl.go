// SPDX-License-Identifier: Unlicense OR MIT

//go:build windows

package windows

import (
	"unsafe"

	syscall "golang.org/x/sys/windows"
)

type PixelFormatDescriptor struct {
	NSize           uint16
	NVersion        uint16
	DwFlags         uint32
	IPixelType      byte
	CColorBits      byte
	CRedBits        byte
	CRedShift       byte
	CGreenBits      byte
	CGreenShift     byte
	CBlueBits       byte
	CBlueShift      byte
	CAlphaBits      byte
	CAlphaShift     byte
	CAccumBits      byte
	CAccumRedBits   byte
	CAccumGreenBits byte
	CAccumBlueBits  byte
	CAccumAlphaBits byte
	CDepthBits      byte
	CStencilBits    byte
	CAuxBuffers     byte
	ILayerType      byte
	BReserved       byte
	DwLayerMask     uint32
	DwVisibleMask   uint32
	DwDamageMask    uint32
}

const (
	PFD_DRAW_TO_WINDOW = 0x00000004
	PFD_SUPPORT_OPENGL = 0x00000020
	PFD_DOUBLEBUFFER   = 0x00000001

	PFD_TYPE_RGBA = 0

	PFD_MAIN_PLANE = 0
)

var (
	_ChoosePixelFormat = gdi32.NewProc("ChoosePixelFormat")
	_SetPixelFormat    = gdi32.NewProc("SetPixelFormat")
	_SwapBuffers       = gdi32.NewProc("SwapBuffers")

	opengl32              = syscall.NewLazySystemDLL("opengl32.dll")
	_WglCreateContext     = opengl32.NewProc("wglCreateContext")
	_WglDeleteContext     = opengl32.NewProc("wglDeleteContext")
	_WglMakeCurrent       = opengl32.NewProc("wglMakeCurrent")
	_WglGetProcAddress    = opengl32.NewProc("wglGetProcAddress")
	_WglGetCurrentContext = opengl32.NewProc("wglGetCurrentContext")
)

func ChoosePixelFormat(hdc syscall.Handle, pfd *PixelFormatDescriptor) (int32, error) {
	f, _, err := _ChoosePixelFormat.Call(uintptr(hdc), uintptr(unsafe.Pointer(pfd)))
	if f == 0 {
		return 0, callErr("ChoosePixelFormat", err)
	}
	return int32(f), nil
}

func SetPixelFormat(hdc syscall.Handle, format int32, pfd *PixelFormatDescriptor) error {
	r, _, err := _SetPixelFormat.Call(uintptr(hdc), uintptr(format), uintptr(unsafe.Pointer(pfd)))
	if r == 0 {
		return callErr("SetPixelFormat", err)
	}
	return nil
}

func SwapBuffers(hdc syscall.Handle) error {
	r, _, err := _SwapBuffers.Call(uintptr(hdc))
	if r == 0 {
		return callErr("SwapBuffers", err)
	}
	return nil
}

func WglCreateContext(hdc syscall.Handle) (syscall.Handle, error) {
	ctx, _, err := _WglCreateContext.Call(uintptr(hdc))
	if ctx == 0 {
		return 0, callErr("wglCreateContext", err)
	}
	return syscall.Handle(ctx), nil
}

func WglDeleteContext(ctx syscall.Handle) error {
	r, _, err := _WglDeleteContext.Call(uintptr(ctx))
	if r == 0 {
		return callErr("wglDeleteContext", err)
	}
	return nil
}

func WglMakeCurrent(hdc, ctx syscall.Handle) error {
	r, _, err := _WglMakeCurrent.Call(uintptr(hdc), uintptr(ctx))
	if r == 0 {
		return callErr("wglMakeCurrent", err)
	}
	return nil
}

func WglGetCurrentContext() syscall.Handle {
	ctx, _, _ := _WglGetCurrentContext.Call()
	return syscall.Handle(ctx)
}

// WglGetProcAddress resolves an extension entry point. Core 1.1 entry
// points are not resolvable this way; callers fall back to the export
// table of opengl32.dll.
func WglGetProcAddress(name string) uintptr {
	cname := append([]byte(name), 0)
	addr, _, _ := _WglGetProcAddress.Call(uintptr(unsafe.Pointer(&cname[0])))
	// Some drivers return small sentinel values instead of nil.
	switch addr {
	case 0, 1, 2, 3, ^uintptr(0):
		return 0
	}
	return addr
}

// GLProcAddress resolves a GL entry point, preferring the opengl32.dll
// export table and falling back to wglGetProcAddress for entry points
// past GL 1.1.
func GLProcAddress(name string) uintptr {
	if p := opengl32.NewProc(name); p.Find() == nil {
		return p.Addr()
	}
	return WglGetProcAddress(name)
}
