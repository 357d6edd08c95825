// SPDX-License-Identifier: Unlicense OR MIT

//go:build windows

package app

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	syscall "golang.org/x/sys/windows"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/cadmiumgl/cadmium/gl"
	"github.com/cadmiumgl/cadmium/hid"
	win "github.com/cadmiumgl/cadmium/internal/windows"
)

// winMap maps window handles back to their Window for windowProc.
var winMap sync.Map // syscall.Handle -> *Window

// resources holds the process-wide window class, registered with the
// first window and unregistered with the last.
var resources struct {
	mu     sync.Mutex
	count  int
	class  uint16
	hInst  syscall.Handle
	cursor syscall.Handle
}

// Window is a native window with a current GL context. Windows are
// bound to the OS thread that created them: NewWindow locks the
// calling goroutine to its thread, and Loop, SwapBuffers and Close
// must be called from that same goroutine.
type Window struct {
	hwnd  syscall.Handle
	hdc   syscall.Handle
	glCtx syscall.Handle
	funcs *gl.Functions

	opts   *options
	log    *zap.Logger
	closed bool
}

func classResources() (uint16, syscall.Handle, error) {
	resources.mu.Lock()
	defer resources.mu.Unlock()
	if resources.count == 0 {
		hInst, err := win.GetModuleHandle()
		if err != nil {
			return 0, 0, err
		}
		cursor, err := win.LoadCursor(win.IDC_ARROW)
		if err != nil {
			return 0, 0, err
		}
		wcls := win.WndClassEx{
			Style:         win.CS_HREDRAW | win.CS_VREDRAW | win.CS_OWNDC,
			LpfnWndProc:   syscall.NewCallback(windowProc),
			HInstance:     hInst,
			HCursor:       cursor,
			LpszClassName: syscall.StringToUTF16Ptr("CadmiumWindow"),
		}
		wcls.CbSize = uint32(unsafe.Sizeof(wcls))
		atom, err := win.RegisterClassEx(&wcls)
		if err != nil {
			return 0, 0, err
		}
		resources.class = atom
		resources.hInst = hInst
		resources.cursor = cursor
	}
	resources.count++
	return resources.class, resources.hInst, nil
}

func releaseClassResources() error {
	resources.mu.Lock()
	defer resources.mu.Unlock()
	resources.count--
	if resources.count > 0 {
		return nil
	}
	err := win.UnregisterClass(resources.class, resources.hInst)
	resources.class = 0
	resources.hInst = 0
	resources.cursor = 0
	return err
}

// NewWindow creates a visible window with a current GL context. The
// calling goroutine is locked to its OS thread for the lifetime of the
// window.
func NewWindow(opt ...Option) (*Window, error) {
	opts := defaultOptions()
	for _, o := range opt {
		o(opts)
	}
	runtime.LockOSThread()
	class, hInst, err := classResources()
	if err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}
	w := &Window{opts: opts, log: opts.log}
	hwnd, err := win.CreateWindowEx(
		win.WS_EX_APPWINDOW|win.WS_EX_WINDOWEDGE,
		class,
		opts.title,
		win.WS_OVERLAPPEDWINDOW|win.WS_CLIPSIBLINGS|win.WS_CLIPCHILDREN,
		win.CW_USEDEFAULT, win.CW_USEDEFAULT,
		int32(opts.width), int32(opts.height),
		0, 0, hInst, 0)
	if err != nil {
		w.fail(nil)
		return nil, err
	}
	w.hwnd = hwnd
	winMap.Store(hwnd, w)
	if err := w.setupGL(); err != nil {
		w.fail(&err)
		return nil, err
	}
	if opts.monitor != nil {
		if err := w.registerRawInput(); err != nil {
			w.fail(&err)
			return nil, err
		}
	}
	win.ShowWindow(hwnd, win.SW_SHOWDEFAULT)
	win.SetForegroundWindow(hwnd)
	win.SetFocus(hwnd)
	return w, nil
}

// fail tears down a partially constructed window, folding teardown
// errors into *err.
func (w *Window) fail(err *error) {
	if cerr := w.Close(); cerr != nil && err != nil {
		*err = multierr.Append(*err, cerr)
	}
}

func (w *Window) setupGL() error {
	hdc, err := win.GetDC(w.hwnd)
	if err != nil {
		return err
	}
	w.hdc = hdc
	pfd := win.PixelFormatDescriptor{
		NVersion:     1,
		DwFlags:      win.PFD_DRAW_TO_WINDOW | win.PFD_SUPPORT_OPENGL | win.PFD_DOUBLEBUFFER,
		IPixelType:   win.PFD_TYPE_RGBA,
		CColorBits:   32,
		CDepthBits:   24,
		CStencilBits: 8,
		ILayerType:   win.PFD_MAIN_PLANE,
	}
	pfd.NSize = uint16(unsafe.Sizeof(pfd))
	format, err := win.ChoosePixelFormat(hdc, &pfd)
	if err != nil {
		return err
	}
	if err := win.SetPixelFormat(hdc, format, &pfd); err != nil {
		return err
	}
	ctx, err := win.WglCreateContext(hdc)
	if err != nil {
		return err
	}
	w.glCtx = ctx
	if err := win.WglMakeCurrent(hdc, ctx); err != nil {
		return err
	}
	funcs, err := gl.Load()
	if err != nil {
		return err
	}
	w.funcs = funcs
	if funcs.DebugMessageCallbackSupported() {
		log := w.log
		funcs.DebugMessageCallback(func(source, gltype gl.Enum, id uint, severity gl.Enum, message string) {
			if severity == gl.DEBUG_SEVERITY_NOTIFICATION {
				return
			}
			log.Warn("gl debug message",
				zap.Uint("id", id),
				zap.Uint("source", uint(source)),
				zap.Uint("type", uint(gltype)),
				zap.String("message", message))
		})
		funcs.Enable(gl.DEBUG_OUTPUT)
	}
	// Text drawn into the window DC must not paint its own
	// background over the GL framebuffer.
	if _, err := win.SetBkMode(hdc, win.TRANSPARENT); err != nil {
		w.log.Debug("SetBkMode failed", zap.Error(err))
	}
	w.log.Info("gl context ready",
		zap.String("vendor", funcs.GetString(gl.VENDOR)),
		zap.String("renderer", funcs.GetString(gl.RENDERER)),
		zap.String("version", funcs.GetString(gl.VERSION)))
	return nil
}

func (w *Window) registerRawInput() error {
	devices := []win.RawInputDevice{
		{
			UsagePage: uint16(hid.PageGenericDesktop),
			Usage:     uint16(hid.UsageGamepad),
			Flags:     win.RIDEV_DEVNOTIFY | win.RIDEV_INPUTSINK,
			Target:    w.hwnd,
		},
		{
			UsagePage: uint16(hid.PageGenericDesktop),
			Usage:     uint16(hid.UsageJoystick),
			Flags:     win.RIDEV_DEVNOTIFY | win.RIDEV_INPUTSINK,
			Target:    w.hwnd,
		},
	}
	if err := win.RegisterRawInputDevices(devices); err != nil {
		return err
	}
	// Devices present before registration never send an arrival
	// notification; pick them up from the device list.
	entries, err := win.GetRawInputDeviceList()
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Type != win.RIM_TYPEHID {
			continue
		}
		// Attach failures are already logged by the monitor; a
		// device we cannot parse is skipped, not fatal.
		w.opts.monitor.Attach(hid.Device(e.Device)) //nolint:errcheck
	}
	return nil
}

// GL is the window's loaded GL function table. It is only valid while
// the window's context is current.
func (w *Window) GL() *gl.Functions {
	return w.funcs
}

// HWND exposes the native window handle.
func (w *Window) HWND() syscall.Handle {
	return w.hwnd
}

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() error {
	return win.SwapBuffers(w.hdc)
}

// Loop pumps window messages until the window is destroyed. frame, if
// not nil, runs after every dispatched message; returning an error
// from it stops the loop.
func (w *Window) Loop(frame func() error) error {
	var msg win.Msg
	for {
		switch r := win.GetMessage(&msg, 0, 0, 0); {
		case r == 0:
			return nil
		case r < 0:
			return fmt.Errorf("app: GetMessage failed: %s", win.LastErrorText())
		}
		win.TranslateMessage(&msg)
		win.DispatchMessage(&msg)
		if frame != nil {
			if err := frame(); err != nil {
				return err
			}
		}
	}
}

// Close destroys the window and its GL context. Further calls are
// no-ops.
func (w *Window) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	var err error
	if w.glCtx != 0 {
		err = multierr.Append(err, win.WglMakeCurrent(0, 0))
		err = multierr.Append(err, win.WglDeleteContext(w.glCtx))
		w.glCtx = 0
	}
	if w.hdc != 0 {
		win.ReleaseDC(w.hwnd, w.hdc)
		w.hdc = 0
	}
	if w.hwnd != 0 {
		winMap.Delete(w.hwnd)
		err = multierr.Append(err, win.DestroyWindow(w.hwnd))
		w.hwnd = 0
	}
	err = multierr.Append(err, releaseClassResources())
	runtime.UnlockOSThread()
	return err
}

func windowProc(hwnd syscall.Handle, msg uint32, wParam, lParam uintptr) uintptr {
	v, exists := winMap.Load(hwnd)
	if !exists {
		return win.DefWindowProc(hwnd, msg, wParam, lParam)
	}
	w := v.(*Window)
	switch msg {
	case win.WM_INPUT:
		w.handleRawInput(lParam)
		// WM_INPUT requires the default handling to run for
		// cleanup of the input buffers.
		return win.DefWindowProc(hwnd, msg, wParam, lParam)
	case win.WM_INPUT_DEVICE_CHANGE:
		w.handleDeviceChange(wParam, lParam)
		return 0
	case win.WM_SIZE:
		if w.opts.onSize != nil {
			width := int(uint32(lParam) & 0xffff)
			height := int(uint32(lParam) >> 16)
			w.opts.onSize(width, height)
		}
		return 0
	case win.WM_CLOSE:
		win.DestroyWindow(hwnd) //nolint:errcheck
		return 0
	case win.WM_DESTROY:
		win.PostQuitMessage(0)
		return 0
	}
	return win.DefWindowProc(hwnd, msg, wParam, lParam)
}

func (w *Window) handleRawInput(lParam uintptr) {
	if w.opts.monitor == nil {
		return
	}
	packet, err := win.GetRawInputData(lParam)
	if err != nil {
		w.log.Debug("dropping raw input packet", zap.Error(err))
		return
	}
	hdr, err := win.RawInputHeaderFromPacket(packet)
	if err != nil {
		w.log.Debug("dropping raw input packet", zap.Error(err))
		return
	}
	if hdr.Type != win.RIM_TYPEHID {
		return
	}
	payload, err := win.RawHIDPayload(packet)
	if err != nil {
		w.log.Debug("dropping raw HID packet", zap.Error(err))
		return
	}
	report, err := w.opts.monitor.DecodeReport(hid.Device(hdr.Device), payload)
	if err != nil {
		w.log.Debug("dropping undecodable report",
			zap.Uintptr("device", uintptr(hdr.Device)),
			zap.Error(err))
		return
	}
	if report != nil && w.opts.onReport != nil {
		w.opts.onReport(report)
	}
}

func (w *Window) handleDeviceChange(wParam, lParam uintptr) {
	if w.opts.monitor == nil {
		return
	}
	device := hid.Device(lParam)
	switch wParam {
	case win.GIDC_ARRIVAL:
		w.opts.monitor.Attach(device) //nolint:errcheck
	case win.GIDC_REMOVAL:
		w.opts.monitor.Detach(device)
	}
}
