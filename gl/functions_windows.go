// SPDX-License-Identifier: Unlicense OR MIT

//go:build windows

package gl

import (
	"fmt"
	"math"
	"runtime"
	"syscall"
	"unsafe"

	"github.com/cadmiumgl/cadmium/internal/sysbuf"
	win "github.com/cadmiumgl/cadmium/internal/windows"
)

// Functions is the entry point table for the current GL context. Load
// resolves it; a context must be current on the calling thread both
// when loading and when calling.
type Functions struct {
	glActiveTexture           uintptr
	glAttachShader            uintptr
	glBindBuffer              uintptr
	glBindTexture             uintptr
	glBindVertexArray         uintptr
	glBufferData              uintptr
	glClear                   uintptr
	glClearColor              uintptr
	glCompileShader           uintptr
	glCreateProgram           uintptr
	glCreateShader            uintptr
	glDebugMessageCallback    uintptr
	glDeleteBuffers           uintptr
	glDeleteProgram           uintptr
	glDeleteShader            uintptr
	glDeleteTextures          uintptr
	glDeleteVertexArrays      uintptr
	glDisable                 uintptr
	glDrawArrays              uintptr
	glDrawElements            uintptr
	glEnable                  uintptr
	glEnableVertexAttribArray uintptr
	glGenBuffers              uintptr
	glGenTextures             uintptr
	glGenVertexArrays         uintptr
	glGenerateMipmap          uintptr
	glGetActiveAttrib         uintptr
	glGetActiveUniform        uintptr
	glGetAttribLocation       uintptr
	glGetError                uintptr
	glGetIntegerv             uintptr
	glGetProgramBinary        uintptr
	glGetProgramInfoLog       uintptr
	glGetProgramiv            uintptr
	glGetShaderInfoLog        uintptr
	glGetShaderiv             uintptr
	glGetString               uintptr
	glGetUniformLocation      uintptr
	glLinkProgram             uintptr
	glProgramBinary           uintptr
	glShaderSource            uintptr
	glTexImage2D              uintptr
	glTexParameteri           uintptr
	glUniform1f               uintptr
	glUniform1i               uintptr
	glUniform4f               uintptr
	glUniformMatrix4fv        uintptr
	glUseProgram              uintptr
	glValidateProgram         uintptr
	glVertexAttribPointer     uintptr
	glViewport                uintptr
}

// Load resolves the entry points against the context current on the
// calling thread. Entry points past GL 1.1 come from wglGetProcAddress
// and are context specific.
func Load() (*Functions, error) {
	f := new(Functions)
	var missing []string
	load := func(name string) uintptr {
		addr := win.GLProcAddress(name)
		if addr == 0 {
			missing = append(missing, name)
		}
		return addr
	}
	f.glActiveTexture = load("glActiveTexture")
	f.glAttachShader = load("glAttachShader")
	f.glBindBuffer = load("glBindBuffer")
	f.glBindTexture = load("glBindTexture")
	f.glBindVertexArray = load("glBindVertexArray")
	f.glBufferData = load("glBufferData")
	f.glClear = load("glClear")
	f.glClearColor = load("glClearColor")
	f.glCompileShader = load("glCompileShader")
	f.glCreateProgram = load("glCreateProgram")
	f.glCreateShader = load("glCreateShader")
	f.glDeleteBuffers = load("glDeleteBuffers")
	f.glDeleteProgram = load("glDeleteProgram")
	f.glDeleteShader = load("glDeleteShader")
	f.glDeleteTextures = load("glDeleteTextures")
	f.glDeleteVertexArrays = load("glDeleteVertexArrays")
	f.glDisable = load("glDisable")
	f.glDrawArrays = load("glDrawArrays")
	f.glDrawElements = load("glDrawElements")
	f.glEnable = load("glEnable")
	f.glEnableVertexAttribArray = load("glEnableVertexAttribArray")
	f.glGenBuffers = load("glGenBuffers")
	f.glGenTextures = load("glGenTextures")
	f.glGenVertexArrays = load("glGenVertexArrays")
	f.glGenerateMipmap = load("glGenerateMipmap")
	f.glGetActiveAttrib = load("glGetActiveAttrib")
	f.glGetActiveUniform = load("glGetActiveUniform")
	f.glGetAttribLocation = load("glGetAttribLocation")
	f.glGetError = load("glGetError")
	f.glGetIntegerv = load("glGetIntegerv")
	f.glGetProgramInfoLog = load("glGetProgramInfoLog")
	f.glGetProgramiv = load("glGetProgramiv")
	f.glGetShaderInfoLog = load("glGetShaderInfoLog")
	f.glGetShaderiv = load("glGetShaderiv")
	f.glGetString = load("glGetString")
	f.glGetUniformLocation = load("glGetUniformLocation")
	f.glLinkProgram = load("glLinkProgram")
	f.glShaderSource = load("glShaderSource")
	f.glTexImage2D = load("glTexImage2D")
	f.glTexParameteri = load("glTexParameteri")
	f.glUniform1f = load("glUniform1f")
	f.glUniform1i = load("glUniform1i")
	f.glUniform4f = load("glUniform4f")
	f.glUniformMatrix4fv = load("glUniformMatrix4fv")
	f.glUseProgram = load("glUseProgram")
	f.glValidateProgram = load("glValidateProgram")
	f.glVertexAttribPointer = load("glVertexAttribPointer")
	f.glViewport = load("glViewport")
	if len(missing) > 0 {
		return nil, fmt.Errorf("gl: missing entry points: %v", missing)
	}
	// Optional entry points; callers check for zero.
	f.glDebugMessageCallback = win.GLProcAddress("glDebugMessageCallback")
	if f.glDebugMessageCallback == 0 {
		f.glDebugMessageCallback = win.GLProcAddress("glDebugMessageCallbackKHR")
	}
	f.glGetProgramBinary = win.GLProcAddress("glGetProgramBinary")
	f.glProgramBinary = win.GLProcAddress("glProgramBinary")
	return f, nil
}

func call(p uintptr, args ...uintptr) uintptr {
	r, _, _ := syscall.SyscallN(p, args...)
	return r
}

func f32(v float32) uintptr {
	return uintptr(math.Float32bits(v))
}

func (f *Functions) ActiveTexture(t Enum) {
	call(f.glActiveTexture, uintptr(t))
}

func (f *Functions) AttachShader(p Program, s Shader) {
	call(f.glAttachShader, uintptr(p.V), uintptr(s.V))
}

func (f *Functions) BindBuffer(target Enum, b Buffer) {
	call(f.glBindBuffer, uintptr(target), uintptr(b.V))
}

func (f *Functions) BindTexture(target Enum, t Texture) {
	call(f.glBindTexture, uintptr(target), uintptr(t.V))
}

func (f *Functions) BindVertexArray(a VertexArray) {
	call(f.glBindVertexArray, uintptr(a.V))
}

func (f *Functions) BufferData(target Enum, src []byte, usage Enum) {
	var p unsafe.Pointer
	if len(src) > 0 {
		p = unsafe.Pointer(&src[0])
	}
	call(f.glBufferData, uintptr(target), uintptr(len(src)), uintptr(p), uintptr(usage))
	runtime.KeepAlive(src)
}

func (f *Functions) Clear(mask Enum) {
	call(f.glClear, uintptr(mask))
}

func (f *Functions) ClearColor(red, green, blue, alpha float32) {
	call(f.glClearColor, f32(red), f32(green), f32(blue), f32(alpha))
}

func (f *Functions) CompileShader(s Shader) {
	call(f.glCompileShader, uintptr(s.V))
}

func (f *Functions) CreateBuffer() Buffer {
	var buf uint32
	call(f.glGenBuffers, 1, uintptr(unsafe.Pointer(&buf)))
	return Buffer{uint(buf)}
}

func (f *Functions) CreateProgram() Program {
	return Program{uint(call(f.glCreateProgram))}
}

func (f *Functions) CreateShader(ty Enum) Shader {
	return Shader{uint(call(f.glCreateShader, uintptr(ty)))}
}

func (f *Functions) CreateTexture() Texture {
	var tex uint32
	call(f.glGenTextures, 1, uintptr(unsafe.Pointer(&tex)))
	return Texture{uint(tex)}
}

func (f *Functions) CreateVertexArray() VertexArray {
	var arr uint32
	call(f.glGenVertexArrays, 1, uintptr(unsafe.Pointer(&arr)))
	return VertexArray{uint(arr)}
}

func (f *Functions) DeleteBuffer(b Buffer) {
	v := uint32(b.V)
	call(f.glDeleteBuffers, 1, uintptr(unsafe.Pointer(&v)))
}

func (f *Functions) DeleteProgram(p Program) {
	call(f.glDeleteProgram, uintptr(p.V))
}

func (f *Functions) DeleteShader(s Shader) {
	call(f.glDeleteShader, uintptr(s.V))
}

func (f *Functions) DeleteTexture(t Texture) {
	v := uint32(t.V)
	call(f.glDeleteTextures, 1, uintptr(unsafe.Pointer(&v)))
}

func (f *Functions) DeleteVertexArray(a VertexArray) {
	v := uint32(a.V)
	call(f.glDeleteVertexArrays, 1, uintptr(unsafe.Pointer(&v)))
}

func (f *Functions) Disable(cap Enum) {
	call(f.glDisable, uintptr(cap))
}

func (f *Functions) DrawArrays(mode Enum, first, count int) {
	call(f.glDrawArrays, uintptr(mode), uintptr(first), uintptr(count))
}

func (f *Functions) DrawElements(mode Enum, count int, ty Enum, offset int) {
	call(f.glDrawElements, uintptr(mode), uintptr(count), uintptr(ty), uintptr(offset))
}

func (f *Functions) Enable(cap Enum) {
	call(f.glEnable, uintptr(cap))
}

func (f *Functions) EnableVertexAttribArray(a Attrib) {
	call(f.glEnableVertexAttribArray, uintptr(a))
}

func (f *Functions) GenerateMipmap(target Enum) {
	call(f.glGenerateMipmap, uintptr(target))
}

func (f *Functions) GetAttribLocation(p Program, name string) Attrib {
	cname := cString(name)
	loc := call(f.glGetAttribLocation, uintptr(p.V), uintptr(unsafe.Pointer(&cname[0])))
	runtime.KeepAlive(cname)
	return Attrib(loc)
}

func (f *Functions) GetError() Enum {
	return Enum(call(f.glGetError))
}

func (f *Functions) GetInteger(pname Enum) int {
	var v int32
	call(f.glGetIntegerv, uintptr(pname), uintptr(unsafe.Pointer(&v)))
	return int(v)
}

func (f *Functions) GetProgrami(p Program, pname Enum) int {
	var v int32
	call(f.glGetProgramiv, uintptr(p.V), uintptr(pname), uintptr(unsafe.Pointer(&v)))
	return int(v)
}

func (f *Functions) GetProgramInfoLog(p Program) string {
	log, _ := sysbuf.Collect[byte](
		func() (int, error) {
			return f.GetProgrami(p, INFO_LOG_LENGTH), nil
		},
		func(buf []byte) (int, error) {
			var n int32
			call(f.glGetProgramInfoLog, uintptr(p.V), uintptr(len(buf)), uintptr(unsafe.Pointer(&n)), uintptr(unsafe.Pointer(&buf[0])))
			return int(n), nil
		})
	return string(log)
}

func (f *Functions) GetShaderi(s Shader, pname Enum) int {
	var v int32
	call(f.glGetShaderiv, uintptr(s.V), uintptr(pname), uintptr(unsafe.Pointer(&v)))
	return int(v)
}

func (f *Functions) GetShaderInfoLog(s Shader) string {
	log, _ := sysbuf.Collect[byte](
		func() (int, error) {
			return f.GetShaderi(s, INFO_LOG_LENGTH), nil
		},
		func(buf []byte) (int, error) {
			var n int32
			call(f.glGetShaderInfoLog, uintptr(s.V), uintptr(len(buf)), uintptr(unsafe.Pointer(&n)), uintptr(unsafe.Pointer(&buf[0])))
			return int(n), nil
		})
	return string(log)
}

func (f *Functions) GetString(pname Enum) string {
	str := call(f.glGetString, uintptr(pname))
	if str == 0 {
		return ""
	}
	return goString(str)
}

func (f *Functions) GetUniformLocation(p Program, name string) Uniform {
	cname := cString(name)
	loc := call(f.glGetUniformLocation, uintptr(p.V), uintptr(unsafe.Pointer(&cname[0])))
	runtime.KeepAlive(cname)
	return Uniform{int(int32(loc))}
}

// GetActiveAttrib reports the name, array size and type of an active
// vertex attribute.
func (f *Functions) GetActiveAttrib(p Program, index int) (string, int, Enum) {
	return f.activeVar(f.glGetActiveAttrib, p, index, ACTIVE_ATTRIBUTE_MAX_LENGTH)
}

// GetActiveUniform reports the name, array size and type of an active
// uniform.
func (f *Functions) GetActiveUniform(p Program, index int) (string, int, Enum) {
	return f.activeVar(f.glGetActiveUniform, p, index, ACTIVE_UNIFORM_MAX_LENGTH)
}

func (f *Functions) activeVar(proc uintptr, p Program, index int, maxLenPname Enum) (string, int, Enum) {
	bufLen := f.GetProgrami(p, maxLenPname)
	if bufLen == 0 {
		return "", 0, 0
	}
	buf := make([]byte, bufLen)
	var n int32
	var size int32
	var ty uint32
	call(proc, uintptr(p.V), uintptr(index), uintptr(len(buf)),
		uintptr(unsafe.Pointer(&n)),
		uintptr(unsafe.Pointer(&size)),
		uintptr(unsafe.Pointer(&ty)),
		uintptr(unsafe.Pointer(&buf[0])))
	return string(buf[:n]), int(size), Enum(ty)
}

// ProgramBinarySupported reports whether the context exposes the
// program binary entry points.
func (f *Functions) ProgramBinarySupported() bool {
	return f.glGetProgramBinary != 0 && f.glProgramBinary != 0
}

// GetProgramBinary retrieves the driver-specific compiled form of a
// linked program.
func (f *Functions) GetProgramBinary(p Program) (Enum, []byte, error) {
	var format uint32
	data, err := sysbuf.CollectExact[byte](
		func() (int, error) {
			return f.GetProgrami(p, PROGRAM_BINARY_LENGTH), nil
		},
		func(buf []byte) (int, error) {
			var n int32
			call(f.glGetProgramBinary, uintptr(p.V), uintptr(len(buf)),
				uintptr(unsafe.Pointer(&n)),
				uintptr(unsafe.Pointer(&format)),
				uintptr(unsafe.Pointer(&buf[0])))
			return int(n), nil
		})
	if err != nil {
		return 0, nil, err
	}
	return Enum(format), data, nil
}

// ProgramBinary loads a previously retrieved program binary.
func (f *Functions) ProgramBinary(p Program, format Enum, data []byte) {
	call(f.glProgramBinary, uintptr(p.V), uintptr(format), uintptr(unsafe.Pointer(&data[0])), uintptr(len(data)))
	runtime.KeepAlive(data)
}

func (f *Functions) LinkProgram(p Program) {
	call(f.glLinkProgram, uintptr(p.V))
}

func (f *Functions) ShaderSource(s Shader, src string) {
	csrc := cString(src)
	ptr := &csrc[0]
	length := int32(len(src))
	call(f.glShaderSource, uintptr(s.V), 1,
		uintptr(unsafe.Pointer(&ptr)),
		uintptr(unsafe.Pointer(&length)))
	runtime.KeepAlive(csrc)
}

func (f *Functions) TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, ty Enum, data []byte) {
	var p unsafe.Pointer
	if len(data) > 0 {
		p = unsafe.Pointer(&data[0])
	}
	call(f.glTexImage2D, uintptr(target), uintptr(level), uintptr(internalFormat),
		uintptr(width), uintptr(height), 0, uintptr(format), uintptr(ty), uintptr(p))
	runtime.KeepAlive(data)
}

func (f *Functions) TexParameteri(target, pname Enum, param int) {
	call(f.glTexParameteri, uintptr(target), uintptr(pname), uintptr(param))
}

func (f *Functions) Uniform1f(dst Uniform, v float32) {
	call(f.glUniform1f, uintptr(dst.V), f32(v))
}

func (f *Functions) Uniform1i(dst Uniform, v int) {
	call(f.glUniform1i, uintptr(dst.V), uintptr(v))
}

func (f *Functions) Uniform4f(dst Uniform, v0, v1, v2, v3 float32) {
	call(f.glUniform4f, uintptr(dst.V), f32(v0), f32(v1), f32(v2), f32(v3))
}

func (f *Functions) UniformMatrix4fv(dst Uniform, values []float32) {
	call(f.glUniformMatrix4fv, uintptr(dst.V), uintptr(len(values)/16), FALSE, uintptr(unsafe.Pointer(&values[0])))
	runtime.KeepAlive(values)
}

func (f *Functions) UseProgram(p Program) {
	call(f.glUseProgram, uintptr(p.V))
}

func (f *Functions) ValidateProgram(p Program) {
	call(f.glValidateProgram, uintptr(p.V))
}

func (f *Functions) VertexAttribPointer(dst Attrib, size int, ty Enum, normalized bool, stride, offset int) {
	var norm uintptr
	if normalized {
		norm = TRUE
	}
	call(f.glVertexAttribPointer, uintptr(dst), uintptr(size), uintptr(ty), norm, uintptr(stride), uintptr(offset))
}

func (f *Functions) Viewport(x, y, width, height int) {
	call(f.glViewport, uintptr(x), uintptr(y), uintptr(width), uintptr(height))
}

// DebugMessageCallbackSupported reports whether the context exposes a
// debug message callback entry point.
func (f *Functions) DebugMessageCallbackSupported() bool {
	return f.glDebugMessageCallback != 0
}

// DebugMessageCallback installs cb as the debug output sink. The
// callback is entered on the thread the context is current on; it must
// not call back into the context.
func (f *Functions) DebugMessageCallback(cb func(source, gltype Enum, id uint, severity Enum, message string)) {
	trampoline := syscall.NewCallback(func(source, gltype, id, severity, length, message, userParam uintptr) uintptr {
		msg := string(unsafe.Slice((*byte)(unsafe.Pointer(message)), int(int32(length))))
		cb(Enum(source), Enum(gltype), uint(id), Enum(severity), msg)
		return 0
	})
	call(f.glDebugMessageCallback, trampoline, 0)
}

func cString(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}

func goString(p uintptr) string {
	var n int
	for *(*byte)(unsafe.Pointer(p + uintptr(n))) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(unsafe.Pointer(p)), n))
}
