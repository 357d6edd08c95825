// SPDX-License-Identifier: Unlicense OR MIT

// Package glw wraps GL objects in owning handles. Each handle is
// created through a constructor that reports allocation failure, and
// releases its object exactly once; Release after the first call is a
// no-op. Handles are not safe for concurrent use, matching the GL
// threading model.
package glw

import "github.com/cadmiumgl/cadmium/gl"

// Context is the subset of GL entry points the handles are built on.
// On Windows it is satisfied by the loaded function table; tests
// substitute fakes.
type Context interface {
	CreateBuffer() gl.Buffer
	BindBuffer(target gl.Enum, b gl.Buffer)
	BufferData(target gl.Enum, src []byte, usage gl.Enum)
	DeleteBuffer(b gl.Buffer)

	CreateVertexArray() gl.VertexArray
	BindVertexArray(a gl.VertexArray)
	DeleteVertexArray(a gl.VertexArray)

	CreateShader(ty gl.Enum) gl.Shader
	ShaderSource(s gl.Shader, src string)
	CompileShader(s gl.Shader)
	GetShaderi(s gl.Shader, pname gl.Enum) int
	GetShaderInfoLog(s gl.Shader) string
	DeleteShader(s gl.Shader)

	CreateProgram() gl.Program
	AttachShader(p gl.Program, s gl.Shader)
	LinkProgram(p gl.Program)
	ValidateProgram(p gl.Program)
	GetProgrami(p gl.Program, pname gl.Enum) int
	GetProgramInfoLog(p gl.Program) string
	UseProgram(p gl.Program)
	DeleteProgram(p gl.Program)
	GetUniformLocation(p gl.Program, name string) gl.Uniform
	GetAttribLocation(p gl.Program, name string) gl.Attrib
	GetActiveAttrib(p gl.Program, index int) (string, int, gl.Enum)
	GetActiveUniform(p gl.Program, index int) (string, int, gl.Enum)
	ProgramBinarySupported() bool
	GetProgramBinary(p gl.Program) (gl.Enum, []byte, error)
	ProgramBinary(p gl.Program, format gl.Enum, data []byte)

	CreateTexture() gl.Texture
	BindTexture(target gl.Enum, t gl.Texture)
	TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, ty gl.Enum, data []byte)
	TexParameteri(target, pname gl.Enum, param int)
	GenerateMipmap(target gl.Enum)
	DeleteTexture(t gl.Texture)
}
