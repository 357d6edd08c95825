// SPDX-License-Identifier: Unlicense OR MIT

package glw

import (
	"errors"
	"fmt"

	"github.com/cadmiumgl/cadmium/gl"
)

// Shader owns a compiled shader object.
type Shader struct {
	ctx      Context
	id       gl.Shader
	released bool
}

// CompileShader compiles src as a shader of type ty. On compile
// failure the shader object is deleted and the info log is returned in
// the error.
func CompileShader(ctx Context, ty gl.Enum, src string) (*Shader, error) {
	id := ctx.CreateShader(ty)
	if !id.Valid() {
		return nil, errors.New("glw: shader allocation failed")
	}
	ctx.ShaderSource(id, src)
	ctx.CompileShader(id)
	if ctx.GetShaderi(id, gl.COMPILE_STATUS) == gl.FALSE {
		log := ctx.GetShaderInfoLog(id)
		ctx.DeleteShader(id)
		return nil, fmt.Errorf("glw: shader compilation failed: %s", log)
	}
	return &Shader{ctx: ctx, id: id}, nil
}

func (s *Shader) ID() gl.Shader {
	return s.id
}

// Release deletes the shader object. Further calls are no-ops. A
// shader attached to a live program is only destroyed by the driver
// once the program goes too.
func (s *Shader) Release() {
	if s.released {
		return
	}
	s.released = true
	s.ctx.DeleteShader(s.id)
}

// ProgramVar describes one active attribute or uniform.
type ProgramVar struct {
	Name string
	Size int
	Type gl.Enum
}

// ProgramBinary is a driver-specific compiled program image.
type ProgramBinary struct {
	Format gl.Enum
	Data   []byte
}

// Program owns a linked program object.
type Program struct {
	ctx      Context
	id       gl.Program
	released bool
}

// LinkProgram links the given shaders into a program. On link failure
// the program object is deleted and the info log is returned in the
// error.
func LinkProgram(ctx Context, shaders ...*Shader) (*Program, error) {
	id := ctx.CreateProgram()
	if !id.Valid() {
		return nil, errors.New("glw: program allocation failed")
	}
	for _, s := range shaders {
		ctx.AttachShader(id, s.id)
	}
	ctx.LinkProgram(id)
	if ctx.GetProgrami(id, gl.LINK_STATUS) == gl.FALSE {
		log := ctx.GetProgramInfoLog(id)
		ctx.DeleteProgram(id)
		return nil, fmt.Errorf("glw: program link failed: %s", log)
	}
	return &Program{ctx: ctx, id: id}, nil
}

// BuildProgram compiles a vertex and a fragment shader and links them.
// The shaders are released once the program is linked.
func BuildProgram(ctx Context, vertexSrc, fragmentSrc string) (*Program, error) {
	vs, err := CompileShader(ctx, gl.VERTEX_SHADER, vertexSrc)
	if err != nil {
		return nil, err
	}
	defer vs.Release()
	fs, err := CompileShader(ctx, gl.FRAGMENT_SHADER, fragmentSrc)
	if err != nil {
		return nil, err
	}
	defer fs.Release()
	return LinkProgram(ctx, vs, fs)
}

// ProgramFromBinary restores a program from a binary retrieved with
// Binary, on the same driver and hardware.
func ProgramFromBinary(ctx Context, bin ProgramBinary) (*Program, error) {
	if !ctx.ProgramBinarySupported() {
		return nil, errors.New("glw: program binaries not supported")
	}
	id := ctx.CreateProgram()
	if !id.Valid() {
		return nil, errors.New("glw: program allocation failed")
	}
	ctx.ProgramBinary(id, bin.Format, bin.Data)
	if ctx.GetProgrami(id, gl.LINK_STATUS) == gl.FALSE {
		log := ctx.GetProgramInfoLog(id)
		ctx.DeleteProgram(id)
		return nil, fmt.Errorf("glw: program binary rejected: %s", log)
	}
	return &Program{ctx: ctx, id: id}, nil
}

func (p *Program) ID() gl.Program {
	return p.id
}

func (p *Program) Use() {
	p.ctx.UseProgram(p.id)
}

// Validate asks the driver whether the program can execute in the
// current GL state, returning the info log on refusal.
func (p *Program) Validate() error {
	p.ctx.ValidateProgram(p.id)
	if p.ctx.GetProgrami(p.id, gl.VALIDATE_STATUS) == gl.FALSE {
		return fmt.Errorf("glw: program validation failed: %s", p.ctx.GetProgramInfoLog(p.id))
	}
	return nil
}

// Uniform resolves a uniform location by name.
func (p *Program) Uniform(name string) (gl.Uniform, error) {
	u := p.ctx.GetUniformLocation(p.id, name)
	if !u.Valid() {
		return u, fmt.Errorf("glw: no active uniform %q", name)
	}
	return u, nil
}

// Attrib resolves an attribute location by name.
func (p *Program) Attrib(name string) (gl.Attrib, error) {
	a := p.ctx.GetAttribLocation(p.id, name)
	if int(int32(a)) == -1 {
		return 0, fmt.Errorf("glw: no active attribute %q", name)
	}
	return a, nil
}

// ActiveAttribs lists the program's active vertex attributes.
func (p *Program) ActiveAttribs() []ProgramVar {
	n := p.ctx.GetProgrami(p.id, gl.ACTIVE_ATTRIBUTES)
	vars := make([]ProgramVar, 0, n)
	for i := 0; i < n; i++ {
		name, size, ty := p.ctx.GetActiveAttrib(p.id, i)
		vars = append(vars, ProgramVar{Name: name, Size: size, Type: ty})
	}
	return vars
}

// ActiveUniforms lists the program's active uniforms.
func (p *Program) ActiveUniforms() []ProgramVar {
	n := p.ctx.GetProgrami(p.id, gl.ACTIVE_UNIFORMS)
	vars := make([]ProgramVar, 0, n)
	for i := 0; i < n; i++ {
		name, size, ty := p.ctx.GetActiveUniform(p.id, i)
		vars = append(vars, ProgramVar{Name: name, Size: size, Type: ty})
	}
	return vars
}

// Binary retrieves the program's driver-specific compiled form.
func (p *Program) Binary() (ProgramBinary, error) {
	if !p.ctx.ProgramBinarySupported() {
		return ProgramBinary{}, errors.New("glw: program binaries not supported")
	}
	format, data, err := p.ctx.GetProgramBinary(p.id)
	if err != nil {
		return ProgramBinary{}, err
	}
	return ProgramBinary{Format: format, Data: data}, nil
}

// Release deletes the program object. Further calls are no-ops.
func (p *Program) Release() {
	if p.released {
		return
	}
	p.released = true
	p.ctx.DeleteProgram(p.id)
}
