// SPDX-License-Identifier: Unlicense OR MIT

package glw_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadmiumgl/cadmium/gl"
	"github.com/cadmiumgl/cadmium/glw"
)

// fakeContext allocates sequential object names and records every
// delete call. Compile and link outcomes are scripted per test.
type fakeContext struct {
	nextID uint

	failAllocations bool
	compileFails    bool
	linkFails       bool
	validateFails   bool
	infoLog         string
	binarySupported bool

	deletedBuffers     []gl.Buffer
	deletedArrays      []gl.VertexArray
	deletedShaders     []gl.Shader
	deletedPrograms    []gl.Program
	deletedTextures    []gl.Texture
	attached           map[gl.Program][]gl.Shader
	sources            map[gl.Shader]string
	uniforms           map[string]int
	attribs            map[string]int
	activeAttribs      []string
	activeUniforms     []string
	programBinaries    map[gl.Program][]byte
	loadedBinary       []byte
	loadedBinaryFormat gl.Enum
	bufferUploads      int
	textureUploads     int
	mipmaps            int
}

func newFakeContext() *fakeContext {
	return &fakeContext{
		attached:        map[gl.Program][]gl.Shader{},
		sources:         map[gl.Shader]string{},
		uniforms:        map[string]int{},
		attribs:         map[string]int{},
		programBinaries: map[gl.Program][]byte{},
	}
}

func (f *fakeContext) alloc() uint {
	if f.failAllocations {
		return 0
	}
	f.nextID++
	return f.nextID
}

func (f *fakeContext) CreateBuffer() gl.Buffer       { return gl.Buffer{V: f.alloc()} }
func (f *fakeContext) BindBuffer(gl.Enum, gl.Buffer) {}
func (f *fakeContext) BufferData(gl.Enum, []byte, gl.Enum) {
	f.bufferUploads++
}
func (f *fakeContext) DeleteBuffer(b gl.Buffer) {
	f.deletedBuffers = append(f.deletedBuffers, b)
}

func (f *fakeContext) CreateVertexArray() gl.VertexArray { return gl.VertexArray{V: f.alloc()} }
func (f *fakeContext) BindVertexArray(gl.VertexArray)    {}
func (f *fakeContext) DeleteVertexArray(a gl.VertexArray) {
	f.deletedArrays = append(f.deletedArrays, a)
}

func (f *fakeContext) CreateShader(gl.Enum) gl.Shader { return gl.Shader{V: f.alloc()} }
func (f *fakeContext) ShaderSource(s gl.Shader, src string) {
	f.sources[s] = src
}
func (f *fakeContext) CompileShader(gl.Shader) {}
func (f *fakeContext) GetShaderi(s gl.Shader, pname gl.Enum) int {
	if pname == gl.COMPILE_STATUS && f.compileFails {
		return gl.FALSE
	}
	return gl.TRUE
}
func (f *fakeContext) GetShaderInfoLog(gl.Shader) string { return f.infoLog }
func (f *fakeContext) DeleteShader(s gl.Shader) {
	f.deletedShaders = append(f.deletedShaders, s)
}

func (f *fakeContext) CreateProgram() gl.Program { return gl.Program{V: f.alloc()} }
func (f *fakeContext) AttachShader(p gl.Program, s gl.Shader) {
	f.attached[p] = append(f.attached[p], s)
}
func (f *fakeContext) LinkProgram(gl.Program)     {}
func (f *fakeContext) ValidateProgram(gl.Program) {}
func (f *fakeContext) GetProgrami(p gl.Program, pname gl.Enum) int {
	switch pname {
	case gl.LINK_STATUS:
		if f.linkFails {
			return gl.FALSE
		}
		return gl.TRUE
	case gl.VALIDATE_STATUS:
		if f.validateFails {
			return gl.FALSE
		}
		return gl.TRUE
	case gl.ACTIVE_ATTRIBUTES:
		return len(f.activeAttribs)
	case gl.ACTIVE_UNIFORMS:
		return len(f.activeUniforms)
	}
	return 0
}
func (f *fakeContext) GetProgramInfoLog(gl.Program) string { return f.infoLog }
func (f *fakeContext) UseProgram(gl.Program)               {}
func (f *fakeContext) DeleteProgram(p gl.Program) {
	f.deletedPrograms = append(f.deletedPrograms, p)
}
func (f *fakeContext) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	if loc, ok := f.uniforms[name]; ok {
		return gl.Uniform{V: loc}
	}
	return gl.Uniform{V: -1}
}
func (f *fakeContext) GetAttribLocation(p gl.Program, name string) gl.Attrib {
	if loc, ok := f.attribs[name]; ok {
		return gl.Attrib(loc)
	}
	return gl.Attrib(^uint(0))
}
func (f *fakeContext) GetActiveAttrib(p gl.Program, index int) (string, int, gl.Enum) {
	return f.activeAttribs[index], 1, gl.FLOAT_VEC4
}
func (f *fakeContext) GetActiveUniform(p gl.Program, index int) (string, int, gl.Enum) {
	return f.activeUniforms[index], 1, gl.FLOAT_MAT4
}
func (f *fakeContext) ProgramBinarySupported() bool { return f.binarySupported }
func (f *fakeContext) GetProgramBinary(p gl.Program) (gl.Enum, []byte, error) {
	bin, ok := f.programBinaries[p]
	if !ok {
		return 0, nil, errors.New("no binary")
	}
	return 0xbeef, bin, nil
}
func (f *fakeContext) ProgramBinary(p gl.Program, format gl.Enum, data []byte) {
	f.loadedBinaryFormat = format
	f.loadedBinary = data
}

func (f *fakeContext) CreateTexture() gl.Texture       { return gl.Texture{V: f.alloc()} }
func (f *fakeContext) BindTexture(gl.Enum, gl.Texture) {}
func (f *fakeContext) TexImage2D(gl.Enum, int, gl.Enum, int, int, gl.Enum, gl.Enum, []byte) {
	f.textureUploads++
}
func (f *fakeContext) TexParameteri(gl.Enum, gl.Enum, int) {}
func (f *fakeContext) GenerateMipmap(gl.Enum)              { f.mipmaps++ }
func (f *fakeContext) DeleteTexture(t gl.Texture) {
	f.deletedTextures = append(f.deletedTextures, t)
}

var _ glw.Context = (*fakeContext)(nil)

func TestBufferReleaseExactlyOnce(t *testing.T) {
	ctx := newFakeContext()
	b, err := glw.NewBuffer(ctx)
	require.NoError(t, err)
	id := b.ID()
	require.True(t, id.Valid())

	b.SetData(gl.ARRAY_BUFFER, []byte{1, 2, 3}, gl.STATIC_DRAW)
	assert.Equal(t, 1, ctx.bufferUploads)

	b.Release()
	b.Release()
	b.Release()
	assert.Equal(t, []gl.Buffer{id}, ctx.deletedBuffers, "release must delete exactly once")
}

func TestBufferAllocationFailure(t *testing.T) {
	ctx := newFakeContext()
	ctx.failAllocations = true
	_, err := glw.NewBuffer(ctx)
	require.Error(t, err)
	_, err = glw.NewVertexArray(ctx)
	require.Error(t, err)
	_, err = glw.NewTexture(ctx)
	require.Error(t, err)
}

func TestVertexArrayRelease(t *testing.T) {
	ctx := newFakeContext()
	a, err := glw.NewVertexArray(ctx)
	require.NoError(t, err)
	a.Release()
	a.Release()
	assert.Len(t, ctx.deletedArrays, 1)
}

func TestCompileShaderFailureDeletesObject(t *testing.T) {
	ctx := newFakeContext()
	ctx.compileFails = true
	ctx.infoLog = "0:1: syntax error"
	_, err := glw.CompileShader(ctx, gl.VERTEX_SHADER, "void main() {")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0:1: syntax error")
	assert.Len(t, ctx.deletedShaders, 1, "a failed shader must not leak")
}

func TestLinkProgramFailureDeletesObject(t *testing.T) {
	ctx := newFakeContext()
	ctx.linkFails = true
	ctx.infoLog = "varying mismatch"
	vs, err := glw.CompileShader(ctx, gl.VERTEX_SHADER, "void main() {}")
	require.NoError(t, err)
	defer vs.Release()
	_, err = glw.LinkProgram(ctx, vs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "varying mismatch")
	assert.Len(t, ctx.deletedPrograms, 1)
}

func TestBuildProgram(t *testing.T) {
	ctx := newFakeContext()
	p, err := glw.BuildProgram(ctx, "vertex", "fragment")
	require.NoError(t, err)

	assert.Len(t, ctx.attached[p.ID()], 2)
	assert.Len(t, ctx.deletedShaders, 2, "helper shaders are released after linking")

	p.Release()
	p.Release()
	assert.Equal(t, []gl.Program{p.ID()}, ctx.deletedPrograms)
}

func TestProgramValidate(t *testing.T) {
	ctx := newFakeContext()
	p, err := glw.BuildProgram(ctx, "v", "f")
	require.NoError(t, err)
	defer p.Release()
	require.NoError(t, p.Validate())

	ctx.validateFails = true
	ctx.infoLog = "no current framebuffer"
	err = p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no current framebuffer")
}

func TestProgramLocations(t *testing.T) {
	ctx := newFakeContext()
	ctx.uniforms["mvp"] = 4
	ctx.attribs["position"] = 0
	p, err := glw.BuildProgram(ctx, "v", "f")
	require.NoError(t, err)
	defer p.Release()

	u, err := p.Uniform("mvp")
	require.NoError(t, err)
	assert.Equal(t, gl.Uniform{V: 4}, u)
	_, err = p.Uniform("missing")
	require.Error(t, err)

	a, err := p.Attrib("position")
	require.NoError(t, err)
	assert.Equal(t, gl.Attrib(0), a)
	_, err = p.Attrib("missing")
	require.Error(t, err)
}

func TestProgramReflection(t *testing.T) {
	ctx := newFakeContext()
	ctx.activeAttribs = []string{"position", "normal"}
	ctx.activeUniforms = []string{"mvp"}
	p, err := glw.BuildProgram(ctx, "v", "f")
	require.NoError(t, err)
	defer p.Release()

	attribs := p.ActiveAttribs()
	require.Len(t, attribs, 2)
	assert.Equal(t, "position", attribs[0].Name)
	assert.Equal(t, "normal", attribs[1].Name)

	uniforms := p.ActiveUniforms()
	require.Len(t, uniforms, 1)
	assert.Equal(t, "mvp", uniforms[0].Name)
	assert.Equal(t, gl.Enum(gl.FLOAT_MAT4), uniforms[0].Type)
}

func TestProgramBinaryRoundTrip(t *testing.T) {
	ctx := newFakeContext()
	ctx.binarySupported = true
	p, err := glw.BuildProgram(ctx, "v", "f")
	require.NoError(t, err)
	defer p.Release()

	ctx.programBinaries[p.ID()] = []byte{1, 2, 3}
	bin, err := p.Binary()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, bin.Data)

	restored, err := glw.ProgramFromBinary(ctx, bin)
	require.NoError(t, err)
	defer restored.Release()
	assert.Equal(t, bin.Data, ctx.loadedBinary)
	assert.Equal(t, bin.Format, ctx.loadedBinaryFormat)
}

func TestProgramBinaryUnsupported(t *testing.T) {
	ctx := newFakeContext()
	p, err := glw.BuildProgram(ctx, "v", "f")
	require.NoError(t, err)
	defer p.Release()
	_, err = p.Binary()
	require.Error(t, err)
	_, err = glw.ProgramFromBinary(ctx, glw.ProgramBinary{})
	require.Error(t, err)
}

func TestTextureUploadAndRelease(t *testing.T) {
	ctx := newFakeContext()
	tex, err := glw.NewTexture(ctx)
	require.NoError(t, err)
	tex.Upload(2, 2, make([]byte, 16))
	tex.Mipmap()
	assert.Equal(t, 1, ctx.textureUploads)
	assert.Equal(t, 1, ctx.mipmaps)
	tex.Release()
	tex.Release()
	assert.Len(t, ctx.deletedTextures, 1)
}
