// SPDX-License-Identifier: Unlicense OR MIT

package glw

import (
	"errors"

	"github.com/cadmiumgl/cadmium/gl"
)

// Texture owns a texture object.
type Texture struct {
	ctx      Context
	id       gl.Texture
	released bool
}

// NewTexture allocates a texture object.
func NewTexture(ctx Context) (*Texture, error) {
	id := ctx.CreateTexture()
	if !id.Valid() {
		return nil, errors.New("glw: texture allocation failed")
	}
	return &Texture{ctx: ctx, id: id}, nil
}

func (t *Texture) ID() gl.Texture {
	return t.id
}

func (t *Texture) Bind(target gl.Enum) {
	t.ctx.BindTexture(target, t.id)
}

// Upload binds the texture as TEXTURE_2D, uploads RGBA pixels and sets
// linear filtering with edge clamping.
func (t *Texture) Upload(width, height int, pixels []byte) {
	t.ctx.BindTexture(gl.TEXTURE_2D, t.id)
	t.ctx.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, width, height, gl.RGBA, gl.UNSIGNED_BYTE, pixels)
	t.ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	t.ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	t.ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	t.ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}

// Mipmap generates the mipmap chain for the texture's current image.
func (t *Texture) Mipmap() {
	t.ctx.BindTexture(gl.TEXTURE_2D, t.id)
	t.ctx.GenerateMipmap(gl.TEXTURE_2D)
}

// Release deletes the texture object. Further calls are no-ops.
func (t *Texture) Release() {
	if t.released {
		return
	}
	t.released = true
	t.ctx.DeleteTexture(t.id)
}
