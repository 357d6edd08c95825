// SPDX-License-Identifier: Unlicense OR MIT

package glw

import (
	"errors"

	"github.com/cadmiumgl/cadmium/gl"
)

// Buffer owns a GL buffer object.
type Buffer struct {
	ctx      Context
	id       gl.Buffer
	released bool
}

// NewBuffer allocates a buffer object.
func NewBuffer(ctx Context) (*Buffer, error) {
	id := ctx.CreateBuffer()
	if !id.Valid() {
		return nil, errors.New("glw: buffer allocation failed")
	}
	return &Buffer{ctx: ctx, id: id}, nil
}

// ID is the underlying object name.
func (b *Buffer) ID() gl.Buffer {
	return b.id
}

func (b *Buffer) Bind(target gl.Enum) {
	b.ctx.BindBuffer(target, b.id)
}

// SetData binds the buffer to target and uploads data.
func (b *Buffer) SetData(target gl.Enum, data []byte, usage gl.Enum) {
	b.ctx.BindBuffer(target, b.id)
	b.ctx.BufferData(target, data, usage)
}

// Release deletes the buffer object. Further calls are no-ops.
func (b *Buffer) Release() {
	if b.released {
		return
	}
	b.released = true
	b.ctx.DeleteBuffer(b.id)
}

// VertexArray owns a vertex array object.
type VertexArray struct {
	ctx      Context
	id       gl.VertexArray
	released bool
}

// NewVertexArray allocates a vertex array object.
func NewVertexArray(ctx Context) (*VertexArray, error) {
	id := ctx.CreateVertexArray()
	if !id.Valid() {
		return nil, errors.New("glw: vertex array allocation failed")
	}
	return &VertexArray{ctx: ctx, id: id}, nil
}

func (a *VertexArray) ID() gl.VertexArray {
	return a.id
}

func (a *VertexArray) Bind() {
	a.ctx.BindVertexArray(a.id)
}

// Release deletes the vertex array object. Further calls are no-ops.
func (a *VertexArray) Release() {
	if a.released {
		return
	}
	a.released = true
	a.ctx.DeleteVertexArray(a.id)
}
