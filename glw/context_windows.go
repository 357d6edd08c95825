// SPDX-License-Identifier: Unlicense OR MIT

//go:build windows

package glw

import "github.com/cadmiumgl/cadmium/gl"

// The loaded function table satisfies Context.
var _ Context = (*gl.Functions)(nil)
