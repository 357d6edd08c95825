// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/cadmiumgl/cadmium/hid"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	assert.Equal(t, "cadmium", o.title)
	assert.Equal(t, 800, o.width)
	assert.Equal(t, 600, o.height)
	assert.NotNil(t, o.log)
	assert.Nil(t, o.monitor)
}

func TestOptionsApply(t *testing.T) {
	log := zap.NewNop()
	m := hid.NewMonitor(nil, nil)
	reports := func(*hid.Report) {}
	o := defaultOptions()
	for _, opt := range []Option{
		Title("pad viewer"),
		Size(1280, 720),
		Logger(log),
		RawInput(m, reports),
		OnSize(func(int, int) {}),
	} {
		opt(o)
	}
	assert.Equal(t, "pad viewer", o.title)
	assert.Equal(t, 1280, o.width)
	assert.Equal(t, 720, o.height)
	assert.Same(t, log, o.log)
	assert.Same(t, m, o.monitor)
	assert.NotNil(t, o.onReport)
	assert.NotNil(t, o.onSize)
}
