// SPDX-License-Identifier: Unlicense OR MIT

// Package app opens native windows with a GL context and feeds raw
// input to a hid.Monitor.
package app

import (
	"go.uber.org/zap"

	"github.com/cadmiumgl/cadmium/hid"
)

// Option configures a Window.
type Option func(*options)

type options struct {
	title         string
	width, height int
	log           *zap.Logger
	monitor       *hid.Monitor
	onReport      func(*hid.Report)
	onSize        func(width, height int)
}

func defaultOptions() *options {
	return &options{
		title:  "cadmium",
		width:  800,
		height: 600,
		log:    zap.NewNop(),
	}
}

// Title sets the window title.
func Title(t string) Option {
	return func(o *options) {
		o.title = t
	}
}

// Size sets the initial window client size in pixels.
func Size(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// Logger sets the window's logger. The default discards everything.
func Logger(log *zap.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// RawInput subscribes the window to raw HID input. Gamepad and
// joystick devices are registered for delivery; m tracks their
// capabilities and decodes their reports, which are handed to report.
func RawInput(m *hid.Monitor, report func(*hid.Report)) Option {
	return func(o *options) {
		o.monitor = m
		o.onReport = report
	}
}

// OnSize sets a callback invoked when the window client size changes.
func OnSize(f func(width, height int)) Option {
	return func(o *options) {
		o.onSize = f
	}
}
