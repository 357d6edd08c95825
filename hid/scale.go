// SPDX-License-Identifier: Unlicense OR MIT

package hid

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// ErrNonZeroLogicalMin reports a control whose logical range does not
// start at zero. Such controls cannot be normalized without an offset
// convention.
//
// TODO: support offset ranges once a device that reports one is
// available to validate the sign handling against.
var ErrNonZeroLogicalMin = errors.New("hid: control has non-zero logical minimum")

// Normalize maps a raw control value onto [0, 1] relative to the
// control's logical range. The result is clamped: devices are known to
// report values past their declared logical maximum.
func Normalize(raw uint32, vc ValueCaps) (float32, error) {
	if vc.LogicalMax <= 0 {
		return 0, fmt.Errorf("hid: control has no usable logical maximum (%d)", vc.LogicalMax)
	}
	if vc.LogicalMin != 0 {
		return 0, ErrNonZeroLogicalMin
	}
	return math32.Min(float32(raw)/float32(vc.LogicalMax), 1), nil
}

// Centered maps a raw control value onto [-1, 1], treating the middle
// of the logical range as rest position. Axes on game controllers
// report this way.
func Centered(raw uint32, vc ValueCaps) (float32, error) {
	n, err := Normalize(raw, vc)
	if err != nil {
		return 0, err
	}
	return math32.Max(2*n-1, -1), nil
}
