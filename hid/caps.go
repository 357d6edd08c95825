// SPDX-License-Identifier: Unlicense OR MIT

package hid

// Usage identifies a control within a usage page.
type Usage uint16

// UsagePage identifies a group of related usages.
type UsagePage uint16

// Usage pages referenced by this module.
const (
	PageGenericDesktop UsagePage = 0x01
	PageSimulation     UsagePage = 0x02
	PageButton         UsagePage = 0x09
)

// Generic desktop usages.
const (
	UsagePointer   Usage = 0x01
	UsageMouse     Usage = 0x02
	UsageJoystick  Usage = 0x04
	UsageGamepad   Usage = 0x05
	UsageKeyboard  Usage = 0x06
	UsageX         Usage = 0x30
	UsageY         Usage = 0x31
	UsageZ         Usage = 0x32
	UsageRx        Usage = 0x33
	UsageRy        Usage = 0x34
	UsageRz        Usage = 0x35
	UsageSlider    Usage = 0x36
	UsageDial      Usage = 0x37
	UsageWheel     Usage = 0x38
	UsageHatSwitch Usage = 0x39
)

// ReportType selects which report direction a capability or parse
// request refers to.
type ReportType int

const (
	Input ReportType = iota
	Output
	Feature
)

func (t ReportType) String() string {
	switch t {
	case Input:
		return "input"
	case Output:
		return "output"
	case Feature:
		return "feature"
	}
	return "unknown"
}

// UsageSet is the set of usages a capability record covers. It has
// exactly two implementations, UsageRange and SingleUsage, matching
// the two shapes a capability record can take.
type UsageSet interface {
	// Contains reports whether u is in the set.
	Contains(u Usage) bool
	// First is the lowest usage in the set.
	First() Usage
	// Count is the number of usages in the set.
	Count() int
}

// UsageRange is an inclusive span of consecutive usages.
type UsageRange struct {
	Min, Max                   Usage
	DataIndexMin, DataIndexMax uint16
}

func (r UsageRange) Contains(u Usage) bool { return u >= r.Min && u <= r.Max }
func (r UsageRange) First() Usage          { return r.Min }
func (r UsageRange) Count() int            { return int(r.Max) - int(r.Min) + 1 }

// SingleUsage is a capability record covering one usage.
type SingleUsage struct {
	Usage     Usage
	DataIndex uint16
}

func (s SingleUsage) Contains(u Usage) bool { return u == s.Usage }
func (s SingleUsage) First() Usage          { return s.Usage }
func (s SingleUsage) Count() int            { return 1 }

// ButtonCaps describes a binary control or a run of binary controls.
type ButtonCaps struct {
	UsagePage  UsagePage
	ReportID   byte
	IsAbsolute bool
	Usages     UsageSet
}

// ValueCaps describes a scalar control.
type ValueCaps struct {
	UsagePage   UsagePage
	ReportID    byte
	IsAbsolute  bool
	HasNull     bool
	BitSize     int
	ReportCount int
	Units       uint32
	UnitsExp    int32
	LogicalMin  int32
	LogicalMax  int32
	PhysicalMin int32
	PhysicalMax int32
	Usages      UsageSet
}

// ArrayByteLen is the packed byte length of the control's values, the
// buffer size a value-array extraction needs.
func (v ValueCaps) ArrayByteLen() int {
	return (v.BitSize*v.ReportCount + 7) / 8
}

// DeviceStrings holds the optional string descriptors of a device.
// Absent descriptors are empty.
type DeviceStrings struct {
	Manufacturer string
	Product      string
	SerialNumber string
}

// DeviceCaps is the parsed capability summary of a device's top-level
// collection.
type DeviceCaps struct {
	Usage     Usage
	UsagePage UsagePage

	// Report byte lengths include the leading report ID byte.
	InputReportLen   int
	OutputReportLen  int
	FeatureReportLen int

	Buttons []ButtonCaps
	Values  []ValueCaps

	Name    string
	Strings DeviceStrings
}

// ButtonPages lists the distinct usage pages that appear in the
// device's input button capabilities, in first-seen order.
func (c *DeviceCaps) ButtonPages() []UsagePage {
	var pages []UsagePage
	for _, bc := range c.Buttons {
		seen := false
		for _, p := range pages {
			if p == bc.UsagePage {
				seen = true
				break
			}
		}
		if !seen {
			pages = append(pages, bc.UsagePage)
		}
	}
	return pages
}
