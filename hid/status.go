// SPDX-License-Identifier: Unlicense OR MIT

// Package hid models HID device capabilities and decodes input
// reports. The capability model and the Monitor are portable; report
// parsing is delegated to a platform Source.
package hid

import "fmt"

// Status is a HID parser status code. The values are NTSTATUS codes
// from facility 0x11; StatusSuccess is the only non-failure value.
type Status uint32

const (
	StatusSuccess              Status = 0x00110000
	StatusInvalidPreparsedData Status = 0xC0110001
	StatusInvalidReportType    Status = 0xC0110002
	StatusInvalidReportLength  Status = 0xC0110003
	StatusUsageNotFound        Status = 0xC0110004
	StatusValueOutOfRange      Status = 0xC0110005
	StatusBadLogPhyValues      Status = 0xC0110006
	StatusBufferTooSmall       Status = 0xC0110007
	StatusIncompatibleReportID Status = 0xC011000A
)

var statusText = map[Status]string{
	StatusSuccess:              "success",
	StatusInvalidPreparsedData: "invalid preparsed data",
	StatusInvalidReportType:    "invalid report type",
	StatusInvalidReportLength:  "invalid report length",
	StatusUsageNotFound:        "usage not found",
	StatusValueOutOfRange:      "value out of range",
	StatusBadLogPhyValues:      "bad logical or physical values",
	StatusBufferTooSmall:       "buffer too small",
	StatusIncompatibleReportID: "incompatible report ID",
}

func (s Status) Ok() bool {
	return s == StatusSuccess
}

// Err converts a status to an error, mapping success to nil.
func (s Status) Err() error {
	if s.Ok() {
		return nil
	}
	return s
}

func (s Status) Error() string {
	if text, ok := statusText[s]; ok {
		return fmt.Sprintf("hid: %s (0x%08X)", text, uint32(s))
	}
	return fmt.Sprintf("hid: unknown parser status 0x%08X", uint32(s))
}
