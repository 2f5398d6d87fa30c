// Package mavproto is the camera server's wire codec (spec component A):
// domain data types for the MAVLink camera dialect, firmware-version
// pack/parse, domain<->wire enum translation, and builders that turn those
// domain types into the gomavlib common-dialect message structs actually
// sent on the wire. Byte-level MAVLink v2 framing (CRC, sequence numbers,
// signing) is left to gomavlib, matching how this module's teacher never
// hand-rolls framing either.
package mavproto

import (
	"fmt"
	"strconv"
	"strings"
)

// FirmwareVersion is the domain representation of a camera's firmware
// version, written as "major.minor.patch.dev" and packed on the wire as a
// single uint32 per the MAVLink CAMERA_INFORMATION convention:
// dev<<24 | patch<<16 | minor<<8 | major.
type FirmwareVersion struct {
	Major uint8
	Minor uint8
	Patch uint8
	Dev   uint8
}

// ParseFirmwareVersion parses a dotted-quad firmware version string. An
// empty string is valid and parses to the zero version. A malformed string
// returns an error.
func ParseFirmwareVersion(s string) (FirmwareVersion, error) {
	if s == "" {
		return FirmwareVersion{}, nil
	}

	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return FirmwareVersion{}, fmt.Errorf("mavproto: malformed firmware version %q", s)
	}

	var fields [4]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return FirmwareVersion{}, fmt.Errorf("mavproto: malformed firmware version %q", s)
		}
		fields[i] = uint8(n)
	}

	return FirmwareVersion{Major: fields[0], Minor: fields[1], Patch: fields[2], Dev: fields[3]}, nil
}

// Pack encodes the version into the MAVLink CAMERA_INFORMATION wire uint32.
func (v FirmwareVersion) Pack() uint32 {
	return uint32(v.Dev)<<24 | uint32(v.Patch)<<16 | uint32(v.Minor)<<8 | uint32(v.Major)
}

// UnpackFirmwareVersion decodes a MAVLink CAMERA_INFORMATION firmware_version
// uint32 back into its domain representation.
func UnpackFirmwareVersion(packed uint32) FirmwareVersion {
	return FirmwareVersion{
		Major: uint8(packed),
		Minor: uint8(packed >> 8),
		Patch: uint8(packed >> 16),
		Dev:   uint8(packed >> 24),
	}
}

// String renders the version back in "major.minor.patch.dev" form.
func (v FirmwareVersion) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Patch, v.Dev)
}
