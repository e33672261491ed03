package core

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	versionMajorMask = 0xFFC00000
	versionMinorMask = 0x003FF000
	versionPatchMask = 0x00000FFF
)

// Version is a major.minor.patch triple. Pack keeps 10 bits of major,
// 10 bits of minor and 12 bits of patch; wider components are truncated.
type Version struct {
	Major uint32
	Minor uint32
	Patch uint32
}

// Pack encodes the version into its native 32 bit form
func (v Version) Pack() uint32 {
	return (v.Major<<22)&versionMajorMask | (v.Minor<<12)&versionMinorMask | v.Patch&versionPatchMask
}

// UnpackVersion decodes a packed native version
func UnpackVersion(packed uint32) Version {
	return Version{
		Major: (packed & versionMajorMask) >> 22,
		Minor: (packed & versionMinorMask) >> 12,
		Patch: packed & versionPatchMask,
	}
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ParseVersion reads "major", "major.minor" or "major.minor.patch"
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) == 0 || len(parts) > 3 {
		return Version{}, generalError("core.ParseVersion", "malformed version %q", s)
	}
	var fields [3]uint32
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return Version{}, generalError("core.ParseVersion", "malformed version %q", s)
		}
		fields[i] = uint32(n)
	}
	return Version{Major: fields[0], Minor: fields[1], Patch: fields[2]}, nil
}
