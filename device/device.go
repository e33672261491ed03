// Package device summarizes adapters and picks one to build a logical
// device on.
package device

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"

	"github.com/devblok/vkbind/core"
)

// Info describes available physical properties of an adapter
type Info struct {
	ID            int
	VendorID      int
	DriverVersion int
	APIVersion    core.Version
	Name          string
	Type          core.DeviceType
	// Invalid is set when any query on the adapter failed; the remaining
	// fields hold whatever was read before and after the failure
	Invalid       bool
	Extensions    []string
	QueueFamilies []core.QueueFamily
	Memory        uint64
	Features      core.Features
}

// HasExtension reports whether the adapter offers the named extension
func (i Info) HasExtension(name string) bool {
	return slices.Contains(i.Extensions, name)
}

// GraphicsFamily returns the first queue family with graphics support
func (i Info) GraphicsFamily() (uint32, bool) {
	for idx, f := range i.QueueFamilies {
		if f.Graphics() && f.QueueCount > 0 {
			return uint32(idx), true
		}
	}
	return 0, false
}

// Describe reads everything Info holds from a. Query failures are logged and
// mark the result Invalid.
func Describe(a *core.Adapter) Info {
	var info Info
	invalid := func(query string, err error) {
		info.Invalid = true
		logrus.WithError(err).WithField("query", query).Warn("adapter query failed")
	}

	if props, err := a.Properties(); err != nil {
		invalid("properties", err)
	} else {
		info.ID = int(props.DeviceID)
		info.VendorID = int(props.VendorID)
		info.DriverVersion = int(props.DriverVersion)
		info.APIVersion = props.APIVersion
		info.Name = props.DeviceName
		info.Type = props.DeviceType
	}

	if exts, err := a.ExtensionProperties(); err != nil {
		invalid("extensions", err)
	} else {
		for _, e := range exts {
			info.Extensions = append(info.Extensions, e.Name)
		}
	}

	if families, err := a.QueueFamilyProperties(); err != nil {
		invalid("queue families", err)
	} else {
		info.QueueFamilies = families
	}

	if mem, err := a.MemoryProperties(); err != nil {
		invalid("memory", err)
	} else {
		info.Memory = mem.TotalHeapSize()
	}

	if features, err := a.Features(); err != nil {
		invalid("features", err)
	} else {
		info.Features = features
	}
	return info
}

// DescribeAll describes every adapter in order
func DescribeAll(adapters []*core.Adapter) []Info {
	infos := make([]Info, len(adapters))
	for i, a := range adapters {
		infos[i] = Describe(a)
	}
	return infos
}
