package core

import (
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Capability is an optional extension from the fixed menu
type Capability int

// The capability menu
const (
	KHRSurface Capability = iota
	KHRSwapchain
	KHRDisplay
	KHRXlibSurface
	KHRXcbSurface
	KHRWaylandSurface
	KHRWin32Surface
	KHRAndroidSurface
	MVKMacOSSurface
	EXTDebugReport
	EXTDebugMarker
	EXTValidationFlags
	KHRGetPhysicalDeviceProperties2
	KHRMaintenance1
	KHRPushDescriptor
	KHRDescriptorUpdateTemplate
	EXTHdrMetadata
	GOOGLEDisplayTiming
	AMDDrawIndirectCount

	capabilityCount
)

// capabilitySpec is everything a capability contributes at each scope
type capabilitySpec struct {
	name               string
	instanceExtensions []string
	deviceExtensions   []string
	instanceCommands   []string
	deviceCommands     []string
	requires           []Capability
}

var menu = [capabilityCount]capabilitySpec{
	KHRSurface: {
		name:               "khr_surface",
		instanceExtensions: []string{"VK_KHR_surface"},
		instanceCommands: []string{
			cmdDestroySurface,
			cmdGetPhysicalDeviceSurfaceSupport,
			cmdGetPhysicalDeviceSurfaceCapabilities,
			cmdGetPhysicalDeviceSurfaceFormats,
			cmdGetPhysicalDeviceSurfacePresentModes,
		},
	},
	KHRSwapchain: {
		name:             "khr_swapchain",
		deviceExtensions: []string{"VK_KHR_swapchain"},
		deviceCommands: []string{
			"vkCreateSwapchainKHR",
			"vkDestroySwapchainKHR",
			"vkGetSwapchainImagesKHR",
			"vkAcquireNextImageKHR",
			"vkQueuePresentKHR",
		},
		requires: []Capability{KHRSurface},
	},
	KHRDisplay: {
		name:               "khr_display",
		instanceExtensions: []string{"VK_KHR_display"},
		instanceCommands: []string{
			"vkGetPhysicalDeviceDisplayPropertiesKHR",
			"vkGetPhysicalDeviceDisplayPlanePropertiesKHR",
			"vkGetDisplayPlaneSupportedDisplaysKHR",
			"vkGetDisplayModePropertiesKHR",
			"vkCreateDisplayModeKHR",
			"vkGetDisplayPlaneCapabilitiesKHR",
			"vkCreateDisplayPlaneSurfaceKHR",
		},
		requires: []Capability{KHRSurface},
	},
	KHRXlibSurface: {
		name:               "khr_xlib_surface",
		instanceExtensions: []string{"VK_KHR_xlib_surface"},
		instanceCommands:   []string{"vkCreateXlibSurfaceKHR"},
		requires:           []Capability{KHRSurface},
	},
	KHRXcbSurface: {
		name:               "khr_xcb_surface",
		instanceExtensions: []string{"VK_KHR_xcb_surface"},
		instanceCommands:   []string{"vkCreateXcbSurfaceKHR"},
		requires:           []Capability{KHRSurface},
	},
	KHRWaylandSurface: {
		name:               "khr_wayland_surface",
		instanceExtensions: []string{"VK_KHR_wayland_surface"},
		instanceCommands:   []string{"vkCreateWaylandSurfaceKHR"},
		requires:           []Capability{KHRSurface},
	},
	KHRWin32Surface: {
		name:               "khr_win32_surface",
		instanceExtensions: []string{"VK_KHR_win32_surface"},
		instanceCommands:   []string{"vkCreateWin32SurfaceKHR"},
		requires:           []Capability{KHRSurface},
	},
	KHRAndroidSurface: {
		name:               "khr_android_surface",
		instanceExtensions: []string{"VK_KHR_android_surface"},
		instanceCommands:   []string{"vkCreateAndroidSurfaceKHR"},
		requires:           []Capability{KHRSurface},
	},
	MVKMacOSSurface: {
		name:               "mvk_macos_surface",
		instanceExtensions: []string{"VK_MVK_macos_surface"},
		instanceCommands:   []string{"vkCreateMacOSSurfaceMVK"},
		requires:           []Capability{KHRSurface},
	},
	EXTDebugReport: {
		name:               "ext_debug_report",
		instanceExtensions: []string{"VK_EXT_debug_report"},
		instanceCommands: []string{
			cmdCreateDebugReportCallback,
			cmdDestroyDebugReportCallback,
			cmdDebugReportMessage,
		},
	},
	EXTDebugMarker: {
		name:             "ext_debug_marker",
		deviceExtensions: []string{"VK_EXT_debug_marker"},
		deviceCommands: []string{
			"vkDebugMarkerSetObjectTagEXT",
			"vkDebugMarkerSetObjectNameEXT",
			"vkCmdDebugMarkerBeginEXT",
			"vkCmdDebugMarkerEndEXT",
			"vkCmdDebugMarkerInsertEXT",
		},
		requires: []Capability{EXTDebugReport},
	},
	EXTValidationFlags: {
		name:               "ext_validation_flags",
		instanceExtensions: []string{"VK_EXT_validation_flags"},
	},
	KHRGetPhysicalDeviceProperties2: {
		name:               "khr_get_physical_device_properties2",
		instanceExtensions: []string{"VK_KHR_get_physical_device_properties2"},
		instanceCommands: []string{
			"vkGetPhysicalDeviceFeatures2KHR",
			cmdGetPhysicalDeviceProperties2,
			"vkGetPhysicalDeviceFormatProperties2KHR",
			"vkGetPhysicalDeviceQueueFamilyProperties2KHR",
			"vkGetPhysicalDeviceMemoryProperties2KHR",
		},
	},
	KHRMaintenance1: {
		name:             "khr_maintenance1",
		deviceExtensions: []string{"VK_KHR_maintenance1"},
		deviceCommands:   []string{"vkTrimCommandPoolKHR"},
	},
	KHRPushDescriptor: {
		name:             "khr_push_descriptor",
		deviceExtensions: []string{"VK_KHR_push_descriptor"},
		deviceCommands:   []string{"vkCmdPushDescriptorSetKHR"},
		requires:         []Capability{KHRGetPhysicalDeviceProperties2},
	},
	KHRDescriptorUpdateTemplate: {
		name:             "khr_descriptor_update_template",
		deviceExtensions: []string{"VK_KHR_descriptor_update_template"},
		deviceCommands: []string{
			"vkCreateDescriptorUpdateTemplateKHR",
			"vkDestroyDescriptorUpdateTemplateKHR",
			"vkUpdateDescriptorSetWithTemplateKHR",
		},
	},
	EXTHdrMetadata: {
		name:             "ext_hdr_metadata",
		deviceExtensions: []string{"VK_EXT_hdr_metadata"},
		deviceCommands:   []string{"vkSetHdrMetadataEXT"},
		requires:         []Capability{KHRSwapchain},
	},
	GOOGLEDisplayTiming: {
		name:             "google_display_timing",
		deviceExtensions: []string{"VK_GOOGLE_display_timing"},
		deviceCommands: []string{
			"vkGetRefreshCycleDurationGOOGLE",
			"vkGetPastPresentationTimingGOOGLE",
		},
		requires: []Capability{KHRSwapchain},
	},
	AMDDrawIndirectCount: {
		name:             "amd_draw_indirect_count",
		deviceExtensions: []string{"VK_AMD_draw_indirect_count"},
		deviceCommands: []string{
			"vkCmdDrawIndirectCountAMD",
			"vkCmdDrawIndexedIndirectCountAMD",
		},
	},
}

var (
	capabilityByName      = map[string]Capability{}
	capabilityByExtension = map[string]Capability{}
)

func init() {
	for c := Capability(0); c < capabilityCount; c++ {
		capabilityByName[menu[c].name] = c
		for _, ext := range menu[c].instanceExtensions {
			capabilityByExtension[ext] = c
		}
		for _, ext := range menu[c].deviceExtensions {
			capabilityByExtension[ext] = c
		}
	}
}

// String returns the menu name
func (c Capability) String() string {
	if !c.valid() {
		return "capability(" + strconv.Itoa(int(c)) + ")"
	}
	return menu[c].name
}

func (c Capability) valid() bool {
	return c >= 0 && c < capabilityCount
}

// InstanceScoped reports whether the capability enables anything at instance creation
func (c Capability) InstanceScoped() bool {
	return c.valid() && len(menu[c].instanceExtensions) > 0
}

// DeviceScoped reports whether the capability enables anything at device creation
func (c Capability) DeviceScoped() bool {
	return c.valid() && len(menu[c].deviceExtensions) > 0
}

// Extensions returns the native extension names the capability turns on
func (c Capability) Extensions() []string {
	if !c.valid() {
		return nil
	}
	return append(append([]string(nil), menu[c].instanceExtensions...), menu[c].deviceExtensions...)
}

// Requires returns the capabilities that must be enabled alongside c
func (c Capability) Requires() []Capability {
	if !c.valid() {
		return nil
	}
	return append([]Capability(nil), menu[c].requires...)
}

// Menu lists every capability name, sorted
func Menu() []string {
	names := maps.Keys(capabilityByName)
	slices.Sort(names)
	return names
}

// ParseCapability looks a capability up by its menu name
func ParseCapability(name string) (Capability, error) {
	c, ok := capabilityByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, generalError("core.ParseCapability", "unknown capability %q", name)
	}
	return c, nil
}

// ParseCapabilities parses a list of menu names, skipping empty entries
func ParseCapabilities(names []string) ([]Capability, error) {
	var caps []Capability
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		c, err := ParseCapability(name)
		if err != nil {
			return nil, err
		}
		caps = append(caps, c)
	}
	return caps, nil
}

// CapabilitiesForExtensions maps native extension names, such as the list a
// window toolkit reports as required, back onto the menu
func CapabilitiesForExtensions(extensions []string) ([]Capability, error) {
	var set CapabilitySet
	for _, ext := range extensions {
		c, ok := capabilityByExtension[strings.TrimRight(ext, "\x00")]
		if !ok {
			return nil, generalError("core.CapabilitiesForExtensions", "extension %q has no capability", ext)
		}
		set = set.With(c)
	}
	return set.List(), nil
}

// CapabilitySet is a set of capabilities
type CapabilitySet uint64

// NewCapabilitySet builds a set from a list
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	var s CapabilitySet
	for _, c := range caps {
		s = s.With(c)
	}
	return s
}

// With returns the set including c
func (s CapabilitySet) With(c Capability) CapabilitySet {
	return s | 1<<uint(c)
}

// Has reports membership
func (s CapabilitySet) Has(c Capability) bool {
	return c.valid() && s&(1<<uint(c)) != 0
}

// Union merges two sets
func (s CapabilitySet) Union(o CapabilitySet) CapabilitySet {
	return s | o
}

// List returns the members in menu order
func (s CapabilitySet) List() []Capability {
	var caps []Capability
	for c := Capability(0); c < capabilityCount; c++ {
		if s.Has(c) {
			caps = append(caps, c)
		}
	}
	return caps
}

// Names returns the menu names of the members in menu order
func (s CapabilitySet) Names() []string {
	var names []string
	for _, c := range s.List() {
		names = append(names, c.String())
	}
	return names
}

// resolveCapabilities validates caps for one scope and checks every
// requirement against the union of caps and the already enabled set.
func resolveCapabilities(op string, caps []Capability, scoped func(Capability) bool, enabled CapabilitySet) (CapabilitySet, error) {
	var set CapabilitySet
	for _, c := range caps {
		if !c.valid() {
			return 0, generalError(op, "unknown capability %d", int(c))
		}
		if !scoped(c) {
			return 0, generalError(op, "capability %s cannot be enabled at this scope", c)
		}
		set = set.With(c)
	}
	all := set.Union(enabled)
	for _, c := range set.List() {
		for _, req := range menu[c].requires {
			if !all.Has(req) {
				return 0, generalError(op, "capability %s requires %s", c, req)
			}
		}
	}
	return set, nil
}

// extensionNames collects the sorted native extension names of a set
func extensionNames(set CapabilitySet, instance bool) []string {
	seen := map[string]struct{}{}
	for _, c := range set.List() {
		exts := menu[c].deviceExtensions
		if instance {
			exts = menu[c].instanceExtensions
		}
		for _, ext := range exts {
			seen[ext] = struct{}{}
		}
	}
	names := maps.Keys(seen)
	slices.Sort(names)
	return names
}
