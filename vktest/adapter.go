package vktest

import "github.com/devblok/vkbind/native"

// Adapter is a fake physical device
type Adapter struct {
	Name string
	// RawName replaces Name byte for byte when set
	RawName []byte

	Type          native.PhysicalDeviceType
	APIVersion    uint32
	DriverVersion uint32
	VendorID      uint32
	DeviceID      uint32
	Limits        native.PhysicalDeviceLimits

	QueueFamilies []native.QueueFamilyProperties
	Extensions    []string
	Features      native.PhysicalDeviceFeatures
	Memory        native.PhysicalDeviceMemoryProperties
	Formats       map[native.Format]native.FormatProperties

	SurfaceFormats      []native.SurfaceFormat
	PresentModes        []native.PresentMode
	SurfaceCapabilities native.SurfaceCapabilities
}

// Layer is a fake layer
type Layer struct {
	Name string
	// RawDescription replaces Description byte for byte when set
	RawDescription        []byte
	Description           string
	SpecVersion           uint32
	ImplementationVersion uint32
	Extensions            []string
}

// Common format values used by the default adapter
const (
	FormatB8G8R8A8Unorm native.Format     = 44
	FormatR8G8B8A8Unorm native.Format     = 37
	ColorSpaceSRGB      native.ColorSpace = 0
)

// DefaultInstanceExtensions lists every instance extension the default driver offers
var DefaultInstanceExtensions = []string{
	"VK_KHR_surface",
	"VK_KHR_display",
	"VK_KHR_xlib_surface",
	"VK_KHR_xcb_surface",
	"VK_KHR_wayland_surface",
	"VK_KHR_win32_surface",
	"VK_EXT_debug_report",
	"VK_EXT_validation_flags",
	"VK_KHR_get_physical_device_properties2",
}

// DefaultDeviceExtensions lists every device extension the default adapter offers
var DefaultDeviceExtensions = []string{
	"VK_KHR_swapchain",
	"VK_KHR_maintenance1",
	"VK_KHR_push_descriptor",
	"VK_KHR_descriptor_update_template",
	"VK_EXT_debug_marker",
}

// ValidationLayer is the layer the default driver offers
var ValidationLayer = Layer{
	Name:                  "VK_LAYER_KHRONOS_validation",
	Description:           "Khronos Validation Layer",
	SpecVersion:           1<<22 | 1<<12 | 70,
	ImplementationVersion: 1,
	Extensions:            []string{"VK_EXT_debug_report", "VK_EXT_validation_flags"},
}

// DefaultAdapter returns a discrete adapter with a graphics and a transfer
// family, every feature but sparse aliasing, and two memory heaps
func DefaultAdapter() Adapter {
	a := Adapter{
		Name:          "vktest discrete",
		Type:          native.DeviceTypeDiscreteGPU,
		APIVersion:    1<<22 | 1<<12 | 70,
		DriverVersion: 42,
		VendorID:      0x1002,
		DeviceID:      0x73bf,
		Limits: native.PhysicalDeviceLimits{
			MaxImageDimension2D:      16384,
			MaxPushConstantsSize:     128,
			MaxMemoryAllocationCount: 4096,
			MaxComputeWorkGroupCount: [3]uint32{65535, 65535, 65535},
			MaxViewports:             16,
			TimestampPeriod:          1,
		},
		QueueFamilies: []native.QueueFamilyProperties{
			{
				QueueFlags:                  native.QueueGraphicsBit | native.QueueComputeBit | native.QueueTransferBit,
				QueueCount:                  4,
				TimestampValidBits:          64,
				MinImageTransferGranularity: native.Extent3D{Width: 1, Height: 1, Depth: 1},
			},
			{
				QueueFlags:                  native.QueueTransferBit | native.QueueSparseBindingBit,
				QueueCount:                  2,
				TimestampValidBits:          64,
				MinImageTransferGranularity: native.Extent3D{Width: 1, Height: 1, Depth: 1},
			},
		},
		Extensions: append([]string(nil), DefaultDeviceExtensions...),
		Formats: map[native.Format]native.FormatProperties{
			FormatB8G8R8A8Unorm: {LinearTilingFeatures: 0x1, OptimalTilingFeatures: 0x1d83, BufferFeatures: 0x58},
		},
		SurfaceFormats: []native.SurfaceFormat{
			{Format: FormatB8G8R8A8Unorm, ColorSpace: ColorSpaceSRGB},
			{Format: FormatR8G8B8A8Unorm, ColorSpace: ColorSpaceSRGB},
		},
		PresentModes: []native.PresentMode{native.PresentModeFifo, native.PresentModeMailbox},
		SurfaceCapabilities: native.SurfaceCapabilities{
			MinImageCount:           2,
			MaxImageCount:           8,
			CurrentExtent:           native.Extent2D{Width: 800, Height: 600},
			MinImageExtent:          native.Extent2D{Width: 1, Height: 1},
			MaxImageExtent:          native.Extent2D{Width: 16384, Height: 16384},
			MaxImageArrayLayers:     1,
			SupportedTransforms:     0x1,
			CurrentTransform:        0x1,
			SupportedCompositeAlpha: 0x1,
			SupportedUsageFlags:     0x1f,
		},
	}
	for i := range a.Features {
		a.Features[i] = native.True
	}
	// sparseResidencyAliased
	a.Features[52] = native.False

	a.Memory.MemoryTypeCount = 2
	a.Memory.MemoryTypes[0] = native.MemoryType{PropertyFlags: 0x1, HeapIndex: 0}
	a.Memory.MemoryTypes[1] = native.MemoryType{PropertyFlags: 0x6, HeapIndex: 1}
	a.Memory.MemoryHeapCount = 2
	a.Memory.MemoryHeaps[0] = native.MemoryHeap{Size: 8 << 30, Flags: 0x1}
	a.Memory.MemoryHeaps[1] = native.MemoryHeap{Size: 16 << 30}
	return a
}

func (a *Adapter) deviceName() []byte {
	if a.RawName != nil {
		return a.RawName
	}
	return []byte(a.Name)
}

func (l *Layer) description() []byte {
	if l.RawDescription != nil {
		return l.RawDescription
	}
	return []byte(l.Description)
}
