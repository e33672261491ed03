package core

import (
	"unsafe"

	"github.com/devblok/vkbind/native"
)

// DeviceType classifies an adapter
type DeviceType int32

// Adapter classes
const (
	DeviceTypeOther DeviceType = iota
	DeviceTypeIntegratedGPU
	DeviceTypeDiscreteGPU
	DeviceTypeVirtualGPU
	DeviceTypeCPU
)

func (t DeviceType) String() string {
	switch t {
	case DeviceTypeIntegratedGPU:
		return "integrated gpu"
	case DeviceTypeDiscreteGPU:
		return "discrete gpu"
	case DeviceTypeVirtualGPU:
		return "virtual gpu"
	case DeviceTypeCPU:
		return "cpu"
	default:
		return "other"
	}
}

// Extent2D is a width and height pair
type Extent2D struct {
	Width  uint32
	Height uint32
}

// Extent3D is a width, height and depth triple
type Extent3D struct {
	Width  uint32
	Height uint32
	Depth  uint32
}

// Limits is the numeric subset of an adapter's implementation limits
type Limits struct {
	MaxImageDimension1D                uint32
	MaxImageDimension2D                uint32
	MaxImageDimension3D                uint32
	MaxImageDimensionCube              uint32
	MaxImageArrayLayers                uint32
	MaxTexelBufferElements             uint32
	MaxUniformBufferRange              uint32
	MaxStorageBufferRange              uint32
	MaxPushConstantsSize               uint32
	MaxMemoryAllocationCount           uint32
	MaxSamplerAllocationCount          uint32
	BufferImageGranularity             uint64
	SparseAddressSpaceSize             uint64
	MaxBoundDescriptorSets             uint32
	MaxComputeSharedMemorySize         uint32
	MaxComputeWorkGroupCount           [3]uint32
	MaxComputeWorkGroupInvocations     uint32
	MaxComputeWorkGroupSize            [3]uint32
	MaxViewports                       uint32
	MaxViewportDimensions              [2]uint32
	MinMemoryMapAlignment              uint64
	MinUniformBufferOffsetAlignment    uint64
	MinStorageBufferOffsetAlignment    uint64
	MaxFramebufferWidth                uint32
	MaxFramebufferHeight               uint32
	MaxFramebufferLayers               uint32
	MaxColorAttachments                uint32
	TimestampPeriod                    float32
	MaxSamplerAnisotropy               float32
	OptimalBufferCopyRowPitchAlignment uint64
	NonCoherentAtomSize                uint64
}

// SparseProperties lists sparse residency behaviour
type SparseProperties struct {
	ResidencyStandard2DBlockShape            bool
	ResidencyStandard2DMultisampleBlockShape bool
	ResidencyStandard3DBlockShape            bool
	ResidencyAlignedMipSize                  bool
	ResidencyNonResidentStrict               bool
}

// Properties describes an adapter
type Properties struct {
	APIVersion        Version
	DriverVersion     uint32
	VendorID          uint32
	DeviceID          uint32
	DeviceType        DeviceType
	DeviceName        string
	PipelineCacheUUID [native.UUIDSize]byte
	Limits            Limits
	SparseProperties  SparseProperties
}

// QueueFamily describes one queue family of an adapter
type QueueFamily struct {
	Flags                       native.QueueFlags
	QueueCount                  uint32
	TimestampValidBits          uint32
	MinImageTransferGranularity Extent3D
}

// Graphics reports graphics support
func (q QueueFamily) Graphics() bool { return q.Flags&native.QueueGraphicsBit != 0 }

// Compute reports compute support
func (q QueueFamily) Compute() bool { return q.Flags&native.QueueComputeBit != 0 }

// Transfer reports transfer support
func (q QueueFamily) Transfer() bool { return q.Flags&native.QueueTransferBit != 0 }

// SparseBinding reports sparse binding support
func (q QueueFamily) SparseBinding() bool { return q.Flags&native.QueueSparseBindingBit != 0 }

// Extension names an extension and its revision
type Extension struct {
	Name        string
	SpecVersion uint32
}

// Layer describes a layer. Description is diagnostic text and may carry
// replacement characters where the driver reported invalid UTF-8.
type Layer struct {
	Name                  string
	SpecVersion           Version
	ImplementationVersion uint32
	Description           string
}

// FormatProperties lists the features supported for a format
type FormatProperties struct {
	LinearTilingFeatures  native.FormatFeatureFlags
	OptimalTilingFeatures native.FormatFeatureFlags
	BufferFeatures        native.FormatFeatureFlags
}

// MemoryType is one entry of the memory type table
type MemoryType struct {
	Flags     native.MemoryPropertyFlags
	HeapIndex uint32
}

// MemoryHeap is one entry of the memory heap table
type MemoryHeap struct {
	Size  uint64
	Flags native.MemoryHeapFlags
}

// MemoryProperties holds an adapter's memory types and heaps
type MemoryProperties struct {
	Types []MemoryType
	Heaps []MemoryHeap
}

// TotalHeapSize sums every heap
func (m MemoryProperties) TotalHeapSize() uint64 {
	var total uint64
	for _, h := range m.Heaps {
		total += h.Size
	}
	return total
}

// SurfaceFormat pairs a format with a color space
type SurfaceFormat struct {
	Format     native.Format
	ColorSpace native.ColorSpace
}

// SurfaceCapabilities describes what a surface accepts
type SurfaceCapabilities struct {
	MinImageCount           uint32
	MaxImageCount           uint32
	CurrentExtent           Extent2D
	MinImageExtent          Extent2D
	MaxImageExtent          Extent2D
	MaxImageArrayLayers     uint32
	SupportedTransforms     native.SurfaceTransformFlags
	CurrentTransform        native.SurfaceTransformFlags
	SupportedCompositeAlpha native.CompositeAlphaFlags
	SupportedUsageFlags     native.ImageUsageFlags
}

// Records whose layout matches their native counterpart. Each pair fails
// to compile when the sizes drift apart in either direction.
var (
	_ [unsafe.Sizeof(Extent2D{}) - unsafe.Sizeof(native.Extent2D{})]struct{}
	_ [unsafe.Sizeof(native.Extent2D{}) - unsafe.Sizeof(Extent2D{})]struct{}
	_ [unsafe.Sizeof(Extent3D{}) - unsafe.Sizeof(native.Extent3D{})]struct{}
	_ [unsafe.Sizeof(native.Extent3D{}) - unsafe.Sizeof(Extent3D{})]struct{}
	_ [unsafe.Sizeof(Limits{}) - unsafe.Sizeof(native.PhysicalDeviceLimits{})]struct{}
	_ [unsafe.Sizeof(native.PhysicalDeviceLimits{}) - unsafe.Sizeof(Limits{})]struct{}
	_ [unsafe.Sizeof(QueueFamily{}) - unsafe.Sizeof(native.QueueFamilyProperties{})]struct{}
	_ [unsafe.Sizeof(native.QueueFamilyProperties{}) - unsafe.Sizeof(QueueFamily{})]struct{}
	_ [unsafe.Sizeof(FormatProperties{}) - unsafe.Sizeof(native.FormatProperties{})]struct{}
	_ [unsafe.Sizeof(native.FormatProperties{}) - unsafe.Sizeof(FormatProperties{})]struct{}
	_ [unsafe.Sizeof(MemoryType{}) - unsafe.Sizeof(native.MemoryType{})]struct{}
	_ [unsafe.Sizeof(native.MemoryType{}) - unsafe.Sizeof(MemoryType{})]struct{}
	_ [unsafe.Sizeof(MemoryHeap{}) - unsafe.Sizeof(native.MemoryHeap{})]struct{}
	_ [unsafe.Sizeof(native.MemoryHeap{}) - unsafe.Sizeof(MemoryHeap{})]struct{}
	_ [unsafe.Sizeof(SurfaceFormat{}) - unsafe.Sizeof(native.SurfaceFormat{})]struct{}
	_ [unsafe.Sizeof(native.SurfaceFormat{}) - unsafe.Sizeof(SurfaceFormat{})]struct{}
	_ [unsafe.Sizeof(SurfaceCapabilities{}) - unsafe.Sizeof(native.SurfaceCapabilities{})]struct{}
	_ [unsafe.Sizeof(native.SurfaceCapabilities{}) - unsafe.Sizeof(SurfaceCapabilities{})]struct{}
)

func convertExtent2D(raw native.Extent2D) Extent2D {
	return Extent2D{Width: raw.Width, Height: raw.Height}
}

func convertExtent3D(raw native.Extent3D) Extent3D {
	return Extent3D{Width: raw.Width, Height: raw.Height, Depth: raw.Depth}
}

func convertLimits(raw *native.PhysicalDeviceLimits) Limits {
	return Limits{
		MaxImageDimension1D:                raw.MaxImageDimension1D,
		MaxImageDimension2D:                raw.MaxImageDimension2D,
		MaxImageDimension3D:                raw.MaxImageDimension3D,
		MaxImageDimensionCube:              raw.MaxImageDimensionCube,
		MaxImageArrayLayers:                raw.MaxImageArrayLayers,
		MaxTexelBufferElements:             raw.MaxTexelBufferElements,
		MaxUniformBufferRange:              raw.MaxUniformBufferRange,
		MaxStorageBufferRange:              raw.MaxStorageBufferRange,
		MaxPushConstantsSize:               raw.MaxPushConstantsSize,
		MaxMemoryAllocationCount:           raw.MaxMemoryAllocationCount,
		MaxSamplerAllocationCount:          raw.MaxSamplerAllocationCount,
		BufferImageGranularity:             raw.BufferImageGranularity,
		SparseAddressSpaceSize:             raw.SparseAddressSpaceSize,
		MaxBoundDescriptorSets:             raw.MaxBoundDescriptorSets,
		MaxComputeSharedMemorySize:         raw.MaxComputeSharedMemorySize,
		MaxComputeWorkGroupCount:           raw.MaxComputeWorkGroupCount,
		MaxComputeWorkGroupInvocations:     raw.MaxComputeWorkGroupInvocations,
		MaxComputeWorkGroupSize:            raw.MaxComputeWorkGroupSize,
		MaxViewports:                       raw.MaxViewports,
		MaxViewportDimensions:              raw.MaxViewportDimensions,
		MinMemoryMapAlignment:              raw.MinMemoryMapAlignment,
		MinUniformBufferOffsetAlignment:    raw.MinUniformBufferOffsetAlignment,
		MinStorageBufferOffsetAlignment:    raw.MinStorageBufferOffsetAlignment,
		MaxFramebufferWidth:                raw.MaxFramebufferWidth,
		MaxFramebufferHeight:               raw.MaxFramebufferHeight,
		MaxFramebufferLayers:               raw.MaxFramebufferLayers,
		MaxColorAttachments:                raw.MaxColorAttachments,
		TimestampPeriod:                    raw.TimestampPeriod,
		MaxSamplerAnisotropy:               raw.MaxSamplerAnisotropy,
		OptimalBufferCopyRowPitchAlignment: raw.OptimalBufferCopyRowPitchAlignment,
		NonCoherentAtomSize:                raw.NonCoherentAtomSize,
	}
}

func convertSparseProperties(raw *native.PhysicalDeviceSparseProperties) SparseProperties {
	return SparseProperties{
		ResidencyStandard2DBlockShape:            raw.ResidencyStandard2DBlockShape != native.False,
		ResidencyStandard2DMultisampleBlockShape: raw.ResidencyStandard2DMultisampleBlockShape != native.False,
		ResidencyStandard3DBlockShape:            raw.ResidencyStandard3DBlockShape != native.False,
		ResidencyAlignedMipSize:                  raw.ResidencyAlignedMipSize != native.False,
		ResidencyNonResidentStrict:               raw.ResidencyNonResidentStrict != native.False,
	}
}

func convertProperties(op string, raw *native.PhysicalDeviceProperties) (Properties, error) {
	name, err := goString(op, "device name", raw.DeviceName[:])
	if err != nil {
		return Properties{}, err
	}
	return Properties{
		APIVersion:        UnpackVersion(raw.APIVersion),
		DriverVersion:     raw.DriverVersion,
		VendorID:          raw.VendorID,
		DeviceID:          raw.DeviceID,
		DeviceType:        DeviceType(raw.DeviceType),
		DeviceName:        name,
		PipelineCacheUUID: raw.PipelineCacheUUID,
		Limits:            convertLimits(&raw.Limits),
		SparseProperties:  convertSparseProperties(&raw.SparseProperties),
	}, nil
}

func convertQueueFamily(raw *native.QueueFamilyProperties) (QueueFamily, error) {
	return QueueFamily{
		Flags:                       raw.QueueFlags,
		QueueCount:                  raw.QueueCount,
		TimestampValidBits:          raw.TimestampValidBits,
		MinImageTransferGranularity: convertExtent3D(raw.MinImageTransferGranularity),
	}, nil
}

func convertExtension(op string, raw *native.ExtensionProperties) (Extension, error) {
	name, err := goString(op, "extension name", raw.ExtensionName[:])
	if err != nil {
		return Extension{}, err
	}
	return Extension{Name: name, SpecVersion: raw.SpecVersion}, nil
}

func convertLayer(op string, raw *native.LayerProperties) (Layer, error) {
	name, err := goString(op, "layer name", raw.LayerName[:])
	if err != nil {
		return Layer{}, err
	}
	return Layer{
		Name:                  name,
		SpecVersion:           UnpackVersion(raw.SpecVersion),
		ImplementationVersion: raw.ImplementationVersion,
		Description:           goStringLossy(raw.Description[:]),
	}, nil
}

func convertFormatProperties(raw *native.FormatProperties) FormatProperties {
	return FormatProperties{
		LinearTilingFeatures:  raw.LinearTilingFeatures,
		OptimalTilingFeatures: raw.OptimalTilingFeatures,
		BufferFeatures:        raw.BufferFeatures,
	}
}

func convertMemoryProperties(op string, raw *native.PhysicalDeviceMemoryProperties) (MemoryProperties, error) {
	if raw.MemoryTypeCount > native.MaxMemoryTypes {
		return MemoryProperties{}, nativeErrorf(op, native.ErrorIncompatibleDriver, "%d memory types reported, at most %d fit", raw.MemoryTypeCount, native.MaxMemoryTypes)
	}
	if raw.MemoryHeapCount > native.MaxMemoryHeaps {
		return MemoryProperties{}, nativeErrorf(op, native.ErrorIncompatibleDriver, "%d memory heaps reported, at most %d fit", raw.MemoryHeapCount, native.MaxMemoryHeaps)
	}
	m := MemoryProperties{
		Types: make([]MemoryType, 0, raw.MemoryTypeCount),
		Heaps: make([]MemoryHeap, 0, raw.MemoryHeapCount),
	}
	for _, t := range raw.MemoryTypes[:raw.MemoryTypeCount] {
		m.Types = append(m.Types, MemoryType{Flags: t.PropertyFlags, HeapIndex: t.HeapIndex})
	}
	for _, h := range raw.MemoryHeaps[:raw.MemoryHeapCount] {
		m.Heaps = append(m.Heaps, MemoryHeap{Size: h.Size, Flags: h.Flags})
	}
	return m, nil
}

func convertSurfaceFormat(raw *native.SurfaceFormat) (SurfaceFormat, error) {
	return SurfaceFormat{Format: raw.Format, ColorSpace: raw.ColorSpace}, nil
}

func convertSurfaceCapabilities(raw *native.SurfaceCapabilities) SurfaceCapabilities {
	return SurfaceCapabilities{
		MinImageCount:           raw.MinImageCount,
		MaxImageCount:           raw.MaxImageCount,
		CurrentExtent:           convertExtent2D(raw.CurrentExtent),
		MinImageExtent:          convertExtent2D(raw.MinImageExtent),
		MaxImageExtent:          convertExtent2D(raw.MaxImageExtent),
		MaxImageArrayLayers:     raw.MaxImageArrayLayers,
		SupportedTransforms:     raw.SupportedTransforms,
		CurrentTransform:        raw.CurrentTransform,
		SupportedCompositeAlpha: raw.SupportedCompositeAlpha,
		SupportedUsageFlags:     raw.SupportedUsageFlags,
	}
}
