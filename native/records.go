package native

// Fixed array sizes used by the native records
const (
	MaxPhysicalDeviceNameSize = 256
	MaxExtensionNameSize      = 256
	MaxDescriptionSize        = 256
	UUIDSize                  = 16
	MaxMemoryTypes            = 32
	MaxMemoryHeaps            = 16
	FeatureCount              = 55
)

// Opaque pass-through values
type (
	Format                uint32
	ColorSpace            uint32
	PresentMode           int32
	PhysicalDeviceType    int32
	ValidationCheck       int32
	QueueFlags            uint32
	FormatFeatureFlags    uint32
	MemoryPropertyFlags   uint32
	MemoryHeapFlags       uint32
	SurfaceTransformFlags uint32
	CompositeAlphaFlags   uint32
	ImageUsageFlags       uint32
	DebugReportFlags      uint32
	DebugReportObjectType int32
)

// Present modes
const (
	PresentModeImmediate               PresentMode = 0
	PresentModeMailbox                 PresentMode = 1
	PresentModeFifo                    PresentMode = 2
	PresentModeFifoRelaxed             PresentMode = 3
	PresentModeSharedDemandRefresh     PresentMode = 1000111000
	PresentModeSharedContinuousRefresh PresentMode = 1000111001
)

// Physical device types
const (
	DeviceTypeOther PhysicalDeviceType = iota
	DeviceTypeIntegratedGPU
	DeviceTypeDiscreteGPU
	DeviceTypeVirtualGPU
	DeviceTypeCPU
)

// Validation checks that can be disabled with ext_validation_flags
const (
	ValidationCheckAll     ValidationCheck = 0
	ValidationCheckShaders ValidationCheck = 1
)

// Queue capability bits
const (
	QueueGraphicsBit      QueueFlags = 0x1
	QueueComputeBit       QueueFlags = 0x2
	QueueTransferBit      QueueFlags = 0x4
	QueueSparseBindingBit QueueFlags = 0x8
)

// Debug report severities
const (
	DebugReportInformationBit        DebugReportFlags = 0x1
	DebugReportWarningBit            DebugReportFlags = 0x2
	DebugReportPerformanceWarningBit DebugReportFlags = 0x4
	DebugReportErrorBit              DebugReportFlags = 0x8
	DebugReportDebugBit              DebugReportFlags = 0x10
)

// ApplicationInfo carries NUL terminated names
type ApplicationInfo struct {
	ApplicationName    []byte
	ApplicationVersion uint32
	EngineName         []byte
	EngineVersion      uint32
	APIVersion         uint32
}

// ValidationFlags is chained onto instance creation by ext_validation_flags
type ValidationFlags struct {
	DisabledValidationChecks []ValidationCheck
}

// InstanceCreateInfo describes instance creation. Every name is NUL terminated.
type InstanceCreateInfo struct {
	ApplicationInfo       *ApplicationInfo
	EnabledLayerNames     [][]byte
	EnabledExtensionNames [][]byte
	ValidationFlags       *ValidationFlags
}

// DeviceQueueCreateInfo requests queues from one family
type DeviceQueueCreateInfo struct {
	QueueFamilyIndex uint32
	QueuePriorities  []float32
}

// DeviceCreateInfo describes logical device creation
type DeviceCreateInfo struct {
	QueueCreateInfos      []DeviceQueueCreateInfo
	EnabledExtensionNames [][]byte
	EnabledFeatures       *PhysicalDeviceFeatures
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

// PhysicalDeviceLimits is the numeric subset of the implementation limits
type PhysicalDeviceLimits struct {
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

// PhysicalDeviceSparseProperties lists sparse residency behaviour
type PhysicalDeviceSparseProperties struct {
	ResidencyStandard2DBlockShape            Bool32
	ResidencyStandard2DMultisampleBlockShape Bool32
	ResidencyStandard3DBlockShape            Bool32
	ResidencyAlignedMipSize                  Bool32
	ResidencyNonResidentStrict               Bool32
}

// PhysicalDeviceProperties is the base properties record
type PhysicalDeviceProperties struct {
	APIVersion        uint32
	DriverVersion     uint32
	VendorID          uint32
	DeviceID          uint32
	DeviceType        PhysicalDeviceType
	DeviceName        [MaxPhysicalDeviceNameSize]byte
	PipelineCacheUUID [UUIDSize]byte
	Limits            PhysicalDeviceLimits
	SparseProperties  PhysicalDeviceSparseProperties
}

// PhysicalDeviceProperties2 is the extensible properties record
type PhysicalDeviceProperties2 struct {
	Properties PhysicalDeviceProperties
}

// QueueFamilyProperties describes one queue family
type QueueFamilyProperties struct {
	QueueFlags                  QueueFlags
	QueueCount                  uint32
	TimestampValidBits          uint32
	MinImageTransferGranularity Extent3D
}

// ExtensionProperties names an extension
type ExtensionProperties struct {
	ExtensionName [MaxExtensionNameSize]byte
	SpecVersion   uint32
}

// LayerProperties describes a layer
type LayerProperties struct {
	LayerName             [MaxExtensionNameSize]byte
	SpecVersion           uint32
	ImplementationVersion uint32
	Description           [MaxDescriptionSize]byte
}

// FormatProperties lists the features supported for a format
type FormatProperties struct {
	LinearTilingFeatures  FormatFeatureFlags
	OptimalTilingFeatures FormatFeatureFlags
	BufferFeatures        FormatFeatureFlags
}

// PhysicalDeviceFeatures holds the feature booleans in declaration order
type PhysicalDeviceFeatures [FeatureCount]Bool32

// MemoryType is one entry of the memory type table
type MemoryType struct {
	PropertyFlags MemoryPropertyFlags
	HeapIndex     uint32
}

// MemoryHeap is one entry of the memory heap table
type MemoryHeap struct {
	Size  uint64
	Flags MemoryHeapFlags
}

// PhysicalDeviceMemoryProperties holds the memory tables and their counts
type PhysicalDeviceMemoryProperties struct {
	MemoryTypeCount uint32
	MemoryTypes     [MaxMemoryTypes]MemoryType
	MemoryHeapCount uint32
	MemoryHeaps     [MaxMemoryHeaps]MemoryHeap
}

// SurfaceFormat pairs a format with a color space
type SurfaceFormat struct {
	Format     Format
	ColorSpace ColorSpace
}

// SurfaceCapabilities describes what a surface accepts
type SurfaceCapabilities struct {
	MinImageCount           uint32
	MaxImageCount           uint32
	CurrentExtent           Extent2D
	MinImageExtent          Extent2D
	MaxImageExtent          Extent2D
	MaxImageArrayLayers     uint32
	SupportedTransforms     SurfaceTransformFlags
	CurrentTransform        SurfaceTransformFlags
	SupportedCompositeAlpha CompositeAlphaFlags
	SupportedUsageFlags     ImageUsageFlags
}

// PlatformSurfaceCreateInfo carries the window system handles. Their
// meaning depends on the platform command they are passed to.
type PlatformSurfaceCreateInfo struct {
	Display uintptr
	Window  uintptr
}

// DebugReportCallbackCreateInfo registers a debug callback
type DebugReportCallbackCreateInfo struct {
	Flags    DebugReportFlags
	Callback DebugReportCallbackFunc
}
