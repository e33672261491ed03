package native

// Global commands
type (
	CreateInstanceFunc                       func(info *InstanceCreateInfo, instance *Instance) Result
	EnumerateInstanceExtensionPropertiesFunc func(layerName []byte, count *uint32, properties []ExtensionProperties) Result
	EnumerateInstanceLayerPropertiesFunc     func(count *uint32, properties []LayerProperties) Result
)

// Instance commands
type (
	DestroyInstanceFunc                        func(instance Instance)
	EnumeratePhysicalDevicesFunc               func(instance Instance, count *uint32, devices []PhysicalDevice) Result
	GetPhysicalDevicePropertiesFunc            func(device PhysicalDevice, properties *PhysicalDeviceProperties)
	GetPhysicalDeviceProperties2Func           func(device PhysicalDevice, properties *PhysicalDeviceProperties2)
	GetPhysicalDeviceQueueFamilyPropertiesFunc func(device PhysicalDevice, count *uint32, properties []QueueFamilyProperties)
	EnumerateDeviceExtensionPropertiesFunc     func(device PhysicalDevice, layerName []byte, count *uint32, properties []ExtensionProperties) Result
	GetPhysicalDeviceFeaturesFunc              func(device PhysicalDevice, features *PhysicalDeviceFeatures)
	GetPhysicalDeviceFormatPropertiesFunc      func(device PhysicalDevice, format Format, properties *FormatProperties)
	GetPhysicalDeviceMemoryPropertiesFunc      func(device PhysicalDevice, properties *PhysicalDeviceMemoryProperties)
	CreateDeviceFunc                           func(physicalDevice PhysicalDevice, info *DeviceCreateInfo, device *Device) Result
)

// Device commands
type (
	DestroyDeviceFunc  func(device Device)
	GetDeviceQueueFunc func(device Device, family, index uint32, queue *Queue)
	DeviceWaitIdleFunc func(device Device) Result
)

// Surface commands
type (
	DestroySurfaceFunc                       func(instance Instance, surface Surface)
	GetPhysicalDeviceSurfaceSupportFunc      func(device PhysicalDevice, family uint32, surface Surface, supported *Bool32) Result
	GetPhysicalDeviceSurfaceCapabilitiesFunc func(device PhysicalDevice, surface Surface, capabilities *SurfaceCapabilities) Result
	GetPhysicalDeviceSurfaceFormatsFunc      func(device PhysicalDevice, surface Surface, count *uint32, formats []SurfaceFormat) Result
	GetPhysicalDeviceSurfacePresentModesFunc func(device PhysicalDevice, surface Surface, count *uint32, modes []PresentMode) Result
	CreatePlatformSurfaceFunc                func(instance Instance, info *PlatformSurfaceCreateInfo, surface *Surface) Result
)

// Debug report commands
type (
	DebugReportCallbackFunc        func(flags DebugReportFlags, objectType DebugReportObjectType, object uint64, location uintptr, messageCode int32, layerPrefix, message string) Bool32
	CreateDebugReportCallbackFunc  func(instance Instance, info *DebugReportCallbackCreateInfo, callback *DebugReportCallback) Result
	DestroyDebugReportCallbackFunc func(instance Instance, callback DebugReportCallback)
	DebugReportMessageFunc         func(instance Instance, flags DebugReportFlags, objectType DebugReportObjectType, object uint64, location uintptr, messageCode int32, layerPrefix, message []byte)
)
