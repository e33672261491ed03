// Package vulkango implements native.Driver over the system Vulkan loader.
// Wrapped entry points call through github.com/vulkan-go/vulkan; every other
// command resolves to its raw address.
package vulkango

import (
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	vk "github.com/vulkan-go/vulkan"

	"github.com/devblok/vkbind/native"
)

// Driver resolves entry points from a loaded Vulkan library
type Driver struct {
	getInstanceProcAddr func(instance uintptr, name string) uintptr

	mu                sync.Mutex
	getDeviceProcAddr func(device uintptr, name string) uintptr
}

// Open loads the platform Vulkan library and initializes the bindings
func Open() (*Driver, error) {
	addr, err := loadLibrary()
	if err != nil {
		return nil, err
	}
	return NewFromProcAddr(unsafe.Pointer(addr))
}

// NewFromProcAddr builds a driver around a vkGetInstanceProcAddr that is
// already loaded, such as the one a window toolkit hands out
func NewFromProcAddr(getInstanceProcAddr unsafe.Pointer) (*Driver, error) {
	if getInstanceProcAddr == nil {
		return nil, errors.New("vulkango.NewFromProcAddr(): nil vkGetInstanceProcAddr")
	}
	d := &Driver{}
	purego.RegisterFunc(&d.getInstanceProcAddr, uintptr(getInstanceProcAddr))

	vk.SetGetInstanceProcAddr(getInstanceProcAddr)
	if err := vk.Init(); err != nil {
		return nil, errors.Wrap(err, "vk.Init()")
	}
	logrus.WithField("addr", uintptr(getInstanceProcAddr)).Debug("vulkan bindings initialized")
	return d, nil
}

// GetInstanceProcAddr resolves name at global scope for a zero instance and
// at instance scope otherwise
func (d *Driver) GetInstanceProcAddr(instance native.Instance, name string) native.Proc {
	addr := d.getInstanceProcAddr(uintptr(instance), name)
	if addr == 0 {
		return nil
	}
	if instance == 0 {
		switch name {
		case "vkCreateInstance":
			return native.CreateInstanceFunc(d.createInstance)
		case "vkEnumerateInstanceExtensionProperties":
			return native.EnumerateInstanceExtensionPropertiesFunc(enumerateInstanceExtensionProperties)
		case "vkEnumerateInstanceLayerProperties":
			return native.EnumerateInstanceLayerPropertiesFunc(enumerateInstanceLayerProperties)
		}
		return native.RawProc(addr)
	}
	if p := instanceProc(name, addr); p != nil {
		return p
	}
	return native.RawProc(addr)
}

// GetDeviceProcAddr resolves name at device scope. It needs an instance to
// have been created through this driver.
func (d *Driver) GetDeviceProcAddr(device native.Device, name string) native.Proc {
	d.mu.Lock()
	getDeviceProcAddr := d.getDeviceProcAddr
	d.mu.Unlock()
	if getDeviceProcAddr == nil {
		return nil
	}
	addr := getDeviceProcAddr(uintptr(device), name)
	if addr == 0 {
		return nil
	}
	switch name {
	case "vkDestroyDevice":
		return native.DestroyDeviceFunc(destroyDevice)
	case "vkGetDeviceQueue":
		return native.GetDeviceQueueFunc(getDeviceQueue)
	case "vkDeviceWaitIdle":
		return native.DeviceWaitIdleFunc(deviceWaitIdle)
	}
	return native.RawProc(addr)
}

func instanceProc(name string, addr uintptr) native.Proc {
	switch name {
	case "vkDestroyInstance":
		return native.DestroyInstanceFunc(destroyInstance)
	case "vkEnumeratePhysicalDevices":
		return native.EnumeratePhysicalDevicesFunc(enumeratePhysicalDevices)
	case "vkGetPhysicalDeviceProperties":
		return native.GetPhysicalDevicePropertiesFunc(getPhysicalDeviceProperties)
	case "vkGetPhysicalDeviceProperties2KHR":
		return native.GetPhysicalDeviceProperties2Func(getPhysicalDeviceProperties2)
	case "vkGetPhysicalDeviceQueueFamilyProperties":
		return native.GetPhysicalDeviceQueueFamilyPropertiesFunc(getPhysicalDeviceQueueFamilyProperties)
	case "vkEnumerateDeviceExtensionProperties":
		return native.EnumerateDeviceExtensionPropertiesFunc(enumerateDeviceExtensionProperties)
	case "vkGetPhysicalDeviceFeatures":
		return native.GetPhysicalDeviceFeaturesFunc(getPhysicalDeviceFeatures)
	case "vkGetPhysicalDeviceFormatProperties":
		return native.GetPhysicalDeviceFormatPropertiesFunc(getPhysicalDeviceFormatProperties)
	case "vkGetPhysicalDeviceMemoryProperties":
		return native.GetPhysicalDeviceMemoryPropertiesFunc(getPhysicalDeviceMemoryProperties)
	case "vkCreateDevice":
		return native.CreateDeviceFunc(createDevice)
	case "vkDestroySurfaceKHR":
		return native.DestroySurfaceFunc(destroySurface)
	case "vkGetPhysicalDeviceSurfaceSupportKHR":
		return native.GetPhysicalDeviceSurfaceSupportFunc(getPhysicalDeviceSurfaceSupport)
	case "vkGetPhysicalDeviceSurfaceCapabilitiesKHR":
		return native.GetPhysicalDeviceSurfaceCapabilitiesFunc(getPhysicalDeviceSurfaceCapabilities)
	case "vkGetPhysicalDeviceSurfaceFormatsKHR":
		return native.GetPhysicalDeviceSurfaceFormatsFunc(getPhysicalDeviceSurfaceFormats)
	case "vkGetPhysicalDeviceSurfacePresentModesKHR":
		return native.GetPhysicalDeviceSurfacePresentModesFunc(getPhysicalDeviceSurfacePresentModes)
	case "vkCreateDebugReportCallbackEXT":
		return native.CreateDebugReportCallbackFunc(createDebugReportCallback)
	case "vkDestroyDebugReportCallbackEXT":
		return native.DestroyDebugReportCallbackFunc(destroyDebugReportCallback)
	case "vkDebugReportMessageEXT":
		return native.DebugReportMessageFunc(debugReportMessage)
	}
	if layout, ok := surfaceLayouts[name]; ok {
		return createPlatformSurface(addr, layout)
	}
	return nil
}

// VulkanInstance returns h as the bindings' handle type, for window toolkits
// that create surfaces themselves
func VulkanInstance(h native.Instance) vk.Instance {
	return cast[vk.Instance](h)
}

// cast reinterprets a handle between the native and binding representations
func cast[T, H any](h H) T {
	return *(*T)(unsafe.Pointer(&h))
}

// names turns NUL terminated byte strings into the terminated strings the
// bindings expect
func names(raw [][]byte) []string {
	out := make([]string, len(raw))
	for i, b := range raw {
		out[i] = string(b)
	}
	return out
}

// fill runs one call of a count-then-fill query through the bindings and
// converts the records it wrote
func fill[V, N any](count *uint32, out []N, query func(*uint32, []V) vk.Result, convert func(*V) N) native.Result {
	var buf []V
	if out != nil {
		buf = make([]V, len(out))
	}
	r := native.Result(query(count, buf))
	for i := 0; i < int(*count) && i < len(out); i++ {
		out[i] = convert(&buf[i])
	}
	return r
}

func (d *Driver) createInstance(info *native.InstanceCreateInfo, instance *native.Instance) native.Result {
	ci := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		EnabledLayerCount:       uint32(len(info.EnabledLayerNames)),
		PpEnabledLayerNames:     names(info.EnabledLayerNames),
		EnabledExtensionCount:   uint32(len(info.EnabledExtensionNames)),
		PpEnabledExtensionNames: names(info.EnabledExtensionNames),
	}
	if app := info.ApplicationInfo; app != nil {
		ci.PApplicationInfo = &vk.ApplicationInfo{
			SType:              vk.StructureTypeApplicationInfo,
			PApplicationName:   string(app.ApplicationName),
			ApplicationVersion: app.ApplicationVersion,
			PEngineName:        string(app.EngineName),
			EngineVersion:      app.EngineVersion,
			ApiVersion:         app.APIVersion,
		}
	}

	if vf := validationFlags(info.ValidationFlags); vf != nil {
		ci.PNext = unsafe.Pointer(vf.Ref())
		defer vf.Free()
	}

	var handle vk.Instance
	if r := native.Result(vk.CreateInstance(&ci, nil, &handle)); r != native.Success {
		return r
	}
	if err := vk.InitInstance(handle); err != nil {
		logrus.WithError(err).Error("vk.InitInstance()")
		vk.DestroyInstance(handle, nil)
		return native.ErrorInitializationFailed
	}
	*instance = cast[native.Instance](handle)

	d.mu.Lock()
	if d.getDeviceProcAddr == nil {
		if addr := d.getInstanceProcAddr(uintptr(*instance), "vkGetDeviceProcAddr"); addr != 0 {
			purego.RegisterFunc(&d.getDeviceProcAddr, addr)
		}
	}
	d.mu.Unlock()
	return native.Success
}

// validationFlags builds the VkValidationFlagsEXT record chained onto
// instance creation, or nil when no checks are disabled
func validationFlags(flags *native.ValidationFlags) *vk.ValidationFlags {
	if flags == nil {
		return nil
	}
	checks := make([]vk.ValidationCheck, len(flags.DisabledValidationChecks))
	for i, check := range flags.DisabledValidationChecks {
		checks[i] = vk.ValidationCheck(check)
	}
	return &vk.ValidationFlags{
		SType:                        vk.StructureTypeValidationFlags,
		DisabledValidationCheckCount: uint32(len(checks)),
		PDisabledValidationChecks:    checks,
	}
}

func destroyInstance(instance native.Instance) {
	vk.DestroyInstance(cast[vk.Instance](instance), nil)
}

func enumerateInstanceExtensionProperties(layerName []byte, count *uint32, props []native.ExtensionProperties) native.Result {
	return fill(count, props, func(count *uint32, buf []vk.ExtensionProperties) vk.Result {
		return vk.EnumerateInstanceExtensionProperties(string(layerName), count, buf)
	}, convertExtension)
}

func enumerateInstanceLayerProperties(count *uint32, props []native.LayerProperties) native.Result {
	return fill(count, props, vk.EnumerateInstanceLayerProperties, func(l *vk.LayerProperties) native.LayerProperties {
		l.Deref()
		return native.LayerProperties{
			LayerName:             l.LayerName,
			SpecVersion:           l.SpecVersion,
			ImplementationVersion: l.ImplementationVersion,
			Description:           l.Description,
		}
	})
}

func convertExtension(e *vk.ExtensionProperties) native.ExtensionProperties {
	e.Deref()
	return native.ExtensionProperties{ExtensionName: e.ExtensionName, SpecVersion: e.SpecVersion}
}

func enumeratePhysicalDevices(instance native.Instance, count *uint32, devices []native.PhysicalDevice) native.Result {
	return fill(count, devices, func(count *uint32, buf []vk.PhysicalDevice) vk.Result {
		return vk.EnumeratePhysicalDevices(cast[vk.Instance](instance), count, buf)
	}, func(pd *vk.PhysicalDevice) native.PhysicalDevice {
		return cast[native.PhysicalDevice](*pd)
	})
}

func getPhysicalDeviceProperties(device native.PhysicalDevice, props *native.PhysicalDeviceProperties) {
	var raw vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(cast[vk.PhysicalDevice](device), &raw)
	raw.Deref()
	raw.Limits.Deref()
	raw.SparseProperties.Deref()
	*props = native.PhysicalDeviceProperties{
		APIVersion:        raw.ApiVersion,
		DriverVersion:     raw.DriverVersion,
		VendorID:          raw.VendorID,
		DeviceID:          raw.DeviceID,
		DeviceType:        native.PhysicalDeviceType(raw.DeviceType),
		DeviceName:        raw.DeviceName,
		PipelineCacheUUID: raw.PipelineCacheUUID,
		Limits:            convertLimits(&raw.Limits),
		SparseProperties: native.PhysicalDeviceSparseProperties{
			ResidencyStandard2DBlockShape:            native.Bool32(raw.SparseProperties.ResidencyStandard2DBlockShape),
			ResidencyStandard2DMultisampleBlockShape: native.Bool32(raw.SparseProperties.ResidencyStandard2DMultisampleBlockShape),
			ResidencyStandard3DBlockShape:            native.Bool32(raw.SparseProperties.ResidencyStandard3DBlockShape),
			ResidencyAlignedMipSize:                  native.Bool32(raw.SparseProperties.ResidencyAlignedMipSize),
			ResidencyNonResidentStrict:               native.Bool32(raw.SparseProperties.ResidencyNonResidentStrict),
		},
	}
}

// getPhysicalDeviceProperties2 answers the extended query with the base
// record; the bindings have no properties2 entry point
func getPhysicalDeviceProperties2(device native.PhysicalDevice, props *native.PhysicalDeviceProperties2) {
	getPhysicalDeviceProperties(device, &props.Properties)
}

func convertLimits(l *vk.PhysicalDeviceLimits) native.PhysicalDeviceLimits {
	return native.PhysicalDeviceLimits{
		MaxImageDimension1D:                l.MaxImageDimension1D,
		MaxImageDimension2D:                l.MaxImageDimension2D,
		MaxImageDimension3D:                l.MaxImageDimension3D,
		MaxImageDimensionCube:              l.MaxImageDimensionCube,
		MaxImageArrayLayers:                l.MaxImageArrayLayers,
		MaxTexelBufferElements:             l.MaxTexelBufferElements,
		MaxUniformBufferRange:              l.MaxUniformBufferRange,
		MaxStorageBufferRange:              l.MaxStorageBufferRange,
		MaxPushConstantsSize:               l.MaxPushConstantsSize,
		MaxMemoryAllocationCount:           l.MaxMemoryAllocationCount,
		MaxSamplerAllocationCount:          l.MaxSamplerAllocationCount,
		BufferImageGranularity:             uint64(l.BufferImageGranularity),
		SparseAddressSpaceSize:             uint64(l.SparseAddressSpaceSize),
		MaxBoundDescriptorSets:             l.MaxBoundDescriptorSets,
		MaxComputeSharedMemorySize:         l.MaxComputeSharedMemorySize,
		MaxComputeWorkGroupCount:           l.MaxComputeWorkGroupCount,
		MaxComputeWorkGroupInvocations:     l.MaxComputeWorkGroupInvocations,
		MaxComputeWorkGroupSize:            l.MaxComputeWorkGroupSize,
		MaxViewports:                       l.MaxViewports,
		MaxViewportDimensions:              l.MaxViewportDimensions,
		MinMemoryMapAlignment:              uint64(l.MinMemoryMapAlignment),
		MinUniformBufferOffsetAlignment:    uint64(l.MinUniformBufferOffsetAlignment),
		MinStorageBufferOffsetAlignment:    uint64(l.MinStorageBufferOffsetAlignment),
		MaxFramebufferWidth:                l.MaxFramebufferWidth,
		MaxFramebufferHeight:               l.MaxFramebufferHeight,
		MaxFramebufferLayers:               l.MaxFramebufferLayers,
		MaxColorAttachments:                l.MaxColorAttachments,
		TimestampPeriod:                    l.TimestampPeriod,
		MaxSamplerAnisotropy:               l.MaxSamplerAnisotropy,
		OptimalBufferCopyRowPitchAlignment: uint64(l.OptimalBufferCopyRowPitchAlignment),
		NonCoherentAtomSize:                uint64(l.NonCoherentAtomSize),
	}
}

func getPhysicalDeviceQueueFamilyProperties(device native.PhysicalDevice, count *uint32, props []native.QueueFamilyProperties) {
	fill(count, props, func(count *uint32, buf []vk.QueueFamilyProperties) vk.Result {
		vk.GetPhysicalDeviceQueueFamilyProperties(cast[vk.PhysicalDevice](device), count, buf)
		return vk.Success
	}, func(q *vk.QueueFamilyProperties) native.QueueFamilyProperties {
		q.Deref()
		q.MinImageTransferGranularity.Deref()
		return native.QueueFamilyProperties{
			QueueFlags:         native.QueueFlags(q.QueueFlags),
			QueueCount:         q.QueueCount,
			TimestampValidBits: q.TimestampValidBits,
			MinImageTransferGranularity: native.Extent3D{
				Width:  q.MinImageTransferGranularity.Width,
				Height: q.MinImageTransferGranularity.Height,
				Depth:  q.MinImageTransferGranularity.Depth,
			},
		}
	})
}

func enumerateDeviceExtensionProperties(device native.PhysicalDevice, layerName []byte, count *uint32, props []native.ExtensionProperties) native.Result {
	return fill(count, props, func(count *uint32, buf []vk.ExtensionProperties) vk.Result {
		return vk.EnumerateDeviceExtensionProperties(cast[vk.PhysicalDevice](device), string(layerName), count, buf)
	}, convertExtension)
}

// The leading members of the bindings' feature record are the 55 flags
var _ [unsafe.Sizeof(vk.PhysicalDeviceFeatures{}) - unsafe.Sizeof(native.PhysicalDeviceFeatures{})]struct{}

func getPhysicalDeviceFeatures(device native.PhysicalDevice, features *native.PhysicalDeviceFeatures) {
	var raw vk.PhysicalDeviceFeatures
	vk.GetPhysicalDeviceFeatures(cast[vk.PhysicalDevice](device), &raw)
	raw.Deref()
	*features = *(*native.PhysicalDeviceFeatures)(unsafe.Pointer(&raw))
}

func getPhysicalDeviceFormatProperties(device native.PhysicalDevice, format native.Format, props *native.FormatProperties) {
	var raw vk.FormatProperties
	vk.GetPhysicalDeviceFormatProperties(cast[vk.PhysicalDevice](device), vk.Format(format), &raw)
	raw.Deref()
	*props = native.FormatProperties{
		LinearTilingFeatures:  native.FormatFeatureFlags(raw.LinearTilingFeatures),
		OptimalTilingFeatures: native.FormatFeatureFlags(raw.OptimalTilingFeatures),
		BufferFeatures:        native.FormatFeatureFlags(raw.BufferFeatures),
	}
}

func getPhysicalDeviceMemoryProperties(device native.PhysicalDevice, props *native.PhysicalDeviceMemoryProperties) {
	var raw vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(cast[vk.PhysicalDevice](device), &raw)
	raw.Deref()
	out := native.PhysicalDeviceMemoryProperties{
		MemoryTypeCount: raw.MemoryTypeCount,
		MemoryHeapCount: raw.MemoryHeapCount,
	}
	for i := range raw.MemoryTypes {
		raw.MemoryTypes[i].Deref()
		out.MemoryTypes[i] = native.MemoryType{
			PropertyFlags: native.MemoryPropertyFlags(raw.MemoryTypes[i].PropertyFlags),
			HeapIndex:     raw.MemoryTypes[i].HeapIndex,
		}
	}
	for i := range raw.MemoryHeaps {
		raw.MemoryHeaps[i].Deref()
		out.MemoryHeaps[i] = native.MemoryHeap{
			Size:  uint64(raw.MemoryHeaps[i].Size),
			Flags: native.MemoryHeapFlags(raw.MemoryHeaps[i].Flags),
		}
	}
	*props = out
}

func createDevice(physicalDevice native.PhysicalDevice, info *native.DeviceCreateInfo, device *native.Device) native.Result {
	queues := make([]vk.DeviceQueueCreateInfo, len(info.QueueCreateInfos))
	for i, q := range info.QueueCreateInfos {
		queues[i] = vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: q.QueueFamilyIndex,
			QueueCount:       uint32(len(q.QueuePriorities)),
			PQueuePriorities: q.QueuePriorities,
		}
	}
	ci := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queues)),
		PQueueCreateInfos:       queues,
		EnabledExtensionCount:   uint32(len(info.EnabledExtensionNames)),
		PpEnabledExtensionNames: names(info.EnabledExtensionNames),
	}
	if info.EnabledFeatures != nil {
		var features vk.PhysicalDeviceFeatures
		*(*native.PhysicalDeviceFeatures)(unsafe.Pointer(&features)) = *info.EnabledFeatures
		ci.PEnabledFeatures = []vk.PhysicalDeviceFeatures{features}
	}

	var handle vk.Device
	r := native.Result(vk.CreateDevice(cast[vk.PhysicalDevice](physicalDevice), &ci, nil, &handle))
	if r == native.Success {
		*device = cast[native.Device](handle)
	}
	return r
}

func destroyDevice(device native.Device) {
	vk.DestroyDevice(cast[vk.Device](device), nil)
}

func getDeviceQueue(device native.Device, family, index uint32, queue *native.Queue) {
	var q vk.Queue
	vk.GetDeviceQueue(cast[vk.Device](device), family, index, &q)
	*queue = cast[native.Queue](q)
}

func deviceWaitIdle(device native.Device) native.Result {
	return native.Result(vk.DeviceWaitIdle(cast[vk.Device](device)))
}

func destroySurface(instance native.Instance, surface native.Surface) {
	vk.DestroySurface(cast[vk.Instance](instance), cast[vk.Surface](surface), nil)
}

func getPhysicalDeviceSurfaceSupport(device native.PhysicalDevice, family uint32, surface native.Surface, supported *native.Bool32) native.Result {
	var raw vk.Bool32
	r := native.Result(vk.GetPhysicalDeviceSurfaceSupport(cast[vk.PhysicalDevice](device), family, cast[vk.Surface](surface), &raw))
	*supported = native.Bool32(raw)
	return r
}

func getPhysicalDeviceSurfaceCapabilities(device native.PhysicalDevice, surface native.Surface, capabilities *native.SurfaceCapabilities) native.Result {
	var raw vk.SurfaceCapabilities
	r := native.Result(vk.GetPhysicalDeviceSurfaceCapabilities(cast[vk.PhysicalDevice](device), cast[vk.Surface](surface), &raw))
	if r != native.Success {
		return r
	}
	raw.Deref()
	raw.CurrentExtent.Deref()
	raw.MinImageExtent.Deref()
	raw.MaxImageExtent.Deref()
	*capabilities = native.SurfaceCapabilities{
		MinImageCount:           raw.MinImageCount,
		MaxImageCount:           raw.MaxImageCount,
		CurrentExtent:           native.Extent2D{Width: raw.CurrentExtent.Width, Height: raw.CurrentExtent.Height},
		MinImageExtent:          native.Extent2D{Width: raw.MinImageExtent.Width, Height: raw.MinImageExtent.Height},
		MaxImageExtent:          native.Extent2D{Width: raw.MaxImageExtent.Width, Height: raw.MaxImageExtent.Height},
		MaxImageArrayLayers:     raw.MaxImageArrayLayers,
		SupportedTransforms:     native.SurfaceTransformFlags(raw.SupportedTransforms),
		CurrentTransform:        native.SurfaceTransformFlags(raw.CurrentTransform),
		SupportedCompositeAlpha: native.CompositeAlphaFlags(raw.SupportedCompositeAlpha),
		SupportedUsageFlags:     native.ImageUsageFlags(raw.SupportedUsageFlags),
	}
	return r
}

func getPhysicalDeviceSurfaceFormats(device native.PhysicalDevice, surface native.Surface, count *uint32, formats []native.SurfaceFormat) native.Result {
	return fill(count, formats, func(count *uint32, buf []vk.SurfaceFormat) vk.Result {
		return vk.GetPhysicalDeviceSurfaceFormats(cast[vk.PhysicalDevice](device), cast[vk.Surface](surface), count, buf)
	}, func(f *vk.SurfaceFormat) native.SurfaceFormat {
		f.Deref()
		return native.SurfaceFormat{Format: native.Format(f.Format), ColorSpace: native.ColorSpace(f.ColorSpace)}
	})
}

func getPhysicalDeviceSurfacePresentModes(device native.PhysicalDevice, surface native.Surface, count *uint32, modes []native.PresentMode) native.Result {
	return fill(count, modes, func(count *uint32, buf []vk.PresentMode) vk.Result {
		return vk.GetPhysicalDeviceSurfacePresentModes(cast[vk.PhysicalDevice](device), cast[vk.Surface](surface), count, buf)
	}, func(m *vk.PresentMode) native.PresentMode {
		return native.PresentMode(*m)
	})
}

func createDebugReportCallback(instance native.Instance, info *native.DebugReportCallbackCreateInfo, callback *native.DebugReportCallback) native.Result {
	handler := info.Callback
	ci := vk.DebugReportCallbackCreateInfo{
		SType: vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags: vk.DebugReportFlags(info.Flags),
		PfnCallback: func(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType, object uint64, location uint, messageCode int32, layerPrefix string, message string, userData unsafe.Pointer) vk.Bool32 {
			return vk.Bool32(handler(native.DebugReportFlags(flags), native.DebugReportObjectType(objectType), object, uintptr(location), messageCode, layerPrefix, message))
		},
	}
	var handle vk.DebugReportCallback
	r := native.Result(vk.CreateDebugReportCallback(cast[vk.Instance](instance), &ci, nil, &handle))
	if r == native.Success {
		*callback = cast[native.DebugReportCallback](handle)
	}
	return r
}

func destroyDebugReportCallback(instance native.Instance, callback native.DebugReportCallback) {
	vk.DestroyDebugReportCallback(cast[vk.Instance](instance), cast[vk.DebugReportCallback](callback), nil)
}

func debugReportMessage(instance native.Instance, flags native.DebugReportFlags, objectType native.DebugReportObjectType, object uint64, location uintptr, messageCode int32, layerPrefix, message []byte) {
	vk.DebugReportMessage(cast[vk.Instance](instance), vk.DebugReportFlags(flags), vk.DebugReportObjectType(objectType), object, uint(location), messageCode, string(layerPrefix), string(message))
}
