package core

import (
	"github.com/devblok/vkbind/native"
)

// Adapter is a physical device borrowed from its instance. It stays valid
// until the instance is destroyed.
type Adapter struct {
	handle   native.PhysicalDevice
	instance *Instance
}

// Handle returns the native handle
func (a *Adapter) Handle() native.PhysicalDevice {
	return a.handle
}

// Instance returns the owning instance
func (a *Adapter) Instance() *Instance {
	return a.instance
}

// Properties queries the adapter properties. With
// khr_get_physical_device_properties2 enabled the extended query is used,
// otherwise the base one.
func (a *Adapter) Properties() (Properties, error) {
	const op = "core.Adapter.Properties"
	if err := a.instance.alive(op); err != nil {
		return Properties{}, err
	}
	loader := a.instance.loader
	if loader.Enabled(KHRGetPhysicalDeviceProperties2) {
		getProperties2, err := extensionCommand[native.GetPhysicalDeviceProperties2Func](&loader.bundles, op, KHRGetPhysicalDeviceProperties2, cmdGetPhysicalDeviceProperties2)
		if err != nil {
			return Properties{}, err
		}
		var raw native.PhysicalDeviceProperties2
		getProperties2(a.handle, &raw)
		return convertProperties(op, &raw.Properties)
	}

	getProperties, err := instanceCommand[native.GetPhysicalDevicePropertiesFunc](loader, op, cmdGetPhysicalDeviceProperties)
	if err != nil {
		return Properties{}, err
	}
	var raw native.PhysicalDeviceProperties
	getProperties(a.handle, &raw)
	return convertProperties(op, &raw)
}

// QueueFamilyProperties lists the adapter's queue families, indexed by family
func (a *Adapter) QueueFamilyProperties() ([]QueueFamily, error) {
	const op = "core.Adapter.QueueFamilyProperties"
	if err := a.instance.alive(op); err != nil {
		return nil, err
	}
	getQueueFamilies, err := instanceCommand[native.GetPhysicalDeviceQueueFamilyPropertiesFunc](a.instance.loader, op, cmdGetPhysicalDeviceQueueFamilyProperties)
	if err != nil {
		return nil, err
	}
	return enumerate(op, infallible(func(count *uint32, buf []native.QueueFamilyProperties) {
		getQueueFamilies(a.handle, count, buf)
	}), convertQueueFamily)
}

// ExtensionProperties lists the device extensions the adapter offers
func (a *Adapter) ExtensionProperties() ([]Extension, error) {
	const op = "core.Adapter.ExtensionProperties"
	if err := a.instance.alive(op); err != nil {
		return nil, err
	}
	enumerateExtensions, err := instanceCommand[native.EnumerateDeviceExtensionPropertiesFunc](a.instance.loader, op, cmdEnumerateDeviceExtensionProperties)
	if err != nil {
		return nil, err
	}
	return enumerate(op, func(count *uint32, buf []native.ExtensionProperties) native.Result {
		return enumerateExtensions(a.handle, nil, count, buf)
	}, func(raw *native.ExtensionProperties) (Extension, error) {
		return convertExtension(op, raw)
	})
}

// Features queries the features the adapter supports
func (a *Adapter) Features() (Features, error) {
	const op = "core.Adapter.Features"
	if err := a.instance.alive(op); err != nil {
		return 0, err
	}
	getFeatures, err := instanceCommand[native.GetPhysicalDeviceFeaturesFunc](a.instance.loader, op, cmdGetPhysicalDeviceFeatures)
	if err != nil {
		return 0, err
	}
	var raw native.PhysicalDeviceFeatures
	getFeatures(a.handle, &raw)
	return convertFeatures(&raw), nil
}

// FormatProperties queries what the adapter supports for a format
func (a *Adapter) FormatProperties(format native.Format) (FormatProperties, error) {
	const op = "core.Adapter.FormatProperties"
	if err := a.instance.alive(op); err != nil {
		return FormatProperties{}, err
	}
	getFormatProperties, err := instanceCommand[native.GetPhysicalDeviceFormatPropertiesFunc](a.instance.loader, op, cmdGetPhysicalDeviceFormatProperties)
	if err != nil {
		return FormatProperties{}, err
	}
	var raw native.FormatProperties
	getFormatProperties(a.handle, format, &raw)
	return convertFormatProperties(&raw), nil
}

// MemoryProperties queries the adapter's memory types and heaps
func (a *Adapter) MemoryProperties() (MemoryProperties, error) {
	const op = "core.Adapter.MemoryProperties"
	if err := a.instance.alive(op); err != nil {
		return MemoryProperties{}, err
	}
	getMemoryProperties, err := instanceCommand[native.GetPhysicalDeviceMemoryPropertiesFunc](a.instance.loader, op, cmdGetPhysicalDeviceMemoryProperties)
	if err != nil {
		return MemoryProperties{}, err
	}
	var raw native.PhysicalDeviceMemoryProperties
	getMemoryProperties(a.handle, &raw)
	return convertMemoryProperties(op, &raw)
}

func (a *Adapter) surfaceBundles(op string, s *Surface) (*bundles, error) {
	if err := a.instance.alive(op); err != nil {
		return nil, err
	}
	if s == nil || s.instance != a.instance {
		return nil, misuseError(op, "surface does not belong to the adapter's instance")
	}
	if s.destroyed {
		return nil, misuseError(op, "surface is destroyed")
	}
	return &a.instance.loader.bundles, nil
}

// SurfaceSupport reports whether a queue family can present to s
func (a *Adapter) SurfaceSupport(family uint32, s *Surface) (bool, error) {
	const op = "core.Adapter.SurfaceSupport"
	b, err := a.surfaceBundles(op, s)
	if err != nil {
		return false, err
	}
	getSupport, err := extensionCommand[native.GetPhysicalDeviceSurfaceSupportFunc](b, op, KHRSurface, cmdGetPhysicalDeviceSurfaceSupport)
	if err != nil {
		return false, err
	}
	var supported native.Bool32
	if err := check(op, getSupport(a.handle, family, s.handle, &supported)); err != nil {
		return false, err
	}
	return supported != native.False, nil
}

// SurfaceCapabilities queries what s accepts on this adapter
func (a *Adapter) SurfaceCapabilities(s *Surface) (SurfaceCapabilities, error) {
	const op = "core.Adapter.SurfaceCapabilities"
	b, err := a.surfaceBundles(op, s)
	if err != nil {
		return SurfaceCapabilities{}, err
	}
	getCapabilities, err := extensionCommand[native.GetPhysicalDeviceSurfaceCapabilitiesFunc](b, op, KHRSurface, cmdGetPhysicalDeviceSurfaceCapabilities)
	if err != nil {
		return SurfaceCapabilities{}, err
	}
	var raw native.SurfaceCapabilities
	if err := check(op, getCapabilities(a.handle, s.handle, &raw)); err != nil {
		return SurfaceCapabilities{}, err
	}
	return convertSurfaceCapabilities(&raw), nil
}

// SurfaceFormats lists the formats s supports on this adapter
func (a *Adapter) SurfaceFormats(s *Surface) ([]SurfaceFormat, error) {
	const op = "core.Adapter.SurfaceFormats"
	b, err := a.surfaceBundles(op, s)
	if err != nil {
		return nil, err
	}
	getFormats, err := extensionCommand[native.GetPhysicalDeviceSurfaceFormatsFunc](b, op, KHRSurface, cmdGetPhysicalDeviceSurfaceFormats)
	if err != nil {
		return nil, err
	}
	return enumerate(op, func(count *uint32, buf []native.SurfaceFormat) native.Result {
		return getFormats(a.handle, s.handle, count, buf)
	}, convertSurfaceFormat)
}

// SurfacePresentModes lists the present modes s supports on this adapter
func (a *Adapter) SurfacePresentModes(s *Surface) ([]native.PresentMode, error) {
	const op = "core.Adapter.SurfacePresentModes"
	b, err := a.surfaceBundles(op, s)
	if err != nil {
		return nil, err
	}
	getModes, err := extensionCommand[native.GetPhysicalDeviceSurfacePresentModesFunc](b, op, KHRSurface, cmdGetPhysicalDeviceSurfacePresentModes)
	if err != nil {
		return nil, err
	}
	return enumerate(op, func(count *uint32, buf []native.PresentMode) native.Result {
		return getModes(a.handle, s.handle, count, buf)
	}, identity[native.PresentMode])
}
