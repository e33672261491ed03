// Package vktest provides a fake driver that records every native call it
// receives. It validates requests the way a conforming driver would, so
// tests can observe call order, call counts and driver rejections without
// graphics hardware.
package vktest

import (
	"bytes"
	"sort"
	"strings"

	"github.com/devblok/vkbind/native"
)

// Driver is a recording fake. Configure the exported fields before the
// first call; the zero value offers nothing.
type Driver struct {
	InstanceExtensions []string
	Layers             []Layer
	Adapters           []Adapter

	// AdapterGrowth adapters appear between the count call and the fill
	// call of vkEnumeratePhysicalDevices
	AdapterGrowth int

	// Unresolvable entry points resolve to nil at every scope
	Unresolvable map[string]bool

	calls      []string
	nextHandle uint64
	instances  map[native.Instance]*InstanceState
	devices    map[native.Device]*DeviceState
	surfaces   map[native.Surface]native.Instance
	callbacks  map[native.DebugReportCallback]native.DebugReportCallbackCreateInfo
}

// InstanceState is what the driver recorded about an instance
type InstanceState struct {
	AppName                  string
	EngineName               string
	AppVersion               uint32
	EngineVersion            uint32
	APIVersion               uint32
	Layers                   []string
	Extensions               []string
	DisabledValidationChecks []native.ValidationCheck
	Destroyed                bool
}

// DeviceState is what the driver recorded about a logical device
type DeviceState struct {
	Adapter    int
	Extensions []string
	Queues     map[uint32]int
	Features   native.PhysicalDeviceFeatures
	Destroyed  bool
}

// New returns a driver with the default extensions, the validation layer
// and one default adapter
func New() *Driver {
	return &Driver{
		InstanceExtensions: append([]string(nil), DefaultInstanceExtensions...),
		Layers:             []Layer{ValidationLayer},
		Adapters:           []Adapter{DefaultAdapter()},
	}
}

// Calls returns the names of every native call made so far, in order
func (d *Driver) Calls() []string {
	return append([]string(nil), d.calls...)
}

// Count returns how often the named call was made
func (d *Driver) Count(name string) int {
	n := 0
	for _, c := range d.calls {
		if c == name {
			n++
		}
	}
	return n
}

// Instance returns the recorded state of an instance
func (d *Driver) Instance(h native.Instance) *InstanceState {
	return d.instances[h]
}

// Device returns the recorded state of a logical device
func (d *Driver) Device(h native.Device) *DeviceState {
	return d.devices[h]
}

// LiveSurfaces returns the number of surfaces not yet destroyed
func (d *Driver) LiveSurfaces() int {
	return len(d.surfaces)
}

// LiveCallbacks returns the number of debug callbacks not yet destroyed
func (d *Driver) LiveCallbacks() int {
	return len(d.callbacks)
}

// AdapterHandle returns the handle the driver reports for Adapters[i]
func AdapterHandle(i int) native.PhysicalDevice {
	return native.PhysicalDevice(0x1000 + i)
}

// Emit delivers a message to every callback of instance whose flags match,
// the way a layer would. It returns how many callbacks asked for an abort.
func (d *Driver) Emit(instance native.Instance, flags native.DebugReportFlags, layerPrefix, message string) int {
	handles := make([]native.DebugReportCallback, 0, len(d.callbacks))
	for h := range d.callbacks {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	aborted := 0
	for _, h := range handles {
		info := d.callbacks[h]
		if info.Flags&flags == 0 {
			continue
		}
		if info.Callback(flags, 0, uint64(instance), 0, 0, layerPrefix, message) != native.False {
			aborted++
		}
	}
	return aborted
}

func (d *Driver) record(name string) {
	d.calls = append(d.calls, name)
}

func (d *Driver) handle() uint64 {
	d.nextHandle++
	return 0x10 + d.nextHandle
}

func (d *Driver) adapter(h native.PhysicalDevice) *Adapter {
	i := int(h) - 0x1000
	if i < 0 || i >= len(d.Adapters) {
		return nil
	}
	return &d.Adapters[i]
}

func (d *Driver) liveInstance(h native.Instance) bool {
	s, ok := d.instances[h]
	return ok && !s.Destroyed
}

func (d *Driver) liveDevice(h native.Device) bool {
	s, ok := d.devices[h]
	return ok && !s.Destroyed
}

// GetInstanceProcAddr resolves global commands for a zero instance and
// instance commands for a live one. Commands without a fake implementation
// resolve to a RawProc.
func (d *Driver) GetInstanceProcAddr(instance native.Instance, name string) native.Proc {
	if d.Unresolvable[name] || !strings.HasPrefix(name, "vk") {
		return nil
	}
	if instance == 0 {
		switch name {
		case "vkCreateInstance":
			return native.CreateInstanceFunc(d.createInstance)
		case "vkEnumerateInstanceExtensionProperties":
			return native.EnumerateInstanceExtensionPropertiesFunc(d.enumerateInstanceExtensionProperties)
		case "vkEnumerateInstanceLayerProperties":
			return native.EnumerateInstanceLayerPropertiesFunc(d.enumerateInstanceLayerProperties)
		}
		return nil
	}
	if !d.liveInstance(instance) {
		return nil
	}
	if p := d.instanceProc(name); p != nil {
		return p
	}
	return native.RawProc(len(name))
}

// GetDeviceProcAddr resolves device commands for a live device
func (d *Driver) GetDeviceProcAddr(device native.Device, name string) native.Proc {
	if d.Unresolvable[name] || !strings.HasPrefix(name, "vk") || !d.liveDevice(device) {
		return nil
	}
	switch name {
	case "vkDestroyDevice":
		return native.DestroyDeviceFunc(d.destroyDevice)
	case "vkGetDeviceQueue":
		return native.GetDeviceQueueFunc(d.getDeviceQueue)
	case "vkDeviceWaitIdle":
		return native.DeviceWaitIdleFunc(d.deviceWaitIdle)
	}
	return native.RawProc(len(name))
}

func (d *Driver) instanceProc(name string) native.Proc {
	switch name {
	case "vkDestroyInstance":
		return native.DestroyInstanceFunc(d.destroyInstance)
	case "vkEnumeratePhysicalDevices":
		return native.EnumeratePhysicalDevicesFunc(d.enumeratePhysicalDevices)
	case "vkGetPhysicalDeviceProperties":
		return native.GetPhysicalDevicePropertiesFunc(d.getPhysicalDeviceProperties)
	case "vkGetPhysicalDeviceProperties2KHR":
		return native.GetPhysicalDeviceProperties2Func(d.getPhysicalDeviceProperties2)
	case "vkGetPhysicalDeviceQueueFamilyProperties":
		return native.GetPhysicalDeviceQueueFamilyPropertiesFunc(d.getPhysicalDeviceQueueFamilyProperties)
	case "vkEnumerateDeviceExtensionProperties":
		return native.EnumerateDeviceExtensionPropertiesFunc(d.enumerateDeviceExtensionProperties)
	case "vkGetPhysicalDeviceFeatures":
		return native.GetPhysicalDeviceFeaturesFunc(d.getPhysicalDeviceFeatures)
	case "vkGetPhysicalDeviceFormatProperties":
		return native.GetPhysicalDeviceFormatPropertiesFunc(d.getPhysicalDeviceFormatProperties)
	case "vkGetPhysicalDeviceMemoryProperties":
		return native.GetPhysicalDeviceMemoryPropertiesFunc(d.getPhysicalDeviceMemoryProperties)
	case "vkCreateDevice":
		return native.CreateDeviceFunc(d.createDevice)
	case "vkDestroySurfaceKHR":
		return native.DestroySurfaceFunc(d.destroySurface)
	case "vkGetPhysicalDeviceSurfaceSupportKHR":
		return native.GetPhysicalDeviceSurfaceSupportFunc(d.getPhysicalDeviceSurfaceSupport)
	case "vkGetPhysicalDeviceSurfaceCapabilitiesKHR":
		return native.GetPhysicalDeviceSurfaceCapabilitiesFunc(d.getPhysicalDeviceSurfaceCapabilities)
	case "vkGetPhysicalDeviceSurfaceFormatsKHR":
		return native.GetPhysicalDeviceSurfaceFormatsFunc(d.getPhysicalDeviceSurfaceFormats)
	case "vkGetPhysicalDeviceSurfacePresentModesKHR":
		return native.GetPhysicalDeviceSurfacePresentModesFunc(d.getPhysicalDeviceSurfacePresentModes)
	case "vkCreateXlibSurfaceKHR", "vkCreateXcbSurfaceKHR", "vkCreateWaylandSurfaceKHR",
		"vkCreateWin32SurfaceKHR", "vkCreateAndroidSurfaceKHR", "vkCreateMacOSSurfaceMVK":
		return native.CreatePlatformSurfaceFunc(func(instance native.Instance, info *native.PlatformSurfaceCreateInfo, surface *native.Surface) native.Result {
			return d.createPlatformSurface(name, instance, info, surface)
		})
	case "vkCreateDebugReportCallbackEXT":
		return native.CreateDebugReportCallbackFunc(d.createDebugReportCallback)
	case "vkDestroyDebugReportCallbackEXT":
		return native.DestroyDebugReportCallbackFunc(d.destroyDebugReportCallback)
	case "vkDebugReportMessageEXT":
		return native.DebugReportMessageFunc(d.debugReportMessage)
	}
	return nil
}

// fill implements the driver side of the count-then-fill idiom
func fill[T any](count *uint32, out []T, src []T) native.Result {
	if out == nil {
		*count = uint32(len(src))
		return native.Success
	}
	n := copy(out[:min(int(*count), len(out))], src)
	*count = uint32(n)
	if n < len(src) {
		return native.Incomplete
	}
	return native.Success
}

func trim(name []byte) string {
	return string(bytes.TrimRight(name, "\x00"))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func extensionRecords(names []string) []native.ExtensionProperties {
	props := make([]native.ExtensionProperties, len(names))
	for i, name := range names {
		copy(props[i].ExtensionName[:native.MaxExtensionNameSize-1], name)
		props[i].SpecVersion = 1
	}
	return props
}

func (d *Driver) layer(name string) *Layer {
	for i := range d.Layers {
		if d.Layers[i].Name == name {
			return &d.Layers[i]
		}
	}
	return nil
}

func (d *Driver) createInstance(info *native.InstanceCreateInfo, instance *native.Instance) native.Result {
	d.record("vkCreateInstance")
	state := &InstanceState{}
	for _, raw := range info.EnabledLayerNames {
		name := trim(raw)
		if d.layer(name) == nil {
			return native.ErrorLayerNotPresent
		}
		state.Layers = append(state.Layers, name)
	}
	for _, raw := range info.EnabledExtensionNames {
		name := trim(raw)
		offered := contains(d.InstanceExtensions, name)
		for _, l := range state.Layers {
			offered = offered || contains(d.layer(l).Extensions, name)
		}
		if !offered {
			return native.ErrorExtensionNotPresent
		}
		state.Extensions = append(state.Extensions, name)
	}
	if info.ValidationFlags != nil {
		if !contains(state.Extensions, "VK_EXT_validation_flags") {
			return native.ErrorExtensionNotPresent
		}
		state.DisabledValidationChecks = append(state.DisabledValidationChecks, info.ValidationFlags.DisabledValidationChecks...)
	}
	if app := info.ApplicationInfo; app != nil {
		state.AppName = trim(app.ApplicationName)
		state.EngineName = trim(app.EngineName)
		state.AppVersion = app.ApplicationVersion
		state.EngineVersion = app.EngineVersion
		state.APIVersion = app.APIVersion
	}

	if d.instances == nil {
		d.instances = map[native.Instance]*InstanceState{}
	}
	h := native.Instance(d.handle())
	d.instances[h] = state
	*instance = h
	return native.Success
}

func (d *Driver) destroyInstance(instance native.Instance) {
	d.record("vkDestroyInstance")
	if s, ok := d.instances[instance]; ok {
		s.Destroyed = true
	}
}

func (d *Driver) enumerateInstanceExtensionProperties(layerName []byte, count *uint32, props []native.ExtensionProperties) native.Result {
	d.record("vkEnumerateInstanceExtensionProperties")
	names := d.InstanceExtensions
	if layerName != nil {
		l := d.layer(trim(layerName))
		if l == nil {
			return native.ErrorLayerNotPresent
		}
		names = l.Extensions
	}
	return fill(count, props, extensionRecords(names))
}

func (d *Driver) enumerateInstanceLayerProperties(count *uint32, props []native.LayerProperties) native.Result {
	d.record("vkEnumerateInstanceLayerProperties")
	records := make([]native.LayerProperties, len(d.Layers))
	for i := range d.Layers {
		l := &d.Layers[i]
		copy(records[i].LayerName[:native.MaxExtensionNameSize-1], l.Name)
		copy(records[i].Description[:native.MaxDescriptionSize-1], l.description())
		records[i].SpecVersion = l.SpecVersion
		records[i].ImplementationVersion = l.ImplementationVersion
	}
	return fill(count, props, records)
}

func (d *Driver) enumeratePhysicalDevices(instance native.Instance, count *uint32, devices []native.PhysicalDevice) native.Result {
	d.record("vkEnumeratePhysicalDevices")
	total := len(d.Adapters)
	if devices != nil {
		total += d.AdapterGrowth
	}
	handles := make([]native.PhysicalDevice, total)
	for i := range handles {
		handles[i] = AdapterHandle(i)
	}
	return fill(count, devices, handles)
}

func (d *Driver) properties(a *Adapter) native.PhysicalDeviceProperties {
	props := native.PhysicalDeviceProperties{
		APIVersion:    a.APIVersion,
		DriverVersion: a.DriverVersion,
		VendorID:      a.VendorID,
		DeviceID:      a.DeviceID,
		DeviceType:    a.Type,
		Limits:        a.Limits,
	}
	copy(props.DeviceName[:native.MaxPhysicalDeviceNameSize-1], a.deviceName())
	return props
}

func (d *Driver) getPhysicalDeviceProperties(device native.PhysicalDevice, props *native.PhysicalDeviceProperties) {
	d.record("vkGetPhysicalDeviceProperties")
	if a := d.adapter(device); a != nil {
		*props = d.properties(a)
	}
}

func (d *Driver) getPhysicalDeviceProperties2(device native.PhysicalDevice, props *native.PhysicalDeviceProperties2) {
	d.record("vkGetPhysicalDeviceProperties2KHR")
	if a := d.adapter(device); a != nil {
		props.Properties = d.properties(a)
	}
}

func (d *Driver) getPhysicalDeviceQueueFamilyProperties(device native.PhysicalDevice, count *uint32, props []native.QueueFamilyProperties) {
	d.record("vkGetPhysicalDeviceQueueFamilyProperties")
	var families []native.QueueFamilyProperties
	if a := d.adapter(device); a != nil {
		families = a.QueueFamilies
	}
	fill(count, props, families)
}

func (d *Driver) enumerateDeviceExtensionProperties(device native.PhysicalDevice, layerName []byte, count *uint32, props []native.ExtensionProperties) native.Result {
	d.record("vkEnumerateDeviceExtensionProperties")
	a := d.adapter(device)
	if a == nil {
		return native.ErrorInitializationFailed
	}
	return fill(count, props, extensionRecords(a.Extensions))
}

func (d *Driver) getPhysicalDeviceFeatures(device native.PhysicalDevice, features *native.PhysicalDeviceFeatures) {
	d.record("vkGetPhysicalDeviceFeatures")
	if a := d.adapter(device); a != nil {
		*features = a.Features
	}
}

func (d *Driver) getPhysicalDeviceFormatProperties(device native.PhysicalDevice, format native.Format, props *native.FormatProperties) {
	d.record("vkGetPhysicalDeviceFormatProperties")
	if a := d.adapter(device); a != nil {
		*props = a.Formats[format]
	}
}

func (d *Driver) getPhysicalDeviceMemoryProperties(device native.PhysicalDevice, props *native.PhysicalDeviceMemoryProperties) {
	d.record("vkGetPhysicalDeviceMemoryProperties")
	if a := d.adapter(device); a != nil {
		*props = a.Memory
	}
}

func (d *Driver) createDevice(physicalDevice native.PhysicalDevice, info *native.DeviceCreateInfo, device *native.Device) native.Result {
	d.record("vkCreateDevice")
	a := d.adapter(physicalDevice)
	if a == nil {
		return native.ErrorInitializationFailed
	}
	state := &DeviceState{Adapter: int(physicalDevice) - 0x1000, Queues: map[uint32]int{}}
	for _, raw := range info.EnabledExtensionNames {
		name := trim(raw)
		if !contains(a.Extensions, name) {
			return native.ErrorExtensionNotPresent
		}
		state.Extensions = append(state.Extensions, name)
	}
	if info.EnabledFeatures != nil {
		for i, enabled := range info.EnabledFeatures {
			if enabled != native.False && a.Features[i] == native.False {
				return native.ErrorFeatureNotPresent
			}
		}
		state.Features = *info.EnabledFeatures
	}
	for _, q := range info.QueueCreateInfos {
		if int(q.QueueFamilyIndex) >= len(a.QueueFamilies) || uint32(len(q.QueuePriorities)) > a.QueueFamilies[q.QueueFamilyIndex].QueueCount {
			return native.ErrorInitializationFailed
		}
		state.Queues[q.QueueFamilyIndex] = len(q.QueuePriorities)
	}

	if d.devices == nil {
		d.devices = map[native.Device]*DeviceState{}
	}
	h := native.Device(d.handle())
	d.devices[h] = state
	*device = h
	return native.Success
}

func (d *Driver) destroyDevice(device native.Device) {
	d.record("vkDestroyDevice")
	if s, ok := d.devices[device]; ok {
		s.Destroyed = true
	}
}

func (d *Driver) getDeviceQueue(device native.Device, family, index uint32, queue *native.Queue) {
	d.record("vkGetDeviceQueue")
	*queue = native.Queue(uint32(device)<<8 | family<<4 | index)
}

func (d *Driver) deviceWaitIdle(device native.Device) native.Result {
	d.record("vkDeviceWaitIdle")
	return native.Success
}

func (d *Driver) createPlatformSurface(name string, instance native.Instance, info *native.PlatformSurfaceCreateInfo, surface *native.Surface) native.Result {
	d.record(name)
	if info.Window == 0 {
		return native.ErrorInitializationFailed
	}
	if d.surfaces == nil {
		d.surfaces = map[native.Surface]native.Instance{}
	}
	h := native.Surface(d.handle())
	d.surfaces[h] = instance
	*surface = h
	return native.Success
}

func (d *Driver) destroySurface(instance native.Instance, surface native.Surface) {
	d.record("vkDestroySurfaceKHR")
	delete(d.surfaces, surface)
}

func (d *Driver) getPhysicalDeviceSurfaceSupport(device native.PhysicalDevice, family uint32, surface native.Surface, supported *native.Bool32) native.Result {
	d.record("vkGetPhysicalDeviceSurfaceSupportKHR")
	a := d.adapter(device)
	if a == nil {
		return native.ErrorSurfaceLost
	}
	*supported = native.Bool(int(family) < len(a.QueueFamilies) && a.QueueFamilies[family].QueueFlags&native.QueueGraphicsBit != 0)
	return native.Success
}

func (d *Driver) getPhysicalDeviceSurfaceCapabilities(device native.PhysicalDevice, surface native.Surface, capabilities *native.SurfaceCapabilities) native.Result {
	d.record("vkGetPhysicalDeviceSurfaceCapabilitiesKHR")
	a := d.adapter(device)
	if a == nil {
		return native.ErrorSurfaceLost
	}
	*capabilities = a.SurfaceCapabilities
	return native.Success
}

func (d *Driver) getPhysicalDeviceSurfaceFormats(device native.PhysicalDevice, surface native.Surface, count *uint32, formats []native.SurfaceFormat) native.Result {
	d.record("vkGetPhysicalDeviceSurfaceFormatsKHR")
	a := d.adapter(device)
	if a == nil {
		return native.ErrorSurfaceLost
	}
	return fill(count, formats, a.SurfaceFormats)
}

func (d *Driver) getPhysicalDeviceSurfacePresentModes(device native.PhysicalDevice, surface native.Surface, count *uint32, modes []native.PresentMode) native.Result {
	d.record("vkGetPhysicalDeviceSurfacePresentModesKHR")
	a := d.adapter(device)
	if a == nil {
		return native.ErrorSurfaceLost
	}
	return fill(count, modes, a.PresentModes)
}

func (d *Driver) createDebugReportCallback(instance native.Instance, info *native.DebugReportCallbackCreateInfo, callback *native.DebugReportCallback) native.Result {
	d.record("vkCreateDebugReportCallbackEXT")
	if info.Callback == nil {
		return native.ErrorInitializationFailed
	}
	if d.callbacks == nil {
		d.callbacks = map[native.DebugReportCallback]native.DebugReportCallbackCreateInfo{}
	}
	h := native.DebugReportCallback(d.handle())
	d.callbacks[h] = *info
	*callback = h
	return native.Success
}

func (d *Driver) destroyDebugReportCallback(instance native.Instance, callback native.DebugReportCallback) {
	d.record("vkDestroyDebugReportCallbackEXT")
	delete(d.callbacks, callback)
}

func (d *Driver) debugReportMessage(instance native.Instance, flags native.DebugReportFlags, objectType native.DebugReportObjectType, object uint64, location uintptr, messageCode int32, layerPrefix, message []byte) {
	d.record("vkDebugReportMessageEXT")
	d.Emit(instance, flags, trim(layerPrefix), trim(message))
}
