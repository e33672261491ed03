package core

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/devblok/vkbind/native"
)

// Entry point names the wrapper calls directly
const (
	cmdCreateInstance                       = "vkCreateInstance"
	cmdEnumerateInstanceExtensionProperties = "vkEnumerateInstanceExtensionProperties"
	cmdEnumerateInstanceLayerProperties     = "vkEnumerateInstanceLayerProperties"

	cmdDestroyInstance                        = "vkDestroyInstance"
	cmdEnumeratePhysicalDevices               = "vkEnumeratePhysicalDevices"
	cmdGetPhysicalDeviceProperties            = "vkGetPhysicalDeviceProperties"
	cmdGetPhysicalDeviceQueueFamilyProperties = "vkGetPhysicalDeviceQueueFamilyProperties"
	cmdEnumerateDeviceExtensionProperties     = "vkEnumerateDeviceExtensionProperties"
	cmdGetPhysicalDeviceFeatures              = "vkGetPhysicalDeviceFeatures"
	cmdGetPhysicalDeviceFormatProperties      = "vkGetPhysicalDeviceFormatProperties"
	cmdGetPhysicalDeviceMemoryProperties      = "vkGetPhysicalDeviceMemoryProperties"
	cmdCreateDevice                           = "vkCreateDevice"

	cmdDestroyDevice  = "vkDestroyDevice"
	cmdGetDeviceQueue = "vkGetDeviceQueue"
	cmdDeviceWaitIdle = "vkDeviceWaitIdle"

	cmdDestroySurface                       = "vkDestroySurfaceKHR"
	cmdGetPhysicalDeviceSurfaceSupport      = "vkGetPhysicalDeviceSurfaceSupportKHR"
	cmdGetPhysicalDeviceSurfaceCapabilities = "vkGetPhysicalDeviceSurfaceCapabilitiesKHR"
	cmdGetPhysicalDeviceSurfaceFormats      = "vkGetPhysicalDeviceSurfaceFormatsKHR"
	cmdGetPhysicalDeviceSurfacePresentModes = "vkGetPhysicalDeviceSurfacePresentModesKHR"

	cmdGetPhysicalDeviceProperties2 = "vkGetPhysicalDeviceProperties2KHR"

	cmdCreateDebugReportCallback  = "vkCreateDebugReportCallbackEXT"
	cmdDestroyDebugReportCallback = "vkDestroyDebugReportCallbackEXT"
	cmdDebugReportMessage         = "vkDebugReportMessageEXT"
)

var (
	globalCommandNames = []string{
		cmdCreateInstance,
		cmdEnumerateInstanceExtensionProperties,
		cmdEnumerateInstanceLayerProperties,
	}
	instanceCommandNames = []string{
		cmdDestroyInstance,
		cmdEnumeratePhysicalDevices,
		cmdGetPhysicalDeviceProperties,
		cmdGetPhysicalDeviceQueueFamilyProperties,
		cmdEnumerateDeviceExtensionProperties,
		cmdGetPhysicalDeviceFeatures,
		cmdGetPhysicalDeviceFormatProperties,
		cmdGetPhysicalDeviceMemoryProperties,
		cmdCreateDevice,
	}
	deviceCommandNames = []string{
		cmdDestroyDevice,
		cmdGetDeviceQueue,
		cmdDeviceWaitIdle,
	}
)

// procTable maps entry point names to resolved entry points
type procTable map[string]native.Proc

// resolveAll resolves every name or reports the first one the driver refused
func resolveAll(op string, resolve func(string) native.Proc, names []string) (procTable, error) {
	t := make(procTable, len(names))
	for _, name := range names {
		p := resolve(name)
		if p == nil {
			return nil, generalError(op, "driver cannot resolve entry point %s", name)
		}
		t[name] = p
	}
	return t, nil
}

// lookup returns a typed entry point from the table
func lookup[F any](op string, t procTable, name string) (F, error) {
	var zero F
	p, ok := t[name]
	if !ok {
		return zero, misuseError(op, "entry point %s is not loaded", name)
	}
	f, ok := p.(F)
	if !ok {
		return zero, misuseError(op, "entry point %s is a %T, not a %T", name, p, zero)
	}
	return f, nil
}

// bundles is the core bundle plus one bundle per enabled capability
type bundles struct {
	core       procTable
	extensions map[Capability]procTable
	enabled    CapabilitySet
}

func loadBundles(op string, resolve func(string) native.Proc, core []string, caps CapabilitySet, commands func(Capability) []string) (bundles, error) {
	b := bundles{extensions: map[Capability]procTable{}, enabled: caps}
	var err error
	if b.core, err = resolveAll(op, resolve, core); err != nil {
		return bundles{}, err
	}
	for _, c := range caps.List() {
		t, err := resolveAll(op, resolve, commands(c))
		if err != nil {
			return bundles{}, err
		}
		b.extensions[c] = t
	}
	return b, nil
}

func (b *bundles) command(op, name string) (native.Proc, error) {
	if p, ok := b.core[name]; ok {
		return p, nil
	}
	for _, t := range b.extensions {
		if p, ok := t[name]; ok {
			return p, nil
		}
	}
	return nil, misuseError(op, "entry point %s is not loaded", name)
}

func (b *bundles) extension(op string, c Capability) (procTable, error) {
	t, ok := b.extensions[c]
	if !ok {
		return nil, misuseError(op, "capability %s is not enabled", c)
	}
	return t, nil
}

func (b *bundles) names() []string {
	names := maps.Keys(b.core)
	for _, t := range b.extensions {
		names = append(names, maps.Keys(t)...)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// builderState tracks the single-shot populate and freeze steps
type builderState int

const (
	builderFresh builderState = iota
	builderPopulated
	builderFrozen
)

func (s builderState) canPopulate(op string) error {
	switch s {
	case builderFrozen:
		return misuseError(op, "loader is frozen")
	case builderPopulated:
		return misuseError(op, "loader is already populated")
	}
	return nil
}

func (s builderState) canFreeze(op string) error {
	switch s {
	case builderFrozen:
		return misuseError(op, "loader is already frozen")
	case builderFresh:
		return misuseError(op, "loader is not populated")
	}
	return nil
}

// globalCommands are the entry points usable before an instance exists
type globalCommands struct {
	driver native.Driver
	procs  procTable
}

// InstanceExtensionProperties lists the instance extensions the driver
// offers, or those a layer offers when layer is not empty
func (g *globalCommands) InstanceExtensionProperties(layer string) ([]Extension, error) {
	const op = "core.InstanceExtensionProperties"
	enumerateExtensions, err := lookup[native.EnumerateInstanceExtensionPropertiesFunc](op, g.procs, cmdEnumerateInstanceExtensionProperties)
	if err != nil {
		return nil, err
	}
	var layerName []byte
	if layer != "" {
		if layerName, err = safeString(op, "layer name", layer); err != nil {
			return nil, err
		}
	}
	return enumerate(op, func(count *uint32, buf []native.ExtensionProperties) native.Result {
		return enumerateExtensions(layerName, count, buf)
	}, func(raw *native.ExtensionProperties) (Extension, error) {
		return convertExtension(op, raw)
	})
}

// InstanceLayerProperties lists the layers the driver offers
func (g *globalCommands) InstanceLayerProperties() ([]Layer, error) {
	const op = "core.InstanceLayerProperties"
	enumerateLayers, err := lookup[native.EnumerateInstanceLayerPropertiesFunc](op, g.procs, cmdEnumerateInstanceLayerProperties)
	if err != nil {
		return nil, err
	}
	return enumerate(op, enumerateLayers, func(raw *native.LayerProperties) (Layer, error) {
		return convertLayer(op, raw)
	})
}

// LoaderBuilder is an instance-scope loader that has not been shared yet.
// It starts out with the global entry points only; NewInstance populates it
// with instance entry points and freezes it into a Loader.
type LoaderBuilder struct {
	globalCommands

	state    builderState
	instance native.Instance
	bundles  bundles
}

// NewLoaderBuilder resolves the global entry points from driver
func NewLoaderBuilder(driver native.Driver) (*LoaderBuilder, error) {
	const op = "core.NewLoaderBuilder"
	if driver == nil {
		return nil, generalError(op, "nil driver")
	}
	procs, err := resolveAll(op, func(name string) native.Proc {
		return driver.GetInstanceProcAddr(0, name)
	}, globalCommandNames)
	if err != nil {
		return nil, err
	}
	return &LoaderBuilder{globalCommands: globalCommands{driver: driver, procs: procs}}, nil
}

// Populate resolves the core instance entry points and those of every
// capability in caps. It can run once, and never after Freeze.
func (b *LoaderBuilder) Populate(instance native.Instance, caps CapabilitySet) error {
	const op = "core.LoaderBuilder.Populate"
	if err := b.state.canPopulate(op); err != nil {
		return err
	}
	if instance == 0 {
		return misuseError(op, "null instance handle")
	}
	loaded, err := loadBundles(op, func(name string) native.Proc {
		return b.driver.GetInstanceProcAddr(instance, name)
	}, instanceCommandNames, caps, func(c Capability) []string {
		return menu[c].instanceCommands
	})
	if err != nil {
		return err
	}
	b.instance, b.bundles, b.state = instance, loaded, builderPopulated

	logger.WithFields(logrus.Fields{
		"op":           op,
		"capabilities": caps.Names(),
		"commands":     len(loaded.names()),
	}).Debug("instance entry points resolved")
	return nil
}

// Freeze turns the populated builder into a shareable Loader. The builder
// rejects every further Populate and Freeze.
func (b *LoaderBuilder) Freeze() (*Loader, error) {
	const op = "core.LoaderBuilder.Freeze"
	if err := b.state.canFreeze(op); err != nil {
		return nil, err
	}
	b.state = builderFrozen
	return &Loader{
		globalCommands: b.globalCommands,
		instance:       b.instance,
		bundles:        b.bundles,
	}, nil
}

// Loader is a populated, immutable instance-scope loader. It is safe for
// concurrent use.
type Loader struct {
	globalCommands

	instance native.Instance
	bundles  bundles
}

// Instance returns the handle the loader was populated for
func (l *Loader) Instance() native.Instance {
	return l.instance
}

// Enabled reports whether the capability's entry points are loaded
func (l *Loader) Enabled(c Capability) bool {
	return l.bundles.enabled.Has(c)
}

// Capabilities returns the enabled instance capabilities
func (l *Loader) Capabilities() CapabilitySet {
	return l.bundles.enabled
}

// Commands lists every loaded instance entry point name, sorted
func (l *Loader) Commands() []string {
	return l.bundles.names()
}

// Proc returns a loaded entry point by name
func (l *Loader) Proc(name string) (native.Proc, bool) {
	p, err := l.bundles.command("core.Loader.Proc", name)
	return p, err == nil
}

// NewDeviceLoaderBuilder starts a loader for one logical device
func (l *Loader) NewDeviceLoaderBuilder() *DeviceLoaderBuilder {
	return &DeviceLoaderBuilder{driver: l.driver}
}

// InstanceProc returns a typed instance entry point, for capability
// commands the wrapper does not call itself
func InstanceProc[F any](l *Loader, name string) (F, error) {
	return typedCommand[F](&l.bundles, "core.InstanceProc", name)
}

func typedCommand[F any](b *bundles, op, name string) (F, error) {
	var zero F
	p, err := b.command(op, name)
	if err != nil {
		return zero, err
	}
	return lookup[F](op, procTable{name: p}, name)
}

// instanceCommand returns a core instance entry point
func instanceCommand[F any](l *Loader, op, name string) (F, error) {
	return lookup[F](op, l.bundles.core, name)
}

// extensionCommand returns an entry point of an enabled capability
func extensionCommand[F any](b *bundles, op string, c Capability, name string) (F, error) {
	var zero F
	t, err := b.extension(op, c)
	if err != nil {
		return zero, err
	}
	return lookup[F](op, t, name)
}

// DeviceLoaderBuilder is a device-scope loader that has not been shared yet
type DeviceLoaderBuilder struct {
	driver native.Driver

	state   builderState
	device  native.Device
	bundles bundles
}

// Populate resolves the core device entry points and those of every
// capability in caps. It can run once, and never after Freeze.
func (b *DeviceLoaderBuilder) Populate(device native.Device, caps CapabilitySet) error {
	const op = "core.DeviceLoaderBuilder.Populate"
	if err := b.state.canPopulate(op); err != nil {
		return err
	}
	if device == 0 {
		return misuseError(op, "null device handle")
	}
	loaded, err := loadBundles(op, func(name string) native.Proc {
		return b.driver.GetDeviceProcAddr(device, name)
	}, deviceCommandNames, caps, func(c Capability) []string {
		return menu[c].deviceCommands
	})
	if err != nil {
		return err
	}
	b.device, b.bundles, b.state = device, loaded, builderPopulated

	logger.WithFields(logrus.Fields{
		"op":           op,
		"capabilities": caps.Names(),
		"commands":     len(loaded.names()),
	}).Debug("device entry points resolved")
	return nil
}

// Freeze turns the populated builder into a DeviceLoader
func (b *DeviceLoaderBuilder) Freeze() (*DeviceLoader, error) {
	const op = "core.DeviceLoaderBuilder.Freeze"
	if err := b.state.canFreeze(op); err != nil {
		return nil, err
	}
	b.state = builderFrozen
	return &DeviceLoader{device: b.device, bundles: b.bundles}, nil
}

// DeviceLoader is a populated, immutable device-scope loader
type DeviceLoader struct {
	device  native.Device
	bundles bundles
}

// Device returns the handle the loader was populated for
func (l *DeviceLoader) Device() native.Device {
	return l.device
}

// Enabled reports whether the capability's device entry points are loaded
func (l *DeviceLoader) Enabled(c Capability) bool {
	return l.bundles.enabled.Has(c)
}

// Capabilities returns the enabled device capabilities
func (l *DeviceLoader) Capabilities() CapabilitySet {
	return l.bundles.enabled
}

// Commands lists every loaded device entry point name, sorted
func (l *DeviceLoader) Commands() []string {
	return l.bundles.names()
}

// Proc returns a loaded entry point by name
func (l *DeviceLoader) Proc(name string) (native.Proc, bool) {
	p, err := l.bundles.command("core.DeviceLoader.Proc", name)
	return p, err == nil
}

// DeviceProc returns a typed device entry point, for capability commands
// the wrapper does not call itself
func DeviceProc[F any](l *DeviceLoader, name string) (F, error) {
	return typedCommand[F](&l.bundles, "core.DeviceProc", name)
}

func deviceCommand[F any](l *DeviceLoader, op, name string) (F, error) {
	return lookup[F](op, l.bundles.core, name)
}
