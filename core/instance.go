package core

import (
	"github.com/sirupsen/logrus"

	"github.com/devblok/vkbind/native"
)

// DefaultAPIVersion is requested when the configuration leaves it unset
var DefaultAPIVersion = Version{Major: 1, Minor: 0, Patch: 0}

// resource is an object the instance owns and tears down before itself
type resource interface {
	Destroy()
}

// Instance is the root of the ownership graph. It owns its loader, every
// surface and debug callback created from it, and counts the logical
// devices created from it. Methods are not safe for concurrent use.
type Instance struct {
	handle    native.Instance
	loader    *Loader
	debugMode bool

	resources []resource
	devices   int
	destroyed bool
}

// NewInstance creates an instance from builder, which must be fresh. Names
// are checked before the driver is called; once the instance exists the
// builder is populated with the enabled capabilities and frozen into the
// instance's loader.
func NewInstance(builder *LoaderBuilder, cfg InstanceConfiguration) (*Instance, error) {
	const op = "core.NewInstance"
	if builder == nil {
		return nil, generalError(op, "nil loader builder")
	}
	if err := builder.state.canPopulate(op); err != nil {
		return nil, err
	}

	caps := append([]Capability(nil), cfg.Capabilities...)
	if cfg.DebugMode {
		caps = append(caps, EXTDebugReport)
	}
	set, err := resolveCapabilities(op, caps, Capability.InstanceScoped, 0)
	if err != nil {
		return nil, err
	}
	if len(cfg.DisabledValidationChecks) > 0 && !set.Has(EXTValidationFlags) {
		return nil, generalError(op, "disabled validation checks need %s", EXTValidationFlags)
	}

	appName, err := safeString(op, "application name", cfg.AppName)
	if err != nil {
		return nil, err
	}
	engineName, err := safeString(op, "engine name", cfg.EngineName)
	if err != nil {
		return nil, err
	}
	layers, err := safeStrings(op, "layer name", cfg.Layers)
	if err != nil {
		return nil, err
	}
	extensions, err := safeStrings(op, "extension name", extensionNames(set, true))
	if err != nil {
		return nil, err
	}

	apiVersion := cfg.APIVersion
	if apiVersion == (Version{}) {
		apiVersion = DefaultAPIVersion
	}
	info := native.InstanceCreateInfo{
		ApplicationInfo: &native.ApplicationInfo{
			ApplicationName:    appName,
			ApplicationVersion: cfg.AppVersion.Pack(),
			EngineName:         engineName,
			EngineVersion:      cfg.EngineVersion.Pack(),
			APIVersion:         apiVersion.Pack(),
		},
		EnabledLayerNames:     layers,
		EnabledExtensionNames: extensions,
	}
	if len(cfg.DisabledValidationChecks) > 0 {
		info.ValidationFlags = &native.ValidationFlags{
			DisabledValidationChecks: append([]native.ValidationCheck(nil), cfg.DisabledValidationChecks...),
		}
	}

	createInstance, err := lookup[native.CreateInstanceFunc](op, builder.procs, cmdCreateInstance)
	if err != nil {
		return nil, err
	}
	var handle native.Instance
	if err := check(op, createInstance(&info, &handle)); err != nil {
		return nil, err
	}

	if err := builder.Populate(handle, set); err != nil {
		if destroy, ok := builder.driver.GetInstanceProcAddr(handle, cmdDestroyInstance).(native.DestroyInstanceFunc); ok {
			destroy(handle)
		}
		return nil, err
	}
	loader, err := builder.Freeze()
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"op":           op,
		"app":          cfg.AppName,
		"api":          apiVersion.String(),
		"capabilities": set.Names(),
		"layers":       cfg.Layers,
	}).Info("instance created")

	return &Instance{
		handle:    handle,
		loader:    loader,
		debugMode: cfg.DebugMode,
	}, nil
}

// Handle returns the native handle
func (i *Instance) Handle() native.Instance {
	return i.handle
}

// Loader returns the shared, populated instance loader
func (i *Instance) Loader() *Loader {
	return i.loader
}

// LiveDevices returns the number of logical devices not yet destroyed
func (i *Instance) LiveDevices() int {
	return i.devices
}

// Destroyed reports whether Destroy has completed
func (i *Instance) Destroyed() bool {
	return i.destroyed
}

func (i *Instance) alive(op string) error {
	if i.destroyed {
		return misuseError(op, "instance is destroyed")
	}
	return nil
}

func (i *Instance) adopt(r resource) {
	i.resources = append(i.resources, r)
}

func (i *Instance) release(r resource) {
	for idx, owned := range i.resources {
		if owned == r {
			i.resources = append(i.resources[:idx], i.resources[idx+1:]...)
			return
		}
	}
}

// Adapters enumerates the adapters visible to the instance
func (i *Instance) Adapters() ([]*Adapter, error) {
	const op = "core.Instance.Adapters"
	if err := i.alive(op); err != nil {
		return nil, err
	}
	enumeratePhysicalDevices, err := instanceCommand[native.EnumeratePhysicalDevicesFunc](i.loader, op, cmdEnumeratePhysicalDevices)
	if err != nil {
		return nil, err
	}
	return enumerate(op, func(count *uint32, buf []native.PhysicalDevice) native.Result {
		return enumeratePhysicalDevices(i.handle, count, buf)
	}, func(h *native.PhysicalDevice) (*Adapter, error) {
		return &Adapter{handle: *h, instance: i}, nil
	})
}

// Destroy tears down every owned resource in reverse creation order, then
// the instance itself. Logical devices are the caller's to destroy first:
// with live devices Destroy refuses in debug mode and warns otherwise.
// Calling Destroy again is a no-op.
func (i *Instance) Destroy() error {
	const op = "core.Instance.Destroy"
	if i.destroyed {
		return nil
	}
	if i.devices > 0 {
		if i.debugMode {
			return misuseError(op, "%d logical devices are still alive", i.devices)
		}
		logger.WithFields(logrus.Fields{"op": op, "devices": i.devices}).Warn("destroying instance with live logical devices")
	}

	owned := i.resources
	i.resources = nil
	for idx := len(owned) - 1; idx >= 0; idx-- {
		owned[idx].Destroy()
	}

	destroyInstance, err := instanceCommand[native.DestroyInstanceFunc](i.loader, op, cmdDestroyInstance)
	if err != nil {
		return err
	}
	destroyInstance(i.handle)
	i.destroyed = true

	logger.WithField("op", op).Info("instance destroyed")
	return nil
}
