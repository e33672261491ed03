package core_test

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/sirupsen/logrus"

	"github.com/devblok/vkbind/core"
	"github.com/devblok/vkbind/native"
	"github.com/devblok/vkbind/vktest"
)

func TestNewInstanceRecordsApplication(t *testing.T) {
	c := qt.New(t)
	d := vktest.New()
	inst := newInstance(c, d, core.InstanceConfiguration{
		AppName:       "triangle",
		AppVersion:    core.Version{Major: 0, Minor: 3},
		EngineName:    "vkbind",
		EngineVersion: core.Version{Major: 1, Minor: 2, Patch: 3},
	})
	defer inst.Destroy()

	s := d.Instance(inst.Handle())
	c.Assert(s, qt.IsNotNil)
	c.Assert(s.AppName, qt.Equals, "triangle")
	c.Assert(s.EngineName, qt.Equals, "vkbind")
	c.Assert(s.AppVersion, qt.Equals, core.Version{Minor: 3}.Pack())
	c.Assert(s.EngineVersion, qt.Equals, core.Version{Major: 1, Minor: 2, Patch: 3}.Pack())
	c.Assert(s.APIVersion, qt.Equals, core.DefaultAPIVersion.Pack())
	c.Assert(s.Extensions, qt.HasLen, 0)
}

func TestNewInstanceEnablesSortedExtensions(t *testing.T) {
	c := qt.New(t)
	d := vktest.New()
	inst := newInstance(c, d, core.InstanceConfiguration{
		Capabilities: []core.Capability{core.KHRXcbSurface, core.KHRSurface, core.KHRGetPhysicalDeviceProperties2},
	})
	defer inst.Destroy()
	c.Assert(d.Instance(inst.Handle()).Extensions, qt.DeepEquals, []string{
		"VK_KHR_get_physical_device_properties2",
		"VK_KHR_surface",
		"VK_KHR_xcb_surface",
	})
}

func TestNewInstanceRejectsBadNamesBeforeCallingDriver(t *testing.T) {
	c := qt.New(t)
	for _, cfg := range []core.InstanceConfiguration{
		{AppName: "ko\x00ru"},
		{EngineName: "\xff\xfe"},
		{Layers: []string{"VK_LAYER_\x00"}},
	} {
		d := vktest.New()
		builder, err := core.NewLoaderBuilder(d)
		c.Assert(err, qt.IsNil)
		_, err = core.NewInstance(builder, cfg)
		c.Assert(err, qt.ErrorIs, core.ErrEncoding)
		c.Assert(d.Calls(), qt.HasLen, 0)
	}
}

func TestNewInstanceCapabilityRules(t *testing.T) {
	c := qt.New(t)
	tests := []struct {
		about string
		caps  []core.Capability
	}{{
		about: "requirement missing",
		caps:  []core.Capability{core.KHRXlibSurface},
	}, {
		about: "device capability at instance scope",
		caps:  []core.Capability{core.KHRSurface, core.KHRSwapchain},
	}, {
		about: "off the menu",
		caps:  []core.Capability{core.Capability(99)},
	}}
	for _, test := range tests {
		c.Run(test.about, func(c *qt.C) {
			d := vktest.New()
			builder, err := core.NewLoaderBuilder(d)
			c.Assert(err, qt.IsNil)
			_, err = core.NewInstance(builder, core.InstanceConfiguration{Capabilities: test.caps})
			c.Assert(err, qt.ErrorIs, core.ErrGeneral)
			c.Assert(d.Calls(), qt.HasLen, 0)
		})
	}
}

func TestNewInstanceUnsupportedExtension(t *testing.T) {
	c := qt.New(t)
	d := vktest.New()
	d.InstanceExtensions = []string{"VK_KHR_surface"}
	builder, err := core.NewLoaderBuilder(d)
	c.Assert(err, qt.IsNil)
	_, err = core.NewInstance(builder, core.InstanceConfiguration{
		Capabilities: []core.Capability{core.KHRSurface, core.KHRWaylandSurface},
	})
	c.Assert(err, qt.ErrorIs, &core.Error{Kind: core.KindNative, Result: native.ErrorExtensionNotPresent})
}

func TestNewInstanceLayers(t *testing.T) {
	c := qt.New(t)
	d := vktest.New()
	d.InstanceExtensions = nil
	inst := newInstance(c, d, core.InstanceConfiguration{
		Layers:       []string{vktest.ValidationLayer.Name},
		Capabilities: []core.Capability{core.EXTDebugReport},
	})
	defer inst.Destroy()
	c.Assert(d.Instance(inst.Handle()).Layers, qt.DeepEquals, []string{vktest.ValidationLayer.Name})

	builder, err := core.NewLoaderBuilder(d)
	c.Assert(err, qt.IsNil)
	_, err = core.NewInstance(builder, core.InstanceConfiguration{Layers: []string{"VK_LAYER_missing"}})
	r, ok := core.ResultOf(err)
	c.Assert(ok, qt.IsTrue)
	c.Assert(r, qt.Equals, native.ErrorLayerNotPresent)
}

func TestNewInstanceDisabledValidation(t *testing.T) {
	c := qt.New(t)
	d := vktest.New()
	builder, err := core.NewLoaderBuilder(d)
	c.Assert(err, qt.IsNil)
	_, err = core.NewInstance(builder, core.InstanceConfiguration{
		DisabledValidationChecks: []native.ValidationCheck{native.ValidationCheckShaders},
	})
	c.Assert(err, qt.ErrorIs, core.ErrGeneral)

	inst := newInstance(c, d, core.InstanceConfiguration{
		Capabilities:             []core.Capability{core.EXTValidationFlags},
		DisabledValidationChecks: []native.ValidationCheck{native.ValidationCheckShaders},
	})
	defer inst.Destroy()
	c.Assert(d.Instance(inst.Handle()).DisabledValidationChecks, qt.DeepEquals, []native.ValidationCheck{native.ValidationCheckShaders})
}

func TestDebugModeEnablesDebugReport(t *testing.T) {
	c := qt.New(t)
	d := vktest.New()
	inst := newInstance(c, d, core.InstanceConfiguration{DebugMode: true})
	defer inst.Destroy()
	c.Assert(inst.Loader().Enabled(core.EXTDebugReport), qt.IsTrue)
}

func TestInstanceTeardownOrder(t *testing.T) {
	c := qt.New(t)
	d := vktest.New()
	inst := newInstance(c, d, core.InstanceConfiguration{
		Capabilities: []core.Capability{core.KHRSurface, core.KHRXlibSurface, core.EXTDebugReport},
	})
	surface, err := inst.NewSurface(core.SurfaceDescriptor{Platform: core.PlatformXlib, Display: 1, Window: 2})
	c.Assert(err, qt.IsNil)
	c.Assert(surface.Handle(), qt.Not(qt.Equals), native.Surface(0))
	_, err = inst.NewDebugCallback(0, func(core.DebugReport) {})
	c.Assert(err, qt.IsNil)
	device, err := inst.NewDevice(firstAdapter(c, inst), core.DeviceConfiguration{
		Queues: []core.QueueRequest{{FamilyIndex: 0, Priorities: []float32{1}}},
	})
	c.Assert(err, qt.IsNil)

	device.Destroy()
	c.Assert(inst.Destroy(), qt.IsNil)
	c.Assert(inst.Destroyed(), qt.IsTrue)

	calls := d.Calls()
	c.Assert(calls[len(calls)-4:], qt.DeepEquals, []string{
		"vkDestroyDevice",
		"vkDestroyDebugReportCallbackEXT",
		"vkDestroySurfaceKHR",
		"vkDestroyInstance",
	})
	c.Assert(d.LiveSurfaces(), qt.Equals, 0)
	c.Assert(d.LiveCallbacks(), qt.Equals, 0)

	c.Assert(inst.Destroy(), qt.IsNil)
	surface.Destroy()
	c.Assert(d.Count("vkDestroyInstance"), qt.Equals, 1)
	c.Assert(d.Count("vkDestroySurfaceKHR"), qt.Equals, 1)
}

func TestDebugModeRefusesLiveDevices(t *testing.T) {
	c := qt.New(t)
	d := vktest.New()
	inst := newInstance(c, d, core.InstanceConfiguration{DebugMode: true})
	device, err := inst.NewDevice(firstAdapter(c, inst), core.DeviceConfiguration{
		Queues: []core.QueueRequest{{FamilyIndex: 0, Priorities: []float32{1}}},
	})
	c.Assert(err, qt.IsNil)
	c.Assert(inst.LiveDevices(), qt.Equals, 1)

	c.Assert(inst.Destroy(), qt.ErrorIs, core.ErrMisuse)
	c.Assert(inst.Destroyed(), qt.IsFalse)
	c.Assert(d.Count("vkDestroyInstance"), qt.Equals, 0)

	device.Destroy()
	c.Assert(inst.LiveDevices(), qt.Equals, 0)
	c.Assert(inst.Destroy(), qt.IsNil)
	c.Assert(d.Count("vkDestroyInstance"), qt.Equals, 1)
}

func TestLiveDevicesWarnOutsideDebugMode(t *testing.T) {
	c := qt.New(t)
	hook := captureLog(c)
	d := vktest.New()
	inst := newInstance(c, d, core.InstanceConfiguration{})
	_, err := inst.NewDevice(firstAdapter(c, inst), core.DeviceConfiguration{
		Queues: []core.QueueRequest{{FamilyIndex: 0, Priorities: []float32{1}}},
	})
	c.Assert(err, qt.IsNil)

	c.Assert(inst.Destroy(), qt.IsNil)
	c.Assert(hasEntry(hook, logrus.WarnLevel, "destroying instance with live logical devices"), qt.IsTrue)
	c.Assert(hasEntry(hook, logrus.InfoLevel, "instance destroyed"), qt.IsTrue)
}

func TestDestroyedInstanceRefusesWork(t *testing.T) {
	c := qt.New(t)
	d := vktest.New()
	inst := newInstance(c, d, core.InstanceConfiguration{})
	adapter := firstAdapter(c, inst)
	c.Assert(inst.Destroy(), qt.IsNil)

	_, err := inst.Adapters()
	c.Assert(err, qt.ErrorIs, core.ErrMisuse)
	_, err = adapter.Properties()
	c.Assert(err, qt.ErrorIs, core.ErrMisuse)
	_, err = inst.NewDevice(adapter, core.DeviceConfiguration{})
	c.Assert(err, qt.ErrorIs, core.ErrMisuse)
}
