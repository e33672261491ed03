package device_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/vkbind/core"
	"github.com/devblok/vkbind/device"
	"github.com/devblok/vkbind/native"
	"github.com/devblok/vkbind/vktest"
)

func adapters(c *qt.C, d *vktest.Driver, caps ...core.Capability) (*core.Instance, []*core.Adapter) {
	builder, err := core.NewLoaderBuilder(d)
	c.Assert(err, qt.IsNil)
	inst, err := core.NewInstance(builder, core.InstanceConfiguration{Capabilities: caps})
	c.Assert(err, qt.IsNil)
	c.Cleanup(func() { inst.Destroy() })
	list, err := inst.Adapters()
	c.Assert(err, qt.IsNil)
	return inst, list
}

func integratedAdapter() vktest.Adapter {
	a := vktest.DefaultAdapter()
	a.Name = "vktest integrated"
	a.Type = native.DeviceTypeIntegratedGPU
	a.Extensions = []string{"VK_KHR_swapchain", "VK_NV_glsl_shader"}
	return a
}

func TestDescribe(t *testing.T) {
	c := qt.New(t)
	_, list := adapters(c, vktest.New())

	info := device.Describe(list[0])
	c.Assert(info.Invalid, qt.IsFalse)
	c.Assert(info.Name, qt.Equals, "vktest discrete")
	c.Assert(info.Type, qt.Equals, core.DeviceTypeDiscreteGPU)
	c.Assert(info.VendorID, qt.Equals, 0x1002)
	c.Assert(info.ID, qt.Equals, 0x73bf)
	c.Assert(info.DriverVersion, qt.Equals, 42)
	c.Assert(info.APIVersion, qt.Equals, core.Version{Major: 1, Minor: 1, Patch: 70})
	c.Assert(info.Extensions, qt.DeepEquals, vktest.DefaultDeviceExtensions)
	c.Assert(info.QueueFamilies, qt.HasLen, 2)
	c.Assert(info.Memory, qt.Equals, uint64(24<<30))
	c.Assert(info.Features.Has(core.GeometryShader), qt.IsTrue)
	c.Assert(info.Features.Has(core.SparseResidencyAliased), qt.IsFalse)
	c.Assert(info.HasExtension("VK_KHR_swapchain"), qt.IsTrue)
	c.Assert(info.HasExtension("VK_KHR_display_swapchain"), qt.IsFalse)

	family, ok := info.GraphicsFamily()
	c.Assert(ok, qt.IsTrue)
	c.Assert(family, qt.Equals, uint32(0))
}

func TestDescribeInvalidAdapter(t *testing.T) {
	c := qt.New(t)
	d := vktest.New()
	d.Adapters[0].RawName = []byte("broken\xff")
	_, list := adapters(c, d)

	info := device.Describe(list[0])
	c.Assert(info.Invalid, qt.IsTrue)
	c.Assert(info.Name, qt.Equals, "")
	c.Assert(info.Extensions, qt.DeepEquals, vktest.DefaultDeviceExtensions)

	infos := device.DescribeAll(list)
	c.Assert(infos, qt.HasLen, 1)
	c.Assert(infos[0].Invalid, qt.IsTrue)
}

func TestSelect(t *testing.T) {
	bigger := vktest.DefaultAdapter()
	bigger.Name = "vktest bigger"
	bigger.Memory.MemoryHeaps[1].Size = 32 << 30

	noGraphics := vktest.DefaultAdapter()
	noGraphics.Name = "vktest compute"
	noGraphics.QueueFamilies = noGraphics.QueueFamilies[1:]

	broken := vktest.DefaultAdapter()
	broken.RawName = []byte("\xff")

	tests := []struct {
		about    string
		adapters []vktest.Adapter
		req      device.Requirements
		want     string
	}{{
		about:    "discrete preferred over integrated",
		adapters: []vktest.Adapter{integratedAdapter(), vktest.DefaultAdapter()},
		want:     "vktest discrete",
	}, {
		about:    "memory breaks ties",
		adapters: []vktest.Adapter{vktest.DefaultAdapter(), bigger},
		want:     "vktest bigger",
	}, {
		about:    "missing extension excludes the discrete adapter",
		adapters: []vktest.Adapter{vktest.DefaultAdapter(), integratedAdapter()},
		req:      device.Requirements{Extensions: []string{"VK_KHR_swapchain", "VK_NV_glsl_shader"}},
		want:     "vktest integrated",
	}, {
		about:    "integrated adapter lacks maintenance1",
		adapters: []vktest.Adapter{integratedAdapter(), vktest.DefaultAdapter()},
		req:      device.Requirements{Extensions: []string{"VK_KHR_maintenance1"}},
		want:     "vktest discrete",
	}, {
		about:    "adapters without graphics are skipped",
		adapters: []vktest.Adapter{noGraphics, integratedAdapter()},
		want:     "vktest integrated",
	}, {
		about:    "invalid adapters are skipped",
		adapters: []vktest.Adapter{broken, integratedAdapter()},
		want:     "vktest integrated",
	}}

	c := qt.New(t)
	for _, test := range tests {
		c.Run(test.about, func(c *qt.C) {
			d := vktest.New()
			d.Adapters = test.adapters
			_, list := adapters(c, d)

			choice, err := device.Select(list, test.req)
			c.Assert(err, qt.IsNil)
			c.Assert(choice.Info.Name, qt.Equals, test.want)
			c.Assert(choice.Adapter, qt.Not(qt.IsNil))
		})
	}
}

func TestSelectTieKeepsFirst(t *testing.T) {
	c := qt.New(t)
	d := vktest.New()
	d.Adapters = []vktest.Adapter{vktest.DefaultAdapter(), vktest.DefaultAdapter()}
	_, list := adapters(c, d)

	choice, err := device.Select(list, device.Requirements{})
	c.Assert(err, qt.IsNil)
	c.Assert(choice.Adapter, qt.Equals, list[0])
}

func TestSelectNoSuitableAdapter(t *testing.T) {
	c := qt.New(t)
	_, list := adapters(c, vktest.New())

	_, err := device.Select(list, device.Requirements{Features: core.NewFeatures(core.SparseResidencyAliased)})
	c.Assert(err, qt.Equals, device.ErrNoSuitableAdapter)

	_, err = device.Select(nil, device.Requirements{})
	c.Assert(err, qt.Equals, device.ErrNoSuitableAdapter)
}

func TestSelectWithSurface(t *testing.T) {
	c := qt.New(t)
	d := vktest.New()
	inst, list := adapters(c, d, core.KHRSurface, core.KHRXlibSurface)
	surface, err := inst.NewSurface(core.SurfaceDescriptor{Platform: core.PlatformXlib, Display: 1, Window: 2})
	c.Assert(err, qt.IsNil)

	choice, err := device.Select(list, device.Requirements{Surface: surface})
	c.Assert(err, qt.IsNil)
	c.Assert(choice.GraphicsFamily, qt.Equals, uint32(0))
	c.Assert(choice.PresentFamily, qt.Equals, uint32(0))
	c.Assert(choice.QueueRequests(), qt.DeepEquals, []core.QueueRequest{{FamilyIndex: 0, Priorities: []float32{1}}})

	surface.Destroy()
	_, err = device.Select(list, device.Requirements{Surface: surface})
	c.Assert(err, qt.ErrorIs, core.ErrMisuse)
}

func TestQueueRequestsSplitFamilies(t *testing.T) {
	c := qt.New(t)
	choice := device.Choice{GraphicsFamily: 0, PresentFamily: 2}
	c.Assert(choice.QueueRequests(), qt.DeepEquals, []core.QueueRequest{
		{FamilyIndex: 0, Priorities: []float32{1}},
		{FamilyIndex: 2, Priorities: []float32{1}},
	})
}

func TestChoiceBuildsDevice(t *testing.T) {
	c := qt.New(t)
	d := vktest.New()
	inst, list := adapters(c, d)

	choice, err := device.Select(list, device.Requirements{Extensions: []string{"VK_KHR_maintenance1"}})
	c.Assert(err, qt.IsNil)
	dev, err := inst.NewDevice(choice.Adapter, core.DeviceConfiguration{
		Queues:       choice.QueueRequests(),
		Capabilities: []core.Capability{core.KHRMaintenance1},
	})
	c.Assert(err, qt.IsNil)
	defer dev.Destroy()

	c.Assert(d.Device(dev.Handle()).Queues, qt.DeepEquals, map[uint32]int{0: 1})
}
