package core_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/vkbind/core"
	"github.com/devblok/vkbind/native"
	"github.com/devblok/vkbind/vktest"
)

func TestAdaptersInDriverOrder(t *testing.T) {
	c := qt.New(t)
	d := vktest.New()
	integrated := vktest.DefaultAdapter()
	integrated.Name = "vktest integrated"
	integrated.Type = native.DeviceTypeIntegratedGPU
	d.Adapters = append(d.Adapters, integrated)
	inst := newInstance(c, d, core.InstanceConfiguration{})
	defer inst.Destroy()

	adapters, err := inst.Adapters()
	c.Assert(err, qt.IsNil)
	c.Assert(adapters, qt.HasLen, 2)
	c.Assert(adapters[0].Handle(), qt.Equals, vktest.AdapterHandle(0))
	c.Assert(adapters[1].Handle(), qt.Equals, vktest.AdapterHandle(1))
	c.Assert(adapters[1].Instance(), qt.Equals, inst)

	props, err := adapters[1].Properties()
	c.Assert(err, qt.IsNil)
	c.Assert(props.DeviceName, qt.Equals, "vktest integrated")
	c.Assert(props.DeviceType, qt.Equals, core.DeviceTypeIntegratedGPU)
}

func TestAdaptersGrowingBetweenCalls(t *testing.T) {
	c := qt.New(t)
	d := vktest.New()
	d.AdapterGrowth = 1
	inst := newInstance(c, d, core.InstanceConfiguration{})
	defer inst.Destroy()

	_, err := inst.Adapters()
	c.Assert(err, qt.ErrorIs, &core.Error{Kind: core.KindNative, Result: native.Incomplete})
	c.Assert(d.Count("vkEnumeratePhysicalDevices"), qt.Equals, 2)
}

func TestAdaptersNone(t *testing.T) {
	c := qt.New(t)
	d := vktest.New()
	d.Adapters = nil
	inst := newInstance(c, d, core.InstanceConfiguration{})
	defer inst.Destroy()

	adapters, err := inst.Adapters()
	c.Assert(err, qt.IsNil)
	c.Assert(adapters, qt.HasLen, 0)
	c.Assert(d.Count("vkEnumeratePhysicalDevices"), qt.Equals, 1)
}

func TestPropertiesQueryPath(t *testing.T) {
	c := qt.New(t)
	tests := []struct {
		about string
		caps  []core.Capability
		used  string
		other string
	}{{
		about: "base query",
		used:  "vkGetPhysicalDeviceProperties",
		other: "vkGetPhysicalDeviceProperties2KHR",
	}, {
		about: "extended query",
		caps:  []core.Capability{core.KHRGetPhysicalDeviceProperties2},
		used:  "vkGetPhysicalDeviceProperties2KHR",
		other: "vkGetPhysicalDeviceProperties",
	}}
	for _, test := range tests {
		c.Run(test.about, func(c *qt.C) {
			d := vktest.New()
			inst := newInstance(c, d, core.InstanceConfiguration{Capabilities: test.caps})
			defer inst.Destroy()

			props, err := firstAdapter(c, inst).Properties()
			c.Assert(err, qt.IsNil)
			c.Assert(props.DeviceName, qt.Equals, "vktest discrete")
			c.Assert(props.DeviceType, qt.Equals, core.DeviceTypeDiscreteGPU)
			c.Assert(props.APIVersion, qt.Equals, core.Version{Major: 1, Minor: 1, Patch: 70})
			c.Assert(props.VendorID, qt.Equals, uint32(0x1002))
			c.Assert(props.Limits.MaxComputeWorkGroupCount, qt.Equals, [3]uint32{65535, 65535, 65535})
			c.Assert(d.Count(test.used), qt.Equals, 1)
			c.Assert(d.Count(test.other), qt.Equals, 0)
		})
	}
}

func TestPropertiesInvalidDeviceName(t *testing.T) {
	c := qt.New(t)
	d := vktest.New()
	d.Adapters[0].RawName = []byte{'g', 'p', 'u', 0xff}
	inst := newInstance(c, d, core.InstanceConfiguration{})
	defer inst.Destroy()

	_, err := firstAdapter(c, inst).Properties()
	c.Assert(err, qt.ErrorIs, core.ErrEncoding)
}

func TestAdapterQueries(t *testing.T) {
	c := qt.New(t)
	d := vktest.New()
	inst := newInstance(c, d, core.InstanceConfiguration{})
	defer inst.Destroy()
	adapter := firstAdapter(c, inst)

	families, err := adapter.QueueFamilyProperties()
	c.Assert(err, qt.IsNil)
	c.Assert(families, qt.HasLen, 2)
	c.Assert(families[0].Graphics(), qt.IsTrue)
	c.Assert(families[0].QueueCount, qt.Equals, uint32(4))
	c.Assert(families[1].Graphics(), qt.IsFalse)
	c.Assert(families[1].SparseBinding(), qt.IsTrue)

	exts, err := adapter.ExtensionProperties()
	c.Assert(err, qt.IsNil)
	var names []string
	for _, e := range exts {
		names = append(names, e.Name)
	}
	c.Assert(names, qt.DeepEquals, vktest.DefaultDeviceExtensions)

	features, err := adapter.Features()
	c.Assert(err, qt.IsNil)
	c.Assert(features.Has(core.GeometryShader), qt.IsTrue)
	c.Assert(features.Has(core.SparseResidencyAliased), qt.IsFalse)
	c.Assert(core.NewFeatures(core.GeometryShader, core.SparseResidencyAliased).Missing(features), qt.DeepEquals, []core.Feature{core.SparseResidencyAliased})

	format, err := adapter.FormatProperties(vktest.FormatB8G8R8A8Unorm)
	c.Assert(err, qt.IsNil)
	c.Assert(format.OptimalTilingFeatures, qt.Equals, native.FormatFeatureFlags(0x1d83))
	format, err = adapter.FormatProperties(native.Format(1))
	c.Assert(err, qt.IsNil)
	c.Assert(format, qt.Equals, core.FormatProperties{})

	memory, err := adapter.MemoryProperties()
	c.Assert(err, qt.IsNil)
	c.Assert(memory.Types, qt.HasLen, 2)
	c.Assert(memory.Heaps, qt.HasLen, 2)
	c.Assert(memory.TotalHeapSize(), qt.Equals, uint64(24<<30))
}

func TestMemoryPropertiesOverflow(t *testing.T) {
	c := qt.New(t)
	d := vktest.New()
	d.Adapters[0].Memory.MemoryHeapCount = native.MaxMemoryHeaps + 1
	inst := newInstance(c, d, core.InstanceConfiguration{})
	defer inst.Destroy()

	_, err := firstAdapter(c, inst).MemoryProperties()
	r, ok := core.ResultOf(err)
	c.Assert(ok, qt.IsTrue)
	c.Assert(r, qt.Equals, native.ErrorIncompatibleDriver)
}
