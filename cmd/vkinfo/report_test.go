package main

import (
	"bytes"
	"encoding/json"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/pierrec/lz4"

	"github.com/devblok/vkbind/core"
	"github.com/devblok/vkbind/vktest"
)

func collectFake(c *qt.C, d *vktest.Driver, cfg core.InstanceConfiguration) Report {
	builder, err := core.NewLoaderBuilder(d)
	c.Assert(err, qt.IsNil)
	report, err := collect(builder, cfg)
	c.Assert(err, qt.IsNil)
	return report
}

func TestCollect(t *testing.T) {
	c := qt.New(t)
	d := vktest.New()
	report := collectFake(c, d, core.InstanceConfiguration{
		Capabilities: []core.Capability{core.KHRGetPhysicalDeviceProperties2},
	})

	c.Assert(report.Extensions, qt.HasLen, len(vktest.DefaultInstanceExtensions))
	c.Assert(report.Capabilities, qt.HasLen, 9)
	c.Assert(report.Capabilities[0], qt.Equals, "khr_surface")
	c.Assert(report.Enabled, qt.DeepEquals, []string{"khr_get_physical_device_properties2"})

	c.Assert(report.Layers, qt.HasLen, 1)
	c.Assert(report.Layers[0].Name, qt.Equals, "VK_LAYER_KHRONOS_validation")
	c.Assert(report.Layers[0].SpecVersion, qt.Equals, "1.1.70")
	c.Assert(report.Layers[0].Extensions, qt.HasLen, 2)

	c.Assert(report.Adapters, qt.HasLen, 1)
	a := report.Adapters[0]
	c.Assert(a.Name, qt.Equals, "vktest discrete")
	c.Assert(a.Type, qt.Equals, "discrete gpu")
	c.Assert(a.APIVersion, qt.Equals, "1.1.70")
	c.Assert(a.Memory, qt.Equals, uint64(24<<30))
	c.Assert(a.Features, qt.HasLen, 54)
	c.Assert(a.QueueFamilies, qt.DeepEquals, []queueFamilyReport{
		{Count: 4, Graphics: true, Compute: true, Transfer: true},
		{Count: 2, Transfer: true, Sparse: true},
	})

	c.Assert(d.LiveCallbacks(), qt.Equals, 0)
	c.Assert(d.Count("vkDestroyInstance"), qt.Equals, 1)
}

func TestCollectInstanceFailure(t *testing.T) {
	c := qt.New(t)
	builder, err := core.NewLoaderBuilder(vktest.New())
	c.Assert(err, qt.IsNil)

	_, err = collect(builder, core.InstanceConfiguration{Layers: []string{"VK_LAYER_missing"}})
	c.Assert(err, qt.ErrorIs, core.ErrNative)
}

func TestWriteReport(t *testing.T) {
	c := qt.New(t)
	report := collectFake(c, vktest.New(), core.InstanceConfiguration{})

	var plain bytes.Buffer
	c.Assert(writeReport(&plain, report, false, false), qt.IsNil)
	var decoded Report
	c.Assert(json.Unmarshal(plain.Bytes(), &decoded), qt.IsNil)
	c.Assert(decoded.Adapters[0].Name, qt.Equals, "vktest discrete")

	var compressed bytes.Buffer
	c.Assert(writeReport(&compressed, report, true, true), qt.IsNil)
	c.Assert(bytes.HasPrefix(compressed.Bytes(), []byte{0x04, 0x22, 0x4d, 0x18}), qt.IsTrue)

	decoded = Report{}
	c.Assert(json.NewDecoder(lz4.NewReader(&compressed)).Decode(&decoded), qt.IsNil)
	c.Assert(decoded.Adapters[0].Type, qt.Equals, "discrete gpu")
}

func TestIsCompressed(t *testing.T) {
	c := qt.New(t)
	c.Assert(isCompressed("adapters.lz4"), qt.IsTrue)
	c.Assert(isCompressed("adapters.json"), qt.IsFalse)
	c.Assert(isCompressed("lz4"), qt.IsFalse)
}
