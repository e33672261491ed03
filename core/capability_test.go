package core_test

import (
	"sort"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/vkbind/core"
)

func TestMenu(t *testing.T) {
	c := qt.New(t)
	names := core.Menu()
	c.Assert(sort.StringsAreSorted(names), qt.IsTrue)
	c.Assert(names, qt.Contains, "khr_surface")
	c.Assert(names, qt.Contains, "amd_draw_indirect_count")
	for _, name := range names {
		capability, err := core.ParseCapability(name)
		c.Assert(err, qt.IsNil)
		c.Assert(capability.String(), qt.Equals, name)
		c.Assert(capability.InstanceScoped() || capability.DeviceScoped(), qt.IsTrue)
	}
}

func TestParseCapabilities(t *testing.T) {
	c := qt.New(t)
	caps, err := core.ParseCapabilities([]string{"KHR_Swapchain", "", " ext_debug_report "})
	c.Assert(err, qt.IsNil)
	c.Assert(caps, qt.DeepEquals, []core.Capability{core.KHRSwapchain, core.EXTDebugReport})

	_, err = core.ParseCapabilities([]string{"khr_surface", "khr_teleport"})
	c.Assert(err, qt.ErrorIs, core.ErrGeneral)
}

func TestCapabilityScopes(t *testing.T) {
	c := qt.New(t)
	c.Assert(core.KHRSurface.InstanceScoped(), qt.IsTrue)
	c.Assert(core.KHRSurface.DeviceScoped(), qt.IsFalse)
	c.Assert(core.KHRSwapchain.DeviceScoped(), qt.IsTrue)
	c.Assert(core.KHRSwapchain.Requires(), qt.DeepEquals, []core.Capability{core.KHRSurface})
	c.Assert(core.EXTHdrMetadata.Requires(), qt.DeepEquals, []core.Capability{core.KHRSwapchain})
	c.Assert(core.KHRWin32Surface.Extensions(), qt.DeepEquals, []string{"VK_KHR_win32_surface"})
	c.Assert(core.Capability(-1).Extensions(), qt.IsNil)
	c.Assert(core.Capability(99).String(), qt.Equals, "capability(99)")
}

func TestCapabilitiesForExtensions(t *testing.T) {
	c := qt.New(t)
	caps, err := core.CapabilitiesForExtensions([]string{"VK_KHR_xlib_surface\x00", "VK_KHR_surface"})
	c.Assert(err, qt.IsNil)
	c.Assert(caps, qt.DeepEquals, []core.Capability{core.KHRSurface, core.KHRXlibSurface})

	_, err = core.CapabilitiesForExtensions([]string{"VK_KHR_holographic"})
	c.Assert(err, qt.ErrorIs, core.ErrGeneral)
}

func TestCapabilitySet(t *testing.T) {
	c := qt.New(t)
	s := core.NewCapabilitySet(core.EXTDebugReport, core.KHRSurface)
	c.Assert(s.Has(core.KHRSurface), qt.IsTrue)
	c.Assert(s.Has(core.KHRSwapchain), qt.IsFalse)
	c.Assert(s.Has(core.Capability(70)), qt.IsFalse)
	c.Assert(s.List(), qt.DeepEquals, []core.Capability{core.KHRSurface, core.EXTDebugReport})
	c.Assert(s.Union(core.NewCapabilitySet(core.KHRSwapchain)).Names(), qt.DeepEquals, []string{
		"khr_surface", "khr_swapchain", "ext_debug_report",
	})
}

func TestFeatures(t *testing.T) {
	c := qt.New(t)
	f, err := core.ParseFeature("samplerAnisotropy")
	c.Assert(err, qt.IsNil)
	c.Assert(f, qt.Equals, core.SamplerAnisotropy)
	f, err = core.ParseFeature("GEOMETRYSHADER")
	c.Assert(err, qt.IsNil)
	c.Assert(f, qt.Equals, core.GeometryShader)
	_, err = core.ParseFeature("rayTracing")
	c.Assert(err, qt.ErrorIs, core.ErrGeneral)

	s := core.NewFeatures(core.InheritedQueries, core.RobustBufferAccess)
	c.Assert(s.Names(), qt.DeepEquals, []string{"robustBufferAccess", "inheritedQueries"})
	c.Assert(core.NewFeatures(core.Feature(80)), qt.Equals, core.Features(0))
}
