package vktest_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/vkbind/native"
	"github.com/devblok/vkbind/vktest"
)

func createInstance(c *qt.C, d *vktest.Driver, info native.InstanceCreateInfo) (native.Instance, native.Result) {
	create, ok := d.GetInstanceProcAddr(0, "vkCreateInstance").(native.CreateInstanceFunc)
	c.Assert(ok, qt.IsTrue)
	var h native.Instance
	r := create(&info, &h)
	return h, r
}

func TestGlobalScope(t *testing.T) {
	c := qt.New(t)
	d := vktest.New()
	c.Assert(d.GetInstanceProcAddr(0, "vkEnumerateInstanceLayerProperties"), qt.IsNotNil)
	c.Assert(d.GetInstanceProcAddr(0, "vkDestroyInstance"), qt.IsNil)
	c.Assert(d.GetInstanceProcAddr(0, "notAnEntryPoint"), qt.IsNil)
	c.Assert(d.GetInstanceProcAddr(native.Instance(0x99), "vkDestroyInstance"), qt.IsNil)

	d.Unresolvable = map[string]bool{"vkCreateInstance": true}
	c.Assert(d.GetInstanceProcAddr(0, "vkCreateInstance"), qt.IsNil)
	c.Assert(d.Calls(), qt.HasLen, 0)
}

func TestInstanceScope(t *testing.T) {
	c := qt.New(t)
	d := vktest.New()
	h, r := createInstance(c, d, native.InstanceCreateInfo{
		EnabledExtensionNames: [][]byte{[]byte("VK_KHR_surface\x00")},
	})
	c.Assert(r, qt.Equals, native.Success)
	c.Assert(d.Instance(h).Extensions, qt.DeepEquals, []string{"VK_KHR_surface"})

	_, ok := d.GetInstanceProcAddr(h, "vkDestroySurfaceKHR").(native.DestroySurfaceFunc)
	c.Assert(ok, qt.IsTrue)
	_, ok = d.GetInstanceProcAddr(h, "vkCreateSwapchainKHR").(native.RawProc)
	c.Assert(ok, qt.IsTrue)

	destroy := d.GetInstanceProcAddr(h, "vkDestroyInstance").(native.DestroyInstanceFunc)
	destroy(h)
	c.Assert(d.Instance(h).Destroyed, qt.IsTrue)
	c.Assert(d.GetInstanceProcAddr(h, "vkDestroyInstance"), qt.IsNil)
	c.Assert(d.Calls(), qt.DeepEquals, []string{"vkCreateInstance", "vkDestroyInstance"})
}

func TestCreateInstanceRejections(t *testing.T) {
	c := qt.New(t)
	d := vktest.New()
	d.InstanceExtensions = []string{"VK_KHR_surface"}

	_, r := createInstance(c, d, native.InstanceCreateInfo{EnabledLayerNames: [][]byte{[]byte("VK_LAYER_none\x00")}})
	c.Assert(r, qt.Equals, native.ErrorLayerNotPresent)
	_, r = createInstance(c, d, native.InstanceCreateInfo{EnabledExtensionNames: [][]byte{[]byte("VK_EXT_debug_report\x00")}})
	c.Assert(r, qt.Equals, native.ErrorExtensionNotPresent)
	_, r = createInstance(c, d, native.InstanceCreateInfo{
		EnabledLayerNames:     [][]byte{[]byte(vktest.ValidationLayer.Name + "\x00")},
		EnabledExtensionNames: [][]byte{[]byte("VK_EXT_debug_report\x00")},
	})
	c.Assert(r, qt.Equals, native.Success)
	_, r = createInstance(c, d, native.InstanceCreateInfo{ValidationFlags: &native.ValidationFlags{}})
	c.Assert(r, qt.Equals, native.ErrorExtensionNotPresent)
	c.Assert(d.Count("vkCreateInstance"), qt.Equals, 4)
}

func TestEnumeratePhysicalDevicesGrowth(t *testing.T) {
	c := qt.New(t)
	d := vktest.New()
	d.AdapterGrowth = 2
	h, r := createInstance(c, d, native.InstanceCreateInfo{})
	c.Assert(r, qt.Equals, native.Success)
	enumerate := d.GetInstanceProcAddr(h, "vkEnumeratePhysicalDevices").(native.EnumeratePhysicalDevicesFunc)

	var count uint32
	c.Assert(enumerate(h, &count, nil), qt.Equals, native.Success)
	c.Assert(count, qt.Equals, uint32(1))

	buf := make([]native.PhysicalDevice, 2)
	count = 2
	c.Assert(enumerate(h, &count, buf), qt.Equals, native.Incomplete)
	c.Assert(count, qt.Equals, uint32(2))
	c.Assert(buf, qt.DeepEquals, []native.PhysicalDevice{vktest.AdapterHandle(0), vktest.AdapterHandle(1)})
}

func TestDeviceScope(t *testing.T) {
	c := qt.New(t)
	d := vktest.New()
	h, _ := createInstance(c, d, native.InstanceCreateInfo{})
	create := d.GetInstanceProcAddr(h, "vkCreateDevice").(native.CreateDeviceFunc)

	var features native.PhysicalDeviceFeatures
	features[4] = native.True
	var dev native.Device
	r := create(vktest.AdapterHandle(0), &native.DeviceCreateInfo{
		QueueCreateInfos:      []native.DeviceQueueCreateInfo{{QueueFamilyIndex: 1, QueuePriorities: []float32{1, 1}}},
		EnabledExtensionNames: [][]byte{[]byte("VK_KHR_swapchain\x00")},
		EnabledFeatures:       &features,
	}, &dev)
	c.Assert(r, qt.Equals, native.Success)
	s := d.Device(dev)
	c.Assert(s.Adapter, qt.Equals, 0)
	c.Assert(s.Queues, qt.DeepEquals, map[uint32]int{1: 2})
	c.Assert(s.Features, qt.Equals, features)

	_, ok := d.GetDeviceProcAddr(dev, "vkGetDeviceQueue").(native.GetDeviceQueueFunc)
	c.Assert(ok, qt.IsTrue)
	_, ok = d.GetDeviceProcAddr(dev, "vkQueuePresentKHR").(native.RawProc)
	c.Assert(ok, qt.IsTrue)
	c.Assert(d.GetDeviceProcAddr(native.Device(1), "vkGetDeviceQueue"), qt.IsNil)

	features[52] = native.True
	r = create(vktest.AdapterHandle(0), &native.DeviceCreateInfo{EnabledFeatures: &features}, &dev)
	c.Assert(r, qt.Equals, native.ErrorFeatureNotPresent)
	r = create(vktest.AdapterHandle(0), &native.DeviceCreateInfo{
		QueueCreateInfos: []native.DeviceQueueCreateInfo{{QueueFamilyIndex: 1, QueuePriorities: []float32{1, 1, 1}}},
	}, &dev)
	c.Assert(r, qt.Equals, native.ErrorInitializationFailed)
}

func TestEmitHonoursFlags(t *testing.T) {
	c := qt.New(t)
	d := vktest.New()
	h, _ := createInstance(c, d, native.InstanceCreateInfo{
		EnabledExtensionNames: [][]byte{[]byte("VK_EXT_debug_report\x00")},
	})
	create := d.GetInstanceProcAddr(h, "vkCreateDebugReportCallbackEXT").(native.CreateDebugReportCallbackFunc)

	var seen []string
	var cb native.DebugReportCallback
	r := create(h, &native.DebugReportCallbackCreateInfo{
		Flags: native.DebugReportErrorBit,
		Callback: func(flags native.DebugReportFlags, objectType native.DebugReportObjectType, object uint64, location uintptr, messageCode int32, layerPrefix, message string) native.Bool32 {
			seen = append(seen, message)
			return native.True
		},
	}, &cb)
	c.Assert(r, qt.Equals, native.Success)
	c.Assert(d.LiveCallbacks(), qt.Equals, 1)

	c.Assert(d.Emit(h, native.DebugReportWarningBit, "p", "ignored"), qt.Equals, 0)
	c.Assert(d.Emit(h, native.DebugReportErrorBit, "p", "seen"), qt.Equals, 1)
	c.Assert(seen, qt.DeepEquals, []string{"seen"})
}
