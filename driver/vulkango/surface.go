package vulkango

import (
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/devblok/vkbind/native"
)

// Structure type tags of the platform surface create records
const (
	structureTypeXlibSurfaceCreateInfo    = 1000004000
	structureTypeXcbSurfaceCreateInfo     = 1000005000
	structureTypeWaylandSurfaceCreateInfo = 1000006000
	structureTypeAndroidSurfaceCreateInfo = 1000008000
	structureTypeWin32SurfaceCreateInfo   = 1000009000
	structureTypeMacOSSurfaceCreateInfo   = 1000123000
)

// displaySurfaceCreateInfo covers xlib, wayland and win32, which all carry
// a display or module handle followed by a window handle
type displaySurfaceCreateInfo struct {
	sType   uint32
	pNext   uintptr
	flags   uint32
	display uintptr
	window  uintptr
}

type xcbSurfaceCreateInfo struct {
	sType      uint32
	pNext      uintptr
	flags      uint32
	connection uintptr
	window     uint32
}

// windowSurfaceCreateInfo covers android and macOS, which only take a view
type windowSurfaceCreateInfo struct {
	sType  uint32
	pNext  uintptr
	flags  uint32
	window uintptr
}

type surfaceLayout func(info *native.PlatformSurfaceCreateInfo) unsafe.Pointer

func displayLayout(sType uint32) surfaceLayout {
	return func(info *native.PlatformSurfaceCreateInfo) unsafe.Pointer {
		return unsafe.Pointer(&displaySurfaceCreateInfo{sType: sType, display: info.Display, window: info.Window})
	}
}

func windowLayout(sType uint32) surfaceLayout {
	return func(info *native.PlatformSurfaceCreateInfo) unsafe.Pointer {
		return unsafe.Pointer(&windowSurfaceCreateInfo{sType: sType, window: info.Window})
	}
}

var surfaceLayouts = map[string]surfaceLayout{
	"vkCreateXlibSurfaceKHR":    displayLayout(structureTypeXlibSurfaceCreateInfo),
	"vkCreateWaylandSurfaceKHR": displayLayout(structureTypeWaylandSurfaceCreateInfo),
	"vkCreateWin32SurfaceKHR":   displayLayout(structureTypeWin32SurfaceCreateInfo),
	"vkCreateXcbSurfaceKHR": func(info *native.PlatformSurfaceCreateInfo) unsafe.Pointer {
		return unsafe.Pointer(&xcbSurfaceCreateInfo{
			sType:      structureTypeXcbSurfaceCreateInfo,
			connection: info.Display,
			window:     uint32(info.Window),
		})
	},
	"vkCreateAndroidSurfaceKHR": windowLayout(structureTypeAndroidSurfaceCreateInfo),
	"vkCreateMacOSSurfaceMVK":   windowLayout(structureTypeMacOSSurfaceCreateInfo),
}

// createPlatformSurface binds the raw creation command at addr and lays the
// window handles out the way that platform's record expects
func createPlatformSurface(addr uintptr, layout surfaceLayout) native.CreatePlatformSurfaceFunc {
	var create func(instance uintptr, info unsafe.Pointer, allocator uintptr, surface *uint64) int32
	purego.RegisterFunc(&create, addr)

	return func(instance native.Instance, info *native.PlatformSurfaceCreateInfo, surface *native.Surface) native.Result {
		var handle uint64
		r := native.Result(create(uintptr(instance), layout(info), 0, &handle))
		if r == native.Success {
			*surface = native.Surface(handle)
		}
		return r
	}
}
