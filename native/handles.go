package native

// Dispatchable handles are pointer sized, non-dispatchable ones are always 64 bit.
type (
	Instance       uintptr
	PhysicalDevice uintptr
	Device         uintptr
	Queue          uintptr

	Surface             uint64
	DebugReportCallback uint64
)

// Bool32 is the native 32 bit boolean
type Bool32 uint32

// Native boolean values
const (
	False Bool32 = 0
	True  Bool32 = 1
)

// Bool converts a Go bool
func Bool(b bool) Bool32 {
	if b {
		return True
	}
	return False
}

// Proc is a resolved entry point. Drivers return one of the typed
// function values declared in this package, or a RawProc address for
// commands they resolve but do not wrap. A nil Proc means unresolvable.
type Proc interface{}

// RawProc is the bare address of an entry point without a Go binding
type RawProc uintptr

// Driver resolves entry points by name, the way vkGetInstanceProcAddr and
// vkGetDeviceProcAddr do. A zero Instance asks for global commands.
type Driver interface {
	GetInstanceProcAddr(instance Instance, name string) Proc
	GetDeviceProcAddr(device Device, name string) Proc
}
