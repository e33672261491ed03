package core

import (
	"github.com/sirupsen/logrus"

	"github.com/devblok/vkbind/native"
)

// Platform names the window system a surface is created for
type Platform int

// Window systems with a surface capability on the menu
const (
	PlatformXlib Platform = iota
	PlatformXcb
	PlatformWayland
	PlatformWin32
	PlatformAndroid
	PlatformMacOS
)

var platformCapabilities = map[Platform]Capability{
	PlatformXlib:    KHRXlibSurface,
	PlatformXcb:     KHRXcbSurface,
	PlatformWayland: KHRWaylandSurface,
	PlatformWin32:   KHRWin32Surface,
	PlatformAndroid: KHRAndroidSurface,
	PlatformMacOS:   MVKMacOSSurface,
}

// Capability returns the capability that creates surfaces for p
func (p Platform) Capability() (Capability, bool) {
	c, ok := platformCapabilities[p]
	return c, ok
}

func (p Platform) String() string {
	if c, ok := p.Capability(); ok {
		return c.String()
	}
	return "unknown platform"
}

// SurfaceDescriptor holds the window system handles for a surface. Display
// is the X display, xcb connection, wayland display or win32 module
// instance; Window is the window, wayland surface, ANativeWindow or NSView.
type SurfaceDescriptor struct {
	Platform Platform
	Display  uintptr
	Window   uintptr
}

// Surface is a presentation surface owned by its instance
type Surface struct {
	handle    native.Surface
	instance  *Instance
	loader    *Loader
	destroyed bool
}

// NewSurface creates a surface through the platform capability named by
// desc. Requires khr_surface and the platform's capability.
func (i *Instance) NewSurface(desc SurfaceDescriptor) (*Surface, error) {
	const op = "core.Instance.NewSurface"
	if err := i.alive(op); err != nil {
		return nil, err
	}
	platform, ok := desc.Platform.Capability()
	if !ok {
		return nil, generalError(op, "unknown platform %d", int(desc.Platform))
	}
	if !i.loader.Enabled(KHRSurface) {
		return nil, misuseError(op, "capability %s is not enabled", KHRSurface)
	}
	createSurface, err := extensionCommand[native.CreatePlatformSurfaceFunc](&i.loader.bundles, op, platform, menu[platform].instanceCommands[0])
	if err != nil {
		return nil, err
	}

	info := native.PlatformSurfaceCreateInfo{Display: desc.Display, Window: desc.Window}
	var handle native.Surface
	if err := check(op, createSurface(i.handle, &info, &handle)); err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{"op": op, "platform": desc.Platform.String()}).Info("surface created")
	return i.ownSurface(handle), nil
}

// AdoptSurface takes ownership of a surface created outside the wrapper,
// usually by a window toolkit. Requires khr_surface.
func (i *Instance) AdoptSurface(raw native.Surface) (*Surface, error) {
	const op = "core.Instance.AdoptSurface"
	if err := i.alive(op); err != nil {
		return nil, err
	}
	if !i.loader.Enabled(KHRSurface) {
		return nil, misuseError(op, "capability %s is not enabled", KHRSurface)
	}
	if raw == 0 {
		return nil, generalError(op, "null surface handle")
	}
	for _, r := range i.resources {
		if s, ok := r.(*Surface); ok && s.handle == raw {
			return nil, misuseError(op, "surface %#x is already owned by this instance", raw)
		}
	}
	return i.ownSurface(raw), nil
}

func (i *Instance) ownSurface(handle native.Surface) *Surface {
	s := &Surface{handle: handle, instance: i, loader: i.loader}
	i.adopt(s)
	return s
}

// Handle returns the native handle
func (s *Surface) Handle() native.Surface {
	return s.handle
}

// Destroy destroys the surface. The owning instance calls it on teardown
// if the caller has not. Calling Destroy again is a no-op.
func (s *Surface) Destroy() {
	const op = "core.Surface.Destroy"
	if s.destroyed {
		return
	}
	destroySurface, err := extensionCommand[native.DestroySurfaceFunc](&s.loader.bundles, op, KHRSurface, cmdDestroySurface)
	if err != nil {
		logger.WithError(err).Error("cannot destroy surface")
		return
	}
	destroySurface(s.loader.instance, s.handle)
	s.destroyed = true
	s.instance.release(s)
	logger.WithField("op", op).Info("surface destroyed")
}
