//go:build darwin || linux || freebsd

package vulkango

import (
	"runtime"

	"github.com/ebitengine/purego"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func libraryNames() []string {
	if runtime.GOOS == "darwin" {
		return []string{"libvulkan.1.dylib", "libMoltenVK.dylib"}
	}
	return []string{"libvulkan.so.1", "libvulkan.so"}
}

func loadLibrary() (uintptr, error) {
	var lastErr error
	for _, name := range libraryNames() {
		lib, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			lastErr = err
			continue
		}
		addr, err := purego.Dlsym(lib, "vkGetInstanceProcAddr")
		if err != nil {
			return 0, errors.Wrapf(err, "purego.Dlsym(%s)", name)
		}
		logrus.WithField("library", name).Debug("vulkan library loaded")
		return addr, nil
	}
	return 0, errors.Wrap(lastErr, "purego.Dlopen()")
}
