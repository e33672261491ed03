//go:build windows

package vulkango

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"
)

func loadLibrary() (uintptr, error) {
	dll, err := windows.LoadDLL("vulkan-1.dll")
	if err != nil {
		return 0, errors.Wrap(err, "windows.LoadDLL()")
	}
	proc, err := dll.FindProc("vkGetInstanceProcAddr")
	if err != nil {
		return 0, errors.Wrap(err, "dll.FindProc()")
	}
	logrus.WithField("library", dll.Name).Debug("vulkan library loaded")
	return proc.Addr(), nil
}
