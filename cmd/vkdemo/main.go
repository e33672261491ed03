package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/devblok/vkbind/core"
	"github.com/devblok/vkbind/driver/vulkango"
	"github.com/devblok/vkbind/native"
)

func init() {
	runtime.LockOSThread()
}

var (
	envFile = flag.String("env", "", "load environment variables from this file first")
	fps     = flag.Int("fps", 60, "frames per second, 0 for unpaced")
	width   = flag.Int("width", 800, "window width")
	height  = flag.Int("height", 600, "window height")
	verbose = flag.Bool("v", false, "log loader and lifecycle messages")
)

var defaultConfiguration = core.InstanceConfiguration{
	AppName:       "vkdemo",
	AppVersion:    core.Version{Major: 1},
	EngineName:    "https://github.com/devblok/vkbind",
	EngineVersion: core.Version{Major: 1},
}

func main() {
	flag.Parse()
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
		core.SetLogger(logrus.StandardLogger())
	}

	if err := run(); err != nil {
		logrus.WithError(err).Error("vkdemo failed")
		os.Exit(1)
	}
}

func newWindow() (*sdl.Window, error) {
	return sdl.CreateWindow("vkbind",
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(*width),
		int32(*height),
		sdl.WINDOW_VULKAN)
}

func configuration(window *sdl.Window) (core.InstanceConfiguration, error) {
	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			return core.InstanceConfiguration{}, fmt.Errorf("loading %s: %w", *envFile, err)
		}
		envy.Reload()
	}
	cfg, err := core.LoadInstanceConfiguration(defaultConfiguration)
	if err != nil {
		return cfg, err
	}
	windowCaps, err := core.CapabilitiesForExtensions(window.VulkanGetInstanceExtensions())
	if err != nil {
		return cfg, err
	}
	cfg.Capabilities = append(cfg.Capabilities, windowCaps...)
	return cfg, nil
}

// sdlSurface lets the window create its own surface on the instance
func sdlSurface(window *sdl.Window) surfaceFactory {
	return func(instance native.Instance) (native.Surface, error) {
		srf, err := window.VulkanCreateSurface(vulkango.VulkanInstance(instance))
		if err != nil {
			return 0, err
		}
		return native.Surface(*(*uint64)(srf)), nil
	}
}

func run() error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return err
	}
	defer sdl.Quit()

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		return err
	}
	defer sdl.VulkanUnloadLibrary()

	window, err := newWindow()
	if err != nil {
		return err
	}
	defer window.Destroy()

	cfg, err := configuration(window)
	if err != nil {
		return err
	}
	driver, err := vulkango.NewFromProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
	if err != nil {
		return err
	}
	builder, err := core.NewLoaderBuilder(driver)
	if err != nil {
		return err
	}

	s, err := openSession(builder, cfg, sdlSurface(window))
	if err != nil {
		return err
	}
	loopErr := eventLoop(s, NewClock(*fps))
	if err := s.Close(); err != nil {
		return err
	}
	return loopErr
}

func eventLoop(s *session, clock *Clock) error {
	defer clock.Stop()
	defer func() {
		logrus.WithField("fps", fmt.Sprintf("%.1f", clock.Rate())).Info("event loop exited")
	}()

	for range clock.Frames() {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch et := event.(type) {
			case *sdl.KeyboardEvent:
				if et.Keysym.Sym == sdl.K_ESCAPE {
					return nil
				}
			case *sdl.QuitEvent:
				return nil
			}
		}
		if err := s.frame(); err != nil {
			return err
		}
		clock.Tick()
	}
	return nil
}
