package main

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/devblok/vkbind/core"
	"github.com/devblok/vkbind/device"
	"github.com/devblok/vkbind/native"
)

// surfaceFactory creates a presentation surface for a live instance
type surfaceFactory func(instance native.Instance) (native.Surface, error)

// session is everything the demo creates, in creation order
type session struct {
	instance *core.Instance
	callback *core.DebugCallback
	surface  *core.Surface
	device   *core.Device
	queues   []core.Queue
}

func openSession(builder *core.LoaderBuilder, cfg core.InstanceConfiguration, createSurface surfaceFactory) (*session, error) {
	inst, err := core.NewInstance(builder, cfg)
	if err != nil {
		return nil, err
	}
	s := &session{instance: inst}
	if err := s.init(cfg.DebugMode, createSurface); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *session) init(debug bool, createSurface surfaceFactory) error {
	if debug {
		callback, err := s.instance.NewDebugCallback(core.DefaultDebugReportFlags, core.LogDebugReport)
		if err != nil {
			return err
		}
		s.callback = callback
	}

	raw, err := createSurface(s.instance.Handle())
	if err != nil {
		return fmt.Errorf("creating window surface: %w", err)
	}
	if s.surface, err = s.instance.AdoptSurface(raw); err != nil {
		return err
	}

	adapters, err := s.instance.Adapters()
	if err != nil {
		return err
	}
	choice, err := device.Select(adapters, device.Requirements{
		Extensions: core.KHRSwapchain.Extensions(),
		Surface:    s.surface,
	})
	if err != nil {
		return err
	}

	requests := choice.QueueRequests()
	if s.device, err = s.instance.NewDevice(choice.Adapter, core.DeviceConfiguration{
		Queues:       requests,
		Capabilities: []core.Capability{core.KHRSwapchain},
	}); err != nil {
		return err
	}
	for _, r := range requests {
		q, err := s.device.Queue(r.FamilyIndex, 0)
		if err != nil {
			return err
		}
		s.queues = append(s.queues, q)
	}

	logrus.WithFields(logrus.Fields{
		"adapter": choice.Info.Name,
		"type":    choice.Info.Type,
		"queues":  len(s.queues),
	}).Info("session ready")
	return nil
}

// frame waits for the device to drain the previous frame's work
func (s *session) frame() error {
	return s.device.WaitIdle()
}

// Close destroys the device, then the instance along with the surface and
// debug callback it owns
func (s *session) Close() error {
	if s.device != nil {
		s.device.Destroy()
	}
	return s.instance.Destroy()
}
