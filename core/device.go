package core

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/devblok/vkbind/native"
)

// QueueRequest asks for len(Priorities) queues from one family
type QueueRequest struct {
	FamilyIndex uint32
	Priorities  []float32
}

// DeviceConfiguration describes a logical device
type DeviceConfiguration struct {
	Queues       []QueueRequest
	Features     Features
	Capabilities []Capability
}

// Device is a logical device. The caller owns it and must destroy it
// before the instance it was created from.
type Device struct {
	handle    native.Device
	adapter   *Adapter
	instance  *Instance
	loader    *DeviceLoader
	queues    map[uint32]uint32
	destroyed bool
}

// NewDevice creates a logical device on adapter and loads its entry points
func (i *Instance) NewDevice(adapter *Adapter, cfg DeviceConfiguration) (*Device, error) {
	const op = "core.Instance.NewDevice"
	if err := i.alive(op); err != nil {
		return nil, err
	}
	if adapter == nil || adapter.instance != i {
		return nil, misuseError(op, "adapter does not belong to this instance")
	}

	set, err := resolveCapabilities(op, cfg.Capabilities, Capability.DeviceScoped, i.loader.bundles.enabled)
	if err != nil {
		return nil, err
	}

	families, err := adapter.QueueFamilyProperties()
	if err != nil {
		return nil, err
	}
	queues, requested, err := queueCreateInfos(op, cfg.Queues, families)
	if err != nil {
		return nil, err
	}

	extensions, err := safeStrings(op, "extension name", extensionNames(set, false))
	if err != nil {
		return nil, err
	}
	features := cfg.Features.native()
	info := native.DeviceCreateInfo{
		QueueCreateInfos:      queues,
		EnabledExtensionNames: extensions,
		EnabledFeatures:       &features,
	}

	createDevice, err := instanceCommand[native.CreateDeviceFunc](i.loader, op, cmdCreateDevice)
	if err != nil {
		return nil, err
	}
	var handle native.Device
	if err := check(op, createDevice(adapter.handle, &info, &handle)); err != nil {
		return nil, err
	}

	builder := i.loader.NewDeviceLoaderBuilder()
	if err := builder.Populate(handle, set); err != nil {
		if destroy, ok := i.loader.driver.GetDeviceProcAddr(handle, cmdDestroyDevice).(native.DestroyDeviceFunc); ok {
			destroy(handle)
		}
		return nil, err
	}
	loader, err := builder.Freeze()
	if err != nil {
		return nil, err
	}

	i.devices++
	logger.WithFields(logrus.Fields{
		"op":           op,
		"queues":       len(queues),
		"features":     cfg.Features.Names(),
		"capabilities": set.Names(),
	}).Info("logical device created")

	return &Device{
		handle:   handle,
		adapter:  adapter,
		instance: i,
		loader:   loader,
		queues:   requested,
	}, nil
}

// queueCreateInfos validates queue requests against the adapter's families
func queueCreateInfos(op string, requests []QueueRequest, families []QueueFamily) ([]native.DeviceQueueCreateInfo, map[uint32]uint32, error) {
	if len(requests) == 0 {
		return nil, nil, generalError(op, "at least one queue must be requested")
	}
	infos := make([]native.DeviceQueueCreateInfo, 0, len(requests))
	requested := make(map[uint32]uint32, len(requests))
	for _, q := range requests {
		if int(q.FamilyIndex) >= len(families) {
			return nil, nil, generalError(op, "queue family %d does not exist, adapter has %d", q.FamilyIndex, len(families))
		}
		if _, dup := requested[q.FamilyIndex]; dup {
			return nil, nil, generalError(op, "queue family %d requested twice", q.FamilyIndex)
		}
		if len(q.Priorities) == 0 {
			return nil, nil, generalError(op, "queue family %d requested without priorities", q.FamilyIndex)
		}
		if available := families[q.FamilyIndex].QueueCount; uint32(len(q.Priorities)) > available {
			return nil, nil, generalError(op, "queue family %d has %d queues, %d requested", q.FamilyIndex, available, len(q.Priorities))
		}
		for _, p := range q.Priorities {
			if math.IsNaN(float64(p)) || p < 0 || p > 1 {
				return nil, nil, generalError(op, "queue priority %v is outside [0, 1]", p)
			}
		}
		infos = append(infos, native.DeviceQueueCreateInfo{
			QueueFamilyIndex: q.FamilyIndex,
			QueuePriorities:  append([]float32(nil), q.Priorities...),
		})
		requested[q.FamilyIndex] = uint32(len(q.Priorities))
	}
	return infos, requested, nil
}

// Handle returns the native handle
func (d *Device) Handle() native.Device {
	return d.handle
}

// Adapter returns the adapter the device was created on
func (d *Device) Adapter() *Adapter {
	return d.adapter
}

// Loader returns the device-scope loader
func (d *Device) Loader() *DeviceLoader {
	return d.loader
}

// Queue is a queue borrowed from its device
type Queue struct {
	handle native.Queue
	family uint32
	index  uint32
}

// Handle returns the native handle
func (q Queue) Handle() native.Queue { return q.handle }

// FamilyIndex returns the queue family the queue belongs to
func (q Queue) FamilyIndex() uint32 { return q.family }

// Index returns the queue's index within its family
func (q Queue) Index() uint32 { return q.index }

// Queue fetches one of the queues requested at creation
func (d *Device) Queue(family, index uint32) (Queue, error) {
	const op = "core.Device.Queue"
	if d.destroyed {
		return Queue{}, misuseError(op, "device is destroyed")
	}
	d.warnOrphaned(op)
	count, ok := d.queues[family]
	if !ok {
		return Queue{}, misuseError(op, "queue family %d was not requested", family)
	}
	if index >= count {
		return Queue{}, misuseError(op, "queue %d of family %d was not requested, %d were", index, family, count)
	}
	getQueue, err := deviceCommand[native.GetDeviceQueueFunc](d.loader, op, cmdGetDeviceQueue)
	if err != nil {
		return Queue{}, err
	}
	var handle native.Queue
	getQueue(d.handle, family, index, &handle)
	return Queue{handle: handle, family: family, index: index}, nil
}

// WaitIdle blocks until the device has no work in flight
func (d *Device) WaitIdle() error {
	const op = "core.Device.WaitIdle"
	if d.destroyed {
		return misuseError(op, "device is destroyed")
	}
	d.warnOrphaned(op)
	waitIdle, err := deviceCommand[native.DeviceWaitIdleFunc](d.loader, op, cmdDeviceWaitIdle)
	if err != nil {
		return err
	}
	return check(op, waitIdle(d.handle))
}

// Destroy destroys the device. Objects created from it must already be
// gone. Calling Destroy again is a no-op.
func (d *Device) Destroy() {
	const op = "core.Device.Destroy"
	if d.destroyed {
		return
	}
	d.warnOrphaned(op)
	destroyDevice, err := deviceCommand[native.DestroyDeviceFunc](d.loader, op, cmdDestroyDevice)
	if err != nil {
		logger.WithError(err).Error("cannot destroy logical device")
		return
	}
	destroyDevice(d.handle)
	d.destroyed = true
	d.instance.devices--
	logger.WithField("op", op).Info("logical device destroyed")
}

// warnOrphaned flags native calls on a device whose instance is gone
func (d *Device) warnOrphaned(op string) {
	if d.instance.destroyed {
		logger.WithField("op", op).Warn("logical device used after its instance was destroyed")
	}
}
