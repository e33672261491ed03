package core

import (
	"github.com/sirupsen/logrus"

	"github.com/devblok/vkbind/native"
)

// DefaultDebugReportFlags selects errors and warnings
const DefaultDebugReportFlags = native.DebugReportErrorBit | native.DebugReportWarningBit

// DebugReport is one message delivered by the driver
type DebugReport struct {
	Flags       native.DebugReportFlags
	ObjectType  native.DebugReportObjectType
	Object      uint64
	Location    uintptr
	MessageCode int32
	LayerPrefix string
	Message     string
}

// IsError reports whether the message has error severity
func (r DebugReport) IsError() bool {
	return r.Flags&native.DebugReportErrorBit != 0
}

// DebugHandler receives debug reports. It runs on whatever thread the driver
// reports from and must not call back into the instance's loader.
type DebugHandler func(DebugReport)

// LogDebugReport is the default handler. It writes the report to the
// standard logrus logger at a level matching its severity.
func LogDebugReport(r DebugReport) {
	entry := logrus.WithFields(logrus.Fields{
		"layer":  r.LayerPrefix,
		"code":   r.MessageCode,
		"object": r.Object,
	})
	switch {
	case r.Flags&native.DebugReportErrorBit != 0:
		entry.Error(r.Message)
	case r.Flags&(native.DebugReportWarningBit|native.DebugReportPerformanceWarningBit) != 0:
		entry.Warn(r.Message)
	case r.Flags&native.DebugReportDebugBit != 0:
		entry.Debug(r.Message)
	default:
		entry.Info(r.Message)
	}
}

// trampoline wraps a handler for the native side. A panicking handler is
// recovered and logged. The driver is asked to abort the triggering call
// only for error reports.
func trampoline(handler DebugHandler) native.DebugReportCallbackFunc {
	return func(flags native.DebugReportFlags, objectType native.DebugReportObjectType, object uint64, location uintptr, messageCode int32, layerPrefix, message string) (abort native.Bool32) {
		abort = native.Bool(flags&native.DebugReportErrorBit != 0)
		defer func() {
			if r := recover(); r != nil {
				logger.WithFields(logrus.Fields{
					"panic":   r,
					"layer":   layerPrefix,
					"message": message,
				}).Error("debug report handler panicked")
			}
		}()
		handler(DebugReport{
			Flags:       flags,
			ObjectType:  objectType,
			Object:      object,
			Location:    location,
			MessageCode: messageCode,
			LayerPrefix: layerPrefix,
			Message:     message,
		})
		return abort
	}
}

// DebugCallback is a registered debug report callback owned by its instance
type DebugCallback struct {
	handle    native.DebugReportCallback
	instance  *Instance
	loader    *Loader
	destroyed bool
}

// NewDebugCallback registers handler for reports matching flags. Zero flags
// select DefaultDebugReportFlags and a nil handler selects LogDebugReport.
// Requires ext_debug_report.
func (i *Instance) NewDebugCallback(flags native.DebugReportFlags, handler DebugHandler) (*DebugCallback, error) {
	const op = "core.Instance.NewDebugCallback"
	if err := i.alive(op); err != nil {
		return nil, err
	}
	createCallback, err := extensionCommand[native.CreateDebugReportCallbackFunc](&i.loader.bundles, op, EXTDebugReport, cmdCreateDebugReportCallback)
	if err != nil {
		return nil, err
	}
	if flags == 0 {
		flags = DefaultDebugReportFlags
	}
	if handler == nil {
		handler = LogDebugReport
	}

	info := native.DebugReportCallbackCreateInfo{Flags: flags, Callback: trampoline(handler)}
	var handle native.DebugReportCallback
	if err := check(op, createCallback(i.handle, &info, &handle)); err != nil {
		return nil, err
	}

	cb := &DebugCallback{handle: handle, instance: i, loader: i.loader}
	i.adopt(cb)
	logger.WithFields(logrus.Fields{"op": op, "flags": uint32(flags)}).Debug("debug callback registered")
	return cb, nil
}

// Handle returns the native handle
func (c *DebugCallback) Handle() native.DebugReportCallback {
	return c.handle
}

// Destroy unregisters the callback. The owning instance calls it on
// teardown if the caller has not. Calling Destroy again is a no-op.
func (c *DebugCallback) Destroy() {
	const op = "core.DebugCallback.Destroy"
	if c.destroyed {
		return
	}
	destroyCallback, err := extensionCommand[native.DestroyDebugReportCallbackFunc](&c.loader.bundles, op, EXTDebugReport, cmdDestroyDebugReportCallback)
	if err != nil {
		logger.WithError(err).Error("cannot destroy debug callback")
		return
	}
	destroyCallback(c.loader.instance, c.handle)
	c.destroyed = true
	c.instance.release(c)
}

// ReportDebugMessage injects a message into the debug report stream.
// Requires ext_debug_report.
func (i *Instance) ReportDebugMessage(r DebugReport) error {
	const op = "core.Instance.ReportDebugMessage"
	if err := i.alive(op); err != nil {
		return err
	}
	reportMessage, err := extensionCommand[native.DebugReportMessageFunc](&i.loader.bundles, op, EXTDebugReport, cmdDebugReportMessage)
	if err != nil {
		return err
	}
	prefix, err := safeString(op, "layer prefix", r.LayerPrefix)
	if err != nil {
		return err
	}
	message, err := safeString(op, "message", r.Message)
	if err != nil {
		return err
	}
	reportMessage(i.handle, r.Flags, r.ObjectType, r.Object, r.Location, r.MessageCode, prefix, message)
	return nil
}
