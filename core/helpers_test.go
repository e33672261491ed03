package core_test

import (
	qt "github.com/frankban/quicktest"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/devblok/vkbind/core"
	"github.com/devblok/vkbind/vktest"
)

func newInstance(c *qt.C, d *vktest.Driver, cfg core.InstanceConfiguration) *core.Instance {
	builder, err := core.NewLoaderBuilder(d)
	c.Assert(err, qt.IsNil)
	inst, err := core.NewInstance(builder, cfg)
	c.Assert(err, qt.IsNil)
	return inst
}

func firstAdapter(c *qt.C, inst *core.Instance) *core.Adapter {
	adapters, err := inst.Adapters()
	c.Assert(err, qt.IsNil)
	c.Assert(adapters, qt.Not(qt.HasLen), 0)
	return adapters[0]
}

// captureLog routes package logging to a hook for the duration of the test
func captureLog(c *qt.C) *test.Hook {
	l, hook := test.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)
	core.SetLogger(l)
	c.Cleanup(func() { core.SetLogger(nil) })
	return hook
}

func hasEntry(hook *test.Hook, level logrus.Level, msg string) bool {
	for _, e := range hook.AllEntries() {
		if e.Level == level && e.Message == msg {
			return true
		}
	}
	return false
}
