package main

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestFrameInterval(t *testing.T) {
	c := qt.New(t)
	c.Assert(frameInterval(60), qt.Equals, time.Second/60)
	c.Assert(frameInterval(1), qt.Equals, time.Second)
	c.Assert(frameInterval(0), qt.Equals, time.Nanosecond)
	c.Assert(frameInterval(-5), qt.Equals, time.Nanosecond)
}

func TestClock(t *testing.T) {
	c := qt.New(t)
	clock := NewClock(1000)
	defer clock.Stop()

	c.Assert(clock.Fps(), qt.Equals, 1000)
	<-clock.Frames()
	clock.Tick()
	clock.Tick()
	c.Assert(clock.frames, qt.Equals, uint64(2))
	c.Assert(clock.Rate() > 0, qt.IsTrue)
}
