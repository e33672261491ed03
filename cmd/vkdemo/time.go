package main

import "time"

// frameInterval is the ticker period for fps frames per second; zero runs
// unpaced
func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		return time.Nanosecond
	}
	return time.Second / time.Duration(fps)
}

// Clock paces the event loop
type Clock struct {
	fps         int
	frameTicker *time.Ticker
	frames      uint64
	started     time.Time
}

// NewClock starts a clock ticking fps times a second
func NewClock(fps int) *Clock {
	return &Clock{
		fps:         fps,
		frameTicker: time.NewTicker(frameInterval(fps)),
		started:     time.Now(),
	}
}

// Fps gets the set frames per second
func (c *Clock) Fps() int {
	return c.fps
}

// Frames gets the ticker channel
func (c *Clock) Frames() <-chan time.Time {
	return c.frameTicker.C
}

// Tick counts a frame
func (c *Clock) Tick() {
	c.frames++
}

// Rate is the mean frame rate since the clock started
func (c *Clock) Rate() float64 {
	elapsed := time.Since(c.started).Seconds()
	if elapsed == 0 {
		return 0
	}
	return float64(c.frames) / elapsed
}

// Stop releases the ticker
func (c *Clock) Stop() {
	c.frameTicker.Stop()
}
