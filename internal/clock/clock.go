package clock

import "time"

// NowFunc returns current time. Override in tests for determinism.
var NowFunc = time.Now

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }

// SinceMs returns the elapsed wall-clock milliseconds between epoch and
// Now. All process timing (arrival, turnaround) is expressed this way,
// relative to the engine epoch.
func SinceMs(epoch time.Time) int64 {
	return Now().Sub(epoch).Milliseconds()
}
