// Package auto provides shared types and coordinate handling for the
// injection and capture subpackages (input, screen).
package auto

import (
	"time"

	"github.com/go-vgo/robotgo"
)

// Point is a screen coordinate in capture (physical pixel) space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Region is a rectangle in capture space.
type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Sleep pauses for d.
func Sleep(d time.Duration) {
	time.Sleep(d)
}

// MilliSleep pauses for ms milliseconds.
func MilliSleep(ms int) {
	robotgo.MilliSleep(ms)
}
