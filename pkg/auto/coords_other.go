//go:build !windows

package auto

import (
	"math"

	"github.com/go-vgo/robotgo"
)

// Non-Windows platforms need no coordinate translation; macOS Retina
// scaling is handled inside robotgo.

// NormalizePointForInput returns x, y unchanged.
func NormalizePointForInput(x, y int) (int, int) {
	return x, y
}

// NormalizePointForScreen returns x, y unchanged.
func NormalizePointForScreen(x, y int) (int, int) {
	return x, y
}

// NormalizeRegionForInput returns the region unchanged.
func NormalizeRegionForInput(x, y, width, height int) (int, int, int, int) {
	return x, y, width, height
}

// GetDPIScale returns 1.0.
func GetDPIScale() float64 {
	return 1.0
}

// GetPhysicalScreenSize returns the primary screen size.
func GetPhysicalScreenSize() (width, height int) {
	return robotgo.GetScreenSize()
}

// ResetCoordinateScaleCache is a no-op.
func ResetCoordinateScaleCache() {}

// ScaleInt scales an integer by factor, rounding to nearest.
func ScaleInt(value int, factor float64) int {
	if factor <= 0 {
		return value
	}
	return int(math.Round(float64(value) * factor))
}
