// Package screen provides screen capture and image encoding.
package screen

import (
	"fmt"
	"image"

	"github.com/go-vgo/robotgo"

	"github.com/deskpilot/deskpilot/pkg/auto"
)

// CaptureScreen captures the primary monitor.
func CaptureScreen() (image.Image, error) {
	img, err := robotgo.CaptureImg()
	if err != nil {
		return nil, fmt.Errorf("capture screen: %w", err)
	}
	return img, nil
}

// CaptureRegion captures a capture-space region of the screen.
func CaptureRegion(x, y, width, height int) (image.Image, error) {
	inputX, inputY, inputW, inputH := auto.NormalizeRegionForInput(x, y, width, height)
	img, err := robotgo.CaptureImg(inputX, inputY, inputW, inputH)
	if err != nil {
		return nil, fmt.Errorf("capture region: %w", err)
	}
	return img, nil
}

// Size returns the primary monitor dimensions in capture pixels,
// matching screenshot resolution.
func Size() (width, height int) {
	return auto.GetPhysicalScreenSize()
}

// DisplayCount returns the number of attached displays.
func DisplayCount() int {
	return robotgo.DisplaysNum()
}
