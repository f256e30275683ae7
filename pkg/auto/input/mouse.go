// Package input provides robotgo-backed mouse, keyboard and clipboard
// injection. All coordinates are in capture (physical pixel) space and
// are normalized before being handed to robotgo.
package input

import (
	"fmt"
	"time"

	"github.com/go-vgo/robotgo"

	"github.com/deskpilot/deskpilot/pkg/auto"
)

// Buttons accepted by ClickAt.
const (
	ButtonLeft   = "left"
	ButtonRight  = "right"
	ButtonMiddle = "center"
)

// MoveTo moves the cursor to the given capture-space coordinates.
func MoveTo(x, y int) {
	inputX, inputY := auto.NormalizePointForInput(x, y)
	robotgo.Move(inputX, inputY)
}

// MoveSmooth moves the cursor with human-like easing.
func MoveSmooth(x, y int) {
	inputX, inputY := auto.NormalizePointForInput(x, y)
	robotgo.MoveSmooth(inputX, inputY)
}

// ClickAt moves to (x, y) and clicks the given button. The pause after
// the move gives the window manager time to settle hover state; the
// pause after the click is the configured injection pacing.
func ClickAt(x, y int, button string, pause time.Duration) error {
	btn, err := normalizeButton(button)
	if err != nil {
		return err
	}

	MoveTo(x, y)
	time.Sleep(50 * time.Millisecond)
	robotgo.Click(btn, false)

	if pause > 0 {
		time.Sleep(pause)
	}
	return nil
}

// DoubleClickAt moves to (x, y) and double-clicks the left button.
func DoubleClickAt(x, y int, pause time.Duration) error {
	MoveTo(x, y)
	time.Sleep(50 * time.Millisecond)
	robotgo.Click(ButtonLeft, true)

	if pause > 0 {
		time.Sleep(pause)
	}
	return nil
}

// Scroll scrolls by x horizontally and y vertically.
func Scroll(x, y int) {
	robotgo.Scroll(x, y)
}

// Position returns the cursor position in capture space.
func Position() (x, y int) {
	inputX, inputY := robotgo.Location()
	return auto.NormalizePointForScreen(inputX, inputY)
}

func normalizeButton(button string) (string, error) {
	switch button {
	case "", ButtonLeft:
		return ButtonLeft, nil
	case ButtonRight:
		return ButtonRight, nil
	case "middle", ButtonMiddle:
		return ButtonMiddle, nil
	default:
		return "", fmt.Errorf("unsupported mouse button %q", button)
	}
}
