package computer

import (
	"context"
	"image"
	"image/color"

	"github.com/deskpilot/deskpilot/pkg/config"
)

// RecordedAction is one call captured by the Mock.
type RecordedAction struct {
	Action string
	X, Y   int
	Button string
	Text   string
	Key    string
	Keys   []string
}

// Mock records every call without touching the OS. Used in tests and by
// the CLI's dry-run mode.
type Mock struct {
	cfg       *config.Config
	connected bool

	// Actions is the call log, in order.
	Actions []RecordedAction
}

// NewMock creates a recording mock.
func NewMock(cfg *config.Config) *Mock {
	return &Mock{cfg: cfg}
}

func (m *Mock) Connect(_ context.Context) error {
	m.connected = true
	m.Actions = append(m.Actions, RecordedAction{Action: "connect"})
	return nil
}

func (m *Mock) Disconnect(_ context.Context) error {
	m.connected = false
	m.Actions = append(m.Actions, RecordedAction{Action: "disconnect"})
	return nil
}

func (m *Mock) Screenshot(_ context.Context) (image.Image, error) {
	m.Actions = append(m.Actions, RecordedAction{Action: "screenshot"})
	img := image.NewRGBA(image.Rect(0, 0, 1920, 1080))
	gray := color.RGBA{R: 50, G: 50, B: 50, A: 255}
	for y := 0; y < 1080; y++ {
		for x := 0; x < 1920; x++ {
			img.Set(x, y, gray)
		}
	}
	return img, nil
}

func (m *Mock) Click(_ context.Context, x, y int, button string) error {
	if button == "" {
		button = ButtonLeft
	}
	m.Actions = append(m.Actions, RecordedAction{Action: "click", X: x, Y: y, Button: button})
	return nil
}

func (m *Mock) DoubleClick(_ context.Context, x, y int) error {
	m.Actions = append(m.Actions, RecordedAction{Action: "double_click", X: x, Y: y})
	return nil
}

func (m *Mock) TypeText(_ context.Context, text string) error {
	m.Actions = append(m.Actions, RecordedAction{Action: "type_text", Text: text})
	return nil
}

func (m *Mock) PressKey(_ context.Context, key string) error {
	m.Actions = append(m.Actions, RecordedAction{Action: "press_key", Key: key})
	return nil
}

func (m *Mock) Hotkey(_ context.Context, keys ...string) error {
	m.Actions = append(m.Actions, RecordedAction{Action: "hotkey", Keys: keys})
	return nil
}

func (m *Mock) ScreenInfo() (ScreenInfo, error) {
	return ScreenInfo{Width: 1920, Height: 1080, Scale: 1.0}, nil
}

func (m *Mock) IsConnected() bool {
	return m.connected
}
