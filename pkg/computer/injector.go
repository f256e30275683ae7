package computer

import (
	"image"
	"time"

	"github.com/deskpilot/deskpilot/pkg/auto/input"
	"github.com/deskpilot/deskpilot/pkg/auto/screen"
	"github.com/deskpilot/deskpilot/pkg/config"
)

// injector is the seam between the strategies and the injection/capture
// subsystem, narrow enough for tests to substitute.
type injector interface {
	ClickAt(x, y int, button string) error
	DoubleClickAt(x, y int) error
	TypeText(text string)
	PressKey(key string)
	Hotkey(keys ...string)
	Capture() (image.Image, error)
	ScreenSize() (width, height int)
}

// robotgoInjector routes through pkg/auto with configured pacing.
type robotgoInjector struct {
	clickPause     time.Duration
	typingInterval time.Duration
}

func newInjector(cfg config.Input) *robotgoInjector {
	return &robotgoInjector{
		clickPause:     cfg.ClickPause.Std(),
		typingInterval: cfg.TypingInterval.Std(),
	}
}

func (r *robotgoInjector) ClickAt(x, y int, button string) error {
	if button == ButtonMiddle {
		button = input.ButtonMiddle
	}
	return input.ClickAt(x, y, button, r.clickPause)
}

func (r *robotgoInjector) DoubleClickAt(x, y int) error {
	return input.DoubleClickAt(x, y, r.clickPause)
}

func (r *robotgoInjector) TypeText(text string) {
	input.TypeText(text, r.typingInterval)
}

func (r *robotgoInjector) PressKey(key string) {
	input.KeyTap(key)
}

func (r *robotgoInjector) Hotkey(keys ...string) {
	input.HotKey(keys...)
}

func (r *robotgoInjector) Capture() (image.Image, error) {
	return screen.CaptureScreen()
}

func (r *robotgoInjector) ScreenSize() (width, height int) {
	return screen.Size()
}
