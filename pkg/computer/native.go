package computer

import (
	"context"
	"image"

	"github.com/deskpilot/deskpilot/pkg/config"
)

// Native is the coordinate-only strategy: every spatial operation is
// raw injection, with no element resolution.
type Native struct {
	cfg   *config.Config
	state State
	inj   injector
}

// NewNative creates the coordinate-only strategy.
func NewNative(cfg *config.Config) *Native {
	return &Native{cfg: cfg, state: StateDisconnected}
}

// Connect acquires the injection/capture subsystem.
func (n *Native) Connect(_ context.Context) error {
	n.state = StateConnecting
	n.inj = newInjector(n.cfg.Input)
	n.state = StateConnected
	return nil
}

// Disconnect releases the injection/capture subsystem.
func (n *Native) Disconnect(_ context.Context) error {
	n.state = StateDisconnecting
	n.inj = nil
	n.state = StateDisconnected
	return nil
}

func (n *Native) Screenshot(_ context.Context) (image.Image, error) {
	if n.inj == nil {
		return nil, ErrNotConnected
	}
	return n.inj.Capture()
}

func (n *Native) Click(_ context.Context, x, y int, button string) error {
	if n.inj == nil {
		return ErrNotConnected
	}
	return n.inj.ClickAt(x, y, button)
}

func (n *Native) DoubleClick(_ context.Context, x, y int) error {
	if n.inj == nil {
		return ErrNotConnected
	}
	return n.inj.DoubleClickAt(x, y)
}

func (n *Native) TypeText(_ context.Context, text string) error {
	if n.inj == nil {
		return ErrNotConnected
	}
	n.inj.TypeText(text)
	return nil
}

func (n *Native) PressKey(_ context.Context, key string) error {
	if n.inj == nil {
		return ErrNotConnected
	}
	n.inj.PressKey(key)
	return nil
}

func (n *Native) Hotkey(_ context.Context, keys ...string) error {
	if n.inj == nil {
		return ErrNotConnected
	}
	n.inj.Hotkey(keys...)
	return nil
}

func (n *Native) ScreenInfo() (ScreenInfo, error) {
	if n.inj == nil {
		return ScreenInfo{}, ErrNotConnected
	}
	return screenInfo(), nil
}

func (n *Native) IsConnected() bool {
	return n.state == StateConnected
}
