// Package computer provides the input surface for desktop control: a
// capability interface with a coordinate-injection strategy, a
// UI-Automation-preferred strategy with injection fallback, and a
// recording mock.
package computer

import (
	"context"
	"errors"
	"image"
	"runtime"

	"github.com/deskpilot/deskpilot/pkg/auto"
	"github.com/deskpilot/deskpilot/pkg/config"
)

// Mouse buttons accepted by Click.
const (
	ButtonLeft   = "left"
	ButtonRight  = "right"
	ButtonMiddle = "middle"
)

// ErrNotConnected implies an operation was attempted before Connect or
// after Disconnect.
var ErrNotConnected = errors.New("computer not connected")

// ScreenInfo describes the primary monitor.
type ScreenInfo struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Scale  float64 `json:"scale"`
}

// State is the lifecycle state of a Computer instance. Teardown always
// passes through StateDisconnecting.
type State string

const (
	StateDisconnected  State = "disconnected"
	StateConnecting    State = "connecting"
	StateConnected     State = "connected"
	StateDisconnecting State = "disconnecting"
)

// Computer is the capability interface for desktop control.
//
// A Computer instance serves one logical caller; concurrent calls on the
// same instance are not a supported configuration. This is a contract,
// not an internal lock.
type Computer interface {
	// Connect acquires the injection/capture subsystem and, for the
	// UI-Automation strategy, the driver process and session.
	Connect(ctx context.Context) error

	// Disconnect releases everything Connect acquired. Safe to call at
	// any point, including mid-connect; every acquired resource gets a
	// release attempt on every exit path.
	Disconnect(ctx context.Context) error

	// Screenshot captures the primary monitor.
	Screenshot(ctx context.Context) (image.Image, error)

	// Click clicks at capture-space coordinates with the given button
	// (ButtonLeft, ButtonRight, ButtonMiddle; "" means left).
	Click(ctx context.Context, x, y int, button string) error

	// DoubleClick double-clicks at capture-space coordinates.
	DoubleClick(ctx context.Context, x, y int) error

	// TypeText types into the focused element.
	TypeText(ctx context.Context, text string) error

	// PressKey presses a single key, e.g. "enter", "escape".
	PressKey(ctx context.Context, key string) error

	// Hotkey presses a key combination, e.g. Hotkey(ctx, "ctrl", "c").
	Hotkey(ctx context.Context, keys ...string) error

	// ScreenInfo returns the primary monitor dimensions.
	ScreenInfo() (ScreenInfo, error)

	// IsConnected reports whether Connect succeeded and Disconnect has
	// not run.
	IsConnected() bool
}

// Option configures the New factory.
type Option func(*options)

type options struct {
	mock bool
}

// WithMock makes New return a recording Mock regardless of platform.
func WithMock() Option {
	return func(o *options) { o.mock = true }
}

// New selects the strategy at construction time: a Mock when requested,
// the UI-Automation-preferred strategy on Windows when the driver is
// enabled, and the coordinate-only strategy otherwise.
func New(cfg *config.Config, opts ...Option) Computer {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if o.mock {
		return NewMock(cfg)
	}
	if runtime.GOOS == "windows" && cfg.Driver.Enabled {
		return NewUIAutomation(cfg)
	}
	return NewNative(cfg)
}

func screenInfo() ScreenInfo {
	w, h := auto.GetPhysicalScreenSize()
	return ScreenInfo{Width: w, Height: h, Scale: auto.GetDPIScale()}
}
