package computer

import (
	"context"
	"image"

	"github.com/charmbracelet/log"

	"github.com/deskpilot/deskpilot/internal/logger"
	"github.com/deskpilot/deskpilot/pkg/config"
	"github.com/deskpilot/deskpilot/pkg/driver"
)

// Seams over pkg/driver so the fallback routing can be tested against
// fakes. The production adapters are at the bottom of this file.

type elementHandle interface {
	Click(ctx context.Context) error
	DoubleClick(ctx context.Context) error
}

type sessionClient interface {
	CreateSession(ctx context.Context) error
	// ElementFromPoint is tri-state: (handle, nil) found, (nil, nil)
	// not found, (nil, err) transport failure.
	ElementFromPoint(ctx context.Context, x, y int) (elementHandle, error)
	CloseSession(ctx context.Context) error
}

type processSupervisor interface {
	Start(ctx context.Context) error
	Stop() error
}

// UIAutomation is the UI-Automation-preferred strategy: left clicks are
// routed through structured element resolution when a driver session is
// up, with coordinate injection as the fallback. Keyboard, screenshot
// and screen-info operations always use the injection/capture subsystem;
// the structured layer has no text or key primitives.
type UIAutomation struct {
	cfg   *config.Config
	state State
	inj   injector

	supervisor   processSupervisor
	session      sessionClient
	driverActive bool

	log *log.Logger
}

// NewUIAutomation creates the UI-Automation-preferred strategy.
func NewUIAutomation(cfg *config.Config) *UIAutomation {
	return &UIAutomation{
		cfg:        cfg,
		state:      StateDisconnected,
		supervisor: driver.NewSupervisor(cfg.Driver),
		session:    &driverSession{client: driver.NewClient(cfg.Driver.Port, cfg.Driver.Timeout.Std())},
		log:        logger.Component("computer"),
	}
}

// Connect acquires injection/capture, then brings up the driver. Any
// driver failure (executable missing, spawn error, session rejected) is
// logged and leaves the surface connected with the driver disabled for
// this run; element resolution is skipped until the next Connect.
func (u *UIAutomation) Connect(ctx context.Context) error {
	u.state = StateConnecting
	u.inj = newInjector(u.cfg.Input)
	u.driverActive = false

	if u.cfg.Driver.Enabled {
		if u.cfg.Driver.AutoStart {
			if err := u.supervisor.Start(ctx); err != nil {
				// Soft failure: an externally started driver may still
				// answer, so session creation is attempted regardless.
				u.log.Warn("driver auto-start failed", "err", err)
			}
		}
		if err := u.session.CreateSession(ctx); err != nil {
			u.log.Warn("driver unavailable, using coordinate injection only", "err", err)
		} else {
			u.driverActive = true
			u.log.Info("driver connected", "port", u.cfg.Driver.Port)
		}
	}

	u.state = StateConnected
	return nil
}

// Disconnect tears down in fixed order: protocol session first, then
// the driver process, then the injection/capture subsystem. Every step
// runs even if an earlier one fails, and nothing here assumes Connect
// got all the way through.
func (u *UIAutomation) Disconnect(ctx context.Context) error {
	u.state = StateDisconnecting

	if u.session != nil {
		if err := u.session.CloseSession(ctx); err != nil {
			u.log.Warn("session close failed", "err", err)
		}
	}
	u.driverActive = false

	if u.supervisor != nil {
		if err := u.supervisor.Stop(); err != nil {
			u.log.Warn("driver stop failed", "err", err)
		}
	}

	u.inj = nil
	u.state = StateDisconnected
	return nil
}

// Click routes a left click through element resolution when the driver
// is active:
//
//  1. non-left buttons go straight to injection, since the element model
//     does not standardize structured right/middle click semantics;
//  2. with no active session, injection;
//  3. otherwise resolve the element at the point: found, click it
//     through the driver; not found, inject (the expected, silent path);
//     lookup error, inject only when fallback-on-failure is configured,
//     else propagate without injecting.
//
// Resolution always completes before any injection; the two paths never
// run concurrently for one call.
func (u *UIAutomation) Click(ctx context.Context, x, y int, button string) error {
	if u.inj == nil {
		return ErrNotConnected
	}

	if (button == "" || button == ButtonLeft) && u.driverActive {
		elem, err := u.session.ElementFromPoint(ctx, x, y)
		switch {
		case err != nil:
			if !u.cfg.Driver.FallbackOnFailure {
				return err
			}
			u.log.Debug("element lookup failed, falling back", "x", x, "y", y, "err", err)
		case elem != nil:
			if err := elem.Click(ctx); err != nil {
				if !u.cfg.Driver.FallbackOnFailure {
					return err
				}
				u.log.Debug("element click failed, falling back", "x", x, "y", y, "err", err)
			} else {
				u.log.Debug("driver click", "x", x, "y", y)
				return nil
			}
		}
	}

	return u.inj.ClickAt(x, y, button)
}

// DoubleClick follows the same resolve-then-fallback policy as Click.
func (u *UIAutomation) DoubleClick(ctx context.Context, x, y int) error {
	if u.inj == nil {
		return ErrNotConnected
	}

	if u.driverActive {
		elem, err := u.session.ElementFromPoint(ctx, x, y)
		switch {
		case err != nil:
			if !u.cfg.Driver.FallbackOnFailure {
				return err
			}
			u.log.Debug("element lookup failed, falling back", "x", x, "y", y, "err", err)
		case elem != nil:
			if err := elem.DoubleClick(ctx); err != nil {
				if !u.cfg.Driver.FallbackOnFailure {
					return err
				}
				u.log.Debug("element double-click failed, falling back", "x", x, "y", y, "err", err)
			} else {
				return nil
			}
		}
	}

	return u.inj.DoubleClickAt(x, y)
}

func (u *UIAutomation) Screenshot(_ context.Context) (image.Image, error) {
	if u.inj == nil {
		return nil, ErrNotConnected
	}
	return u.inj.Capture()
}

func (u *UIAutomation) TypeText(_ context.Context, text string) error {
	if u.inj == nil {
		return ErrNotConnected
	}
	u.inj.TypeText(text)
	return nil
}

func (u *UIAutomation) PressKey(_ context.Context, key string) error {
	if u.inj == nil {
		return ErrNotConnected
	}
	u.inj.PressKey(key)
	return nil
}

func (u *UIAutomation) Hotkey(_ context.Context, keys ...string) error {
	if u.inj == nil {
		return ErrNotConnected
	}
	u.inj.Hotkey(keys...)
	return nil
}

func (u *UIAutomation) ScreenInfo() (ScreenInfo, error) {
	if u.inj == nil {
		return ScreenInfo{}, ErrNotConnected
	}
	return screenInfo(), nil
}

func (u *UIAutomation) IsConnected() bool {
	return u.state == StateConnected
}

// DriverActive reports whether the structured layer is available, as
// opposed to running on coordinate injection alone. The surface is
// usable either way.
func (u *UIAutomation) DriverActive() bool {
	return u.driverActive
}

// driverSession adapts *driver.Client to the sessionClient seam.
type driverSession struct {
	client *driver.Client
}

func (s *driverSession) CreateSession(ctx context.Context) error {
	return s.client.CreateSession(ctx)
}

func (s *driverSession) ElementFromPoint(ctx context.Context, x, y int) (elementHandle, error) {
	elem, err := s.client.ElementFromPoint(ctx, x, y)
	if err != nil {
		return nil, err
	}
	if elem == nil {
		return nil, nil
	}
	return elem, nil
}

func (s *driverSession) CloseSession(ctx context.Context) error {
	return s.client.CloseSession(ctx)
}
