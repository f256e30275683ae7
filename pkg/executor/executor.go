// Package executor turns opaque action values into calls on a
// computer.Computer, reporting each outcome as a structured Result.
package executor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/deskpilot/deskpilot/internal/logger"
	"github.com/deskpilot/deskpilot/pkg/auto/screen"
	"github.com/deskpilot/deskpilot/pkg/computer"
	"github.com/deskpilot/deskpilot/pkg/config"
)

// Action types.
const (
	ActionClick       = "click"
	ActionDoubleClick = "double_click"
	ActionTypeText    = "type_text"
	ActionKeyPress    = "key_press"
	ActionHotkey      = "hotkey"
	ActionScreenshot  = "screenshot"
	ActionLaunch      = "launch"
	ActionWait        = "wait"
)

// Action is one step handed to the executor by an action producer
// (CLI, script, or agent).
type Action struct {
	Type    string   `json:"type"`
	X       *int     `json:"x,omitempty"`
	Y       *int     `json:"y,omitempty"`
	Button  string   `json:"button,omitempty"`
	Text    string   `json:"text,omitempty"`
	Key     string   `json:"key,omitempty"`
	Keys    []string `json:"keys,omitempty"`
	App     string   `json:"app,omitempty"`
	Seconds float64  `json:"seconds,omitempty"`
	Save    bool     `json:"save,omitempty"`

	// ContinueOnError lets a script proceed past this action's failure.
	ContinueOnError bool `json:"continue_on_error,omitempty"`
}

// Result reports one action's outcome. Failure is always expressed here
// as Success=false plus Error, never as a silent no-op.
type Result struct {
	Success        bool                   `json:"success"`
	Action         string                 `json:"action"`
	Details        map[string]interface{} `json:"details,omitempty"`
	Error          string                 `json:"error,omitempty"`
	ScreenshotPath string                 `json:"screenshot_path,omitempty"`
	DurationMs     int64                  `json:"duration_ms"`
}

// Executor drives a Computer.
type Executor struct {
	computer       computer.Computer
	screenshotsDir string
	log            *log.Logger
}

// New creates an executor over an already connected Computer.
func New(c computer.Computer, cfg *config.Config) *Executor {
	return &Executor{
		computer:       c,
		screenshotsDir: cfg.Logging.ScreenshotsDir,
		log:            logger.Component("executor"),
	}
}

// Execute runs one action.
func (e *Executor) Execute(ctx context.Context, a Action) Result {
	start := time.Now()
	result := e.dispatch(ctx, a)
	result.DurationMs = time.Since(start).Milliseconds()

	if result.Success {
		e.log.Info("action ok", "action", result.Action, "ms", result.DurationMs)
	} else {
		e.log.Error("action failed", "action", result.Action, "err", result.Error)
	}
	return result
}

func (e *Executor) dispatch(ctx context.Context, a Action) Result {
	switch a.Type {
	case ActionClick:
		return e.click(ctx, a)
	case ActionDoubleClick:
		return e.doubleClick(ctx, a)
	case ActionTypeText:
		return e.typeText(ctx, a)
	case ActionKeyPress:
		return e.keyPress(ctx, a)
	case ActionHotkey:
		return e.hotkey(ctx, a)
	case ActionScreenshot:
		return e.screenshot(ctx, a)
	case ActionLaunch:
		return e.launch(ctx, a)
	case ActionWait:
		return e.wait(ctx, a)
	default:
		return failure(a.Type, fmt.Errorf("unknown action type %q", a.Type))
	}
}

func (e *Executor) click(ctx context.Context, a Action) Result {
	if a.X == nil || a.Y == nil {
		return failure(ActionClick, fmt.Errorf("click requires x and y"))
	}
	button := a.Button
	if button == "" {
		button = computer.ButtonLeft
	}
	if err := e.computer.Click(ctx, *a.X, *a.Y, button); err != nil {
		return failure(ActionClick, err)
	}
	return success(ActionClick, map[string]interface{}{"x": *a.X, "y": *a.Y, "button": button})
}

func (e *Executor) doubleClick(ctx context.Context, a Action) Result {
	if a.X == nil || a.Y == nil {
		return failure(ActionDoubleClick, fmt.Errorf("double_click requires x and y"))
	}
	if err := e.computer.DoubleClick(ctx, *a.X, *a.Y); err != nil {
		return failure(ActionDoubleClick, err)
	}
	return success(ActionDoubleClick, map[string]interface{}{"x": *a.X, "y": *a.Y})
}

func (e *Executor) typeText(ctx context.Context, a Action) Result {
	if err := e.computer.TypeText(ctx, a.Text); err != nil {
		return failure(ActionTypeText, err)
	}
	return success(ActionTypeText, map[string]interface{}{"length": len(a.Text)})
}

func (e *Executor) keyPress(ctx context.Context, a Action) Result {
	if a.Key == "" {
		return failure(ActionKeyPress, fmt.Errorf("key_press requires key"))
	}
	if err := e.computer.PressKey(ctx, a.Key); err != nil {
		return failure(ActionKeyPress, err)
	}
	return success(ActionKeyPress, map[string]interface{}{"key": a.Key})
}

func (e *Executor) hotkey(ctx context.Context, a Action) Result {
	if len(a.Keys) == 0 {
		return failure(ActionHotkey, fmt.Errorf("hotkey requires keys"))
	}
	if err := e.computer.Hotkey(ctx, a.Keys...); err != nil {
		return failure(ActionHotkey, err)
	}
	return success(ActionHotkey, map[string]interface{}{"keys": a.Keys})
}

func (e *Executor) screenshot(ctx context.Context, a Action) Result {
	img, err := e.computer.Screenshot(ctx)
	if err != nil {
		return failure(ActionScreenshot, err)
	}

	result := success(ActionScreenshot, map[string]interface{}{
		"width":  img.Bounds().Dx(),
		"height": img.Bounds().Dy(),
	})

	if a.Save {
		if err := os.MkdirAll(e.screenshotsDir, 0o755); err != nil {
			return failure(ActionScreenshot, fmt.Errorf("create screenshots dir: %w", err))
		}
		name := fmt.Sprintf("screenshot_%s.png", time.Now().Format("20060102_150405"))
		path := filepath.Join(e.screenshotsDir, name)
		if err := screen.SavePNG(img, path); err != nil {
			return failure(ActionScreenshot, err)
		}
		result.ScreenshotPath = path
	}
	return result
}

// launch opens an application through the Start-menu search flow: win
// key, type the name, enter. The pauses give the menu and search results
// time to appear.
func (e *Executor) launch(ctx context.Context, a Action) Result {
	if a.App == "" {
		return failure(ActionLaunch, fmt.Errorf("launch requires app"))
	}

	steps := []func() error{
		func() error { return e.computer.PressKey(ctx, "cmd") },
		func() error { time.Sleep(500 * time.Millisecond); return e.computer.TypeText(ctx, a.App) },
		func() error { time.Sleep(300 * time.Millisecond); return e.computer.PressKey(ctx, "enter") },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return failure(ActionLaunch, err)
		}
	}
	time.Sleep(time.Second)

	return success(ActionLaunch, map[string]interface{}{"app": a.App})
}

func (e *Executor) wait(ctx context.Context, a Action) Result {
	if a.Seconds < 0 {
		return failure(ActionWait, fmt.Errorf("wait requires a non-negative duration"))
	}
	select {
	case <-time.After(time.Duration(a.Seconds * float64(time.Second))):
	case <-ctx.Done():
		return failure(ActionWait, ctx.Err())
	}
	return success(ActionWait, map[string]interface{}{"seconds": a.Seconds})
}

func success(action string, details map[string]interface{}) Result {
	return Result{Success: true, Action: action, Details: details}
}

func failure(action string, err error) Result {
	return Result{Success: false, Action: action, Error: err.Error()}
}
