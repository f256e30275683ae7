package executor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/deskpilot/deskpilot/pkg/computer"
	"github.com/deskpilot/deskpilot/pkg/config"
)

func intp(v int) *int { return &v }

func newTestExecutor(t *testing.T) (*Executor, *computer.Mock) {
	t.Helper()
	cfg := config.Default()
	cfg.Logging.ScreenshotsDir = t.TempDir()

	mock := computer.NewMock(cfg)
	if err := mock.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}
	mock.Actions = nil
	return New(mock, cfg), mock
}

func TestExecuteClick(t *testing.T) {
	e, mock := newTestExecutor(t)

	r := e.Execute(context.Background(), Action{Type: ActionClick, X: intp(150), Y: intp(250)})
	if !r.Success {
		t.Fatalf("click failed: %s", r.Error)
	}
	if len(mock.Actions) != 1 {
		t.Fatalf("recorded %d actions, want 1", len(mock.Actions))
	}
	got := mock.Actions[0]
	if got.X != 150 || got.Y != 250 || got.Button != computer.ButtonLeft {
		t.Errorf("click = %+v", got)
	}
	if r.Details["button"] != computer.ButtonLeft {
		t.Errorf("details button = %v, want left", r.Details["button"])
	}
}

func TestExecuteValidation(t *testing.T) {
	e, mock := newTestExecutor(t)

	tests := []struct {
		name   string
		action Action
		errHas string
	}{
		{"click without coordinates", Action{Type: ActionClick}, "requires x and y"},
		{"double click without coordinates", Action{Type: ActionDoubleClick, X: intp(1)}, "requires x and y"},
		{"key press without key", Action{Type: ActionKeyPress}, "requires key"},
		{"hotkey without keys", Action{Type: ActionHotkey}, "requires keys"},
		{"launch without app", Action{Type: ActionLaunch}, "requires app"},
		{"negative wait", Action{Type: ActionWait, Seconds: -1}, "non-negative"},
		{"unknown type", Action{Type: "explode"}, "unknown action type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := e.Execute(context.Background(), tt.action)
			if r.Success {
				t.Fatal("expected a failed result")
			}
			if !strings.Contains(r.Error, tt.errHas) {
				t.Errorf("error = %q, want it to mention %q", r.Error, tt.errHas)
			}
		})
	}

	if len(mock.Actions) != 0 {
		t.Errorf("validation failures must not reach the computer: %+v", mock.Actions)
	}
}

func TestExecuteScreenshotSave(t *testing.T) {
	e, _ := newTestExecutor(t)

	r := e.Execute(context.Background(), Action{Type: ActionScreenshot, Save: true})
	if !r.Success {
		t.Fatalf("screenshot failed: %s", r.Error)
	}
	if r.ScreenshotPath == "" {
		t.Fatal("screenshot path should be set when saving")
	}
	if filepath.Ext(r.ScreenshotPath) != ".png" {
		t.Errorf("path = %q, want a .png", r.ScreenshotPath)
	}
	if _, err := os.Stat(r.ScreenshotPath); err != nil {
		t.Errorf("saved screenshot missing: %v", err)
	}
	if r.Details["width"] != 1920 {
		t.Errorf("details width = %v, want 1920", r.Details["width"])
	}
}

func TestExecuteScreenshotWithoutSave(t *testing.T) {
	e, _ := newTestExecutor(t)

	r := e.Execute(context.Background(), Action{Type: ActionScreenshot})
	if !r.Success {
		t.Fatalf("screenshot failed: %s", r.Error)
	}
	if r.ScreenshotPath != "" {
		t.Errorf("path = %q, want empty without save", r.ScreenshotPath)
	}
}

func TestExecuteLaunchSequence(t *testing.T) {
	e, mock := newTestExecutor(t)

	r := e.Execute(context.Background(), Action{Type: ActionLaunch, App: "notepad"})
	if !r.Success {
		t.Fatalf("launch failed: %s", r.Error)
	}

	// Start-menu flow: win key, app name, enter.
	if len(mock.Actions) != 3 {
		t.Fatalf("recorded %d actions, want 3: %+v", len(mock.Actions), mock.Actions)
	}
	if mock.Actions[0].Key != "cmd" {
		t.Errorf("step 1 key = %q, want cmd", mock.Actions[0].Key)
	}
	if mock.Actions[1].Text != "notepad" {
		t.Errorf("step 2 text = %q, want notepad", mock.Actions[1].Text)
	}
	if mock.Actions[2].Key != "enter" {
		t.Errorf("step 3 key = %q, want enter", mock.Actions[2].Key)
	}
}

func TestExecuteWaitHonorsCancellation(t *testing.T) {
	e, _ := newTestExecutor(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	r := e.Execute(ctx, Action{Type: ActionWait, Seconds: 10})
	if r.Success {
		t.Fatal("cancelled wait should fail")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("wait ignored cancellation, took %v", elapsed)
	}
}
