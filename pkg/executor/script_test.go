package executor

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestParseScript(t *testing.T) {
	data := []byte(`[
		{"type": "click", "x": 10, "y": 20},
		{"type": "type_text", "text": "hello"},
		{"type": "wait", "seconds": 0.5, "continue_on_error": true}
	]`)

	actions, err := ParseScript(data)
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	if len(actions) != 3 {
		t.Fatalf("parsed %d actions, want 3", len(actions))
	}
	if actions[0].Type != ActionClick || *actions[0].X != 10 || *actions[0].Y != 20 {
		t.Errorf("action[0] = %+v", actions[0])
	}
	if actions[1].Text != "hello" {
		t.Errorf("action[1] text = %q", actions[1].Text)
	}
	if !actions[2].ContinueOnError {
		t.Error("action[2] should carry continue_on_error")
	}
}

func TestParseScriptRejectsMalformedJSON(t *testing.T) {
	if _, err := ParseScript([]byte(`{"type": "click"}`)); err == nil {
		t.Error("an object is not a script")
	}
	if _, err := ParseScript([]byte(`[{`)); err == nil {
		t.Error("truncated JSON should fail")
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.json")
	if err := os.WriteFile(path, []byte(`[{"type": "screenshot"}]`), 0o600); err != nil {
		t.Fatal(err)
	}

	actions, err := LoadScript(path)
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if len(actions) != 1 || actions[0].Type != ActionScreenshot {
		t.Errorf("actions = %+v", actions)
	}

	if _, err := LoadScript(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestRunStopsOnFailure(t *testing.T) {
	e, mock := newTestExecutor(t)

	actions := []Action{
		{Type: ActionClick, X: intp(1), Y: intp(2)},
		{Type: ActionKeyPress}, // fails validation
		{Type: ActionClick, X: intp(3), Y: intp(4)},
	}

	report := e.Run(context.Background(), actions)
	if report.Completed {
		t.Error("run should not complete past a failure")
	}
	if len(report.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(report.Results))
	}
	if report.RunID == "" {
		t.Error("run id should be assigned")
	}
	// Third action never reached the computer.
	if len(mock.Actions) != 1 {
		t.Errorf("computer saw %d actions, want 1", len(mock.Actions))
	}
}

func TestRunContinueOnError(t *testing.T) {
	e, mock := newTestExecutor(t)

	actions := []Action{
		{Type: ActionKeyPress, ContinueOnError: true}, // fails validation
		{Type: ActionClick, X: intp(1), Y: intp(2)},
	}

	report := e.Run(context.Background(), actions)
	if !report.Completed {
		t.Error("run should complete when the failure is marked continue_on_error")
	}
	if len(report.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(report.Results))
	}
	if report.Results[0].Success || !report.Results[1].Success {
		t.Errorf("results = %+v", report.Results)
	}
	if len(mock.Actions) != 1 {
		t.Errorf("computer saw %d actions, want 1", len(mock.Actions))
	}
}

func TestRunCancellation(t *testing.T) {
	e, _ := newTestExecutor(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := e.Run(ctx, []Action{{Type: ActionClick, X: intp(1), Y: intp(2)}})
	if report.Completed {
		t.Error("cancelled run must not report completion")
	}
	if len(report.Results) != 0 {
		t.Errorf("got %d results, want 0", len(report.Results))
	}
}
