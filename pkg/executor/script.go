package executor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// RunReport is the outcome of running a script of actions.
type RunReport struct {
	RunID     string   `json:"run_id"`
	Results   []Result `json:"results"`
	Completed bool     `json:"completed"`
}

// ParseScript decodes a JSON array of actions.
func ParseScript(data []byte) ([]Action, error) {
	var actions []Action
	if err := json.Unmarshal(data, &actions); err != nil {
		return nil, fmt.Errorf("parse action script: %w", err)
	}
	return actions, nil
}

// LoadScript reads and parses an action script file.
func LoadScript(path string) ([]Action, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read action script: %w", err)
	}
	return ParseScript(data)
}

// Run executes actions in order. A failed action stops the run unless it
// is marked continue_on_error. Cancellation via ctx also stops the run.
func (e *Executor) Run(ctx context.Context, actions []Action) RunReport {
	report := RunReport{RunID: uuid.NewString()}
	e.log.Info("run started", "run", report.RunID, "actions", len(actions))

	for i, a := range actions {
		if ctx.Err() != nil {
			e.log.Warn("run cancelled", "run", report.RunID, "at", i)
			return report
		}

		result := e.Execute(ctx, a)
		report.Results = append(report.Results, result)

		if !result.Success && !a.ContinueOnError {
			e.log.Warn("run stopped on failure", "run", report.RunID, "at", i)
			return report
		}
	}

	report.Completed = true
	e.log.Info("run completed", "run", report.RunID)
	return report
}
