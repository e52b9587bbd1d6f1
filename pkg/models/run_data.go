package models

import "time"

// TaskError marks a failed node execution.
type TaskError struct {
	Message     string `json:"message"`
	Description string `json:"description,omitempty"`
}

// TaskData is the result of one execution of a node within a run.
type TaskData struct {
	StartTime     time.Time        `json:"start_time"`
	ExecutionTime int64            `json:"execution_time"` // milliseconds
	Data          []map[string]any `json:"data,omitempty"`
	Error         *TaskError       `json:"error,omitempty"`
}

// Failed reports whether the execution ended in an error.
func (t TaskData) Failed() bool {
	return t.Error != nil
}

// RunData maps node names to the ordered results of their executions within a run.
type RunData map[string][]TaskData

// First returns the first recorded result of a node.
func (r RunData) First(node string) (TaskData, bool) {
	results := r[node]
	if len(results) == 0 {
		return TaskData{}, false
	}

	return results[0], true
}

// PinData maps node names to manually supplied output items.
type PinData map[string][]map[string]any

// Has reports whether the node has pinned output.
func (p PinData) Has(node string) bool {
	return len(p[node]) > 0
}

// StartPlan is the carry-over plan for a new run: which nodes execute and which prior
// results are reused. A nil RunData means nothing is reused.
type StartPlan struct {
	StartNodeNames []string `json:"start_node_names"`
	RunData        RunData  `json:"run_data,omitempty"`
}
