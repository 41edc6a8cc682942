package task

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// EncodeTasks serializes the list as a JSON array. A nil list encodes as [].
func EncodeTasks(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	return json.Marshal(tasks)
}

// wireTask uses pointers so missing fields are distinguishable from zero values.
type wireTask struct {
	ID        *float64 `json:"id"`
	Text      *string  `json:"text"`
	Completed *bool    `json:"completed"`
}

// DecodeTasks parses a stored payload. Anything other than a JSON array of
// objects carrying a numeric id, a string text and a boolean completed flag
// is reported as ErrCorrupt.
func DecodeTasks(data []byte) ([]Task, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: payload is not an array", ErrCorrupt)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	tasks := make([]Task, 0, len(raw))
	for i, elem := range raw {
		var w wireTask
		if err := json.Unmarshal(elem, &w); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrCorrupt, i, err)
		}
		if w.ID == nil || w.Text == nil || w.Completed == nil {
			return nil, fmt.Errorf("%w: element %d is not task-shaped", ErrCorrupt, i)
		}
		if *w.ID != math.Trunc(*w.ID) {
			return nil, fmt.Errorf("%w: element %d has a fractional id", ErrCorrupt, i)
		}
		tasks = append(tasks, Task{ID: int64(*w.ID), Text: *w.Text, Completed: *w.Completed})
	}

	return tasks, nil
}
