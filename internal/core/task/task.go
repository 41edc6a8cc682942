// Package task holds the task list domain: the Task entity, view filters,
// text validation and the Store that owns the list and its transient UI state.
package task

import (
	"fmt"
	"strings"
)

// MaxTextLength is the longest task text accepted, in characters, after trimming.
const MaxTextLength = 200

// Task is a single to-do item.
type Task struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Filter selects which tasks a view shows. It never changes the list itself.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// IsValid reports whether f is a known filter.
func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	}
	return false
}

// Label returns the capitalized filter name shown on tabs.
func (f Filter) Label() string {
	if f == "" {
		return ""
	}
	s := string(f)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Next returns the filter after f, wrapping around.
func (f Filter) Next() Filter {
	for i, v := range Filters {
		if v == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// ParseFilter converts a user supplied string into a Filter.
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q (want all, active or completed)", ErrInvalidFilter, s)
	}
	return f, nil
}

// Matches reports whether t belongs in a view filtered by f.
// Unknown filters match everything.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Counts summarizes a task list for the footer.
type Counts struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Active    int `json:"active"`
}

// CountTasks tallies tasks by completion state.
func CountTasks(tasks []Task) Counts {
	c := Counts{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			c.Completed++
		}
	}
	c.Active = c.Total - c.Completed
	return c
}

// PendingDelete is the snapshot taken when a delete is requested.
// Text is captured at request time and does not follow later edits.
type PendingDelete struct {
	ID   int64
	Text string
}
