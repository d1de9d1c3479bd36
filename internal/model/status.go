package model

import "fmt"

// Status is derived from Progress and never stored on its own.
type Status string

const (
	StatusTodo     Status = "Todo"
	StatusUnderway Status = "Underway"
	StatusComplete Status = "Complete"
)

// StatusOf maps progress to status. The boundary values win over "in between".
func StatusOf(p Progress) Status {
	switch {
	case p.IsOne():
		return StatusComplete
	case p.IsZero():
		return StatusTodo
	default:
		return StatusUnderway
	}
}

// ParseStatus accepts the persisted spelling only.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusTodo, StatusUnderway, StatusComplete:
		return Status(s), nil
	}
	return "", fmt.Errorf("invalid status %q, must be one of: Todo, Underway, Complete", s)
}
