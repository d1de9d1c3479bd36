package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidProgress is returned when a value falls outside [0.0, 1.0].
var ErrInvalidProgress = errors.New("progress must be between 0.0 and 1.0")

// Progress is a completion fraction in [0.0, 1.0].
// The zero value is valid and means no progress.
type Progress struct {
	v float64
}

var (
	ProgressZero = Progress{}
	ProgressOne  = Progress{v: 1}
)

// NewProgress validates v and wraps it. NaN is rejected.
func NewProgress(v float64) (Progress, error) {
	if !(v >= 0 && v <= 1) {
		return Progress{}, fmt.Errorf("%w: got %v", ErrInvalidProgress, v)
	}
	return Progress{v: v}, nil
}

// ParseProgress parses a decimal string such as "0.25".
func ParseProgress(s string) (Progress, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Progress{}, fmt.Errorf("%w: not a number: %q", ErrInvalidProgress, s)
	}
	return NewProgress(f)
}

func (p Progress) Float() float64 { return p.v }
func (p Progress) IsZero() bool   { return p.v == 0 }
func (p Progress) IsOne() bool    { return p.v == 1 }

// Percent rounds to the nearest whole percent.
func (p Progress) Percent() int { return int(p.v*100 + 0.5) }

func (p Progress) String() string {
	return strconv.FormatFloat(p.v, 'f', -1, 64)
}
