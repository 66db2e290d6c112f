package utils

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// PxValue parses a CSS pixel length ("12px", "12") into an int, returning 0
// for anything unparseable. Tools treat an unset position as origin.
func PxValue(s string) int {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(v)
}

// Px formats an int as a CSS pixel length.
func Px(v int) string {
	return strconv.Itoa(v) + "px"
}

// FloatPxValue parses a fractional pixel length ("0.5px").
func FloatPxValue(s string) float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// FloatPx formats a fractional pixel length, trimming trailing zeros.
func FloatPx(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return fmt.Sprintf("%spx", s)
}

// Abs returns the absolute value of an int.
func Abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Debouncer provides a way to debounce function calls
type Debouncer struct {
	mutex sync.Mutex
	timer *time.Timer
}

// Debounce calls the provided function after the specified duration,
// canceling any previous pending calls
func (d *Debouncer) Debounce(duration time.Duration, fn func()) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(duration, fn)
}
