package store

import (
	"strings"
	"time"
)

// Layouts of the calendar and clock strings records carry.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Checks accumulates the first violation found by a sequence of field
// checks, so a Validate method reads as a flat list.
type Checks struct {
	err *ValidationError
}

// Err returns the first violation, or nil.
func (c *Checks) Err() error {
	if c.err == nil {
		return nil
	}
	return c.err
}

func (c *Checks) fail(field, format string, args ...any) {
	if c.err == nil {
		c.err = Invalid(field, format, args...)
	}
}

// Required rejects blank text.
func (c *Checks) Required(field, v string) {
	if strings.TrimSpace(v) == "" {
		c.fail(field, "is required")
	}
}

// OneOf rejects v unless it is one of allowed.
func (c *Checks) OneOf(field, v string, allowed ...string) {
	for _, a := range allowed {
		if v == a {
			return
		}
	}
	c.fail(field, "must be one of %s, got %q", strings.Join(allowed, ", "), v)
}

// Date rejects v unless it is a YYYY-MM-DD date. Blank passes unless required.
func (c *Checks) Date(field, v string, required bool) {
	if v == "" {
		if required {
			c.fail(field, "is required")
		}
		return
	}
	if _, err := time.Parse(DateLayout, v); err != nil {
		c.fail(field, "must be a YYYY-MM-DD date, got %q", v)
	}
}

// Clock rejects v unless it is an HH:MM time of day.
func (c *Checks) Clock(field, v string) {
	if _, err := time.Parse(TimeLayout, v); err != nil {
		c.fail(field, "must be an HH:MM time, got %q", v)
	}
}

// NotBefore rejects an end date earlier than its start date. Both must
// already be valid or blank.
func (c *Checks) NotBefore(field, end, start string) {
	if end == "" || start == "" {
		return
	}
	if end < start {
		c.fail(field, "must not be before %s", start)
	}
}

// NonNegative rejects negative numbers.
func (c *Checks) NonNegative(field string, v float64) {
	if v < 0 {
		c.fail(field, "must not be negative")
	}
}

// Positive rejects zero and negative numbers.
func (c *Checks) Positive(field string, v float64) {
	if v <= 0 {
		c.fail(field, "must be positive")
	}
}

// Check records a violation when ok is false.
func (c *Checks) Check(ok bool, field, format string, args ...any) {
	if !ok {
		c.fail(field, format, args...)
	}
}
