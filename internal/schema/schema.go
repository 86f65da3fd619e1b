// Package schema converts between the JSON wire format and the entities in
// package model, validating inbound payloads on the way.
package schema

import (
	"fmt"
	"strconv"
	"time"

	"github.com/balbesina228/films-api/internal/validation"
)

var validate = validation.New()

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date encoded as "YYYY-MM-DD".
type Date struct {
	time.Time
}

// NewDate wraps t, or returns nil for a nil t.
func NewDate(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	return &Date{Time: *t}
}

// TimePtr returns the date as a UTC midnight, or nil for a nil d.
func (d *Date) TimePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return &t
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.Format(DateLayout))), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("date must be a string formatted as YYYY-MM-DD")
	}

	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}

	d.Time = t
	return nil
}

// MessageResponse is the body of endpoints that only report an outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

// Empty is the request type of endpoints that take no input.
type Empty struct{}

func (Empty) Validate() error { return nil }

// UUIDParam binds the {uuid} path parameter.
type UUIDParam struct {
	UUID string `param:"uuid" json:"-"`
}

func (*UUIDParam) Validate() error { return nil }
