// Package vehicle defines the vehicle entity and its field validation rules.
package vehicle

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Field length constraints.
const (
	minNameLen = 3
	maxNameLen = 25
	yearLen    = 4
)

// Vehicle is a single vehicle record. The ID is assigned by the store on
// create and never changes afterwards.
type Vehicle struct {
	ID           string `json:"id,omitempty"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	Year         string `json:"year"`
}

// ID is the response envelope returned on create.
type ID struct {
	ID string `json:"id"`
}

// Violation describes a single failed field rule.
type Violation struct {
	Field  string `json:"field"`
	Rule   string `json:"rule"`
	Actual string `json:"actual"`
}

// ValidationErrors collects every violated rule for one candidate vehicle.
type ValidationErrors []Violation

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, fmt.Sprintf("%s: %s", v.Field, v.Rule))
	}
	return "validation failed: " + strings.Join(msgs, ", ")
}

// Validate checks every field rule and returns the full violation list, not
// just the first failure. It is pure: no normalization, no store access.
func (v Vehicle) Validate() error {
	var errs ValidationErrors

	if n := utf8.RuneCountInString(v.Manufacturer); n < minNameLen || n > maxNameLen {
		errs = append(errs, Violation{
			Field:  "manufacturer",
			Rule:   fmt.Sprintf("must be between %d and %d characters", minNameLen, maxNameLen),
			Actual: v.Manufacturer,
		})
	}
	if n := utf8.RuneCountInString(v.Model); n < minNameLen || n > maxNameLen {
		errs = append(errs, Violation{
			Field:  "model",
			Rule:   fmt.Sprintf("must be between %d and %d characters", minNameLen, maxNameLen),
			Actual: v.Model,
		})
	}
	if n := utf8.RuneCountInString(v.Year); n != yearLen {
		errs = append(errs, Violation{
			Field:  "year",
			Rule:   fmt.Sprintf("must be exactly %d characters", yearLen),
			Actual: v.Year,
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
