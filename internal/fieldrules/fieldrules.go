// Package fieldrules implements the declarative per-field validation engine
// used by the asset forms. Each asset kind supplies a rule table; one generic
// validator walks the table and produces a field-keyed error map. Submission
// is blocked until the map is empty.
package fieldrules

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for all form date fields.
const DateLayout = "2006-01-02"

// Rule describes the constraints for a single form field. Zero value means
// "optional free text". Pattern, range, and date checks only run when the
// field is non-empty, so optional fields stay optional.
type Rule struct {
	Required bool
	Pattern  *regexp.Regexp
	Message  string // shown when Pattern fails; falls back to a generic message

	Numeric  bool
	Positive bool // implies Numeric, value must be > 0
	Min      *float64
	Max      *float64

	Date      bool
	NotFuture bool   // implies Date, field must not be after today
	After     string // implies Date, field must be strictly after this other date field

	Enum []string
}

// RuleSet maps form field names to their rules.
type RuleSet map[string]Rule

// Validate checks values against the rule set and returns a field-keyed
// error map. An empty map means the form may be submitted. now anchors the
// not-in-the-future checks so callers can inject a clock.
func Validate(rules RuleSet, values map[string]string, now time.Time) map[string]string {
	errs := make(map[string]string)
	today := dateOnly(now)

	for field, rule := range rules {
		value := strings.TrimSpace(values[field])
		if value == "" {
			if rule.Required {
				errs[field] = "This field is required"
			}
			continue
		}

		if rule.Pattern != nil && !rule.Pattern.MatchString(value) {
			if rule.Message != "" {
				errs[field] = rule.Message
			} else {
				errs[field] = "Invalid format"
			}
			continue
		}

		if len(rule.Enum) > 0 && !contains(rule.Enum, value) {
			errs[field] = "Invalid value"
			continue
		}

		if rule.Numeric || rule.Positive || rule.Min != nil || rule.Max != nil {
			n, err := strconv.ParseFloat(value, 64)
			if err != nil {
				errs[field] = "Must be a number"
				continue
			}
			if rule.Positive && n <= 0 {
				errs[field] = "Must be a positive number"
				continue
			}
			if rule.Min != nil && n < *rule.Min {
				errs[field] = fmt.Sprintf("Must be at least %g", *rule.Min)
				continue
			}
			if rule.Max != nil && n > *rule.Max {
				errs[field] = fmt.Sprintf("Must be at most %g", *rule.Max)
				continue
			}
		}

		if rule.Date || rule.NotFuture || rule.After != "" {
			d, err := time.Parse(DateLayout, value)
			if err != nil {
				errs[field] = "Invalid date, expected YYYY-MM-DD"
				continue
			}
			if rule.NotFuture && d.After(today) {
				errs[field] = "Date cannot be in the future"
				continue
			}
			if rule.After != "" {
				otherRaw := strings.TrimSpace(values[rule.After])
				if otherRaw != "" {
					// The other field reports its own parse error.
					if other, err := time.Parse(DateLayout, otherRaw); err == nil && !d.After(other) {
						errs[field] = "Must be after " + rule.After
						continue
					}
				}
			}
		}
	}

	return errs
}

// ParseDate parses a form date value. Empty input yields a nil time.
func ParseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ParseAmount parses a monetary form value in rupees into paise.
// Empty input yields zero.
func ParseAmount(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	// Round to the nearest paisa; truncation would drop one on values like
	// 0.29, whose float product lands just under the exact amount.
	return int64(math.Round(n * 100)), nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
