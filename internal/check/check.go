// Package check provides the ordered precondition evaluator that gates every
// state change in the engine, together with the two error kinds it produces:
// legality failures (Error) and integrity faults (IntegrityError).
package check

import (
	"errors"
	"fmt"
)

// Result is the outcome of a precondition evaluation.
// The zero value is a pass.
type Result struct {
	Reason Reason
}

// Pass is the successful result.
var Pass = Result{}

// Fail returns a failing result carrying reason.
func Fail(reason Reason) Result {
	return Result{Reason: reason}
}

// OK reports whether the evaluation passed.
func (r Result) OK() bool {
	return r.Reason == ""
}

// Err returns nil for a pass and an *Error otherwise.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &Error{Reason: r.Reason}
}

// String returns "OK" or the failing reason.
func (r Result) String() string {
	if r.OK() {
		return "OK"
	}
	return string(r.Reason)
}

// Check is a single deferred precondition.
type Check func() Result

// Checker accumulates checks and runs them in insertion order.
type Checker struct {
	checks []Check
}

// New creates an empty checker.
func New() *Checker {
	return &Checker{}
}

// Require adds a predicate that must hold, failing with reason otherwise.
func (c *Checker) Require(pred func() bool, reason Reason) *Checker {
	c.checks = append(c.checks, func() Result {
		if pred() {
			return Pass
		}
		return Fail(reason)
	})
	return c
}

// Then adds a nested check, typically a delegated canX call.
func (c *Checker) Then(f Check) *Checker {
	c.checks = append(c.checks, f)
	return c
}

// All adds several nested checks in order.
func (c *Checker) All(fs ...Check) *Checker {
	c.checks = append(c.checks, fs...)
	return c
}

// Run evaluates checks in order and returns the first failure.
// Checks after a failure are never evaluated.
func (c *Checker) Run() Result {
	for _, f := range c.checks {
		if r := f(); !r.OK() {
			return r
		}
	}
	return Pass
}

// Error is a legality failure: the action is not allowed in the current state.
// Callers may recover from it, for example by asking the player again.
type Error struct {
	Reason Reason
}

func (e *Error) Error() string {
	return fmt.Sprintf("illegal action: %s", e.Reason)
}

// Is matches another *Error with the same reason.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Reason == t.Reason
	}
	return false
}

// ErrorFor returns a comparable legality error for use with errors.Is.
func ErrorFor(reason Reason) error {
	return &Error{Reason: reason}
}

// IntegrityError signals a caller or engine bug: an unknown id, a violated
// precondition the caller should have checked, or inconsistent internal state.
type IntegrityError struct {
	Reason Reason
	Detail string
}

func (e *IntegrityError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("integrity fault: %s", e.Reason)
	}
	return fmt.Sprintf("integrity fault: %s: %s", e.Reason, e.Detail)
}

// Is matches another *IntegrityError with the same reason.
func (e *IntegrityError) Is(target error) bool {
	if t, ok := target.(*IntegrityError); ok {
		return e.Reason == t.Reason
	}
	return false
}

// Integrity builds an IntegrityError with a formatted detail.
func Integrity(reason Reason, format string, args ...any) error {
	return &IntegrityError{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// IsLegality reports whether err carries a legality failure.
func IsLegality(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// IsIntegrity reports whether err carries an integrity fault.
func IsIntegrity(err error) bool {
	var e *IntegrityError
	return errors.As(err, &e)
}

// ReasonOf extracts the reason from either error kind.
func ReasonOf(err error) (Reason, bool) {
	var le *Error
	if errors.As(err, &le) {
		return le.Reason, true
	}
	var ie *IntegrityError
	if errors.As(err, &ie) {
		return ie.Reason, true
	}
	return "", false
}
