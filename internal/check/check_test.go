package check

import (
	"errors"
	"fmt"
	"testing"
)

func TestCheckerReturnsFirstFailure(t *testing.T) {
	var evaluated []string
	step := func(name string, ok bool) func() bool {
		return func() bool {
			evaluated = append(evaluated, name)
			return ok
		}
	}

	res := New().
		Require(step("a", true), TurnFinished).
		Require(step("b", false), OtherPlayersTurn).
		Require(step("c", false), DiceNotRolled).
		Run()

	if res.Reason != OtherPlayersTurn {
		t.Errorf("Run() reason = %s, want %s", res.Reason, OtherPlayersTurn)
	}
	if len(evaluated) != 2 {
		t.Errorf("evaluated %v, want checks to stop after the first failure", evaluated)
	}
}

func TestCheckerNested(t *testing.T) {
	inner := func() Result {
		return New().Require(func() bool { return false }, CornerOccupied).Run()
	}

	tests := []struct {
		name string
		c    *Checker
		want Reason
	}{
		{"empty passes", New(), ""},
		{"nested failure surfaces", New().Then(inner), CornerOccupied},
		{"outer check wins", New().Require(func() bool { return false }, NotAllowedInThisTurn).Then(inner), NotAllowedInThisTurn},
		{"all in order", New().All(func() Result { return Pass }, inner), CornerOccupied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Run().Reason; got != tt.want {
				t.Errorf("Run() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResultErr(t *testing.T) {
	if err := Pass.Err(); err != nil {
		t.Fatalf("Pass.Err() = %v, want nil", err)
	}

	err := fmt.Errorf("wrapped: %w", Fail(EmptyDeck).Err())
	if !errors.Is(err, ErrorFor(EmptyDeck)) {
		t.Errorf("errors.Is(%v, EmptyDeck) = false", err)
	}
	if errors.Is(err, ErrorFor(DiceNotRolled)) {
		t.Errorf("errors.Is matched a different reason")
	}
	if !IsLegality(err) || IsIntegrity(err) {
		t.Errorf("error kind misclassified: %v", err)
	}
	if r, ok := ReasonOf(err); !ok || r != EmptyDeck {
		t.Errorf("ReasonOf() = %s, %v", r, ok)
	}
}

func TestIntegrityError(t *testing.T) {
	err := Integrity(InvalidCornerID, "corner %d out of range", 99)

	if !IsIntegrity(err) || IsLegality(err) {
		t.Errorf("error kind misclassified: %v", err)
	}
	if !errors.Is(err, &IntegrityError{Reason: InvalidCornerID}) {
		t.Errorf("errors.Is by reason failed for %v", err)
	}
	if got := err.Error(); got != "integrity fault: INVALID_CORNER_ID: corner 99 out of range" {
		t.Errorf("Error() = %q", got)
	}
}

func TestReasonsAreClosed(t *testing.T) {
	seen := make(map[Reason]bool)
	for _, r := range Reasons() {
		if seen[r] {
			t.Errorf("duplicate reason %s", r)
		}
		seen[r] = true
		if !r.Valid() {
			t.Errorf("%s not valid", r)
		}
	}
	if Reason("MADE_UP").Valid() {
		t.Error("undeclared reason reported valid")
	}
}
