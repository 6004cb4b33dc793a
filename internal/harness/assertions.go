package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/strokecap/internal/stroke"
)

const defaultTolerance = 1e-4

// AssertionError is returned when an assertion fails.
// It includes the stroke summary to help debug the failure.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Strokes  []stroke.Stroke
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Strokes) > 0 {
		fmt.Fprintf(&buf, "\nStrokes:\n")
		for i, s := range e.Strokes {
			fmt.Fprintf(&buf, "  [%d] %s group=%s slot=%d points=%d flags=%d\n",
				i, s.ID, s.GroupID, s.Slot, len(s.ControlPoints), uint32(s.Flags))
		}
	}
	return buf.String()
}

// EvaluateAssertions runs every assertion and returns the failure messages.
func EvaluateAssertions(r *Result, assertions []Assertion) []string {
	var errs []string
	for _, a := range assertions {
		if err := evaluate(r, a); err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

func evaluate(r *Result, a Assertion) error {
	fail := func(expected, actual string) error {
		return &AssertionError{Type: a.Type, Expected: expected, Actual: actual, Strokes: r.Strokes}
	}

	switch a.Type {
	case AssertStrokeCount:
		if len(r.Strokes) != a.Count {
			return fail(fmt.Sprintf("%d strokes", a.Count), fmt.Sprintf("%d strokes", len(r.Strokes)))
		}
		return nil

	case AssertFinalState:
		if r.FinalState != a.State {
			return fail(a.State, r.FinalState)
		}
		return nil

	case AssertHapticPulses:
		if len(r.Pulses) != a.Count {
			return fail(fmt.Sprintf("%d pulses", a.Count), fmt.Sprintf("%d pulses", len(r.Pulses)))
		}
		return nil
	}

	if a.Index < 0 || a.Index >= len(r.Strokes) {
		return fail(fmt.Sprintf("stroke[%d]", a.Index), fmt.Sprintf("only %d strokes", len(r.Strokes)))
	}
	s := r.Strokes[a.Index]

	switch a.Type {
	case AssertStrokePoints:
		if len(s.ControlPoints) != a.Count {
			return fail(fmt.Sprintf("stroke[%d] with %d points", a.Index, a.Count),
				fmt.Sprintf("%d points", len(s.ControlPoints)))
		}

	case AssertStrokeFlags:
		got := s.Flags.Has(stroke.FlagIsGroupContinue)
		if got != a.GroupContinue {
			return fail(fmt.Sprintf("stroke[%d] group_continue=%t", a.Index, a.GroupContinue),
				fmt.Sprintf("group_continue=%t", got))
		}

	case AssertStrokeEndpoints:
		if len(s.ControlPoints) == 0 {
			return fail(fmt.Sprintf("stroke[%d] with endpoints", a.Index), "no control points")
		}
		tol := a.Tolerance
		if tol == 0 {
			tol = defaultTolerance
		}
		first := s.ControlPoints[0].Position
		last := s.ControlPoints[len(s.ControlPoints)-1].Position
		if !first.ApproxEqualThreshold(endpoint(a.First), tol) || !last.ApproxEqualThreshold(endpoint(a.Last), tol) {
			return fail(fmt.Sprintf("stroke[%d] from %v to %v", a.Index, a.First, a.Last),
				fmt.Sprintf("from %v to %v", first, last))
		}
	}
	return nil
}
