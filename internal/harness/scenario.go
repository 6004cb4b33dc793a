package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/strokecap/internal/symmetry"
)

// DefaultDt is the frame step used when neither the scenario nor the frame
// sets one.
const DefaultDt = 0.25

// Scenario is a scripted drawing session.
type Scenario struct {
	// Name uniquely identifies this scenario. It names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Symmetry is the symmetry mode name. Empty means none.
	Symmetry string `yaml:"symmetry,omitempty"`

	StraightEdge bool `yaml:"straight_edge,omitempty"`

	// Brush is the active brush name. Defaults to "Ink".
	Brush string `yaml:"brush,omitempty"`

	// Proxy marks the brush as needing a straight-edge proxy.
	Proxy bool `yaml:"proxy,omitempty"`

	// Pool overrides the pointer pool layout.
	Pool *PoolSpec `yaml:"pool,omitempty"`

	// Dt is the default frame step in seconds.
	Dt float64 `yaml:"dt,omitempty"`

	Frames []Frame `yaml:"frames"`

	Assertions []Assertion `yaml:"assertions"`
}

// PoolSpec sizes the pointer pool.
type PoolSpec struct {
	Capacity int `yaml:"capacity"`
	User     int `yaml:"user"`
}

// Frame is one scripted input sample.
type Frame struct {
	Dt       float64   `yaml:"dt,omitempty"`
	Position []float32 `yaml:"position,omitempty"`
	Draw     bool      `yaml:"draw"`
	Pressure *float32  `yaml:"pressure,omitempty"`

	// Gesture queues an outcome for the gesture detector: "succeed" or "fail".
	Gesture string `yaml:"gesture,omitempty"`

	// Repeat ticks this frame N times. Zero means once.
	Repeat int `yaml:"repeat,omitempty"`
}

// Assertion validates the outcome of a run.
type Assertion struct {
	Type string `yaml:"type"`

	// Count is used by stroke_count, stroke_points and haptic_pulses.
	Count int `yaml:"count,omitempty"`

	// State is used by final_state.
	State string `yaml:"state,omitempty"`

	// Index selects the stroke for stroke_* assertions, in store order.
	Index int `yaml:"index,omitempty"`

	First []float32 `yaml:"first,omitempty"`
	Last  []float32 `yaml:"last,omitempty"`

	// Tolerance for stroke_endpoints. Defaults to 1e-4.
	Tolerance float32 `yaml:"tolerance,omitempty"`

	// GroupContinue is used by stroke_flags.
	GroupContinue bool `yaml:"group_continue,omitempty"`
}

// Assertion type constants.
const (
	AssertStrokeCount     = "stroke_count"
	AssertFinalState      = "final_state"
	AssertStrokePoints    = "stroke_points"
	AssertStrokeEndpoints = "stroke_endpoints"
	AssertStrokeFlags     = "stroke_flags"
	AssertHapticPulses    = "haptic_pulses"
)

// Gesture outcome names.
const (
	GestureSucceed = "succeed"
	GestureFail    = "fail"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Frames) == 0 {
		return fmt.Errorf("frames list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	if s.Symmetry != "" {
		if _, err := symmetry.ParseMode(s.Symmetry); err != nil {
			return err
		}
	}
	if s.Dt < 0 {
		return fmt.Errorf("dt must be non-negative")
	}
	if s.Pool != nil && (s.Pool.Capacity < 1 || s.Pool.User < 1) {
		return fmt.Errorf("pool: capacity and user must be positive")
	}

	for i, f := range s.Frames {
		if f.Position != nil && len(f.Position) != 3 {
			return fmt.Errorf("frames[%d]: position needs 3 components, got %d", i, len(f.Position))
		}
		if f.Dt < 0 || f.Repeat < 0 {
			return fmt.Errorf("frames[%d]: dt and repeat must be non-negative", i)
		}
		switch f.Gesture {
		case "", GestureSucceed, GestureFail:
		default:
			return fmt.Errorf("frames[%d]: unknown gesture %q", i, f.Gesture)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertStrokeCount, AssertHapticPulses:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	case AssertFinalState:
		if a.State == "" {
			return fmt.Errorf("assertions[%d]: state is required for final_state", index)
		}
	case AssertStrokePoints, AssertStrokeFlags:
		if a.Index < 0 {
			return fmt.Errorf("assertions[%d]: index must be non-negative", index)
		}
	case AssertStrokeEndpoints:
		if a.Index < 0 {
			return fmt.Errorf("assertions[%d]: index must be non-negative", index)
		}
		if len(a.First) != 3 || len(a.Last) != 3 {
			return fmt.Errorf("assertions[%d]: first and last need 3 components for stroke_endpoints", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
