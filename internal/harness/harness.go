package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/roach88/strokecap/internal/engine"
	"github.com/roach88/strokecap/internal/geom"
	"github.com/roach88/strokecap/internal/pointer"
	"github.com/roach88/strokecap/internal/store"
	"github.com/roach88/strokecap/internal/stroke"
	"github.com/roach88/strokecap/internal/symmetry"
	"github.com/roach88/strokecap/internal/testutil"
)

// Options tune a run. The zero value uses stock engine settings, a fresh
// in-memory store and discarded logs.
type Options struct {
	Settings *engine.Settings
	Logger   *slog.Logger

	// Store receives strokes instead of a fresh in-memory store. The
	// caller keeps ownership.
	Store *store.Store

	// IDs names strokes and groups. Defaults to sequential "id-N" IDs,
	// which repeat across runs; use unique IDs when runs share a store.
	IDs engine.IDGenerator

	// Brushes resolves scenario brush names. Defaults to stroke.DefaultCatalog.
	Brushes *stroke.Catalog

	// Pool sizes the pointer pool when the scenario does not.
	Pool *PoolSpec

	PoolOptions []pointer.PoolOption
}

// Run executes a scenario with default options.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithOptions(context.Background(), scenario, Options{})
}

// RunWithOptions executes a scenario and evaluates its assertions.
//
// Execution flow:
// 1. Open the store and build the pool and engine
// 2. Apply symmetry, brush and straight-edge settings
// 3. Tick every frame
// 4. Read strokes back and evaluate assertions
func RunWithOptions(ctx context.Context, scenario *Scenario, opts Options) (*Result, error) {
	st := opts.Store
	if st == nil {
		var err error
		st, err = store.Open(":memory:")
		if err != nil {
			return nil, fmt.Errorf("failed to create in-memory store: %w", err)
		}
		defer st.Close()
	}

	capacity, user := pointer.DefaultCapacity, pointer.DefaultUserPointers
	switch {
	case scenario.Pool != nil:
		capacity, user = scenario.Pool.Capacity, scenario.Pool.User
	case opts.Pool != nil:
		capacity, user = opts.Pool.Capacity, opts.Pool.User
	}
	pool, err := pointer.NewPool(capacity, user, opts.PoolOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create pointer pool: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in tests
	}
	ids := opts.IDs
	if ids == nil {
		ids = testutil.NewSequentialIDs("id")
	}
	gesture := &testutil.ScriptedGesture{}
	haptics := &testutil.HapticsRecorder{}
	engOpts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithIDGenerator(ids),
		engine.WithGestureDetector(gesture),
		engine.WithHaptics(haptics),
		engine.WithStrokeSink(st),
	}
	if opts.Settings != nil {
		engOpts = append(engOpts, engine.WithSettings(*opts.Settings))
	}
	eng := engine.New(pool, engOpts...)

	// Strokes already in a shared store belong to earlier runs.
	before, err := st.CountStrokes(ctx)
	if err != nil {
		return nil, err
	}

	result := NewResult()
	unsubscribe := eng.Subscribe(func(ev engine.Event) {
		result.Trace = append(result.Trace, traceEvent(ev))
	})
	defer unsubscribe()

	// A shared store restores the saved widget, and its mode unless the
	// scenario picks one.
	mode := symmetry.ModeNone
	if opts.Store != nil {
		m, saved, ok, err := st.ReadMirror(ctx)
		if err != nil {
			return nil, err
		}
		if ok {
			eng.SetSymmetryWidget(symmetry.FromMirror(m, geom.Identity()))
			mode = saved
		}
	}
	if scenario.Symmetry != "" {
		if mode, err = symmetry.ParseMode(scenario.Symmetry); err != nil {
			return nil, err
		}
	}
	if mode != symmetry.ModeNone {
		if err := eng.SetSymmetryMode(mode); err != nil {
			return nil, fmt.Errorf("failed to set symmetry: %w", err)
		}
	}

	brushes := opts.Brushes
	if brushes == nil {
		brushes = stroke.DefaultCatalog()
	}
	name := scenario.Brush
	if name == "" {
		name = "Ink"
	}
	brush, err := brushes.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(brushes.Names(), ", "))
	}
	brush.NeedsStraightEdgeProxy = brush.NeedsStraightEdgeProxy || scenario.Proxy
	eng.SetActiveBrush(brush)
	eng.SetStraightEdgeEnabled(scenario.StraightEdge)

	defaultDt := scenario.Dt
	if defaultDt == 0 {
		defaultDt = DefaultDt
	}

	for _, f := range scenario.Frames {
		dt := f.Dt
		if dt == 0 {
			dt = defaultDt
		}
		for n := max(f.Repeat, 1); n > 0; n-- {
			if f.Position != nil {
				pose := pool.Main().Pose()
				pose.Position = mgl32.Vec3{f.Position[0], f.Position[1], f.Position[2]}
				eng.SetMainPointerPose(pose)
			}
			if f.Pressure != nil {
				eng.SetPressure(*f.Pressure)
			}
			switch f.Gesture {
			case GestureSucceed:
				gesture.Queue(testutil.GestureSucceeded)
			case GestureFail:
				gesture.Queue(testutil.GestureFailed)
			}
			eng.EnableLine(f.Draw)
			eng.Tick(ctx, dt)
		}
	}

	// The sketch keeps its widget so a reopened store restores symmetry.
	if mode := pool.SymmetryMode(); mode != symmetry.ModeNone {
		m := pool.Symmetry().Widget().ToMirror(geom.Identity())
		if err := st.WriteMirror(ctx, m, mode); err != nil {
			return nil, fmt.Errorf("failed to save mirror: %w", err)
		}
	}

	result.FinalState = eng.State().String()
	result.Pulses = haptics.Pulses()
	strokes, err := st.ReadStrokes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read strokes: %w", err)
	}
	result.Strokes = strokes[min(before, len(strokes)):]

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

func traceEvent(ev engine.Event) TraceEvent {
	te := TraceEvent{Frame: ev.Frame, Kind: ev.Kind.String()}
	switch ev.Kind {
	case engine.EventStateChanged:
		te.Detail = fmt.Sprintf("%s -> %s", ev.From, ev.To)
	case engine.EventBrushChanged:
		te.Detail = ev.Brush.Name
	case engine.EventColorChanged:
		te.Detail = fmt.Sprintf("%.3g %.3g %.3g %.3g", ev.Color.R, ev.Color.G, ev.Color.B, ev.Color.A)
	case engine.EventSizeChanged:
		te.Detail = fmt.Sprintf("%.4g", ev.Size)
	case engine.EventSymmetryChanged:
		te.Detail = ev.Mode.String()
	case engine.EventShapeChanged:
		te.Detail = ev.Shape.String()
	case engine.EventStrokeFinalized:
		s := ev.Stroke
		te.Detail = fmt.Sprintf("id=%s group=%s slot=%d points=%d flags=%d",
			s.ID, s.GroupID, s.Slot, len(s.ControlPoints), uint32(s.Flags))
	}
	return te
}

// endpoint converts a 3-component slice to a vector.
func endpoint(v []float32) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[1], v[2]}
}
