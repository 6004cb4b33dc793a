package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/roach88/strokecap/internal/controlpoint"
	"github.com/roach88/strokecap/internal/creator"
	"github.com/roach88/strokecap/internal/geom"
	"github.com/roach88/strokecap/internal/pointer"
	"github.com/roach88/strokecap/internal/stroke"
	"github.com/roach88/strokecap/internal/symmetry"
)

// State is the line-creation state.
type State int

const (
	StateWaitingForInput State = iota
	StateRecordingInput
	StateProcessingStraightEdge
)

func (s State) String() string {
	switch s {
	case StateWaitingForInput:
		return "waiting_for_input"
	case StateRecordingInput:
		return "recording_input"
	case StateProcessingStraightEdge:
		return "processing_straight_edge"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// GestureDetector recognizes the shape-cycling gesture drawn while a
// straight edge is held.
type GestureDetector interface {
	Begin(origin mgl32.Vec3)
	Update(pos mgl32.Vec3) (complete, succeeded bool)
	Reset()
}

// Haptics buzzes the drawing controller.
type Haptics interface {
	Pulse(seconds float32)
}

// StrokeSink receives finalized strokes.
type StrokeSink interface {
	WriteStroke(ctx context.Context, s stroke.Stroke) error
}

// eatInputFrames is how many release events EatLineEnabledInput swallows.
const eatInputFrames = 2

// Settings are the engine's tunables.
type Settings struct {
	// DrawInFrames spreads a straight-edge replay over this many frames.
	DrawInFrames int
	// MinPointsPerFrame is the replay's minimum control points per frame.
	MinPointsPerFrame int
	// StraightEdgePressure is the pressure replayed strokes are drawn with.
	StraightEdgePressure float32
	// CanvasScale converts room-space brush sizes into canvas space.
	CanvasScale float32
	// SphereMinBrushSize pins the brush size of sphere strokes.
	SphereMinBrushSize float32
	// DisallowedPulseSeconds is the haptic pulse when drawing is refused.
	DisallowedPulseSeconds float32
}

// DefaultSettings returns the stock tunables.
func DefaultSettings() Settings {
	return Settings{
		DrawInFrames:           16,
		MinPointsPerFrame:      2,
		StraightEdgePressure:   1,
		CanvasScale:            1,
		SphereMinBrushSize:     creator.DefaultMinSphereBrushSize,
		DisallowedPulseSeconds: 0.1,
	}
}

// Engine owns the line-creation state machine.
type Engine struct {
	pool     *pointer.Pool
	clock    *Clock
	settings Settings
	logger   *slog.Logger
	ids      IDGenerator
	gesture  GestureDetector
	haptics  Haptics
	sink     StrokeSink
	queue    *inputQueue

	observers    []observerEntry
	nextObserver int

	state        State
	frame        int64
	lineEnabled  bool
	eatFrames    int
	straightEdge bool
	shape        creator.Shape
	proxyActive  bool
	proxyBrush   stroke.Brush
	groupID      string

	replay      []controlpoint.ControlPoint
	replayIndex int
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the sketch clock.
func WithClock(c *Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithIDGenerator sets the stroke and group ID source.
func WithIDGenerator(g IDGenerator) Option {
	return func(e *Engine) { e.ids = g }
}

// WithGestureDetector sets the straight-edge gesture detector.
func WithGestureDetector(g GestureDetector) Option {
	return func(e *Engine) { e.gesture = g }
}

// WithHaptics sets the haptics sink.
func WithHaptics(h Haptics) Option {
	return func(e *Engine) { e.haptics = h }
}

// WithStrokeSink sets where finalized strokes go.
func WithStrokeSink(s StrokeSink) Option {
	return func(e *Engine) { e.sink = s }
}

// WithSettings replaces the tunables. Non-positive counts, scales, sizes and
// durations fall back to their defaults.
func WithSettings(s Settings) Option {
	return func(e *Engine) {
		d := DefaultSettings()
		if s.DrawInFrames <= 0 {
			s.DrawInFrames = d.DrawInFrames
		}
		if s.MinPointsPerFrame <= 0 {
			s.MinPointsPerFrame = d.MinPointsPerFrame
		}
		if s.CanvasScale <= 0 {
			s.CanvasScale = d.CanvasScale
		}
		if s.SphereMinBrushSize <= 0 {
			s.SphereMinBrushSize = d.SphereMinBrushSize
		}
		if s.DisallowedPulseSeconds <= 0 {
			s.DisallowedPulseSeconds = d.DisallowedPulseSeconds
		}
		e.settings = s
	}
}

// WithProxyBrush sets the brush used to preview straight edges for brushes
// that need a proxy.
func WithProxyBrush(b stroke.Brush) Option {
	return func(e *Engine) { e.proxyBrush = b }
}

// New creates an engine driving pool.
func New(pool *pointer.Pool, opts ...Option) *Engine {
	e := &Engine{
		pool:       pool,
		clock:      NewClock(),
		settings:   DefaultSettings(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		ids:        UUIDv7Generator{},
		queue:      newInputQueue(),
		proxyBrush: stroke.NewBrush("StraightEdgeProxy"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Pool returns the pointer pool.
func (e *Engine) Pool() *pointer.Pool { return e.pool }

// Clock returns the sketch clock.
func (e *Engine) Clock() *Clock { return e.clock }

// State returns the current state.
func (e *Engine) State() State { return e.state }

// Frame returns the number of completed Ticks.
func (e *Engine) Frame() int64 { return e.frame }

// IsCreatingStroke reports whether the user is currently drawing.
func (e *Engine) IsCreatingStroke() bool { return e.state == StateRecordingInput }

// IsProcessingStraightEdge reports whether a straight-edge replay is running.
func (e *Engine) IsProcessingStraightEdge() bool {
	return e.state == StateProcessingStraightEdge
}

// StraightEdgeShape returns the shape the next straight edge draws.
func (e *Engine) StraightEdgeShape() creator.Shape { return e.shape }

// Enqueue delivers input from any goroutine. It is applied on the next Tick.
func (e *Engine) Enqueue(in Input) bool { return e.queue.Enqueue(in) }

// Close rejects further queued input.
func (e *Engine) Close() { e.queue.Close() }

// EnableLine presses or releases the draw button. It takes effect on the
// next Tick. While input is being eaten, presses are ignored and each
// release uses up one eaten frame.
func (e *Engine) EnableLine(enable bool) {
	if e.eatFrames > 0 {
		if !enable {
			e.eatFrames--
		}
		e.lineEnabled = false
		return
	}
	e.lineEnabled = enable
}

// IsLineEnabled reports the draw button state after eating.
func (e *Engine) IsLineEnabled() bool { return e.lineEnabled }

// EatLineEnabledInput ignores the draw button until it has been released,
// e.g. after the button was used to dismiss a menu.
func (e *Engine) EatLineEnabledInput() { e.eatFrames = eatInputFrames }

// SetStraightEdgeEnabled toggles straight-edge mode for the next stroke.
func (e *Engine) SetStraightEdgeEnabled(enabled bool) { e.straightEdge = enabled }

// StraightEdgeEnabled reports whether straight-edge mode is on.
func (e *Engine) StraightEdgeEnabled() bool { return e.straightEdge }

// SetMainPointerPose moves the main pointer; replicas follow.
func (e *Engine) SetMainPointerPose(p geom.Pose) { e.pool.SetMainPose(p) }

// SetPressure sets the pressure of every active pointer.
func (e *Engine) SetPressure(f float32) { e.pool.SetPressure(f) }

// SetSymmetryMode switches symmetry. It fails, leaving the mode unchanged,
// when the pool has too few user pointers.
func (e *Engine) SetSymmetryMode(m symmetry.Mode) error {
	if err := e.pool.SetSymmetryMode(m); err != nil {
		e.logger.Warn("symmetry mode rejected", "mode", m.String(), "error", err)
		return err
	}
	e.publish(Event{Kind: EventSymmetryChanged, Mode: m})
	return nil
}

// SetSymmetryWidget moves the symmetry widget.
func (e *Engine) SetSymmetryWidget(w symmetry.Widget) { e.pool.SetWidget(w) }

// SetActiveBrush sets the brush on every active pointer.
func (e *Engine) SetActiveBrush(b stroke.Brush) {
	e.pool.SetBrush(b)
	e.publish(Event{Kind: EventBrushChanged, Brush: b})
}

// SetActiveColor sets the color on every active pointer.
func (e *Engine) SetActiveColor(c stroke.Color) {
	e.pool.SetColor(c)
	e.publish(Event{Kind: EventColorChanged, Color: c})
}

// SetActiveSize01 sets the normalized brush size on every active pointer.
func (e *Engine) SetActiveSize01(f float32) {
	e.pool.SetSize01(f)
	e.publish(Event{Kind: EventSizeChanged, Size: e.pool.Main().Size()})
}

// Tick advances one frame.
func (e *Engine) Tick(ctx context.Context, dt float64) {
	e.clock.Advance(dt)
	e.applyInput()

	if e.state != StateProcessingStraightEdge {
		now := e.clock.Now()
		for _, s := range e.pool.Active() {
			if s.IsCreatingStroke() {
				s.UpdateLine(now, false)
			}
		}
	}

	e.updateLine(ctx)
	e.frame++
}

func (e *Engine) applyInput() {
	for _, in := range e.queue.Drain() {
		switch in.Kind {
		case InputPose:
			e.SetMainPointerPose(in.Pose)
		case InputDraw:
			e.EnableLine(in.Enabled)
		case InputPressure:
			e.SetPressure(in.Pressure)
		}
	}
}

// playbackAvailable reports whether enough transient slots are free for
// every active pointer's stroke to be played back later.
func (e *Engine) playbackAvailable() bool {
	return e.pool.NumActive() <= e.pool.FreeTransient()
}

func (e *Engine) updateLine(ctx context.Context) {
	available := e.playbackAvailable()

	switch e.state {
	case StateWaitingForInput:
		if e.lineEnabled {
			if available {
				e.beginRecording()
			} else {
				e.drawDisallowed()
			}
		}

	case StateRecordingInput:
		if e.lineEnabled {
			if available {
				if e.straightEdge {
					e.checkGestures(ctx)
				}
				if !e.straightEdge && e.anyLineShouldEnd() {
					e.finalizeLine(ctx, false)
					e.initiateLine(true)
				}
			} else if !e.straightEdge {
				e.drawDisallowed()
				e.finalizeLine(ctx, false)
				e.setState(StateWaitingForInput)
			}
			return
		}

		switch {
		case e.proxyActive && available:
			cps := e.pool.Main().ControlPoints()
			e.finalizeLine(ctx, true)
			e.beginReplay(cps)
		case e.proxyActive:
			e.drawDisallowed()
			e.proxyActive = false
			e.finalizeLine(ctx, true)
			e.setState(StateWaitingForInput)
		default:
			e.finalizeLine(ctx, false)
			e.setState(StateWaitingForInput)
		}

	case StateProcessingStraightEdge:
		e.stepReplay(ctx, !available)
	}
}

func (e *Engine) beginRecording() {
	if e.straightEdge {
		e.setShape(creator.ShapeLine)
		if e.gesture != nil {
			e.gesture.Begin(e.pool.Main().Pose().Position)
		}
	}
	e.initiateLine(false)
	e.setState(StateRecordingInput)
}

func (e *Engine) anyLineShouldEnd() bool {
	for _, s := range e.pool.Active() {
		if s.ShouldLineEnd() {
			return true
		}
	}
	return false
}

// checkGestures cycles the straight-edge shape when the gesture succeeds
// and restarts the line from the original straight-edge start.
func (e *Engine) checkGestures(ctx context.Context) {
	if e.gesture == nil {
		return
	}
	complete, succeeded := e.gesture.Update(e.pool.Main().Pose().Position)
	if !complete {
		return
	}
	if succeeded {
		e.finalizeLine(ctx, true)
		e.setShape(e.shape.Next())
		e.pool.SetMainPose(e.pool.Main().StraightEdgeStart())
		e.initiateLine(false)
	}
	e.gesture.Reset()
}

// initiateLine opens a line on every active slot. A continuation keeps the
// current group ID.
func (e *Engine) initiateLine(continuation bool) {
	if !continuation || e.groupID == "" {
		e.groupID = e.ids.Generate()
	}

	var override *stroke.Brush
	if e.straightEdge {
		e.proxyActive = e.pool.Main().Brush().NeedsStraightEdgeProxy
		for _, s := range e.pool.Active() {
			s.MarkStraightEdgeStart()
		}
		if e.proxyActive {
			override = &e.proxyBrush
		}
	}

	now := e.clock.Now()
	for _, s := range e.pool.Active() {
		var c creator.Creator
		if e.straightEdge {
			c = creator.New(e.shape, s.Pose(), e.clock, s.Size(), e.settings.CanvasScale, e.settings.SphereMinBrushSize)
		}
		s.BeginLine(c, override, e.pool.Factory())
		s.SetControlPoint(s.Pose(), true, now)
	}

	e.logger.Debug("line initiated",
		"group", e.groupID,
		"pointers", e.pool.NumActive(),
		"straight_edge", e.straightEdge,
		"shape", e.shape.String(),
		"proxy", e.proxyActive,
		"continuation", continuation,
	)
}

// finalizeLine closes the open line on every active slot, keeping those
// worth keeping and writing them to the sink as one group.
func (e *Engine) finalizeLine(ctx context.Context, discard bool) {
	var head *stroke.Stroke
	for _, s := range e.pool.Active() {
		if !s.IsCreatingStroke() {
			continue
		}
		if discard || s.ShouldDiscard() {
			s.EndLine(true, stroke.FlagNone)
			continue
		}

		flags := stroke.FlagNone
		if head != nil {
			flags |= stroke.FlagIsGroupContinue
		}
		st := s.EndLine(false, flags)
		st.ID = e.ids.Generate()
		st.GroupID = e.groupID
		st.BrushScale = e.settings.CanvasScale

		if head == nil {
			head = st
		} else if st.HeadTimestampMs() != head.HeadTimestampMs() {
			e.logger.Warn("group continuation timestamp mismatch",
				"group", e.groupID,
				"head_ms", head.HeadTimestampMs(),
				"stroke_ms", st.HeadTimestampMs(),
			)
		}
		e.writeStroke(ctx, st)
	}
}

// writeStroke hands s to the sink. Failures are logged and drawing
// continues; a lost stroke must not stall the frame loop.
func (e *Engine) writeStroke(ctx context.Context, s *stroke.Stroke) {
	if e.sink != nil {
		if err := e.sink.WriteStroke(ctx, *s); err != nil {
			e.logger.Error("stroke write failed",
				"error", err,
				"stroke", s.ID,
				"group", s.GroupID,
				"points", len(s.ControlPoints),
			)
		}
	}
	e.logger.Debug("stroke finalized",
		"stroke", s.ID,
		"group", s.GroupID,
		"slot", s.Slot,
		"points", len(s.ControlPoints),
		"flags", uint32(s.Flags),
	)
	e.publish(Event{Kind: EventStrokeFinalized, Stroke: s})
}

// beginReplay starts redrawing a proxy straight edge with the real brush.
// Pointer attributes are saved here and restored when the replay ends.
func (e *Engine) beginReplay(cps []controlpoint.ControlPoint) {
	e.proxyActive = false
	if len(cps) == 0 {
		e.setState(StateWaitingForInput)
		return
	}
	e.replay = cps
	e.replayIndex = 0

	main := e.pool.Main().Pose()
	main.Position = cps[0].Position
	e.pool.SetMainPose(main)

	e.pool.StoreBrushInfo()
	now := e.clock.Now()
	for _, s := range e.pool.Active() {
		s.BeginLine(nil, nil, e.pool.Factory())
		s.SetPressure(e.settings.StraightEdgePressure)
		s.SetControlPoint(s.Pose(), true, now)
	}
	e.setState(StateProcessingStraightEdge)
}

// stepReplay feeds the next batch of recorded points. terminate cuts the
// replay short and keeps what has been drawn so far.
func (e *Engine) stepReplay(ctx context.Context, terminate bool) {
	perFrame := max(len(e.replay)/e.settings.DrawInFrames, e.settings.MinPointsPerFrame)
	now := e.clock.Now()

	for p := 0; p < perFrame && e.replayIndex < len(e.replay); p++ {
		e.pool.SetMainPose(e.replay[e.replayIndex].Pose())
		for _, s := range e.pool.Active() {
			s.UpdateLine(now, true)
		}
		e.replayIndex++
	}

	if terminate || e.replayIndex >= len(e.replay) {
		if terminate {
			e.logger.Warn("straight edge replay cut short",
				"drawn", e.replayIndex,
				"total", len(e.replay),
			)
		}
		e.finalizeLine(ctx, false)
		e.pool.RestoreBrushInfo()
		e.replay = nil
		e.replayIndex = 0
		e.setState(StateWaitingForInput)
	}
}

func (e *Engine) drawDisallowed() {
	if e.haptics != nil {
		e.haptics.Pulse(e.settings.DisallowedPulseSeconds)
	}
	e.logger.Debug("draw disallowed",
		"active", e.pool.NumActive(),
		"free_transient", e.pool.FreeTransient(),
	)
	e.publish(Event{Kind: EventDrawDisallowed})
}

func (e *Engine) setState(s State) {
	if s == e.state {
		return
	}
	prev := e.state
	e.state = s
	e.logger.Debug("state changed", "from", prev.String(), "to", s.String(), "frame", e.frame)
	e.publish(Event{Kind: EventStateChanged, From: prev, To: s})
}

func (e *Engine) setShape(s creator.Shape) {
	if s == e.shape {
		return
	}
	e.shape = s
	e.publish(Event{Kind: EventShapeChanged, Shape: s})
}
