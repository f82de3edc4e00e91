package interaction

import (
	"math/rand"
	"testing"

	"github.com/1broseidon/framewm/internal/decor"
	"github.com/1broseidon/framewm/internal/platform"
)

var testLimits = Limits{TopMargin: 10, MinWidth: 21, MinHeight: 21}

func TestPhaseFor(t *testing.T) {
	tests := []struct {
		role  decor.Role
		phase Phase
		ok    bool
	}{
		{decor.RoleTitle, PhaseDragging, true},
		{decor.RoleLeft, PhaseResizingLeft, true},
		{decor.RoleRight, PhaseResizingRight, true},
		{decor.RoleBottom, PhaseResizingBottom, true},
		{decor.RoleCornerLeft, PhaseIdle, false},
		{decor.RoleFrame, PhaseIdle, false},
		{decor.RoleApplication, PhaseIdle, false},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			got, ok := PhaseFor(tt.role)
			if got != tt.phase || ok != tt.ok {
				t.Errorf("PhaseFor(%s) = %s, %v; want %s, %v", tt.role, got, ok, tt.phase, tt.ok)
			}
		})
	}
}

func TestBegin_SinglePhase(t *testing.T) {
	var s State
	frame := platform.Rect{X: 100, Y: 100, Width: 300, Height: 200}
	if !s.Begin(PhaseDragging, platform.Point{X: 150, Y: 105}, frame, platform.Rect{}) {
		t.Fatal("Begin from idle should succeed")
	}
	if s.Begin(PhaseResizingRight, platform.Point{}, frame, platform.Rect{}) {
		t.Fatal("Begin while dragging should be refused")
	}
	if s.Phase != PhaseDragging {
		t.Fatalf("Phase = %s, want dragging", s.Phase)
	}
	if s.Begin(PhaseIdle, platform.Point{}, frame, platform.Rect{}) {
		t.Fatal("Begin(PhaseIdle) should be refused")
	}
}

func TestEnd_Idempotent(t *testing.T) {
	phases := []Phase{PhaseDragging, PhaseResizingLeft, PhaseResizingRight, PhaseResizingBottom}
	for _, p := range phases {
		t.Run(p.String(), func(t *testing.T) {
			var s State
			s.Begin(p, platform.Point{X: 1, Y: 1}, platform.Rect{Width: 50, Height: 50}, platform.Rect{})
			if !s.End() {
				t.Fatal("first End should report an active interaction")
			}
			if s.Active() || s.Phase != PhaseIdle {
				t.Fatalf("state not idle after End: %+v", s)
			}
			if s.End() {
				t.Fatal("second End should be a no-op")
			}
		})
	}
}

func TestStep_IdleIsNoop(t *testing.T) {
	var s State
	if _, ok := s.Step(platform.Point{X: 10, Y: 10}, testLimits); ok {
		t.Fatal("Step while idle should report false")
	}
}

func TestStep_ZeroDeltaKeepsGeometry(t *testing.T) {
	frames := []platform.Rect{
		{X: 100, Y: 100, Width: 300, Height: 200},
		{X: 0, Y: 10, Width: 5, Height: 5},
		{X: -20, Y: 13, Width: 21, Height: 21},
	}
	phases := []Phase{PhaseDragging, PhaseResizingLeft, PhaseResizingRight, PhaseResizingBottom}

	for _, frame := range frames {
		for _, p := range phases {
			var s State
			start := platform.Point{X: 400, Y: 300}
			s.Begin(p, start, frame, platform.Rect{})
			got, ok := s.Step(start, testLimits)
			if !ok || got != frame {
				t.Errorf("%s from %+v: Step(start) = %+v, want unchanged", p, frame, got)
			}
		}
	}
}

func TestStep_Drag(t *testing.T) {
	tests := []struct {
		name    string
		pointer platform.Point
		want    platform.Rect
	}{
		{"move right down", platform.Point{X: 170, Y: 130}, platform.Rect{X: 120, Y: 125, Width: 300, Height: 200}},
		{"move left up", platform.Point{X: 100, Y: 50}, platform.Rect{X: 50, Y: 45, Width: 300, Height: 200}},
		{"clamped at top margin", platform.Point{X: 150, Y: -500}, platform.Rect{X: 100, Y: 10, Width: 300, Height: 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s State
			s.Begin(PhaseDragging, platform.Point{X: 150, Y: 105}, platform.Rect{X: 100, Y: 100, Width: 300, Height: 200}, platform.Rect{})
			got, _ := s.Step(tt.pointer, testLimits)
			if got != tt.want {
				t.Errorf("Step(%+v) = %+v, want %+v", tt.pointer, got, tt.want)
			}
		})
	}
}

func TestStep_DragFromAboveMarginIsClamped(t *testing.T) {
	var s State
	frame := platform.Rect{X: 40, Y: 2, Width: 300, Height: 200}
	start := platform.Point{X: 60, Y: 5}
	s.Begin(PhaseDragging, start, frame, platform.Rect{})

	for _, p := range []platform.Point{start, {X: 80, Y: 0}, {X: 60, Y: 9}} {
		got, _ := s.Step(p, testLimits)
		if got.Y < testLimits.TopMargin {
			t.Errorf("Step(%+v) y = %d, above margin %d", p, got.Y, testLimits.TopMargin)
		}
	}
}

func TestStep_ResizeLeftAnchorsRightBoundary(t *testing.T) {
	frame := platform.Rect{X: 100, Y: 100, Width: 300, Height: 200}
	var s State
	s.Begin(PhaseResizingLeft, platform.Point{X: 100, Y: 150}, frame, platform.Rect{})

	for _, x := range []int{0, 50, 100, 200, 379, 390, 1000} {
		got, _ := s.Step(platform.Point{X: x, Y: 150}, testLimits)
		if got.X+got.Width != frame.X+frame.Width {
			t.Errorf("pointer x=%d: right boundary moved to %d", x, got.X+got.Width)
		}
		if got.Width < testLimits.MinWidth {
			t.Errorf("pointer x=%d: width %d below floor", x, got.Width)
		}
	}
}

func TestStep_ResizeFloors(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	phases := []Phase{PhaseResizingLeft, PhaseResizingRight, PhaseResizingBottom}
	frame := platform.Rect{X: 200, Y: 200, Width: 150, Height: 120}

	for _, p := range phases {
		var s State
		start := platform.Point{X: 300, Y: 300}
		s.Begin(p, start, frame, platform.Rect{})
		for i := 0; i < 500; i++ {
			pt := platform.Point{X: start.X + rng.Intn(2000) - 1000, Y: start.Y + rng.Intn(2000) - 1000}
			got, _ := s.Step(pt, testLimits)
			if got.Width < testLimits.MinWidth || got.Height < testLimits.MinHeight {
				t.Fatalf("%s: Step(%+v) = %+v below floor", p, pt, got)
			}
			if p != PhaseResizingBottom && got.Height != frame.Height {
				t.Fatalf("%s changed height: %+v", p, got)
			}
			if p == PhaseResizingBottom && (got.Width != frame.Width || got.X != frame.X) {
				t.Fatalf("%s changed horizontal geometry: %+v", p, got)
			}
		}
	}
}
