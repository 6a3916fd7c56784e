package marble

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestItemTest(t *testing.T) {
	w := NewWorld()
	w.AddBall(mgl32.Vec3{}, 0.25)
	w.AddItem(mgl32.Vec3{5, 0, 0}, ITEM_COIN)
	w.AddItem(mgl32.Vec3{0.3, 0, 0}, ITEM_COIN)

	h, p := w.ItemTest(0.15)

	if h != &w.Items[1] {
		t.Fatalf("ItemTest returned %v, want the nearby item", h)
	}
	if !vec3Equal(p, mgl32.Vec3{0.3, 0, 0}, 1e-5) {
		t.Errorf("item position = %v, want (0.3 0 0)", p)
	}
}

// Taken items are invisible, never returned again.
func TestItemTestSkipsTaken(t *testing.T) {
	w := NewWorld()
	w.AddBall(mgl32.Vec3{}, 0.25)
	w.AddItem(mgl32.Vec3{0.3, 0, 0}, ITEM_COIN)

	h, _ := w.ItemTest(0.15)
	if h == nil {
		t.Fatal("ItemTest missed a touching item")
	}
	h.T = ITEM_NONE

	if h, _ := w.ItemTest(0.15); h != nil {
		t.Errorf("ItemTest returned a taken item")
	}
}

func TestItemTestOutOfReach(t *testing.T) {
	w := NewWorld()
	w.AddBall(mgl32.Vec3{}, 0.25)
	w.AddItem(mgl32.Vec3{0.5, 0, 0}, ITEM_COIN)

	if h, _ := w.ItemTest(0.15); h != nil {
		t.Errorf("ItemTest returned an item out of reach")
	}
}

func TestGoalTest(t *testing.T) {
	w := NewWorld()
	w.AddGoal(mgl32.Vec3{}, 1)

	tests := []struct {
		name string
		p    mgl32.Vec3
		r    float32
		want bool
	}{
		{name: "inside", p: mgl32.Vec3{0, 0.5, 0}, r: 0.25, want: true},
		{name: "at base", p: mgl32.Vec3{0, 0, 0}, r: 0.25, want: true},
		{name: "overlapping rim", p: mgl32.Vec3{0.8, 0.5, 0}, r: 0.25, want: false},
		{name: "above", p: mgl32.Vec3{0, 2, 0}, r: 0.25, want: false},
		{name: "below", p: mgl32.Vec3{0, -0.5, 0}, r: 0.25, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w.Balls = w.Balls[:0]
			w.AddBall(tt.p, tt.r)

			z, _ := w.GoalTest(0)
			if (z != nil) != tt.want {
				t.Errorf("GoalTest at %v = %v, want %v", tt.p, z != nil, tt.want)
			}
		})
	}
}

func TestJumpTest(t *testing.T) {
	w := NewWorld()
	w.AddJump(mgl32.Vec3{}, mgl32.Vec3{10, 0, 0}, 1)

	tests := []struct {
		name     string
		p        mgl32.Vec3
		want     int
		wantDest mgl32.Vec3
	}{
		{
			name:     "fully enclosed",
			p:        mgl32.Vec3{0.1, 0, 0},
			want:     JUMP_INSIDE,
			wantDest: mgl32.Vec3{10.1, 0, 0},
		},
		{
			name: "on the border",
			p:    mgl32.Vec3{0.95, 0, 0},
			want: JUMP_BORDER,
		},
		{
			name: "outside",
			p:    mgl32.Vec3{2, 0, 0},
			want: JUMP_OUTSIDE,
		},
		{
			name: "too high",
			p:    mgl32.Vec3{0.1, 1.5, 0},
			want: JUMP_OUTSIDE,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w.Balls = w.Balls[:0]
			w.AddBall(tt.p, 0.1)

			got, dest := w.JumpTest(0)
			if got != tt.want {
				t.Fatalf("JumpTest at %v = %v, want %v", tt.p, got, tt.want)
			}
			if got == JUMP_INSIDE && !vec3Equal(dest, tt.wantDest, 1e-5) {
				t.Errorf("destination = %v, want %v", dest, tt.wantDest)
			}
		})
	}
}

// switchWorld builds a four-path cycle, all enabled, with one switch
// rooted at the cycle; t0 is its default countdown (0 for untimed).
func switchWorld(t0 float32) *World {
	w := NewWorld()

	w.AddPath(mgl32.Vec3{0, 0, 0}, 1, 1, false)
	w.AddPath(mgl32.Vec3{1, 0, 0}, 1, 2, false)
	w.AddPath(mgl32.Vec3{1, 0, 1}, 1, 3, false)
	w.AddPath(mgl32.Vec3{0, 0, 1}, 1, 0, false)

	w.AddSwitch(mgl32.Vec3{}, 1, 0, t0, true, false)

	return w
}

func TestSwitchCycleToggle(t *testing.T) {
	w := switchWorld(5)
	w.AddBall(mgl32.Vec3{0, 0.2, 0}, 0.25)

	if !w.SwitchTest(0) {
		t.Fatal("SwitchTest missed the entering ball")
	}

	x := &w.Switches[0]
	if x.F {
		t.Errorf("switch still in default state after toggle")
	}
	if x.T != 5 {
		t.Errorf("switch countdown = %v, want 5", x.T)
	}
	for i := range w.Paths {
		if w.Paths[i].F {
			t.Errorf("path %d still enabled after toggle", i)
		}
	}

	// Five seconds later the cycle reverts to its default state.
	for i := 0; i < 20; i++ {
		w.Step(mgl32.Vec3{}, 0.25, 0, nil)
	}

	if !x.F {
		t.Errorf("switch did not revert after the countdown")
	}
	if x.T != 0 {
		t.Errorf("switch countdown after expiry = %v, want 0", x.T)
	}
	for i := range w.Paths {
		if !w.Paths[i].F {
			t.Errorf("path %d not re-enabled after the countdown", i)
		}
	}
}

// A timed switch locked away from its default state ignores re-entry
// until the countdown reverts it.
func TestSwitchLockedWhileCountingDown(t *testing.T) {
	w := switchWorld(5)
	w.AddBall(mgl32.Vec3{0, 0.2, 0}, 0.25)

	if !w.SwitchTest(0) {
		t.Fatal("SwitchTest missed the entering ball")
	}
	if w.SwitchTest(0) {
		t.Errorf("SwitchTest toggled a counting-down switch again")
	}
}

// An untimed switch debounces on the entered flag: staying inside
// toggles at most once, leaving re-arms it.
func TestSwitchEnteredDebounce(t *testing.T) {
	w := switchWorld(0)
	w.AddBall(mgl32.Vec3{0, 0.2, 0}, 0.25)

	if !w.SwitchTest(0) {
		t.Fatal("SwitchTest missed the entering ball")
	}
	if w.SwitchTest(0) {
		t.Errorf("stationary ball toggled the switch twice")
	}

	// Leave and re-enter: the switch toggles again.
	w.Balls[0].P = mgl32.Vec3{5, 0.2, 0}
	if w.SwitchTest(0) {
		t.Errorf("leaving the cylinder reported a toggle")
	}

	w.Balls[0].P = mgl32.Vec3{0, 0.2, 0}
	if !w.SwitchTest(0) {
		t.Errorf("re-entering did not toggle the switch")
	}
}

// Invisible switches toggle silently.
func TestSwitchInvisible(t *testing.T) {
	w := switchWorld(0)
	w.Switches[0].I = true
	w.AddBall(mgl32.Vec3{0, 0.2, 0}, 0.25)

	if w.SwitchTest(0) {
		t.Errorf("invisible switch reported a visible toggle")
	}
	if w.Switches[0].F {
		t.Errorf("invisible switch did not toggle its state")
	}
}
