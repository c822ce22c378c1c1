package preview

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/seraph/internal/wing"
	"github.com/Faultbox/seraph/pkg/math"
)

func newScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(width, height)
	t.Cleanup(screen.Fini)
	return screen
}

// glyphs counts every rune drawn above the status line.
func glyphs(screen tcell.Screen) map[rune]int {
	width, height := screen.Size()
	counts := make(map[rune]int)
	for y := 0; y < height-1; y++ {
		for x := 0; x < width; x++ {
			r, _, _, _ := screen.GetContent(x, y)
			if r != ' ' && r != 0 {
				counts[r]++
			}
		}
	}
	return counts
}

func statusLine(screen tcell.Screen) string {
	width, height := screen.Size()
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := screen.GetContent(x, height-1)
		b.WriteRune(r)
	}
	return b.String()
}

func TestNewPlacesEveryLayer(t *testing.T) {
	p := New(Options{Seed: 1, FeathersPerLayer: 20})

	if got := len(p.Layers()); got != 4 {
		t.Fatalf("layers = %d, want 4", got)
	}
	if got := p.Count(); got != 80 {
		t.Errorf("Count() = %d, want 80", got)
	}
}

func TestDrawPlotsEveryLayer(t *testing.T) {
	screen := newScreen(t, 100, 40)
	p := New(Options{Seed: 1, FeathersPerLayer: 30})
	p.Draw(screen)

	counts := glyphs(screen)
	for _, g := range []rune{'o', '#', '*', '+'} {
		if counts[g] == 0 {
			t.Errorf("no %q drawn", g)
		}
	}
	if counts['.'] != 0 {
		t.Errorf("outline drawn while disabled")
	}

	status := statusLine(screen)
	for _, want := range []string{"seed 1", "feathers 120", "reconciled"} {
		if !strings.Contains(status, want) {
			t.Errorf("status %q does not contain %q", status, want)
		}
	}
}

func TestDrawOutline(t *testing.T) {
	screen := newScreen(t, 100, 40)
	p := New(Options{Seed: 1, FeathersPerLayer: 5, Outline: true})
	p.Draw(screen)

	if glyphs(screen)['.'] == 0 {
		t.Error("outline not drawn")
	}
}

func TestDrawTinyScreen(t *testing.T) {
	screen := newScreen(t, 1, 1)
	p := New(Options{Seed: 1, FeathersPerLayer: 5})
	p.Draw(screen) // must not panic
}

func TestFitKeepsPointsOnScreen(t *testing.T) {
	var b rect
	b.empty = true
	b.add(math.Vec2{X: -3, Y: -16})
	b.add(math.Vec2{X: 15, Y: 2})

	proj := fit(b, 80, 24)
	tests := []struct {
		name   string
		pt     math.Vec3
		wantX  int
		wantY  int
		anyPos bool
	}{
		{name: "min x max z", pt: math.Vec3{X: -3, Z: 2}, wantX: 0, wantY: 0},
		{name: "far outside", pt: math.Vec3{X: 1000, Z: -1000}, wantX: 79, wantY: 23},
		{name: "inside", pt: math.Vec3{X: 5, Z: -5}, anyPos: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := proj.cell(tt.pt)
			if x < 0 || x >= 80 || y < 0 || y >= 24 {
				t.Fatalf("cell (%d, %d) off screen", x, y)
			}
			if !tt.anyPos && (x != tt.wantX || y != tt.wantY) {
				t.Errorf("cell = (%d, %d), want (%d, %d)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestRunHandlesKeys(t *testing.T) {
	screen := newScreen(t, 100, 40)
	p := New(Options{Seed: 7, FeathersPerLayer: 10})

	screen.InjectKey(tcell.KeyRune, 'r', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'm', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'o', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	Run(screen, p)

	opts := p.Options()
	if opts.Seed != 8 {
		t.Errorf("seed = %d, want 8", opts.Seed)
	}
	if opts.Mode != wing.Literal {
		t.Errorf("mode = %v, want literal", opts.Mode)
	}
	if !opts.Outline {
		t.Error("outline not toggled")
	}
}

func TestRunQuitsOnEscape(t *testing.T) {
	screen := newScreen(t, 40, 20)
	p := New(Options{Seed: 1, FeathersPerLayer: 3})

	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	Run(screen, p)

	if p.Options().Seed != 1 {
		t.Error("escape changed the wing")
	}
}

func TestToggleModeRoundTrip(t *testing.T) {
	p := New(Options{Seed: 1, FeathersPerLayer: 3})
	p.ToggleMode()
	p.ToggleMode()
	if p.Options().Mode != wing.Reconciled {
		t.Errorf("mode = %v, want reconciled", p.Options().Mode)
	}
}
