package term

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/shmupcore/shmup/internal/data"
	"github.com/shmupcore/shmup/internal/input"
	"github.com/shmupcore/shmup/internal/render/scene"
	"go.uber.org/zap"
)

var t0 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func newTerminal(t *testing.T, cols, rows int) (*Terminal, tcell.SimulationScreen, *input.Poller) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(cols, rows)
	poller := input.NewPoller(100 * time.Millisecond)
	term := New(screen, poller, 600, 600, zap.NewNop())
	t.Cleanup(term.Close)
	return term, screen, poller
}

func rowText(screen tcell.SimulationScreen, row, cols int) string {
	var b strings.Builder
	for x := 0; x < cols; x++ {
		r, _, _, _ := screen.GetContent(x, row)
		b.WriteRune(r)
	}
	return b.String()
}

func TestDrawScalesSprites(t *testing.T) {
	term, screen, _ := newTerminal(t, 60, 31)
	catalog := data.NewAnimationCatalog(
		&data.Animation{Name: "playerIdle", Frames: []string{"A"}},
		&data.Animation{Name: "fairy", Frames: []string{"v"}},
	)
	st := scene.NewStage(catalog, 600, 600, 1)
	for _, s := range []struct {
		anim string
		x, y float64
	}{{"playerIdle", 300, 540}, {"fairy", 0, 0}, {"fairy", 700, 10}} {
		h, err := st.NewHandle(s.anim, s.x, s.y)
		if err != nil {
			t.Fatal(err)
		}
		st.Add(h)
	}

	term.Draw(st, HUD{Score: 12345, Health: 1, Kills: 3, Paused: true})

	if r, _, style, _ := screen.GetContent(30, 27); r != 'A' || style != stylePlayer {
		t.Errorf("expected player glyph at (30,27), got %q", r)
	}
	if r, _, _, _ := screen.GetContent(0, 0); r != 'v' {
		t.Errorf("expected enemy glyph at origin, got %q", r)
	}
	hud := rowText(screen, 30, 60)
	for _, want := range []string{"12,345", "health 1", "kills 3", "[paused]"} {
		if !strings.Contains(hud, want) {
			t.Errorf("expected HUD to contain %q, got %q", want, hud)
		}
	}
}

func TestKeysFeedPoller(t *testing.T) {
	term, _, poller := newTerminal(t, 20, 10)

	term.handleKey(tcell.KeyLeft, 0, tcell.ModNone, t0)
	term.handleKey(tcell.KeyRune, 'Z', tcell.ModNone, t0)
	term.handleKey(tcell.KeyRune, 'p', tcell.ModNone, t0)

	s := poller.Snapshot(t0)
	for _, a := range []input.Action{input.Left, input.Shoot, input.Focus, input.Pause} {
		if !s.Held(a) {
			t.Errorf("expected %s held", a)
		}
	}

	term.handleKey(tcell.KeyRune, 'z', tcell.ModNone, t0)
	if poller.Snapshot(t0).Held(input.Focus) {
		t.Error("expected lowercase shoot to drop focus")
	}
}

func TestQuitKeys(t *testing.T) {
	term, _, _ := newTerminal(t, 20, 10)
	term.handleKey(tcell.KeyEscape, 0, tcell.ModNone, t0)
	term.handleKey(tcell.KeyRune, 'q', tcell.ModNone, t0)
	select {
	case <-term.Quit():
	default:
		t.Fatal("expected quit channel closed")
	}
}

func TestSilentSound(t *testing.T) {
	s := NewSound(false, zap.NewNop())
	if s.Enabled() {
		t.Fatal("expected disabled sound")
	}
	s.Blip(880)
	s.Close()
}
