// Package term is the tcell front end: it draws a scene.Stage scaled into
// the terminal and feeds key presses to an input.Poller.
package term

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/shmupcore/shmup/internal/input"
	"github.com/shmupcore/shmup/internal/render/scene"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleShot   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleEnemy  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
)

// HUD is the status line under the playfield.
type HUD struct {
	Score  int
	Health int
	Kills  int
	Paused bool
}

// Terminal owns the tcell screen.
type Terminal struct {
	screen        tcell.Screen
	poller        *input.Poller
	width, height float64 // playfield size
	log           *zap.Logger
	printer       *message.Printer

	quit     chan struct{}
	quitOnce sync.Once
}

// New wraps an initialised screen.
func New(screen tcell.Screen, poller *input.Poller, width, height float64, log *zap.Logger) *Terminal {
	screen.HideCursor()
	return &Terminal{
		screen:  screen,
		poller:  poller,
		width:   width,
		height:  height,
		log:     log,
		printer: message.NewPrinter(language.English),
		quit:    make(chan struct{}),
	}
}

// Start polls terminal events on its own goroutine until the screen is
// finalised.
func (t *Terminal) Start() {
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			t.Handle(ev)
		}
	}()
}

// Quit is closed when the player asks to leave.
func (t *Terminal) Quit() <-chan struct{} { return t.quit }

// Handle applies one terminal event.
func (t *Terminal) Handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		t.handleKey(ev.Key(), ev.Rune(), ev.Modifiers(), ev.When())
	case *tcell.EventResize:
		t.screen.Sync()
	}
}

func (t *Terminal) handleKey(key tcell.Key, r rune, mod tcell.ModMask, at time.Time) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.quitOnce.Do(func() { close(t.quit) })
		return
	case tcell.KeyUp:
		t.poller.Press(input.Up, at)
	case tcell.KeyDown:
		t.poller.Press(input.Down, at)
	case tcell.KeyLeft:
		t.poller.Press(input.Left, at)
	case tcell.KeyRight:
		t.poller.Press(input.Right, at)
	case tcell.KeyRune:
		t.handleRune(r, mod, at)
	}
}

// Uppercase shoot keys fire the focused shot; most terminals report shift
// only through the rune.
func (t *Terminal) handleRune(r rune, mod tcell.ModMask, at time.Time) {
	focus := mod&tcell.ModShift != 0
	switch r {
	case 'q':
		t.quitOnce.Do(func() { close(t.quit) })
	case 'w':
		t.poller.Press(input.Up, at)
	case 's':
		t.poller.Press(input.Down, at)
	case 'a':
		t.poller.Press(input.Left, at)
	case 'd':
		t.poller.Press(input.Right, at)
	case 'z', ' ':
		t.poller.Press(input.Shoot, at)
		if focus {
			t.poller.Press(input.Focus, at)
		} else {
			t.poller.Release(input.Focus)
		}
	case 'Z':
		t.poller.Press(input.Shoot, at)
		t.poller.Press(input.Focus, at)
	case 'x':
		t.poller.Press(input.Bomb, at)
	case 'p':
		t.poller.Press(input.Pause, at)
	}
}

// Draw renders every sprite on st and the HUD line.
func (t *Terminal) Draw(st *scene.Stage, hud HUD) {
	t.screen.Clear()
	cols, rows := t.screen.Size()
	fieldRows := rows - 1
	if cols <= 0 || fieldRows <= 0 {
		t.screen.Show()
		return
	}
	st.Each(func(s *scene.Sprite) {
		cx, cy, ok := t.cell(s.X(), s.Y(), cols, fieldRows)
		if !ok {
			return
		}
		glyph, _ := utf8.DecodeRuneInString(s.Frame())
		t.screen.SetContent(cx, cy, glyph, nil, styleFor(s.Animation().Name))
	})

	line := t.printer.Sprintf(" score %d  health %d  kills %d", hud.Score, hud.Health, hud.Kills)
	if hud.Paused {
		line += "  [paused]"
	}
	t.drawLine(rows-1, line, cols)
	t.screen.Show()
}

// cell maps a playfield position to a terminal cell.
func (t *Terminal) cell(x, y float64, cols, rows int) (int, int, bool) {
	if x < 0 || y < 0 || x > t.width || y > t.height {
		return 0, 0, false
	}
	cx := min(int(x/t.width*float64(cols)), cols-1)
	cy := min(int(y/t.height*float64(rows)), rows-1)
	return cx, cy, true
}

func (t *Terminal) drawLine(row int, text string, cols int) {
	col := 0
	for _, r := range text {
		if col >= cols {
			break
		}
		t.screen.SetContent(col, row, r, nil, styleHUD)
		col++
	}
	for ; col < cols; col++ {
		t.screen.SetContent(col, row, ' ', nil, styleHUD)
	}
}

func styleFor(anim string) tcell.Style {
	switch {
	case strings.HasPrefix(anim, "player"):
		return stylePlayer
	case strings.HasPrefix(anim, "projectile"):
		return styleShot
	default:
		return styleEnemy
	}
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.screen.Fini()
}
