package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/typewall/audio"
	"github.com/lixenwraith/typewall/core"
	"github.com/lixenwraith/typewall/layout"
	"github.com/lixenwraith/typewall/render"
	"github.com/lixenwraith/typewall/session"
	"github.com/lixenwraith/typewall/status"
)

// app binds the session to one tcell screen: input in, frames out
type app struct {
	screen   tcell.Screen
	sess     *session.Controller
	renderer *render.Renderer
	clicks   *audio.Service
	registry *status.Registry
	logger   *log.Logger
	frame    time.Duration

	drag render.DragTracker
}

// run pumps events and redraws at the frame rate until quit
func (a *app) run() {
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)

	core.Go(func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	})

	ticker := time.NewTicker(a.frame)
	defer ticker.Stop()

	a.resize()
	a.draw()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !a.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			a.draw()
		}
	}
}

// handleEvent applies one event, false means quit
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.screen.Sync()
		a.resize()
	}
	return true
}

func (a *app) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyTab:
		a.sess.FocusNext()
		return true
	case tcell.KeyRune:
		return a.handleRune(ev.Rune())
	}
	return true
}

// handleRune applies a printable command key, false means quit
func (a *app) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case '+', '=':
		a.setCount(a.sess.Count() + 1)
	case '-', '_':
		a.setCount(a.sess.Count() - 1)
	case ']':
		a.setCount(a.sess.Count() * 2)
	case '[':
		a.setCount(a.sess.Count() / 2)
	case 'l':
		a.sess.SetLayout(a.sess.Layout().Next())
	case 'r':
		a.sess.Rearrange()
	case 't':
		a.renderer.SetTheme(render.NextTheme(a.renderer.Theme().Name))
	case '>', '.':
		a.sess.SetSpeed(a.sess.Speed() + 1)
	case '<', ',':
		a.sess.SetSpeed(a.sess.Speed() - 1)
	case ' ':
		a.sess.SetEnabled(!a.sess.Enabled())
	case 'n':
		if id := a.sess.Focused(); id != "" {
			if _, err := a.sess.NextSequence(id); err != nil {
				a.logger.Warn("next sequence failed", "window", id, "err", err)
			}
		}
	case 'x':
		if id := a.sess.Focused(); id != "" {
			if err := a.sess.Close(id); err != nil {
				a.logger.Warn("close failed", "window", id, "err", err)
			}
		}
	case 's':
		if a.clicks != nil {
			a.clicks.ToggleMute()
		}
	}
	return true
}

func (a *app) setCount(n int) {
	got := a.sess.SetCount(n)
	a.logger.Debug("count requested", "requested", n, "count", got)
}

func (a *app) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	a.pointer(x, y, ev.Buttons()&tcell.Button1 != 0)
}

// pointer implements focus on press, title drag to move, corner drag to resize
func (a *app) pointer(x, y int, pressed bool) {
	if !pressed {
		a.drag.End()
		return
	}

	if a.drag.Active() {
		var err error
		switch a.drag.Mode() {
		case render.DragMove:
			err = a.sess.OnPositionChange(a.drag.ID(), a.drag.Position(x, y))
		case render.DragResize:
			err = a.sess.OnSizeChange(a.drag.ID(), a.drag.Size(x, y))
		}
		if err != nil {
			// Window vanished mid-drag, e.g. the count shrank
			a.drag.End()
		}
		return
	}

	hit, ok := render.HitTest(a.sess.Windows(), x, y)
	if !ok {
		return
	}
	if err := a.sess.Focus(hit.ID); err != nil {
		return
	}
	a.drag.Start(hit, x, y)
}

func (a *app) resize() {
	w, h := a.screen.Size()
	vw, vh := render.Viewport(w, h)
	a.sess.SetViewport(layout.Viewport{Width: vw, Height: vh})
}

func (a *app) draw() {
	a.renderer.Draw(a.screen, render.Frame{
		Windows: a.sess.Windows(),
		Cats:    a.sess.Cats(),
		Status:  a.statusLine(),
	})
	a.screen.Show()
}

func (a *app) statusLine() string {
	s := a.sess.Stats()
	state := "typing"
	if !s.Enabled {
		state = "paused"
	}
	sound := "muted"
	if a.clicks != nil && a.clicks.Player() != nil && !a.clicks.IsDisabled() && !a.clicks.Player().IsMuted() {
		sound = "sound"
	}
	line := fmt.Sprintf("windows %d  live %d  speed %d  %s  %s  %s  %s",
		s.Total, s.Live, s.Speed, s.Mode, a.renderer.Theme().Name, state, sound)
	if s.Placeholders > 0 {
		line += fmt.Sprintf("  placeholders %d", s.Placeholders)
	}
	if s.Cats > 0 {
		line += fmt.Sprintf("  cats %d", s.Cats)
	}
	return line + "  " + a.registry.Format(status.TypewriterSteps) +
		"  [+-][] count  l layout  r rearrange  t theme  <> speed  space pause  q quit"
}
