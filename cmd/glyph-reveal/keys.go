package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/glyph-reveal/engine"
)

// translateKey maps a key press to an engine event
// Esc, q and Ctrl+C quit; r restarts
func translateKey(ev *tcell.EventKey) (engine.Event, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return engine.Quit, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return engine.Quit, true
		case 'r', 'R':
			return engine.Restart, true
		}
	}
	return engine.Event{}, false
}

// pollEvents forwards translated key presses until the screen is finalized
// Sends never block: a full channel drops the key
func pollEvents(screen tcell.Screen, events chan<- engine.Event) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if e, ok := translateKey(ev); ok {
				select {
				case events <- e:
				default:
				}
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}
