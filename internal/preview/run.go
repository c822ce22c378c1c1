package preview

import "github.com/gdamore/tcell/v2"

// Run draws p and handles keys until q, Escape or Ctrl-C. The caller owns
// screen and must have initialised it.
func Run(screen tcell.Screen, p *Preview) {
	p.Draw(screen)
	screen.Show()

	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			// screen finalised
			return
		case *tcell.EventKey:
			if !handleKey(p, ev) {
				return
			}
		case *tcell.EventResize:
			screen.Sync()
		}
		p.Draw(screen)
		screen.Show()
	}
}

// handleKey applies a key press and reports whether to keep running.
func handleKey(p *Preview, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'r':
			p.Reseed()
		case 'm':
			p.ToggleMode()
		case 'o':
			p.ToggleOutline()
		}
	}
	return true
}
