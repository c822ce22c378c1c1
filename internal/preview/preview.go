// Package preview draws a top-down view of the generated wing on a terminal
// screen. Feathers are plotted at their base position in the XZ plane, one
// glyph per layer, over the outline of the loft's authored curves.
package preview

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/seraph/internal/feather"
	"github.com/Faultbox/seraph/internal/logger"
	"github.com/Faultbox/seraph/internal/wing"
	"github.com/Faultbox/seraph/pkg/math"
)

// cellAspect is the height of a terminal cell relative to its width.
const cellAspect = 2

// Options selects what the preview generates.
type Options struct {
	Seed             uint64
	FeathersPerLayer int
	Mode             wing.Mode
	Outline          bool
}

// Preview holds one generated wing and draws it.
type Preview struct {
	opts   Options
	loft   *wing.Loft
	layers [][]feather.Instance
	log    *zap.Logger
}

// New generates the wing for opts.
func New(opts Options) *Preview {
	p := &Preview{opts: opts, log: logger.Named("preview")}
	p.regenerate()
	return p
}

func (p *Preview) regenerate() {
	p.loft = wing.Default()
	p.loft.Mode = p.opts.Mode
	p.layers = feather.PlaceAll(p.loft, feather.Layers(p.opts.FeathersPerLayer), p.opts.Seed)
	p.log.Debug("wing generated",
		zap.Uint64("seed", p.opts.Seed),
		zap.Int("feathers", p.Count()),
		zap.Stringer("mode", p.opts.Mode),
	)
}

// Options returns the current options.
func (p *Preview) Options() Options {
	return p.opts
}

// Layers returns the placed feathers, one slice per layer.
func (p *Preview) Layers() [][]feather.Instance {
	return p.layers
}

// Count returns the number of placed feathers.
func (p *Preview) Count() int {
	n := 0
	for _, l := range p.layers {
		n += len(l)
	}
	return n
}

// Reseed advances the seed and places the feathers again.
func (p *Preview) Reseed() {
	p.opts.Seed++
	p.regenerate()
}

// ToggleMode switches between the reconciled and literal loft.
func (p *Preview) ToggleMode() {
	if p.opts.Mode == wing.Literal {
		p.opts.Mode = wing.Reconciled
	} else {
		p.opts.Mode = wing.Literal
	}
	p.regenerate()
}

// ToggleOutline shows or hides the curve outline.
func (p *Preview) ToggleOutline() {
	p.opts.Outline = !p.opts.Outline
}

var (
	outlineStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	statusStyle  = tcell.StyleDefault.Reverse(true)
	layerStyles  = map[string]tcell.Style{
		"root":      tcell.StyleDefault.Foreground(tcell.ColorWhite),
		"primary":   tcell.StyleDefault.Foreground(tcell.ColorRed),
		"secondary": tcell.StyleDefault.Foreground(tcell.ColorGreen),
		"tertiary":  tcell.StyleDefault.Foreground(tcell.ColorBlue),
	}
	layerGlyphs = map[string]rune{
		"root":      'o',
		"primary":   '#',
		"secondary": '*',
		"tertiary":  '+',
	}
)

// Draw renders the wing into screen, leaving the bottom row for a status
// line. It does not call Show.
func (p *Preview) Draw(screen tcell.Screen) {
	screen.Clear()
	width, height := screen.Size()
	if width <= 0 || height <= 1 {
		return
	}

	proj := fit(p.bounds(), width, height-1)

	if p.opts.Outline {
		outline := p.loft.Construction()
		for _, line := range append([][]math.Vec3{outline.Start, outline.End}, outline.Ribs...) {
			for _, pt := range line {
				x, y := proj.cell(pt)
				screen.SetContent(x, y, '.', nil, outlineStyle)
			}
		}
	}

	for _, layer := range p.layers {
		for _, inst := range layer {
			glyph, ok := layerGlyphs[inst.Layer]
			if !ok {
				glyph = '?'
			}
			x, y := proj.cell(inst.Position)
			screen.SetContent(x, y, glyph, nil, layerStyles[inst.Layer])
		}
	}

	status := fmt.Sprintf(" seed %d  feathers %d  %s  [r]eseed [m]ode [o]utline [q]uit ",
		p.opts.Seed, p.Count(), p.opts.Mode)
	drawText(screen, 0, height-1, status, statusStyle)
}

// bounds is the XZ extent of the outline and every feather.
func (p *Preview) bounds() rect {
	var b rect
	b.empty = true
	c := p.loft.Construction()
	for _, line := range append([][]math.Vec3{c.Start, c.End}, c.Ribs...) {
		for _, pt := range line {
			b.add(pt.XZ())
		}
	}
	for _, layer := range p.layers {
		for _, inst := range layer {
			b.add(inst.Position.XZ())
		}
	}
	return b
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	width, _ := screen.Size()
	for _, r := range text {
		if x >= width {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
