// Package wing builds the feathered wing surface: the authored curve set and
// a Coons-style loft between two boundary curves and a family of ribs.
package wing

import (
	"github.com/Faultbox/seraph/pkg/math"
	"github.com/Faultbox/seraph/pkg/spline"
)

// Mode selects how the loft blends neighbouring ribs.
type Mode int

const (
	// Reconciled places rib j at the start of weight segment j on both
	// boundary curves and corrects the boundary samples by the corner
	// mismatch, so the surface passes through every rib and has no seams.
	Reconciled Mode = iota
	// Literal reproduces the authored expression exactly, including its
	// reversed blend inside each segment. It tears at segment boundaries.
	Literal
)

func (m Mode) String() string {
	switch m {
	case Reconciled:
		return "reconciled"
	case Literal:
		return "literal"
	}
	return "unknown"
}

// Loft is a bivariate surface spanned by two boundary curves (u direction)
// and an ordered set of ribs (v direction). A Loft holds no mutable state;
// Evaluate is safe to call concurrently.
type Loft struct {
	Start        *spline.Curve
	End          *spline.Curve
	Ribs         []*spline.Curve
	StartWeights []float32
	EndWeights   []float32
	Mode         Mode
}

// Default returns the authored wing loft.
func Default() *Loft {
	return &Loft{
		Start:        StartCurve(),
		End:          EndCurve(),
		Ribs:         TransversalCurves(),
		StartWeights: StartWeights(),
		EndWeights:   EndWeights(),
	}
}

// Evaluate returns the surface point at (u, v). Both parameters are clamped
// to [0, 1]. u runs from the wing root to the tip, v across each rib.
func (l *Loft) Evaluate(u, v float32) math.Vec3 {
	u = math.Clamp01(u)
	v = math.Clamp01(v)

	first := l.Ribs[0]
	last := l.Ribs[len(l.Ribs)-1]

	s := Locate(u, l.StartWeights)
	e := Locate(u, l.EndWeights)
	if s.Index == 0 || e.Index == 0 {
		return first.Point(v)
	}
	if s.Index >= len(l.Ribs) {
		return last.Point(v)
	}

	if l.Mode == Literal {
		return l.literal(s.Index, s.LocalT, v)
	}
	return l.reconciled(s.Index, s.LocalT, v)
}

// reconciled blends rib i-1 (t=0) into rib i (t=1).
func (l *Loft) reconciled(i int, t, v float32) math.Vec3 {
	prev, next := l.Ribs[i-1], l.Ribs[i]

	lu := prev.Point(v).Lerp(next.Point(v), t)

	startNodePrev := l.startNode(i - 1)
	startNodeNext := l.startNode(i)
	endNodePrev := l.endNode(i - 1)
	endNodeNext := l.endNode(i)

	cross := math.Clamp01(startNodePrev + weightAt(l.StartWeights, i-1)*t)
	crossEnd := math.Clamp01(endNodePrev + weightAt(l.EndWeights, i-1)*t)

	// Boundary samples corrected so that they meet the rib ends exactly.
	prev0, next0 := prev.Point(0), next.Point(0)
	prev1, next1 := prev.Point(1), next.Point(1)
	startFix := prev0.Sub(l.Start.Point(startNodePrev)).Lerp(next0.Sub(l.Start.Point(startNodeNext)), t)
	endFix := prev1.Sub(l.End.Point(endNodePrev)).Lerp(next1.Sub(l.End.Point(endNodeNext)), t)

	lower := l.Start.Point(cross).Add(startFix)
	upper := l.End.Point(crossEnd).Add(endFix)
	lv := lower.Lerp(upper, v)

	b := prev0.Lerp(next0, t).Lerp(prev1.Lerp(next1, t), v)

	return lu.Add(lv).Sub(b)
}

func (l *Loft) literal(i int, t, v float32) math.Vec3 {
	prev, next := l.Ribs[i-1], l.Ribs[i]

	lu := prev.Point(v).Lerp(next.Point(v), 1-t)

	cross := math.Clamp01(accumulate(l.StartWeights, i) + weightAt(l.StartWeights, i)*(1-t))
	crossEnd := math.Clamp01(accumulate(l.EndWeights, i) + weightAt(l.EndWeights, i)*(1-t))
	lv := l.Start.Point(cross).Lerp(l.End.Point(crossEnd), v)

	b0 := next.Point(0).Lerp(prev.Point(0), t)
	b1 := next.Point(1).Lerp(prev.Point(1), t)
	b := b0.Lerp(b1, v)

	return lv.Add(lu).Add(b.Negate())
}

// startNode is the start-curve parameter of rib j.
func (l *Loft) startNode(j int) float32 {
	return math.Clamp01(accumulate(l.StartWeights, j))
}

// endNode is the end-curve parameter of rib j.
func (l *Loft) endNode(j int) float32 {
	return math.Clamp01(accumulate(l.EndWeights, j))
}

// Grid evaluates the surface on an (nu+1) x (nv+1) lattice, u-major.
func (l *Loft) Grid(nu, nv int) []math.Vec3 {
	nu, nv = max(nu, 1), max(nv, 1)
	out := make([]math.Vec3, 0, (nu+1)*(nv+1))
	for i := 0; i <= nu; i++ {
		u := float32(i) / float32(nu)
		for j := 0; j <= nv; j++ {
			out = append(out, l.Evaluate(u, float32(j)/float32(nv)))
		}
	}
	return out
}
