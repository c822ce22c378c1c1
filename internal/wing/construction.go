package wing

import "github.com/Faultbox/seraph/pkg/math"

// Construction is debug geometry for inspecting the loft: where each rib
// meets the boundary curves, a lattice of surface samples, and polylines of
// every authored curve.
type Construction struct {
	Nodes   []math.Vec3
	Lattice []math.Vec3
	Ribs    [][]math.Vec3
	Start   []math.Vec3
	End     []math.Vec3
}

// ConstructionLift raises the debug geometry above the floor.
var ConstructionLift = math.Vec3{Y: 1}

const (
	constructionGrid  = 50
	constructionSteps = 50
)

// Construction samples the debug geometry of the loft.
func (l *Loft) Construction() Construction {
	c := Construction{
		Lattice: lift(l.Grid(constructionGrid, constructionGrid)),
		Start:   lift(l.Start.Points(constructionSteps)),
		End:     lift(l.End.Points(constructionSteps)),
	}
	for j := range l.Ribs {
		s, e := l.nodeParams(j)
		c.Nodes = append(c.Nodes,
			l.Start.Point(s).Add(ConstructionLift),
			l.End.Point(e).Add(ConstructionLift),
		)
	}
	for _, rib := range l.Ribs {
		c.Ribs = append(c.Ribs, lift(rib.Points(constructionSteps)))
	}
	return c
}

// nodeParams returns the boundary-curve parameters associated with rib j.
func (l *Loft) nodeParams(j int) (start, end float32) {
	if l.Mode == Literal {
		return math.Clamp01(accumulate(l.StartWeights, j+1)), math.Clamp01(accumulate(l.EndWeights, j+1))
	}
	return l.startNode(j), l.endNode(j)
}

func lift(points []math.Vec3) []math.Vec3 {
	for i := range points {
		points[i] = points[i].Add(ConstructionLift)
	}
	return points
}
