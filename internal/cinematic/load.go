package cinematic

import (
	"go.uber.org/zap"

	"github.com/Faultbox/seraph/internal/assets"
)

// pendingLoad waits for a set of mesh futures and then runs a callback on
// the render thread.
type pendingLoad struct {
	names   []string
	futures []*assets.Future[*assets.Mesh]
	done    func(map[string]*assets.Mesh)
}

func (p *pendingLoad) ready() bool {
	for _, f := range p.futures {
		if !f.Ready() {
			return false
		}
	}
	return true
}

// Await starts loading the named meshes and calls done once every load has
// finished. Meshes that failed to load are logged and left out of the map.
func (e *Engine) Await(done func(map[string]*assets.Mesh), names ...string) {
	p := &pendingLoad{names: names, done: done}
	for _, name := range names {
		p.futures = append(p.futures, e.Assets.LoadMesh(name))
	}
	e.pending = append(e.pending, p)
}

// LoadMesh calls done with the named mesh once it has loaded. On failure
// done is never called.
func (e *Engine) LoadMesh(name string, done func(*assets.Mesh)) {
	e.Await(func(meshes map[string]*assets.Mesh) {
		if m, ok := meshes[name]; ok {
			done(m)
		}
	}, name)
}

// Poll runs the callbacks of every load that has completed. Loads that are
// still in flight stay queued; a load that never finishes never fires.
func (e *Engine) Poll() {
	if len(e.pending) == 0 {
		return
	}

	var waiting []*pendingLoad
	var ready []*pendingLoad
	for _, p := range e.pending {
		if p.ready() {
			ready = append(ready, p)
		} else {
			waiting = append(waiting, p)
		}
	}
	e.pending = waiting

	for _, p := range ready {
		meshes := make(map[string]*assets.Mesh, len(p.names))
		for i, f := range p.futures {
			mesh, err := f.Result()
			if err != nil {
				e.log.Warn("mesh unavailable", zap.String("mesh", p.names[i]), zap.Error(err))
				continue
			}
			meshes[p.names[i]] = mesh
		}
		p.done(meshes)
	}
}

// Pending returns the number of loads still in flight.
func (e *Engine) Pending() int {
	return len(e.pending)
}
