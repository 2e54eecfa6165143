package systems

import (
	"fmt"
	"time"

	"github.com/mlange-42/ark/ecs"
)

// Stage ids of the built-in pipeline. The ordering constraints between
// them are the core correctness property of the frame: depth and the
// camera transform must see post-physics world positions, and must be
// done before transform propagation resolves them for the next frame.
const (
	StagePhysics         = "physics"
	StageDepth           = "depth"
	StageTargetUpdate    = "targetUpdate"
	StageShakeDecay      = "shakeDecay"
	StageCameraTransform = "cameraTransform"
	StageZoom            = "zoom"
	StagePropagate       = "propagate"
)

// Stage is a named pipeline step with explicit ordering constraints
// against other stages.
type Stage struct {
	ID     string
	After  []string // stages that must run before this one
	Before []string // stages that must run after this one
	System System
}

// Pipeline runs stages in an order satisfying all declared
// constraints. The order is resolved once, at construction.
type Pipeline struct {
	stages []Stage

	// Observer, when set, receives the duration of every stage run.
	Observer func(id string, took time.Duration)
}

// NewPipeline resolves the stage ordering. It returns an error for a
// constraint on an unknown stage id, a duplicate id, or a cycle.
func NewPipeline(stages []Stage) (*Pipeline, error) {
	index := make(map[string]int, len(stages))
	for i, s := range stages {
		if _, ok := index[s.ID]; ok {
			return nil, fmt.Errorf("duplicate pipeline stage %q", s.ID)
		}
		index[s.ID] = i
	}

	// Edges as adjacency: edge u -> v means u runs before v.
	next := make([][]int, len(stages))
	indegree := make([]int, len(stages))
	addEdge := func(from, to int) {
		next[from] = append(next[from], to)
		indegree[to]++
	}
	for i, s := range stages {
		for _, dep := range s.After {
			j, ok := index[dep]
			if !ok {
				return nil, fmt.Errorf("stage %q: unknown stage %q in After", s.ID, dep)
			}
			addEdge(j, i)
		}
		for _, dep := range s.Before {
			j, ok := index[dep]
			if !ok {
				return nil, fmt.Errorf("stage %q: unknown stage %q in Before", s.ID, dep)
			}
			addEdge(i, j)
		}
	}

	// Kahn's algorithm. Ready stages are taken in registration order so
	// the resolved order is deterministic.
	order := make([]Stage, 0, len(stages))
	ready := make([]int, 0, len(stages))
	for i := range stages {
		if indegree[i] == 0 {
			ready = append(ready, i)
		}
	}
	for len(ready) > 0 {
		min := 0
		for k := range ready {
			if ready[k] < ready[min] {
				min = k
			}
		}
		i := ready[min]
		ready = append(ready[:min], ready[min+1:]...)
		order = append(order, stages[i])
		for _, j := range next[i] {
			indegree[j]--
			if indegree[j] == 0 {
				ready = append(ready, j)
			}
		}
	}
	if len(order) != len(stages) {
		return nil, fmt.Errorf("pipeline stage constraints contain a cycle")
	}

	return &Pipeline{stages: order}, nil
}

// Order returns the resolved stage ids in execution order.
func (p *Pipeline) Order() []string {
	ids := make([]string, len(p.stages))
	for i, s := range p.stages {
		ids[i] = s.ID
	}
	return ids
}

// Step runs one frame through all stages.
func (p *Pipeline) Step(w *ecs.World, ctx *Context) {
	for _, s := range p.stages {
		if p.Observer == nil {
			s.System.Update(w, ctx)
			continue
		}
		start := time.Now()
		s.System.Update(w, ctx)
		p.Observer(s.ID, time.Since(start))
	}
}
