package runtime

import "github.com/patchgraph/corepatch/ir"

// SigFrameCache memoizes every IR node's computed value for the span of
// exactly one frame (spec §4.8 step 1), giving every node at-most-once
// evaluation semantics within that frame even when several downstream
// consumers share the same upstream node (testable property 7). A fresh
// SigFrameCache is allocated per Step call; nothing survives across
// frames here — cross-frame persistence is StateStore's job.
type SigFrameCache struct {
	Frame uint64

	signals map[int]ir.Value
	fields  map[int][]ir.Value
	events  map[int]bool

	evalCount map[int]int
}

func newSigFrameCache(frame uint64) *SigFrameCache {
	return &SigFrameCache{
		Frame:     frame,
		signals:   make(map[int]ir.Value),
		fields:    make(map[int][]ir.Value),
		events:    make(map[int]bool),
		evalCount: make(map[int]int),
	}
}

// EvalCount reports how many times signal node nodeID was actually
// evaluated (not cache-served) this frame; instrumentation for testable
// property 7 rather than something a kernel ever consults.
func (c *SigFrameCache) EvalCount(nodeID int) int {
	return c.evalCount[nodeID]
}

func (c *SigFrameCache) signal(nodeID int) (ir.Value, bool) {
	v, ok := c.signals[nodeID]

	return v, ok
}

func (c *SigFrameCache) setSignal(nodeID int, v ir.Value) {
	c.signals[nodeID] = v
	c.evalCount[nodeID]++
}

func (c *SigFrameCache) field(nodeID int) ([]ir.Value, bool) {
	v, ok := c.fields[nodeID]

	return v, ok
}

func (c *SigFrameCache) setField(nodeID int, v []ir.Value) {
	c.fields[nodeID] = v
	c.evalCount[nodeID]++
}

func (c *SigFrameCache) event(nodeID int) (bool, bool) {
	v, ok := c.events[nodeID]

	return v, ok
}

func (c *SigFrameCache) setEvent(nodeID int, v bool) {
	c.events[nodeID] = v
	c.evalCount[nodeID]++
}
