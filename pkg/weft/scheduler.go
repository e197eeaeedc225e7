package weft

import (
	"sort"
	"sync"
	"time"

	"github.com/weft-ui/weft/pkg/vdom"
)

// Cycle is the external scheduling primitive: it arranges for flush to run
// at the next cycle boundary (a microtask, an event-loop turn, a test's
// manual step). The runtime schedules onto it but never implements it.
// A Cycle must defer: running flush synchronously from inside a flush
// (e.g. from an effect's state write) is not supported.
type Cycle func(flush func())

// Scheduler coalesces dirty-instance notifications into render passes and
// drives re-invocation in a deterministic order.
//
// Setters may be invoked from arbitrary goroutines (timers, transport
// handlers), so state-cell writes and dirty marking share one mutex;
// rendering itself is cooperative and single-threaded, driven by whoever
// calls Flush.
type Scheduler struct {
	mu sync.Mutex

	// dirty is the coalesced set of instances awaiting re-render.
	// Marking the same instance twice is idempotent.
	dirty map[uint64]*Instance

	// instances is the arena of live instances addressed by id.
	instances map[uint64]*Instance

	cycle          Cycle
	cycleScheduled bool

	// flushGen stamps instances re-invoked in the current flush so a pass
	// rooted at an ancestor absorbs the dirty descendants it re-rendered.
	flushGen uint64

	metrics Metrics
}

// NewScheduler creates a scheduler. A nil cycle means the host drives
// Flush manually.
func NewScheduler(cycle Cycle) *Scheduler {
	return &Scheduler{
		dirty:     make(map[uint64]*Instance),
		instances: make(map[uint64]*Instance),
		cycle:     cycle,
		metrics:   NopMetrics{},
	}
}

// SetMetrics installs a metrics sink. Pass nil to disable.
func (s *Scheduler) SetMetrics(m Metrics) {
	if m == nil {
		m = NopMetrics{}
	}
	s.metrics = m
}

// MarkDirty records that inst needs a re-render at the next flush.
// Safe to call at any time; marks against destroyed instances are dropped.
func (s *Scheduler) MarkDirty(inst *Instance) {
	if inst == nil {
		return
	}

	s.mu.Lock()
	requestCycle := s.markDirtyLocked(inst)
	s.mu.Unlock()

	if requestCycle {
		s.cycle(s.flushFromCycle)
	}
}

// markDirtyLocked adds inst to the dirty set and reports whether the caller
// must request a cycle. The scheduler lock must be held.
func (s *Scheduler) markDirtyLocked(inst *Instance) bool {
	if inst.destroyed {
		return false
	}
	inst.dirty = true
	s.dirty[inst.id] = inst

	if s.cycle != nil && !s.cycleScheduled {
		s.cycleScheduled = true
		return true
	}
	return false
}

// setState writes a state cell and marks its owner dirty under one lock, so
// setters can race each other and an in-flight flush without tearing the
// cell. Writes against destroyed instances are dropped.
func (s *Scheduler) setState(inst *Instance, rec *hookRecord, v any) {
	s.mu.Lock()
	if inst.destroyed {
		s.mu.Unlock()
		return
	}
	rec.value = v
	requestCycle := s.markDirtyLocked(inst)
	s.mu.Unlock()

	if requestCycle {
		s.cycle(s.flushFromCycle)
	}
}

func (s *Scheduler) flushFromCycle() {
	s.mu.Lock()
	s.cycleScheduled = false
	s.mu.Unlock()
	s.Flush()
}

// Flush processes the current dirty set: one render pass per pass root, in
// (depth, id) order, each followed by reconciliation; effects queued by the
// passes run after the touched containers commit. Instances destroyed since
// they were marked are dropped silently. State changes made by effects land
// in the next flush.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	if len(s.dirty) == 0 {
		s.mu.Unlock()
		return
	}
	pending := make([]*Instance, 0, len(s.dirty))
	for _, inst := range s.dirty {
		pending = append(pending, inst)
	}
	s.dirty = make(map[uint64]*Instance)
	s.mu.Unlock()

	// Parents render before children so a dirty ancestor's pass absorbs
	// dirty Normal descendants instead of rendering them twice.
	sort.Slice(pending, func(i, j int) bool {
		if pending[i].depth != pending[j].depth {
			return pending[i].depth < pending[j].depth
		}
		return pending[i].id < pending[j].id
	})

	s.flushGen++
	start := time.Now()

	pb := &panicBox{}
	touched := make(map[*Handle]bool)
	rendered := 0

	// Effects queue across passes in pass order, child-then-parent within
	// each pass, and run only after the touched containers commit.
	var queue effectQueue

	for _, inst := range pending {
		if !s.claim(inst) {
			continue
		}

		s.renderInstance(inst, &queue)

		rendered++
		if h := inst.root().host; h != nil {
			touched[h] = true
		}
	}

	for h := range touched {
		h.commit()
	}
	s.runEffects(&queue, pb)

	s.metrics.RenderPass(time.Since(start), rendered)
	pb.rethrow()
}

// claim decides whether a pending instance still needs its own pass this
// flush. Dirty flags are shared with concurrent setters, so the check runs
// under the scheduler lock.
func (s *Scheduler) claim(inst *Instance) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if inst.destroyed || !inst.dirty {
		return false
	}
	if inst.renderGen == s.flushGen {
		// Already re-invoked as part of an ancestor's pass.
		inst.dirty = false
		return false
	}
	return true
}

// isDirty reads the dirty flag under the scheduler lock; setters may be
// writing it concurrently.
func (s *Scheduler) isDirty(inst *Instance) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return inst.dirty
}

// renderInstance re-invokes the instance's component function against its
// preserved hook stack, reconciles the children it produced, and queues the
// instance's scheduled effects after its subtree's (child-then-parent order).
func (s *Scheduler) renderInstance(inst *Instance, queue *effectQueue) {
	if inst.destroyed {
		return
	}

	s.mu.Lock()
	inst.dirty = false
	s.mu.Unlock()
	inst.renderGen = s.flushGen

	ctx := &Ctx{inst: inst, sched: s, seq: inst.renderSeq + 1}

	inst.beginRender()
	tree := inst.comp.fn(ctx, inst.props)
	inst.endRender()

	s.reconcileChildren(inst, tree, queue)
	inst.tree = tree

	queue.add(inst)
}

// newInstance allocates an instance into the arena.
func (s *Scheduler) newInstance(parent *Instance, comp *Component, slotKey string, props vdom.Props) *Instance {
	inst := &Instance{
		id:       nextID(),
		comp:     comp,
		slotKey:  slotKey,
		parent:   parent,
		children: make(map[string]*Instance),
		props:    props,
		sched:    s,
	}
	if parent != nil {
		inst.depth = parent.depth + 1
	}
	s.instances[inst.id] = inst
	s.metrics.InstanceCreated()
	return inst
}

// forget removes a destroyed instance from the arena and the dirty set,
// cancelling any pending re-render.
func (s *Scheduler) forget(inst *Instance) {
	s.mu.Lock()
	delete(s.dirty, inst.id)
	s.mu.Unlock()
	delete(s.instances, inst.id)
	s.metrics.InstanceDestroyed()
}

// Live returns the number of live instances in the arena.
func (s *Scheduler) Live() int {
	return len(s.instances)
}

// effectQueue accumulates instances whose scheduled effects run post-commit.
// Instances are appended after their subtrees, giving child-then-parent order.
type effectQueue struct {
	items []*Instance
}

func (q *effectQueue) add(inst *Instance) {
	q.items = append(q.items, inst)
}

// runEffects executes every effect queued as scheduled in this pass,
// running the previous cleanup (if live) before the new setup. Effects of
// instances destroyed during the pass never run.
func (s *Scheduler) runEffects(q *effectQueue, pb *panicBox) {
	for _, inst := range q.items {
		if inst.destroyed {
			continue
		}
		for _, rec := range inst.hooks {
			if rec.kind != hookEffect || rec.state != effectScheduled {
				continue
			}
			if rec.cleanup != nil {
				cleanup := rec.cleanup
				rec.cleanup = nil
				pb.call(cleanup)
			}
			setup := rec.setup
			rec.setup = nil
			rec.cleanup = setup()
			rec.state = effectRan
			s.metrics.EffectRun()
		}
	}
}
