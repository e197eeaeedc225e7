package weft

import "reflect"

// Cleanup is an optional teardown function returned by an effect.
type Cleanup = func()

// EffectFunc is an effect body. It runs after commit and may return a
// Cleanup that runs before the effect re-runs or when the instance is
// destroyed.
type EffectFunc func() Cleanup

// hookKind discriminates hook records.
type hookKind uint8

const (
	hookState hookKind = iota + 1
	hookEffect
)

// String returns a human-readable name for the hook kind.
func (k hookKind) String() string {
	switch k {
	case hookState:
		return "state"
	case hookEffect:
		return "effect"
	default:
		return "unknown"
	}
}

// effectState tracks one effect record through its lifecycle.
type effectState uint8

const (
	effectIdle      effectState = iota
	effectScheduled             // queued for this pass's post-commit run
	effectRan                   // setup ran; cleanup (if any) is live
	effectSkipped               // deps unchanged this render
	effectTornDown              // terminal: cleanup consumed
)

// hookRecord is one slot of an instance's persistent memory, matched
// positionally across renders. Owned exclusively by its instance.
type hookRecord struct {
	kind hookKind

	// State hooks.
	value any

	// Effect hooks.
	deps    []any
	hasDeps bool
	setup   EffectFunc // pending setup for the current pass
	cleanup Cleanup    // live cleanup from the last run
	state   effectState
}

// UseState gives the instance a persistent state cell for this hook slot.
// On the first render of the slot it stores initial; afterwards it returns
// whatever the setter last wrote. The setter may be called at any later time,
// from any context: it writes the cell synchronously and marks the owning
// instance dirty for the next flush. Setters passed to and invoked by other
// components still re-render the instance that created them. After the
// owning instance is destroyed the setter is a no-op.
func UseState[T any](ctx *Ctx, initial T) (T, func(T)) {
	rec := ctx.nextHook(hookState)

	inst := ctx.inst
	sched := inst.sched

	// The cell is shared with setters running on other goroutines, so both
	// ends of the exchange hold the scheduler lock.
	sched.mu.Lock()
	if inst.renderCount == 0 {
		rec.value = initial
	}
	value := rec.value.(T)
	sched.mu.Unlock()

	setter := func(v T) {
		sched.setState(inst, rec, v)
	}

	return value, setter
}

// UseEffect queues fn to run after this render pass commits, unless deps is
// non-nil and shallowly equal to the previous render's deps.
//
//   - deps == nil: run after every render of the instance.
//   - len(deps) == 0 (but non-nil): run the setup exactly once on mount; the
//     cleanup runs exactly once, on destruction.
//   - otherwise: re-run whenever any dep differs from the previous render.
//
// The previous run's cleanup executes before the new setup.
func UseEffect(ctx *Ctx, fn EffectFunc, deps []any) {
	rec := ctx.nextHook(hookEffect)

	first := ctx.inst.renderCount == 0
	changed := first || deps == nil || !rec.hasDeps || !depsEqual(rec.deps, deps)

	rec.deps = deps
	rec.hasDeps = deps != nil

	if !changed {
		rec.state = effectSkipped
		return
	}

	rec.setup = fn
	rec.state = effectScheduled
}

// depsEqual compares dependency sequences by shallow equality.
func depsEqual(prev, next []any) bool {
	if len(prev) != len(next) {
		return false
	}
	for i := range prev {
		if !shallowEqual(prev[i], next[i]) {
			return false
		}
	}
	return true
}

// propsEqual compares two prop maps by shallow equality of their values.
// Used to decide whether a reused child needs re-invocation.
func propsEqual(prev, next map[string]any) bool {
	if len(prev) != len(next) {
		return false
	}
	for k, pv := range prev {
		nv, ok := next[k]
		if !ok || !shallowEqual(pv, nv) {
			return false
		}
	}
	return true
}

// shallowEqual provides type-appropriate equality checking.
// Uses == for common comparable types and reflect.DeepEqual for others.
func shallowEqual(a, b any) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case uint64:
		bv, ok := b.(uint64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}

	// Functions (event handlers rebound each render) never compare equal
	// under DeepEqual; treat same-pointer functions as equal instead.
	va := reflect.ValueOf(a)
	vb := reflect.ValueOf(b)
	if va.IsValid() && vb.IsValid() && va.Kind() == reflect.Func && vb.Kind() == reflect.Func {
		return va.Pointer() == vb.Pointer()
	}

	return reflect.DeepEqual(a, b)
}
