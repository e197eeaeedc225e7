package weft

import (
	"github.com/weft-ui/weft/internal/errors"
)

// Ctx is the render context of the instance currently executing its
// component function. It is threaded explicitly through every RenderFunc
// rather than held in ambient global state, so the core stays reentrant-safe
// even though execution is single-threaded.
//
// A Ctx is only valid for the duration of the render call that received it.
// Capturing it and calling hooks later (from a goroutine, event handler, or
// effect body) is a fatal hook-order violation.
type Ctx struct {
	inst  *Instance
	sched *Scheduler

	// seq pins this context to one render pass of the instance.
	seq int
}

// nextHook advances the positional hook cursor and returns the record for
// the current slot, validating kind and count against the first render.
// Violations panic: continuing would hand one hook's storage to another.
func (ctx *Ctx) nextHook(kind hookKind) *hookRecord {
	inst := ctx.inst

	if inst == nil || !inst.rendering || ctx.seq != inst.renderSeq {
		panic(errors.New("E001"))
	}

	idx := inst.hookIdx
	inst.hookIdx++

	if inst.renderCount == 0 {
		// First render: append a new record for this slot.
		rec := &hookRecord{kind: kind}
		inst.hooks = append(inst.hooks, rec)
		return rec
	}

	if idx >= len(inst.hooks) {
		panic(errors.New("E002").WithDetail(
			"%s rendered hook #%d but its first render recorded only %d hooks",
			inst.comp.ComponentName(), idx+1, len(inst.hooks)))
	}

	rec := inst.hooks[idx]
	if rec.kind != kind {
		panic(errors.New("E003").WithDetail(
			"%s hook #%d: slot holds a %s hook but received a %s call",
			inst.comp.ComponentName(), idx+1, rec.kind, kind))
	}

	return rec
}
