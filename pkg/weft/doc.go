// Package weft is the hooks/virtual-component reconciliation runtime.
//
// A component is a plain function from (render context, props) to a VNode
// tree. Wrapping it with WithHooks or Virtual assigns it a stable identity
// handle; each mounted occurrence gets an Instance with per-slot persistent
// hook storage (UseState, UseEffect), matched positionally across renders.
//
// State setters mark their owning instance dirty; the Scheduler coalesces
// marks and, at each cycle boundary, re-invokes the minimal set of dirty
// instances. The reconciler diffs each fresh output against the previous
// children, reusing instances whose identity is unchanged and tearing down
// removed ones with their effect cleanups run exactly once.
//
// Execution is single-threaded and cooperative: only setters are safe to
// call from arbitrary goroutines.
package weft
