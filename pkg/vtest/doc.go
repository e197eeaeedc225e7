// Package vtest provides test helpers for weft components: one-shot HTML
// assertions for plain trees, and a Mount harness that drives a live
// scheduler, fires events at rendered handlers, and inspects the committed
// markup between flushes.
package vtest
