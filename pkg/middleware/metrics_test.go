package middleware

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/weft-ui/weft/pkg/server"
	"github.com/weft-ui/weft/pkg/vdom"
)

func gatherNames(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	out := make(map[string]float64)
	for _, mf := range families {
		var total float64
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				total += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				total += m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				total += float64(m.GetHistogram().GetSampleCount())
			}
		}
		out[mf.GetName()] = total
	}
	return out
}

func TestRuntimeMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheus(WithRegistry(reg), WithNamespace("test"))

	m.RenderPass(5*time.Millisecond, 3)
	m.RenderPass(2*time.Millisecond, 1)
	m.EffectRun()
	m.InstanceCreated()
	m.InstanceCreated()
	m.InstanceDestroyed()

	got := gatherNames(t, reg)
	if got["test_render_passes_total"] != 2 {
		t.Errorf("render passes: %v", got["test_render_passes_total"])
	}
	if got["test_effect_runs_total"] != 1 {
		t.Errorf("effect runs: %v", got["test_effect_runs_total"])
	}
	if got["test_live_instances"] != 1 {
		t.Errorf("live instances: %v", got["test_live_instances"])
	}
}

func TestServerMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheus(WithRegistry(reg))

	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()
	m.PatchesSent(4)
	m.EventError("unbound")
	m.EventError("decode")

	got := gatherNames(t, reg)
	if got["weft_active_sessions"] != 1 {
		t.Errorf("active sessions: %v", got["weft_active_sessions"])
	}
	if got["weft_patches_sent_total"] != 4 {
		t.Errorf("patches: %v", got["weft_patches_sent_total"])
	}
	if got["weft_event_errors_total"] != 2 {
		t.Errorf("event errors: %v", got["weft_event_errors_total"])
	}
}

func TestEventsMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheus(WithRegistry(reg))

	mw := m.Events()
	ctx := server.NewEventCtx(nil, "h1", vdom.Event{Type: "click"})

	ok := mw(func(*server.EventCtx) error { return nil })
	if err := ok(ctx); err != nil {
		t.Fatal(err)
	}

	failing := mw(func(*server.EventCtx) error { return errors.New("boom") })
	if err := failing(ctx); err == nil {
		t.Fatal("expected error to propagate")
	}

	got := gatherNames(t, reg)
	if got["weft_events_total"] != 2 {
		t.Errorf("events total: %v", got["weft_events_total"])
	}
	if got["weft_event_duration_seconds"] != 2 {
		t.Errorf("event duration samples: %v", got["weft_event_duration_seconds"])
	}
}

func TestConstLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheus(
		WithRegistry(reg),
		WithConstLabels(prometheus.Labels{"app": "demo"}),
		WithSubsystem("core"),
	)
	m.EffectRun()

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, mf := range families {
		if mf.GetName() != "weft_core_effect_runs_total" {
			continue
		}
		labels := mf.GetMetric()[0].GetLabel()
		if len(labels) != 1 || labels[0].GetName() != "app" || labels[0].GetValue() != "demo" {
			t.Errorf("const labels missing: %v", labels)
		}
		return
	}
	t.Error("subsystem metric not found")
}
