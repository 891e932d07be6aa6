package ui

import (
	"errors"
	"strings"
	"testing"

	"marker/internal/buildspace"
)

func TestStatusLabel(t *testing.T) {
	cases := []struct {
		stage  buildspace.Stage
		status buildspace.Status
		want   string
	}{
		{buildspace.StageFetch, buildspace.StatusWorking, "fetching"},
		{buildspace.StageBuild, buildspace.StatusWorking, "building"},
		{buildspace.StageBuild, buildspace.StatusCached, "cached"},
		{buildspace.StageBuild, buildspace.StatusDone, "done"},
		{buildspace.StageBuild, buildspace.StatusError, "error"},
	}
	for _, tc := range cases {
		if got := statusLabel(tc.stage, tc.status); got != tc.want {
			t.Errorf("statusLabel(%q, %q) = %q, want %q", tc.stage, tc.status, got, tc.want)
		}
	}
}

func TestApplyEventProgress(t *testing.T) {
	events := make(chan buildspace.Event)
	m := NewProgressModel("building lint crates", []string{"a", "b"}, events).(*progressModel)

	m.applyEvent(buildspace.Event{Crate: "a", Stage: buildspace.StageBuild, Status: buildspace.StatusDone})
	if !m.items[0].final || m.items[0].status != "done" {
		t.Errorf("item a = %+v, want final done", m.items[0])
	}
	if m.items[1].status != "queued" {
		t.Errorf("item b = %+v, want queued", m.items[1])
	}

	// Unknown crates are ignored.
	m.applyEvent(buildspace.Event{Crate: "ghost", Status: buildspace.StatusDone})
	if len(m.items) != 2 {
		t.Errorf("unknown crate grew the item list to %d", len(m.items))
	}
}

func TestRenderPlain(t *testing.T) {
	events := make(chan buildspace.Event, 4)
	events <- buildspace.Event{Crate: "a", Stage: buildspace.StageBuild, Status: buildspace.StatusQueued}
	events <- buildspace.Event{Crate: "a", Stage: buildspace.StageBuild, Status: buildspace.StatusWorking}
	events <- buildspace.Event{Crate: "a", Stage: buildspace.StageBuild, Status: buildspace.StatusError, Err: errors.New("boom")}
	close(events)

	var b strings.Builder
	RenderPlain(&b, events)
	out := b.String()
	if strings.Contains(out, "queued") {
		t.Errorf("queued lines should be suppressed:\n%s", out)
	}
	if !strings.Contains(out, "building a") {
		t.Errorf("missing building line:\n%s", out)
	}
	if !strings.Contains(out, "error a: boom") {
		t.Errorf("missing error line:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 20); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	if got := truncate("a_very_long_crate_name", 10); got != "a_ve..." {
		t.Errorf("truncate long = %q", got)
	}
}
