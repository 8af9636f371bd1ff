package job

import (
	"testing"
	"time"
)

func TestInitialState(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		scheduledAt time.Time
		want        State
	}{
		{"past", now.Add(-time.Minute), StateAvailable},
		{"exactly now", now, StateAvailable},
		{"one nanosecond ahead", now.Add(time.Nanosecond), StateScheduled},
		{"future", now.Add(time.Hour), StateScheduled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InitialState(tt.scheduledAt, now); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestBuildDraft(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2024, 3, 1, 14, 0, 0, 0, loc)
	opts := ResolveOpts(now, &InsertOpts{Priority: 3, Tags: []string{"custom"}}, nil)

	d := BuildDraft("simple", []byte(`{"job_num":1}`), opts, now)

	if d.Kind != "simple" {
		t.Errorf("expected kind simple, got %q", d.Kind)
	}
	if string(d.EncodedArgs) != `{"job_num":1}` {
		t.Errorf("unexpected args %s", d.EncodedArgs)
	}
	if d.Attempt != 0 {
		t.Errorf("expected attempt 0, got %d", d.Attempt)
	}
	if d.Priority != 3 || d.Queue != QueueDefault || d.MaxAttempts != MaxAttemptsDefault {
		t.Errorf("unexpected options on draft: %+v", d)
	}
	if len(d.Tags) != 1 || d.Tags[0] != "custom" {
		t.Errorf("expected tags [custom], got %v", d.Tags)
	}
	if d.State != StateAvailable {
		t.Errorf("expected state available, got %s", d.State)
	}
	if d.CreatedAt.Location() != time.UTC || d.ScheduledAt.Location() != time.UTC {
		t.Errorf("expected UTC timestamps, got %v and %v", d.CreatedAt, d.ScheduledAt)
	}
	if !d.CreatedAt.Equal(now) || !d.ScheduledAt.Equal(now) {
		t.Errorf("expected timestamps equal to now, got %v and %v", d.CreatedAt, d.ScheduledAt)
	}
}

func TestBuildDraft_Deterministic(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	opts := ResolveOpts(now, &InsertOpts{ScheduledAt: now.Add(time.Hour)}, nil)

	a := BuildDraft("simple", []byte(`{}`), opts, now)
	b := BuildDraft("simple", []byte(`{}`), opts, now)

	if a.State != StateScheduled {
		t.Fatalf("expected scheduled, got %s", a.State)
	}
	if a.State != b.State || !a.CreatedAt.Equal(b.CreatedAt) || !a.ScheduledAt.Equal(b.ScheduledAt) {
		t.Fatalf("expected identical drafts, got %+v and %+v", a, b)
	}
}

func TestState(t *testing.T) {
	t.Parallel()

	if State("pending").Valid() {
		t.Error("expected unknown state to be invalid")
	}
	for _, s := range []State{StateAvailable, StateScheduled, StateRunning, StateRetryable} {
		if !s.Valid() || s.Finalized() {
			t.Errorf("expected %s to be valid and not finalized", s)
		}
	}
	for _, s := range []State{StateCompleted, StateDiscarded, StateCancelled} {
		if !s.Finalized() {
			t.Errorf("expected %s to be finalized", s)
		}
	}
}
