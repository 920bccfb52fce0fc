package session

import (
	"testing"
	"time"
)

func TestTracker_Expiry(t *testing.T) {
	current := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	tr := NewTracker(30 * time.Minute)
	tr.now = func() time.Time { return current }

	if tr.Expired("u1") {
		t.Error("user with no activity reported expired")
	}

	tr.Touch("u1")
	if tr.Expired("u1") {
		t.Error("fresh session reported expired")
	}

	deadline, ok := tr.Deadline("u1")
	if !ok {
		t.Fatal("Deadline() returned no record after Touch")
	}
	if want := current.Add(30 * time.Minute); !deadline.Equal(want) {
		t.Errorf("deadline = %v, want %v", deadline, want)
	}

	current = current.Add(29 * time.Minute)
	if tr.Expired("u1") {
		t.Error("session expired before the timeout")
	}

	// Activity pushes the deadline forward.
	tr.Touch("u1")
	current = current.Add(29 * time.Minute)
	if tr.Expired("u1") {
		t.Error("touched session expired early")
	}

	current = current.Add(time.Minute)
	if !tr.Expired("u1") {
		t.Error("idle session not expired at the timeout")
	}
}

func TestTracker_Sweep(t *testing.T) {
	current := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	tr := NewTracker(10 * time.Minute)
	tr.now = func() time.Time { return current }

	tr.Touch("idle")
	current = current.Add(5 * time.Minute)
	tr.Touch("active")
	current = current.Add(5 * time.Minute)

	expired := tr.sweep()
	if len(expired) != 1 || expired[0] != "idle" {
		t.Fatalf("sweep() = %v, want [idle]", expired)
	}

	// Swept users are forgotten, not reported again.
	if got := tr.sweep(); len(got) != 0 {
		t.Errorf("second sweep() = %v, want empty", got)
	}
	if tr.Expired("idle") {
		t.Error("forgotten user still reported expired")
	}
}
