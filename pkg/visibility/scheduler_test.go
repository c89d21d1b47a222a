package visibility

import "testing"

func TestLoopRunsInOrder(t *testing.T) {
	l := NewLoop()
	var got []int
	l.Schedule(func() { got = append(got, 1) })
	l.Schedule(func() { got = append(got, 2) })

	if l.Pending() != 2 {
		t.Fatalf("Pending() = %d, want 2", l.Pending())
	}
	if ran := l.Flush(); ran != 2 {
		t.Errorf("Flush() = %d, want 2", ran)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("order = %v", got)
	}
	if l.Flush() != 0 {
		t.Error("second Flush should be empty")
	}
}

func TestLoopCancel(t *testing.T) {
	l := NewLoop()
	ran := false
	cancel := l.Schedule(func() { ran = true })
	cancel()
	cancel()

	if l.Pending() != 0 {
		t.Errorf("Pending() = %d after cancel", l.Pending())
	}
	l.Flush()
	if ran {
		t.Error("cancelled task ran")
	}
}

func TestLoopDefersNestedScheduling(t *testing.T) {
	l := NewLoop()
	var got []string
	l.Schedule(func() {
		got = append(got, "outer")
		l.Schedule(func() { got = append(got, "inner") })
	})

	l.Flush()
	if len(got) != 1 {
		t.Fatalf("nested task ran in the same tick: %v", got)
	}
	l.Flush()
	if len(got) != 2 || got[1] != "inner" {
		t.Errorf("got = %v", got)
	}
}

func TestLoopCancelDuringFlush(t *testing.T) {
	l := NewLoop()
	var cancelSecond func()
	secondRan := false
	l.Schedule(func() { cancelSecond() })
	cancelSecond = l.Schedule(func() { secondRan = true })

	l.Flush()
	if secondRan {
		t.Error("task cancelled by an earlier task in the same tick should not run")
	}
}
