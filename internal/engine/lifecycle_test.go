package engine

import "testing"

func TestLifecycleTransitions(t *testing.T) {
	l := NewLifecycle(2.0)
	if l.State() != Ready {
		t.Fatalf("initial State() = %v, expected ready", l.State())
	}

	if l.End(1) {
		t.Error("End() from Ready should not transition")
	}

	l.Begin()
	if l.State() != Playing {
		t.Fatalf("State() after Begin = %v, expected playing", l.State())
	}
	if l.Expired(100) {
		t.Error("Expired() while playing should be false")
	}

	if !l.End(3.5) {
		t.Fatal("End() from Playing should transition")
	}
	if l.EndedAt() != 3.5 {
		t.Errorf("EndedAt() = %v, expected 3.5", l.EndedAt())
	}
	if l.End(4) {
		t.Error("second End() should be ignored")
	}
	if l.EndedAt() != 3.5 {
		t.Errorf("EndedAt() changed to %v after second End", l.EndedAt())
	}

	tests := []struct {
		now  float64
		want bool
	}{
		{3.5, false},
		{5.4, false},
		{5.5, true},
		{9.0, true},
	}
	for _, tt := range tests {
		if got := l.Expired(tt.now); got != tt.want {
			t.Errorf("Expired(%v) = %v, expected %v", tt.now, got, tt.want)
		}
	}

	l.Reset()
	if l.State() != Ready {
		t.Errorf("State() after Reset = %v, expected ready", l.State())
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{Ready, "ready"},
		{Playing, "playing"},
		{GameOver, "game_over"},
		{State(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("String() = %q, expected %q", got, tt.want)
		}
	}
}
