package timeutil

import (
	"testing"
	"time"
)

func TestRealClock(t *testing.T) {
	c := RealClock{}

	before := time.Now()
	now := c.Now()
	if now.Before(before) {
		t.Fatalf("Now went backwards: %v < %v", now, before)
	}
	if c.Since(before) < 0 {
		t.Fatalf("negative Since")
	}
}

func TestMockClock(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	c := NewMockClock(start)

	if !c.Now().Equal(start) {
		t.Fatalf("Now: got %v", c.Now())
	}

	c.Advance(90 * time.Second)
	if got := c.Since(start); got != 90*time.Second {
		t.Fatalf("Since: got %v", got)
	}

	later := start.Add(time.Hour)
	c.Set(later)
	if !c.Now().Equal(later) {
		t.Fatalf("Set: got %v", c.Now())
	}
}
