package calendar

import (
	"testing"
	"time"
)

func at(t *testing.T, hour, min int) time.Time {
	t.Helper()
	return time.Date(2025, 6, 2, hour, min, 0, 0, time.UTC)
}

func TestNewTimeRange(t *testing.T) {
	if _, err := NewTimeRange(at(t, 10, 0), at(t, 11, 0)); err != nil {
		t.Fatalf("expected valid range, got %v", err)
	}
	if _, err := NewTimeRange(at(t, 11, 0), at(t, 11, 0)); err == nil {
		t.Fatalf("expected error for empty range")
	}
	if _, err := NewTimeRange(time.Time{}, at(t, 11, 0)); err == nil {
		t.Fatalf("expected error for zero start")
	}
}

func TestNormalizeTimeRange_SwapsAndClamps(t *testing.T) {
	tr, err := NormalizeTimeRange(at(t, 15, 0), at(t, 10, 0), time.UTC, 2*time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tr.Start.Equal(at(t, 10, 0)) {
		t.Fatalf("expected swapped start 10:00, got %v", tr.Start)
	}
	if tr.Duration() != 2*time.Hour {
		t.Fatalf("expected duration clamped to 2h, got %v", tr.Duration())
	}
}

func TestSplitToTimeSlots_AlignedHalfHours(t *testing.T) {
	tr := TimeRange{Start: at(t, 9, 10), End: at(t, 11, 0)}

	slots, err := SplitToTimeSlots(tr, 30*time.Minute, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Начало выравнивается на 09:30; хвост короче 30 минут отбрасывается.
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d: %v", len(slots), slots)
	}
	if !slots[0].Start.Equal(at(t, 9, 30)) {
		t.Fatalf("expected first slot at 09:30, got %v", slots[0].Start)
	}
	if !slots[2].End.Equal(at(t, 11, 0)) {
		t.Fatalf("expected last slot to end at 11:00, got %v", slots[2].End)
	}
}

func TestHasOverlap_HalfOpen(t *testing.T) {
	existing := []TimeRange{{Start: at(t, 10, 0), End: at(t, 11, 0)}}

	// Касание концами при полуоткрытых интервалах — не конфликт.
	touch := TimeRange{Start: at(t, 11, 0), End: at(t, 12, 0)}
	if ok, _ := HasOverlap(touch, existing, false); ok {
		t.Fatalf("touching ranges must not overlap in half-open mode")
	}
	if ok, _ := HasOverlap(touch, existing, true); !ok {
		t.Fatalf("touching ranges must overlap in inclusive mode")
	}

	inside := TimeRange{Start: at(t, 10, 30), End: at(t, 10, 45)}
	ok, conflicts := HasOverlap(inside, existing, false)
	if !ok || len(conflicts) != 1 {
		t.Fatalf("expected one conflict, got %v", conflicts)
	}
}
