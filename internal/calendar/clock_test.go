package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"09:00", 540, true},
		{"00:00", 0, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"9:00", 0, false},
		{"09-00", 0, false},
		{"09:60", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, err := ParseClock(c.in)
		if c.ok && (err != nil || got != c.want) {
			t.Fatalf("ParseClock(%q) = %d, %v; want %d", c.in, got, err, c.want)
		}
		if !c.ok && !errors.Is(err, ErrBadClock) {
			t.Fatalf("ParseClock(%q): expected ErrBadClock, got %v", c.in, err)
		}
	}
}

func TestAddClock(t *testing.T) {
	got, err := AddClock("09:00", 90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "10:30" {
		t.Fatalf("expected 10:30, got %q", got)
	}
}

func TestAddClock_RejectsMidnightCrossing(t *testing.T) {
	if _, err := AddClock("23:30", 60); !errors.Is(err, ErrCrossesMidnight) {
		t.Fatalf("expected ErrCrossesMidnight, got %v", err)
	}
	// Окончание ровно в полночь — тоже за пределами суток.
	if _, err := AddClock("23:00", 60); !errors.Is(err, ErrCrossesMidnight) {
		t.Fatalf("expected ErrCrossesMidnight for 23:00+60, got %v", err)
	}
}

func TestAt_UsesLocation(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	got, err := At(day, "14:30", time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if ClockOf(got, time.UTC) != "14:30" {
		t.Fatalf("expected round trip to 14:30, got %q", ClockOf(got, time.UTC))
	}
}
