package calendar

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrBadClock        = errors.New("bad clock value, want HH:MM")
	ErrCrossesMidnight = errors.New("interval crosses midnight")
)

const minutesPerDay = 24 * 60

// ParseClock разбирает время "HH:MM" в минуты от начала суток.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	var h, m int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &h, &m); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	return h*60 + m, nil
}

// FormatClock форматирует минуты от начала суток как "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// AddClock прибавляет длительность к времени "HH:MM".
// Интервал, выходящий за пределы суток, не заворачивается,
// а отклоняется: записи через полночь в сетке дня не поддерживаются.
func AddClock(start string, durationMin int64) (string, error) {
	startMin, err := ParseClock(start)
	if err != nil {
		return "", err
	}
	if durationMin <= 0 {
		return "", fmt.Errorf("duration must be positive, got %d", durationMin)
	}
	end := startMin + int(durationMin)
	if end >= minutesPerDay {
		return "", ErrCrossesMidnight
	}
	return FormatClock(end), nil
}

// At совмещает дату дня и время "HH:MM" в абсолютную метку в loc.
func At(day time.Time, clock string, loc *time.Location) (time.Time, error) {
	minutes, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.UTC
	}
	year, month, d := day.In(loc).Date()
	return time.Date(year, month, d, minutes/60, minutes%60, 0, 0, loc), nil
}

// ClockOf возвращает "HH:MM" метки времени в loc.
func ClockOf(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("15:04")
}
