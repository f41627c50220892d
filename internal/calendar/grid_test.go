package calendar

import "testing"

func TestSlotLabels(t *testing.T) {
	labels := SlotLabels(9, 20, 30)
	if len(labels) != 23 {
		t.Fatalf("expected 23 labels, got %d", len(labels))
	}
	if labels[0] != "09:00" {
		t.Fatalf("expected first label 09:00, got %q", labels[0])
	}
	if labels[1] != "09:30" {
		t.Fatalf("expected second label 09:30, got %q", labels[1])
	}
	// Час закрытия присутствует ровно, без 20:30.
	if labels[len(labels)-1] != "20:00" {
		t.Fatalf("expected last label 20:00, got %q", labels[len(labels)-1])
	}
}

func TestBuildDayGrid_HalfOpenOccupancy(t *testing.T) {
	slots := SlotLabels(9, 20, 30)
	resources := []ColumnSpec{{ID: "r1", Name: "Анна", Available: true}}
	bookings := []GridBooking{
		{ID: "b1", Resource: "r1", Start: "09:00", End: "10:00", Service: "Стрижка", Status: "confirmed"},
	}

	grid := BuildDayGrid("2025-06-02", slots, resources, bookings)
	if len(grid.Columns) != 1 {
		t.Fatalf("expected 1 column, got %d", len(grid.Columns))
	}
	cells := grid.Columns[0].Cells

	byTime := map[string]Cell{}
	for _, c := range cells {
		byTime[c.Time] = c
	}

	// Запись 09:00–10:00 занимает 09:00 и 09:30, но не 10:00.
	if byTime["09:00"].BookingID != "b1" || !byTime["09:00"].IsStart {
		t.Fatalf("expected 09:00 to be the start cell of b1, got %+v", byTime["09:00"])
	}
	if byTime["09:00"].Span != 2 {
		t.Fatalf("expected span 2, got %d", byTime["09:00"].Span)
	}
	if byTime["09:30"].BookingID != "b1" || byTime["09:30"].IsStart {
		t.Fatalf("expected 09:30 to be a continuation cell, got %+v", byTime["09:30"])
	}
	if byTime["10:00"].BookingID != "" {
		t.Fatalf("expected 10:00 to be free, got %+v", byTime["10:00"])
	}
}

func TestBuildDayGrid_CancelledOverlay(t *testing.T) {
	slots := SlotLabels(9, 20, 30)
	resources := []ColumnSpec{{ID: "r1", Name: "Анна", Available: true}}
	bookings := []GridBooking{
		{ID: "dead", Resource: "r1", Start: "11:00", End: "12:00", Status: "cancelled", Cancelled: true},
	}

	grid := BuildDayGrid("2025-06-02", slots, resources, bookings)
	var cell Cell
	for _, c := range grid.Columns[0].Cells {
		if c.Time == "11:00" {
			cell = c
		}
	}

	// Отменённая запись слот не занимает, но видна в ячейке.
	if cell.BookingID != "" {
		t.Fatalf("cancelled booking must not occupy the slot: %+v", cell)
	}
	if cell.CancelledID != "dead" {
		t.Fatalf("expected cancelled overlay, got %+v", cell)
	}
}

func TestBookingSpan(t *testing.T) {
	slots := SlotLabels(9, 20, 30)
	if got := BookingSpan(slots, "14:30", "16:00"); got != 3 {
		t.Fatalf("expected span 3 for 14:30-16:00, got %d", got)
	}
	if got := BookingSpan(slots, "19:30", "20:00"); got != 1 {
		t.Fatalf("expected span 1 for the last slot, got %d", got)
	}
}

func TestFreeStarts(t *testing.T) {
	slots := SlotLabels(9, 20, 30)
	occupied := map[string]bool{"10:00": true, "10:30": true}
	isFree := func(label string) bool { return !occupied[label] }

	starts := FreeStarts(slots, isFree, 90, 30, 20*60)

	has := map[string]bool{}
	for _, s := range starts {
		has[s] = true
	}
	if has["09:00"] {
		t.Fatalf("09:00 must not fit 90 minutes before the 10:00 block")
	}
	if !has["11:00"] {
		t.Fatalf("11:00 must be a valid start after the block")
	}
	// 19:00 + 90 минут выходит за закрытие в 20:00.
	if has["19:00"] || has["19:30"] || has["20:00"] {
		t.Fatalf("starts too close to closing must be rejected: %v", starts)
	}
	if !has["18:30"] {
		t.Fatalf("18:30 + 90 минут заканчивается ровно в 20:00 и допустимо")
	}
}
