package service

import (
	"context"
	"testing"

	"github.com/Leganyst/booking-core/internal/calendar"
	"github.com/Leganyst/booking-core/internal/model"
)

func TestCalendarService_DayGrid(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createAt(t, "09:00") // 09:00–10:30

	grid, err := env.calendar.DayGrid(ctx, testDate, nil)
	if err != nil {
		t.Fatalf("day grid: %v", err)
	}
	if grid.Date != testDate {
		t.Fatalf("expected date %s, got %s", testDate, grid.Date)
	}
	if len(grid.Slots) != 23 || grid.Slots[0] != "09:00" || grid.Slots[22] != "20:00" {
		t.Fatalf("unexpected slot labels: %v", grid.Slots)
	}
	if len(grid.Columns) != 1 {
		t.Fatalf("expected 1 resource column, got %d", len(grid.Columns))
	}

	col := grid.Columns[0]
	if col.ResourceName != "Елена Сидорова" || !col.Available {
		t.Fatalf("unexpected column: %+v", col)
	}

	// 90 минут занимают три ячейки, блок рисуется в стартовой.
	if !col.Cells[0].IsStart || col.Cells[0].Span != 3 {
		t.Fatalf("expected start cell with span 3, got %+v", col.Cells[0])
	}
	if col.Cells[1].BookingID == "" || col.Cells[1].IsStart {
		t.Fatalf("expected continuation cell, got %+v", col.Cells[1])
	}
	if col.Cells[3].BookingID != "" {
		t.Fatalf("10:30 must be free, got %+v", col.Cells[3])
	}
}

func TestCalendarService_GridShowsCancelledWithoutOccupying(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	b := env.createAt(t, "12:00")
	if _, err := env.bookings.Cancel(ctx, b.ID.String()); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	grid, err := env.calendar.DayGrid(ctx, testDate, nil)
	if err != nil {
		t.Fatalf("day grid: %v", err)
	}

	var cell calendar.Cell
	for _, c := range grid.Columns[0].Cells {
		if c.Time == "12:00" {
			cell = c
		}
	}
	if cell.BookingID != "" {
		t.Fatalf("cancelled booking must not occupy the cell: %+v", cell)
	}
	if cell.CancelledID != b.ID.String() {
		t.Fatalf("expected cancelled overlay %s, got %q", b.ID, cell.CancelledID)
	}
}

func TestCalendarService_FreeSlots(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createAt(t, "10:00") // 10:00–11:30

	slots, err := env.calendar.FreeSlots(ctx, env.resource.ID.String(), testDate, env.service.ID.String())
	if err != nil {
		t.Fatalf("free slots: %v", err)
	}

	has := map[string]bool{}
	for _, s := range slots {
		has[s] = true
	}
	if has["09:00"] {
		t.Fatalf("09:00 must not fit 90 minutes before the 10:00 booking")
	}
	if !has["11:30"] {
		t.Fatalf("11:30 must be free right after the booking: %v", slots)
	}
	if has["19:00"] {
		t.Fatalf("услуга из 19:00 не успевает до закрытия: %v", slots)
	}
}

func TestCalendarService_HotSlots(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Второй специалист без записей.
	free := &model.Resource{
		Name:   "Анна Иванова",
		Type:   model.ResourceTypeSpecialist,
		Status: model.ResourceStatusActive,
	}
	if err := env.db.Create(free).Error; err != nil {
		t.Fatalf("seed resource: %v", err)
	}

	env.createAt(t, "09:00") // Елена занята с открытия

	hot, err := env.calendar.HotSlots(ctx, testDate, 5)
	if err != nil {
		t.Fatalf("hot slots: %v", err)
	}
	if len(hot) != 2 {
		t.Fatalf("expected a slot per specialist, got %v", hot)
	}

	starts := map[string]string{}
	for _, h := range hot {
		starts[h.ResourceName] = h.Start
	}
	if starts["Анна Иванова"] != "09:00" {
		t.Fatalf("expected Анна to be free from opening, got %q", starts["Анна Иванова"])
	}
	if starts["Елена Сидорова"] != "10:30" {
		t.Fatalf("expected Елена to be free after the booking, got %q", starts["Елена Сидорова"])
	}
}
