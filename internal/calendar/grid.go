package calendar

// Дневная сетка: колонки — ресурсы, строки — слоты фиксированного шага.
// Логика намеренно чистая: на входе уже выбранные записи, на выходе —
// готовая к отрисовке структура. Никакой работы с БД здесь нет.

// SlotLabels возвращает метки слотов рабочего дня [openHour, closeHour]
// с шагом stepMin. Последняя метка — час закрытия ровно, без долей часа.
func SlotLabels(openHour, closeHour, stepMin int) []string {
	var labels []string
	for m := openHour * 60; m < closeHour*60; m += stepMin {
		labels = append(labels, FormatClock(m))
	}
	labels = append(labels, FormatClock(closeHour*60))
	return labels
}

// GridBooking — запись в терминах сетки. Времена — "HH:MM" в таймзоне сетки.
type GridBooking struct {
	ID       string `json:"id"`
	Resource string `json:"resourceId"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Client   string `json:"client,omitempty"`
	Service  string `json:"service"`
	Status   string `json:"status"`

	// Отменённые записи слоты не занимают, но отображаются
	// в ячейке для возможности перебронирования.
	Cancelled bool `json:"cancelled,omitempty"`
}

// Cell — одна ячейка сетки.
type Cell struct {
	Time string `json:"time"`

	// Запись, занимающая ячейку (в том числе продолжение блока).
	BookingID string `json:"bookingId,omitempty"`
	// Блок рисуется только в стартовой ячейке.
	IsStart bool `json:"isStart,omitempty"`
	// Вертикальный охват блока в ячейках, только при IsStart.
	Span int `json:"span,omitempty"`

	// Отменённая запись поверх свободной ячейки.
	CancelledID string `json:"cancelledId,omitempty"`
}

// ColumnSpec — ресурс-колонка на входе сетки.
type ColumnSpec struct {
	ID        string
	Name      string
	Available bool
}

// Column — колонка ресурса с заполненными ячейками.
type Column struct {
	ResourceID   string `json:"resourceId"`
	ResourceName string `json:"resourceName"`
	Available    bool   `json:"available"`
	Cells        []Cell `json:"cells"`
}

// DayGrid — сетка одного дня.
type DayGrid struct {
	Date     string        `json:"date"`
	Slots    []string      `json:"slots"`
	Columns  []Column      `json:"columns"`
	Bookings []GridBooking `json:"bookings"`
}

// BuildDayGrid собирает сетку дня. Занятость считается по полуоткрытому
// интервалу [Start, End): запись 09:00–10:00 занимает слоты 09:00 и 09:30,
// но не 10:00. Линейный перебор записей на ячейку достаточен для размеров
// одного дня одного салона.
func BuildDayGrid(date string, slots []string, resources []ColumnSpec, bookings []GridBooking) DayGrid {
	grid := DayGrid{
		Date:     date,
		Slots:    slots,
		Columns:  make([]Column, 0, len(resources)),
		Bookings: bookings,
	}

	for _, res := range resources {
		col := Column{
			ResourceID:   res.ID,
			ResourceName: res.Name,
			Available:    res.Available,
			Cells:        make([]Cell, 0, len(slots)),
		}

		for _, slot := range slots {
			cell := Cell{Time: slot}

			if b := bookingAt(bookings, res.ID, slot, false); b != nil {
				cell.BookingID = b.ID
				if b.Start == slot {
					cell.IsStart = true
					cell.Span = BookingSpan(slots, b.Start, b.End)
				}
			} else if c := bookingAt(bookings, res.ID, slot, true); c != nil {
				cell.CancelledID = c.ID
			}

			col.Cells = append(col.Cells, cell)
		}

		grid.Columns = append(grid.Columns, col)
	}

	return grid
}

// bookingAt ищет запись, покрывающую слот ресурса.
// Метки "HH:MM" сравниваются лексикографически, это корректно.
func bookingAt(bookings []GridBooking, resourceID, slot string, cancelled bool) *GridBooking {
	for i := range bookings {
		b := &bookings[i]
		if b.Resource != resourceID || b.Cancelled != cancelled {
			continue
		}
		if slot >= b.Start && slot < b.End {
			return b
		}
	}
	return nil
}

// BookingSpan возвращает, сколько ячеек занимает блок по вертикали.
func BookingSpan(slots []string, start, end string) int {
	startIdx := -1
	endIdx := len(slots)
	for i, slot := range slots {
		if slot == start {
			startIdx = i
		}
		if slot >= end {
			endIdx = i
			break
		}
	}
	if startIdx < 0 {
		return 1
	}
	if endIdx-startIdx < 1 {
		return 1
	}
	return endIdx - startIdx
}

// FreeStarts возвращает метки, с которых можно начать услугу длительностью
// durationMin: все покрываемые слоты свободны и услуга заканчивается
// не позже закрытия. isFree отвечает на вопрос «свободен ли слот».
func FreeStarts(slots []string, isFree func(label string) bool, durationMin int64, stepMin, closeMin int) []string {
	if durationMin <= 0 || stepMin <= 0 {
		return nil
	}
	need := int(durationMin+int64(stepMin)-1) / stepMin

	var starts []string
	for i, label := range slots {
		startMin, err := ParseClock(label)
		if err != nil {
			continue
		}
		if startMin+int(durationMin) > closeMin {
			break
		}
		ok := true
		for j := i; j < i+need; j++ {
			if j >= len(slots) || !isFree(slots[j]) {
				ok = false
				break
			}
		}
		if ok {
			starts = append(starts, label)
		}
	}
	return starts
}
