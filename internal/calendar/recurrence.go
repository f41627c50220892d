package calendar

import (
	"errors"
	"time"
)

// Периодические правила: используются для разворачивания регулярных
// блокировок ресурса (перерывы и т.п.) в конкретные интервалы.

type RecurrenceFrequency int

const (
	FreqDaily RecurrenceFrequency = iota
	FreqWeekly
)

type RecurringRule struct {
	Freq      RecurrenceFrequency
	Interval  int            // шаг: каждые Interval дней/недель (>=1)
	Weekdays  []time.Weekday // для FreqWeekly
	StartTime time.Time      // начальное начало интервала
	Duration  time.Duration  // длительность интервала
	Until     *time.Time     // опционально: дата/время окончания
	Count     *int           // опционально: максимальное количество повторений
	// Исключения по датам (используем дату без времени).
	Exceptions map[time.Time]struct{}
}

// ExpandRecurringRule разворачивает правило повторений в набор интервалов
// внутри окна window. Интервалы, полностью лежащие вне window, отбрасываются.
func ExpandRecurringRule(rule RecurringRule, window TimeRange) ([]TimeRange, error) {
	if rule.Duration <= 0 {
		return nil, errors.New("recurring rule: duration must be positive")
	}
	if rule.Interval <= 0 {
		rule.Interval = 1
	}
	if rule.StartTime.IsZero() {
		return nil, errors.New("recurring rule: StartTime is required")
	}
	if !window.End.After(window.Start) {
		return []TimeRange{}, nil
	}

	// Weekly-правило с фильтром по дням недели сканируется по дням:
	// шаг целыми неделями никогда не менял бы день недели и пропускал
	// бы все дни списка, кроме дня StartTime.
	weeklyScan := rule.Freq == FreqWeekly && len(rule.Weekdays) > 0
	anchor := dateOnly(rule.StartTime)

	var result []TimeRange
	countGenerated := 0

	// Повторения только отодвигаются вперёд, поэтому за правым краем
	// окна продолжать незачем.
	for cur := rule.StartTime; cur.Before(window.End); cur = nextOccurrence(rule, cur, weeklyScan) {
		if rule.Until != nil && cur.After(*rule.Until) {
			break
		}
		if rule.Count != nil && countGenerated >= *rule.Count {
			break
		}

		if weeklyScan {
			days := int(dateOnly(cur).Sub(anchor).Hours() / 24)
			if !containsWeekday(rule.Weekdays, cur.Weekday()) || (days/7)%rule.Interval != 0 {
				continue
			}
		}

		// Проверка исключений по дате.
		if isException(rule, cur) {
			continue
		}

		occRange := TimeRange{Start: cur, End: cur.Add(rule.Duration)}
		if rangesOverlap(occRange, window, false) {
			result = append(result, occRange)
			countGenerated++
		}
	}

	return result, nil
}

func nextOccurrence(rule RecurringRule, cur time.Time, weeklyScan bool) time.Time {
	switch {
	case weeklyScan:
		return cur.AddDate(0, 0, 1)
	case rule.Freq == FreqWeekly:
		return cur.AddDate(0, 0, 7*rule.Interval)
	default:
		return cur.AddDate(0, 0, rule.Interval)
	}
}

func containsWeekday(list []time.Weekday, w time.Weekday) bool {
	for _, d := range list {
		if d == w {
			return true
		}
	}
	return false
}

func isException(rule RecurringRule, t time.Time) bool {
	if rule.Exceptions == nil {
		return false
	}
	day := dateOnly(t)
	_, ok := rule.Exceptions[day]
	return ok
}

func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
