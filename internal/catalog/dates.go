package catalog

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/model"
	"github.com/samber/lo"
)

// Пресет фильтра по дате публикации
type DateFilter string

const (
	DateAll       DateFilter = "all"
	DateYear2023  DateFilter = "year2023"
	DateYear2024  DateFilter = "year2024"
	DateYear2025  DateFilter = "year2025"
	DateThisMonth DateFilter = "thisMonth"
	DateLastMonth DateFilter = "lastMonth"
	Date3Months   DateFilter = "3months"
	Date6Months   DateFilter = "6months"
)

var DateFilters = []DateFilter{
	DateAll, DateYear2023, DateYear2024, DateYear2025,
	DateThisMonth, DateLastMonth, Date3Months, Date6Months,
}

func ParseDateFilter(s string) (DateFilter, error) {
	for _, f := range DateFilters {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown date filter %q", s)
}

// Границы пресета относительно now, обе включительно.
// Для DateAll ok == false.
func (f DateFilter) Range(now time.Time) (start, end time.Time, ok bool) {
	year, month, loc := now.Year(), now.Month(), now.Location()

	switch f {
	case DateYear2023, DateYear2024, DateYear2025:
		y := map[DateFilter]int{DateYear2023: 2023, DateYear2024: 2024, DateYear2025: 2025}[f]
		return monthStart(y, time.January, loc), monthEnd(y, time.December, loc), true
	case DateThisMonth:
		return monthStart(year, month, loc), monthEnd(year, month, loc), true
	case DateLastMonth:
		return monthStart(year, month-1, loc), monthEnd(year, month-1, loc), true
	case Date3Months:
		return monthStart(year, month-3, loc), monthEnd(year, month, loc), true
	case Date6Months:
		return monthStart(year, month-6, loc), monthEnd(year, month, loc), true
	default:
		return time.Time{}, time.Time{}, false
	}
}

// time.Date сам нормализует месяц вне диапазона 1..12
func monthStart(year int, month time.Month, loc *time.Location) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, loc)
}

// Нулевой день следующего месяца - последний день нужного
func monthEnd(year int, month time.Month, loc *time.Location) time.Time {
	return endOfDay(time.Date(year, month+1, 0, 0, 0, 0, 0, loc))
}

// Оставляет записи, опубликованные в границах пресета.
// Записи без даты или с нераспознанной датой отбрасываются.
func FilterByDate(items []model.FeedItem, f DateFilter, now time.Time) []model.FeedItem {
	start, end, ok := f.Range(now)
	if !ok {
		return items
	}

	return lo.Filter(items, func(item model.FeedItem, _ int) bool {
		published, ok := PublishedAt(item, now.Location())
		if !ok {
			return false
		}

		day := startOfDay(published)
		return !day.Before(start) && !day.After(end)
	})
}

// Дата публикации в часовом поясе loc
func PublishedAt(item model.FeedItem, loc *time.Location) (time.Time, bool) {
	if item.PubDate == "" {
		return time.Time{}, false
	}

	t, err := dateparse.ParseAny(item.PubDate)
	if err != nil {
		return time.Time{}, false
	}

	return t.In(loc), true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
