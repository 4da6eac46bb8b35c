package catalog

import (
	"fmt"
	"sort"
	"time"

	"github.com/kovalyov-valentin/cyber-feed-bot/internal/model"
)

var arabicMonths = [...]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

// Столбик распределения публикаций по месяцам
type Bucket struct {
	Label string
	Count int
	Month time.Time
}

// Количество публикаций по месяцам в хронологическом порядке.
// Записи с нераспознанной датой не учитываются.
func Histogram(items []model.FeedItem, lang string, loc *time.Location) []Bucket {
	counts := make(map[time.Time]int)

	for _, item := range items {
		published, ok := PublishedAt(item, loc)
		if !ok {
			continue
		}
		counts[monthStart(published.Year(), published.Month(), loc)]++
	}

	buckets := make([]Bucket, 0, len(counts))
	for month, count := range counts {
		buckets = append(buckets, Bucket{Label: monthLabel(month, lang), Count: count, Month: month})
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Month.Before(buckets[j].Month)
	})

	return buckets
}

func monthLabel(month time.Time, lang string) string {
	if lang == "ar" {
		return fmt.Sprintf("%s %d", arabicMonths[month.Month()-1], month.Year())
	}
	return month.Format("Jan 2006")
}
