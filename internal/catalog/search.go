package catalog

import (
	"cmp"
	"strings"

	"github.com/kovalyov-valentin/cyber-feed-bot/internal/model"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/tags"
	"github.com/samber/lo"
)

// Поиск по заголовку, описанию и тегам.
// Арабский запрос, совпадающий с именем тега, ищется еще и по английскому ключевому слову.
func Search(items []model.FeedItem, query, lang string) []model.FeedItem {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}

	keyword, mapped := tags.KeywordFor(query)

	return lo.Filter(items, func(item model.FeedItem, _ int) bool {
		var (
			title       = strings.ToLower(item.Title)
			description = strings.ToLower(cmp.Or(item.ContentSnippet, item.Description))
		)

		if strings.Contains(title, query) || strings.Contains(description, query) {
			return true
		}

		if mapped && strings.Contains(title+" "+description, keyword) {
			return true
		}

		return lo.SomeBy(tags.Extract(item, lang), func(tag model.Tag) bool {
			return strings.Contains(strings.ToLower(tag.Name), query)
		})
	})
}
