package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/botkit"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/botkit/markup"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/catalog"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/model"
	"github.com/samber/lo"
)

// Поиск по обеим категориям: /search <query>
func ViewCmdSearch(provider SnapshotProvider, pageSize int) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		query := strings.TrimSpace(update.Message.CommandArguments())
		if query == "" {
			return reply(bot, update.Message.Chat.ID, markup.EscapeForMarkdown("Usage: /search <query>"))
		}

		return reply(bot, update.Message.Chat.ID, renderSearch(provider.Latest(), query, pageSize))
	}
}

func renderSearch(snapshot model.AggregateResult, query string, pageSize int) string {
	if snapshot.Empty() {
		return markup.EscapeForMarkdown(noDataText)
	}

	var (
		lang = detectLang(query)
		all  = lo.FlatMap(model.Categories, func(c model.Category, _ int) []model.FeedItem {
			return snapshot.Items(c)
		})
		found = catalog.Search(all, query, lang)
	)

	return renderPage("Search: "+query, catalog.Paginate(found, 1, pageSize), lang)
}
