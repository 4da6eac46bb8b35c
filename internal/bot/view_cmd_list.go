package bot

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/botkit"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/botkit/markup"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/catalog"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/model"
)

// Страница записей категории: /news [page] [filter]
func ViewCmdList(provider SnapshotProvider, category model.Category, pageSize int) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		var (
			args   = botkit.Args(update)
			page   = 1
			filter = catalog.DateAll
		)

		if len(args) > 0 {
			page = parsePage(args[0])
		}
		if len(args) > 1 {
			f, err := catalog.ParseDateFilter(args[1])
			if err != nil {
				return reply(bot, update.Message.Chat.ID, markup.EscapeForMarkdown(err.Error()))
			}
			filter = f
		}

		text := renderCategory(provider.Latest(), category, page, pageSize, filter, time.Now())
		return reply(bot, update.Message.Chat.ID, text)
	}
}

func renderCategory(snapshot model.AggregateResult, category model.Category, page, pageSize int, filter catalog.DateFilter, now time.Time) string {
	if notice := snapshotNotice(snapshot, category); notice != "" {
		return notice
	}

	items := catalog.FilterByDate(snapshot.Items(category), filter, now)

	return renderPage(categoryTitle(category), catalog.Paginate(items, page, pageSize), "en")
}
