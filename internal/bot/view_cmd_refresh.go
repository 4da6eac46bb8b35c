package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/botkit"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/botkit/markup"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/model"
)

type Refresher interface {
	Refresh(ctx context.Context) model.AggregateResult
}

// Внеочередное обновление лент: /refresh
func ViewCmdRefresh(refresher Refresher) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		result := refresher.Refresh(ctx)
		return reply(bot, update.Message.Chat.ID, markup.EscapeForMarkdown(refreshSummary(result)))
	}
}

func refreshSummary(r model.AggregateResult) string {
	if r.Empty() {
		return noDataText
	}

	status := func(c model.Category) string {
		if r.Feed(c) == nil {
			return "failed"
		}
		return fmt.Sprintf("%d items", len(r.Items(c)))
	}

	return fmt.Sprintf("Feeds refreshed. News: %s, data: %s.", status(model.CategoryAttacks), status(model.CategoryData))
}
