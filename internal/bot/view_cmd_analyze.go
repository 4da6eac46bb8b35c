package bot

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/botkit"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/botkit/markup"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/model"
)

type Analyzer interface {
	Analyze(ctx context.Context, item model.FeedItem, lang string) (string, error)
}

// AI разбор записи: /analyze <news|data> <n> [ar]
func ViewCmdAnalyze(provider SnapshotProvider, analyzer Analyzer) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		chatID := update.Message.Chat.ID

		args := botkit.Args(update)
		if len(args) < 2 {
			return reply(bot, chatID, markup.EscapeForMarkdown("Usage: /analyze <news|data> <n> [ar]"))
		}

		item, err := pickItem(provider.Latest(), args[0], args[1])
		if err != nil {
			return reply(bot, chatID, markup.EscapeForMarkdown(err.Error()))
		}

		lang := "en"
		if len(args) > 2 && args[2] == "ar" {
			lang = "ar"
		}

		analysis, err := analyzer.Analyze(ctx, item, lang)
		if err != nil {
			// Текст ошибки уже для пользователя
			return reply(bot, chatID, markup.EscapeForMarkdown(err.Error()))
		}

		return reply(bot, chatID, markup.Link(item.Title, item.Link)+"\n\n"+markup.EscapeForMarkdown(analysis))
	}
}

// Запись по номеру из списка категории, нумерация с единицы
func pickItem(snapshot model.AggregateResult, categoryArg, indexArg string) (model.FeedItem, error) {
	category, err := parseCategory(categoryArg)
	if err != nil {
		return model.FeedItem{}, err
	}

	items := snapshot.Items(category)

	n, err := strconv.Atoi(indexArg)
	if err != nil || n < 1 || n > len(items) {
		return model.FeedItem{}, fmt.Errorf("item %s not found, %s has %d items", indexArg, categoryArg, len(items))
	}

	return items[n-1], nil
}
