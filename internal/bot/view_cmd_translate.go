package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/botkit"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/botkit/markup"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/catalog"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/model"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/tags"
	"github.com/samber/lo"
)

type Translator interface {
	TranslateVisible(ctx context.Context, items []model.FeedItem, lang string, start, end int) []model.TranslatedItem
}

// Переведенная страница категории: /translate <news|data> [page]
func ViewCmdTranslate(provider SnapshotProvider, translator Translator, lang string, pageSize int) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		chatID := update.Message.Chat.ID

		args := botkit.Args(update)
		if len(args) < 1 {
			return reply(bot, chatID, markup.EscapeForMarkdown("Usage: /translate <news|data> [page]"))
		}

		category, err := parseCategory(args[0])
		if err != nil {
			return reply(bot, chatID, markup.EscapeForMarkdown(err.Error()))
		}

		page := 1
		if len(args) > 1 {
			page = parsePage(args[1])
		}

		snapshot := provider.Latest()
		if notice := snapshotNotice(snapshot, category); notice != "" {
			return reply(bot, chatID, notice)
		}

		var (
			items = snapshot.Items(category)
			p     = catalog.Paginate(items, page, pageSize)
			// Переводим только видимую страницу
			translated = translator.TranslateVisible(ctx, items, lang, p.Offset, p.Offset+len(p.Items))
		)

		return reply(bot, chatID, renderTranslated(categoryTitle(category), translated[p.Offset:p.Offset+len(p.Items)], p, lang))
	}
}

func renderTranslated(title string, visible []model.TranslatedItem, p catalog.Page[model.FeedItem], lang string) string {
	if len(visible) == 0 {
		return markup.Bold(title) + "\n\n" + markup.EscapeForMarkdown("Nothing found.")
	}

	entries := lo.Map(visible, func(item model.TranslatedItem, i int) string {
		// Теги по оригинальному английскому тексту
		return formatItem(p.Offset+i+1, item.FeedItem, tags.ExtractTranslated(item, lang))
	})

	return markup.Bold(title) + " " + markup.EscapeForMarkdown("("+lang+")") + "\n\n" + strings.Join(entries, "\n\n")
}
