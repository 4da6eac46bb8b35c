package bot

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/botkit/markup"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/catalog"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/model"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/summary"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/tags"
	"github.com/samber/lo"
)

const (
	noDataText      = "No data received from feeds. Please check your internet connection and try again."
	unavailableText = "This category is temporarily unavailable, try again later."
	snippetLength   = 150
)

// Снимок лент, которые собрал агрегатор
type SnapshotProvider interface {
	Latest() model.AggregateResult
}

// Отправка ответа в MarkdownV2
func reply(bot *tgbotapi.BotAPI, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.DisableWebPagePreview = true

	if _, err := bot.Send(msg); err != nil {
		return err
	}
	return nil
}

// news - вкладка атак, data - вкладка data
func parseCategory(arg string) (model.Category, error) {
	switch strings.ToLower(arg) {
	case "news", "attacks":
		return model.CategoryAttacks, nil
	case "data":
		return model.CategoryData, nil
	default:
		return "", fmt.Errorf("unknown category %q, use news or data", arg)
	}
}

// Текст-заглушка, если показывать нечего: снимок пуст или категория упала.
// Пустая строка - категорию можно рендерить.
func snapshotNotice(snapshot model.AggregateResult, category model.Category) string {
	if snapshot.Empty() {
		return markup.EscapeForMarkdown(noDataText)
	}
	if snapshot.Feed(category) == nil {
		return markup.Bold(categoryTitle(category)) + "\n\n" + markup.EscapeForMarkdown(unavailableText)
	}
	return ""
}

func categoryTitle(c model.Category) string {
	if c == model.CategoryAttacks {
		return "News"
	}
	return "Data"
}

// Номер страницы из аргумента, по умолчанию первая
func parsePage(arg string) int {
	page, err := strconv.Atoi(arg)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Арабский запрос - ищем и показываем теги на арабском
func detectLang(text string) string {
	if strings.IndexFunc(text, func(r rune) bool { return unicode.Is(unicode.Arabic, r) }) >= 0 {
		return "ar"
	}
	return "en"
}

func formatTags(ts []model.Tag) string {
	return strings.Join(lo.Map(ts, func(tag model.Tag, _ int) string {
		if tag.Highlight {
			return markup.Bold("#" + tag.Name)
		}
		return markup.EscapeForMarkdown("#" + tag.Name)
	}), " ")
}

// Одна запись списка: номер, заголовок ссылкой, дата, теги и кусок описания
func formatItem(n int, item model.FeedItem, itemTags []model.Tag) string {
	var b strings.Builder

	b.WriteString(markup.EscapeForMarkdown(strconv.Itoa(n) + ". "))
	b.WriteString(markup.Link(item.Title, item.Link))

	meta := lo.Compact([]string{
		markup.Italic(lo.Ternary(item.PubDate != "", item.PubDate, "N/A")),
		formatTags(itemTags),
	})
	b.WriteString("\n" + strings.Join(meta, " "))

	if snippet := catalog.Truncate(summary.PlainText(item.ContentSnippet), snippetLength); snippet != "" {
		b.WriteString("\n" + markup.EscapeForMarkdown(snippet))
	}

	return b.String()
}

func renderPage(title string, page catalog.Page[model.FeedItem], lang string) string {
	if len(page.Items) == 0 {
		return markup.Bold(title) + "\n\n" + markup.EscapeForMarkdown("Nothing found.")
	}

	entries := lo.Map(page.Items, func(item model.FeedItem, i int) string {
		return formatItem(page.Offset+i+1, item, tags.Extract(item, lang))
	})

	return fmt.Sprintf("%s %s\n\n%s",
		markup.Bold(title),
		markup.EscapeForMarkdown(fmt.Sprintf("(page %d/%d)", page.Number, page.Total)),
		strings.Join(entries, "\n\n"),
	)
}
