package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/botkit"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/botkit/markup"
)

const helpText = `Cybersecurity news from two feeds: attacks (news) and data.

/news [page] [filter] - latest attacks
/data [page] [filter] - latest data stories
/search <query> - search both feeds, English or Arabic
/stats [news|data] [ar] - publications per month
/analyze <news|data> <n> [ar] - AI analysis of item n
/translate <news|data> [page] - translated page
/refresh - refetch both feeds, admins only

Filters: all, year2023, year2024, year2025, thisMonth, lastMonth, 3months, 6months`

func ViewCmdStart() botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		return reply(bot, update.Message.Chat.ID, markup.EscapeForMarkdown(helpText))
	}
}
