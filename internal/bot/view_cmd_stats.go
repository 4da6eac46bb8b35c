package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/botkit"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/botkit/markup"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/catalog"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/model"
	"github.com/samber/lo"
)

const maxBarWidth = 20

// Распределение публикаций по месяцам: /stats [news|data] [ar]
func ViewCmdStats(provider SnapshotProvider) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		var (
			args     = botkit.Args(update)
			category = model.CategoryAttacks
			lang     = "en"
		)

		if len(args) > 0 {
			c, err := parseCategory(args[0])
			if err != nil {
				return reply(bot, update.Message.Chat.ID, markup.EscapeForMarkdown(err.Error()))
			}
			category = c
		}
		if len(args) > 1 && args[1] == "ar" {
			lang = "ar"
		}

		return reply(bot, update.Message.Chat.ID, renderStats(provider.Latest(), category, lang, time.UTC))
	}
}

func renderStats(snapshot model.AggregateResult, category model.Category, lang string, loc *time.Location) string {
	if notice := snapshotNotice(snapshot, category); notice != "" {
		return notice
	}

	buckets := catalog.Histogram(snapshot.Items(category), lang, loc)
	if len(buckets) == 0 {
		return markup.Bold(categoryTitle(category)) + "\n\n" + markup.EscapeForMarkdown("No dated items.")
	}

	peak := lo.MaxBy(buckets, func(a, b catalog.Bucket) bool { return a.Count > b.Count }).Count

	lines := lo.Map(buckets, func(b catalog.Bucket, _ int) string {
		width := max(1, b.Count*maxBarWidth/peak)
		return fmt.Sprintf("%-14s %s %d", b.Label, strings.Repeat("█", width), b.Count)
	})

	return fmt.Sprintf("%s\n```\n%s\n```", markup.Bold(categoryTitle(category)+" per month"), strings.Join(lines, "\n"))
}
