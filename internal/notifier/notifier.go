package notifier

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/botkit/markup"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/catalog"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/model"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/summary"
	"github.com/samber/lo"
	"github.com/tomakado/containers/set"
)

const (
	// Сколько GUID опубликованных записей помним
	DefaultPostedLimit = 500
	summaryLength      = 400
)

type SnapshotProvider interface {
	Latest() model.AggregateResult
}

type Analyzer interface {
	Enabled() bool
	Analyze(ctx context.Context, item model.FeedItem, lang string) (string, error)
}

// Реализуется *tgbotapi.BotAPI
type MessageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Notifier struct {
	// Откуда берем свежий снимок лент
	snapshots SnapshotProvider
	// AI разбор записи, может быть выключен
	analyzer Analyzer
	sender   MessageSender
	// Интервал, с которым notifier проверяет есть ли новые записи
	sendInterval time.Duration
	// id канала куда постим записи
	channelID int64

	mu sync.Mutex
	// GUID уже опубликованных записей, старые вытесняются
	posted      []string
	postedLimit int
}

func New(
	snapshots SnapshotProvider,
	analyzer Analyzer,
	sender MessageSender,
	sendInterval time.Duration,
	channelID int64,
) *Notifier {
	return &Notifier{
		snapshots:    snapshots,
		analyzer:     analyzer,
		sender:       sender,
		sendInterval: sendInterval,
		channelID:    channelID,
		postedLimit:  DefaultPostedLimit,
	}
}

func (n *Notifier) Start(ctx context.Context) error {
	ticker := time.NewTicker(n.sendInterval)
	defer ticker.Stop()

	if err := n.SelectAndSendItem(ctx); err != nil {
		log.Error("failed to send item", "err", err)
	}

	for {
		select {
		case <-ticker.C:
			if err := n.SelectAndSendItem(ctx); err != nil {
				log.Error("failed to send item", "err", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Выбирает первую неопубликованную запись и отправляет ее в канал
func (n *Notifier) SelectAndSendItem(ctx context.Context) error {
	item, ok := n.nextItem(n.snapshots.Latest())
	if !ok {
		return nil
	}

	analysis := n.analyze(ctx, item)

	if err := n.sendItem(item, analysis); err != nil {
		return fmt.Errorf("send %q: %w", item.Link, err)
	}

	n.markPosted(item.GUID)
	return nil
}

// Сначала атаки, потом data
func (n *Notifier) nextItem(snapshot model.AggregateResult) (model.FeedItem, bool) {
	n.mu.Lock()
	posted := set.New(n.posted...)
	n.mu.Unlock()

	for _, category := range model.Categories {
		item, found := lo.Find(snapshot.Items(category), func(item model.FeedItem) bool {
			return item.GUID != "" && !posted.Contains(item.GUID)
		})
		if found {
			return item, true
		}
	}

	return model.FeedItem{}, false
}

// Ошибка анализа не мешает публикации
func (n *Notifier) analyze(ctx context.Context, item model.FeedItem) string {
	if n.analyzer == nil || !n.analyzer.Enabled() {
		return ""
	}

	analysis, err := n.analyzer.Analyze(ctx, item, "en")
	if err != nil {
		log.Warn("analysis skipped", "link", item.Link, "err", err)
		return ""
	}

	return analysis
}

func (n *Notifier) markPosted(guid string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.posted = append(n.posted, guid)
	if over := len(n.posted) - n.postedLimit; over > 0 {
		n.posted = n.posted[over:]
	}
}

func (n *Notifier) sendItem(item model.FeedItem, analysis string) error {
	msg := tgbotapi.NewMessage(n.channelID, formatPost(item, analysis))
	msg.ParseMode = tgbotapi.ModeMarkdownV2

	_, err := n.sender.Send(msg)
	return err
}

// Заголовок жирным, краткое описание, разбор и ссылка
func formatPost(item model.FeedItem, analysis string) string {
	parts := lo.Compact([]string{
		markup.Bold(item.Title),
		markup.EscapeForMarkdown(catalog.Truncate(summary.PlainText(item.ContentSnippet), summaryLength)),
		markup.EscapeForMarkdown(strings.TrimSpace(analysis)),
		markup.EscapeForMarkdown(item.Link),
	})

	return strings.Join(parts, "\n\n")
}
