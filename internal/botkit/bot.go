package botkit

import (
	"context"
	"runtime/debug"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Функция, которая отвечает на команду.
// update - событие от телеграма, bot - клиент, через который отвечаем.
type ViewFunc func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error

type Bot struct {
	api      *tgbotapi.BotAPI
	cmdViews map[string]ViewFunc
	// Сколько времени дается на обработку одной команды
	updateTimeout time.Duration
}

func New(api *tgbotapi.BotAPI) *Bot {
	return &Bot{
		api:           api,
		cmdViews:      make(map[string]ViewFunc),
		updateTimeout: 30 * time.Second,
	}
}

func (b *Bot) RegisterCmdView(cmd string, view ViewFunc) {
	b.cmdViews[cmd] = view
}

// Команды, для которых зарегистрированы view
func (b *Bot) Commands() []string {
	cmds := make([]string, 0, len(b.cmdViews))
	for cmd := range b.cmdViews {
		cmds = append(cmds, cmd)
	}
	return cmds
}

func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case update := <-updates:
			updateCtx, updateCancel := context.WithTimeout(ctx, b.updateTimeout)
			b.handleUpdate(updateCtx, update)
			updateCancel()
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	// Паника во view не должна ронять бота
	defer func() {
		if p := recover(); p != nil {
			log.Error("panic recovered", "panic", p, "stack", string(debug.Stack()))
		}
	}()

	if update.Message == nil || !update.Message.IsCommand() {
		return
	}

	view, ok := b.cmdViews[update.Message.Command()]
	if !ok {
		return
	}

	if err := view(ctx, b.api, update); err != nil {
		log.Error("failed to handle update", "cmd", update.Message.Command(), "err", err)

		if _, err := b.api.Send(
			tgbotapi.NewMessage(update.Message.Chat.ID, "internal error"),
		); err != nil {
			log.Error("failed to send message", "err", err)
		}
	}
}

// Аргументы команды, разбитые по пробелам
func Args(update tgbotapi.Update) []string {
	if update.Message == nil {
		return nil
	}
	return strings.Fields(update.Message.CommandArguments())
}
