package middleware

import (
	"context"

	"github.com/charmbracelet/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/botkit"
	"github.com/samber/lo"
)

const deniedText = "You are not allowed to run this command"

// Пропускает команду только от администраторов канала
func AdminOnly(channelID int64, next botkit.ViewFunc) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		admins, err := bot.GetChatAdministrators(
			tgbotapi.ChatAdministratorsConfig{
				ChatConfig: tgbotapi.ChatConfig{
					ChatID: channelID,
				},
			},
		)
		if err != nil {
			return err
		}

		if isAdmin(admins, update.Message.From) {
			return next(ctx, bot, update)
		}

		log.Warn("command denied", "user", update.Message.From.UserName, "command", update.Message.Command())

		if _, err := bot.Send(tgbotapi.NewMessage(update.Message.Chat.ID, deniedText)); err != nil {
			return err
		}
		return nil
	}
}

func isAdmin(admins []tgbotapi.ChatMember, user *tgbotapi.User) bool {
	if user == nil {
		return false
	}
	return lo.ContainsBy(admins, func(admin tgbotapi.ChatMember) bool {
		return admin.User != nil && admin.User.ID == user.ID
	})
}
