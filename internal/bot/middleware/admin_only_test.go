package middleware

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func TestIsAdmin(t *testing.T) {
	admins := []tgbotapi.ChatMember{
		{User: &tgbotapi.User{ID: 1}},
		{User: nil},
		{User: &tgbotapi.User{ID: 7}},
	}

	tests := []struct {
		name string
		user *tgbotapi.User
		want bool
	}{
		{"admin", &tgbotapi.User{ID: 7}, true},
		{"stranger", &tgbotapi.User{ID: 3}, false},
		{"no sender", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isAdmin(admins, tt.user); got != tt.want {
				t.Errorf("isAdmin() = %v, want %v", got, tt.want)
			}
		})
	}
}
