package middleware

import (
	"context"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func TestRecoverSwallowsPanic(t *testing.T) {
	panicking := func(ctx context.Context, b *bot.Bot, update *models.Update) {
		panic("handler exploded")
	}

	wrapped := Recover()(panicking)

	update := &models.Update{
		Message: &models.Message{
			Chat: models.Chat{ID: 42},
			From: &models.User{ID: 7},
		},
	}

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic escaped the middleware: %v", r)
		}
	}()
	wrapped(context.Background(), nil, update)
}

func TestUpdateInfo(t *testing.T) {
	tests := []struct {
		name       string
		update     *models.Update
		wantType   string
		wantChatID int64
		wantUserID int64
	}{
		{
			name: "text message",
			update: &models.Update{Message: &models.Message{
				Chat: models.Chat{ID: 10},
				From: &models.User{ID: 20},
			}},
			wantType:   "message",
			wantChatID: 10,
			wantUserID: 20,
		},
		{
			name: "photo message",
			update: &models.Update{Message: &models.Message{
				Chat:  models.Chat{ID: 11},
				From:  &models.User{ID: 21},
				Photo: []models.PhotoSize{{FileID: "f"}},
			}},
			wantType:   "photo",
			wantChatID: 11,
			wantUserID: 21,
		},
		{
			name: "callback query",
			update: &models.Update{CallbackQuery: &models.CallbackQuery{
				From: models.User{ID: 22},
				Message: models.MaybeInaccessibleMessage{
					Message: &models.Message{Chat: models.Chat{ID: 12}},
				},
			}},
			wantType:   "callback_query",
			wantChatID: 12,
			wantUserID: 22,
		},
		{
			name:     "empty update",
			update:   &models.Update{},
			wantType: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotType, gotChat, gotUser := updateInfo(tt.update)
			if gotType != tt.wantType || gotChat != tt.wantChatID || gotUser != tt.wantUserID {
				t.Errorf("updateInfo() = (%q, %d, %d), want (%q, %d, %d)",
					gotType, gotChat, gotUser, tt.wantType, tt.wantChatID, tt.wantUserID)
			}
		})
	}
}
