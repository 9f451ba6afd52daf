package telegram

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AZZOUZ007/SMOKED-MONEY/internal/store"
)

// fakeBot records outgoing traffic instead of talking to Telegram.
type fakeBot struct {
	failEdits bool
	nextID    int
	sends     []tgbotapi.MessageConfig
	edits     []tgbotapi.EditMessageTextConfig
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	switch v := c.(type) {
	case tgbotapi.EditMessageTextConfig:
		if f.failEdits {
			return tgbotapi.Message{}, errors.New("Bad Request: message to edit not found")
		}
		f.edits = append(f.edits, v)
		return tgbotapi.Message{MessageID: v.MessageID}, nil
	case tgbotapi.MessageConfig:
		f.nextID++
		f.sends = append(f.sends, v)
		return tgbotapi.Message{MessageID: f.nextID}, nil
	default:
		return tgbotapi.Message{}, nil
	}
}

func (f *fakeBot) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

// lastSendID returns the message id assigned to the most recent send.
func (f *fakeBot) lastSendID() int {
	return f.nextID
}

func newTestRouter(t *testing.T) (*Router, *fakeBot, store.Repo) {
	t.Helper()
	repo, err := store.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	bot := &fakeBot{nextID: 100}
	r := NewRouter(bot, zap.NewNop(), repo, time.UTC, 20)
	return r, bot, repo
}

func msgUpdate(id int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: id},
		Chat:      &tgbotapi.Chat{ID: id},
		Text:      text,
	}}
}

func cbUpdate(id int64, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: id},
		Message: &tgbotapi.Message{MessageID: 2, Chat: &tgbotapi.Chat{ID: id}},
		Data:    data,
	}}
}

// wideWindow is a query range that covers every event a test can record.
func wideWindow() (time.Time, time.Time) {
	return time.Now().Add(-24 * time.Hour), time.Now().Add(24 * time.Hour)
}
