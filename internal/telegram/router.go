package telegram

import (
	"context"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/AZZOUZ007/SMOKED-MONEY/internal/domain"
	"github.com/AZZOUZ007/SMOKED-MONEY/internal/store"
)

// BotAPI is the subset of tgbotapi.BotAPI the router needs. *tgbotapi.BotAPI
// satisfies it; tests substitute a fake.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// session is the per-user conversational state: the onboarding flow step
// and the pending free-text interpretation. Non-persistent, in-memory.
type session struct {
	flow    domain.FlowState
	pending domain.Pending
}

// Router wires Telegram updates to handlers and holds minimal in-memory state.
type Router struct {
	bot      BotAPI
	log      *zap.Logger
	repo     store.Repo
	loc      *time.Location
	packSize int
	state    map[int64]session // userID -> session
	mu       sync.RWMutex
}

// NewRouter creates a new Telegram router.
func NewRouter(bot BotAPI, log *zap.Logger, repo store.Repo, loc *time.Location, packSize int) *Router {
	if loc == nil {
		loc = time.Local
	}
	if packSize <= 0 {
		packSize = 20
	}
	return &Router{
		bot:      bot,
		log:      log,
		repo:     repo,
		loc:      loc,
		packSize: packSize,
		state:    make(map[int64]session),
	}
}

func (r *Router) getSession(userID int64) session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state[userID]
}

func (r *Router) setFlow(userID int64, f domain.FlowState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.state[userID]
	s.flow = f
	r.state[userID] = s
}

func (r *Router) setPending(userID int64, p domain.Pending) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.state[userID]
	s.pending = p
	r.state[userID] = s
}

// resetSession drops all conversational state for a user.
func (r *Router) resetSession(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.state, userID)
}

// HandleUpdate routes a single update to the appropriate handler.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	// Text messages
	if upd.Message != nil {
		msg := upd.Message
		chatID := msg.Chat.ID
		userID := chatID
		if msg.From != nil {
			userID = msg.From.ID
		}
		text := strings.TrimSpace(msg.Text)

		switch {
		case strings.HasPrefix(text, "/start"):
			r.handleStart(ctx, chatID, userID)
		case strings.HasPrefix(text, "/cancel"):
			r.handleCancel(ctx, userID)
		default:
			r.handleText(ctx, chatID, userID, text)
		}
		return
	}

	// Callback queries (inline buttons)
	if upd.CallbackQuery != nil {
		cb := upd.CallbackQuery
		if cb.Message == nil {
			return
		}
		r.handleCallback(ctx, cb.Message.Chat.ID, cb.From.ID, cb.Data, cb.ID)
		return
	}
}
