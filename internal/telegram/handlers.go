package telegram

import (
	"context"
	"errors"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/AZZOUZ007/SMOKED-MONEY/internal/domain"
	"github.com/AZZOUZ007/SMOKED-MONEY/internal/store"
)

// --- Generic helpers ---

func (r *Router) sendText(chatID int64, text string) {
	_, _ = r.bot.Send(tgbotapi.NewMessage(chatID, text))
}

func (r *Router) answerCallback(id string) {
	_, _ = r.bot.Request(tgbotapi.NewCallback(id, ""))
}

// --- Commands ---

// handleStart begins onboarding for unknown users and shows the dashboard
// (as a fresh message) for known ones.
func (r *Router) handleStart(ctx context.Context, chatID, userID int64) {
	_, err := r.repo.GetUser(ctx, userID)
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		r.resetSession(userID)
		r.setFlow(userID, domain.FlowAwaitingPrice)
		r.sendText(chatID, askPriceText)
	case err != nil:
		r.log.Error("get user failed", zap.Error(err), zap.Int64("userID", userID))
	default:
		r.resetSession(userID)
		if _, err := r.renderDashboard(ctx, chatID, userID, true); err != nil {
			r.log.Error("render dashboard failed", zap.Error(err), zap.Int64("userID", userID))
		}
	}
}

// handleCancel drops any in-progress flow and pending flag. No reply is
// sent, by design.
func (r *Router) handleCancel(_ context.Context, userID int64) {
	r.resetSession(userID)
}

// --- Free text ---

// handleText interprets a plain message according to the user's session:
// onboarding step first, then pending flag, otherwise it is ignored.
func (r *Router) handleText(ctx context.Context, chatID, userID int64, text string) {
	sess := r.getSession(userID)

	switch sess.flow {
	case domain.FlowAwaitingPrice:
		r.onboardingPrice(ctx, chatID, userID, text)
		return
	case domain.FlowAwaitingStartDate:
		r.onboardingStartDate(ctx, chatID, userID, text)
		return
	}

	switch sess.pending {
	case domain.PendingPrice:
		r.applyNewPrice(ctx, chatID, userID, text)
	case domain.PendingQuantity:
		r.applyConsumedQuantity(ctx, chatID, userID, text)
	default:
		// Unrelated chatter: no feedback, no state change.
	}
}

// --- Onboarding flow ---

func (r *Router) onboardingPrice(ctx context.Context, chatID, userID int64, text string) {
	price, err := domain.ParsePrice(text)
	if err != nil {
		r.sendText(chatID, invalidPriceText)
		return
	}
	if err := r.repo.CreateUser(ctx, userID, price); err != nil {
		r.log.Error("create user failed", zap.Error(err), zap.Int64("userID", userID))
		return
	}
	r.setFlow(userID, domain.FlowAwaitingStartDate)
	r.sendText(chatID, priceSetText(price))
}

func (r *Router) onboardingStartDate(ctx context.Context, chatID, userID int64, text string) {
	if !strings.EqualFold(strings.TrimSpace(text), "skip") {
		date, err := domain.ParseStartDate(text)
		if err != nil {
			r.sendText(chatID, invalidDateText)
			return
		}
		if err := r.repo.UpdateStartDate(ctx, userID, date); err != nil {
			r.log.Error("update start date failed", zap.Error(err), zap.Int64("userID", userID))
			return
		}
	}
	r.resetSession(userID)
	if _, err := r.renderDashboard(ctx, chatID, userID, true); err != nil {
		r.log.Error("render dashboard failed", zap.Error(err), zap.Int64("userID", userID))
	}
}

// --- Button actions ---

func (r *Router) handleCallback(ctx context.Context, chatID, userID int64, data, cbID string) {
	r.answerCallback(cbID)

	u, err := r.repo.GetUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			r.log.Error("get user failed", zap.Error(err), zap.Int64("userID", userID))
		}
		return
	}

	switch data {
	case actionAddPack:
		err = r.repo.UpdateStock(ctx, userID, u.Stock+r.packSize)

	case actionAddOne:
		err = r.repo.UpdateStock(ctx, userID, u.Stock+1)

	case actionSmokeOne:
		// Out of stock: nothing happens, not even an event.
		if u.Stock > 0 {
			err = r.consume(ctx, userID, u, 1)
		}

	case actionSmokeMore:
		// Next free-text message is the quantity. No prompt is sent.
		r.setPending(userID, domain.PendingQuantity)
		return

	case actionChangePrice:
		// Next free-text message is the new price. No prompt is sent.
		r.setPending(userID, domain.PendingPrice)
		return

	default:
		// Unknown callback — ignore silently
		return
	}

	if err != nil {
		r.log.Error("callback action failed", zap.Error(err),
			zap.String("action", data), zap.Int64("userID", userID))
		return
	}
	if _, err := r.renderDashboard(ctx, chatID, userID, false); err != nil {
		r.log.Error("render dashboard failed", zap.Error(err), zap.Int64("userID", userID))
	}
}

// consume decrements stock by qty and appends the matching usage event.
// Callers must have checked qty <= u.Stock.
func (r *Router) consume(ctx context.Context, userID int64, u *domain.User, qty int) error {
	if err := r.repo.UpdateStock(ctx, userID, u.Stock-qty); err != nil {
		return err
	}
	return r.repo.LogUsage(ctx, userID, time.Now(), qty, float64(qty)*u.UnitPrice)
}

// --- Pending free-text follow-ups ---

// applyNewPrice updates the unit price from a pending CHANGE_PRICE flag.
// The flag is cleared whether or not the text parses; bad input is dropped
// silently and the dashboard refreshed either way.
func (r *Router) applyNewPrice(ctx context.Context, chatID, userID int64, text string) {
	r.setPending(userID, domain.NoPending)

	if price, err := domain.ParsePrice(text); err == nil {
		if err := r.repo.UpdateUnitPrice(ctx, userID, price); err != nil {
			r.log.Error("update price failed", zap.Error(err), zap.Int64("userID", userID))
			return
		}
	}
	if _, err := r.renderDashboard(ctx, chatID, userID, false); err != nil {
		r.log.Error("render dashboard failed", zap.Error(err), zap.Int64("userID", userID))
	}
}

// applyConsumedQuantity records a multi-unit consumption from a pending
// SMOKE_MORE flag. Quantities that don't parse or exceed stock are dropped
// silently; the flag is cleared regardless.
func (r *Router) applyConsumedQuantity(ctx context.Context, chatID, userID int64, text string) {
	r.setPending(userID, domain.NoPending)

	u, err := r.repo.GetUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			r.log.Error("get user failed", zap.Error(err), zap.Int64("userID", userID))
		}
		return
	}

	if qty, err := domain.ParseQuantity(text); err == nil && qty <= u.Stock {
		if err := r.consume(ctx, userID, u, qty); err != nil {
			r.log.Error("consume failed", zap.Error(err), zap.Int64("userID", userID))
			return
		}
	}
	if _, err := r.renderDashboard(ctx, chatID, userID, false); err != nil {
		r.log.Error("render dashboard failed", zap.Error(err), zap.Int64("userID", userID))
	}
}
