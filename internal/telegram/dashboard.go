package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/AZZOUZ007/SMOKED-MONEY/internal/domain"
)

// RenderOutcome tells whether the dashboard was edited in place or a new
// message had to be created.
type RenderOutcome int

const (
	RenderEdited RenderOutcome = iota
	RenderCreated
)

// aggregates computes the four standard windows for a user, anchored to
// "now" in the router's location.
func (r *Router) aggregates(ctx context.Context, userID int64, now time.Time) (domain.Aggregates, error) {
	var agg domain.Aggregates
	var err error

	if agg.Daily, err = r.repo.SumUsage(ctx, userID, domain.DayStart(now), now); err != nil {
		return agg, err
	}
	if agg.Weekly, err = r.repo.SumUsage(ctx, userID, domain.WeekStart(now), now); err != nil {
		return agg, err
	}
	if agg.Monthly, err = r.repo.SumUsage(ctx, userID, domain.MonthStart(now), now); err != nil {
		return agg, err
	}
	agg.Yearly, err = r.repo.SumUsage(ctx, userID, domain.YearStart(now), now)
	return agg, err
}

// renderDashboard builds the summary for a user and either edits the stored
// dashboard message or sends a new one. A fresh message is forced when
// requested or when no reference exists; a failed edit falls back to a fresh
// send exactly once, with the new reference recorded. Transport failures
// never escape this method — only storage errors do.
func (r *Router) renderDashboard(ctx context.Context, chatID, userID int64, fresh bool) (RenderOutcome, error) {
	u, err := r.repo.GetUser(ctx, userID)
	if err != nil {
		return RenderCreated, err
	}

	now := time.Now().In(r.loc)
	agg, err := r.aggregates(ctx, userID, now)
	if err != nil {
		return RenderCreated, err
	}

	forecast := domain.Forecast(agg.Daily.Cost, now)
	theoretical := domain.TheoreticalSpentSinceStart(agg.Daily.Cost, u.StartDate, now)

	text := dashboardText(u, agg, forecast, theoretical)
	markup := dashboardKeyboard(r.packSize)

	if !fresh && u.DashboardMessageID != nil {
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, *u.DashboardMessageID, text, markup)
		edit.ParseMode = tgbotapi.ModeMarkdown
		_, editErr := r.bot.Send(edit)
		if editErr == nil {
			return RenderEdited, nil
		}
		// Message may be deleted, too old, or otherwise unreachable;
		// fall back to a fresh send. The old message is not cleaned up.
		r.log.Warn("dashboard edit failed, sending new message",
			zap.Error(editErr), zap.Int64("userID", userID))
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = markup
	sent, err := r.bot.Send(msg)
	if err != nil {
		r.log.Warn("dashboard send failed", zap.Error(err), zap.Int64("userID", userID))
		return RenderCreated, nil
	}
	if err := r.repo.UpdateDashboardMessageID(ctx, userID, sent.MessageID); err != nil {
		return RenderCreated, err
	}
	return RenderCreated, nil
}
