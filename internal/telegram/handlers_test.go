package telegram

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AZZOUZ007/SMOKED-MONEY/internal/store"
)

func TestOnboardingCreatesProfile(t *testing.T) {
	ctx := context.Background()
	r, bot, repo := newTestRouter(t)

	r.HandleUpdate(ctx, msgUpdate(1, "/start"))
	require.Len(t, bot.sends, 1, "price prompt expected")

	// Garbage at the price step re-prompts and creates nothing.
	r.HandleUpdate(ctx, msgUpdate(1, "abc"))
	_, err := repo.GetUser(ctx, 1)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	require.Len(t, bot.sends, 2)

	// A valid price creates the profile with zero stock.
	r.HandleUpdate(ctx, msgUpdate(1, "1.5"))
	u, err := repo.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.5, u.UnitPrice)
	assert.Equal(t, 0, u.Stock)

	// Garbage at the date step re-prompts, no dashboard yet.
	r.HandleUpdate(ctx, msgUpdate(1, "not-a-date"))
	u, err = repo.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, u.DashboardMessageID)

	// "skip" finishes without a start date and shows the dashboard.
	r.HandleUpdate(ctx, msgUpdate(1, "SKIP"))
	u, err = repo.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, u.StartDate)
	require.NotNil(t, u.DashboardMessageID)
	assert.Equal(t, bot.lastSendID(), *u.DashboardMessageID)
}

func TestOnboardingStoresStartDate(t *testing.T) {
	ctx := context.Background()
	r, _, repo := newTestRouter(t)

	r.HandleUpdate(ctx, msgUpdate(2, "/start"))
	r.HandleUpdate(ctx, msgUpdate(2, "0.5"))
	// Future dates are accepted and stored as-is.
	r.HandleUpdate(ctx, msgUpdate(2, "2099-01-01"))

	u, err := repo.GetUser(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "2099-01-01", u.StartDate)
	assert.NotNil(t, u.DashboardMessageID)
}

func TestStartWithProfileShowsDashboard(t *testing.T) {
	ctx := context.Background()
	r, bot, repo := newTestRouter(t)
	require.NoError(t, repo.CreateUser(ctx, 3, 1.0))

	r.HandleUpdate(ctx, msgUpdate(3, "/start"))

	require.Len(t, bot.sends, 1)
	u, err := repo.GetUser(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, u.DashboardMessageID)
}

func TestCancelAbortsOnboarding(t *testing.T) {
	ctx := context.Background()
	r, bot, repo := newTestRouter(t)

	r.HandleUpdate(ctx, msgUpdate(4, "/start"))
	r.HandleUpdate(ctx, msgUpdate(4, "/cancel"))
	sent := len(bot.sends)

	// After cancel, a would-be price is plain chatter: no profile, no reply.
	r.HandleUpdate(ctx, msgUpdate(4, "1.5"))
	_, err := repo.GetUser(ctx, 4)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.Len(t, bot.sends, sent)
}

func TestAddPackAndAddOne(t *testing.T) {
	ctx := context.Background()
	r, _, repo := newTestRouter(t)
	require.NoError(t, repo.CreateUser(ctx, 5, 0.5))
	require.NoError(t, repo.UpdateDashboardMessageID(ctx, 5, 500))

	r.HandleUpdate(ctx, cbUpdate(5, "ADD_PACK"))
	r.HandleUpdate(ctx, cbUpdate(5, "ADD_CIG"))

	u, err := repo.GetUser(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 21, u.Stock)
}

func TestSmokeOneRecordsEvent(t *testing.T) {
	ctx := context.Background()
	r, bot, repo := newTestRouter(t)
	require.NoError(t, repo.CreateUser(ctx, 6, 0.5))
	require.NoError(t, repo.UpdateStock(ctx, 6, 2))
	require.NoError(t, repo.UpdateDashboardMessageID(ctx, 6, 500))

	r.HandleUpdate(ctx, cbUpdate(6, "SMOKE_ONE"))

	u, err := repo.GetUser(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, 1, u.Stock)

	from, to := wideWindow()
	sum, err := repo.SumUsage(ctx, 6, from, to)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Quantity)
	assert.InDelta(t, 0.5, sum.Cost, 1e-9)

	// Dashboard refreshed in place, not re-sent.
	assert.Len(t, bot.edits, 1)
	assert.Empty(t, bot.sends)
}

func TestSmokeOneAtZeroStockIsNoop(t *testing.T) {
	ctx := context.Background()
	r, _, repo := newTestRouter(t)
	require.NoError(t, repo.CreateUser(ctx, 7, 0.5))
	require.NoError(t, repo.UpdateDashboardMessageID(ctx, 7, 500))

	r.HandleUpdate(ctx, cbUpdate(7, "SMOKE_ONE"))

	u, err := repo.GetUser(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, u.Stock)

	from, to := wideWindow()
	sum, err := repo.SumUsage(ctx, 7, from, to)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Quantity)
}

func TestSmokedMoreFlow(t *testing.T) {
	ctx := context.Background()
	r, bot, repo := newTestRouter(t)
	require.NoError(t, repo.CreateUser(ctx, 8, 0.5))
	require.NoError(t, repo.UpdateStock(ctx, 8, 10))
	require.NoError(t, repo.UpdateDashboardMessageID(ctx, 8, 500))

	// The button only arms the flag; no prompt is sent.
	r.HandleUpdate(ctx, cbUpdate(8, "SMOKE_MORE"))
	assert.Empty(t, bot.sends)
	assert.Empty(t, bot.edits)

	r.HandleUpdate(ctx, msgUpdate(8, "4"))

	u, err := repo.GetUser(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, 6, u.Stock)

	from, to := wideWindow()
	sum, err := repo.SumUsage(ctx, 8, from, to)
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Quantity)
	assert.InDelta(t, 2.0, sum.Cost, 1e-9)
	assert.Len(t, bot.edits, 1)
}

func TestSmokedMoreExceedingStockIsDropped(t *testing.T) {
	ctx := context.Background()
	r, _, repo := newTestRouter(t)
	require.NoError(t, repo.CreateUser(ctx, 9, 0.5))
	require.NoError(t, repo.UpdateStock(ctx, 9, 10))
	require.NoError(t, repo.UpdateDashboardMessageID(ctx, 9, 500))

	r.HandleUpdate(ctx, cbUpdate(9, "SMOKE_MORE"))
	r.HandleUpdate(ctx, msgUpdate(9, "50"))

	u, err := repo.GetUser(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, 10, u.Stock)

	from, to := wideWindow()
	sum, err := repo.SumUsage(ctx, 9, from, to)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Quantity)

	// The flag was cleared despite the bad input: a follow-up number is
	// plain chatter now.
	r.HandleUpdate(ctx, msgUpdate(9, "3"))
	u, err = repo.GetUser(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, 10, u.Stock)
}

func TestChangePriceFlow(t *testing.T) {
	ctx := context.Background()
	r, _, repo := newTestRouter(t)
	require.NoError(t, repo.CreateUser(ctx, 10, 0.5))
	require.NoError(t, repo.UpdateDashboardMessageID(ctx, 10, 500))

	r.HandleUpdate(ctx, cbUpdate(10, "CHANGE_PRICE"))
	r.HandleUpdate(ctx, msgUpdate(10, "2.5"))

	u, err := repo.GetUser(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 2.5, u.UnitPrice)
}

func TestChangePriceInvalidInputDropped(t *testing.T) {
	ctx := context.Background()
	r, bot, repo := newTestRouter(t)
	require.NoError(t, repo.CreateUser(ctx, 11, 0.5))
	require.NoError(t, repo.UpdateDashboardMessageID(ctx, 11, 500))

	r.HandleUpdate(ctx, cbUpdate(11, "CHANGE_PRICE"))
	r.HandleUpdate(ctx, msgUpdate(11, "abc"))

	u, err := repo.GetUser(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, 0.5, u.UnitPrice)
	// Flag cleared and dashboard still refreshed.
	assert.Len(t, bot.edits, 1)
}

func TestUnrelatedTextIsIgnored(t *testing.T) {
	ctx := context.Background()
	r, bot, repo := newTestRouter(t)
	require.NoError(t, repo.CreateUser(ctx, 12, 0.5))
	require.NoError(t, repo.UpdateStock(ctx, 12, 5))

	r.HandleUpdate(ctx, msgUpdate(12, "hello there"))

	assert.Empty(t, bot.sends)
	assert.Empty(t, bot.edits)
	u, err := repo.GetUser(ctx, 12)
	require.NoError(t, err)
	assert.Equal(t, 5, u.Stock)
}
