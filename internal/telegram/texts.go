package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/AZZOUZ007/SMOKED-MONEY/internal/domain"
)

// Callback data identifiers for the dashboard buttons.
const (
	actionAddPack     = "ADD_PACK"
	actionAddOne      = "ADD_CIG"
	actionSmokeOne    = "SMOKE_ONE"
	actionSmokeMore   = "SMOKE_MORE"
	actionChangePrice = "CHANGE_PRICE"
)

// UI texts in English
const (
	askPriceText = "Hello! Please tell me the *unit price* of a cigarette (e.g., 0.5)."

	invalidPriceText = "Invalid number. Please enter a positive number (e.g. 1.2)."
	invalidDateText  = "Invalid date. Please try again (YYYY-MM-DD) or type 'skip'."
)

func priceSetText(price float64) string {
	return fmt.Sprintf("Unit price set to %.2f.\nNow, when did you start smoking? (YYYY-MM-DD) or 'skip'.", price)
}

// dashboardText formats the summary message body.
func dashboardText(u *domain.User, agg domain.Aggregates, forecast, theoretical float64) string {
	text := fmt.Sprintf(
		"📊 *Your Smoking Dashboard*\n\n"+
			"*Daily*: %d cigs, cost = %.2f\n"+
			"*Weekly*: %d cigs, cost = %.2f\n"+
			"*Monthly*: %d cigs, cost = %.2f\n"+
			"*Yearly*: %d cigs, cost = %.2f\n\n"+
			"*Stock*: %d cigs\n"+
			"*Unit Price*: %.2f\n\n",
		agg.Daily.Quantity, agg.Daily.Cost,
		agg.Weekly.Quantity, agg.Weekly.Cost,
		agg.Monthly.Quantity, agg.Monthly.Cost,
		agg.Yearly.Quantity, agg.Yearly.Cost,
		u.Stock,
		u.UnitPrice,
	)

	if u.StartDate != "" {
		text += fmt.Sprintf(
			"*You started smoking*: %s\n"+
				"*(Theoretical) total spent since start*: %.2f\n\n",
			u.StartDate, theoretical,
		)
	} else {
		text += "(No start date recorded.)\n\n"
	}

	if forecast > 0 {
		text += fmt.Sprintf(
			"*Forecast*: If you keep smoking at today's rate, you'll spend ~ %.2f more by year-end.\n",
			forecast,
		)
	}
	return text
}

// dashboardKeyboard builds the fixed action control set.
func dashboardKeyboard(packSize int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("➕ Add Pack (%d)", packSize), actionAddPack),
			tgbotapi.NewInlineKeyboardButtonData("➕ Add Cigarette", actionAddOne),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚬 Smoke One", actionSmokeOne),
			tgbotapi.NewInlineKeyboardButtonData("🚬 Smoked More", actionSmokeMore),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💲 Change Price", actionChangePrice),
		),
	)
}
