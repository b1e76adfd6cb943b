package telegram

import (
	"fmt"

	"github.com/go-telegram/bot/models"

	"github.com/set-night/astrocalc/internal/zodiac"
)

// Callback data prefixes.
const (
	CallbackSign        = "sign_"
	CallbackCompatFirst = "compat_"
	CallbackHistoryPage = "history_page"
	CallbackMenu        = "menu_"
	CallbackNoop        = "cur"
)

func InlineButton(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text:         text,
		CallbackData: callbackData,
	}
}

func InlineKeyboard(rows ...[]models.InlineKeyboardButton) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: rows,
	}
}

func ButtonRow(buttons ...models.InlineKeyboardButton) []models.InlineKeyboardButton {
	return buttons
}

// SignKeyboard lists all twelve signs, three per row. Each button carries prefix+sign id.
func SignKeyboard(prefix string) *models.InlineKeyboardMarkup {
	signs := zodiac.All()
	rows := make([][]models.InlineKeyboardButton, 0, len(signs)/3)
	for i := 0; i < len(signs); i += 3 {
		var row []models.InlineKeyboardButton
		for _, s := range signs[i:min(i+3, len(signs))] {
			row = append(row, InlineButton(s.Symbol+" "+s.Name, prefix+s.ID))
		}
		rows = append(rows, row)
	}
	return InlineKeyboard(rows...)
}

// MainMenuKeyboard is shown under the welcome message.
func MainMenuKeyboard() *models.InlineKeyboardMarkup {
	return InlineKeyboard(
		ButtonRow(
			InlineButton("♈ Burçlar", CallbackMenu+"signs"),
			InlineButton("🌞 Günlük yorum", CallbackMenu+"daily"),
		),
		ButtonRow(
			InlineButton("🪐 Doğum haritam", CallbackMenu+"chart"),
			InlineButton("💬 Sohbet geçmişi", CallbackMenu+"history"),
		),
	)
}

// PaginationRow creates a prev/next row around a page indicator.
func PaginationRow(currentPage, totalPages int, callbackPrefix string) []models.InlineKeyboardButton {
	var row []models.InlineKeyboardButton

	if currentPage > 0 {
		row = append(row, InlineButton("⬅️", fmt.Sprintf("%s_%d", callbackPrefix, currentPage-1)))
	}

	row = append(row, InlineButton(fmt.Sprintf("%d/%d", currentPage+1, totalPages), CallbackNoop))

	if currentPage < totalPages-1 {
		row = append(row, InlineButton("➡️", fmt.Sprintf("%s_%d", callbackPrefix, currentPage+1)))
	}
	return row
}
