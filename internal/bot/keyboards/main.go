package keyboards

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback data
const (
	NewAnalysis = "new_analysis"
	Analyze     = "analyze"
	Cancel      = "cancel"
	Help        = "help"
	MainMenu    = "main_menu"
)

// MainMenuKeyboard creates the main menu keyboard
func MainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍎 New analysis", NewAnalysis),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❓ Help", Help),
		),
	)
}

// CancelKeyboard is attached to every form question
func CancelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Cancel", Cancel),
		),
	)
}

// AnalyzeKeyboard is only shown once every input has been accepted
func AnalyzeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔍 Analyze", Analyze),
			tgbotapi.NewInlineKeyboardButtonData("◀️ Cancel", Cancel),
		),
	)
}

// AfterResultKeyboard offers the next cycle
func AfterResultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍎 New analysis", NewAnalysis),
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", MainMenu),
		),
	)
}
