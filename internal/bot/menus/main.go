package menus

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/health-advisor/internal/bot/keyboards"
	"github.com/vladimiradmaev/health-advisor/internal/domain"
)

// Sender is the part of *tgbotapi.BotAPI the bot uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

const mainMenuText = `🍎 *Personalized Health Advisor*

Tell me your weight, height and age and the food you are eating, and I will:
• Estimate calories and the macronutrient breakdown
• List vitamins, minerals, benefits and risks
• Say how well it suits your profile

📷 Coming soon: send a photo of your food instead of typing its name.

⚠️ This is general information, not medical advice.`

const helpText = `Available commands:
/start - Show the main menu
/help - Show this message
/cancel - Drop the current form

How it works:
1. Press "🍎 New analysis"
2. Enter your weight (kg, 10-300), height (ft, 3.0-8.0) and age (years, 1-150)
3. Enter the name of the food item
4. Press "🔍 Analyze"`

// SendMainMenu sends the main menu to a chat
func SendMainMenu(api Sender, chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, mainMenuText)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = keyboards.MainMenuKeyboard()
	_, err := api.Send(msg)
	return err
}

// SendHelp sends the command reference
func SendHelp(api Sender, chatID int64) error {
	_, err := api.Send(tgbotapi.NewMessage(chatID, helpText))
	return err
}

var questions = map[domain.Field]string{
	domain.FieldWeight:   "Enter your weight (kg):",
	domain.FieldHeight:   "Enter your height (ft):",
	domain.FieldAge:      "Enter your age (years):",
	domain.FieldFoodName: "Enter the name of the food item:",
}

// SendQuestion asks for the next form field
func SendQuestion(api Sender, chatID int64, field domain.Field) error {
	msg := tgbotapi.NewMessage(chatID, questions[field])
	msg.ReplyMarkup = keyboards.CancelKeyboard()
	_, err := api.Send(msg)
	return err
}

// SendSummary shows the accepted inputs with the Analyze button
func SendSummary(api Sender, chatID int64, in domain.Inputs) error {
	text := fmt.Sprintf("Ready to analyze:\n⚖️ Weight: %s kg\n📏 Height: %s ft\n🎂 Age: %s years\n🍽️ Food item: %s",
		in.Weight, in.Height, in.Age, in.FoodName)
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboards.AnalyzeKeyboard()
	_, err := api.Send(msg)
	return err
}
