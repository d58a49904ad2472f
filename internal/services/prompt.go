package services

import (
	"strconv"
	"strings"

	"github.com/vladimiradmaev/health-advisor/internal/domain"
)

// analysisInstructions are the six points every analysis must cover.
var analysisInstructions = []string{
	"Calories per serving",
	"Macronutrient breakdown (Carbs, Proteins, Fats)",
	"Vitamins and minerals",
	"Health benefits and potential risks",
	"Suitability for age, weight, and height",
	"Overall health recommendation",
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BuildPrompt renders the analysis prompt for an already validated profile and food.
// Inputs are embedded as given; the same inputs always produce the same bytes.
func BuildPrompt(profile domain.UserProfile, food domain.FoodQuery) string {
	var b strings.Builder

	b.WriteString("Based on the following inputs:\n")
	b.WriteString("- Weight: " + formatNumber(profile.Weight) + " kg\n")
	b.WriteString("- Height: " + formatNumber(profile.Height) + " ft\n")
	b.WriteString("- Age: " + strconv.Itoa(profile.Age) + " years\n")
	b.WriteString("- Food Item: " + food.Name + "\n")
	b.WriteString("\nPlease provide a detailed analysis of the food item including:\n")
	for i, instruction := range analysisInstructions {
		b.WriteString(strconv.Itoa(i+1) + ". " + instruction + "\n")
	}

	return b.String()
}
