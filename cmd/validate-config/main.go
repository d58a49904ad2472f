package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/vladimiradmaev/health-advisor/internal/config"
)

func main() {
	fmt.Println("🔍 Checking configuration...")

	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  .env file not found: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Configuration is invalid:\n%v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Configuration is valid!")
	fmt.Print(describe(cfg))
}

func describe(cfg *config.Config) string {
	out := "📋 Configuration details:\n"
	out += fmt.Sprintf("  - Gemini API Key: %s\n", maskToken(cfg.Gemini.APIKey))
	out += fmt.Sprintf("  - Gemini Model: %s\n", cfg.Gemini.Model)
	out += fmt.Sprintf("  - Analysis Timeout: %s\n", cfg.Gemini.Timeout)
	out += fmt.Sprintf("  - HTTP Address: %s\n", cfg.HTTPAddr)
	if cfg.BotEnabled() {
		out += fmt.Sprintf("  - Telegram Token: %s\n", maskToken(cfg.TelegramToken))
	} else {
		out += "  - Telegram Bot: disabled\n"
	}
	if cfg.Redis.Enabled() {
		out += fmt.Sprintf("  - Redis: %s (db %d, session ttl %s)\n", cfg.Redis.Addr(), cfg.Redis.DB, cfg.Redis.SessionTTL)
	} else {
		out += "  - Redis: disabled (in-memory sessions)\n"
	}
	out += fmt.Sprintf("  - Log Level: %s\n", cfg.Logger.Level)
	out += fmt.Sprintf("  - Log Output: %s\n", cfg.Logger.OutputPath)
	out += fmt.Sprintf("  - Log Format: %s\n", cfg.Logger.Format)
	return out
}

func maskToken(token string) string {
	if token == "" {
		return "<not set>"
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

