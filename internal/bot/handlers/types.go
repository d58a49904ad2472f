package handlers

import (
	"github.com/vladimiradmaev/health-advisor/internal/services"
)

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	Advisor *services.AdvisorService
}
