/*
Package web serves the single-page analysis form and its JSON counterpart.
*/
package web

import (
	"net/http"
	"time"

	"github.com/vladimiradmaev/health-advisor/internal/services"
)

// Server holds the dependencies of the HTTP surface.
type Server struct {
	advisor *services.AdvisorService

	// analysisTimeout bounds how long a request may wait on the model.
	analysisTimeout time.Duration
}

// NewServer returns a configured *http.Server for addr.
// WriteTimeout leaves headroom over the analysis timeout so a slow model
// response is still delivered to the client.
func NewServer(addr string, advisor *services.AdvisorService, analysisTimeout time.Duration) *http.Server {
	s := &Server{
		advisor:         advisor,
		analysisTimeout: analysisTimeout,
	}

	return &http.Server{
		Addr:         addr,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: analysisTimeout + 10*time.Second,
	}
}
