package web

import (
	"embed"
	"html/template"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vladimiradmaev/health-advisor/internal/logger"
	"github.com/vladimiradmaev/health-advisor/internal/metrics"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateRenderer is a html/template renderer for echo
type TemplateRenderer struct {
	templates *template.Template
}

// Render renders a template document
func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []any{
				"request_id", v.RequestID,
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				logger.Warn("HTTP request failed", append(fields, "error", v.Error)...)
				return nil
			}
			logger.Info("HTTP request", fields...)
			return nil
		},
	}))
	e.Use(requestMetrics)

	e.Renderer = &TemplateRenderer{
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}

	e.GET("/", s.indexHandler)
	e.POST("/validate/:field", s.validateFieldHandler)
	e.POST("/analyze", s.analyzeHandler)
	e.POST("/api/analyze", s.apiAnalyzeHandler)
	e.GET("/healthz", s.healthHandler)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	return e
}

func requestMetrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		status := c.Response().Status
		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
		}
		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		metrics.Inc(metrics.HTTPRequests, prometheus.Labels{
			"route":  route,
			"method": c.Request().Method,
			"status": strconv.Itoa(status),
		})
		return err
	}
}
