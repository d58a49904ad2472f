package web

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vladimiradmaev/health-advisor/internal/domain"
	apperrors "github.com/vladimiradmaev/health-advisor/internal/errors"
	"github.com/vladimiradmaev/health-advisor/internal/services"
	"github.com/vladimiradmaev/health-advisor/internal/validation"
)

const surface = "web"

// fieldStatus is the outcome of checking one input.
type fieldStatus struct {
	Message string
	OK      bool
}

// pageData feeds index.html.
type pageData struct {
	Inputs   domain.Inputs
	Fields   map[string]fieldStatus
	FoodEcho string
	Message  string
	Result   string
	CycleID  string
}

func newPageData(in domain.Inputs) *pageData {
	p := &pageData{
		Inputs: in,
		Fields: make(map[string]fieldStatus),
	}
	if validation.IsNonEmpty(in.FoodName) {
		p.FoodEcho = in.FoodName
	}
	return p
}

func formInputs(c echo.Context) domain.Inputs {
	return domain.Inputs{
		Weight:   c.FormValue("weight"),
		Height:   c.FormValue("height"),
		Age:      c.FormValue("age"),
		FoodName: c.FormValue("food_name"),
	}
}

func knownField(name string) (domain.Field, bool) {
	for _, f := range domain.Fields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// analysisContext bounds the request context by the analysis timeout. A client
// disconnect cancels the in-flight model call.
func (s *Server) analysisContext(c echo.Context) (context.Context, context.CancelFunc) {
	if s.analysisTimeout <= 0 {
		return context.WithCancel(c.Request().Context())
	}
	return context.WithTimeout(c.Request().Context(), s.analysisTimeout)
}

func (s *Server) indexHandler(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", newPageData(domain.Inputs{}))
}

func (s *Server) validateFieldHandler(c echo.Context) error {
	field, ok := knownField(c.Param("field"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown field")
	}

	in := formInputs(c)
	page := newPageData(in)

	msg, err := s.advisor.ValidateField(field, in.Value(field))
	page.Fields[string(field)] = fieldStatus{Message: msg, OK: err == nil}

	status := http.StatusOK
	if err != nil {
		status = http.StatusUnprocessableEntity
	}
	return c.Render(status, "index.html", page)
}

func (s *Server) analyzeHandler(c echo.Context) error {
	in := formInputs(c)

	ctx, cancel := s.analysisContext(c)
	defer cancel()
	cycle := s.advisor.Run(ctx, surface, in)

	page := newPageData(in)
	page.CycleID = cycle.ID
	for _, fe := range cycle.FieldErrors() {
		page.Fields[fe.Field] = fieldStatus{Message: fe.Message}
	}
	if cycle.State == services.StateResultDisplayed {
		page.Result = cycle.Text()
	} else {
		page.Message = cycle.Message()
	}

	return c.Render(cycleStatus(cycle), "index.html", page)
}

// looseNumber holds a JSON number or string as text so that bad values reach
// field validation instead of failing the whole body.
type looseNumber string

func (n *looseNumber) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = looseNumber(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*n = looseNumber(num)
	return nil
}

// apiRequest accepts numbers either as JSON numbers or strings.
type apiRequest struct {
	Weight   looseNumber `json:"weight"`
	Height   looseNumber `json:"height"`
	Age      looseNumber `json:"age"`
	FoodName string      `json:"food_name"`
}

type apiResponse struct {
	ID      string                 `json:"id"`
	State   services.State         `json:"state"`
	Errors  apperrors.FieldErrors  `json:"errors,omitempty"`
	Kind    apperrors.AnalysisKind `json:"kind,omitempty"`
	Message string                 `json:"message,omitempty"`
	Text    string                 `json:"text,omitempty"`
}

func (s *Server) apiAnalyzeHandler(c echo.Context) error {
	var req apiRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "request body must be a JSON object with weight, height, age and food_name")
	}

	in := domain.Inputs{
		Weight:   string(req.Weight),
		Height:   string(req.Height),
		Age:      string(req.Age),
		FoodName: req.FoodName,
	}

	ctx, cancel := s.analysisContext(c)
	defer cancel()
	cycle := s.advisor.Run(ctx, surface, in)

	resp := apiResponse{
		ID:      cycle.ID,
		State:   cycle.State,
		Errors:  cycle.FieldErrors(),
		Message: cycle.Message(),
		Text:    cycle.Text(),
	}
	if kind, ok := apperrors.AnalysisKindOf(cycle.Err); ok {
		resp.Kind = kind
	}
	return c.JSON(cycleStatus(cycle), resp)
}

func (s *Server) healthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func cycleStatus(cycle *services.Cycle) int {
	if cycle.State == services.StateResultDisplayed {
		return http.StatusOK
	}
	if len(cycle.FieldErrors()) > 0 {
		return http.StatusUnprocessableEntity
	}
	switch kind, _ := apperrors.AnalysisKindOf(cycle.Err); kind {
	case apperrors.KindTimeout:
		return http.StatusGatewayTimeout
	case apperrors.KindUnauthenticated, apperrors.KindUnavailable, apperrors.KindUnknown:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
