// Package validation holds the pure input checks applied before any analysis.
package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vladimiradmaev/health-advisor/internal/domain"
	apperrors "github.com/vladimiradmaev/health-advisor/internal/errors"
)

// InRange reports whether lo <= value <= hi.
func InRange(value, lo, hi float64) bool {
	return lo <= value && value <= hi
}

// IsNonEmpty reports whether name has any non-whitespace content.
func IsNonEmpty(name string) bool {
	return strings.TrimSpace(name) != ""
}

var labels = map[domain.Field]string{
	domain.FieldWeight:   "Weight",
	domain.FieldHeight:   "Height",
	domain.FieldAge:      "Age",
	domain.FieldFoodName: "Food item",
}

// Label returns the display name of field.
func Label(field domain.Field) string {
	if l, ok := labels[field]; ok {
		return l
	}
	return string(field)
}

// SuccessMessage is shown when a single field passes its check.
func SuccessMessage(field domain.Field, raw string) string {
	if field == domain.FieldFoodName {
		return "Food item entered: " + raw
	}
	return Label(field) + " is valid."
}

func outOfRange(field domain.Field) apperrors.FieldError {
	return apperrors.FieldError{Field: string(field), Message: Label(field) + " is out of range. Please adjust."}
}

func notANumber(field domain.Field, what string) apperrors.FieldError {
	return apperrors.FieldError{Field: string(field), Message: fmt.Sprintf("%s must be %s.", Label(field), what)}
}

func parseNumber(field domain.Field, raw string, r domain.Range) (float64, *apperrors.FieldError) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		fe := notANumber(field, "a number")
		return 0, &fe
	}
	if !InRange(v, r.Min, r.Max) {
		fe := outOfRange(field)
		return 0, &fe
	}
	return v, nil
}

// ParseWeight parses a weight in kg and checks it against domain.WeightRange.
func ParseWeight(raw string) (float64, *apperrors.FieldError) {
	return parseNumber(domain.FieldWeight, raw, domain.WeightRange)
}

// ParseHeight parses a height in feet and checks it against domain.HeightRange.
func ParseHeight(raw string) (float64, *apperrors.FieldError) {
	return parseNumber(domain.FieldHeight, raw, domain.HeightRange)
}

// ParseAge parses a whole number of years and checks it against domain.AgeRange.
// Integral decimals such as "30.0" are accepted.
func ParseAge(raw string) (int, *apperrors.FieldError) {
	v, ok := parseWholeNumber(strings.TrimSpace(raw))
	if !ok {
		fe := notANumber(domain.FieldAge, "a whole number")
		return 0, &fe
	}
	if !InRange(float64(v), domain.AgeRange.Min, domain.AgeRange.Max) {
		fe := outOfRange(domain.FieldAge)
		return 0, &fe
	}
	return v, nil
}

func parseWholeNumber(s string) (int, bool) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// CheckFoodName applies the non-empty guard to a food name.
func CheckFoodName(raw string) *apperrors.FieldError {
	if !IsNonEmpty(raw) {
		return &apperrors.FieldError{Field: string(domain.FieldFoodName), Message: "Please enter a food item name."}
	}
	return nil
}

// CheckField validates one raw input on its own.
func CheckField(field domain.Field, raw string) *apperrors.FieldError {
	var fe *apperrors.FieldError
	switch field {
	case domain.FieldWeight:
		_, fe = ParseWeight(raw)
	case domain.FieldHeight:
		_, fe = ParseHeight(raw)
	case domain.FieldAge:
		_, fe = ParseAge(raw)
	case domain.FieldFoodName:
		fe = CheckFoodName(raw)
	default:
		fe = &apperrors.FieldError{Field: string(field), Message: "Unknown field."}
	}
	return fe
}

// CheckAll validates every input and reports all rejected fields together.
// The returned request is only meaningful when err is nil.
func CheckAll(in domain.Inputs) (domain.AnalysisRequest, error) {
	var (
		req    domain.AnalysisRequest
		errs   apperrors.FieldErrors
		weight float64
		height float64
		age    int
		fe     *apperrors.FieldError
	)

	if weight, fe = ParseWeight(in.Weight); fe != nil {
		errs = append(errs, *fe)
	}
	if height, fe = ParseHeight(in.Height); fe != nil {
		errs = append(errs, *fe)
	}
	if age, fe = ParseAge(in.Age); fe != nil {
		errs = append(errs, *fe)
	}
	if fe = CheckFoodName(in.FoodName); fe != nil {
		errs = append(errs, *fe)
	}

	if len(errs) > 0 {
		return req, apperrors.NewValidationError(errs)
	}

	req.Profile = domain.UserProfile{Weight: weight, Height: height, Age: age}
	req.Food = domain.FoodQuery{Name: in.FoodName}
	return req, nil
}
