package validation

import (
	"testing"

	"github.com/vladimiradmaev/health-advisor/internal/domain"
	apperrors "github.com/vladimiradmaev/health-advisor/internal/errors"
)

func TestInRangeBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		r     domain.Range
		want  bool
	}{
		{"weight lower bound", 10, domain.WeightRange, true},
		{"weight upper bound", 300, domain.WeightRange, true},
		{"weight just below", 9.999, domain.WeightRange, false},
		{"weight just above", 300.001, domain.WeightRange, false},
		{"weight typical", 70, domain.WeightRange, true},
		{"height lower bound", 3.0, domain.HeightRange, true},
		{"height upper bound", 8.0, domain.HeightRange, true},
		{"height below", 2.99, domain.HeightRange, false},
		{"height above", 8.01, domain.HeightRange, false},
		{"age lower bound", 1, domain.AgeRange, true},
		{"age upper bound", 150, domain.AgeRange, true},
		{"age zero", 0, domain.AgeRange, false},
		{"age above", 151, domain.AgeRange, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InRange(tt.value, tt.r.Min, tt.r.Max); got != tt.want {
				t.Errorf("InRange(%v, %v, %v) = %v, want %v", tt.value, tt.r.Min, tt.r.Max, got, tt.want)
			}
		})
	}
}

func TestIsNonEmpty(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"   ", false},
		{"\t\n", false},
		{"apple", true},
		{"  banana  ", true},
	}

	for _, tt := range tests {
		if got := IsNonEmpty(tt.in); got != tt.want {
			t.Errorf("IsNonEmpty(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseInputs(t *testing.T) {
	if v, fe := ParseWeight(" 70 "); fe != nil || v != 70 {
		t.Errorf("ParseWeight(70) = %v, %v", v, fe)
	}
	if v, fe := ParseHeight("5.5"); fe != nil || v != 5.5 {
		t.Errorf("ParseHeight(5.5) = %v, %v", v, fe)
	}
	if v, fe := ParseAge("30"); fe != nil || v != 30 {
		t.Errorf("ParseAge(30) = %v, %v", v, fe)
	}
	if v, fe := ParseAge("30.0"); fe != nil || v != 30 {
		t.Errorf("ParseAge(30.0) = %v, %v", v, fe)
	}
	if v, fe := ParseAge(" 1.5e1 "); fe != nil || v != 15 {
		t.Errorf("ParseAge(1.5e1) = %v, %v", v, fe)
	}

	rejected := []struct {
		name  string
		check func() *apperrors.FieldError
		msg   string
	}{
		{"weight text", func() *apperrors.FieldError { _, fe := ParseWeight("heavy"); return fe }, "Weight must be a number."},
		{"weight nan", func() *apperrors.FieldError { _, fe := ParseWeight("NaN"); return fe }, "Weight must be a number."},
		{"weight range", func() *apperrors.FieldError { _, fe := ParseWeight("500"); return fe }, "Weight is out of range. Please adjust."},
		{"height range", func() *apperrors.FieldError { _, fe := ParseHeight("9"); return fe }, "Height is out of range. Please adjust."},
		{"age fraction", func() *apperrors.FieldError { _, fe := ParseAge("30.5"); return fe }, "Age must be a whole number."},
		{"age inf", func() *apperrors.FieldError { _, fe := ParseAge("Inf"); return fe }, "Age must be a whole number."},
		{"age range", func() *apperrors.FieldError { _, fe := ParseAge("0"); return fe }, "Age is out of range. Please adjust."},
		{"food empty", func() *apperrors.FieldError { return CheckFoodName("  ") }, "Please enter a food item name."},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			fe := tt.check()
			if fe == nil {
				t.Fatal("expected rejection")
			}
			if fe.Message != tt.msg {
				t.Errorf("message = %q, want %q", fe.Message, tt.msg)
			}
		})
	}
}

func TestCheckField(t *testing.T) {
	if fe := CheckField(domain.FieldWeight, "70"); fe != nil {
		t.Errorf("weight 70 rejected: %v", fe)
	}
	if fe := CheckField(domain.FieldFoodName, "apple"); fe != nil {
		t.Errorf("apple rejected: %v", fe)
	}
	if fe := CheckField(domain.Field("shoe_size"), "42"); fe == nil {
		t.Error("unknown field accepted")
	}
	if got := SuccessMessage(domain.FieldHeight, "5.5"); got != "Height is valid." {
		t.Errorf("SuccessMessage = %q", got)
	}
	if got := SuccessMessage(domain.FieldFoodName, "banana"); got != "Food item entered: banana" {
		t.Errorf("SuccessMessage = %q", got)
	}
}

func TestCheckAllValid(t *testing.T) {
	req, err := CheckAll(domain.Inputs{Weight: "70", Height: "5.5", Age: "30", FoodName: "banana"})
	if err != nil {
		t.Fatalf("CheckAll: %v", err)
	}
	want := domain.AnalysisRequest{
		Profile: domain.UserProfile{Weight: 70, Height: 5.5, Age: 30},
		Food:    domain.FoodQuery{Name: "banana"},
	}
	if req != want {
		t.Errorf("request = %+v, want %+v", req, want)
	}
}

func TestCheckAllCollectsEveryField(t *testing.T) {
	_, err := CheckAll(domain.Inputs{Weight: "500", Height: "5.5", Age: "abc", FoodName: ""})
	fields, ok := apperrors.FieldErrorsOf(err)
	if !ok {
		t.Fatalf("expected field errors, got %v", err)
	}
	if len(fields) != 3 {
		t.Fatalf("expected 3 rejected fields, got %v", fields)
	}
	for _, f := range []domain.Field{domain.FieldWeight, domain.FieldAge, domain.FieldFoodName} {
		if !fields.Has(string(f)) {
			t.Errorf("missing %s in %v", f, fields)
		}
	}
	if fields.Has(string(domain.FieldHeight)) {
		t.Error("height was valid and must not be reported")
	}
}
