package domain

// Field names an input of the analysis form.
type Field string

const (
	FieldWeight   Field = "weight"
	FieldHeight   Field = "height"
	FieldAge      Field = "age"
	FieldFoodName Field = "food_name"
)

// Fields lists the form inputs in the order they are collected.
var Fields = []Field{FieldWeight, FieldHeight, FieldAge, FieldFoodName}

// Range is a closed interval [Min, Max].
type Range struct {
	Min float64
	Max float64
}

var (
	WeightRange = Range{Min: 10, Max: 300}  // kg
	HeightRange = Range{Min: 3.0, Max: 8.0} // feet
	AgeRange    = Range{Min: 1, Max: 150}   // years
)

// UserProfile is the body data the analysis is personalised for.
type UserProfile struct {
	Weight float64 `json:"weight"` // kg
	Height float64 `json:"height"` // ft
	Age    int     `json:"age"`    // years
}

// FoodQuery names the food item to analyse.
type FoodQuery struct {
	Name string `json:"name"`
}

// AnalysisRequest is a validated profile and food pair, ready for prompt building.
type AnalysisRequest struct {
	Profile UserProfile `json:"profile"`
	Food    FoodQuery   `json:"food"`
}

// AnalysisResult holds the model output exactly as returned.
type AnalysisResult struct {
	Text string `json:"text"`
}

// Inputs are the raw form values as the user typed them.
type Inputs struct {
	Weight   string `json:"weight" form:"weight"`
	Height   string `json:"height" form:"height"`
	Age      string `json:"age" form:"age"`
	FoodName string `json:"food_name" form:"food_name"`
}

// Value returns the raw value entered for field.
func (in Inputs) Value(field Field) string {
	switch field {
	case FieldWeight:
		return in.Weight
	case FieldHeight:
		return in.Height
	case FieldAge:
		return in.Age
	case FieldFoodName:
		return in.FoodName
	}
	return ""
}
