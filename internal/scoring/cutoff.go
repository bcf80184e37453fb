package scoring

import "fmt"

// DefaultMinRating is the cutoff used when the caller does not pick one.
const DefaultMinRating = 6.0

// LabelStyle selects the wording used for a verdict.
type LabelStyle string

const (
	// LabelSelected renders "Selected"/"Rejected"
	LabelSelected LabelStyle = "selected"
	// LabelGood renders "Good"/"Bad"
	LabelGood LabelStyle = "good"
)

// ParseLabelStyle maps user input to a style, defaulting to LabelSelected.
func ParseLabelStyle(s string) LabelStyle {
	if LabelStyle(s) == LabelGood {
		return LabelGood
	}
	return LabelSelected
}

// Result is a cutoff decision.
type Result struct {
	Rating    float64 `json:"rating"`
	MinRating float64 `json:"min_rating"`
	Selected  bool    `json:"selected"`
}

// Evaluate reports whether rating meets minRating. Any comparison involving NaN is
// false, so unparseable data is rejected.
func Evaluate(rating, minRating float64) bool {
	return rating >= minRating
}

// Verdict evaluates rating against minRating.
func Verdict(rating, minRating float64) Result {
	return Result{
		Rating:    rating,
		MinRating: minRating,
		Selected:  Evaluate(rating, minRating),
	}
}

// Label renders the verdict in the given style.
func (r Result) Label(style LabelStyle) string {
	if style == LabelGood {
		if r.Selected {
			return "Good"
		}
		return "Bad"
	}
	if r.Selected {
		return "Selected"
	}
	return "Rejected"
}

// FormatRating renders a 0-10 rating as "x.x / 10".
func FormatRating(rating float64) string {
	return fmt.Sprintf("%.1f / 10", rating)
}
