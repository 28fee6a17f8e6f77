package model

// Insights is the AI-generated marketing blurb for a movie. Mood is a list
// of atmosphere tags rather than the provider's raw comma-separated string;
// the service layer splits it at the boundary.
type Insights struct {
	Buzz          string   `json:"buzz"`
	Mood          []string `json:"mood"`
	ReviewSummary string   `json:"reviewSummary"`
}
