package models

// CategoryStatistics summarizes a user's progress with one category of words
type CategoryStatistics struct {
	Category   string  `json:"category"`
	TotalWords int     `json:"total_words"`
	SeenWords  int     `json:"seen_words"`
	Answers    int     `json:"answers"`
	Correct    int     `json:"correct"`
	Accuracy   float64 `json:"accuracy"` // Correct / Answers, 0 when nothing answered
}
