package models

// Word represents one quiz-able vocabulary entry loaded from the word sheet
type Word struct {
	ID            string `json:"id"`             // Content-derived identifier, see corpus.WordID
	Source        string `json:"source"`         // Forward field, e.g. the English word
	Target        string `json:"target"`         // Reverse field, e.g. the Japanese translation
	AltSource     string `json:"alt_source"`     // Secondary acceptable answer when answering in the source language
	Category      string `json:"category"`       // Year/group tag, empty if absent
	InputEligible bool   `json:"input_eligible"` // Usable in free-text mode
	Row           int    `json:"row"`            // 1-based row in the source sheet
}

// Valid reports whether both directional fields are present
func (w Word) Valid() bool {
	return w.Source != "" && w.Target != ""
}
