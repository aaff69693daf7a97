package domain

import "time"

// ManualInputSource is stored as the source of paragraph-mode requests.
const ManualInputSource = "manual-input"

// SummaryRecord is the compact metadata row written once per successful request.
type SummaryRecord struct {
	URL               string `json:"url"`
	Summary           string `json:"summary"`
	SummaryTranslated string `json:"summary_translated"`
}

// RawText holds the full source text behind a summary.
type RawText struct {
	URL string `bson:"url" json:"url"`

	// Title is the page title in URL mode, when one could be found.
	Title string `bson:"title,omitempty" json:"title,omitempty"`

	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
