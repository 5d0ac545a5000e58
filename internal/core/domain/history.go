package domain

import "time"

// HistoryEntry summarises a previously submitted analysis.
type HistoryEntry struct {
	AnalysisID string
	Input      BusinessInput
	// Location is the joined location the analysis was submitted with.
	Location  string
	CreatedAt time.Time
}

// Title returns a display title for the entry.
func (e HistoryEntry) Title() string {
	if e.Input.BusinessName != "" {
		return e.Input.BusinessName
	}
	return e.AnalysisID
}
