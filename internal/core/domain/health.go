package domain

import "time"

// ServiceHealth is the analysis service's self-reported health.
type ServiceHealth struct {
	Status                 string
	DatabaseConnected      bool
	GeminiConfigured       bool
	GoogleSearchConfigured bool
	Timestamp              time.Time
}

// Healthy returns true if the service reports itself healthy.
func (h ServiceHealth) Healthy() bool {
	return h.Status == "healthy"
}
