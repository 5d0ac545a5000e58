package driving

import "github.com/custodia-labs/bizlens-cli/internal/core/domain"

// FormSession holds the mutable draft of a BusinessInput.
// Each Set is an independent update of one field.
type FormSession interface {
	// Set parses and stores a single field value.
	Set(field domain.Field, value string) error

	// Value returns the display value of a field.
	Value(field domain.Field) string

	// Draft returns a copy of the current draft.
	Draft() domain.BusinessInput

	// Errors returns field-level validation messages for the draft.
	Errors() map[domain.Field]string

	// Snapshot returns an immutable copy of a valid draft, or a *domain.ValidationError.
	Snapshot() (domain.BusinessInput, error)

	// Reset restores the default draft.
	Reset()
}
