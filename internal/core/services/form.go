package services

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
	"github.com/custodia-labs/bizlens-cli/internal/core/ports/driving"
)

// Ensure FormSession implements the interface.
var _ driving.FormSession = (*FormSession)(nil)

// FormSession holds the draft BusinessInput being edited.
// Every Set touches exactly one field, so edits are order-insensitive.
type FormSession struct {
	mu       sync.RWMutex
	defaults domain.AnalysisOptions
	draft    domain.BusinessInput
	// parseErrs holds values that could not be parsed, keyed by field.
	// They are cleared by the next successful Set of the same field.
	parseErrs map[domain.Field]string
}

// NewFormSession creates a form seeded with the given default options.
func NewFormSession(defaults domain.AnalysisOptions) *FormSession {
	f := &FormSession{defaults: defaults}
	f.Reset()
	return f
}

// Set parses value and stores it in field.
// Unparseable values are recorded as field errors and leave the draft unchanged.
func (f *FormSession) Set(field domain.Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	msg := f.apply(field, value)
	if msg == "" {
		delete(f.parseErrs, field)
		return nil
	}
	f.parseErrs[field] = msg

	verr := domain.NewValidationError()
	verr.Add(field, msg)
	return verr
}

func (f *FormSession) apply(field domain.Field, value string) string {
	d := &f.draft
	switch field {
	case domain.FieldBusinessName:
		d.BusinessName = value
	case domain.FieldBusinessCount:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return "business count must be a whole number"
		}
		d.BusinessCount = n
	case domain.FieldBusinessCategory:
		d.BusinessCategory = domain.OptionalString(value)
	case domain.FieldBusinessSubcategory:
		d.BusinessSubcategory = domain.OptionalString(value)
	case domain.FieldCountry:
		d.Location.Country = value
	case domain.FieldState:
		d.Location.State = value
	case domain.FieldCity:
		d.Location.City = value
	case domain.FieldArea:
		d.Location.Area = value
	case domain.FieldTechStackMethod:
		m := domain.TechStackMethod(strings.ToLower(strings.TrimSpace(value)))
		if !m.IsValid() {
			return "must be one of both, api, custom"
		}
		d.Options.TechStackMethod = m
	case domain.FieldWebsiteAnalysisMethod:
		m := domain.WebsiteAnalysisMethod(strings.ToLower(strings.TrimSpace(value)))
		if !m.IsValid() {
			return "must be one of both, google_apis, custom"
		}
		d.Options.WebsiteAnalysisMethod = m
	case domain.FieldGenerateOutreach:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return "must be true or false"
		}
		d.Options.GenerateOutreach = b
	default:
		return "unknown field"
	}
	return ""
}

// Value returns the display value of a field.
func (f *FormSession) Value(field domain.Field) string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	d := f.draft
	switch field {
	case domain.FieldBusinessName:
		return d.BusinessName
	case domain.FieldBusinessCount:
		return strconv.Itoa(d.BusinessCount)
	case domain.FieldBusinessCategory:
		return deref(d.BusinessCategory)
	case domain.FieldBusinessSubcategory:
		return deref(d.BusinessSubcategory)
	case domain.FieldCountry:
		return d.Location.Country
	case domain.FieldState:
		return d.Location.State
	case domain.FieldCity:
		return d.Location.City
	case domain.FieldArea:
		return d.Location.Area
	case domain.FieldTechStackMethod:
		return d.Options.TechStackMethod.String()
	case domain.FieldWebsiteAnalysisMethod:
		return d.Options.WebsiteAnalysisMethod.String()
	case domain.FieldGenerateOutreach:
		return strconv.FormatBool(d.Options.GenerateOutreach)
	default:
		return ""
	}
}

// Draft returns a copy of the current draft.
func (f *FormSession) Draft() domain.BusinessInput {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.draft.Clone()
}

// Errors returns field-level messages for the draft, including values that
// failed to parse. Empty when the draft can be submitted.
func (f *FormSession) Errors() map[domain.Field]string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.validate().Fields
}

func (f *FormSession) validate() *domain.ValidationError {
	verr := domain.NewValidationError()
	for field, msg := range f.parseErrs {
		verr.Add(field, msg)
	}
	if err := f.draft.Validate(); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			for field, msg := range ve.Fields {
				verr.Add(field, msg)
			}
		}
	}
	return verr
}

// Snapshot returns an independent copy of a valid draft, or a
// *domain.ValidationError describing every invalid field.
func (f *FormSession) Snapshot() (domain.BusinessInput, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if verr := f.validate(); verr.HasErrors() {
		return domain.BusinessInput{}, verr
	}
	return f.draft.Clone(), nil
}

// Reset restores the default draft.
func (f *FormSession) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.draft = domain.NewBusinessInput("")
	f.draft.Options = f.defaults
	f.parseErrs = make(map[domain.Field]string)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
