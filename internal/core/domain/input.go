package domain

import "strings"

// Business count bounds accepted by the analysis service.
const (
	MinBusinessCount = 1
	MaxBusinessCount = 10
)

// Field identifies a single editable field of a BusinessInput.
type Field string

// Editable fields. Names match the service's request keys where one exists.
const (
	FieldBusinessName          Field = "business_name"
	FieldBusinessCount         Field = "business_count"
	FieldBusinessCategory      Field = "business_category"
	FieldBusinessSubcategory   Field = "business_subcategory"
	FieldCountry               Field = "country"
	FieldState                 Field = "state"
	FieldCity                  Field = "city"
	FieldArea                  Field = "area"
	FieldTechStackMethod       Field = "tech_stack_method"
	FieldWebsiteAnalysisMethod Field = "website_analysis_method"
	FieldGenerateOutreach      Field = "generate_outreach"
)

// Fields returns all editable fields in form order.
func Fields() []Field {
	return []Field{
		FieldBusinessName,
		FieldBusinessCount,
		FieldBusinessCategory,
		FieldBusinessSubcategory,
		FieldCountry,
		FieldState,
		FieldCity,
		FieldArea,
		FieldTechStackMethod,
		FieldWebsiteAnalysisMethod,
		FieldGenerateOutreach,
	}
}

// Label returns a human-readable label for the field.
func (f Field) Label() string {
	switch f {
	case FieldBusinessName:
		return "Business name"
	case FieldBusinessCount:
		return "Business count"
	case FieldBusinessCategory:
		return "Category"
	case FieldBusinessSubcategory:
		return "Subcategory"
	case FieldCountry:
		return "Country"
	case FieldState:
		return "State"
	case FieldCity:
		return "City"
	case FieldArea:
		return "Area"
	case FieldTechStackMethod:
		return "Tech stack method"
	case FieldWebsiteAnalysisMethod:
		return "Website analysis method"
	case FieldGenerateOutreach:
		return "Generate outreach"
	default:
		return string(f)
	}
}

// TechStackMethod selects how the service detects a website's technologies.
type TechStackMethod string

// Available tech stack methods.
const (
	TechStackBoth   TechStackMethod = "both"
	TechStackAPI    TechStackMethod = "api"
	TechStackCustom TechStackMethod = "custom"
)

// TechStackMethods returns all tech stack methods in display order.
func TechStackMethods() []TechStackMethod {
	return []TechStackMethod{TechStackBoth, TechStackAPI, TechStackCustom}
}

// IsValid returns true if the method is recognised.
func (m TechStackMethod) IsValid() bool {
	switch m {
	case TechStackBoth, TechStackAPI, TechStackCustom:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m TechStackMethod) String() string {
	return string(m)
}

// Description returns a human-readable description of the method.
func (m TechStackMethod) Description() string {
	switch m {
	case TechStackBoth:
		return "Both (API + custom detection)"
	case TechStackAPI:
		return "API lookup only"
	case TechStackCustom:
		return "Custom detection only"
	default:
		return unknownDescription
	}
}

// WebsiteAnalysisMethod selects how the service scores a website.
type WebsiteAnalysisMethod string

// Available website analysis methods.
const (
	WebsiteAnalysisBoth       WebsiteAnalysisMethod = "both"
	WebsiteAnalysisGoogleAPIs WebsiteAnalysisMethod = "google_apis"
	WebsiteAnalysisCustom     WebsiteAnalysisMethod = "custom"
)

// WebsiteAnalysisMethods returns all website analysis methods in display order.
func WebsiteAnalysisMethods() []WebsiteAnalysisMethod {
	return []WebsiteAnalysisMethod{WebsiteAnalysisBoth, WebsiteAnalysisGoogleAPIs, WebsiteAnalysisCustom}
}

// IsValid returns true if the method is recognised.
func (m WebsiteAnalysisMethod) IsValid() bool {
	switch m {
	case WebsiteAnalysisBoth, WebsiteAnalysisGoogleAPIs, WebsiteAnalysisCustom:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m WebsiteAnalysisMethod) String() string {
	return string(m)
}

// Description returns a human-readable description of the method.
func (m WebsiteAnalysisMethod) Description() string {
	switch m {
	case WebsiteAnalysisBoth:
		return "Both (Google APIs + custom scoring)"
	case WebsiteAnalysisGoogleAPIs:
		return "Google APIs only"
	case WebsiteAnalysisCustom:
		return "Custom scoring only"
	default:
		return unknownDescription
	}
}

const unknownDescription = "Unknown"

// AnalysisOptions configures which analyses the service runs.
type AnalysisOptions struct {
	TechStackMethod       TechStackMethod       `json:"tech_stack_method"`
	WebsiteAnalysisMethod WebsiteAnalysisMethod `json:"website_analysis_method"`
	GenerateOutreach      bool                  `json:"generate_outreach"`
}

// DefaultAnalysisOptions returns the service's default options.
func DefaultAnalysisOptions() AnalysisOptions {
	return AnalysisOptions{
		TechStackMethod:       TechStackBoth,
		WebsiteAnalysisMethod: WebsiteAnalysisBoth,
		GenerateOutreach:      false,
	}
}

// LocationParts holds the individually edited parts of a location.
type LocationParts struct {
	Country string `json:"country,omitempty"`
	State   string `json:"state,omitempty"`
	City    string `json:"city,omitempty"`
	Area    string `json:"area,omitempty"`
}

// Join concatenates the non-blank parts in area, city, state, country order.
// Returns nil when every part is blank.
func (l LocationParts) Join() *string {
	parts := make([]string, 0, 4)
	for _, p := range []string{l.Area, l.City, l.State, l.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	joined := strings.Join(parts, ", ")
	return &joined
}

// BusinessInput describes the business to analyse.
type BusinessInput struct {
	BusinessName        string          `json:"business_name"`
	BusinessCount       int             `json:"business_count"`
	BusinessCategory    *string         `json:"business_category"`
	BusinessSubcategory *string         `json:"business_subcategory"`
	Location            LocationParts   `json:"location_parts"`
	Options             AnalysisOptions `json:"analysis_options"`
}

// NewBusinessInput returns an input with defaults applied.
func NewBusinessInput(name string) BusinessInput {
	return BusinessInput{
		BusinessName:  name,
		BusinessCount: MinBusinessCount,
		Options:       DefaultAnalysisOptions(),
	}
}

// Validate checks the invariants that must hold before a request is built.
// Returns nil or a *ValidationError.
func (in BusinessInput) Validate() error {
	verr := NewValidationError()

	if strings.TrimSpace(in.BusinessName) == "" {
		verr.Add(FieldBusinessName, "business name is required")
	}
	if in.BusinessCount < MinBusinessCount || in.BusinessCount > MaxBusinessCount {
		verr.Add(FieldBusinessCount, "business count must be between 1 and 10")
	}
	if !in.Options.TechStackMethod.IsValid() {
		verr.Add(FieldTechStackMethod, "must be one of both, api, custom")
	}
	if !in.Options.WebsiteAnalysisMethod.IsValid() {
		verr.Add(FieldWebsiteAnalysisMethod, "must be one of both, google_apis, custom")
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

// Clone returns a deep copy so snapshots never share pointers with a draft.
func (in BusinessInput) Clone() BusinessInput {
	out := in
	out.BusinessCategory = cloneString(in.BusinessCategory)
	out.BusinessSubcategory = cloneString(in.BusinessSubcategory)
	return out
}

// AnalysisRequest is the request sent to the analysis service.
// Nullable fields are sent as null, never omitted.
type AnalysisRequest struct {
	BusinessName        string          `json:"business_name"`
	BusinessCount       int             `json:"business_count"`
	BusinessCategory    *string         `json:"business_category"`
	BusinessSubcategory *string         `json:"business_subcategory"`
	Location            *string         `json:"location"`
	AnalysisOptions     AnalysisOptions `json:"analysis_options"`
}

// Request builds the service request. The input must already be valid.
func (in BusinessInput) Request() AnalysisRequest {
	return AnalysisRequest{
		BusinessName:        strings.TrimSpace(in.BusinessName),
		BusinessCount:       in.BusinessCount,
		BusinessCategory:    nonBlank(in.BusinessCategory),
		BusinessSubcategory: nonBlank(in.BusinessSubcategory),
		Location:            in.Location.Join(),
		AnalysisOptions:     in.Options,
	}
}

// OptionalString returns nil for blank strings and a trimmed pointer otherwise.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func nonBlank(s *string) *string {
	if s == nil {
		return nil
	}
	return OptionalString(*s)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
