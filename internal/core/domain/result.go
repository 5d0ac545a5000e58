package domain

import "time"

// AnalysisResult is the sectioned result produced by the analysis service.
//
// Every top-level section is independently optional (nil when absent) and may
// carry an Error marker instead of data. Consumers must never assume a section
// or any nested field is present. Results are replaced wholesale, never merged.
type AnalysisResult struct {
	// AnalysisID is the service's opaque identifier.
	AnalysisID string

	BusinessInfo         *BusinessInfo
	AllBusinesses        *BusinessSet
	LinkedIn             *LinkedInSection
	TechStack            *TechStackSection
	WebsiteAnalysis      *WebsiteSection
	BusinessIntelligence *IntelligenceSection
	Outreach             *OutreachSection

	// Input echoes the submitted input when the service returns it.
	// The service stores the location already joined, so Input.Location is
	// empty and the joined form is kept in Location.
	Input    *BusinessInput
	Location string

	// Options echoes the analysis options used by the service.
	Options *AnalysisOptions

	// CreatedAt is when the service stored the analysis (zero if unknown).
	CreatedAt time.Time
}

// OutreachRequested reports whether outreach generation was requested for
// this result according to the service's own echo. Returns false when the
// service did not echo its options.
func (r *AnalysisResult) OutreachRequested() bool {
	if r == nil {
		return false
	}
	if r.Options != nil {
		return r.Options.GenerateOutreach
	}
	if r.Input != nil {
		return r.Input.Options.GenerateOutreach
	}
	return false
}

// BusinessInfo wraps the extracted profile of the primary business.
type BusinessInfo struct {
	ProcessedData *ProcessedBusiness
	Error         string
}

// ProcessedBusiness is structured contact and profile data for one business.
type ProcessedBusiness struct {
	BusinessName    string
	Email           string
	Phone           string
	Website         string
	Address         string
	Description     string
	SocialMedia     []SocialLink
	Services        []string
	ConfidenceScore *float64
	Error           string
}

// SocialLink is one platform → URL entry, kept in service order.
type SocialLink struct {
	Platform string
	URL      string
}

// BusinessSet holds every business found when more than one was requested.
type BusinessSet struct {
	TotalFound     int
	RequestedCount int
	Businesses     []ProcessedBusiness
	Error          string
}

// LinkedInSection lists discovered company profiles.
type LinkedInSection struct {
	Profiles      []LinkedInProfile
	SearchQueries []string
	TotalFound    int
	Error         string
}

// LinkedInProfile is a single search hit.
type LinkedInProfile struct {
	URL     string
	Title   string
	Snippet string
}

// TechStackSection groups detected technologies by category.
type TechStackSection struct {
	// Categories are in the order the service returned them.
	Categories      []TechCategory
	ConfidenceScore *float64
	AnalysisMethod  string
	Error           string
}

// TechCategory is one category of detected technologies.
type TechCategory struct {
	Name  string
	Items []Technology
}

// Technology is a single detected technology.
type Technology struct {
	Name            string
	Confidence      *float64
	DetectionMethod string
}

// WebsiteSection holds SEO, design and marketing-tooling analysis.
type WebsiteSection struct {
	SEOScore           *float64
	DesignQualityScore *float64
	PerformanceScore   *float64
	TitleTag           *TagCheck
	MetaDescription    *TagCheck
	H1Tags             []string
	ConversionTracking *ConversionTracking
	EmailMarketing     *EmailMarketing
	Advertising        *Advertising
	Recommendations    []string
	Error              string
}

// TagCheck describes an HTML tag's content and whether its length is optimal.
type TagCheck struct {
	Content string
	Length  int
	Optimal bool
}

// ConversionTracking lists tracking tools in service order with a score.
type ConversionTracking struct {
	Tools []ToolFlag
	Score *float64
}

// ToolFlag is one tool → detected entry.
type ToolFlag struct {
	Name     string
	Detected bool
}

// EmailMarketing lists detected email automation tools.
type EmailMarketing struct {
	ToolsDetected   []string
	AutomationScore *float64
}

// Advertising lists detected advertising platforms.
type Advertising struct {
	ActivePlatforms []string
	PresenceScore   *float64
}

// InvestmentLevel is the recommended marketing investment level.
type InvestmentLevel string

// Recommended investment levels.
const (
	InvestmentLow    InvestmentLevel = "low"
	InvestmentMedium InvestmentLevel = "medium"
	InvestmentHigh   InvestmentLevel = "high"
)

// IsValid returns true if the level is recognised.
func (l InvestmentLevel) IsValid() bool {
	switch l {
	case InvestmentLow, InvestmentMedium, InvestmentHigh:
		return true
	default:
		return false
	}
}

// IntelligenceSection holds the business-intelligence scoring.
type IntelligenceSection struct {
	Intent          *BusinessIntent
	Marketing       *MarketingSignals
	Investment      *InvestmentRecommendation
	Sentiment       *SentimentAnalysis
	Recommendations []ActionableRecommendation
	Error           string
}

// BusinessIntent describes digital readiness and growth signals.
type BusinessIntent struct {
	DigitalReadinessScore *float64
	GrowthSignals         []string
	RiskFactors           []string
	MarketPositioning     string
}

// MarketingSignals describes digital marketing maturity.
type MarketingSignals struct {
	WebsiteConversionPotential *float64
	MarketingMaturity          string
}

// InvestmentRecommendation is the service's investment advice.
type InvestmentRecommendation struct {
	OverallScore               *float64
	RecommendedInvestmentLevel InvestmentLevel
	SuccessProbability         *float64
	ExpectedROITimeline        string
	Budget                     *BudgetRecommendation
	PriorityAreas              []string
}

// BudgetRecommendation is a monthly budget range plus setup costs.
type BudgetRecommendation struct {
	MonthlyMinimum float64
	MonthlyOptimal float64
	SetupCosts     float64
}

// SentimentAnalysis describes online reputation.
type SentimentAnalysis struct {
	OnlineReputationScore *float64
	BrandPerception       string
}

// ActionableRecommendation is one prioritised action.
type ActionableRecommendation struct {
	Category       string
	Priority       string
	Action         string
	ExpectedImpact string
	Timeline       string
}

// OutreachSection is a generated outreach email.
type OutreachSection struct {
	SubjectLine             string
	OpeningLine             string
	BodyParagraphs          []string
	CallToAction            string
	PSLine                  string
	Tone                    string
	PersonalizationElements []string
	KeyInsightsMentioned    []string

	// Note is set when the service explains why no message was generated.
	Note  string
	Error string
}

// HasMessage returns true if the section carries any message content.
func (o *OutreachSection) HasMessage() bool {
	if o == nil {
		return false
	}
	return o.SubjectLine != "" || o.OpeningLine != "" || len(o.BodyParagraphs) > 0 || o.CallToAction != ""
}
