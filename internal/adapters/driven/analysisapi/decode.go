package analysisapi

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/buger/jsonparser"

	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
)

// Results are decoded field by field with jsonparser rather than into
// structs: every section is optional, may be replaced by {"error": ...},
// and the map-shaped groups (tech categories, tracking flags, social links)
// must keep the service's key order.

var errStop = errors.New("stop")

// timeLayouts are tried in order. The service writes naive UTC timestamps.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func decodeResult(data []byte) *domain.AnalysisResult {
	r := &domain.AnalysisResult{
		AnalysisID:           getString(data, "analysis_id"),
		BusinessInfo:         decodeBusinessInfo(section(data, "business_info")),
		AllBusinesses:        decodeBusinessSet(section(data, "all_businesses")),
		LinkedIn:             decodeLinkedIn(section(data, "linkedin_profile")),
		TechStack:            decodeTechStack(section(data, "tech_stack")),
		WebsiteAnalysis:      decodeWebsite(section(data, "website_analysis")),
		BusinessIntelligence: decodeIntelligence(section(data, "business_intelligence")),
		Outreach:             decodeOutreach(section(data, "outreach_message")),
		CreatedAt:            parseTime(getString(data, "created_at")),
	}

	if in := section(data, "business_input"); in != nil {
		input, location := decodeInput(in)
		r.Input = &input
		r.Location = location
	}
	if opts := section(data, "analysis_options"); opts != nil {
		o := decodeOptions(opts)
		r.Options = &o
	}
	return r
}

func decodeHistory(list []byte) []domain.HistoryEntry {
	entries := []domain.HistoryEntry{}
	_, _ = jsonparser.ArrayEach(list, func(item []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if dataType != jsonparser.Object {
			return
		}
		id := getString(item, "analysis_id")
		if id == "" {
			return
		}

		entry := domain.HistoryEntry{
			AnalysisID: id,
			Input:      domain.NewBusinessInput(""),
			CreatedAt:  parseTime(getString(item, "created_at")),
		}
		if in := section(item, "business_input"); in != nil {
			entry.Input, entry.Location = decodeInput(in)
		}
		// Top-level options are what the service actually used.
		if opts := section(item, "analysis_options"); opts != nil {
			entry.Input.Options = decodeOptions(opts)
		}
		entries = append(entries, entry)
	})
	return entries
}

func decodeHealth(data []byte) *domain.ServiceHealth {
	return &domain.ServiceHealth{
		Status:                 getString(data, "status"),
		DatabaseConnected:      getBool(data, "database_connected"),
		GeminiConfigured:       getBool(data, "gemini_configured"),
		GoogleSearchConfigured: getBool(data, "google_search_configured"),
		Timestamp:              parseTime(getString(data, "timestamp")),
	}
}

func decodeInput(obj []byte) (domain.BusinessInput, string) {
	in := domain.NewBusinessInput(getString(obj, "business_name"))
	if n, ok := getNumber(obj, "business_count"); ok {
		in.BusinessCount = int(math.Round(n))
	}
	in.BusinessCategory = domain.OptionalString(getString(obj, "business_category"))
	in.BusinessSubcategory = domain.OptionalString(getString(obj, "business_subcategory"))
	if opts := section(obj, "analysis_options"); opts != nil {
		in.Options = decodeOptions(opts)
	}
	return in, strings.TrimSpace(getString(obj, "location"))
}

func decodeOptions(obj []byte) domain.AnalysisOptions {
	opts := domain.DefaultAnalysisOptions()
	if m := getString(obj, "tech_stack_method"); m != "" {
		opts.TechStackMethod = domain.TechStackMethod(m)
	}
	if m := getString(obj, "website_analysis_method"); m != "" {
		opts.WebsiteAnalysisMethod = domain.WebsiteAnalysisMethod(m)
	}
	opts.GenerateOutreach = getBool(obj, "generate_outreach")
	return opts
}

func decodeBusinessInfo(obj []byte) *domain.BusinessInfo {
	if obj == nil {
		return nil
	}
	return &domain.BusinessInfo{
		ProcessedData: decodeProcessed(section(obj, "processed_data")),
		Error:         getString(obj, "error"),
	}
}

func decodeProcessed(obj []byte) *domain.ProcessedBusiness {
	if obj == nil {
		return nil
	}
	p := &domain.ProcessedBusiness{
		BusinessName:    getString(obj, "business_name"),
		Email:           getString(obj, "email"),
		Phone:           getString(obj, "phone"),
		Website:         getString(obj, "website"),
		Address:         getString(obj, "address"),
		Description:     getString(obj, "description"),
		Services:        getStrings(obj, "services"),
		ConfidenceScore: getFloat(obj, "confidence_score"),
		Error:           getString(obj, "error"),
	}
	eachField(obj, func(key string, value []byte, dataType jsonparser.ValueType) {
		if dataType != jsonparser.String {
			return
		}
		url, _ := jsonparser.ParseString(value)
		p.SocialMedia = append(p.SocialMedia, domain.SocialLink{Platform: key, URL: url})
	}, "social_media")
	return p
}

func decodeBusinessSet(obj []byte) *domain.BusinessSet {
	if obj == nil {
		return nil
	}
	set := &domain.BusinessSet{
		TotalFound:     getInt(obj, "total_found"),
		RequestedCount: getInt(obj, "requested_count"),
		Error:          getString(obj, "error"),
	}
	_, _ = jsonparser.ArrayEach(obj, func(item []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if dataType != jsonparser.Object {
			return
		}
		if p := decodeProcessed(section(item, "processed_data")); p != nil {
			set.Businesses = append(set.Businesses, *p)
		}
	}, "businesses")
	return set
}

func decodeLinkedIn(obj []byte) *domain.LinkedInSection {
	if obj == nil {
		return nil
	}
	li := &domain.LinkedInSection{
		SearchQueries: getStrings(obj, "search_queries_used"),
		TotalFound:    getInt(obj, "total_found"),
		Error:         getString(obj, "error"),
	}
	_, _ = jsonparser.ArrayEach(obj, func(item []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if dataType != jsonparser.Object {
			return
		}
		li.Profiles = append(li.Profiles, domain.LinkedInProfile{
			URL:     getString(item, "url"),
			Title:   getString(item, "title"),
			Snippet: getString(item, "snippet"),
		})
	}, "linkedin_profiles")
	return li
}

// decodeTechStack treats every array-valued key as a category, in document order.
func decodeTechStack(obj []byte) *domain.TechStackSection {
	if obj == nil {
		return nil
	}
	ts := &domain.TechStackSection{
		ConfidenceScore: getFloat(obj, "confidence_score"),
		AnalysisMethod:  getString(obj, "analysis_method"),
		Error:           getString(obj, "error"),
	}
	eachField(obj, func(key string, value []byte, dataType jsonparser.ValueType) {
		if dataType != jsonparser.Array {
			return
		}
		cat := domain.TechCategory{Name: key}
		_, _ = jsonparser.ArrayEach(value, func(item []byte, itemType jsonparser.ValueType, _ int, _ error) {
			switch itemType {
			case jsonparser.Object:
				cat.Items = append(cat.Items, domain.Technology{
					Name:            getString(item, "name"),
					Confidence:      getFloat(item, "confidence"),
					DetectionMethod: getString(item, "detection_method"),
				})
			case jsonparser.String:
				name, _ := jsonparser.ParseString(item)
				cat.Items = append(cat.Items, domain.Technology{Name: name})
			}
		})
		ts.Categories = append(ts.Categories, cat)
	})
	return ts
}

func decodeWebsite(obj []byte) *domain.WebsiteSection {
	if obj == nil {
		return nil
	}
	w := &domain.WebsiteSection{
		SEOScore:           getFloat(obj, "seo_score"),
		DesignQualityScore: getFloat(obj, "design_quality_score"),
		PerformanceScore:   getFloat(obj, "performance_score"),
		TitleTag:           decodeTag(section(obj, "title_tag")),
		MetaDescription:    decodeTag(section(obj, "meta_description")),
		H1Tags:             getStrings(obj, "h1_tags"),
		Recommendations:    getStrings(obj, "recommendations"),
		Error:              getString(obj, "error"),
	}

	if ct := section(obj, "conversion_tracking"); ct != nil {
		w.ConversionTracking = &domain.ConversionTracking{Score: getFloat(ct, "conversion_tracking_score")}
		eachField(ct, func(key string, value []byte, dataType jsonparser.ValueType) {
			if dataType != jsonparser.Boolean {
				return
			}
			detected, _ := jsonparser.ParseBoolean(value)
			w.ConversionTracking.Tools = append(w.ConversionTracking.Tools, domain.ToolFlag{Name: key, Detected: detected})
		})
	}
	if em := section(obj, "email_marketing"); em != nil {
		w.EmailMarketing = &domain.EmailMarketing{
			ToolsDetected:   getStrings(em, "tools_detected"),
			AutomationScore: getFloat(em, "email_automation_score"),
		}
	}
	if ad := section(obj, "advertising_detected"); ad != nil {
		w.Advertising = &domain.Advertising{
			ActivePlatforms: getStrings(ad, "active_platforms"),
			PresenceScore:   getFloat(ad, "advertising_presence_score"),
		}
	}
	return w
}

func decodeTag(obj []byte) *domain.TagCheck {
	if obj == nil {
		return nil
	}
	return &domain.TagCheck{
		Content: getString(obj, "content"),
		Length:  getInt(obj, "length"),
		Optimal: getBool(obj, "optimal"),
	}
}

func decodeIntelligence(obj []byte) *domain.IntelligenceSection {
	if obj == nil {
		return nil
	}
	bi := &domain.IntelligenceSection{Error: getString(obj, "error")}

	if intent := section(obj, "business_intent_analysis"); intent != nil {
		bi.Intent = &domain.BusinessIntent{
			DigitalReadinessScore: getFloat(intent, "digital_readiness_score"),
			GrowthSignals:         getStrings(intent, "growth_signals"),
			RiskFactors:           getStrings(intent, "risk_factors"),
			MarketPositioning:     getString(intent, "market_positioning"),
		}
	}
	if mk := section(obj, "digital_marketing_signals"); mk != nil {
		bi.Marketing = &domain.MarketingSignals{
			WebsiteConversionPotential: getFloat(mk, "website_conversion_potential"),
			MarketingMaturity:          getString(mk, "current_marketing_maturity"),
		}
	}
	if inv := section(obj, "investment_recommendation"); inv != nil {
		bi.Investment = &domain.InvestmentRecommendation{
			OverallScore:               getFloat(inv, "overall_score"),
			RecommendedInvestmentLevel: domain.InvestmentLevel(strings.ToLower(getString(inv, "recommended_investment_level"))),
			SuccessProbability:         getFloat(inv, "success_probability"),
			ExpectedROITimeline:        getString(inv, "expected_roi_timeline"),
			PriorityAreas:              getStrings(inv, "priority_areas"),
		}
		if b := section(inv, "budget_recommendation"); b != nil {
			bi.Investment.Budget = &domain.BudgetRecommendation{
				MonthlyMinimum: floatOrZero(b, "monthly_minimum"),
				MonthlyOptimal: floatOrZero(b, "monthly_optimal"),
				SetupCosts:     floatOrZero(b, "setup_costs"),
			}
		}
	}
	if s := section(obj, "sentiment_analysis"); s != nil {
		bi.Sentiment = &domain.SentimentAnalysis{
			OnlineReputationScore: getFloat(s, "online_reputation_score"),
			BrandPerception:       getString(s, "brand_perception"),
		}
	}
	_, _ = jsonparser.ArrayEach(obj, func(item []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if dataType != jsonparser.Object {
			return
		}
		bi.Recommendations = append(bi.Recommendations, domain.ActionableRecommendation{
			Category:       getString(item, "category"),
			Priority:       getString(item, "priority"),
			Action:         getString(item, "action"),
			ExpectedImpact: getString(item, "expected_impact"),
			Timeline:       getString(item, "timeline"),
		})
	}, "actionable_recommendations")
	return bi
}

func decodeOutreach(obj []byte) *domain.OutreachSection {
	if obj == nil {
		return nil
	}
	return &domain.OutreachSection{
		SubjectLine:             getString(obj, "subject_line"),
		OpeningLine:             getString(obj, "opening_line"),
		BodyParagraphs:          getStrings(obj, "body_paragraphs"),
		CallToAction:            getString(obj, "call_to_action"),
		PSLine:                  getString(obj, "ps_line"),
		Tone:                    getString(obj, "tone"),
		PersonalizationElements: getStrings(obj, "personalization_elements"),
		KeyInsightsMentioned:    getStrings(obj, "key_insights_mentioned"),
		Note:                    getString(obj, "note"),
		Error:                   getString(obj, "error"),
	}
}

// section returns the object at keys, or nil if it is missing, null,
// not an object, or empty.
func section(data []byte, keys ...string) []byte {
	value, dataType, _, err := jsonparser.Get(data, keys...)
	if err != nil || dataType != jsonparser.Object {
		return nil
	}
	empty := true
	_ = jsonparser.ObjectEach(value, func(_, _ []byte, _ jsonparser.ValueType, _ int) error {
		empty = false
		return errStop
	})
	if empty {
		return nil
	}
	return value
}

// eachField calls fn for every member of the object at keys, in document order.
func eachField(data []byte, fn func(key string, value []byte, dataType jsonparser.ValueType), keys ...string) {
	_ = jsonparser.ObjectEach(data, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		k, err := jsonparser.ParseString(key)
		if err != nil {
			k = string(key)
		}
		fn(k, value, dataType)
		return nil
	}, keys...)
}

func getString(data []byte, keys ...string) string {
	value, dataType, _, err := jsonparser.Get(data, keys...)
	if err != nil || dataType != jsonparser.String {
		return ""
	}
	s, err := jsonparser.ParseString(value)
	if err != nil {
		return ""
	}
	return s
}

func getStrings(data []byte, keys ...string) []string {
	var out []string
	_, _ = jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if dataType != jsonparser.String {
			return
		}
		if s, err := jsonparser.ParseString(value); err == nil {
			out = append(out, s)
		}
	}, keys...)
	return out
}

func getNumber(data []byte, keys ...string) (float64, bool) {
	value, dataType, _, err := jsonparser.Get(data, keys...)
	if err != nil || dataType != jsonparser.Number {
		return 0, false
	}
	f, err := jsonparser.ParseFloat(value)
	if err != nil {
		return 0, false
	}
	return f, true
}

func getFloat(data []byte, keys ...string) *float64 {
	f, ok := getNumber(data, keys...)
	if !ok {
		return nil
	}
	return &f
}

func floatOrZero(data []byte, keys ...string) float64 {
	f, _ := getNumber(data, keys...)
	return f
}

func getInt(data []byte, keys ...string) int {
	f, _ := getNumber(data, keys...)
	return int(math.Round(f))
}

func getBool(data []byte, keys ...string) bool {
	value, dataType, _, err := jsonparser.Get(data, keys...)
	if err != nil || dataType != jsonparser.Boolean {
		return false
	}
	b, _ := jsonparser.ParseBoolean(value)
	return b
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
