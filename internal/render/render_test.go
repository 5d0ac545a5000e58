package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
)

func ptr(f float64) *float64 { return &f }

func unitFor(t *testing.T, units []Unit, tag Tag) Unit {
	t.Helper()
	for _, u := range units {
		if u.Tag == tag {
			return u
		}
	}
	require.Failf(t, "unit not found", "tag %s", tag)
	return Unit{}
}

func TestNewRegistry_IsExhaustive(t *testing.T) {
	assert.NoError(t, NewRegistry().Validate())
}

func TestRegistry_ValidateReportsMissing(t *testing.T) {
	r := &Registry{renderers: map[Tag]RendererFunc{TagBusiness: renderBusiness}}

	err := r.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "linkedin")
	assert.NotContains(t, err.Error(), "business,")
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	err := r.Register("pricing", renderBusiness)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = r.Register(TagLinkedIn, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, r.Register(TagLinkedIn, func(*domain.AnalysisResult, Context) Unit {
		return Unit{Status: StatusAvailable, Paragraphs: []string{"custom"}}
	}))
	u := unitFor(t, r.Render(nil, Context{}), TagLinkedIn)
	assert.Equal(t, []string{"custom"}, u.Paragraphs)
	assert.Equal(t, "LinkedIn", u.Title)
}

func TestRegistry_Render_FixedOrder(t *testing.T) {
	units := NewRegistry().Render(&domain.AnalysisResult{}, Context{})

	require.Len(t, units, len(Tags()))
	for i, tag := range Tags() {
		assert.Equal(t, tag, units[i].Tag)
	}
}

func TestRegistry_Render_NilResult(t *testing.T) {
	units := NewRegistry().Render(nil, Context{GenerateOutreach: true})

	for _, u := range units {
		if u.Tag == TagBusinesses {
			assert.Equal(t, StatusHidden, u.Status)
			continue
		}
		assert.Equal(t, StatusPlaceholder, u.Status, u.Tag)
		assert.Equal(t, NotAvailable, u.Placeholder, u.Tag)
	}
}

func TestRegistry_Render_RecoversFromPanic(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(TagWebsite, func(*domain.AnalysisResult, Context) Unit {
		panic("boom")
	}))

	var units []Unit
	require.NotPanics(t, func() { units = r.Render(&domain.AnalysisResult{}, Context{}) })

	u := unitFor(t, units, TagWebsite)
	assert.Equal(t, StatusPlaceholder, u.Status)
}

func TestRender_ErrorMarkersInline(t *testing.T) {
	result := &domain.AnalysisResult{
		BusinessInfo:         &domain.BusinessInfo{Error: "scrape failed"},
		LinkedIn:             &domain.LinkedInSection{Error: "quota"},
		TechStack:            &domain.TechStackSection{Error: "timeout"},
		WebsiteAnalysis:      &domain.WebsiteSection{Error: "unreachable"},
		BusinessIntelligence: &domain.IntelligenceSection{Error: "timeout"},
		Outreach:             &domain.OutreachSection{Error: "model error"},
		AllBusinesses:        &domain.BusinessSet{Error: "search failed"},
	}

	units := NewRegistry().Render(result, Context{GenerateOutreach: true})

	want := map[Tag]string{
		TagBusiness:     "Not available: scrape failed",
		TagBusinesses:   "Not available: search failed",
		TagLinkedIn:     "Not available: quota",
		TagTechStack:    "Not available: timeout",
		TagWebsite:      "Not available: unreachable",
		TagIntelligence: "Not available: timeout",
		TagOutreach:     "Not available: model error",
	}
	for tag, msg := range want {
		u := unitFor(t, units, tag)
		assert.Equal(t, StatusPlaceholder, u.Status, tag)
		assert.Equal(t, msg, u.Placeholder, tag)
	}
}

func TestRenderBusiness(t *testing.T) {
	result := &domain.AnalysisResult{BusinessInfo: &domain.BusinessInfo{ProcessedData: &domain.ProcessedBusiness{
		BusinessName: "Wedding Makeover Studio",
		Email:        "hello@example.com",
		SocialMedia: []domain.SocialLink{
			{Platform: "instagram", URL: "https://instagram.com/wms"},
			{Platform: "twitter", URL: ""},
			{Platform: "facebook", URL: "https://facebook.com/wms"},
		},
		ConfidenceScore: ptr(0.82),
	}}}

	u := renderBusiness(result, Context{})

	assert.Equal(t, StatusAvailable, u.Status)
	assert.Equal(t, []Field{
		{Label: "Name", Value: "Wedding Makeover Studio"},
		{Label: "Email", Value: "hello@example.com"},
	}, u.Fields)
	require.Len(t, u.Lists, 1)
	assert.Equal(t, []string{"instagram: https://instagram.com/wms", "facebook: https://facebook.com/wms"}, u.Lists[0].Items)
	assert.Equal(t, []Bar{{Label: "Confidence", Value: 82}}, u.Bars)
}

func TestRenderBusiness_EmptyProcessedData(t *testing.T) {
	result := &domain.AnalysisResult{BusinessInfo: &domain.BusinessInfo{ProcessedData: &domain.ProcessedBusiness{}}}

	u := renderBusiness(result, Context{})

	assert.Equal(t, StatusPlaceholder, u.Status)
	assert.Equal(t, NotAvailable, u.Placeholder)
}

func TestRenderBusinesses(t *testing.T) {
	assert.Equal(t, StatusHidden, renderBusinesses(&domain.AnalysisResult{}, Context{}).Status)

	result := &domain.AnalysisResult{AllBusinesses: &domain.BusinessSet{
		TotalFound:     2,
		RequestedCount: 3,
		Businesses: []domain.ProcessedBusiness{
			{BusinessName: "First", Phone: "555"},
			{},
		},
	}}

	u := renderBusinesses(result, Context{})

	assert.Equal(t, StatusAvailable, u.Status)
	assert.Equal(t, []Field{{Label: "Found", Value: "2 of 3 requested"}}, u.Fields)
	require.Len(t, u.Lists, 2)
	assert.Equal(t, List{Title: "First", Items: []string{"Phone: 555"}}, u.Lists[0])
	assert.Equal(t, List{Title: "Business 2", Items: []string{NotAvailable}}, u.Lists[1])
}

func TestRenderBusinesses_SingleBusinessHidden(t *testing.T) {
	result := &domain.AnalysisResult{AllBusinesses: &domain.BusinessSet{
		TotalFound:     1,
		RequestedCount: 1,
		Businesses:     []domain.ProcessedBusiness{{BusinessName: "Solo", Phone: "123"}},
	}}

	u := renderBusinesses(result, Context{})

	assert.Equal(t, StatusHidden, u.Status)
	assert.Empty(t, u.Fields)
	assert.Empty(t, u.Lists)
	assert.NotContains(t, Format(NewRegistry().Render(result, Context{}), PlainStyles()), "All Businesses Found")
}

func TestCategoryTitle(t *testing.T) {
	assert.Equal(t, "Email marketing", categoryTitle("email_marketing"))
	assert.Equal(t, "Élan tools", categoryTitle("élan_tools"))
	assert.Equal(t, "Ünicode", categoryTitle("ünicode"))
	assert.Equal(t, "", categoryTitle(""))
}

func TestRenderLinkedIn(t *testing.T) {
	result := &domain.AnalysisResult{LinkedIn: &domain.LinkedInSection{Profiles: []domain.LinkedInProfile{
		{URL: "https://linkedin.com/company/wms", Title: "WMS"},
		{URL: "https://linkedin.com/company/other"},
		{Title: "no url"},
	}}}

	u := renderLinkedIn(result, Context{})

	require.Len(t, u.Lists, 1)
	assert.Equal(t, []string{"WMS (https://linkedin.com/company/wms)", "https://linkedin.com/company/other"}, u.Lists[0].Items)

	empty := renderLinkedIn(&domain.AnalysisResult{LinkedIn: &domain.LinkedInSection{}}, Context{})
	assert.Equal(t, StatusAvailable, empty.Status)
	assert.Equal(t, []string{"No company profiles found."}, empty.Paragraphs)
}

func TestRenderTechStack_OrderAndLabels(t *testing.T) {
	result := &domain.AnalysisResult{TechStack: &domain.TechStackSection{
		Categories: []domain.TechCategory{
			{Name: "cms", Items: []domain.Technology{{Name: "wordpress", Confidence: ptr(0.9)}}},
			{Name: "frameworks"},
			{Name: "email_marketing", Items: []domain.Technology{{Name: "mailchimp"}, {Name: " "}}},
		},
		ConfidenceScore: ptr(0.75),
	}}

	u := renderTechStack(result, Context{})

	require.Len(t, u.Lists, 2)
	assert.Equal(t, List{Title: "Cms", Items: []string{"wordpress 90%"}}, u.Lists[0])
	assert.Equal(t, List{Title: "Email marketing", Items: []string{"mailchimp"}}, u.Lists[1])
	assert.Equal(t, []Bar{{Label: "Confidence", Value: 75}}, u.Bars)
}

func TestRenderTechStack_NothingDetected(t *testing.T) {
	u := renderTechStack(&domain.AnalysisResult{TechStack: &domain.TechStackSection{}}, Context{})

	assert.Equal(t, StatusAvailable, u.Status)
	assert.Equal(t, []string{"No technologies detected."}, u.Paragraphs)
}

func TestTechLabel(t *testing.T) {
	assert.Equal(t, "wordpress 90%", TechLabel(domain.Technology{Name: "wordpress", Confidence: ptr(0.9)}))
	assert.Equal(t, "react 100%", TechLabel(domain.Technology{Name: "react", Confidence: ptr(1.7)}))
	assert.Equal(t, "jquery 0%", TechLabel(domain.Technology{Name: "jquery", Confidence: ptr(-0.2)}))
	assert.Equal(t, "nginx", TechLabel(domain.Technology{Name: "nginx"}))
	assert.Equal(t, "", TechLabel(domain.Technology{Confidence: ptr(0.5)}))
}

func TestRenderWebsite(t *testing.T) {
	result := &domain.AnalysisResult{WebsiteAnalysis: &domain.WebsiteSection{
		SEOScore:  ptr(72.4),
		TitleTag:  &domain.TagCheck{Content: "WMS", Length: 3},
		ConversionTracking: &domain.ConversionTracking{
			Tools: []domain.ToolFlag{
				{Name: "google_analytics", Detected: true},
				{Name: "facebook_pixel", Detected: false},
				{Name: "hotjar", Detected: true},
			},
			Score: ptr(66),
		},
	}}

	u := renderWebsite(result, Context{})

	assert.Equal(t, []Bar{
		{Label: "SEO score", Value: 72},
		{Label: "Design quality", Value: 0},
		{Label: "Conversion tracking", Value: 66},
	}, u.Bars)
	assert.Equal(t, []Field{{Label: "Title tag", Value: "WMS (3 chars, needs work)"}}, u.Fields)
	require.Len(t, u.Lists, 1)
	assert.Equal(t, List{Title: "Conversion tracking", Items: []string{"Google analytics", "Hotjar"}}, u.Lists[0])
}

func TestRenderIntelligence(t *testing.T) {
	result := &domain.AnalysisResult{BusinessIntelligence: &domain.IntelligenceSection{
		Intent: &domain.BusinessIntent{DigitalReadinessScore: ptr(0.6), GrowthSignals: []string{"hiring"}},
		Investment: &domain.InvestmentRecommendation{
			OverallScore:               ptr(0.72),
			RecommendedInvestmentLevel: domain.InvestmentMedium,
			SuccessProbability:         ptr(1.4),
			Budget:                     &domain.BudgetRecommendation{MonthlyMinimum: 500, MonthlyOptimal: 1200, SetupCosts: 2000},
		},
		Sentiment: &domain.SentimentAnalysis{OnlineReputationScore: ptr(0.8)},
		Recommendations: []domain.ActionableRecommendation{
			{Category: "SEO", Priority: "High", Action: "Fix titles", Timeline: "1 month"},
			{Category: "Ads"},
		},
	}}

	u := renderIntelligence(result, Context{})

	assert.Equal(t, []Bar{
		{Label: "Digital readiness", Value: 60},
		{Label: "Overall score", Value: 72},
		{Label: "Success probability", Value: 100},
		{Label: "Online reputation", Value: 80},
	}, u.Bars)
	assert.Contains(t, u.Fields, Field{Label: "Investment level", Value: "MEDIUM"})
	assert.Contains(t, u.Fields, Field{Label: "Monthly budget", Value: "$500 - $1,200"})
	assert.Contains(t, u.Fields, Field{Label: "Setup costs", Value: "$2,000"})
	assert.Contains(t, u.Lists, List{Title: "Recommendations", Items: []string{"[high] SEO: Fix titles (1 month)"}})
}

func TestRenderIntelligence_EmptySectionIsPlaceholder(t *testing.T) {
	u := renderIntelligence(&domain.AnalysisResult{BusinessIntelligence: &domain.IntelligenceSection{}}, Context{})

	assert.Equal(t, StatusPlaceholder, u.Status)
	assert.Equal(t, NotAvailable, u.Placeholder)
}

func TestRenderOutreach(t *testing.T) {
	msg := &domain.OutreachSection{
		SubjectLine:    "Hello",
		OpeningLine:    "Hi there,",
		BodyParagraphs: []string{"One", "Two"},
		CallToAction:   "Reply today",
		PSLine:         "we love weddings",
	}

	t.Run("hidden when not requested", func(t *testing.T) {
		u := renderOutreach(&domain.AnalysisResult{Outreach: msg}, Context{})
		assert.Equal(t, StatusHidden, u.Status)
	})

	t.Run("rendered when requested", func(t *testing.T) {
		u := renderOutreach(&domain.AnalysisResult{Outreach: msg}, Context{GenerateOutreach: true})
		assert.Equal(t, StatusAvailable, u.Status)
		assert.Equal(t, []string{"Hi there,", "One", "Two", "Reply today", "P.S. we love weddings"}, u.Paragraphs)
	})

	t.Run("note becomes placeholder", func(t *testing.T) {
		u := renderOutreach(&domain.AnalysisResult{
			Outreach: &domain.OutreachSection{Note: "Outreach generation was not requested"},
		}, Context{GenerateOutreach: true})
		assert.Equal(t, "Not available: Outreach generation was not requested", u.Placeholder)
	})
}

func TestContextFor(t *testing.T) {
	assert.True(t, ContextFor(domain.AnalysisStatus{ShowOutreach: true}).GenerateOutreach)
	assert.False(t, ContextFor(domain.AnalysisStatus{}).GenerateOutreach)
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$0", money(0))
	assert.Equal(t, "$999", money(999))
	assert.Equal(t, "$1,000", money(1000))
	assert.Equal(t, "$1,234,568", money(1234567.6))
	assert.Equal(t, "-$1,500", money(-1500))
}

func TestFormat_Plain(t *testing.T) {
	result := &domain.AnalysisResult{
		TechStack: &domain.TechStackSection{Categories: []domain.TechCategory{
			{Name: "cms", Items: []domain.Technology{{Name: "wordpress", Confidence: ptr(0.9)}}},
		}},
		WebsiteAnalysis:      &domain.WebsiteSection{SEOScore: ptr(50)},
		BusinessIntelligence: &domain.IntelligenceSection{Error: "timeout"},
		Outreach:             &domain.OutreachSection{SubjectLine: "secret subject"},
	}

	out := Format(NewRegistry().Render(result, Context{}), PlainStyles())

	assert.Contains(t, out, "Technology Stack")
	assert.Contains(t, out, "    - wordpress 90%")
	assert.Contains(t, out, "##########---------- 50/100")
	assert.Contains(t, out, "Business Intelligence\n  Not available: timeout")
	assert.NotContains(t, out, "Outreach Message")
	assert.NotContains(t, out, "secret subject")
	assert.NotContains(t, out, "All Businesses Found")
}

func TestFormat_NilStylesIsPlain(t *testing.T) {
	units := []Unit{{Title: "T", Status: StatusAvailable, Bars: []Bar{{Label: "x", Value: 100}}}}

	assert.Contains(t, Format(units, nil), strings.Repeat("#", DefaultBarWidth)+" 100/100")
}

func TestFormatBar_Clamps(t *testing.T) {
	s := PlainStyles()
	s.BarWidth = 4

	assert.Equal(t, "---- 0/100", formatBar(-5, s))
	assert.Equal(t, "##-- 50/100", formatBar(50, s))
	assert.Equal(t, "#### 100/100", formatBar(250, s))
}

func TestStylesFor_NonTerminal(t *testing.T) {
	var buf bytes.Buffer

	s := StylesFor(&buf)

	assert.Equal(t, "#", s.FilledCell)
}
