package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
)

func renderBusiness(r *domain.AnalysisResult, _ Context) Unit {
	info := r.BusinessInfo
	if info == nil {
		return placeholder(TagBusiness, "")
	}
	if info.Error != "" {
		return placeholder(TagBusiness, info.Error)
	}
	p := info.ProcessedData
	if p == nil {
		return placeholder(TagBusiness, "")
	}
	if p.Error != "" {
		return placeholder(TagBusiness, p.Error)
	}

	u := newUnit(TagBusiness)
	addBusinessFields(&u, p)
	u.paragraph(p.Description)
	u.list("Social media", socialLinks(p.SocialMedia))
	u.list("Services", p.Services)
	u.optionalBar("Confidence", p.ConfidenceScore, domain.ScaleProbability)

	if u.empty() {
		return placeholder(TagBusiness, "")
	}
	return u
}

func addBusinessFields(u *Unit, p *domain.ProcessedBusiness) {
	u.field("Name", p.BusinessName)
	u.field("Email", p.Email)
	u.field("Phone", p.Phone)
	u.field("Website", p.Website)
	u.field("Address", p.Address)
}

func socialLinks(links []domain.SocialLink) []string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		if strings.TrimSpace(l.URL) == "" {
			continue
		}
		out = append(out, l.Platform+": "+l.URL)
	}
	return out
}

// renderBusinesses lists every business found for a multi-business request.
// A single-business set repeats the business section and is hidden.
func renderBusinesses(r *domain.AnalysisResult, _ Context) Unit {
	set := r.AllBusinesses
	if set == nil {
		return hidden(TagBusinesses)
	}
	if set.Error != "" {
		return placeholder(TagBusinesses, set.Error)
	}
	if set.RequestedCount <= 1 && len(set.Businesses) <= 1 {
		return hidden(TagBusinesses)
	}

	u := newUnit(TagBusinesses)
	u.field("Found", fmt.Sprintf("%d of %d requested", set.TotalFound, set.RequestedCount))
	for i, b := range set.Businesses {
		title := strings.TrimSpace(b.BusinessName)
		if title == "" {
			title = fmt.Sprintf("Business %d", i+1)
		}
		var items []string
		for _, f := range []Field{
			{"Email", b.Email}, {"Phone", b.Phone}, {"Website", b.Website}, {"Address", b.Address},
		} {
			if v := strings.TrimSpace(f.Value); v != "" {
				items = append(items, f.Label+": "+v)
			}
		}
		if len(items) == 0 {
			items = []string{NotAvailable}
		}
		u.list(title, items)
	}
	return u
}

func renderLinkedIn(r *domain.AnalysisResult, _ Context) Unit {
	li := r.LinkedIn
	if li == nil {
		return placeholder(TagLinkedIn, "")
	}
	if li.Error != "" {
		return placeholder(TagLinkedIn, li.Error)
	}

	u := newUnit(TagLinkedIn)
	profiles := make([]string, 0, len(li.Profiles))
	for _, p := range li.Profiles {
		switch {
		case p.URL == "":
			continue
		case p.Title != "":
			profiles = append(profiles, p.Title+" ("+p.URL+")")
		default:
			profiles = append(profiles, p.URL)
		}
	}
	if len(profiles) == 0 {
		u.paragraph("No company profiles found.")
	}
	u.list("Profiles", profiles)
	u.list("Search queries", li.SearchQueries)
	return u
}

func renderTechStack(r *domain.AnalysisResult, _ Context) Unit {
	ts := r.TechStack
	if ts == nil {
		return placeholder(TagTechStack, "")
	}
	if ts.Error != "" {
		return placeholder(TagTechStack, ts.Error)
	}

	u := newUnit(TagTechStack)
	for _, cat := range ts.Categories {
		items := make([]string, 0, len(cat.Items))
		for _, tech := range cat.Items {
			if s := TechLabel(tech); s != "" {
				items = append(items, s)
			}
		}
		u.list(categoryTitle(cat.Name), items)
	}
	if len(u.Lists) == 0 {
		u.paragraph("No technologies detected.")
	}
	u.field("Method", ts.AnalysisMethod)
	u.optionalBar("Confidence", ts.ConfidenceScore, domain.ScaleProbability)
	return u
}

// TechLabel formats a technology as "<name> <pct>%", or the bare name when
// the confidence is unknown.
func TechLabel(t domain.Technology) string {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return ""
	}
	if t.Confidence == nil || math.IsNaN(*t.Confidence) {
		return name
	}
	return name + " " + strconv.Itoa(domain.NormalizeScore(t.Confidence, domain.ScaleProbability)) + "%"
}

// categoryTitle turns "email_marketing" into "Email marketing".
func categoryTitle(key string) string {
	s := strings.TrimSpace(strings.ReplaceAll(key, "_", " "))
	if s == "" {
		return key
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func renderWebsite(r *domain.AnalysisResult, _ Context) Unit {
	w := r.WebsiteAnalysis
	if w == nil {
		return placeholder(TagWebsite, "")
	}
	if w.Error != "" {
		return placeholder(TagWebsite, w.Error)
	}

	u := newUnit(TagWebsite)
	u.bar("SEO score", w.SEOScore, domain.ScalePercent)
	u.bar("Design quality", w.DesignQualityScore, domain.ScalePercent)
	u.optionalBar("Performance", w.PerformanceScore, domain.ScalePercent)

	u.field("Title tag", tagSummary(w.TitleTag))
	u.field("Meta description", tagSummary(w.MetaDescription))
	u.list("H1 tags", w.H1Tags)

	if ct := w.ConversionTracking; ct != nil {
		var detected []string
		for _, tool := range ct.Tools {
			if tool.Detected {
				detected = append(detected, categoryTitle(tool.Name))
			}
		}
		u.list("Conversion tracking", detected)
		u.optionalBar("Conversion tracking", ct.Score, domain.ScalePercent)
	}
	if em := w.EmailMarketing; em != nil {
		u.list("Email marketing", em.ToolsDetected)
		u.optionalBar("Email automation", em.AutomationScore, domain.ScalePercent)
	}
	if ad := w.Advertising; ad != nil {
		u.list("Advertising", ad.ActivePlatforms)
		u.optionalBar("Advertising presence", ad.PresenceScore, domain.ScalePercent)
	}
	u.list("Recommendations", w.Recommendations)
	return u
}

func tagSummary(t *domain.TagCheck) string {
	if t == nil || strings.TrimSpace(t.Content) == "" {
		return ""
	}
	verdict := "needs work"
	if t.Optimal {
		verdict = "optimal"
	}
	return fmt.Sprintf("%s (%d chars, %s)", strings.TrimSpace(t.Content), t.Length, verdict)
}

func renderIntelligence(r *domain.AnalysisResult, _ Context) Unit {
	bi := r.BusinessIntelligence
	if bi == nil {
		return placeholder(TagIntelligence, "")
	}
	if bi.Error != "" {
		return placeholder(TagIntelligence, bi.Error)
	}

	u := newUnit(TagIntelligence)
	if in := bi.Intent; in != nil {
		u.bar("Digital readiness", in.DigitalReadinessScore, domain.ScaleProbability)
		u.field("Market positioning", in.MarketPositioning)
		u.list("Growth signals", in.GrowthSignals)
		u.list("Risk factors", in.RiskFactors)
	}
	if mk := bi.Marketing; mk != nil {
		u.bar("Conversion potential", mk.WebsiteConversionPotential, domain.ScaleProbability)
		u.field("Marketing maturity", mk.MarketingMaturity)
	}
	if inv := bi.Investment; inv != nil {
		u.optionalBar("Overall score", inv.OverallScore, domain.ScaleAuto)
		u.bar("Success probability", inv.SuccessProbability, domain.ScaleProbability)
		if inv.RecommendedInvestmentLevel != "" {
			u.field("Investment level", strings.ToUpper(string(inv.RecommendedInvestmentLevel)))
		}
		u.field("ROI timeline", inv.ExpectedROITimeline)
		if b := inv.Budget; b != nil {
			u.field("Monthly budget", fmt.Sprintf("%s - %s", money(b.MonthlyMinimum), money(b.MonthlyOptimal)))
			u.field("Setup costs", money(b.SetupCosts))
		}
		u.list("Priority areas", inv.PriorityAreas)
	}
	if s := bi.Sentiment; s != nil {
		u.bar("Online reputation", s.OnlineReputationScore, domain.ScaleProbability)
		u.field("Brand perception", s.BrandPerception)
	}

	actions := make([]string, 0, len(bi.Recommendations))
	for _, rec := range bi.Recommendations {
		if rec.Action == "" {
			continue
		}
		line := rec.Action
		if rec.Category != "" {
			line = rec.Category + ": " + line
		}
		if rec.Priority != "" {
			line = "[" + strings.ToLower(rec.Priority) + "] " + line
		}
		if rec.Timeline != "" {
			line += " (" + rec.Timeline + ")"
		}
		actions = append(actions, line)
	}
	u.list("Recommendations", actions)

	if u.empty() {
		return placeholder(TagIntelligence, "")
	}
	return u
}

// money formats whole dollars with thousands separators.
func money(v float64) string {
	n := int64(math.Round(v))
	sign := ""
	if n < 0 {
		sign, n = "-", -n
	}
	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return sign + "$" + b.String()
}

// renderOutreach is hidden unless outreach was requested for the submission.
func renderOutreach(r *domain.AnalysisResult, ctx Context) Unit {
	if !ctx.GenerateOutreach {
		return hidden(TagOutreach)
	}
	o := r.Outreach
	if o == nil {
		return placeholder(TagOutreach, "")
	}
	if o.Error != "" {
		return placeholder(TagOutreach, o.Error)
	}
	if !o.HasMessage() {
		return placeholder(TagOutreach, o.Note)
	}

	u := newUnit(TagOutreach)
	u.field("Subject", o.SubjectLine)
	u.field("Tone", o.Tone)
	u.paragraph(o.OpeningLine)
	for _, p := range o.BodyParagraphs {
		u.paragraph(p)
	}
	u.paragraph(o.CallToAction)
	if ps := strings.TrimSpace(o.PSLine); ps != "" {
		if !strings.HasPrefix(strings.ToUpper(ps), "P.S") && !strings.HasPrefix(strings.ToUpper(ps), "PS") {
			ps = "P.S. " + ps
		}
		u.paragraph(ps)
	}
	u.list("Personalization", o.PersonalizationElements)
	u.list("Key insights", o.KeyInsightsMentioned)
	return u
}
