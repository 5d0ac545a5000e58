// Package render turns an analysis result into display units, one per
// section, and formats them as terminal text.
package render

import (
	"strings"

	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
)

// Tag identifies a result section.
type Tag string

// Section tags in display order.
const (
	TagBusiness     Tag = "business"
	TagBusinesses   Tag = "businesses"
	TagLinkedIn     Tag = "linkedin"
	TagTechStack    Tag = "techstack"
	TagWebsite      Tag = "website"
	TagIntelligence Tag = "intelligence"
	TagOutreach     Tag = "outreach"
)

// Tags returns every section tag in display order.
func Tags() []Tag {
	return []Tag{
		TagBusiness,
		TagBusinesses,
		TagLinkedIn,
		TagTechStack,
		TagWebsite,
		TagIntelligence,
		TagOutreach,
	}
}

// Title returns the section heading.
func (t Tag) Title() string {
	switch t {
	case TagBusiness:
		return "Business Information"
	case TagBusinesses:
		return "All Businesses Found"
	case TagLinkedIn:
		return "LinkedIn"
	case TagTechStack:
		return "Technology Stack"
	case TagWebsite:
		return "Website Analysis"
	case TagIntelligence:
		return "Business Intelligence"
	case TagOutreach:
		return "Outreach Message"
	default:
		return string(t)
	}
}

// Status says whether a unit has content.
type Status string

// Unit statuses.
const (
	StatusAvailable   Status = "available"
	StatusPlaceholder Status = "placeholder"
	StatusHidden      Status = "hidden"
)

// NotAvailable is the placeholder for an absent section.
const NotAvailable = "Not available"

// Unit is the display form of one section.
type Unit struct {
	Tag         Tag
	Title       string
	Status      Status
	Placeholder string
	Fields      []Field
	Bars        []Bar
	Lists       []List
	Paragraphs  []string
}

// Field is a labelled value.
type Field struct {
	Label string
	Value string
}

// Bar is a score normalised to 0–100.
type Bar struct {
	Label string
	Value int
}

// List is a titled list of items.
type List struct {
	Title string
	Items []string
}

// Context carries per-submission rendering choices.
type Context struct {
	// GenerateOutreach is true when outreach was requested for the
	// submission that produced the result.
	GenerateOutreach bool
}

// ContextFor derives the rendering context from an orchestrator snapshot.
func ContextFor(status domain.AnalysisStatus) Context {
	return Context{GenerateOutreach: status.ShowOutreach}
}

func newUnit(tag Tag) Unit {
	return Unit{Tag: tag, Title: tag.Title(), Status: StatusAvailable}
}

// placeholder returns a placeholder unit, inlining errMsg when set.
func placeholder(tag Tag, errMsg string) Unit {
	u := newUnit(tag)
	u.Status = StatusPlaceholder
	u.Placeholder = NotAvailable
	if errMsg = strings.TrimSpace(errMsg); errMsg != "" {
		u.Placeholder = NotAvailable + ": " + errMsg
	}
	return u
}

func hidden(tag Tag) Unit {
	u := newUnit(tag)
	u.Status = StatusHidden
	return u
}

func (u *Unit) field(label, value string) {
	if value = strings.TrimSpace(value); value != "" {
		u.Fields = append(u.Fields, Field{Label: label, Value: value})
	}
}

func (u *Unit) bar(label string, score *float64, scale domain.ScoreScale) {
	u.Bars = append(u.Bars, Bar{Label: label, Value: domain.NormalizeScore(score, scale)})
}

// optionalBar adds a bar only when the score is present.
func (u *Unit) optionalBar(label string, score *float64, scale domain.ScoreScale) {
	if score != nil {
		u.bar(label, score, scale)
	}
}

func (u *Unit) list(title string, items []string) {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			kept = append(kept, item)
		}
	}
	if len(kept) > 0 {
		u.Lists = append(u.Lists, List{Title: title, Items: kept})
	}
}

func (u *Unit) paragraph(text string) {
	if text = strings.TrimSpace(text); text != "" {
		u.Paragraphs = append(u.Paragraphs, text)
	}
}

func (u *Unit) empty() bool {
	return len(u.Fields) == 0 && len(u.Bars) == 0 && len(u.Lists) == 0 && len(u.Paragraphs) == 0
}
