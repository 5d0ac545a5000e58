package render

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
	"github.com/custodia-labs/bizlens-cli/internal/logger"
)

// RendererFunc renders one section of a result. It must not assume any
// section or nested field is present.
type RendererFunc func(result *domain.AnalysisResult, ctx Context) Unit

// Registry maps every section tag to its renderer.
type Registry struct {
	renderers map[Tag]RendererFunc
}

// NewRegistry creates a registry with the built-in renderers.
func NewRegistry() *Registry {
	r := &Registry{renderers: make(map[Tag]RendererFunc)}
	r.registerBuiltinRenderers()
	return r
}

func (r *Registry) registerBuiltinRenderers() {
	r.renderers[TagBusiness] = renderBusiness
	r.renderers[TagBusinesses] = renderBusinesses
	r.renderers[TagLinkedIn] = renderLinkedIn
	r.renderers[TagTechStack] = renderTechStack
	r.renderers[TagWebsite] = renderWebsite
	r.renderers[TagIntelligence] = renderIntelligence
	r.renderers[TagOutreach] = renderOutreach
}

// Register replaces the renderer for a known tag.
func (r *Registry) Register(tag Tag, fn RendererFunc) error {
	if !isTag(tag) {
		return fmt.Errorf("register renderer %q: %w: unknown section", tag, domain.ErrInvalidInput)
	}
	if fn == nil {
		return fmt.Errorf("register renderer %q: %w: nil renderer", tag, domain.ErrInvalidInput)
	}
	r.renderers[tag] = fn
	return nil
}

// Validate checks that every tag has a renderer.
func (r *Registry) Validate() error {
	var missing []string
	for _, tag := range Tags() {
		if r.renderers[tag] == nil {
			missing = append(missing, string(tag))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("renderer registry: missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// Render produces one unit per tag in display order. A nil result renders
// every section as absent. A renderer that panics yields a placeholder.
func (r *Registry) Render(result *domain.AnalysisResult, ctx Context) []Unit {
	if result == nil {
		result = &domain.AnalysisResult{}
	}

	units := make([]Unit, 0, len(Tags()))
	for _, tag := range Tags() {
		units = append(units, r.renderOne(tag, result, ctx))
	}
	return units
}

func (r *Registry) renderOne(tag Tag, result *domain.AnalysisResult, ctx Context) (u Unit) {
	fn := r.renderers[tag]
	if fn == nil {
		return placeholder(tag, "")
	}

	defer func() {
		if rec := recover(); rec != nil {
			logger.Warn("render %s: recovered from panic: %v", tag, rec)
			u = placeholder(tag, "")
		}
	}()

	u = fn(result, ctx)
	u.Tag = tag
	if u.Title == "" {
		u.Title = tag.Title()
	}
	return u
}

func isTag(tag Tag) bool {
	for _, t := range Tags() {
		if t == tag {
			return true
		}
	}
	return false
}
