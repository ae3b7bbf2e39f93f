package platforms

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Registry is a read-only lookup over the platform catalog.
type Registry struct {
	platforms []Platform
	byID      map[string]Platform
}

func NewRegistry() *Registry {
	return newRegistry(catalog)
}

func newRegistry(entries []Platform) *Registry {
	return &Registry{
		platforms: entries,
		byID:      lo.KeyBy(entries, func(p Platform) string { return p.ID }),
	}
}

// List returns every platform in catalog order.
func (r *Registry) List() []Platform {
	return lo.Map(r.platforms, func(p Platform, _ int) Platform { return p.clone() })
}

// IDs returns the platform ids in catalog order.
func (r *Registry) IDs() []string {
	return lo.Map(r.platforms, func(p Platform, _ int) string { return p.ID })
}

// Get looks a platform up by id.
func (r *Registry) Get(id string) (Platform, error) {
	p, ok := r.byID[id]
	if !ok {
		return Platform{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	return p.clone(), nil
}

// Supports reports whether the platform accepts the project format.
func (r *Registry) Supports(id string, format Format) bool {
	p, ok := r.byID[id]
	if !ok {
		return false
	}

	return slices.Contains(p.SupportedFormats, format)
}

// Recommend returns the platforms suited for a project type. Unknown types get
// the general-purpose default pair.
func (r *Registry) Recommend(projectType string) []Platform {
	ids, ok := recommendations[strings.ToLower(strings.TrimSpace(projectType))]
	if !ok {
		ids = defaultRecommendations
	}

	return lo.FilterMap(ids, func(id string, _ int) (Platform, bool) {
		p, found := r.byID[id]
		return p.clone(), found
	})
}

// clone copies the slice fields so callers cannot mutate catalog entries.
func (p Platform) clone() Platform {
	p.SupportedFormats = slices.Clone(p.SupportedFormats)
	p.Features = slices.Clone(p.Features)
	p.Credentials = slices.Clone(p.Credentials)

	return p
}
