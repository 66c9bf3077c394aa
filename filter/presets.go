package filter

import (
	"fmt"
	"maps"
	"slices"
)

// Presets holds named filters loaded from configuration
type Presets struct {
	compiler *Compiler
	filters  map[string]*StoryFilter
}

// NewPresets compiles all definitions. Nothing is registered if any of them fails.
func NewPresets(compiler *Compiler, definitions map[string]string) (*Presets, error) {
	compiled := make(map[string]*StoryFilter, len(definitions))
	for name, expression := range definitions {
		f, err := compiler.Compile(expression)
		if err != nil {
			return nil, fmt.Errorf("failed to compile preset '%s': %w", name, err)
		}
		compiled[name] = f
	}

	return &Presets{compiler: compiler, filters: compiled}, nil
}

// Get returns a preset by name
func (p *Presets) Get(name string) (*StoryFilter, bool) {
	f, ok := p.filters[name]
	return f, ok
}

// Names returns all preset names, sorted
func (p *Presets) Names() []string {
	return slices.Sorted(maps.Keys(p.filters))
}

// Resolve picks the filter to apply: an explicit expression wins over a preset
// name, which wins over the default expression. It returns nil when none is set.
func (p *Presets) Resolve(expression, preset, defaultExpression string) (*StoryFilter, error) {
	switch {
	case expression != "":
		return p.compiler.Compile(expression)
	case preset != "":
		f, ok := p.Get(preset)
		if !ok {
			return nil, fmt.Errorf("preset '%s' not found in config", preset)
		}
		return f, nil
	case defaultExpression != "":
		return p.compiler.Compile(defaultExpression)
	default:
		return nil, nil
	}
}
