package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/presseportal/presseportal"
)

// DefaultCacheSize is the number of compiled programs kept by NewCompiler
const DefaultCacheSize = 100

// StoryFilter is a compiled filter expression
type StoryFilter struct {
	program *vm.Program
	expr    string
}

// Compiler compiles filter expressions, caching compiled programs
type Compiler struct {
	cache *lruCache[*vm.Program]
}

// NewCompiler creates a compiler caching up to cacheSize programs
func NewCompiler(cacheSize int) *Compiler {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	return &Compiler{cache: newLRUCache[*vm.Program](cacheSize)}
}

// Compile parses and type checks expression. The result must be boolean.
func (c *Compiler) Compile(expression string) (*StoryFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{Expression: expression, Err: fmt.Errorf("empty expression")}
	}

	if program, ok := c.cache.Get(expression); ok {
		return &StoryFilter{program: program, expr: expression}, nil
	}

	program, err := expr.Compile(expression,
		expr.Env(storyEnv(&presseportal.Story{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{Expression: expression, Err: err}
	}

	c.cache.Put(expression, program)
	return &StoryFilter{program: program, expr: expression}, nil
}

// CacheSize returns the number of cached programs
func (c *Compiler) CacheSize() int {
	return c.cache.Len()
}

// Evaluate checks if a story matches the filter
func (f *StoryFilter) Evaluate(story *presseportal.Story) (bool, error) {
	result, err := expr.Run(f.program, storyEnv(story))
	if err != nil {
		return false, &EvaluationError{Expression: f.expr, StoryID: story.ID, Err: err}
	}

	matched, ok := result.(bool)
	if !ok {
		return false, &EvaluationError{Expression: f.expr, StoryID: story.ID, Err: fmt.Errorf("result %T is not a bool", result)}
	}
	return matched, nil
}

// Apply returns the stories matching the filter, keeping their order
func (f *StoryFilter) Apply(stories []presseportal.Story) ([]presseportal.Story, error) {
	matches := make([]presseportal.Story, 0, len(stories))
	for i := range stories {
		ok, err := f.Evaluate(&stories[i])
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, stories[i])
		}
	}
	return matches, nil
}

// String returns the expression text
func (f *StoryFilter) String() string {
	return f.expr
}

// storyEnv exposes story fields and helper functions to expressions
func storyEnv(story *presseportal.Story) map[string]any {
	owner, ownerType := story.Owner()
	var ownerID, ownerName string
	if owner != nil {
		ownerID, ownerName = owner.ID, owner.Name
	} else {
		ownerType = ""
	}

	media := make([]string, 0, 4)
	for _, t := range story.Media.Types() {
		media = append(media, string(t))
	}

	return map[string]any{
		"Story":     *story,
		"ID":        story.ID,
		"URL":       story.URL,
		"Title":     story.Title,
		"Short":     story.Short,
		"Text":      story.Text(),
		"Teaser":    story.Teaser != nil,
		"Language":  deref(story.Language),
		"Ressort":   deref(story.Ressort),
		"Keywords":  story.Keywords,
		"Published": story.Published,
		"OwnerID":   ownerID,
		"OwnerName": ownerName,
		"OwnerType": string(ownerType),
		"Media":     media,

		// Story helpers
		"hasKeyword": story.HasKeyword,
		"hasMedia": func(kind string) bool {
			return story.Media.Get(presseportal.MediaType(strings.ToLower(kind))) != nil
		},
		"isCompany": func() bool {
			return ownerType == presseportal.EntityCompany
		},
		"isOffice": func() bool {
			return ownerType == presseportal.EntityOffice
		},

		// Date helpers
		"hoursSince": func(t time.Time) int {
			return int(time.Since(t).Hours())
		},
		"daysSince": func(t time.Time) int {
			return int(time.Since(t).Hours() / 24)
		},
		"hoursAgo": func(hours int) time.Time {
			return time.Now().Add(-time.Duration(hours) * time.Hour)
		},
		"daysAgo": func(days int) time.Time {
			return time.Now().AddDate(0, 0, -days)
		},
		"parseDate": func(dateStr string) time.Time {
			t, _ := time.Parse("2006-01-02", dateStr)
			return t
		},

		// Text helpers, case-insensitive
		"mentions": func(substr string) bool {
			substr = strings.ToLower(substr)
			for _, field := range []string{story.Title, story.Short, story.Text()} {
				if strings.Contains(strings.ToLower(field), substr) {
					return true
				}
			}
			return false
		},
		"hasPrefix": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
