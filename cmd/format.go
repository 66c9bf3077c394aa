package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/s0up4200/presseportal/presseportal"
)

// FormatOptions controls the console output
type FormatOptions struct {
	ShowDetails bool
}

// ConsoleFormatter renders stories and entities as a tree
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatStories formats a list of stories for console display
func (f *ConsoleFormatter) FormatStories(stories []presseportal.Story, options FormatOptions) string {
	if len(stories) == 0 {
		return "No stories found"
	}

	var sb strings.Builder

	sb.WriteString("\nStor")
	if len(stories) != 1 {
		sb.WriteString("ies")
	} else {
		sb.WriteString("y")
	}
	fmt.Fprintf(&sb, " (%d):\n\n", len(stories))

	for i, story := range stories {
		isLast := i == len(stories)-1
		f.formatStory(&sb, &story, isLast, options)

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

func (f *ConsoleFormatter) formatStory(sb *strings.Builder, story *presseportal.Story, isLast bool, options FormatOptions) {
	prefix := "├"
	indent := "│   "
	if isLast {
		prefix = "╰"
		indent = "    "
	}

	fmt.Fprintf(sb, "%s── %s\n", prefix, story.Title)

	owner, ownerType := story.Owner()
	published := story.Published.Format("2006-01-02 15:04")
	if owner != nil {
		fmt.Fprintf(sb, "%s%s | %s (%s)\n", indent, published, owner.Name, ownerType)
	} else {
		fmt.Fprintf(sb, "%s%s\n", indent, published)
	}

	fmt.Fprintf(sb, "%s%s\n", indent, story.URL)

	if !options.ShowDetails {
		return
	}

	if story.Short != "" {
		fmt.Fprintf(sb, "%s%s\n", indent, story.Short)
	}
	if len(story.Keywords) > 0 {
		fmt.Fprintf(sb, "%sKeywords: %s\n", indent, strings.Join(story.Keywords, ", "))
	}
	if story.Ressort != nil {
		fmt.Fprintf(sb, "%sRessort: %s\n", indent, *story.Ressort)
	}

	var mediaParts []string
	for _, t := range story.Media.Types() {
		mediaParts = append(mediaParts, fmt.Sprintf("%s: %d", t, len(story.Media.Get(t))))
	}
	if len(mediaParts) > 0 {
		fmt.Fprintf(sb, "%sMedia: %s\n", indent, strings.Join(mediaParts, " | "))
	}
}

// FormatEntities formats search results for console display
func (f *ConsoleFormatter) FormatEntities(entities []presseportal.Entity) string {
	if len(entities) == 0 {
		return "No entities found"
	}

	var sb strings.Builder

	sb.WriteString("\nResult")
	if len(entities) != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(&sb, " (%d):\n\n", len(entities))

	for i, entity := range entities {
		prefix := "├"
		if i == len(entities)-1 {
			prefix = "╰"
		}
		fmt.Fprintf(&sb, "%s── %s [%s %s]\n", prefix, entity.Name, entity.Type, entity.ID)
	}

	sb.WriteString("\n")
	return sb.String()
}

// writeResult prints v as JSON or through the console formatter
func writeResult(w io.Writer, format string, options FormatOptions, v any) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	f := NewConsoleFormatter()
	var out string
	switch v := v.(type) {
	case []presseportal.Story:
		out = f.FormatStories(v, options)
	case []presseportal.Entity:
		out = f.FormatEntities(v)
	case []presseportal.RegionStories:
		var sb strings.Builder
		for _, rs := range v {
			fmt.Fprintf(&sb, "\n[%s]", strings.ToUpper(rs.Region))
			sb.WriteString(f.FormatStories(rs.Stories, options))
		}
		out = sb.String()
	default:
		return fmt.Errorf("unsupported result type %T", v)
	}

	_, err := fmt.Fprintln(w, out)
	return err
}
