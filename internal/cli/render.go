package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/preston-bernstein/pyramid-service/internal/domain/pyramid"
)

// generatedAtLayout matches the naive ISO form shown next to the literal "UTC".
const generatedAtLayout = "2006-01-02T15:04:05.999999"

// renderer styles headers for terminals; lipgloss drops styling when out is not a TTY.
type renderer struct {
	out    io.Writer
	title  lipgloss.Style
	header lipgloss.Style
	faint  lipgloss.Style
}

func newRenderer(out io.Writer) *renderer {
	r := lipgloss.NewRenderer(out)
	return &renderer{
		out:    out,
		title:  r.NewStyle().Bold(true),
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		faint:  r.NewStyle().Faint(true),
	}
}

func (r *renderer) pyramid(p pyramid.Pyramid, showTeams bool) {
	fmt.Fprintln(r.out, r.title.Render(p.Title))
	if p.Description != "" {
		fmt.Fprintln(r.out, p.Description)
	}
	if lines := metaLines(p.Meta); len(lines) > 0 {
		fmt.Fprintln(r.out, "Meta:")
		for _, l := range lines {
			fmt.Fprintln(r.out, "  "+l)
		}
	}
	if p.GeneratedAt != nil {
		fmt.Fprintln(r.out, r.faint.Render("Generated at: "+p.GeneratedAt.UTC().Format(generatedAtLayout)+" UTC"))
	}
	fmt.Fprintln(r.out)

	for _, d := range p.Divisions {
		header := fmt.Sprintf("Level %d: %s", d.Level, d.Name)
		if d.ShortName != nil && *d.ShortName != "" {
			header += fmt.Sprintf(" (%s)", *d.ShortName)
		}
		fmt.Fprintln(r.out, r.header.Render(header))
		if showTeams {
			for i, t := range d.Teams {
				fmt.Fprintln(r.out, "  "+teamLine(i+1, t))
			}
		}
		fmt.Fprintln(r.out)
	}
}

func teamLine(index int, t pyramid.Team) string {
	return fmt.Sprintf("%2d. %s — %s (%s)", index, t.Name, t.Location, t.Inspiration)
}

// metaLines picks the human-relevant meta entries, skipping absent or null ones.
func metaLines(m pyramid.Meta) []string {
	var lines []string
	if theme, ok := m.String(pyramid.MetaTheme); ok {
		lines = append(lines, "Theme: "+theme)
	}
	if levels, ok, err := m.Ints(pyramid.MetaLevels); ok && err == nil {
		parts := make([]string, len(levels))
		for i, n := range levels {
			parts[i] = strconv.Itoa(n)
		}
		lines = append(lines, "Levels: ["+strings.Join(parts, ", ")+"]")
	} else if ok {
		lines = append(lines, fmt.Sprintf("Levels: %v", m[pyramid.MetaLevels]))
	}
	if seed, ok, err := m.Int(pyramid.MetaSeed); ok && err == nil {
		lines = append(lines, "Seed: "+strconv.FormatInt(seed, 10))
	} else if ok {
		lines = append(lines, fmt.Sprintf("Seed: %v", m[pyramid.MetaSeed]))
	}
	return lines
}
