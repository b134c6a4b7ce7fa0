package themes

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Theme is a named vocabulary bundle used to flavour generated pyramids.
type Theme struct {
	Key                string   `yaml:"key"`
	RegionName         string   `yaml:"region_name"`
	ShortPrefix        string   `yaml:"short_prefix"`
	PremierTitle       string   `yaml:"premier_title"`
	ChampionshipTitle  string   `yaml:"championship_title"`
	LowerDivisionTitle string   `yaml:"lower_division_title"`
	Highlight          string   `yaml:"highlight"`
	Locations          []string `yaml:"locations"`
	Mascots            []string `yaml:"mascots"`
	Adjectives         []string `yaml:"adjectives"`
	Inspirations       []string `yaml:"inspirations"`
	NotesTemplates     []string `yaml:"notes_templates"`
}

// Placeholders recognised inside note templates.
const (
	PlaceholderInspiration = "{inspiration}"
	PlaceholderLocation    = "{location}"
)

var folder = cases.Fold()

// NormalizeKey case-folds a theme key and treats hyphens as underscores.
func NormalizeKey(key string) string {
	k := folder.String(strings.TrimSpace(key))
	return strings.ReplaceAll(k, "-", "_")
}

// RenderNote substitutes the placeholders of a note template.
func RenderNote(template, inspiration, location string) string {
	r := strings.NewReplacer(
		PlaceholderInspiration, inspiration,
		PlaceholderLocation, location,
	)
	return r.Replace(template)
}

// Validate reports the first structural problem with the theme.
func (t Theme) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"key", t.Key},
		{"region_name", t.RegionName},
		{"short_prefix", t.ShortPrefix},
		{"premier_title", t.PremierTitle},
		{"championship_title", t.ChampionshipTitle},
		{"lower_division_title", t.LowerDivisionTitle},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("field %s is required", r.field)
		}
	}

	lists := []struct {
		field string
		items []string
	}{
		{"locations", t.Locations},
		{"mascots", t.Mascots},
		{"adjectives", t.Adjectives},
		{"inspirations", t.Inspirations},
		{"notes_templates", t.NotesTemplates},
	}
	for _, l := range lists {
		if len(l.items) == 0 {
			return fmt.Errorf("field %s must not be empty", l.field)
		}
	}
	return nil
}

func (t Theme) clone() Theme {
	out := t
	out.Locations = cloneStrings(t.Locations)
	out.Mascots = cloneStrings(t.Mascots)
	out.Adjectives = cloneStrings(t.Adjectives)
	out.Inspirations = cloneStrings(t.Inspirations)
	out.NotesTemplates = cloneStrings(t.NotesTemplates)
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
