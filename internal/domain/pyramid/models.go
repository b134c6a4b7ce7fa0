package pyramid

import (
	"sort"
	"time"
)

// Well-known meta keys written by the generator and read back by resample.
const (
	MetaTheme               = "theme"
	MetaSeed                = "seed"
	MetaLevels              = "levels"
	MetaShortPrefix         = "short_prefix"
	MetaGeneratedUsing      = "generated_using"
	MetaCustomDivisionNames = "custom_division_names"
	MetaResampledFrom       = "resampled_from"
)

// Team is a single club placed in a division.
type Team struct {
	Name        string
	Location    string
	Inspiration string
	Notes       *string
}

// Division is one tier of the pyramid; level 1 is the top flight.
type Division struct {
	Level     int
	Name      string
	ShortName *string
	Teams     []Team
}

// Meta holds open-schema generation parameters.
type Meta map[string]any

// Pyramid is the full league structure.
type Pyramid struct {
	Title       string
	Description string
	Divisions   []Division
	Meta        Meta
	GeneratedAt *time.Time
}

// Sort orders divisions by level and each division's teams by name.
// Stable so that equal keys keep their construction order.
func (p *Pyramid) Sort() {
	sort.SliceStable(p.Divisions, func(i, j int) bool {
		return p.Divisions[i].Level < p.Divisions[j].Level
	})
	for i := range p.Divisions {
		teams := p.Divisions[i].Teams
		sort.SliceStable(teams, func(a, b int) bool {
			return teams[a].Name < teams[b].Name
		})
	}
}

// TeamCount returns the number of teams across all divisions.
func (p Pyramid) TeamCount() int {
	n := 0
	for _, d := range p.Divisions {
		n += len(d.Teams)
	}
	return n
}

// Division returns the division at the given level.
func (p Pyramid) Division(level int) (Division, bool) {
	for _, d := range p.Divisions {
		if d.Level == level {
			return d, true
		}
	}
	return Division{}, false
}

// Clone returns a shallow copy of the meta map; nil stays nil.
func (m Meta) Clone() Meta {
	if m == nil {
		return nil
	}
	out := make(Meta, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// String returns a string-valued meta entry.
func (m Meta) String(key string) (string, bool) {
	v, ok := m[key].(string)
	return v, ok && v != ""
}

// StringPtr is a small helper for optional string fields.
func StringPtr(s string) *string {
	return &s
}

// Summary describes a stored pyramid without its divisions.
type Summary struct {
	ID      string
	Title   string
	Theme   string
	Teams   int
	SavedAt time.Time
}

// Summarize builds the listing entry for a stored pyramid.
func Summarize(id string, p Pyramid, savedAt time.Time) Summary {
	theme, _ := p.Meta.String(MetaTheme)
	return Summary{
		ID:      id,
		Title:   p.Title,
		Theme:   theme,
		Teams:   p.TeamCount(),
		SavedAt: savedAt,
	}
}

// Clone returns a deep copy of the divisions and teams; meta is copied one level deep.
func (p Pyramid) Clone() Pyramid {
	out := p
	out.Meta = p.Meta.Clone()
	if p.GeneratedAt != nil {
		at := *p.GeneratedAt
		out.GeneratedAt = &at
	}
	if p.Divisions != nil {
		out.Divisions = make([]Division, len(p.Divisions))
		for i, d := range p.Divisions {
			d.ShortName = clonePtr(d.ShortName)
			if d.Teams != nil {
				teams := make([]Team, len(d.Teams))
				for j, t := range d.Teams {
					t.Notes = clonePtr(t.Notes)
					teams[j] = t
				}
				d.Teams = teams
			}
			out.Divisions[i] = d
		}
	}
	return out
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
