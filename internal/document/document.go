package document

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/preston-bernstein/pyramid-service/internal/domain"
	"github.com/preston-bernstein/pyramid-service/internal/domain/pyramid"
	"github.com/preston-bernstein/pyramid-service/internal/timeutil"
)

// DefaultTitle replaces a missing document title.
const DefaultTitle = "Unnamed Pyramid"

// Document is the JSON wire shape of a pyramid.
type Document struct {
	Title       *string            `json:"title"`
	Description string             `json:"description"`
	GeneratedAt *string            `json:"generated_at"`
	Meta        map[string]any     `json:"meta"`
	Divisions   []DivisionDocument `json:"divisions"`
}

// DivisionDocument is the wire shape of a division.
type DivisionDocument struct {
	Level     json.Number    `json:"level"`
	Name      *string        `json:"name"`
	ShortName *string        `json:"short_name"`
	Teams     []TeamDocument `json:"teams"`
}

// TeamDocument is the wire shape of a team.
type TeamDocument struct {
	Name        *string `json:"name"`
	Location    string  `json:"location"`
	Inspiration string  `json:"inspiration"`
	Notes       *string `json:"notes"`
}

// ToDocument maps a pyramid onto its wire shape without losing any field.
func ToDocument(p pyramid.Pyramid) Document {
	title := p.Title
	doc := Document{
		Title:       &title,
		Description: p.Description,
		Meta:        map[string]any(p.Meta.Clone()),
		Divisions:   make([]DivisionDocument, 0, len(p.Divisions)),
	}
	if doc.Meta == nil {
		doc.Meta = map[string]any{}
	}
	if p.GeneratedAt != nil {
		ts := timeutil.FormatTimestamp(*p.GeneratedAt)
		doc.GeneratedAt = &ts
	}

	for _, d := range p.Divisions {
		name := d.Name
		dd := DivisionDocument{
			Level:     json.Number(strconv.Itoa(d.Level)),
			Name:      &name,
			ShortName: copyString(d.ShortName),
			Teams:     make([]TeamDocument, 0, len(d.Teams)),
		}
		for _, t := range d.Teams {
			teamName := t.Name
			dd.Teams = append(dd.Teams, TeamDocument{
				Name:        &teamName,
				Location:    t.Location,
				Inspiration: t.Inspiration,
				Notes:       copyString(t.Notes),
			})
		}
		doc.Divisions = append(doc.Divisions, dd)
	}
	return doc
}

// FromDocument rebuilds a pyramid, applying defaults for missing optional fields and
// re-establishing the sort invariants.
func FromDocument(doc Document) (pyramid.Pyramid, error) {
	p := pyramid.Pyramid{
		Title:       DefaultTitle,
		Description: doc.Description,
		Meta:        pyramid.Meta(doc.Meta).Clone(),
		Divisions:   make([]pyramid.Division, 0, len(doc.Divisions)),
	}
	if doc.Title != nil {
		p.Title = *doc.Title
	}
	if p.Meta == nil {
		p.Meta = pyramid.Meta{}
	}
	if doc.GeneratedAt != nil && *doc.GeneratedAt != "" {
		ts, err := timeutil.ParseTimestamp(*doc.GeneratedAt)
		if err != nil {
			return pyramid.Pyramid{}, malformed("generated_at", err)
		}
		p.GeneratedAt = &ts
	}

	levels := make(map[int]struct{}, len(doc.Divisions))
	for i, dd := range doc.Divisions {
		field := fmt.Sprintf("divisions[%d]", i)
		level, err := coerceLevel(dd.Level)
		if err != nil {
			return pyramid.Pyramid{}, malformed(field+".level", err)
		}
		if _, dup := levels[level]; dup {
			return pyramid.Pyramid{}, malformed(field+".level", fmt.Errorf("duplicate level %d", level))
		}
		levels[level] = struct{}{}
		if dd.Name == nil {
			return pyramid.Pyramid{}, malformed(field+".name", fmt.Errorf("division name is required"))
		}

		d := pyramid.Division{
			Level:     level,
			Name:      *dd.Name,
			ShortName: copyString(dd.ShortName),
			Teams:     make([]pyramid.Team, 0, len(dd.Teams)),
		}
		for j, td := range dd.Teams {
			if td.Name == nil {
				return pyramid.Pyramid{}, malformed(fmt.Sprintf("%s.teams[%d].name", field, j), fmt.Errorf("team name is required"))
			}
			d.Teams = append(d.Teams, pyramid.Team{
				Name:        *td.Name,
				Location:    td.Location,
				Inspiration: td.Inspiration,
				Notes:       copyString(td.Notes),
			})
		}
		p.Divisions = append(p.Divisions, d)
	}

	p.Sort()
	return p, nil
}

func coerceLevel(n json.Number) (int, error) {
	if n == "" {
		return 0, fmt.Errorf("level is required")
	}
	level, err := n.Int64()
	if err != nil {
		f, ferr := n.Float64()
		if ferr != nil || math.IsInf(f, 0) || f != math.Trunc(f) {
			return 0, fmt.Errorf("level %q is not an integer", n.String())
		}
		level = int64(f)
	}
	if level < 1 || level > math.MaxInt32 {
		return 0, fmt.Errorf("level %d must be a positive integer", level)
	}
	return int(level), nil
}

func malformed(field string, err error) error {
	return &domain.Error{
		Op:   "document.decode",
		Kind: domain.KindMalformedDocument,
		Msg:  "invalid pyramid document: field " + field,
		Err:  err,
	}
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
