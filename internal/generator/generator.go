package generator

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/preston-bernstein/pyramid-service/internal/domain"
	"github.com/preston-bernstein/pyramid-service/internal/domain/pyramid"
	"github.com/preston-bernstein/pyramid-service/internal/themes"
)

// Provenance is stamped into meta under generated_using.
const Provenance = "ffxiv_pyramid"

// twoWordOdds is the probability of "{location} {mascot}" over the three-word form.
const twoWordOdds = 0.55

// maxSuffixDraws bounds suffix retries for a colliding name before the numeric fallback.
const maxSuffixDraws = 64

var teamSuffixes = []string{"FC", "United", "Wanderers", "Rovers", "Dynasts", "Guard", "Club"}

// Options describes a single generation request.
type Options struct {
	Levels        []int
	Theme         string
	Seed          *int64
	Title         *string
	Description   *string
	DivisionNames []string
	ExtraMeta     map[string]any
}

// Report summarises the random work done for one pyramid.
type Report struct {
	Teams       int
	SuffixDraws int
	Fallbacks   int
}

// Generator builds pyramids from a theme registry.
type Generator struct {
	themes *themes.Registry
	now    func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithNow overrides the clock used for generated_at; useful for tests.
func WithNow(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New constructs a Generator. A nil registry falls back to the builtin themes.
func New(registry *themes.Registry, opts ...Option) *Generator {
	if registry == nil {
		registry = themes.Default()
	}
	g := &Generator{themes: registry, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Themes exposes the registry the generator draws from.
func (g *Generator) Themes() *themes.Registry {
	return g.themes
}

// Generate builds a pyramid. Output is a pure function of the options apart from generated_at.
func (g *Generator) Generate(opts Options) (pyramid.Pyramid, error) {
	p, _, err := g.GenerateReport(opts)
	return p, err
}

// GenerateReport is Generate plus a summary of the draws it made.
func (g *Generator) GenerateReport(opts Options) (pyramid.Pyramid, Report, error) {
	if err := ValidateLevels(opts.Levels); err != nil {
		return pyramid.Pyramid{}, Report{}, err
	}
	theme, err := g.themes.Get(opts.Theme)
	if err != nil {
		return pyramid.Pyramid{}, Report{}, err
	}

	b := &builder{
		theme: theme,
		rng:   newStream(opts.Seed),
		used:  make(map[string]struct{}),
	}

	divisions := make([]pyramid.Division, 0, len(opts.Levels))
	for i, count := range opts.Levels {
		level := i + 1
		divisions = append(divisions, b.division(level, count, opts.DivisionNames))
	}

	title := fmt.Sprintf("%s Football Pyramid", theme.RegionName)
	if opts.Title != nil && *opts.Title != "" {
		title = *opts.Title
	}
	description := theme.Highlight
	if opts.Description != nil && *opts.Description != "" {
		description = *opts.Description
	}

	generatedAt := g.now().UTC()
	p := pyramid.Pyramid{
		Title:       title,
		Description: description,
		Divisions:   divisions,
		Meta:        buildMeta(theme, opts),
		GeneratedAt: &generatedAt,
	}
	p.Sort()

	return p, b.report, nil
}

// ValidateLevels rejects empty or non-positive level sizes.
func ValidateLevels(levels []int) error {
	if len(levels) == 0 {
		return domain.Errorf("generator.generate", domain.KindInvalidInput,
			"at least one level size is required to generate a pyramid")
	}
	for i, n := range levels {
		if n <= 0 {
			return domain.Errorf("generator.generate", domain.KindInvalidInput,
				"level %d size must be positive, got %d", i+1, n)
		}
	}
	return nil
}

// DivisionName names a level: custom name first, then the theme's tier titles.
func DivisionName(theme themes.Theme, level int, custom []string) string {
	if level >= 1 && len(custom) >= level {
		return custom[level-1]
	}
	switch level {
	case 1:
		return theme.PremierTitle
	case 2:
		return theme.ChampionshipTitle
	default:
		return fmt.Sprintf("%s %s %s", theme.RegionName, theme.LowerDivisionTitle, Roman(level-2))
	}
}

// ShortName abbreviates a level using the theme prefix.
func ShortName(theme themes.Theme, level int) string {
	return fmt.Sprintf("%s L%d", theme.ShortPrefix, level)
}

func newStream(seed *int64) *rand.Rand {
	var s uint64
	if seed != nil {
		s = uint64(*seed)
	} else {
		s = rand.Uint64()
	}
	return rand.New(rand.NewPCG(s, s))
}

func buildMeta(theme themes.Theme, opts Options) pyramid.Meta {
	levels := make([]int, len(opts.Levels))
	copy(levels, opts.Levels)

	var seed any
	if opts.Seed != nil {
		seed = *opts.Seed
	}

	meta := pyramid.Meta{
		pyramid.MetaTheme:          theme.Key,
		pyramid.MetaSeed:           seed,
		pyramid.MetaLevels:         levels,
		pyramid.MetaShortPrefix:    theme.ShortPrefix,
		pyramid.MetaGeneratedUsing: Provenance,
	}
	if len(opts.DivisionNames) > 0 {
		names := make([]string, len(opts.DivisionNames))
		copy(names, opts.DivisionNames)
		meta[pyramid.MetaCustomDivisionNames] = names
	}
	for k, v := range opts.ExtraMeta {
		meta[k] = v
	}
	return meta
}

// builder carries the single random stream and used-name set across all divisions.
type builder struct {
	theme  themes.Theme
	rng    *rand.Rand
	used   map[string]struct{}
	report Report
}

func (b *builder) division(level, count int, custom []string) pyramid.Division {
	short := ShortName(b.theme, level)
	teams := make([]pyramid.Team, 0, count)
	for range count {
		teams = append(teams, b.team())
	}
	return pyramid.Division{
		Level:     level,
		Name:      DivisionName(b.theme, level, custom),
		ShortName: &short,
		Teams:     teams,
	}
}

func (b *builder) team() pyramid.Team {
	location := pick(b.rng, b.theme.Locations)
	mascot := pick(b.rng, b.theme.Mascots)
	adjective := pick(b.rng, b.theme.Adjectives)

	base := location + " " + adjective + " " + mascot
	if b.rng.Float64() < twoWordOdds {
		base = location + " " + mascot
	}

	name := b.uniqueName(base)
	b.used[name] = struct{}{}
	b.report.Teams++

	inspiration := pick(b.rng, b.theme.Inspirations)
	template := pick(b.rng, b.theme.NotesTemplates)
	notes := themes.RenderNote(template, inspiration, location)

	return pyramid.Team{
		Name:        name,
		Location:    location,
		Inspiration: inspiration,
		Notes:       &notes,
	}
}

func (b *builder) uniqueName(base string) string {
	name := base
	for attempt := 0; b.taken(name); attempt++ {
		if attempt == maxSuffixDraws {
			b.report.Fallbacks++
			for n := 2; ; n++ {
				name = base + " " + strconv.Itoa(n)
				if !b.taken(name) {
					return name
				}
			}
		}
		name = base + " " + pick(b.rng, teamSuffixes)
		b.report.SuffixDraws++
	}
	return name
}

func (b *builder) taken(name string) bool {
	_, ok := b.used[name]
	return ok
}

func pick(rng *rand.Rand, items []string) string {
	return items[rng.IntN(len(items))]
}
