package generator

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/pyramid-service/internal/domain"
	"github.com/preston-bernstein/pyramid-service/internal/domain/pyramid"
	"github.com/preston-bernstein/pyramid-service/internal/themes"
)

var fixedNow = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

func newTestGenerator(t *testing.T, registry *themes.Registry) *Generator {
	t.Helper()
	return New(registry, WithNow(func() time.Time { return fixedNow }))
}

func seed(v int64) *int64 { return &v }

func TestGenerateIsDeterministic(t *testing.T) {
	for _, key := range []string{themes.KeyEorzea, themes.KeyFarEast, themes.KeyGarlemald} {
		for _, s := range []int64{1, 42, 987654} {
			opts := Options{
				Levels:        []int{4, 6, 8},
				Theme:         key,
				Seed:          seed(s),
				DivisionNames: []string{"Top Flight"},
			}
			// Separate generators so no state can leak between calls.
			first, err := newTestGenerator(t, nil).Generate(opts)
			require.NoError(t, err)
			second, err := newTestGenerator(t, nil).Generate(opts)
			require.NoError(t, err)

			if diff := cmp.Diff(first, second); diff != "" {
				t.Fatalf("theme %s seed %d not deterministic (-first +second):\n%s", key, s, diff)
			}
		}
	}
}

func TestGenerateDifferentSeedsDiffer(t *testing.T) {
	g := newTestGenerator(t, nil)
	a, err := g.Generate(Options{Levels: []int{10, 10}, Theme: themes.KeyEorzea, Seed: seed(1)})
	require.NoError(t, err)
	b, err := g.Generate(Options{Levels: []int{10, 10}, Theme: themes.KeyEorzea, Seed: seed(2)})
	require.NoError(t, err)
	require.NotEqual(t, teamNames(a), teamNames(b))
}

func TestGenerateExampleScenario(t *testing.T) {
	p, err := newTestGenerator(t, nil).Generate(Options{Levels: []int{2, 3}, Theme: themes.KeyEorzea, Seed: seed(42)})
	require.NoError(t, err)

	require.Len(t, p.Divisions, 2)
	require.Equal(t, "Eorzean Premier League", p.Divisions[0].Name)
	require.Equal(t, "Grand Company Championship", p.Divisions[1].Name)
	require.Len(t, p.Divisions[0].Teams, 2)
	require.Len(t, p.Divisions[1].Teams, 3)
	require.Equal(t, "Eorzean Football Pyramid", p.Title)

	theme, err := themes.Default().Get(themes.KeyEorzea)
	require.NoError(t, err)
	for _, d := range p.Divisions {
		require.Equal(t, "EFL L"+string(rune('0'+d.Level)), *d.ShortName)
		for _, tm := range d.Teams {
			require.Contains(t, theme.Locations, tm.Location)
			require.Contains(t, theme.Inspirations, tm.Inspiration)
			require.True(t, strings.HasPrefix(tm.Name, tm.Location+" "), tm.Name)
			rest := strings.TrimPrefix(tm.Name, tm.Location+" ")
			require.True(t, endsWithVocabulary(rest, theme), "unexpected team name %q", tm.Name)
			require.NotNil(t, tm.Notes)
			require.NotContains(t, *tm.Notes, "{")
		}
	}
}

func TestGenerateNamesAreGloballyUnique(t *testing.T) {
	// A large pyramid on a small vocabulary forces collisions across divisions.
	p, report, err := newTestGenerator(t, nil).GenerateReport(Options{
		Levels: []int{40, 40, 40, 40},
		Theme:  themes.KeyGarlemald,
		Seed:   seed(7),
	})
	require.NoError(t, err)
	require.Equal(t, 160, report.Teams)
	require.Positive(t, report.SuffixDraws)

	seen := map[string]bool{}
	for _, name := range teamNames(p) {
		require.False(t, seen[name], "duplicate team name %q", name)
		seen[name] = true
	}
}

func TestGenerateSortInvariants(t *testing.T) {
	p, err := newTestGenerator(t, nil).Generate(Options{Levels: []int{5, 9, 3, 7}, Theme: themes.KeyFarEast, Seed: seed(99)})
	require.NoError(t, err)
	for i, d := range p.Divisions {
		require.Equal(t, i+1, d.Level)
		names := make([]string, 0, len(d.Teams))
		for _, tm := range d.Teams {
			names = append(names, tm.Name)
		}
		require.True(t, slices.IsSorted(names), "division %d not sorted: %v", d.Level, names)
	}
}

func TestDivisionNaming(t *testing.T) {
	theme, err := themes.Default().Get(themes.KeyEorzea)
	require.NoError(t, err)

	require.Equal(t, theme.PremierTitle, DivisionName(theme, 1, nil))
	require.Equal(t, theme.ChampionshipTitle, DivisionName(theme, 2, nil))
	require.Equal(t, "Eorzean City-State Division I", DivisionName(theme, 3, nil))
	require.Equal(t, "Eorzean City-State Division II", DivisionName(theme, 4, nil))
	require.Equal(t, "Custom Two", DivisionName(theme, 2, []string{"Custom One", "Custom Two"}))
	require.Equal(t, "Eorzean City-State Division I", DivisionName(theme, 3, []string{"Custom One", "Custom Two"}))
	require.Equal(t, "EFL L3", ShortName(theme, 3))
}

func TestGenerateAppliesCustomNamesTitleAndDescription(t *testing.T) {
	p, err := newTestGenerator(t, nil).Generate(Options{
		Levels:        []int{1, 1, 1},
		Theme:         "Far-East",
		Seed:          seed(3),
		Title:         pyramid.StringPtr("Doman Cup"),
		Description:   pyramid.StringPtr("Rebels only"),
		DivisionNames: []string{"Doma First"},
	})
	require.NoError(t, err)
	require.Equal(t, "Doman Cup", p.Title)
	require.Equal(t, "Rebels only", p.Description)
	require.Equal(t, "Doma First", p.Divisions[0].Name)
	require.Equal(t, "Hingan Championship", p.Divisions[1].Name)
	require.Equal(t, "Far Eastern Eastern League I", p.Divisions[2].Name)
	require.Equal(t, []string{"Doma First"}, p.Meta[pyramid.MetaCustomDivisionNames])
}

func TestGenerateEmptyTitleUsesDefaults(t *testing.T) {
	p, err := newTestGenerator(t, nil).Generate(Options{
		Levels:      []int{1},
		Theme:       themes.KeyGarlemald,
		Seed:        seed(3),
		Title:       pyramid.StringPtr(""),
		Description: pyramid.StringPtr(""),
	})
	require.NoError(t, err)
	require.Equal(t, "Imperial Football Pyramid", p.Title)
	require.Equal(t, "Reformed Garlean legions and liberated provinces contest the imperial title.", p.Description)
}

func TestGenerateMeta(t *testing.T) {
	levels := []int{2, 2}
	p, err := newTestGenerator(t, nil).Generate(Options{
		Levels:    levels,
		Theme:     "EORZEA",
		Seed:      seed(42),
		ExtraMeta: map[string]any{pyramid.MetaResampledFrom: "old.json", pyramid.MetaGeneratedUsing: "override"},
	})
	require.NoError(t, err)

	want := pyramid.Meta{
		pyramid.MetaTheme:          "eorzea",
		pyramid.MetaSeed:           int64(42),
		pyramid.MetaLevels:         []int{2, 2},
		pyramid.MetaShortPrefix:    "EFL",
		pyramid.MetaGeneratedUsing: "override",
		pyramid.MetaResampledFrom:  "old.json",
	}
	if diff := cmp.Diff(want, p.Meta); diff != "" {
		t.Fatalf("unexpected meta (-want +got):\n%s", diff)
	}
	require.Equal(t, fixedNow, *p.GeneratedAt)

	levels[0] = 99
	require.Equal(t, []int{2, 2}, p.Meta[pyramid.MetaLevels], "meta must not alias the caller's slice")
}

func TestGenerateWithoutSeedRecordsNullSeed(t *testing.T) {
	p, err := newTestGenerator(t, nil).Generate(Options{Levels: []int{3}, Theme: themes.KeyEorzea})
	require.NoError(t, err)
	v, ok := p.Meta[pyramid.MetaSeed]
	require.True(t, ok)
	require.Nil(t, v)
	require.Len(t, p.Divisions[0].Teams, 3)
}

func TestGenerateErrors(t *testing.T) {
	g := newTestGenerator(t, nil)

	_, err := g.Generate(Options{Theme: themes.KeyEorzea})
	require.True(t, domain.IsKind(err, domain.KindInvalidInput))

	_, err = g.Generate(Options{Levels: []int{3, 0}, Theme: themes.KeyEorzea})
	require.True(t, domain.IsKind(err, domain.KindInvalidInput))
	require.Contains(t, err.Error(), "level 2")

	_, err = g.Generate(Options{Levels: []int{-1}, Theme: themes.KeyEorzea})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = g.Generate(Options{Levels: []int{1}, Theme: "nope"})
	require.True(t, domain.IsKind(err, domain.KindNotFound))
	require.Contains(t, err.Error(), "garlemald")
}

func TestGenerateExhaustedVocabularyFallsBackToNumbers(t *testing.T) {
	tiny := themes.Theme{
		Key:                "tiny",
		RegionName:         "Tiny",
		ShortPrefix:        "TNY",
		PremierTitle:       "Tiny League",
		ChampionshipTitle:  "Tiny Cup",
		LowerDivisionTitle: "Tiny Division",
		Locations:          []string{"Here"},
		Mascots:            []string{"Ones"},
		Adjectives:         []string{"Small"},
		Inspirations:       []string{"Nobody"},
		NotesTemplates:     []string{"From {location}."},
	}
	reg, err := themes.NewRegistry(tiny)
	require.NoError(t, err)

	opts := Options{Levels: []int{20, 20}, Theme: "tiny", Seed: seed(5)}
	p, report, err := newTestGenerator(t, reg).GenerateReport(opts)
	require.NoError(t, err)

	// Two bases times (bare + seven suffixes) gives sixteen names before numbers kick in.
	require.Positive(t, report.Fallbacks)
	names := teamNames(p)
	require.Len(t, names, 40)
	seen := map[string]bool{}
	for _, n := range names {
		require.False(t, seen[n], "duplicate %q", n)
		seen[n] = true
	}
	require.Contains(t, names, "Here Ones 2")

	again, err := newTestGenerator(t, reg).Generate(opts)
	require.NoError(t, err)
	require.Equal(t, names, teamNames(again))
}

func teamNames(p pyramid.Pyramid) []string {
	var out []string
	for _, d := range p.Divisions {
		for _, tm := range d.Teams {
			out = append(out, tm.Name)
		}
	}
	return out
}

func endsWithVocabulary(rest string, theme themes.Theme) bool {
	for _, m := range theme.Mascots {
		if rest == m || strings.HasPrefix(rest, m+" ") {
			return true
		}
		for _, a := range theme.Adjectives {
			if rest == a+" "+m || strings.HasPrefix(rest, a+" "+m+" ") {
				return true
			}
		}
	}
	return false
}
