package testutil

import (
	"testing"
	"time"

	"github.com/preston-bernstein/pyramid-service/internal/domain/pyramid"
	"github.com/preston-bernstein/pyramid-service/internal/generator"
)

// FixedTime is the generated_at used by GeneratedPyramid.
var FixedTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// SamplePyramid returns a small hand-built pyramid with the given title.
func SamplePyramid(title string) pyramid.Pyramid {
	return pyramid.Pyramid{
		Title:       title,
		Description: "sample",
		Meta: pyramid.Meta{
			pyramid.MetaTheme:  "eorzea",
			pyramid.MetaSeed:   int64(1),
			pyramid.MetaLevels: []int{2, 1},
		},
		Divisions: []pyramid.Division{
			{
				Level:     1,
				Name:      "Eorzean Grand League",
				ShortName: pyramid.StringPtr("EFL L1"),
				Teams: []pyramid.Team{
					{Name: "Gridania Chocobos", Location: "Gridania", Inspiration: "Padjal"},
					{Name: "Limsa Lominsa Krakens", Location: "Limsa Lominsa", Inspiration: "Maelstrom"},
				},
			},
			{
				Level: 2,
				Name:  "Eorzean Championship",
				Teams: []pyramid.Team{
					{Name: "Ul'dah Coeurls", Location: "Ul'dah", Inspiration: "Brass Blades", Notes: pyramid.StringPtr("note")},
				},
			},
		},
	}
}

// GeneratedPyramid runs the builtin generator with a fixed clock.
func GeneratedPyramid(t *testing.T, theme string, seed int64, levels ...int) pyramid.Pyramid {
	t.Helper()
	p, err := generator.New(nil, generator.WithNow(NowAt(FixedTime))).Generate(generator.Options{
		Levels: levels,
		Theme:  theme,
		Seed:   &seed,
	})
	if err != nil {
		t.Fatalf("failed to generate pyramid: %v", err)
	}
	return p
}
