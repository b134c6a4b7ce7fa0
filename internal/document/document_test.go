package document

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/pyramid-service/internal/domain"
	"github.com/preston-bernstein/pyramid-service/internal/domain/pyramid"
	"github.com/preston-bernstein/pyramid-service/internal/generator"
)

func samplePyramid() pyramid.Pyramid {
	at := time.Date(2024, 5, 1, 12, 30, 0, 250, time.UTC)
	return pyramid.Pyramid{
		Title:       "Sample",
		Description: "two tiers",
		GeneratedAt: &at,
		Meta: pyramid.Meta{
			pyramid.MetaTheme:  "eorzea",
			pyramid.MetaSeed:   int64(5),
			pyramid.MetaLevels: []int{1, 2},
		},
		Divisions: []pyramid.Division{
			{
				Level:     1,
				Name:      "Top",
				ShortName: pyramid.StringPtr("EOR I"),
				Teams: []pyramid.Team{
					{Name: "Alpha FC", Location: "Gridania", Inspiration: "Padjal", Notes: pyramid.StringPtr("note")},
				},
			},
			{
				Level: 2,
				Name:  "Second",
				Teams: []pyramid.Team{
					{Name: "Beta", Location: "Ul'dah", Inspiration: "Brass Blades"},
					{Name: "Gamma", Location: "Limsa Lominsa", Inspiration: "Maelstrom"},
				},
			},
		},
	}
}

func TestInMemoryRoundTrip(t *testing.T) {
	p := samplePyramid()
	got, err := FromDocument(ToDocument(p))
	require.NoError(t, err)
	if diff := cmp.Diff(p, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestGeneratedRoundTripThroughFile(t *testing.T) {
	seed := int64(42)
	p, err := generator.New(nil).Generate(generator.Options{Levels: []int{2, 3}, Theme: "far_east", Seed: &seed})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, Save(p, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	// Meta numbers come back as json.Number; compare everything else exactly.
	if diff := cmp.Diff(p, loaded, cmpopts.EquateEmpty(), cmpopts.IgnoreFields(pyramid.Pyramid{}, "Meta")); diff != "" {
		t.Fatalf("file round trip mismatch (-want +got):\n%s", diff)
	}
	gotSeed, ok, err := loaded.Meta.Int(pyramid.MetaSeed)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, seed, gotSeed)
	levels, _, err := loaded.Meta.Ints(pyramid.MetaLevels)
	require.NoError(t, err)
	require.Equal(t, []int{2, 3}, levels)
}

func TestEncodeWritesNullsForMissingOptionals(t *testing.T) {
	p := samplePyramid()
	p.GeneratedAt = nil

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, p))
	out := buf.String()
	require.True(t, strings.HasSuffix(out, "}\n"))
	require.Contains(t, out, `"generated_at": null`)
	require.Contains(t, out, `"short_name": null`)
	require.Contains(t, out, `"notes": null`)
	require.Contains(t, out, `"location": "Ul'dah"`)
	require.Contains(t, out, "\n  \"title\": \"Sample\"")
}

func TestDecodeAppliesDefaults(t *testing.T) {
	p, err := Decode(strings.NewReader(`{"divisions":[{"level":1,"name":"Only","teams":[{"name":"Solo"}]}]}`))
	require.NoError(t, err)
	require.Equal(t, DefaultTitle, p.Title)
	require.Equal(t, "", p.Description)
	require.NotNil(t, p.Meta)
	require.Empty(t, p.Meta)
	require.Nil(t, p.GeneratedAt)
	require.Len(t, p.Divisions, 1)
	require.Nil(t, p.Divisions[0].ShortName)
	require.Equal(t, pyramid.Team{Name: "Solo"}, p.Divisions[0].Teams[0])
}

func TestDecodeSortsDivisionsAndTeams(t *testing.T) {
	p, err := Decode(strings.NewReader(`{
		"title": "Unsorted",
		"divisions": [
			{"level": 2, "name": "Lower", "teams": [{"name": "Zed"}, {"name": "Abe"}]},
			{"level": "1", "name": "Upper", "teams": []}
		]
	}`))
	require.NoError(t, err)
	require.Equal(t, 1, p.Divisions[0].Level)
	require.Equal(t, 2, p.Divisions[1].Level)
	require.Equal(t, "Abe", p.Divisions[1].Teams[0].Name)
}

func TestDecodeParsesTimestamps(t *testing.T) {
	p, err := Decode(strings.NewReader(`{"generated_at":"2024-01-02T03:04:05.5","divisions":[]}`))
	require.NoError(t, err)
	require.NotNil(t, p.GeneratedAt)
	require.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 500_000_000, time.UTC), *p.GeneratedAt)

	p, err = Decode(strings.NewReader(`{"generated_at":"2024-01-02T05:04:05+02:00"}`))
	require.NoError(t, err)
	require.True(t, p.GeneratedAt.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))
}

func TestDecodeRejectsMalformedDocuments(t *testing.T) {
	cases := map[string]string{
		"not json":        `{"title":`,
		"array":           `[]`,
		"null":            `null`,
		"trailing":        `{} {}`,
		"fractional":      `{"divisions":[{"level":1.5,"name":"x"}]}`,
		"word level":      `{"divisions":[{"level":"one","name":"x"}]}`,
		"missing level":   `{"divisions":[{"name":"x"}]}`,
		"zero level":      `{"divisions":[{"level":0,"name":"x"}]}`,
		"duplicate level": `{"divisions":[{"level":1,"name":"x"},{"level":1,"name":"y"}]}`,
		"missing name":    `{"divisions":[{"level":1}]}`,
		"team no name":    `{"divisions":[{"level":1,"name":"x","teams":[{"location":"here"}]}]}`,
		"bad timestamp":   `{"generated_at":"yesterday"}`,
		"teams not list":  `{"divisions":[{"level":1,"name":"x","teams":{}}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(body))
			require.Error(t, err)
			require.True(t, domain.IsKind(err, domain.KindMalformedDocument), "got %v", err)
		})
	}
}

func TestDecodeAcceptsIntegralFloatLevel(t *testing.T) {
	p, err := Decode(strings.NewReader(`{"divisions":[{"level":3.0,"name":"x"}]}`))
	require.NoError(t, err)
	require.Equal(t, 3, p.Divisions[0].Level)
}

func TestSaveRequiresJSONExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	err := Save(samplePyramid(), path)
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))

	require.NoError(t, Save(samplePyramid(), filepath.Join(dir, "UPPER.JSON")))
}

func TestSaveOverwritesAndLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "p.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, Save(samplePyramid(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, json.Valid(data))
	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err))
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	require.ErrorIs(t, err, domain.ErrNotFound)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{nope"), 0o644))
	_, err = Load(bad)
	require.ErrorIs(t, err, domain.ErrMalformedDocument)
	require.Contains(t, err.Error(), bad)
}
