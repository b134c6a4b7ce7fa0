package handlers

import (
	nethttp "net/http"
	"net/url"
	"strings"

	"github.com/preston-bernstein/pyramid-service/internal/themes"
)

const sampleLocations = 5

type themeSummary struct {
	Key             string   `json:"key"`
	RegionName      string   `json:"regionName"`
	PremierTitle    string   `json:"premierTitle"`
	Highlight       string   `json:"highlight"`
	SampleLocations []string `json:"sampleLocations"`
}

type themeDetail struct {
	Key                string   `json:"key"`
	RegionName         string   `json:"regionName"`
	ShortPrefix        string   `json:"shortPrefix"`
	PremierTitle       string   `json:"premierTitle"`
	ChampionshipTitle  string   `json:"championshipTitle"`
	LowerDivisionTitle string   `json:"lowerDivisionTitle"`
	Highlight          string   `json:"highlight"`
	Locations          []string `json:"locations"`
	Mascots            []string `json:"mascots"`
	Adjectives         []string `json:"adjectives"`
	Inspirations       []string `json:"inspirations"`
	NotesTemplates     []string `json:"notesTemplates"`
}

// Themes lists the registered themes.
func (h *Handler) Themes(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	list := h.svc.Themes().List()
	out := make([]themeSummary, 0, len(list))
	for _, t := range list {
		locations := t.Locations
		if len(locations) > sampleLocations {
			locations = locations[:sampleLocations]
		}
		out = append(out, themeSummary{
			Key:             t.Key,
			RegionName:      t.RegionName,
			PremierTitle:    t.PremierTitle,
			Highlight:       t.Highlight,
			SampleLocations: locations,
		})
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"themes": out}, h.logger)
}

// ThemeByKey returns a single theme's full vocabulary.
func (h *Handler) ThemeByKey(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	key, err := url.PathUnescape(strings.TrimPrefix(r.URL.Path, "/themes/"))
	if err != nil || key == "" || strings.Contains(key, "/") {
		writeError(w, r, nethttp.StatusBadRequest, "invalid theme key", h.logger)
		return
	}
	t, err := h.svc.Themes().Get(key)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, toThemeDetail(t), h.logger)
}

func toThemeDetail(t themes.Theme) themeDetail {
	return themeDetail{
		Key:                t.Key,
		RegionName:         t.RegionName,
		ShortPrefix:        t.ShortPrefix,
		PremierTitle:       t.PremierTitle,
		ChampionshipTitle:  t.ChampionshipTitle,
		LowerDivisionTitle: t.LowerDivisionTitle,
		Highlight:          t.Highlight,
		Locations:          t.Locations,
		Mascots:            t.Mascots,
		Adjectives:         t.Adjectives,
		Inspirations:       t.Inspirations,
		NotesTemplates:     t.NotesTemplates,
	}
}
