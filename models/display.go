package models

import (
	"fmt"
	"strings"
	"time"
)

// DisplayMode selects the layout used to present a project publicly.
type DisplayMode string

const (
	DisplayModeMobile  DisplayMode = "mobile"
	DisplayModeWeb     DisplayMode = "web"
	DisplayModeBackend DisplayMode = "backend"
	DisplayModeDevops  DisplayMode = "devops"
	DisplayModeDefault DisplayMode = "default"
)

// displayPriority is checked in order; the first type present wins.
var displayPriority = []struct {
	typ  CategoryType
	mode DisplayMode
}{
	{CategoryTypeMobile, DisplayModeMobile},
	{CategoryTypeWeb, DisplayModeWeb},
	{CategoryTypeBackend, DisplayModeBackend},
	{CategoryTypeDevops, DisplayModeDevops},
}

func DisplayModeFor(categories []Category) DisplayMode {
	if len(categories) == 0 {
		return DisplayModeDefault
	}
	present := make(map[CategoryType]bool, len(categories))
	for _, c := range categories {
		present[c.Type] = true
	}
	for _, p := range displayPriority {
		if present[p.typ] {
			return p.mode
		}
	}
	return DisplayModeDefault
}

func (p Project) DisplayMode() DisplayMode {
	return DisplayModeFor(p.Categories)
}

const displayDateLayout = "Jan 2, 2006"

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatDate renders an ISO timestamp as a short English date, e.g. "Mar 5, 2024".
func FormatDate(iso string) (string, error) {
	iso = strings.TrimSpace(iso)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.Format(displayDateLayout), nil
		}
	}
	return "", fmt.Errorf("unrecognised date %q", iso)
}

func FormatTime(t time.Time) string {
	return t.Format(displayDateLayout)
}

// MatchesCategory reports whether any category of p has filter as its type
// or slug. An empty filter or "all" matches everything.
func (p Project) MatchesCategory(filter string) bool {
	if filter == "" || filter == "all" {
		return true
	}
	for _, c := range p.Categories {
		if string(c.Type) == filter || c.Slug == filter {
			return true
		}
	}
	return false
}

func FilterByCategory(projects []Project, filter string) []Project {
	if filter == "" || filter == "all" {
		return projects
	}
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if p.MatchesCategory(filter) {
			out = append(out, p)
		}
	}
	return out
}
