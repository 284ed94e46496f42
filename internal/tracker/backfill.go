package tracker

import (
	"time"

	"daylog/internal/model"
)

// Backfill creates one project per calendar day from the earliest dated
// project up to and including today. Days that already have a project are
// left alone.
//
// When no project title parses as a day, Backfill returns a
// model.DateParseError and writes nothing.
func (t *Tracker) Backfill() (int, error) {
	first, err := t.firstDay()
	if err != nil {
		return 0, err
	}
	last := t.Today()

	present := map[string]bool{}
	for _, p := range t.projects {
		present[p.Title] = true
	}

	added := 0
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		title := model.FormatDay(day)
		if present[title] {
			continue
		}
		ok, err := t.CreateProject(title)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
		present[title] = true
	}
	if added > 0 {
		t.logger.Info("backfilled daily projects", "added", added, "from", model.FormatDay(first), "to", model.FormatDay(last))
	}
	return added, nil
}

// firstDay is the earliest day among project titles.
func (t *Tracker) firstDay() (time.Time, error) {
	var first time.Time
	found := false
	for _, p := range t.projects {
		d, err := model.ParseDay(p.Title)
		if err != nil {
			continue
		}
		if !found || d.Before(first) {
			first = d
			found = true
		}
	}
	if found {
		return model.Day(first), nil
	}
	value := ""
	if len(t.projects) > 0 {
		value = t.projects[0].Title
	}
	return time.Time{}, model.DateParseError{Value: value}
}
