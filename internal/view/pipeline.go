// Package view holds the pure display rules that turn the raw event set and
// the site settings into what an audience sees. It performs no I/O so both
// call sites (public page, admin panel) share one tested implementation.
package view

import (
	"sort"
	"time"

	"github.com/cosfat/kzone/internal/domain"
)

// DateLayout is the authoritative calendar-date format for event dates.
const DateLayout = "2006-01-02"

// parseDate accepts the canonical calendar date and, for rows written by the
// old importer, a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// DisplayList filters and orders events for the given audience.
//
// Public audiences never see events with Visible == false, and when
// settings.HideOldEvents is set they also lose events dated more than one
// calendar month before now. Admin audiences always see everything.
// Events whose date does not parse sort after all valid dates regardless of
// direction and are exempt from the age filter; their ids are returned so the
// caller can report the anomaly instead of silently losing data.
//
// The input slice is never mutated; ties on equal dates keep their stored
// relative order.
func DisplayList(events []domain.Event, settings domain.Settings, audience domain.Audience, now time.Time) ([]domain.Event, []string) {
	settings = settings.Normalize()

	// The cutoff is one calendar month before today, compared at day
	// granularity since event dates carry no time component.
	y, m, d := now.UTC().Date()
	cutoff := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)

	out := make([]domain.Event, 0, len(events))
	var malformed []string
	for _, ev := range events {
		parsed, ok := parseDate(ev.Date)
		if !ok {
			malformed = append(malformed, ev.ID)
		}
		if audience == domain.AudiencePublic {
			if !ev.Visible {
				continue
			}
			if settings.HideOldEvents && ok && parsed.Before(cutoff) {
				continue
			}
		}
		out = append(out, ev)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ti, iok := parseDate(out[i].Date)
		tj, jok := parseDate(out[j].Date)
		switch {
		case iok && !jok:
			return true // unparseable dates always sort last
		case !iok && jok:
			return false
		case !iok && !jok:
			return false
		}
		if settings.HomepageSortOrder == domain.SortAscending {
			return ti.Before(tj)
		}
		return tj.Before(ti)
	})

	return out, malformed
}
