package structured

import (
	"sort"

	"ms-structured-data/internal/models"
)

// buildSubEvents emits one nested Event entry per active, publicly visible
// sub-date, ordered by start time ascending. Each entry carries a location
// built from its own location text, falling back to the event-level name.
func buildSubEvents(event *models.Event, f resolvedFields) []models.SubEventEntry {
	if !event.HasSubEvents {
		return nil
	}

	var visible []models.SubEvent
	for _, sub := range event.SubEvents {
		if sub.Active && sub.IsPublic {
			visible = append(visible, sub)
		}
	}
	sort.Slice(visible, func(i, j int) bool {
		return visible[i].DateFrom.Before(visible[j].DateFrom)
	})

	locale := event.Locale()
	var entries []models.SubEventEntry
	for _, sub := range visible {
		entry := models.SubEventEntry{
			Type:      "Event",
			Name:      sub.Name.Localize(locale),
			StartDate: jsonDate(&sub.DateFrom, event.ShowTimes),
		}
		if sub.DateTo != nil {
			entry.EndDate = jsonDate(sub.DateTo, event.ShowTimes)
		}

		locationName := sub.Location
		if locationName == "" {
			locationName = f.locationName
		}
		if location := buildLocationForName(f, locationName); location != nil {
			entry.Location = location
		}

		entries = append(entries, entry)
	}
	return entries
}
