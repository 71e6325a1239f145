package structured

import (
	"fmt"

	"ms-structured-data/internal/models"
)

// Assemble builds the JSON-LD document for the event: platform defaults are
// computed, every field is resolved through the override settings, and the
// parts are composed with absent optionals omitted. Settings are read fresh;
// a settings load failure is a hard failure of the build.
func (b *Builder) Assemble(event *models.Event) (*models.Document, error) {
	set, err := b.Settings.ForEvent(event.ID)
	if err != nil {
		return nil, fmt.Errorf("loading settings for event %s: %v", event.ID, err)
	}

	f := b.resolveFields(event, set)

	doc := &models.Document{
		Context:   "https://schema.org",
		Type:      "Event",
		Name:      f.name,
		StartDate: jsonDate(&event.DateFrom, event.ShowTimes),
	}

	if event.DateTo != nil {
		doc.EndDate = jsonDate(event.DateTo, event.ShowTimes)
	}
	doc.EventStatus = f.eventStatus
	doc.EventAttendanceMode = f.attendanceMode

	if f.description != "" {
		doc.Description = StripTags(f.description)
	}
	if f.image != "" {
		doc.Image = []string{f.image}
	}

	if location := buildLocation(f); location != nil {
		doc.Location = location
	}

	if f.organizerName != "" {
		doc.Organizer = &models.Organization{
			Type: "Organization",
			Name: f.organizerName,
			URL:  f.organizerURL,
		}
	}
	if f.performerName != "" {
		doc.Performer = &models.PerformingGroup{Type: "PerformingGroup", Name: f.performerName}
	}

	doc.Offers = b.buildOffers(event, set, f)
	doc.SubEvent = buildSubEvents(event, f)

	return doc, nil
}
