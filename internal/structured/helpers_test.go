package structured

import (
	"time"

	"ms-structured-data/internal/models"
)

// fakeSettings serves a fixed settings map for every event.
type fakeSettings struct {
	values map[string]string
	err    error
}

func (f *fakeSettings) ForEvent(eventID string) (models.EventSettings, error) {
	if f.err != nil {
		return models.EventSettings{}, f.err
	}
	return models.NewEventSettings(f.values), nil
}

// stubQuotas answers every quota check with the same result.
type stubQuotas struct {
	availability models.QuotaAvailability
	remaining    int64
	err          error
}

func (s *stubQuotas) CheckQuotas(item *models.Item, variation *models.Variation, subevent *models.SubEvent, trustParameters, countWaitlist bool) (models.QuotaAvailability, int64, error) {
	return s.availability, s.remaining, s.err
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func timePtr(t time.Time) *time.Time { return &t }

func floatPtr(f float64) *float64 { return &f }

func newTestBuilder(values map[string]string, quotas QuotaChecker) *Builder {
	if quotas == nil {
		quotas = &stubQuotas{availability: models.QuotaOK, remaining: 50}
	}
	return NewBuilder(&fakeSettings{values: values}, quotas, fixedClock{now: testNow}, "https://tickets.example.com")
}

// testEvent is a plain offline event with one admission item on sale.
func testEvent() *models.Event {
	return &models.Event{
		ID:            "democon",
		Slug:          "democon",
		OrganizerName: "Demo Organizer",
		OrganizerSlug: "demo",
		Name:          models.PlainString("DemoCon 2026"),
		Currency:      "EUR",
		DateFrom:      time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC),
		ShowTimes:     true,
		DefaultLocale: "en",
		Items: []models.Item{
			{
				ID:           1,
				Name:         models.PlainString("Standard ticket"),
				Active:       true,
				Admission:    true,
				DefaultPrice: floatPtr(10),
			},
		},
	}
}
