package structured

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"ms-structured-data/internal/models"
)

// SettingsStore loads the per-event settings the builder merges with
// platform-computed defaults. Settings are read fresh on every build.
type SettingsStore interface {
	ForEvent(eventID string) (models.EventSettings, error)
}

// QuotaChecker exposes the host platform's stock-check capability. A nil
// variation means the item itself is being checked; a nil subevent means the
// check spans the whole event. It may fail with a recoverable error.
type QuotaChecker interface {
	CheckQuotas(item *models.Item, variation *models.Variation, subevent *models.SubEvent, trustParameters, countWaitlist bool) (models.QuotaAvailability, int64, error)
}

// Clock abstracts the host's time source so availability windows are
// testable.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Builder assembles JSON-LD structured-data documents for events.
type Builder struct {
	Settings SettingsStore
	Quotas   QuotaChecker
	Clock    Clock
	BaseURL  string
}

// NewBuilder creates a document builder. BaseURL is the public ticket shop
// root used for default organizer and offer URLs.
func NewBuilder(settings SettingsStore, quotas QuotaChecker, clock Clock, baseURL string) *Builder {
	return &Builder{
		Settings: settings,
		Quotas:   quotas,
		Clock:    clock,
		BaseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// eventDefaults are the platform-computed values a disabled override falls
// back to.
type eventDefaults struct {
	name              models.LocalizedString
	description       models.LocalizedString
	image             string
	locationName      models.LocalizedString
	organizerName     string
	organizerURL      string
	offerCurrency     string
	offerURL          string
	offerValidFrom    *time.Time
	attendanceMode    string
	eventStatus       string
	offerAvailability string
}

func (b *Builder) eventDefaults(event *models.Event) eventDefaults {
	d := eventDefaults{
		name:           event.Name,
		description:    event.FrontpageText,
		image:          event.SocialImage,
		locationName:   event.Location,
		organizerName:  event.OrganizerName,
		organizerURL:   fmt.Sprintf("%s/%s/", b.BaseURL, event.OrganizerSlug),
		offerCurrency:  event.Currency,
		offerURL:       fmt.Sprintf("%s/%s/%s/", b.BaseURL, event.OrganizerSlug, event.Slug),
		offerValidFrom: event.PresaleStart,
	}

	if event.IsRemote {
		d.attendanceMode = models.AttendanceOnline
	} else {
		d.attendanceMode = models.AttendanceOffline
	}

	if event.DateTo != nil && event.DateTo.Before(event.DateFrom) {
		d.eventStatus = models.StatusCompleted
	} else {
		d.eventStatus = models.StatusScheduled
	}

	d.offerAvailability = presaleAvailability(event, b.Clock.Now())

	return d
}

// presaleAvailability maps the event-level presale window state to a
// schema.org availability URI.
func presaleAvailability(event *models.Event, now time.Time) string {
	if event.PresaleIsRunning(now) {
		return models.AvailabilityInStock
	}
	if event.PresaleHasEnded(now) {
		return models.AvailabilitySoldOut
	}
	return models.AvailabilityPreOrder
}

// jsonDate serializes a timestamp for the document: full ISO date-time when
// the event shows times, date only otherwise.
func jsonDate(t *time.Time, showTimes bool) string {
	if t == nil {
		return ""
	}
	if showTimes {
		return t.Format(time.RFC3339)
	}
	return t.Format("2006-01-02")
}

// formatPrice renders a decimal string with two places. Non-numeric input
// yields "", which callers treat as an absent price.
func formatPrice(raw string) string {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%.2f", value)
}

func formatPriceValue(price *float64) string {
	if price == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *price)
}
