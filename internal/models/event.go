package models

import "time"

// Schema.org URIs recognized by the document builder and the settings UI.
const (
	AttendanceOffline = "https://schema.org/OfflineEventAttendanceMode"
	AttendanceOnline  = "https://schema.org/OnlineEventAttendanceMode"
	AttendanceMixed   = "https://schema.org/MixedEventAttendanceMode"

	StatusScheduled   = "https://schema.org/EventScheduled"
	StatusCancelled   = "https://schema.org/EventCancelled"
	StatusPostponed   = "https://schema.org/EventPostponed"
	StatusRescheduled = "https://schema.org/EventRescheduled"
	StatusMovedOnline = "https://schema.org/EventMovedOnline"
	StatusCompleted   = "https://schema.org/EventCompleted"

	AvailabilityInStock  = "https://schema.org/InStock"
	AvailabilityLimited  = "https://schema.org/LimitedAvailability"
	AvailabilitySoldOut  = "https://schema.org/SoldOut"
	AvailabilityPreOrder = "https://schema.org/PreOrder"
)

// QuotaAvailability mirrors the host platform's quota states. The numeric
// ordering matters: lower is worse, and the worst quota wins.
type QuotaAvailability int

const (
	QuotaGone     QuotaAvailability = 0
	QuotaOrdered  QuotaAvailability = 10
	QuotaReserved QuotaAvailability = 20
	QuotaOK       QuotaAvailability = 100
)

// Event is the read-only aggregate of host platform data the document
// builder works from. It is loaded fresh for every request.
type Event struct {
	ID            string
	Slug          string
	OrganizerName string
	OrganizerSlug string
	Name          LocalizedString
	FrontpageText LocalizedString
	SocialImage   string
	Location      LocalizedString
	Currency      string
	DateFrom      time.Time
	DateTo        *time.Time
	PresaleStart  *time.Time
	PresaleEnd    *time.Time
	IsRemote      bool
	HasSubEvents  bool
	DefaultLocale string
	ShowTimes     bool
	SubEvents     []SubEvent
	Items         []Item
}

// SubEvent is one date of a recurring event series.
type SubEvent struct {
	ID       int64
	Name     LocalizedString
	DateFrom time.Time
	DateTo   *time.Time
	Location string
	Active   bool
	IsPublic bool
}

// Item is a sellable product of an event.
type Item struct {
	ID             int64
	Name           LocalizedString
	Active         bool
	Admission      bool
	RequireVoucher bool
	DefaultPrice   *float64
	AvailableFrom  *time.Time
	AvailableUntil *time.Time
	Variations     []Variation
}

// Variation is one purchasable variant of an item.
type Variation struct {
	ID             int64
	Value          LocalizedString
	Active         bool
	DefaultPrice   *float64
	AvailableFrom  *time.Time
	AvailableUntil *time.Time
}

// Locale returns the event's configured default locale. Override values are
// always resolved against this locale, never the visitor's request locale.
func (e *Event) Locale() string {
	if e.DefaultLocale == "" {
		return "en"
	}
	return e.DefaultLocale
}

// PresaleIsRunning reports whether the presale window is open at the given time.
func (e *Event) PresaleIsRunning(now time.Time) bool {
	if e.PresaleStart != nil && now.Before(*e.PresaleStart) {
		return false
	}
	return !e.PresaleHasEnded(now)
}

// PresaleHasEnded reports whether the presale window has closed.
func (e *Event) PresaleHasEnded(now time.Time) bool {
	return e.PresaleEnd != nil && now.After(*e.PresaleEnd)
}

// ActiveItemEntry is one row of the admin override UI: an item or a single
// variation, with the default-ignore decision the offer builder would make.
type ActiveItemEntry struct {
	Type          string   `json:"type"`
	ItemID        int64    `json:"itemId"`
	VariationID   *int64   `json:"variationId,omitempty"`
	Name          string   `json:"name"`
	Price         *float64 `json:"price,omitempty"`
	IgnoreDefault bool     `json:"ignoreDefault"`
}

// ActiveItemEntries lists the items and variations currently inside their
// availability windows, one entry per variation for variation items.
func (e *Event) ActiveItemEntries(now time.Time) []ActiveItemEntry {
	entries := []ActiveItemEntry{}
	locale := e.Locale()
	for i := range e.Items {
		item := &e.Items[i]
		if !item.Active {
			continue
		}
		if item.AvailableFrom != nil && item.AvailableFrom.After(now) {
			continue
		}
		if item.AvailableUntil != nil && item.AvailableUntil.Before(now) {
			continue
		}

		ignoreDefault := !item.Admission || item.RequireVoucher

		var variations []Variation
		for _, v := range item.Variations {
			if v.Active {
				variations = append(variations, v)
			}
		}
		if len(variations) == 0 {
			entries = append(entries, ActiveItemEntry{
				Type:          "item",
				ItemID:        item.ID,
				Name:          item.Name.Localize(locale),
				Price:         item.DefaultPrice,
				IgnoreDefault: ignoreDefault,
			})
			continue
		}
		for _, v := range variations {
			variationID := v.ID
			price := v.DefaultPrice
			if price == nil {
				price = item.DefaultPrice
			}
			entries = append(entries, ActiveItemEntry{
				Type:          "variation",
				ItemID:        item.ID,
				VariationID:   &variationID,
				Name:          item.Name.Localize(locale) + " - " + v.Value.Localize(locale),
				Price:         price,
				IgnoreDefault: ignoreDefault,
			})
		}
	}
	return entries
}

// MinActiveItemPrice returns the lowest default price over active admission
// items, falling back to all active items when none are admission-flagged.
// It is the suggested value for the global price override in the admin UI.
func (e *Event) MinActiveItemPrice() *float64 {
	candidates := e.activeItems(true)
	if len(candidates) == 0 {
		candidates = e.activeItems(false)
	}
	var min *float64
	for _, item := range candidates {
		if item.DefaultPrice == nil {
			continue
		}
		if min == nil || *item.DefaultPrice < *min {
			price := *item.DefaultPrice
			min = &price
		}
	}
	return min
}

// OfferItems returns the items the offer builder iterates: active admission
// items, or every active item when none are admission-flagged.
func (e *Event) OfferItems() []*Item {
	items := e.activeItems(true)
	if len(items) == 0 {
		items = e.activeItems(false)
	}
	return items
}

func (e *Event) activeItems(admissionOnly bool) []*Item {
	var items []*Item
	for i := range e.Items {
		item := &e.Items[i]
		if !item.Active {
			continue
		}
		if admissionOnly && !item.Admission {
			continue
		}
		items = append(items, item)
	}
	return items
}
