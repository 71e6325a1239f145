package services

import (
	"database/sql"
	"fmt"

	"ms-structured-data/internal/models"
)

// EventService reads the host platform's event data from the local mirror.
// The aggregate is loaded fresh per request and never mutated.
type EventService struct {
	DB *sql.DB
}

func NewEventService(db *sql.DB) *EventService {
	return &EventService{DB: db}
}

// GetEvent loads the full event aggregate: the event row plus its sub-events
// and items with variations.
func (s *EventService) GetEvent(id string) (*models.Event, error) {
	row := s.DB.QueryRow(`
		SELECT id, slug, organizer_name, organizer_slug, name, frontpage_text,
		       social_image, location, currency, date_from, date_to,
		       presale_start, presale_end, is_remote, has_subevents,
		       default_locale, show_times
		FROM events WHERE id = $1`, id)

	var (
		event         models.Event
		name          sql.NullString
		frontpageText sql.NullString
		socialImage   sql.NullString
		location      sql.NullString
		dateTo        sql.NullTime
		presaleStart  sql.NullTime
		presaleEnd    sql.NullTime
		defaultLocale sql.NullString
	)
	err := row.Scan(&event.ID, &event.Slug, &event.OrganizerName, &event.OrganizerSlug,
		&name, &frontpageText, &socialImage, &location, &event.Currency,
		&event.DateFrom, &dateTo, &presaleStart, &presaleEnd,
		&event.IsRemote, &event.HasSubEvents, &defaultLocale, &event.ShowTimes)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("event %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load event %s: %v", id, err)
	}

	event.Name = models.ParseLocalizedString(name.String)
	event.FrontpageText = models.ParseLocalizedString(frontpageText.String)
	event.SocialImage = socialImage.String
	event.Location = models.ParseLocalizedString(location.String)
	event.DefaultLocale = defaultLocale.String
	if dateTo.Valid {
		event.DateTo = &dateTo.Time
	}
	if presaleStart.Valid {
		event.PresaleStart = &presaleStart.Time
	}
	if presaleEnd.Valid {
		event.PresaleEnd = &presaleEnd.Time
	}

	if event.HasSubEvents {
		if event.SubEvents, err = s.loadSubEvents(id); err != nil {
			return nil, err
		}
	}
	if event.Items, err = s.loadItems(id); err != nil {
		return nil, err
	}

	return &event, nil
}

func (s *EventService) loadSubEvents(eventID string) ([]models.SubEvent, error) {
	rows, err := s.DB.Query(`
		SELECT id, name, date_from, date_to, location, active, is_public
		FROM subevents WHERE event_id = $1 ORDER BY date_from`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subevents for event %s: %v", eventID, err)
	}
	defer rows.Close()

	var subevents []models.SubEvent
	for rows.Next() {
		var (
			sub      models.SubEvent
			name     sql.NullString
			dateTo   sql.NullTime
			location sql.NullString
		)
		if err := rows.Scan(&sub.ID, &name, &sub.DateFrom, &dateTo, &location, &sub.Active, &sub.IsPublic); err != nil {
			return nil, fmt.Errorf("failed to scan subevent: %v", err)
		}
		sub.Name = models.ParseLocalizedString(name.String)
		sub.Location = location.String
		if dateTo.Valid {
			sub.DateTo = &dateTo.Time
		}
		subevents = append(subevents, sub)
	}
	return subevents, rows.Err()
}

func (s *EventService) loadItems(eventID string) ([]models.Item, error) {
	rows, err := s.DB.Query(`
		SELECT id, name, active, admission, require_voucher, default_price,
		       available_from, available_until
		FROM items WHERE event_id = $1 ORDER BY id`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load items for event %s: %v", eventID, err)
	}
	defer rows.Close()

	var items []models.Item
	itemIndex := map[int64]int{}
	for rows.Next() {
		var (
			item           models.Item
			name           sql.NullString
			defaultPrice   sql.NullFloat64
			availableFrom  sql.NullTime
			availableUntil sql.NullTime
		)
		if err := rows.Scan(&item.ID, &name, &item.Active, &item.Admission,
			&item.RequireVoucher, &defaultPrice, &availableFrom, &availableUntil); err != nil {
			return nil, fmt.Errorf("failed to scan item: %v", err)
		}
		item.Name = models.ParseLocalizedString(name.String)
		if defaultPrice.Valid {
			item.DefaultPrice = &defaultPrice.Float64
		}
		if availableFrom.Valid {
			item.AvailableFrom = &availableFrom.Time
		}
		if availableUntil.Valid {
			item.AvailableUntil = &availableUntil.Time
		}
		itemIndex[item.ID] = len(items)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, s.attachVariations(eventID, items, itemIndex)
}

func (s *EventService) attachVariations(eventID string, items []models.Item, itemIndex map[int64]int) error {
	rows, err := s.DB.Query(`
		SELECT v.item_id, v.id, v.value, v.active, v.default_price,
		       v.available_from, v.available_until
		FROM variations v
		JOIN items i ON i.id = v.item_id
		WHERE i.event_id = $1 ORDER BY v.id`, eventID)
	if err != nil {
		return fmt.Errorf("failed to load variations for event %s: %v", eventID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			itemID         int64
			variation      models.Variation
			value          sql.NullString
			defaultPrice   sql.NullFloat64
			availableFrom  sql.NullTime
			availableUntil sql.NullTime
		)
		if err := rows.Scan(&itemID, &variation.ID, &value, &variation.Active,
			&defaultPrice, &availableFrom, &availableUntil); err != nil {
			return fmt.Errorf("failed to scan variation: %v", err)
		}
		variation.Value = models.ParseLocalizedString(value.String)
		if defaultPrice.Valid {
			variation.DefaultPrice = &defaultPrice.Float64
		}
		if availableFrom.Valid {
			variation.AvailableFrom = &availableFrom.Time
		}
		if availableUntil.Valid {
			variation.AvailableUntil = &availableUntil.Time
		}
		if idx, ok := itemIndex[itemID]; ok {
			items[idx].Variations = append(items[idx].Variations, variation)
		}
	}
	return rows.Err()
}
