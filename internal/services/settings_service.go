package services

import (
	"database/sql"
	"fmt"
	"log"

	"ms-structured-data/internal/models"
)

// SettingsService is the per-event key/value store for override settings.
// Reads filter down to the keys this service recognizes; unknown keys are
// ignored at this boundary.
type SettingsService struct {
	DB *sql.DB
}

func NewSettingsService(db *sql.DB) *SettingsService {
	return &SettingsService{DB: db}
}

// ForEvent loads the recognized settings snapshot for one event.
func (s *SettingsService) ForEvent(eventID string) (models.EventSettings, error) {
	rows, err := s.DB.Query(`SELECT key, value FROM event_settings WHERE event_id = $1`, eventID)
	if err != nil {
		return models.EventSettings{}, fmt.Errorf("failed to load settings for event %s: %v", eventID, err)
	}
	defer rows.Close()

	values := map[string]string{}
	ignored := 0
	for rows.Next() {
		var key string
		var value sql.NullString
		if err := rows.Scan(&key, &value); err != nil {
			return models.EventSettings{}, fmt.Errorf("failed to scan setting row: %v", err)
		}
		if !models.IsRecognizedSettingKey(key) {
			ignored++
			continue
		}
		values[key] = value.String
	}
	if err := rows.Err(); err != nil {
		return models.EventSettings{}, err
	}
	if ignored > 0 {
		log.Printf("Ignored %d unrecognized setting keys for event %s", ignored, eventID)
	}
	return models.NewEventSettings(values), nil
}

// Set stores one setting value, overwriting any previous value.
func (s *SettingsService) Set(eventID, key, value string) error {
	_, err := s.DB.Exec(`
		INSERT INTO event_settings (event_id, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, key) DO UPDATE SET value = EXCLUDED.value`,
		eventID, key, value)
	if err != nil {
		return fmt.Errorf("failed to set setting %s for event %s: %v", key, eventID, err)
	}
	return nil
}

// Delete removes one setting.
func (s *SettingsService) Delete(eventID, key string) error {
	_, err := s.DB.Exec(`DELETE FROM event_settings WHERE event_id = $1 AND key = $2`, eventID, key)
	if err != nil {
		return fmt.Errorf("failed to delete setting %s for event %s: %v", key, eventID, err)
	}
	return nil
}
