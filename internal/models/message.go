package models

// InvalidationMessage is the body of scheduled cache-invalidation messages
// delivered through the SQS invalidation queue.
type InvalidationMessage struct {
	EventID string `json:"eventId"`
	Reason  string `json:"reason"` // e.g. "presale_start", "presale_end"
}

// EventRow is the subset of the host's events table carried in Debezium
// change messages. Timestamps arrive as microseconds since the epoch.
type EventRow struct {
	ID           string `json:"id"`
	PresaleStart *int64 `json:"presale_start"`
	PresaleEnd   *int64 `json:"presale_end"`
}

// SettingRow is one row of the host's event_settings table as carried in
// Debezium change messages.
type SettingRow struct {
	EventID string `json:"event_id"`
	Key     string `json:"key"`
}

// DebeziumSource identifies the originating table of a change message.
type DebeziumSource struct {
	Table string `json:"table"`
}
