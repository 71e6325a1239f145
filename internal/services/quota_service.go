package services

import (
	"database/sql"
	"fmt"

	"ms-structured-data/internal/models"
)

// QuotaService computes stock availability from the mirrored quota rows.
// The paid/pending/blocked/waiting counters are aggregates maintained by the
// host platform; trustParameters is part of the host contract but both modes
// read the same mirrored counters here, since recounting individual orders
// is the host's job.
type QuotaService struct {
	DB *sql.DB
}

func NewQuotaService(db *sql.DB) *QuotaService {
	return &QuotaService{DB: db}
}

// CheckQuotas evaluates every quota covering the item (or variation) and
// returns the worst availability across them plus the remaining count. An
// item covered by no quota, or only by unlimited quotas, is in stock with an
// unlimited remainder (-1).
func (s *QuotaService) CheckQuotas(item *models.Item, variation *models.Variation, subevent *models.SubEvent, trustParameters, countWaitlist bool) (models.QuotaAvailability, int64, error) {
	if item == nil {
		return models.QuotaGone, 0, fmt.Errorf("quota check requires an item")
	}

	query := `
		SELECT q.size, q.paid_count, q.pending_count, q.blocked_count, q.waiting_count
		FROM quotas q
		JOIN quota_items qi ON qi.quota_id = q.id
		WHERE qi.item_id = $1`
	args := []interface{}{item.ID}

	if variation != nil {
		args = append(args, variation.ID)
		query += fmt.Sprintf(" AND qi.variation_id = $%d", len(args))
	} else {
		query += " AND qi.variation_id IS NULL"
	}
	if subevent != nil {
		args = append(args, subevent.ID)
		query += fmt.Sprintf(" AND q.subevent_id = $%d", len(args))
	} else {
		query += " AND q.subevent_id IS NULL"
	}

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return models.QuotaGone, 0, fmt.Errorf("failed to query quotas for item %d: %v", item.ID, err)
	}
	defer rows.Close()

	worst := models.QuotaOK
	var remaining int64 = -1
	for rows.Next() {
		var (
			size                            sql.NullInt64
			paid, pending, blocked, waiting int64
		)
		if err := rows.Scan(&size, &paid, &pending, &blocked, &waiting); err != nil {
			return models.QuotaGone, 0, fmt.Errorf("failed to scan quota row: %v", err)
		}
		if !size.Valid {
			// Unlimited quota, never constrains.
			continue
		}

		availability, left := evaluateQuota(size.Int64, paid, pending, blocked, waiting, countWaitlist)
		if availability < worst {
			worst = availability
		}
		if remaining < 0 || left < remaining {
			remaining = left
		}
	}
	if err := rows.Err(); err != nil {
		return models.QuotaGone, 0, err
	}

	return worst, remaining, nil
}

func evaluateQuota(size, paid, pending, blocked, waiting int64, countWaitlist bool) (models.QuotaAvailability, int64) {
	if paid >= size {
		return models.QuotaGone, 0
	}
	if paid+pending >= size {
		return models.QuotaOrdered, 0
	}
	held := blocked
	if countWaitlist {
		held += waiting
	}
	if paid+pending+held >= size {
		return models.QuotaReserved, 0
	}
	return models.QuotaOK, size - paid - pending - held
}
