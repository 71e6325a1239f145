package structured

import (
	"log"

	"ms-structured-data/internal/models"
)

// itemAvailability maps the quota state of an item or variation to a
// schema.org availability URI. When the event has sub-events and none is
// specified, quota cannot be evaluated precisely and the event-level presale
// state decides instead. Quota check failures fall back the same way and
// never propagate.
func (b *Builder) itemAvailability(event *models.Event, item *models.Item, variation *models.Variation, subevent *models.SubEvent) string {
	if event.HasSubEvents && subevent == nil {
		return presaleAvailability(event, b.Clock.Now())
	}

	availability, _, err := b.Quotas.CheckQuotas(item, variation, subevent, subevent == nil, true)
	if err != nil {
		log.Printf("Could not check quotas for item %d of event %s: %v", item.ID, event.ID, err)
		return presaleAvailability(event, b.Clock.Now())
	}

	switch availability {
	case models.QuotaOK:
		return models.AvailabilityInStock
	case models.QuotaReserved, models.QuotaOrdered:
		// Stock is held in carts or pending orders but not sold out yet.
		return models.AvailabilityLimited
	default:
		return models.AvailabilitySoldOut
	}
}
