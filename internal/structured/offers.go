package structured

import (
	"log"
	"net/url"
	"time"

	"ms-structured-data/internal/models"
)

// globalOverrides are the enabled settings-level offer overrides, the middle
// tier of the precedence chain (per-item override > global override >
// platform default).
type globalOverrides struct {
	price        string
	currency     string
	availability string
	url          string
	validFrom    *time.Time
	any          bool
}

func globalOffersOverrides(f resolvedFields) globalOverrides {
	g := globalOverrides{
		any: f.priceOverridden || f.currencyOverridden || f.availabilityOverridden ||
			f.urlOverridden || f.validFromOverridden,
	}
	if f.priceOverridden {
		g.price = f.offerPrice
	}
	if f.currencyOverridden {
		g.currency = f.offerCurrency
	}
	if f.availabilityOverridden {
		g.availability = f.offerAvailability
	}
	if f.urlOverridden {
		g.url = f.offerURL
	}
	if f.validFromOverridden {
		g.validFrom = f.offerValidFrom
	}
	return g
}

// buildOffers produces the offers array: one entry per active variation (or
// per variation-less item), skipping ignored rows and rows outside their
// availability windows. When nothing qualifies but at least one global offer
// override is enabled, a single synthetic offer is emitted from the globals.
// Sub-event-scoped quota is intentionally not consulted here; quota checks
// span the whole event.
func (b *Builder) buildOffers(event *models.Event, set models.EventSettings, f resolvedFields) []models.Offer {
	now := b.Clock.Now()
	globals := globalOffersOverrides(f)
	overrides := models.ParseItemOverrides(set.String(models.KeyItemOverrides), event.ID)

	var offers []models.Offer
	for _, item := range event.OfferItems() {
		if !withinAvailabilityWindow(item.AvailableFrom, item.AvailableUntil, now) {
			continue
		}

		var variations []models.Variation
		for _, v := range item.Variations {
			if v.Active {
				variations = append(variations, v)
			}
		}

		if len(variations) == 0 {
			if offer, ok := b.offerFor(event, item, nil, overrides, globals, f); ok {
				offers = append(offers, offer)
			}
			continue
		}
		for i := range variations {
			variation := &variations[i]
			if !withinAvailabilityWindow(variation.AvailableFrom, variation.AvailableUntil, now) {
				continue
			}
			if offer, ok := b.offerFor(event, item, variation, overrides, globals, f); ok {
				offers = append(offers, offer)
			}
		}
	}

	if len(offers) == 0 && globals.any {
		offers = append(offers, syntheticOffer(globals, f))
	}
	return offers
}

// offerFor builds the offer record for one item or variation, applying the
// per-item override map and the field precedence rules. The bool result is
// false when the row is ignored.
func (b *Builder) offerFor(event *models.Event, item *models.Item, variation *models.Variation, overrides models.ItemOverrideMap, globals globalOverrides, f resolvedFields) (models.Offer, bool) {
	var variationID *int64
	if variation != nil {
		variationID = &variation.ID
	}
	override, _ := overrides.Lookup(item.ID, variationID)

	// An explicit ignore override wins; the default is to ignore items that
	// are not admission tickets or that require a voucher. The stored value
	// compares against the literal "true", so "false" and anything else both
	// mean "not ignored".
	ignore := !item.Admission || item.RequireVoucher
	if override.Ignore != nil {
		ignore = *override.Ignore == "true"
	}
	if ignore {
		return models.Offer{}, false
	}

	defaultPrice := item.DefaultPrice
	if variation != nil && variation.DefaultPrice != nil {
		defaultPrice = variation.DefaultPrice
	}

	overrideURL := override.URL
	if overrideURL != "" && !isValidHTTPURL(overrideURL) {
		log.Printf("Warning: invalid URL in item override for event %s item %s: %s",
			event.ID, models.OverrideKey(item.ID, variationID), overrideURL)
		overrideURL = ""
	}

	availability := override.Availability
	if availability == "" {
		availability = globals.availability
	}
	if availability == "" {
		availability = b.itemAvailability(event, item, variation, nil)
	}

	// The first stored price in the precedence chain is the one that gets
	// formatted; a non-numeric value yields an absent price rather than
	// falling through to the next tier.
	priceStr := ""
	if raw := coalesce(override.Price, globals.price); raw != "" {
		priceStr = formatPrice(raw)
	} else {
		priceStr = formatPriceValue(defaultPrice)
	}

	offer := models.Offer{
		Type:          "Offer",
		URL:           coalesce(overrideURL, globals.url, f.offerURL),
		Price:         priceStr,
		PriceCurrency: coalesce(override.Currency, globals.currency, f.offerCurrency),
		Availability:  availability,
	}
	if globals.validFrom != nil {
		offer.ValidFrom = globals.validFrom.Format(time.RFC3339)
	}
	return offer, true
}

// syntheticOffer is emitted when global overrides exist but no item
// qualified; item-derived fields stay absent.
func syntheticOffer(globals globalOverrides, f resolvedFields) models.Offer {
	offer := models.Offer{
		Type:          "Offer",
		URL:           coalesce(globals.url, f.offerURL),
		Price:         formatPrice(globals.price),
		PriceCurrency: coalesce(globals.currency, f.offerCurrency),
		Availability:  coalesce(globals.availability, f.offerAvailability),
	}
	if globals.validFrom != nil {
		offer.ValidFrom = globals.validFrom.Format(time.RFC3339)
	}
	return offer
}

func withinAvailabilityWindow(from, until *time.Time, now time.Time) bool {
	if from != nil && from.After(now) {
		return false
	}
	if until != nil && until.Before(now) {
		return false
	}
	return true
}

// isValidHTTPURL accepts absolute http/https URLs only.
func isValidHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
