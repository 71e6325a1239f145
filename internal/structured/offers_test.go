package structured

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-structured-data/internal/models"
)

func buildOffersFor(t *testing.T, event *models.Event, values map[string]string, quotas QuotaChecker) []models.Offer {
	t.Helper()
	b := newTestBuilder(values, quotas)
	set := models.NewEventSettings(values)
	f := b.resolveFields(event, set)
	return b.buildOffers(event, set, f)
}

func TestBuildOffersDefaults(t *testing.T) {
	event := testEvent()

	offers := buildOffersFor(t, event, nil, nil)

	require.Len(t, offers, 1)
	assert.Equal(t, "Offer", offers[0].Type)
	assert.Equal(t, "10.00", offers[0].Price)
	assert.Equal(t, "EUR", offers[0].PriceCurrency)
	assert.Equal(t, models.AvailabilityInStock, offers[0].Availability)
	assert.Equal(t, "https://tickets.example.com/demo/democon/", offers[0].URL)
	assert.Empty(t, offers[0].ValidFrom)
}

func TestBuildOffersPricePrecedence(t *testing.T) {
	// Per-item override beats global override beats item default.
	event := testEvent()
	values := map[string]string{
		models.KeyOverrideOfferPrice: "true",
		models.KeyOfferPrice:         "15.00",
		models.KeyItemOverrides:      `{"1": {"price": "99.99"}}`,
	}

	offers := buildOffersFor(t, event, values, nil)

	require.Len(t, offers, 1)
	assert.Equal(t, "99.99", offers[0].Price)
}

func TestBuildOffersGlobalPriceBeatsDefault(t *testing.T) {
	event := testEvent()
	values := map[string]string{
		models.KeyOverrideOfferPrice: "true",
		models.KeyOfferPrice:         "15.5",
	}

	offers := buildOffersFor(t, event, values, nil)

	require.Len(t, offers, 1)
	assert.Equal(t, "15.50", offers[0].Price)
}

func TestBuildOffersNonNumericOverridePriceStaysAbsent(t *testing.T) {
	// A broken stored price does not fall through to the item default.
	event := testEvent()
	values := map[string]string{
		models.KeyItemOverrides: `{"1": {"price": "free!"}}`,
	}

	offers := buildOffersFor(t, event, values, nil)

	require.Len(t, offers, 1)
	assert.Equal(t, "", offers[0].Price)
}

func TestBuildOffersIgnoreOverride(t *testing.T) {
	event := testEvent()
	values := map[string]string{
		models.KeyItemOverrides: `{"1": {"ignore": "true"}}`,
	}

	offers := buildOffersFor(t, event, values, nil)

	assert.Empty(t, offers)
}

func TestBuildOffersIgnoreComparesLiteralTrue(t *testing.T) {
	// Only the literal string "true" ignores; "True", "1" and "yes" do not.
	event := testEvent()
	for _, stored := range []string{"True", "1", "yes", "false"} {
		values := map[string]string{
			models.KeyItemOverrides: `{"1": {"ignore": "` + stored + `"}}`,
		}

		offers := buildOffersFor(t, event, values, nil)
		assert.Len(t, offers, 1, "stored ignore value %q", stored)
	}
}

func TestBuildOffersIgnoreFalseIncludesNonAdmission(t *testing.T) {
	// Non-admission items are ignored by default; an explicit "false"
	// override brings them back.
	event := testEvent()
	event.Items[0].Admission = false

	offers := buildOffersFor(t, event, nil, nil)
	require.Len(t, offers, 0)

	values := map[string]string{
		models.KeyItemOverrides: `{"1": {"ignore": "false"}}`,
	}
	offers = buildOffersFor(t, event, values, nil)
	assert.Len(t, offers, 1)
}

func TestBuildOffersVoucherItemsIgnoredByDefault(t *testing.T) {
	event := testEvent()
	event.Items[0].RequireVoucher = true

	offers := buildOffersFor(t, event, nil, nil)

	assert.Empty(t, offers)
}

func TestBuildOffersSkipsOutsideAvailabilityWindow(t *testing.T) {
	event := testEvent()
	event.Items[0].AvailableUntil = timePtr(testNow.Add(-time.Hour))

	offers := buildOffersFor(t, event, nil, nil)

	assert.Empty(t, offers)
}

func TestBuildOffersPerVariation(t *testing.T) {
	event := testEvent()
	event.Items[0].Variations = []models.Variation{
		{ID: 10, Value: models.PlainString("Early"), Active: true, DefaultPrice: floatPtr(8)},
		{ID: 11, Value: models.PlainString("Late"), Active: true, DefaultPrice: floatPtr(12)},
		{ID: 12, Value: models.PlainString("Hidden"), Active: false},
	}

	offers := buildOffersFor(t, event, nil, nil)

	require.Len(t, offers, 2)
	assert.Equal(t, "8.00", offers[0].Price)
	assert.Equal(t, "12.00", offers[1].Price)
}

func TestBuildOffersVariationOverrideKey(t *testing.T) {
	event := testEvent()
	event.Items[0].Variations = []models.Variation{
		{ID: 10, Value: models.PlainString("Early"), Active: true, DefaultPrice: floatPtr(8)},
	}
	values := map[string]string{
		models.KeyItemOverrides: `{"1-10": {"price": "5.00"}}`,
	}

	offers := buildOffersFor(t, event, values, nil)

	require.Len(t, offers, 1)
	assert.Equal(t, "5.00", offers[0].Price)
}

func TestBuildOffersInvalidOverrideURLDiscarded(t *testing.T) {
	event := testEvent()
	values := map[string]string{
		models.KeyItemOverrides: `{"1": {"url": "javascript:alert(1)"}}`,
	}

	offers := buildOffersFor(t, event, values, nil)

	require.Len(t, offers, 1)
	assert.Equal(t, "https://tickets.example.com/demo/democon/", offers[0].URL)
}

func TestBuildOffersMalformedOverridesFallBackToDefaults(t *testing.T) {
	event := testEvent()
	values := map[string]string{
		models.KeyItemOverrides: `{"1": `,
	}

	offers := buildOffersFor(t, event, values, nil)

	require.Len(t, offers, 1)
	assert.Equal(t, "10.00", offers[0].Price)
}

func TestBuildOffersAvailabilityPrecedence(t *testing.T) {
	// Per-item override beats the global override beats the quota check.
	event := testEvent()
	values := map[string]string{
		models.KeyOverrideOfferAvailability: "true",
		models.KeyOfferAvailability:         models.AvailabilityPreOrder,
		models.KeyItemOverrides:             `{"1": {"availability": "` + models.AvailabilitySoldOut + `"}}`,
	}

	offers := buildOffersFor(t, event, values, &stubQuotas{availability: models.QuotaOK})
	require.Len(t, offers, 1)
	assert.Equal(t, models.AvailabilitySoldOut, offers[0].Availability)

	delete(values, models.KeyItemOverrides)
	offers = buildOffersFor(t, event, values, &stubQuotas{availability: models.QuotaOK})
	require.Len(t, offers, 1)
	assert.Equal(t, models.AvailabilityPreOrder, offers[0].Availability)
}

func TestBuildOffersValidFromGlobalOnly(t *testing.T) {
	event := testEvent()
	event.PresaleStart = timePtr(testNow.Add(-time.Hour))

	// The presale start is not emitted as validFrom on its own.
	offers := buildOffersFor(t, event, nil, nil)
	require.Len(t, offers, 1)
	assert.Empty(t, offers[0].ValidFrom)

	values := map[string]string{
		models.KeyOverrideOfferValidFrom: "true",
		models.KeyOfferValidFrom:         "2026-04-01T10:00:00Z",
	}
	offers = buildOffersFor(t, event, values, nil)
	require.Len(t, offers, 1)
	assert.Equal(t, "2026-04-01T10:00:00Z", offers[0].ValidFrom)
}

func TestBuildOffersSyntheticWhenGlobalsExist(t *testing.T) {
	event := testEvent()
	event.Items = nil
	values := map[string]string{
		models.KeyOverrideOfferPrice: "true",
		models.KeyOfferPrice:         "25.00",
	}

	offers := buildOffersFor(t, event, values, nil)

	require.Len(t, offers, 1)
	assert.Equal(t, "25.00", offers[0].Price)
	assert.Equal(t, "EUR", offers[0].PriceCurrency)
	assert.Equal(t, "https://tickets.example.com/demo/democon/", offers[0].URL)
}

func TestBuildOffersNoItemsNoGlobalsNoOffers(t *testing.T) {
	event := testEvent()
	event.Items = nil

	offers := buildOffersFor(t, event, nil, nil)

	assert.Empty(t, offers)
}

func TestWithinAvailabilityWindow(t *testing.T) {
	assert.True(t, withinAvailabilityWindow(nil, nil, testNow))
	assert.True(t, withinAvailabilityWindow(timePtr(testNow.Add(-time.Hour)), timePtr(testNow.Add(time.Hour)), testNow))
	assert.False(t, withinAvailabilityWindow(timePtr(testNow.Add(time.Hour)), nil, testNow))
	assert.False(t, withinAvailabilityWindow(nil, timePtr(testNow.Add(-time.Hour)), testNow))
}

func TestIsValidHTTPURL(t *testing.T) {
	assert.True(t, isValidHTTPURL("https://example.com/tickets"))
	assert.True(t, isValidHTTPURL("http://example.com"))
	assert.False(t, isValidHTTPURL("javascript:alert(1)"))
	assert.False(t, isValidHTTPURL("ftp://example.com"))
	assert.False(t, isValidHTTPURL("/relative/path"))
	assert.False(t, isValidHTTPURL("https://"))
}
