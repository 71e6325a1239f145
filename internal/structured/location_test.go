package structured

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-structured-data/internal/models"
)

func TestBuildLocationOnline(t *testing.T) {
	f := resolvedFields{
		attendanceMode: models.AttendanceOnline,
		offerURL:       "https://tickets.example.com/demo/democon/",
	}

	location := buildLocation(f)

	virtual, ok := location.(*models.VirtualLocation)
	require.True(t, ok)
	assert.Equal(t, "VirtualLocation", virtual.Type)
	assert.Equal(t, "https://tickets.example.com/demo/democon/", virtual.URL)
}

func TestBuildLocationMixed(t *testing.T) {
	f := resolvedFields{
		attendanceMode: models.AttendanceMixed,
		locationName:   "City Hall",
		offerURL:       "https://tickets.example.com/demo/democon/",
	}

	location := buildLocation(f)

	locations, ok := location.([]interface{})
	require.True(t, ok)
	require.Len(t, locations, 2)

	place, ok := locations[0].(*models.Place)
	require.True(t, ok)
	assert.Equal(t, "City Hall", place.Name)

	_, ok = locations[1].(*models.VirtualLocation)
	assert.True(t, ok)
}

func TestBuildLocationMixedWithoutPlace(t *testing.T) {
	f := resolvedFields{
		attendanceMode: models.AttendanceMixed,
		offerURL:       "https://tickets.example.com/demo/democon/",
	}

	locations, ok := buildLocation(f).([]interface{})
	require.True(t, ok)
	require.Len(t, locations, 1)
	_, ok = locations[0].(*models.VirtualLocation)
	assert.True(t, ok)
}

func TestBuildLocationOfflinePlace(t *testing.T) {
	f := resolvedFields{
		attendanceMode:   models.AttendanceOffline,
		locationName:     "City Hall",
		locationStreet:   "Main Street 5",
		locationLocality: "Springfield",
	}

	place, ok := buildLocation(f).(*models.Place)
	require.True(t, ok)
	assert.Equal(t, "City Hall", place.Name)
	require.NotNil(t, place.Address)
	assert.Equal(t, "Main Street 5", place.Address.StreetAddress)
	assert.Equal(t, "Springfield", place.Address.AddressLocality)
}

func TestBuildLocationOfflineEmpty(t *testing.T) {
	f := resolvedFields{attendanceMode: models.AttendanceOffline}

	assert.Nil(t, buildLocation(f))
}

func TestResolveAddressMultilineStreet(t *testing.T) {
	f := resolvedFields{
		locationStreet: "Musterstraße 12\n10115 Berlin\nDeutschland",
	}

	address := resolveAddress(f)

	require.NotNil(t, address)
	assert.Equal(t, "Musterstraße 12", address.StreetAddress)
	assert.Equal(t, "10115", address.PostalCode)
	assert.Equal(t, "Berlin", address.AddressLocality)
	assert.Equal(t, "Deutschland", address.AddressCountry)
}

func TestResolveAddressRawFieldsFillParserGaps(t *testing.T) {
	// The region is never parsed out of the free text, and fields the
	// heuristic misses fall back to the raw per-part values.
	f := resolvedFields{
		locationStreet:  "Main Street 5\nSpringfield",
		locationRegion:  "IL",
		locationCountry: "USA",
	}

	address := resolveAddress(f)

	require.NotNil(t, address)
	assert.Equal(t, "Main Street 5", address.StreetAddress)
	assert.Equal(t, "Springfield", address.AddressLocality)
	assert.Equal(t, "IL", address.AddressRegion)
	assert.Equal(t, "USA", address.AddressCountry)
}

func TestResolveAddressSingleLineUntouched(t *testing.T) {
	f := resolvedFields{
		locationStreet:   "Main Street 5, 12345 Springfield",
		locationLocality: "Springfield",
	}

	address := resolveAddress(f)

	require.NotNil(t, address)
	assert.Equal(t, "Main Street 5, 12345 Springfield", address.StreetAddress)
	assert.Equal(t, "Springfield", address.AddressLocality)
}

func TestBuildLocationForNameFallbacks(t *testing.T) {
	f := resolvedFields{attendanceMode: models.AttendanceOffline}

	assert.Nil(t, buildLocationForName(f, ""))

	place, ok := buildLocationForName(f, "Side Stage").(*models.Place)
	require.True(t, ok)
	assert.Equal(t, "Side Stage", place.Name)
	assert.Nil(t, place.Address)
}
