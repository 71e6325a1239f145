package structured

import (
	"strings"

	"ms-structured-data/internal/models"
)

// buildLocation builds the document's location value: a VirtualLocation for
// online events, a Place+VirtualLocation pair for mixed mode, a single Place
// otherwise. Returns nil when the place would carry no identifying data.
func buildLocation(f resolvedFields) interface{} {
	if f.attendanceMode == models.AttendanceOnline {
		return &models.VirtualLocation{Type: "VirtualLocation", URL: f.offerURL}
	}

	address := resolveAddress(f)

	if f.attendanceMode == models.AttendanceMixed {
		var locations []interface{}
		if p := place(f.locationName, address); p != nil {
			locations = append(locations, p)
		}
		locations = append(locations, &models.VirtualLocation{Type: "VirtualLocation", URL: f.offerURL})
		return locations
	}

	// Offline or default mode: single Place.
	if p := place(f.locationName, address); p != nil {
		return p
	}
	return nil
}

// buildLocationForName is the sub-event variant: the same three branches,
// with a per-sub-event location name and no address decomposition.
func buildLocationForName(f resolvedFields, name string) interface{} {
	if f.attendanceMode == models.AttendanceOnline {
		return &models.VirtualLocation{Type: "VirtualLocation", URL: f.offerURL}
	}

	if f.attendanceMode == models.AttendanceMixed {
		var locations []interface{}
		if name != "" {
			locations = append(locations, &models.Place{Type: "Place", Name: name})
		}
		locations = append(locations, &models.VirtualLocation{Type: "VirtualLocation", URL: f.offerURL})
		return locations
	}

	if name == "" {
		return nil
	}
	return &models.Place{Type: "Place", Name: name}
}

// resolveAddress builds the postal address from the resolved location
// fields. A street field containing line breaks goes through the multi-line
// heuristic first, with the raw per-part fields filling any gap the
// heuristic left.
func resolveAddress(f resolvedFields) *models.PostalAddress {
	street := f.locationStreet
	locality := f.locationLocality
	region := f.locationRegion
	postal := f.locationPostal
	country := f.locationCountry

	if strings.Contains(street, "\n") {
		parsed := ParseMultilineAddress(street)
		street = coalesce(parsed.StreetAddress, f.locationStreet)
		locality = coalesce(parsed.AddressLocality, f.locationLocality)
		postal = coalesce(parsed.PostalCode, f.locationPostal)
		country = coalesce(parsed.AddressCountry, f.locationCountry)
	}

	if street == "" && locality == "" && region == "" && postal == "" && country == "" {
		return nil
	}
	return &models.PostalAddress{
		Type:            "PostalAddress",
		StreetAddress:   street,
		AddressLocality: locality,
		AddressRegion:   region,
		PostalCode:      postal,
		AddressCountry:  country,
	}
}

func place(name string, address *models.PostalAddress) *models.Place {
	if name == "" && address == nil {
		return nil
	}
	return &models.Place{Type: "Place", Name: name, Address: address}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
