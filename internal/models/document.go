package models

// Document is the top-level JSON-LD Event record. Optional fields carry
// omitempty so that absent values are dropped rather than emitted as null.
type Document struct {
	Context             string           `json:"@context"`
	Type                string           `json:"@type"`
	Name                string           `json:"name,omitempty"`
	StartDate           string           `json:"startDate,omitempty"`
	EndDate             string           `json:"endDate,omitempty"`
	EventStatus         string           `json:"eventStatus,omitempty"`
	EventAttendanceMode string           `json:"eventAttendanceMode,omitempty"`
	Description         string           `json:"description,omitempty"`
	Image               []string         `json:"image,omitempty"`
	Location            interface{}      `json:"location,omitempty"`
	Organizer           *Organization    `json:"organizer,omitempty"`
	Performer           *PerformingGroup `json:"performer,omitempty"`
	Offers              []Offer          `json:"offers,omitempty"`
	SubEvent            []SubEventEntry  `json:"subEvent,omitempty"`
}

// Offer is one entry of the offers array.
type Offer struct {
	Type          string `json:"@type"`
	URL           string `json:"url,omitempty"`
	Price         string `json:"price,omitempty"`
	PriceCurrency string `json:"priceCurrency,omitempty"`
	Availability  string `json:"availability,omitempty"`
	ValidFrom     string `json:"validFrom,omitempty"`
}

// Place is a physical venue, with an optional postal address.
type Place struct {
	Type    string         `json:"@type"`
	Name    string         `json:"name,omitempty"`
	Address *PostalAddress `json:"address,omitempty"`
}

// PostalAddress holds the structured address parts that could be derived.
type PostalAddress struct {
	Type            string `json:"@type"`
	StreetAddress   string `json:"streetAddress,omitempty"`
	AddressLocality string `json:"addressLocality,omitempty"`
	AddressRegion   string `json:"addressRegion,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	AddressCountry  string `json:"addressCountry,omitempty"`
}

// VirtualLocation points online attendees at the event page.
type VirtualLocation struct {
	Type string `json:"@type"`
	URL  string `json:"url,omitempty"`
}

// Organization is the organizer entry.
type Organization struct {
	Type string `json:"@type"`
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

// PerformingGroup is the performer entry.
type PerformingGroup struct {
	Type string `json:"@type"`
	Name string `json:"name,omitempty"`
}

// SubEventEntry is one nested Event per active public sub-date.
type SubEventEntry struct {
	Type      string      `json:"@type"`
	Name      string      `json:"name,omitempty"`
	StartDate string      `json:"startDate,omitempty"`
	EndDate   string      `json:"endDate,omitempty"`
	Location  interface{} `json:"location,omitempty"`
}
