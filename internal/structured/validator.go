package structured

import "ms-structured-data/internal/models"

// Validate runs structural sanity checks over an assembled document. The
// result is a list of human-readable warnings; they never block emission.
func Validate(doc *models.Document) []string {
	var warnings []string

	if doc.Name == "" {
		warnings = append(warnings, "Missing event name")
	}
	if doc.StartDate == "" {
		warnings = append(warnings, "Missing startDate")
	}

	if (doc.EventAttendanceMode == models.AttendanceOffline ||
		doc.EventAttendanceMode == models.AttendanceMixed) && doc.Location == nil {
		warnings = append(warnings, "Missing location for offline or mixed events")
	}

	for _, offer := range doc.Offers {
		if offer.Price != "" && offer.PriceCurrency == "" {
			warnings = append(warnings, "Offer price requires priceCurrency")
		}
		if offer.ValidFrom != "" && offer.URL == "" {
			warnings = append(warnings, "Offer validFrom should include a URL")
		}
	}

	return warnings
}
